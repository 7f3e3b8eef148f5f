package api

import (
	"net/http"
)

// statusResponse is the JSON view of the controller snapshot.
type statusResponse struct {
	Mode        string   `json:"mode"`
	Valves      string   `json:"valves"`
	Pump        string   `json:"pump"`
	Heater      string   `json:"heater"`
	HeaterOn    bool     `json:"heater_on"`
	Target      int      `json:"target_f"`
	Temp        int      `json:"temp_f"`
	TempValid   bool     `json:"temp_valid"`
	JetsOn      bool     `json:"jets_on"`
	LightOn     bool     `json:"light_on"`
	ClockGood   bool     `json:"clock_good"`
	Time        string   `json:"time"`
	ModeMinutes int      `json:"mode_minutes"`
	Indicators  uint16   `json:"indicators"`
	Display     []string `json:"display"`
}

// handleStatus returns the controller snapshot plus the display contents.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	st := s.controller.Status()
	frame := s.controller.View().Snapshot()

	writeJSON(w, http.StatusOK, statusResponse{
		Mode:        st.Mode.String(),
		Valves:      st.Valves.String(),
		Pump:        st.Pump.String(),
		Heater:      st.Heater.String(),
		HeaterOn:    st.HeaterOn,
		Target:      st.Target,
		Temp:        st.Temp,
		TempValid:   st.TempValid,
		JetsOn:      st.JetsOn,
		LightOn:     st.LightOn,
		ClockGood:   st.ClockGood,
		Time:        st.Now.String(),
		ModeMinutes: st.ModeMinutes,
		Indicators:  st.Indicators,
		Display:     frame.Lines[:],
	})
}

// logEntry is the JSON view of one event log record.
type logEntry struct {
	At      string `json:"at"`
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
}

// handleLog returns the event log, newest first.
func (s *Server) handleLog(w http.ResponseWriter, _ *http.Request) {
	records := s.log.Records()

	entries := make([]logEntry, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		entries = append(entries, logEntry{
			At:      r.At.String(),
			Kind:    r.Kind.String(),
			Message: r.Message,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(entries),
		"events": entries,
	})
}

// tempEntry is the JSON view of one temperature history sample.
type tempEntry struct {
	At   string `json:"at"`
	Temp int    `json:"temp_f"`
}

// handleTemps returns the temperature history, oldest first.
func (s *Server) handleTemps(w http.ResponseWriter, _ *http.Request) {
	samples := s.history.Samples()

	entries := make([]tempEntry, 0, len(samples))
	for _, sm := range samples {
		entries = append(entries, tempEntry{At: sm.At.String(), Temp: sm.Temp})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(entries),
		"samples": entries,
	})
}
