// Package telemetry exports controller state to MQTT and InfluxDB and
// feeds remote commands back into the control loop.
//
// Everything here is optional wiring: the controller runs identically
// with no broker and no time-series database. When present, the exports
// are fire-and-forget; a failed publish is logged and dropped, never
// retried, because the panel and the status page remain the source of
// truth.
//
// Thread Safety: all methods are safe for concurrent use. The callbacks
// registered on the event log and the history run on the control-loop
// goroutine, so they must not block; both publish through the MQTT
// client's buffered paho internals and InfluxDB's batching write API.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sawmill/pool-core/internal/controller"
	"github.com/sawmill/pool-core/internal/eventlog"
	"github.com/sawmill/pool-core/internal/history"
	"github.com/sawmill/pool-core/internal/infrastructure/influxdb"
	"github.com/sawmill/pool-core/internal/infrastructure/logging"
	"github.com/sawmill/pool-core/internal/infrastructure/mqtt"
	"github.com/sawmill/pool-core/internal/periph"
)

// defaultStatusInterval is how often the retained status document is
// republished when the caller does not override it.
const defaultStatusInterval = 10 * time.Second

// Deps holds the collaborators the exporter wires together. MQTT and
// Influx may each be nil; the corresponding exports are skipped.
type Deps struct {
	MQTT       *mqtt.Client
	Influx     *influxdb.Client
	Controller *controller.Controller
	Log        *eventlog.Log
	History    *history.History
	Logger     *logging.Logger

	// StatusInterval overrides the retained-status republish period.
	StatusInterval time.Duration
}

// Exporter owns the MQTT/Influx export wiring.
type Exporter struct {
	mqtt     *mqtt.Client
	influx   *influxdb.Client
	ctrl     *controller.Controller
	logger   *logging.Logger
	interval time.Duration
	cancel   context.CancelFunc

	// Previous snapshot for transition detection. Only the status loop
	// goroutine touches these.
	last   controller.Status
	seeded bool
}

// New wires the export callbacks and returns the exporter. The periodic
// status publisher does not start until Start.
func New(deps Deps) (*Exporter, error) {
	if deps.Controller == nil {
		return nil, fmt.Errorf("controller is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	e := &Exporter{
		mqtt:     deps.MQTT,
		influx:   deps.Influx,
		ctrl:     deps.Controller,
		logger:   deps.Logger,
		interval: deps.StatusInterval,
	}
	if e.interval <= 0 {
		e.interval = defaultStatusInterval
	}

	if deps.Log != nil {
		deps.Log.SetOnAppend(e.exportEvent)
	}
	if deps.History != nil {
		deps.History.SetOnSample(e.exportSample)
	}

	return e, nil
}

// Start subscribes to the command topics and launches the periodic
// status publisher. Safe to call with no MQTT client; only the Influx
// exports remain active in that case.
func (e *Exporter) Start(ctx context.Context) error {
	ctx, e.cancel = context.WithCancel(ctx)

	if e.mqtt != nil {
		err := e.mqtt.Subscribe(mqtt.Topics{}.AllCommands(), byte(1), e.handleCommand)
		if err != nil {
			return fmt.Errorf("subscribing to command topics: %w", err)
		}
	}

	go e.statusLoop(ctx)
	return nil
}

// Close stops the periodic publisher. The MQTT client itself is owned
// and closed by the caller.
func (e *Exporter) Close() error {
	if e.cancel != nil {
		e.cancel()
	}
	return nil
}

// statusLoop republishes the retained status document on a fixed period.
func (e *Exporter) statusLoop(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st := e.ctrl.Status()
			e.exportTransitions(st)
			e.publishStatus()
		}
	}
}

// exportTransitions records mode and equipment changes between
// consecutive snapshots to InfluxDB. The first snapshot only seeds the
// baseline. Runs on the status loop goroutine.
func (e *Exporter) exportTransitions(st controller.Status) {
	if !e.seeded {
		e.seeded = true
		e.last = st
		return
	}
	prev := e.last
	e.last = st

	if e.influx == nil {
		return
	}
	modeChanged, pumpChanged, heaterChanged := diffStatus(prev, st)
	if modeChanged {
		e.influx.WriteModeChange(st.Mode.String(), st.Target)
	}
	if pumpChanged {
		e.influx.WriteEquipmentState("pump", st.Pump.String(), st.Pump != controller.PumpNone)
	}
	if heaterChanged {
		e.influx.WriteEquipmentState("heater", st.Heater.String(), st.HeaterOn)
	}
}

// diffStatus reports which of the recorded aspects changed between two
// snapshots. Heater mode and contactor state count as one aspect; a
// hysteresis toggle is a state worth recording even inside one mode.
func diffStatus(prev, cur controller.Status) (modeChanged, pumpChanged, heaterChanged bool) {
	modeChanged = cur.Mode != prev.Mode
	pumpChanged = cur.Pump != prev.Pump
	heaterChanged = cur.Heater != prev.Heater || cur.HeaterOn != prev.HeaterOn
	return
}

// statusDocument is the retained JSON document home-automation
// consumers read. Field names are part of the external surface.
type statusDocument struct {
	Mode        string `json:"mode"`
	Valves      string `json:"valves"`
	Pump        string `json:"pump"`
	Heater      string `json:"heater"`
	HeaterOn    bool   `json:"heater_on"`
	Target      int    `json:"target_f"`
	Temp        int    `json:"temp_f"`
	TempValid   bool   `json:"temp_valid"`
	JetsOn      bool   `json:"jets_on"`
	LightOn     bool   `json:"light_on"`
	ModeMinutes int    `json:"mode_minutes"`
	Time        string `json:"time"`
}

// buildStatusDocument converts a controller snapshot to the wire form.
func buildStatusDocument(st controller.Status) statusDocument {
	return statusDocument{
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
		ModeMinutes: st.ModeMinutes,
		Time:        st.Now.String(),
	}
}

func (e *Exporter) publishStatus() {
	if e.mqtt == nil {
		return
	}

	doc := buildStatusDocument(e.ctrl.Status())
	payload, err := json.Marshal(doc)
	if err != nil {
		e.logger.Error("marshalling status document", "error", err)
		return
	}

	if err := e.mqtt.PublishRetained(mqtt.Topics{}.Status(), payload); err != nil {
		e.logger.Warn("status publish failed", "error", err)
	}
}

// eventDocument is the wire form of one event log record.
type eventDocument struct {
	At      string `json:"at"`
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
}

// exportEvent mirrors an appended event log record to the event topic.
// Runs on the control-loop goroutine.
func (e *Exporter) exportEvent(r eventlog.Record) {
	if e.mqtt == nil {
		return
	}

	payload, err := json.Marshal(eventDocument{
		At:      r.At.String(),
		Kind:    r.Kind.String(),
		Message: r.Message,
	})
	if err != nil {
		e.logger.Error("marshalling event document", "error", err)
		return
	}

	if err := e.mqtt.Publish(mqtt.Topics{}.Event(), payload, 1, false); err != nil {
		e.logger.Warn("event publish failed", "error", err, "kind", r.Kind.String())
	}
}

// sampleDocument is the wire form of one temperature sample.
type sampleDocument struct {
	At     string `json:"at"`
	Temp   int    `json:"temp_f"`
	Entity string `json:"entity"`
}

// exportSample sends a recorded temperature sample to InfluxDB and the
// temperature topic. Runs on the control-loop goroutine.
func (e *Exporter) exportSample(s history.Sample) {
	entity := sampleEntity(e.ctrl.Status())

	if e.influx != nil {
		e.influx.WriteTemperature(entity, s.Temp, time.Now())
	}

	if e.mqtt == nil {
		return
	}
	payload, err := json.Marshal(sampleDocument{
		At:     s.At.String(),
		Temp:   s.Temp,
		Entity: entity,
	})
	if err != nil {
		e.logger.Error("marshalling sample document", "error", err)
		return
	}
	if err := e.mqtt.Publish(mqtt.Topics{}.Temperature(), payload, 1, false); err != nil {
		e.logger.Warn("temperature publish failed", "error", err)
	}
}

// sampleEntity names which body of water a sample describes. The sensor
// sits in the heater plumbing, so the valve configuration at sampling
// time decides.
func sampleEntity(st controller.Status) string {
	if st.Valves == controller.ValvesHeatSpa {
		return "spa"
	}
	return "pool"
}

// handleCommand dispatches one inbound command message to the control
// loop. Unknown topics and payloads are logged and dropped.
func (e *Exporter) handleCommand(topic string, payload []byte) error {
	ev := parseCommand(topic, string(payload))
	if ev == controller.EvNone {
		return fmt.Errorf("unknown command: topic %q payload %q", topic, payload)
	}

	if !e.ctrl.Input().Push(ev) {
		e.logger.Warn("input queue full, remote command dropped", "event", ev.String())
	}
	return nil
}

// parseCommand maps a command topic and payload to an operator event.
func parseCommand(topic, payload string) controller.Event {
	topics := mqtt.Topics{}
	switch topic {
	case topics.CommandButton():
		for b := periph.Button(0); b < periph.NumButtons; b++ {
			if b.String() == payload {
				return controller.ButtonEvent(b)
			}
		}
	case topics.CommandTarget():
		switch payload {
		case "up":
			return controller.EvTempUp
		case "down":
			return controller.EvTempDown
		}
	}
	return controller.EvNone
}
