package api

import (
	"html/template"
	"net/http"

	"github.com/sawmill/pool-core/internal/controller"
	"github.com/sawmill/pool-core/internal/periph"
)

// panelTemplate mirrors the physical operator panel: the 4x20 character
// display, the eight buttons, the two temperature arrows and the
// indicator lights. It refreshes itself so a phone left on the counter
// tracks the panel.
var panelTemplate = template.Must(template.New("panel").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Site}}</title>
<meta http-equiv="refresh" content="5">
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
body { font-family: sans-serif; background: #223; color: #eee; margin: 1em; }
pre.lcd { background: #071; color: #efe; font-size: 1.3em; padding: 0.6em;
          display: inline-block; border-radius: 6px; border: 4px solid #333; }
.buttons form { display: inline; }
button { margin: 0.2em; padding: 0.6em 1em; font-size: 1em; border-radius: 6px; }
.lamp { display: inline-block; width: 0.8em; height: 0.8em; border-radius: 50%;
        margin-right: 0.3em; background: #444; }
.lamp.on { background: #f33; box-shadow: 0 0 6px #f33; }
.lamp.blue.on { background: #39f; box-shadow: 0 0 6px #39f; }
.lamp.green.on { background: #3f3; box-shadow: 0 0 6px #3f3; }
.ind { margin: 0.2em 0.8em 0.2em 0; display: inline-block; }
a { color: #9cf; }
</style>
</head>
<body>
<h2>{{.Site}}</h2>
<pre class="lcd">{{range .Lines}}{{.}}
{{end}}</pre>
<div class="indicators">
{{range .Indicators}}<span class="ind"><span class="lamp {{.Class}}{{if .On}} on{{end}}"></span>{{.Name}}</span>
{{end}}</div>
<div class="buttons">
{{range .Buttons}}<form method="post" action="/"><button name="button" value="{{.}}">{{.}}</button></form>
{{end}}
<form method="post" action="/"><button name="temp" value="up">temp &#9650;</button></form>
<form method="post" action="/"><button name="temp" value="down">temp &#9660;</button></form>
</div>
<p><a href="/log">event log</a> &middot; <a href="/temps">temperatures</a> &middot; <a href="/visitors">visitors</a></p>
</body>
</html>
`))

// indicatorView is one lamp on the page.
type indicatorView struct {
	Name  string
	Class string
	On    bool
}

// panelView is the template data for the panel mirror page.
type panelView struct {
	Site       string
	Lines      []string
	Indicators []indicatorView
	Buttons    []string
}

// pageIndicators lists the lamps in panel order with their page colors.
var pageIndicators = []struct {
	name  string
	mask  uint16
	class string
}{
	{"heat spa", periph.IndHeatSpa, ""},
	{"heat pool", periph.IndHeatPool, ""},
	{"spa jets", periph.IndSpaJets, ""},
	{"pool light", periph.IndPoolLight, ""},
	{"filter spa", periph.IndFilterSpa, ""},
	{"filter pool", periph.IndFilterPool, ""},
	{"spa level", periph.IndSpaWaterLevel, ""},
	{"menu", periph.IndMenu, ""},
	{"temp blue", periph.IndTempBlue, "blue"},
	{"temp green", periph.IndTempGreen, "green"},
	{"temp red", periph.IndTempRed, ""},
}

// handlePanelPage renders the panel mirror.
func (s *Server) handlePanelPage(w http.ResponseWriter, _ *http.Request) {
	st := s.controller.Status()
	frame := s.controller.View().Snapshot()

	inds := make([]indicatorView, 0, len(pageIndicators))
	for _, pi := range pageIndicators {
		inds = append(inds, indicatorView{
			Name:  pi.name,
			Class: pi.class,
			On:    st.Indicators&pi.mask != 0,
		})
	}

	buttons := make([]string, 0, periph.NumButtons)
	for b := periph.Button(0); b < periph.NumButtons; b++ {
		buttons = append(buttons, b.String())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := panelTemplate.Execute(w, panelView{
		Site:       "Saw Mill Lodge Pool",
		Lines:      frame.Lines[:],
		Indicators: inds,
		Buttons:    buttons,
	})
	if err != nil {
		s.logger.Error("panel page render failed", "error", err)
	}
}

// handlePanelPost accepts a button press or a temperature nudge from the
// page forms and feeds it to the control loop, then redirects back so a
// refresh doesn't repeat the press.
func (s *Server) handlePanelPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "malformed form")
		return
	}

	ev := controller.EvNone
	switch {
	case r.PostFormValue("button") != "":
		ev = buttonEventByName(r.PostFormValue("button"))
	case r.PostFormValue("temp") == "up":
		ev = controller.EvTempUp
	case r.PostFormValue("temp") == "down":
		ev = controller.EvTempDown
	}
	if ev == controller.EvNone {
		writeBadRequest(w, "unknown button")
		return
	}

	if !s.controller.Input().Push(ev) {
		s.logger.Warn("input queue full, web press dropped", "event", ev.String())
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// buttonEventByName maps a panel button legend to its event.
func buttonEventByName(name string) controller.Event {
	for b := periph.Button(0); b < periph.NumButtons; b++ {
		if b.String() == name {
			return controller.ButtonEvent(b)
		}
	}
	return controller.EvNone
}

// textPageTemplate renders a titled preformatted dump with a back link.
var textPageTemplate = template.Must(template.New("text").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
body { font-family: sans-serif; background: #223; color: #eee; margin: 1em; }
pre { background: #112; padding: 0.6em; border-radius: 6px; }
a { color: #9cf; }
table { border-collapse: collapse; }
td, th { border: 1px solid #556; padding: 0.3em 0.8em; text-align: left; }
</style>
</head>
<body>
<h2>{{.Title}}</h2>
{{if .Lines}}<pre>{{range .Lines}}{{.}}
{{end}}</pre>{{end}}
{{if .Visitors}}<table>
<tr><th>address</th><th>requests</th><th>first seen</th><th>last seen</th></tr>
{{range .Visitors}}<tr><td>{{.Addr}}</td><td>{{.Count}}</td><td>{{.FirstAt.Format "2006-01-02 15:04:05"}}</td><td>{{.LastAt.Format "2006-01-02 15:04:05"}}</td></tr>
{{end}}</table>{{end}}
<p><a href="/">back to panel</a></p>
</body>
</html>
`))

// textView is the template data for the dump pages.
type textView struct {
	Title    string
	Lines    []string
	Visitors []visitor
}

func (s *Server) renderTextPage(w http.ResponseWriter, v textView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := textPageTemplate.Execute(w, v); err != nil {
		s.logger.Error("text page render failed", "error", err)
	}
}

// handleLogPage renders the event log, newest first.
func (s *Server) handleLogPage(w http.ResponseWriter, _ *http.Request) {
	var lines []string
	s.log.Dump(true, func(line string) bool {
		lines = append(lines, line)
		return true
	})
	if len(lines) == 0 {
		lines = []string{"(no events)"}
	}
	s.renderTextPage(w, textView{Title: "Event Log", Lines: lines})
}

// handleTempsPage renders the temperature history, oldest first.
func (s *Server) handleTempsPage(w http.ResponseWriter, _ *http.Request) {
	var lines []string
	s.history.Dump(func(line string) bool {
		lines = append(lines, line)
		return true
	})
	if len(lines) == 0 {
		lines = []string{"(no samples)"}
	}
	s.renderTextPage(w, textView{Title: "Water Temperatures", Lines: lines})
}

// handleVisitorsPage renders the visitor address table.
func (s *Server) handleVisitorsPage(w http.ResponseWriter, _ *http.Request) {
	s.renderTextPage(w, textView{
		Title:    "Visitors",
		Visitors: s.visitors.Snapshot(),
	})
}
