package telemetry

import (
	"context"
	"testing"

	"github.com/sawmill/pool-core/internal/controller"
	"github.com/sawmill/pool-core/internal/eventlog"
	"github.com/sawmill/pool-core/internal/history"
	"github.com/sawmill/pool-core/internal/infrastructure/logging"
	"github.com/sawmill/pool-core/internal/infrastructure/storage"
	"github.com/sawmill/pool-core/internal/periph"
	"github.com/sawmill/pool-core/internal/settings"
)

func testController(t *testing.T) *controller.Controller {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemory()
	clock := periph.NewFakeClock(periph.DateTime{
		Sec: 0, Min: 0, Hour: 3, Meridiem: periph.PM,
		Day: 2, Date: 15, Month: 7, Year: 24,
	})

	log, err := eventlog.Open(ctx, store, clock)
	if err != nil {
		t.Fatalf("opening event log: %v", err)
	}
	set, _, err := settings.Load(ctx, store)
	if err != nil {
		t.Fatalf("loading settings: %v", err)
	}

	return controller.New(controller.Config{
		Relays:     periph.NewFakeRelays(),
		Indicators: periph.NewFakeIndicators(),
		Sensor:     periph.NewFakeSensor(75),
		Clock:      clock,
		Log:        log,
		History:    history.New(),
		Settings:   set,
		Timing:     controller.DefaultTiming(),
		ClockGood:  true,
	})
}

func TestNew_MissingDeps(t *testing.T) {
	if _, err := New(Deps{Logger: logging.Default()}); err == nil {
		t.Error("New() should fail without a controller")
	}
	if _, err := New(Deps{Controller: testController(t)}); err == nil {
		t.Error("New() should fail without a logger")
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		payload string
		want    controller.Event
	}{
		{"button heat spa", "poolcore/command/button", "heat spa", controller.EvHeatSpa},
		{"button filter pool", "poolcore/command/button", "filter pool", controller.EvFilterPool},
		{"button spa level", "poolcore/command/button", "spa level", controller.EvSpaWaterLevel},
		{"button menu", "poolcore/command/button", "menu", controller.EvMenu},
		{"unknown button", "poolcore/command/button", "warp drive", controller.EvNone},
		{"target up", "poolcore/command/target", "up", controller.EvTempUp},
		{"target down", "poolcore/command/target", "down", controller.EvTempDown},
		{"bad target", "poolcore/command/target", "sideways", controller.EvNone},
		{"unrelated topic", "poolcore/status", "up", controller.EvNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseCommand(tt.topic, tt.payload); got != tt.want {
				t.Errorf("parseCommand(%q, %q) = %v, want %v", tt.topic, tt.payload, got, tt.want)
			}
		})
	}
}

func TestHandleCommand_QueuesEvent(t *testing.T) {
	ctrl := testController(t)
	e, err := New(Deps{Controller: ctrl, Logger: logging.Default()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := e.handleCommand("poolcore/command/button", []byte("spa jets")); err != nil {
		t.Fatalf("handleCommand() error = %v", err)
	}

	select {
	case ev := <-ctrl.Input().Events():
		if ev != controller.EvSpaJets {
			t.Errorf("queued event = %v, want spa jets", ev)
		}
	default:
		t.Fatal("no event queued")
	}
}

func TestHandleCommand_RejectsUnknown(t *testing.T) {
	ctrl := testController(t)
	e, err := New(Deps{Controller: ctrl, Logger: logging.Default()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := e.handleCommand("poolcore/command/button", []byte("bogus")); err == nil {
		t.Error("handleCommand() should reject unknown buttons")
	}
	select {
	case ev := <-ctrl.Input().Events():
		t.Errorf("unexpected event queued: %v", ev)
	default:
	}
}

func TestBuildStatusDocument(t *testing.T) {
	st := controller.Status{
		Mode:        controller.ModeHeatSpa,
		Valves:      controller.ValvesHeatSpa,
		Pump:        controller.PumpSpa,
		Heater:      controller.HeaterSpa,
		HeaterOn:    true,
		Target:      102,
		Temp:        95,
		TempValid:   true,
		ModeMinutes: 180,
	}

	doc := buildStatusDocument(st)
	if doc.Mode != "heat spa" || doc.Pump != "spa" || doc.Heater != "spa" {
		t.Errorf("document names = %q/%q/%q", doc.Mode, doc.Pump, doc.Heater)
	}
	if !doc.HeaterOn || doc.Target != 102 || doc.Temp != 95 {
		t.Errorf("document values = on=%v target=%d temp=%d", doc.HeaterOn, doc.Target, doc.Temp)
	}
}

func TestDiffStatus(t *testing.T) {
	idle := controller.Status{Mode: controller.ModeIdle}
	heating := controller.Status{
		Mode:     controller.ModeHeatSpa,
		Pump:     controller.PumpSpa,
		Heater:   controller.HeaterSpa,
		HeaterOn: true,
	}
	atTarget := heating
	atTarget.HeaterOn = false

	tests := []struct {
		name               string
		prev, cur          controller.Status
		mode, pump, heater bool
	}{
		{"no change", idle, idle, false, false, false},
		{"mode entry", idle, heating, true, true, true},
		{"thermostat toggle within mode", heating, atTarget, false, false, true},
		{"mode exit", heating, idle, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, p, h := diffStatus(tt.prev, tt.cur)
			if m != tt.mode || p != tt.pump || h != tt.heater {
				t.Errorf("diffStatus() = %v/%v/%v, want %v/%v/%v",
					m, p, h, tt.mode, tt.pump, tt.heater)
			}
		})
	}
}

func TestExportTransitions_SeedsThenTracks(t *testing.T) {
	e, err := New(Deps{Controller: testController(t), Logger: logging.Default()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	idle := controller.Status{Mode: controller.ModeIdle}
	e.exportTransitions(idle)
	if !e.seeded || e.last.Mode != controller.ModeIdle {
		t.Fatalf("first snapshot should seed the baseline, got %+v", e.last)
	}

	// No Influx client wired: transitions still advance the baseline.
	heating := controller.Status{Mode: controller.ModeHeatSpa, Pump: controller.PumpSpa}
	e.exportTransitions(heating)
	if e.last.Mode != controller.ModeHeatSpa {
		t.Errorf("baseline not advanced, mode = %v", e.last.Mode)
	}
}

func TestSampleEntity(t *testing.T) {
	spa := controller.Status{Valves: controller.ValvesHeatSpa}
	if got := sampleEntity(spa); got != "spa" {
		t.Errorf("entity = %q, want spa", got)
	}
	pool := controller.Status{Valves: controller.ValvesHeatPool}
	if got := sampleEntity(pool); got != "pool" {
		t.Errorf("entity = %q, want pool", got)
	}
}

func TestStartClose_NoMQTT(t *testing.T) {
	e, err := New(Deps{Controller: testController(t), Logger: logging.Default()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
