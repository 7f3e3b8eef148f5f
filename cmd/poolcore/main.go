// Saw Mill Lodge pool controller.
//
// This is the main entry point for the pool controller daemon. It wires
// the control loop to persistent storage, the status web service, and
// the optional MQTT/InfluxDB exporters, then runs until SIGTERM.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sawmill/pool-core/internal/api"
	"github.com/sawmill/pool-core/internal/controller"
	"github.com/sawmill/pool-core/internal/eventlog"
	"github.com/sawmill/pool-core/internal/history"
	"github.com/sawmill/pool-core/internal/infrastructure/config"
	"github.com/sawmill/pool-core/internal/infrastructure/influxdb"
	"github.com/sawmill/pool-core/internal/infrastructure/logging"
	"github.com/sawmill/pool-core/internal/infrastructure/mqtt"
	"github.com/sawmill/pool-core/internal/infrastructure/storage"
	"github.com/sawmill/pool-core/internal/periph"
	"github.com/sawmill/pool-core/internal/settings"
	"github.com/sawmill/pool-core/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting pool controller",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open persistent storage
	store, err := storage.Open(ctx, storage.Config{
		Path:        cfg.Storage.Path,
		WALMode:     cfg.Storage.WALMode,
		BusyTimeout: cfg.Storage.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		log.Info("closing storage")
		if closeErr := store.Close(); closeErr != nil {
			log.Error("error closing storage", "error", closeErr)
		}
	}()
	log.Info("storage connected", "path", cfg.Storage.Path)

	// Validate the wall clock before anything stamps timestamps with it.
	// A bad clock is logged once; the controller then runs on the fixed
	// fallback time and skips the daily autostart.
	clock := systemClock{}
	clockGood := true
	if dt, readErr := clock.Read(); readErr != nil || dt.Validate() != nil {
		clockGood = false
	}

	// Open the event log
	evlog, err := eventlog.Open(ctx, store, clock)
	if err != nil {
		return fmt.Errorf("opening event log: %w", err)
	}
	log.Info("event log opened", "records", evlog.Count())

	if !clockGood {
		log.Warn("wall clock invalid, using fallback time")
		if appendErr := evlog.Append(ctx, eventlog.KindClockBad, ""); appendErr != nil {
			return fmt.Errorf("recording clock fault: %w", appendErr)
		}
	}

	// Load the configuration record
	set, initialized, err := settings.Load(ctx, store)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if initialized {
		log.Info("configuration record initialised to defaults")
		if appendErr := evlog.Append(ctx, eventlog.KindConfigInit, ""); appendErr != nil {
			return fmt.Errorf("recording config init: %w", appendErr)
		}
	}

	// No temperature probe driver is wired on this build; run the
	// simulated sensor and record that the readings are synthetic.
	sensor := periph.NewSimulatedSensor()
	if appendErr := evlog.Append(ctx, eventlog.KindSensorBad, "simulated"); appendErr != nil {
		return fmt.Errorf("recording sensor fault: %w", appendErr)
	}

	if appendErr := evlog.Append(ctx, eventlog.KindStartup, ""); appendErr != nil {
		return fmt.Errorf("recording startup: %w", appendErr)
	}

	// Build the controller
	hist := history.New()
	ctrl := controller.New(controller.Config{
		Relays:     &relayLog{log: log},
		Indicators: &indicatorLog{log: log},
		Sensor:     sensor,
		Clock:      clock,
		Log:        evlog,
		History:    hist,
		Settings:   set,
		Logger:     log,
		Timing:     buildTiming(cfg.Sequence),
		ClockGood:  clockGood,
	})

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Wire the telemetry exporter
	exporter, err := telemetry.New(telemetry.Deps{
		MQTT:       mqttClient,
		Influx:     influxClient,
		Controller: ctrl,
		Log:        evlog,
		History:    hist,
		Logger:     log,
	})
	if err != nil {
		return fmt.Errorf("wiring telemetry: %w", err)
	}
	if err := exporter.Start(ctx); err != nil {
		return fmt.Errorf("starting telemetry: %w", err)
	}
	defer func() {
		if closeErr := exporter.Close(); closeErr != nil {
			log.Error("error closing telemetry", "error", closeErr)
		}
	}()

	// Start the status web service
	server, err := api.New(api.Deps{
		Config:     cfg.API,
		Logger:     log,
		Controller: ctrl,
		Log:        evlog,
		History:    hist,
		Version:    version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port))

	// Tick source: one pulse per second into the control loop.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ctrl.Tick()
			}
		}
	}()

	// Simulated sensor driver: nudge the model once per minute toward
	// the heater's current effect on the water.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st := ctrl.Status()
				sensor.Advance(st.HeaterOn)
			}
		}
	}()

	// Rotary consumer: turns encoder detents into temperature pulses.
	// The GPIO quadrature driver registers its interrupt against rotary;
	// until that driver lands the knob is only reachable from tests.
	rotary := controller.NewRotaryNotifier()
	go controller.RunRotaryConsumer(ctx, rotary, &periph.FakeEncoder{}, ctrl.Input())

	// Run the control loop. It owns all controller state; everything
	// else communicates through the input queue and the status snapshot.
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- ctrl.Run(ctx)
	}()

	log.Info("initialisation complete, control loop running")

	select {
	case <-ctx.Done():
	case err := <-loopErr:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("control loop: %w", err)
		}
	}

	log.Info("shutdown signal received, cleaning up")
	log.Info("pool controller stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses POOLCORE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("POOLCORE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// buildTiming applies the optional sequence overrides to the compiled-in
// delays. Zero values keep the defaults.
func buildTiming(seq config.SequenceConfig) controller.Timing {
	tm := controller.DefaultTiming()
	if seq.HeaterOffSeconds > 0 {
		tm.HeaterOffSeconds = seq.HeaterOffSeconds
	}
	if seq.ValveSettleSeconds > 0 {
		tm.ValveSettleSeconds = seq.ValveSettleSeconds
	}
	if seq.PumpOffSeconds > 0 {
		tm.PumpOffSeconds = seq.PumpOffSeconds
	}
	if seq.PumpOnSeconds > 0 {
		tm.PumpOnSeconds = seq.PumpOnSeconds
	}
	return tm
}

// systemClock adapts the host's clock to the hardware wall-clock
// interface. The battery-backed DS3231 this replaces is write-through;
// here Write is accepted and discarded because the host clock is NTP
// disciplined.
type systemClock struct{}

// Read converts the host time to the 12-hour register layout.
func (systemClock) Read() (periph.DateTime, error) {
	now := time.Now()

	hour := now.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := periph.AM
	if now.Hour() >= 12 {
		meridiem = periph.PM
	}

	return periph.DateTime{
		Sec:      byte(now.Second()),
		Min:      byte(now.Minute()),
		Hour:     byte(hour),
		Meridiem: meridiem,
		Day:      byte(now.Weekday()) + 1,
		Date:     byte(now.Day()),
		Month:    byte(now.Month()),
		Year:     byte(now.Year() % 100),
	}, nil
}

// Write implements periph.WallClock.
func (systemClock) Write(periph.DateTime) error { return nil }

// relayLog records relay transitions in the structured log. The
// board-specific GPIO driver replaces it at hardware integration time;
// until then the daemon is a full dry-run rig.
type relayLog struct {
	log *logging.Logger
}

// Set implements periph.RelayOutput.
func (r *relayLog) Set(relay periph.Relay, on bool) {
	r.log.Info("relay", "relay", relay.String(), "on", on)
}

// indicatorLog records indicator mask updates in the structured log.
type indicatorLog struct {
	log *logging.Logger
}

// Set implements periph.IndicatorOutput.
func (i *indicatorLog) Set(mask uint16, on bool) {
	i.log.Debug("indicators", "mask", fmt.Sprintf("%04x", mask), "on", on)
}
