// Package influxdb provides InfluxDB connectivity for the pool controller.
//
// It wraps the official influxdb-client-go v2 library with controller-specific
// patterns for connection management, metric writing, and health monitoring.
//
// # Purpose
//
// This package handles time-series data storage for:
//   - Water temperature samples (one per minute while the pump runs)
//   - Mode transitions and equipment duty cycles
//   - Heater and pump state snapshots
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "poolcore",
//	    Bucket: "pool",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Record a water temperature sample
//	client.WriteTemperature("spa", 102, time.Now())
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are logged via a callback.
// Connection and health check errors are returned directly.
//
// # Performance
//
// Writes are batched according to config.yaml settings (batch_size, flush_interval).
// At one temperature sample per minute the batch fills slowly; the flush
// interval, not the batch size, governs delivery latency.
package influxdb
