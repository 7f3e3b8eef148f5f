package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteTemperature writes a single water temperature sample to InfluxDB.
//
// This is the primary method for recording sensor telemetry. The write is
// non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - entity: What the heater plumbing was serving when sampled ("pool" or "spa")
//   - tempF: Measured water temperature in degrees Fahrenheit
//   - at: Sample timestamp
//
// Example:
//
//	client.WriteTemperature("spa", 102, time.Now())
func (c *Client) WriteTemperature(entity string, tempF int, at time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"water_temperature",
		map[string]string{
			"entity": entity,
		},
		map[string]interface{}{
			"temp_f": tempF,
		},
		at,
	)

	c.writeAPI.WritePoint(point)
}

// WriteModeChange records a controller mode transition.
//
// Used for tracking equipment duty cycles: how long the filter ran, how
// often the heater was used, when transfers happened.
//
// Parameters:
//   - mode: The mode entered (e.g., "heat spa", "filter pool", "idle")
//   - targetF: Target temperature at entry, 0 for non-heating modes
func (c *Client) WriteModeChange(mode string, targetF int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"mode_change",
		map[string]string{
			"mode": mode,
		},
		map[string]interface{}{
			"target_f": targetF,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteEquipmentState records a pump or heater state snapshot.
//
// Parameters:
//   - equipment: "pump" or "heater"
//   - state: Human-readable state (e.g., "spa", "off", "pool energized")
//   - running: Whether the equipment is drawing power
func (c *Client) WriteEquipmentState(equipment string, state string, running bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"equipment",
		map[string]string{
			"equipment": equipment,
		},
		map[string]interface{}{
			"state":   state,
			"running": running,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("system_stats",
//	    map[string]string{"host": "pool-ctl-01"},
//	    map[string]interface{}{"uptime_hours": 45.2})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., replayed history samples).
//
// Parameters:
//   - measurement: The measurement name
//   - tags: Key-value pairs for indexing
//   - fields: Key-value pairs for the data
//   - timestamp: The exact time for this data point
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
