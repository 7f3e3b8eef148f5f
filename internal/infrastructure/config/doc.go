// Package config handles loading and validating the pool controller's
// runtime configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables (POOLCORE_*)
//   - Validation of required fields
//   - Default value handling
//
// The persisted operator settings (filter durations, heater enable) are
// not configuration: they live in the settings package and are edited
// from the control panel. This package covers deployment concerns only.
//
// Security Considerations:
//   - Sensitive values (MQTT password, InfluxDB token) should be set via
//     environment variables rather than the file
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Site.Name)
package config
