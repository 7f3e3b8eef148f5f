// Package mqtt provides MQTT client connectivity for the pool controller.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// MQTT is optional: a controller with no broker configured runs fully
// standalone. When enabled it publishes controller status, event-log
// records and temperature samples for home-automation consumers, and
// accepts synthetic button presses on the command topics so the physical
// panel can be mirrored remotely.
//
// # Security Considerations
//
//   - TLS is required for non-LAN deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anyone with write access to the command topics can operate the
//     pool equipment; scope broker ACLs accordingly
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.CommandButton(), 1,
//	    func(topic string, payload []byte) error {
//	        return pressButton(string(payload))
//	    })
//
//	client.PublishRetained(mqtt.Topics{}.Status(), statusJSON)
package mqtt
