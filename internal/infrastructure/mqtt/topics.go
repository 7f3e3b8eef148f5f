package mqtt

import "fmt"

// Topic prefixes for the controller's MQTT surface.
//
// The controller is publish-mostly: status, events and temperatures go
// out; the only inbound traffic is the command topics, which mirror the
// physical panel buttons for home-automation integrations.
const (
	// TopicPrefix is the base for all controller topics.
	TopicPrefix = "poolcore"

	// TopicPrefixSystem is the base for system lifecycle topics.
	TopicPrefixSystem = "poolcore/system"

	// TopicPrefixCommand is the base for inbound command topics.
	TopicPrefixCommand = "poolcore/command"
)

// Topics provides builders for the controller's MQTT topics. Using these
// helpers keeps topic naming consistent across publisher and subscribers.
type Topics struct{}

// SystemStatus returns the online/offline lifecycle topic. Retained;
// also the Last Will topic.
//
// Example: poolcore/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// Status returns the controller state topic: mode, pump, heater, target
// and measured temperature as one retained JSON document.
//
// Example: poolcore/status
func (Topics) Status() string {
	return fmt.Sprintf("%s/status", TopicPrefix)
}

// Event returns the topic event-log records are mirrored to.
//
// Example: poolcore/event
func (Topics) Event() string {
	return fmt.Sprintf("%s/event", TopicPrefix)
}

// Temperature returns the topic temperature samples are published to.
//
// Example: poolcore/temperature
func (Topics) Temperature() string {
	return fmt.Sprintf("%s/temperature", TopicPrefix)
}

// CommandButton returns the inbound topic for synthetic button presses.
// The payload is the button name, exactly as the status page posts it.
//
// Example: poolcore/command/button
func (Topics) CommandButton() string {
	return fmt.Sprintf("%s/button", TopicPrefixCommand)
}

// CommandTarget returns the inbound topic for target temperature nudges.
// The payload is "up" or "down", one degree per message.
//
// Example: poolcore/command/target
func (Topics) CommandTarget() string {
	return fmt.Sprintf("%s/target", TopicPrefixCommand)
}

// AllCommands returns a pattern matching every inbound command topic.
//
// Pattern: poolcore/command/+
func (Topics) AllCommands() string {
	return fmt.Sprintf("%s/+", TopicPrefixCommand)
}
