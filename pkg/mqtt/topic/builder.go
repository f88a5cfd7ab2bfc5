package topic

import (
	"fmt"
	"strings"

	"github.com/autopeer-io/dashboard/internal/pkg/mqtt/paths"
)

// TopicBuilder encapsulates the logic for constructing MQTT topic strings.
type TopicBuilder struct {
	// root is the base namespace for all topics (e.g., "iov/v1").
	root string
}

// NewTopicBuilder creates a new instance of TopicBuilder with the specified root namespace.
func NewTopicBuilder(root string) *TopicBuilder {
	return &TopicBuilder{root: strings.TrimSuffix(root, "/")}
}

// Telemetry returns the topic a vehicle publishes its readings on.
// Direction: Vehicle -> Display
func (b *TopicBuilder) Telemetry(vehicleID string) string {
	return b.build(paths.Telemetry, vehicleID)
}

// DisplayOnline returns the topic carrying the display presence flag.
func (b *TopicBuilder) DisplayOnline(vehicleID string) string {
	return b.build(paths.DisplayOnline, vehicleID)
}

// VehicleID extracts the trailing identifier of a topic built by this builder.
// It returns false when topic does not live under the given suffix.
func (b *TopicBuilder) VehicleID(suffix, topic string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", b.root, suffix)
	id, ok := strings.CutPrefix(topic, prefix)
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// build is a private helper to construct the final topic string.
// Pattern: {root}/{suffix}/{identifier}
func (b *TopicBuilder) build(suffix, id string) string {
	return fmt.Sprintf("%s/%s/%s", b.root, suffix, id)
}
