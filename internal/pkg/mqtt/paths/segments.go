package paths

// Topic segments for dashboard traffic.
// These constants define the routing contract between vehicles and displays.

// Upstream: Vehicle -> Display
const (
	// Telemetry is the topic segment for partial telemetry readings.
	// Payload: { "velocity": 120, "gearbox_state": "3", ... }
	// Pattern: {root}/telemetry/{vehicleID}
	Telemetry = "telemetry"
)

// Display -> Fleet
const (
	// DisplayOnline is the topic segment where a display reports whether it is up.
	// Payload: { "online": true/false }
	// Pattern: {root}/display/online/{vehicleID}
	DisplayOnline = "display/online"
)
