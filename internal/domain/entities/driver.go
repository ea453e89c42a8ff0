package entities

// DriverStatus is a typed string enum representing a simulated driver's
// current state.
//
// Go Learning Note — Type Aliases for Enums:
// Go doesn't have a native enum keyword. The idiomatic pattern is to define a
// named type (usually based on string or int) and then declare constants of
// that type. String-based enums are preferred when the value is serialized to
// JSON, because they're human-readable.
type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "available"
	DriverStatusBusy      DriverStatus = "busy"
	DriverStatusOffline   DriverStatus = "offline"
)

// DriverStatuses lists every status in a fixed order for uniform sampling.
var DriverStatuses = []DriverStatus{
	DriverStatusAvailable,
	DriverStatusBusy,
	DriverStatusOffline,
}

// DriverPosition is one synthetic driver on the driver-positions poll.
// Heading is in degrees, [0, 360).
type DriverPosition struct {
	ID       string       `json:"id"`
	Position Position     `json:"position"`
	Heading  float64      `json:"heading"`
	Status   DriverStatus `json:"status"`
	Geohash  string       `json:"geohash"`
}
