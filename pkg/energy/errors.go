package energy

import "errors"

// ErrNoReadings is returned when the store holds no readings yet. Callers
// distinguish it from general store failure so an empty state can be rendered
// instead of an error.
var ErrNoReadings = errors.New("no sensor data found")
