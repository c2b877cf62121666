package enums

import "fmt"

// TravelMode selects how a commute route is computed.
type TravelMode string

const (
	TravelModeDrive   TravelMode = "drive"
	TravelModeWalk    TravelMode = "walk"
	TravelModeBicycle TravelMode = "bicycle"
	TravelModeTransit TravelMode = "transit"
)

var validTravelModes = []TravelMode{
	TravelModeDrive,
	TravelModeWalk,
	TravelModeBicycle,
	TravelModeTransit,
}

// String implements fmt.Stringer.
func (t TravelMode) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TravelMode.
func (t TravelMode) IsValid() bool {
	for _, candidate := range validTravelModes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTravelMode converts raw input into a TravelMode.
func ParseTravelMode(value string) (TravelMode, error) {
	for _, candidate := range validTravelModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid travel mode %q", value)
}
