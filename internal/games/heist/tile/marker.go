package tile

// Marker is a spawn directive character. Layout files may place markers in the
// grid itself, where they are stored as negative codes until the room populates.
type Marker rune

const (
	MarkerBox         Marker = 'b'
	MarkerRedBox      Marker = 'r'
	MarkerMetalLocker Marker = 'M'
	MarkerWoodLocker  Marker = 'W'
	MarkerCard        Marker = 'k'
	MarkerLadder      Marker = 'H'
	MarkerComputer    Marker = 'P'
	MarkerDrone       Marker = 'd'
	MarkerDog         Marker = 'g'
	MarkerPlayer      Marker = '@'
)

var markerOrder = []Marker{
	MarkerBox, MarkerRedBox, MarkerMetalLocker, MarkerWoodLocker, MarkerCard,
	MarkerLadder, MarkerComputer, MarkerDrone, MarkerDog, MarkerPlayer,
}

// Code returns the transient negative grid code of the marker.
func (m Marker) Code() int {
	for i, o := range markerOrder {
		if o == m {
			return -(i + 1)
		}
	}
	return Empty
}

// Valid reports whether m is a known marker.
func (m Marker) Valid() bool {
	return m.Code() != Empty
}

// MarkerFromCode maps a negative grid code back to its marker.
func MarkerFromCode(code int) (Marker, bool) {
	i := -code - 1
	if i < 0 || i >= len(markerOrder) {
		return 0, false
	}
	return markerOrder[i], true
}

func (m Marker) String() string {
	switch m {
	case MarkerBox:
		return "box"
	case MarkerRedBox:
		return "red box"
	case MarkerMetalLocker:
		return "metal locker"
	case MarkerWoodLocker:
		return "wood locker"
	case MarkerCard:
		return "card"
	case MarkerLadder:
		return "ladder"
	case MarkerComputer:
		return "computer"
	case MarkerDrone:
		return "drone"
	case MarkerDog:
		return "dog"
	case MarkerPlayer:
		return "player"
	default:
		return "unknown"
	}
}
