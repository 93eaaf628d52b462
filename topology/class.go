package topology

import "strings"

// ServiceClass buckets operators by how dense their service is. It drives the
// per-edge travel time, boarding wait and crowding estimates.
type ServiceClass int

const (
	ClassPrivate ServiceClass = iota
	ClassMetro
	ClassJR
	ClassRapid
)

var metroOperators = map[string]bool{
	"tokyometro": true,
	"toei":       true,
}

// ClassOf classifies an operator key ("TokyoMetro", "JR-East", "Odakyu").
func ClassOf(operatorKey string) ServiceClass {
	k := strings.ToLower(operatorKey)
	switch {
	case metroOperators[k]:
		return ClassMetro
	case strings.HasPrefix(k, "jr"):
		return ClassJR
	default:
		return ClassPrivate
	}
}

func (c ServiceClass) String() string {
	switch c {
	case ClassMetro:
		return "metro"
	case ClassJR:
		return "jr"
	case ClassRapid:
		return "rapid"
	default:
		return "private"
	}
}
