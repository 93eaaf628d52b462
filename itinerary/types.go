package itinerary

// StepKind tags a RouteStep.
type StepKind string

const (
	StepOrigin      StepKind = "origin"
	StepTrain       StepKind = "train"
	StepTransfer    StepKind = "transfer"
	StepDestination StepKind = "destination"
)

// RouteStep is one localized instruction of a route.
type RouteStep struct {
	Kind StepKind `json:"kind"`
	Text string   `json:"text"`
	// StationID is the station the step starts at (origin, ride boarding,
	// transfer start, destination).
	StationID      string `json:"stationId"`
	StationTitle   string `json:"stationTitle,omitempty"`
	ToStationID    string `json:"toStationId,omitempty"`
	ToStationTitle string `json:"toStationTitle,omitempty"`
	// RailwayID is the ridden railway for train steps, and the railway being
	// transferred to for transfer steps.
	RailwayID     string  `json:"railwayId,omitempty"`
	RailwayTitle  string  `json:"railwayTitle,omitempty"`
	FromRailwayID string  `json:"fromRailwayId,omitempty"`
	Operator      string  `json:"operator,omitempty"`
	Stops         int     `json:"stops,omitempty"`
	Minutes       int     `json:"minutes,omitempty"`
	WalkMeters    float64 `json:"walkMeters,omitempty"`
	CrossOperator bool    `json:"crossOperator,omitempty"`
	DelayMinutes  int     `json:"delayMinutes,omitempty"`
}

// Advisory carries display-only scores. It never influences ranking.
type Advisory struct {
	TransferPainIndex float64 `json:"transferPainIndex"`
	CascadeDelayRisk  float64 `json:"cascadeDelayRisk"`
	RiskLevel         string  `json:"riskLevel"`
}

// Costs is the accumulated cost vector of a route as computed by the search.
type Costs struct {
	Time             float64 `json:"time"`
	Fare             float64 `json:"fare"`
	Transfers        int     `json:"transfers"`
	Hops             int     `json:"hops"`
	RailwaySwitches  int     `json:"railwaySwitches"`
	OperatorSwitches int     `json:"operatorSwitches"`
	TransferDistance float64 `json:"transferDistance"`
	Crowding         float64 `json:"crowding"`
}

// RouteOption is one ranked route.
type RouteOption struct {
	Label           string      `json:"label"`
	Strategy        string      `json:"strategy"`
	Steps           []RouteStep `json:"steps"`
	Fare            int         `json:"fare"`
	DurationMinutes int         `json:"durationMinutes"`
	Transfers       int         `json:"transfers"`
	RailwayIDs      []string    `json:"railwayIds"`
	Signature       string      `json:"signature"`
	Score           float64     `json:"score"`
	Costs           Costs       `json:"costs"`
	Advisory        *Advisory   `json:"advisory,omitempty"`
}

// Origin returns the origin station id, or "" for an empty route.
func (r RouteOption) Origin() string {
	if len(r.Steps) == 0 {
		return ""
	}
	return r.Steps[0].StationID
}

// Destination returns the destination station id, or "" for an empty route.
func (r RouteOption) Destination() string {
	if len(r.Steps) == 0 {
		return ""
	}
	return r.Steps[len(r.Steps)-1].StationID
}

// Rides returns the train steps in travel order.
func (r RouteOption) Rides() []RouteStep {
	var out []RouteStep
	for _, s := range r.Steps {
		if s.Kind == StepTrain {
			out = append(out, s)
		}
	}
	return out
}

// TransferSteps returns the transfer steps in travel order.
func (r RouteOption) TransferSteps() []RouteStep {
	var out []RouteStep
	for _, s := range r.Steps {
		if s.Kind == StepTransfer {
			out = append(out, s)
		}
	}
	return out
}
