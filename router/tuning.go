package router

// Tuning holds every empirically tuned constant of the cost model. Values are
// estimates fitted against reference travel times; override them from
// configuration rather than editing the defaults.
type Tuning struct {
	// HeuristicMinutesPerKm converts great-circle distance to a lower bound
	// on remaining travel time (0.5 = 120 km/h).
	HeuristicMinutesPerKm float64 `yaml:"heuristicMinutesPerKm" json:"heuristicMinutesPerKm" validate:"gte=0"`

	WalkMetersPerMinute   float64 `yaml:"walkMetersPerMinute" json:"walkMetersPerMinute" validate:"gt=0"`
	DefaultTransferMeters float64 `yaml:"defaultTransferMeters" json:"defaultTransferMeters" validate:"gte=0"`
	AliasTransferMeters   float64 `yaml:"aliasTransferMeters" json:"aliasTransferMeters" validate:"gte=0"`
	OutOfStationMinutes   float64 `yaml:"outOfStationMinutes" json:"outOfStationMinutes" validate:"gte=0"`
	CrossOperatorMinutes  float64 `yaml:"crossOperatorMinutes" json:"crossOperatorMinutes" validate:"gte=0"`

	// Trips whose origin and destination are closer than ShortTripKm scale
	// down hub buffers and boarding waits.
	ShortTripKm        float64 `yaml:"shortTripKm" json:"shortTripKm" validate:"gte=0"`
	ShortTripHubScale  float64 `yaml:"shortTripHubScale" json:"shortTripHubScale" validate:"gte=0,lte=1"`
	ShortTripWaitScale float64 `yaml:"shortTripWaitScale" json:"shortTripWaitScale" validate:"gte=0,lte=1"`

	BoardingWaitMinutes float64 `yaml:"boardingWaitMinutes" json:"boardingWaitMinutes" validate:"gte=0"`
	MetroWaitScale      float64 `yaml:"metroWaitScale" json:"metroWaitScale" validate:"gte=0,lte=1"`

	MetroMinutesPerEdge        float64 `yaml:"metroMinutesPerEdge" json:"metroMinutesPerEdge" validate:"gt=0"`
	JRMinutesPerEdge           float64 `yaml:"jrMinutesPerEdge" json:"jrMinutesPerEdge" validate:"gt=0"`
	PrivateMinutesPerEdge      float64 `yaml:"privateMinutesPerEdge" json:"privateMinutesPerEdge" validate:"gt=0"`
	DefaultRapidMinutesPerEdge float64 `yaml:"defaultRapidMinutesPerEdge" json:"defaultRapidMinutesPerEdge" validate:"gt=0"`

	// Transfer pain penalty.
	FloorChangeMinutes    float64            `yaml:"floorChangeMinutes" json:"floorChangeMinutes" validate:"gte=0"`
	VerticalAccessMinutes map[string]float64 `yaml:"verticalAccessMinutes" json:"verticalAccessMinutes"`
	TurnMinutes           float64            `yaml:"turnMinutes" json:"turnMinutes" validate:"gte=0"`
	SignagePenaltyMinutes float64            `yaml:"signagePenaltyMinutes" json:"signagePenaltyMinutes" validate:"gte=0"`

	// ClassCrowding weights ride minutes by service class ("metro", "jr",
	// "private", "rapid"); TransferCrowdingWeight scales a transfer's crowd level.
	ClassCrowding          map[string]float64 `yaml:"classCrowding" json:"classCrowding"`
	TransferCrowdingWeight float64            `yaml:"transferCrowdingWeight" json:"transferCrowdingWeight" validate:"gte=0"`

	FareTables  map[string]FareTable `yaml:"fareTables" json:"fareTables"`
	DefaultFare FareTable            `yaml:"defaultFare" json:"defaultFare"`

	DefaultMaxHops        int `yaml:"defaultMaxHops" json:"defaultMaxHops" validate:"gte=0"`
	MinMaxHops            int `yaml:"minMaxHops" json:"minMaxHops" validate:"gte=1"`
	MaxLabelsPerSignature int `yaml:"maxLabelsPerSignature" json:"maxLabelsPerSignature" validate:"gte=1"`
	CancelCheckInterval   int `yaml:"cancelCheckInterval" json:"cancelCheckInterval" validate:"gte=1"`
}

// DefaultTuning returns the reference tuning.
func DefaultTuning() Tuning {
	return Tuning{
		HeuristicMinutesPerKm: 0.5,

		WalkMetersPerMinute:   80,
		DefaultTransferMeters: 120,
		AliasTransferMeters:   60,
		OutOfStationMinutes:   5,
		CrossOperatorMinutes:  3,

		ShortTripKm:        5,
		ShortTripHubScale:  0.5,
		ShortTripWaitScale: 0.6,

		BoardingWaitMinutes: 4,
		MetroWaitScale:      0.6,

		MetroMinutesPerEdge:        2,
		JRMinutesPerEdge:           2.5,
		PrivateMinutesPerEdge:      3,
		DefaultRapidMinutesPerEdge: 4,

		FloorChangeMinutes: 0.5,
		VerticalAccessMinutes: map[string]float64{
			"stairs":    0.4,
			"escalator": 0.2,
			"elevator":  0.8,
		},
		TurnMinutes:           0.2,
		SignagePenaltyMinutes: 2,

		ClassCrowding: map[string]float64{
			"metro":   1.0,
			"jr":      1.2,
			"private": 0.8,
			"rapid":   1.1,
		},
		TransferCrowdingWeight: 10,

		FareTables:  defaultFareTables(),
		DefaultFare: FareTable{Tiers: []FareTier{{4, 200}, {8, 250}, {15, 330}, {25, 430}}, ExtraPerHop: 10},

		DefaultMaxHops:        30,
		MinMaxHops:            4,
		MaxLabelsPerSignature: 2,
		CancelCheckInterval:   256,
	}
}

// withDefaults fills zero speeds, tables and limits from DefaultTuning.
// Penalties and weights are left alone since zero is a meaningful setting.
func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.WalkMetersPerMinute <= 0 {
		t.WalkMetersPerMinute = d.WalkMetersPerMinute
	}
	if t.MetroMinutesPerEdge <= 0 {
		t.MetroMinutesPerEdge = d.MetroMinutesPerEdge
	}
	if t.JRMinutesPerEdge <= 0 {
		t.JRMinutesPerEdge = d.JRMinutesPerEdge
	}
	if t.PrivateMinutesPerEdge <= 0 {
		t.PrivateMinutesPerEdge = d.PrivateMinutesPerEdge
	}
	if t.DefaultRapidMinutesPerEdge <= 0 {
		t.DefaultRapidMinutesPerEdge = d.DefaultRapidMinutesPerEdge
	}
	if t.VerticalAccessMinutes == nil {
		t.VerticalAccessMinutes = d.VerticalAccessMinutes
	}
	if t.ClassCrowding == nil {
		t.ClassCrowding = d.ClassCrowding
	}
	if t.FareTables == nil {
		t.FareTables = d.FareTables
	}
	if len(t.DefaultFare.Tiers) == 0 {
		t.DefaultFare = d.DefaultFare
	}
	if t.DefaultMaxHops <= 0 {
		t.DefaultMaxHops = d.DefaultMaxHops
	}
	if t.MinMaxHops <= 0 {
		t.MinMaxHops = d.MinMaxHops
	}
	if t.MaxLabelsPerSignature <= 0 {
		t.MaxLabelsPerSignature = d.MaxLabelsPerSignature
	}
	if t.CancelCheckInterval <= 0 {
		t.CancelCheckInterval = d.CancelCheckInterval
	}
	return t
}

// maxHops applies the default and lower bound to a requested hop limit.
func (t Tuning) maxHops(requested int) int {
	if requested <= 0 {
		requested = t.DefaultMaxHops
	}
	if requested < t.MinMaxHops {
		requested = t.MinMaxHops
	}
	return requested
}
