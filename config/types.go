package config

import "github.com/losangeles1156/lutagu-mvp-sub001/router"

// ServerConfig contains server configuration
type ServerConfig struct {
	Port           int      `yaml:"port" validate:"gt=0,lte=65535"`
	QueryTimeoutMS int      `yaml:"queryTimeoutMS" validate:"gte=0"`
	CORSOrigins    []string `yaml:"corsOrigins" validate:"dive,required"`
	GinMode        string   `yaml:"ginMode" validate:"omitempty,oneof=debug release test"`
}

// TopologyConfig locates the static topology snapshot.
type TopologyConfig struct {
	// SnapshotPath is a JSON/YAML/gob file path or URL.
	SnapshotPath string `yaml:"snapshotPath" validate:"required_without=GTFSStaticURL"`
	// GTFSStaticURL is a GTFS static zip path or URL used when no snapshot is given.
	GTFSStaticURL string `yaml:"gtfsStaticURL" validate:"omitempty"`
	// CachePath stores a gob copy of the loaded snapshot for faster restarts.
	CachePath  string `yaml:"cachePath"`
	SnapshotID string `yaml:"snapshotId"`
	// Snapshots maps further snapshot ids to JSON/YAML/gob paths or URLs.
	// They are loaded on first request and may be evicted.
	Snapshots map[string]string `yaml:"snapshots" validate:"dive,keys,required,endkeys,required"`
}

// TrafficConfig contains live disruption feed configuration
type TrafficConfig struct {
	ServiceAlertsURL      string            `yaml:"serviceAlertsURL" validate:"omitempty"`
	TripUpdatesURL        string            `yaml:"tripUpdatesURL" validate:"omitempty"`
	StatusURL             string            `yaml:"statusURL" validate:"omitempty"`
	RouteMap              map[string]string `yaml:"routeMap"`
	DelayThresholdMinutes int               `yaml:"delayThresholdMinutes" validate:"gte=0"`
	ReadIntervalMS        int               `yaml:"readIntervalMS" validate:"gte=0"`
	TimeoutMS             int               `yaml:"timeoutMS" validate:"gte=0"`
}

// RouterConfig contains query defaults and cost-model overrides
type RouterConfig struct {
	DefaultMaxHops int           `yaml:"defaultMaxHops" validate:"gte=0"`
	DefaultLocale  string        `yaml:"defaultLocale"`
	Tuning         router.Tuning `yaml:"tuning"`
}

// CacheConfig sizes the response cache and the engine registry
type CacheConfig struct {
	Size       int `yaml:"size" validate:"gte=0"`
	TTLSeconds int `yaml:"ttlSeconds" validate:"gte=0"`
	Engines    int `yaml:"engines" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Topology TopologyConfig `yaml:"topology"`
	Traffic  TrafficConfig  `yaml:"traffic"`
	Router   RouterConfig   `yaml:"router"`
	Cache    CacheConfig    `yaml:"cache"`
}
