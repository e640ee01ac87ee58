package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultDotEnvFile         = ".env"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Scoring tunes the route risk model
	Scoring *ScoringConfig `json:"scoring" yaml:"scoring"`

	// Navigation tunes matching, guidance and rerouting
	Navigation *NavigationConfig `json:"navigation" yaml:"navigation"`

	// Providers configures the external routing, incident, POI and traffic services
	Providers *ProvidersConfig `json:"providers" yaml:"providers"`

	// PubSub configuration for navigation event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// MQTT configuration for the GPS fix stream
	MQTT *MQTTConfig `json:"mqtt" yaml:"mqtt"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// ScoringConfig defines the risk model. Zero values use the built-in defaults,
// except for the pointer fields where zero is a valid setting and only an
// absent key does.
type ScoringConfig struct {
	SegmentLengthMeters  float64       `json:"segmentLengthMeters" yaml:"segmentLengthMeters"`
	POIRadiusMeters      float64       `json:"poiRadiusMeters" yaml:"poiRadiusMeters"`
	IncidentRadiusMeters float64       `json:"incidentRadiusMeters" yaml:"incidentRadiusMeters"`
	POISaturationCount   float64       `json:"poiSaturationCount" yaml:"poiSaturationCount"`
	TrafficDefault       *float64      `json:"trafficDefault" yaml:"trafficDefault"`
	NightStartHour       *int          `json:"nightStartHour" yaml:"nightStartHour"`
	NightEndHour         *int          `json:"nightEndHour" yaml:"nightEndHour"`
	Weights              WeightsConfig `json:"weights" yaml:"weights"`

	// Maximum concurrent traffic flow lookups per scoring request
	FlowFetchWorkers int `json:"flowFetchWorkers" yaml:"flowFetchWorkers"`

	// Extra search radius around candidate routes when planning
	POISearchPaddingMeters    float64 `json:"poiSearchPaddingMeters" yaml:"poiSearchPaddingMeters"`
	IncidentBBoxPaddingMeters float64 `json:"incidentBBoxPaddingMeters" yaml:"incidentBBoxPaddingMeters"`
}

// WeightsConfig holds the linear model coefficients
type WeightsConfig struct {
	Lighting  float64 `json:"lighting" yaml:"lighting"`
	Incident  float64 `json:"incident" yaml:"incident"`
	POISafety float64 `json:"poiSafety" yaml:"poiSafety"`
	Traffic   float64 `json:"traffic" yaml:"traffic"`
	Isolation float64 `json:"isolation" yaml:"isolation"`
	TimeOfDay float64 `json:"timeOfDay" yaml:"timeOfDay"`
}

// NavigationConfig defines guidance thresholds. Zero values use the built-in defaults.
type NavigationConfig struct {
	ArrivalThresholdMeters   float64       `json:"arrivalThresholdMeters" yaml:"arrivalThresholdMeters"`
	DeviationThresholdMeters float64       `json:"deviationThresholdMeters" yaml:"deviationThresholdMeters"`
	LeniencyMeters           float64       `json:"leniencyMeters" yaml:"leniencyMeters"`
	StraightAngleDeg         float64       `json:"straightAngleDeg" yaml:"straightAngleDeg"`
	UTurnAngleDeg            float64       `json:"uTurnAngleDeg" yaml:"uTurnAngleDeg"`
	RerouteDebounce          time.Duration `json:"rerouteDebounce" yaml:"rerouteDebounce"`
	MaxRerouteAttempts       int           `json:"maxRerouteAttempts" yaml:"maxRerouteAttempts"`
	RerouteTimeout           time.Duration `json:"rerouteTimeout" yaml:"rerouteTimeout"`

	// Finished (ARRIVED/ERROR) or idle sessions are dropped after this long
	SessionIdleTTL time.Duration `json:"sessionIdleTTL" yaml:"sessionIdleTTL"`
}

// ProvidersConfig defines the external data collaborators
type ProvidersConfig struct {
	// Per-request timeout applied to every provider call
	Timeout   time.Duration         `json:"timeout" yaml:"timeout"`
	UserAgent string                `json:"userAgent" yaml:"userAgent"`
	Routing   RoutingProviderConfig `json:"routing" yaml:"routing"`
	Incidents IncidentFeedConfig    `json:"incidents" yaml:"incidents"`
	POIs      POISearchConfig       `json:"pois" yaml:"pois"`
	Traffic   TrafficFlowConfig     `json:"traffic" yaml:"traffic"`
}

// RoutingProviderConfig defines the OSRM-compatible routing service
type RoutingProviderConfig struct {
	// Disabled routing falls back to a straight great-circle route
	Enabled bool   `json:"enabled" yaml:"enabled"`
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	Profile string `json:"profile" yaml:"profile"`

	// Default travel speed in km/h for the fallback router's duration estimate
	DefaultSpeedKmh float64 `json:"defaultSpeedKmh" yaml:"defaultSpeedKmh"`
}

// IncidentFeedConfig defines the JSON incident feed
type IncidentFeedConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
}

// POISearchConfig defines the Overpass-compatible POI search
type POISearchConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
}

// TrafficFlowConfig defines the TomTom-compatible traffic flow service
type TrafficFlowConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	APIKey  string `json:"apiKey" yaml:"apiKey"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP, "google" for Google Pub/Sub, empty or "noop" to disable
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// MQTTConfig defines the broker GPS fixes are consumed from
type MQTTConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Broker   string `json:"broker" yaml:"broker"`
	ClientID string `json:"clientId" yaml:"clientId"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`

	// Fixes are read from {topicPrefix}/{sessionID}/position
	TopicPrefix string `json:"topicPrefix" yaml:"topicPrefix"`
	QoS         byte   `json:"qos" yaml:"qos"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: SCORING_SEGMENTLENGTHMETERS -> scoring.segmentLengthMeters
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	// Local secrets (provider API keys) may live in a .env file
	if err := loadDotEnv(defaultDotEnvFile); err != nil {
		return nil, err
	}

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "load %s", path)
	}

	return nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Scoring == nil {
		cfg.Scoring = &ScoringConfig{}
	}
	if cfg.Navigation == nil {
		cfg.Navigation = &NavigationConfig{}
	}
	if cfg.Providers == nil {
		cfg.Providers = &ProvidersConfig{}
	}
	if cfg.PubSub == nil {
		cfg.PubSub = &PubSubConfig{}
	}
	if cfg.MQTT == nil {
		cfg.MQTT = &MQTTConfig{}
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
