package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every policy knob the import pipeline would otherwise
// hard-code.
type Config struct {
	Decoding   DecodingConfig   `yaml:"decoding"`
	Aggregation AggregationConfig `yaml:"aggregation"`
	Detection  DetectionConfig  `yaml:"detection"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// DecodingConfig records the byte-decode fallback order for non-UTF-8
// export files. numeric.DecodeBytes does not read it: the decoder always
// tries UTF-8, then Windows-1252, then ISO-8859-1.
type DecodingConfig struct {
	FallbackOrder []string `yaml:"fallback_order"` // e.g. ["windows1252", "iso8859_1"]
}

// AggregationConfig controls the fill aggregator's grouping granularity.
type AggregationConfig struct {
	BucketDuration time.Duration `yaml:"bucket_duration"`
}

// DetectionConfig holds per-broker counted-signature thresholds for content
// detection. The detector package does not read it: DetectFromContent uses
// its own fixed thresholds, whose values match these defaults.
type DetectionConfig struct {
	NinjaTraderThreshold int `yaml:"ninjatrader_threshold"`
	TradovateThreshold   int `yaml:"tradovate_threshold"`
	MetaTraderThreshold  int `yaml:"metatrader_threshold"`
	BinanceThreshold     int `yaml:"binance_threshold"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level         string `yaml:"level"`          // debug, info, warn, error
	Format        string `yaml:"format"`         // json, console
	OutputPath    string `yaml:"output_path"`    // "" means stdout
	EnableConsole bool   `yaml:"enable_console"`
}

// Load reads configuration from defaults, then environment variables.
func Load() (*Config, error) {
	return LoadWithYAML("")
}

// LoadWithYAML reads configuration from a YAML file and environment
// variables. Environment variables take precedence over YAML file values.
func LoadWithYAML(yamlPath string) (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Decoding: DecodingConfig{
			FallbackOrder: []string{"windows1252", "iso8859_1"},
		},
		Aggregation: AggregationConfig{
			BucketDuration: time.Minute,
		},
		Detection: DetectionConfig{
			NinjaTraderThreshold: 2,
			TradovateThreshold:   2,
			MetaTraderThreshold:  3,
			BinanceThreshold:     2,
		},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			EnableConsole: true,
		},
	}

	if yamlPath != "" {
		if err := loadFromYAML(yamlPath, config); err != nil {
			return nil, fmt.Errorf("failed to load YAML config: %w", err)
		}
	}

	applyEnvironmentOverrides(config)

	return config, nil
}

func loadFromYAML(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

func applyEnvironmentOverrides(config *Config) {
	if val := getEnvAsSlice("DECODING_FALLBACK_ORDER", nil); val != nil {
		config.Decoding.FallbackOrder = val
	}
	if val := getEnvAsDuration("AGGREGATION_BUCKET_DURATION", 0); val != 0 {
		config.Aggregation.BucketDuration = val
	}
	if val := getEnvAsInt("DETECTION_NINJATRADER_THRESHOLD", 0); val != 0 {
		config.Detection.NinjaTraderThreshold = val
	}
	if val := getEnvAsInt("DETECTION_TRADOVATE_THRESHOLD", 0); val != 0 {
		config.Detection.TradovateThreshold = val
	}
	if val := getEnvAsInt("DETECTION_METATRADER_THRESHOLD", 0); val != 0 {
		config.Detection.MetaTraderThreshold = val
	}
	if val := getEnvAsInt("DETECTION_BINANCE_THRESHOLD", 0); val != 0 {
		config.Detection.BinanceThreshold = val
	}
	if val := getEnv("LOG_LEVEL", ""); val != "" {
		config.Logging.Level = val
	}
	if val := getEnv("LOG_FORMAT", ""); val != "" {
		config.Logging.Format = val
	}
	if val := getEnv("LOG_OUTPUT_PATH", ""); val != "" {
		config.Logging.OutputPath = val
	}
	if val := getEnvAsBool("LOG_ENABLE_CONSOLE", false); val {
		config.Logging.EnableConsole = val
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	current := ""
	for _, char := range valueStr {
		if char == ',' {
			if current != "" {
				result = append(result, current)
				current = ""
			}
		} else {
			current += string(char)
		}
	}
	if current != "" {
		result = append(result, current)
	}
	return result
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	switch valueStr {
	case "true", "True", "TRUE", "1", "yes", "Yes", "YES":
		return true
	case "false", "False", "FALSE", "0", "no", "No", "NO":
		return false
	default:
		return defaultValue
	}
}
