package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// DefaultPantryURL is the Pantry basket endpoint with placeholder credentials.
// Operators supply the real pantry ID and basket name via PANTRY_URL.
const DefaultPantryURL = "https://getpantry.cloud/apiv1/pantry/YOUR_PANTRY_ID/basket/YOUR_BASKET_NAME"

// Config holds all job settings, populated from environment variables.
type Config struct {
	LogLevel  string
	LogFormat string

	// Partitioner files.
	PartitionInput            string
	PartitionCompleteOutput   string
	PartitionIncompleteOutput string

	// Standardizer files and cell indexing.
	StandardizeInput     string
	StandardizeOutput    string
	StandardizeCSVOutput string
	CellResolution       int
	CellCacheSize        int

	// Optional Kafka sink for standardized records.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string

	PantryURL     string
	PantryTimeout time.Duration

	PushgatewayURL string
}

// LoadEnvFile loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyFlags copies each explicitly set flag in fs onto its environment
// variable, so Load validates flag and environment values the same way and a
// flag overrides a bad environment value. Unset flags leave the environment
// untouched.
func ApplyFlags(fs *flag.FlagSet, envByFlag map[string]string) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		key, ok := envByFlag[f.Name]
		if !ok || err != nil {
			return
		}
		if setErr := os.Setenv(key, f.Value.String()); setErr != nil {
			err = fmt.Errorf("apply -%s: %w", f.Name, setErr)
		}
	})
	return err
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	resolution, err := parseResolution()
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("CELL_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	pantryTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("PANTRY_TIMEOUT", "0s"))
	if err != nil || pantryTimeout < 0 {
		return nil, errors.New("invalid PANTRY_TIMEOUT")
	}

	var brokers []string
	if s := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); s != "" {
		brokers = sharedcfg.ParseBrokers(s)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		LogLevel:  sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),

		PartitionInput:            sharedcfg.EnvOrDefault("PARTITION_INPUT", "YesBana.json"),
		PartitionCompleteOutput:   sharedcfg.EnvOrDefault("PARTITION_COMPLETE_OUTPUT", "Yesbana.json"),
		PartitionIncompleteOutput: sharedcfg.EnvOrDefault("PARTITION_INCOMPLETE_OUTPUT", "null-objects.json"),

		StandardizeInput:     sharedcfg.EnvOrDefault("STANDARDIZE_INPUT", "YesBana.json"),
		StandardizeOutput:    sharedcfg.EnvOrDefault("STANDARDIZE_OUTPUT", "standardized_output.json"),
		StandardizeCSVOutput: os.Getenv("STANDARDIZE_CSV_OUTPUT"),
		CellResolution:       resolution,
		CellCacheSize:        cacheSize,

		KafkaEnabled:   kafkaEnabled,
		KafkaBrokers:   brokers,
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "standardized-rides"),

		PantryURL:     sharedcfg.EnvOrDefault("PANTRY_URL", DefaultPantryURL),
		PantryTimeout: pantryTimeout,

		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when Kafka is enabled")
	}

	return cfg, nil
}

func parseResolution() (int, error) {
	s := sharedcfg.EnvOrDefault("H3_RESOLUTION", "9")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 15 {
		return 0, fmt.Errorf("invalid H3_RESOLUTION %q: must be 0-15", s)
	}
	return n, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, s)
	}
	return n, nil
}
