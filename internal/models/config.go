package models

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DefaultSpecialCustomers are the customers whose post-cutoff pickups move to
// the next-day bucket. Overridable via config; these are the contractual
// defaults.
var DefaultSpecialCustomers = []string{
	"WESTSIDE UNIT OF TRENT LIMITED",
	"TATA CLiQ",
	"ZISHTA TRADITIONS PRIVATE LIMITED",
	"Heads Up for Tails HUFT",
}

// DefaultCutoffHour is the hour-of-day at or after which a special customer's
// pickup reclassifies the order from same-day to next-day eligibility.
const DefaultCutoffHour = 15

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type Config struct {
	InputFile   string `mapstructure:"input_file"`
	Source      string `mapstructure:"source"` // "csv" or "postgres"
	DatabaseURL string `mapstructure:"database_url"`

	// Months holds reporting windows as YYYY-MM strings; empty means every
	// month present in the loaded data.
	Months []string `mapstructure:"months"`

	SpecialCustomers []string `mapstructure:"special_customers"`
	CutoffHour       int      `mapstructure:"cutoff_hour"`
	TopN             int      `mapstructure:"top_n"`

	OutputFormat      string `mapstructure:"output_format"` // csv, json, parquet, console
	OutputPath        string `mapstructure:"output_path"`
	OutputFolder      string `mapstructure:"output_folder"`
	OutputDestination string `mapstructure:"output_destination"` // "local" or a cloud provider

	KafkaEnabled     bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList  string `mapstructure:"kafka_broker_list"`
	KafkaTopicPrefix string `mapstructure:"kafka_topic_prefix"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms"`

	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`

	ShowProgress bool `mapstructure:"show_progress"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("source", "csv")
	viper.SetDefault("special_customers", DefaultSpecialCustomers)
	viper.SetDefault("cutoff_hour", DefaultCutoffHour)
	viper.SetDefault("top_n", 10)
	viper.SetDefault("output_format", "csv")
	viper.SetDefault("output_destination", "local")
	viper.SetDefault("kafka_topic_prefix", "parcelperf")

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine; flags and defaults carry the run.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if config.CutoffHour < 0 || config.CutoffHour > 23 {
		return nil, fmt.Errorf("cutoff_hour %d outside 0-23", config.CutoffHour)
	}

	return &config, nil
}
