package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// BBox is a geographic bounding box in WGS84 degrees.
type BBox struct {
	South float64 `mapstructure:"south"`
	West  float64 `mapstructure:"west"`
	North float64 `mapstructure:"north"`
	East  float64 `mapstructure:"east"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Table    string `mapstructure:"table"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
	ObjectPath string `mapstructure:"object_path"`
}

type Config struct {
	CSVPath     string `mapstructure:"csv_path"`
	OutputDir   string `mapstructure:"output_dir"`
	OSMFile     string `mapstructure:"osm_file"`
	Place       string `mapstructure:"place"`
	NetworkType string `mapstructure:"network_type"`
	BBox        BBox   `mapstructure:"bbox"`

	OverpassURL     string        `mapstructure:"overpass_url"`
	OverpassTimeout time.Duration `mapstructure:"overpass_timeout"`
	CacheDir        string        `mapstructure:"cache_dir"`

	Aggregation string  `mapstructure:"aggregation"`
	FuzzyCutoff float64 `mapstructure:"fuzzy_cutoff"`

	ParquetEnabled bool `mapstructure:"parquet_enabled"`

	// Optional edge list sink: "", "console", "kafka", "postgres" or "s3".
	Sink            string             `mapstructure:"sink"`
	KafkaBrokerList string             `mapstructure:"kafka_broker_list"`
	KafkaTopic      string             `mapstructure:"kafka_topic"`
	Database        DatabaseConfig     `mapstructure:"database"`
	CloudStorage    CloudStorageConfig `mapstructure:"cloud_storage"`

	LogLevel string `mapstructure:"log_level"`
}

// LoadConfig initializes and reads the configuration using Viper.
// The config file is optional; flags and defaults cover every setting.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv()

	setDefaults()

	// A missing implicit config file is fine; a present but unparseable
	// one is not.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("csv_path", "Banglore_traffic_Dataset.csv")
	viper.SetDefault("output_dir", "outputs")
	viper.SetDefault("place", "Bangalore, India")
	viper.SetDefault("network_type", "drive")
	// Bangalore metropolitan bounding box.
	viper.SetDefault("bbox.south", 12.834)
	viper.SetDefault("bbox.west", 77.461)
	viper.SetDefault("bbox.north", 13.139)
	viper.SetDefault("bbox.east", 77.784)
	viper.SetDefault("overpass_url", "https://overpass-api.de/api/interpreter")
	viper.SetDefault("overpass_timeout", "180s")
	viper.SetDefault("cache_dir", ".osm-cache")
	viper.SetDefault("aggregation", "mean")
	viper.SetDefault("fuzzy_cutoff", 0.85)
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("kafka_topic", "traffic-graph-edges")
	viper.SetDefault("log_level", "info")
}
