package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Host  string `yaml:"host"`
		Port  int    `yaml:"port"`
		Debug bool   `yaml:"debug"`
	} `yaml:"server"`

	Fetch struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"fetch"`

	Audio struct {
		TempDir    string `yaml:"temp_dir"`
		SampleRate int    `yaml:"sample_rate"`
	} `yaml:"audio"`

	Recognition struct {
		Endpoint           string  `yaml:"endpoint"`
		APIKey             string  `yaml:"api_key"`
		Language           string  `yaml:"language"`
		CalibrationSeconds float64 `yaml:"calibration_seconds"`
	} `yaml:"recognition"`

	Firestore struct {
		CredentialsFile string `yaml:"credentials_file"`
		CredentialsJSON string `yaml:"-"` // env only, never from file
		Collection      string `yaml:"collection"`
		SourceTag       string `yaml:"source_tag"`
	} `yaml:"firestore"`

	History struct {
		Database string `yaml:"database"`
	} `yaml:"history"`

	Cleanup struct {
		IntervalMinutes int `yaml:"interval_minutes"`
		MaxAgeHours     int `yaml:"max_age_hours"`
	} `yaml:"cleanup"`
}

// Default returns a Config that lets the service run with no config file present.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5000
	cfg.Fetch.TimeoutSeconds = 30
	cfg.Audio.TempDir = "temp"
	cfg.Audio.SampleRate = 16000
	cfg.Recognition.Endpoint = "http://www.google.com/speech-api/v2/recognize"
	cfg.Recognition.Language = "en-US"
	cfg.Recognition.CalibrationSeconds = 0.5
	cfg.Firestore.CredentialsFile = "./keys/serviceAccountKey.json"
	cfg.Firestore.Collection = "voice_transcriptions"
	cfg.Firestore.SourceTag = "Treatment Eight"
	cfg.History.Database = "data/history.db"
	cfg.Cleanup.IntervalMinutes = 30
	cfg.Cleanup.MaxAgeHours = 24
	return cfg
}

// Load reads the YAML config at path (optional) and applies environment
// overrides on top. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides file values with environment variables when set
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Server.Debug = debug
		}
	}
	if v := os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY"); v != "" {
		c.Firestore.CredentialsJSON = v
	}
	if v := os.Getenv("FIREBASE_CREDENTIALS_FILE"); v != "" {
		c.Firestore.CredentialsFile = v
	}
	if v := os.Getenv("SPEECH_API_KEY"); v != "" {
		c.Recognition.APIKey = v
	}
}
