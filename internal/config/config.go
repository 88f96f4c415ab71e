package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Backend struct {
	BaseURL string        `yaml:"BASE_URL" env:"BACKEND_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"TIMEOUT" env:"BACKEND_TIMEOUT" env-default:"15s"`
}

type SessionConfig struct {
	// TokenPath is where the bearer token lives; empty means
	// ~/.shop-smart/token.
	TokenPath string `yaml:"TOKEN_PATH" env:"SESSION_TOKEN_PATH" env-default:""`
}

type Payment struct {
	KeyID        string `yaml:"RAZORPAY_KEY_ID" env:"RAZORPAY_KEY_ID" env-default:""`
	MerchantName string `yaml:"MERCHANT_NAME" env:"MERCHANT_NAME" env-default:"Shop Smart"`
}

type StoreConfig struct {
	DebounceInterval time.Duration `yaml:"DEBOUNCE_INTERVAL" env:"DEBOUNCE_INTERVAL" env-default:"300ms"`
	CommitDelay      time.Duration `yaml:"COMMIT_DELAY" env:"COMMIT_DELAY" env-default:"500ms"`
}

type Ops struct {
	Addr string `yaml:"address" env:"OPS_ADDR" env-default:"127.0.0.1:9090"`
}

type Telemetry struct {
	// OTLPEndpoint enables trace export when set, e.g. "otel:4318".
	OTLPEndpoint string `yaml:"OTLP_ENDPOINT" env:"OTLP_ENDPOINT" env-default:""`
}

type Config struct {
	Env       string        `yaml:"env" env:"ENV" env-default:"production"`
	Backend   Backend       `yaml:"backend"`
	Session   SessionConfig `yaml:"session"`
	Payment   Payment       `yaml:"payment"`
	Store     StoreConfig   `yaml:"store"`
	Ops       Ops           `yaml:"ops"`
	Telemetry Telemetry     `yaml:"telemetry"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to the configuration file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, err
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// TokenPath resolves the configured token location, defaulting to a dotfile
// under the user's home directory.
func (c *Config) TokenPath() string {
	if c.Session.TokenPath != "" {
		return c.Session.TokenPath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "shop-smart-token")
	}

	return filepath.Join(home, ".shop-smart", "token")
}
