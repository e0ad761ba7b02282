package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	AppModeProduction = "PROD"
	AppModeDevelop    = "DEV"
)

// Inference provider types
const (
	ProviderNVIDIA = "nvidia"
	ProviderOpenAI = "openai"
	ProviderAzure  = "azure"
)

const defaultNVIDIABaseURL = "https://integrate.api.nvidia.com/v1"

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Inference InferenceConfig `yaml:"inference"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Orders    OrdersConfig    `yaml:"orders"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port        int `yaml:"port" env:"PORT"`
	MetricsPort int `yaml:"metrics_port" env:"METRICS_PORT"`
}

// InferenceConfig selects and authenticates the remote language model
type InferenceConfig struct {
	Provider string        `yaml:"provider" env:"INFERENCE_PROVIDER"`
	APIKey   string        `yaml:"api_key" env:"NVIDIA_API_KEY"`
	BaseURL  string        `yaml:"base_url" env:"INFERENCE_BASE_URL"`
	Model    string        `yaml:"model" env:"INFERENCE_MODEL"`
	Timeout  time.Duration `yaml:"timeout" env:"INFERENCE_TIMEOUT"`

	AzureEndpoint   string `yaml:"azure_endpoint" env:"AZURE_OPENAI_ENDPOINT"`
	AzureAPIKey     string `yaml:"azure_api_key" env:"AZURE_OPENAI_API_KEY"`
	AzureDeployment string `yaml:"azure_deployment" env:"AZURE_OPENAI_DEPLOYMENT_NAME"`
}

// Configured reports whether the selected provider has the credentials it needs
func (c InferenceConfig) Configured() bool {
	if c.Provider == ProviderAzure {
		return c.AzureEndpoint != "" && c.AzureAPIKey != "" && c.AzureDeployment != ""
	}
	return c.APIKey != ""
}

type CatalogConfig struct {
	Driver string `yaml:"driver" env:"CATALOG_DRIVER"`
	Path   string `yaml:"path" env:"CATALOG_PATH"`
}

// OrdersConfig holds the demo fulfillment timeline, relative to order creation
type OrdersConfig struct {
	PrepareAfter  time.Duration `yaml:"prepare_after" env:"ORDER_PREPARE_AFTER"`
	DispatchAfter time.Duration `yaml:"dispatch_after" env:"ORDER_DISPATCH_AFTER"`
	DeliverAfter  time.Duration `yaml:"deliver_after" env:"ORDER_DELIVER_AFTER"`
	DeliveryETA   time.Duration `yaml:"delivery_eta" env:"ORDER_DELIVERY_ETA"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
	Mode  string `yaml:"mode" env:"APP_MODE"`
}

// Default returns the configuration used when nothing else is provided
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        3000,
			MetricsPort: 9090,
		},
		Inference: InferenceConfig{
			Provider: ProviderNVIDIA,
			BaseURL:  defaultNVIDIABaseURL,
			Model:    "nvidia/llama-3.1-nemotron-70b-instruct",
			Timeout:  15 * time.Second,
		},
		Catalog: CatalogConfig{
			Driver: "json",
			Path:   "data/restaurants.json",
		},
		Orders: OrdersConfig{
			PrepareAfter:  2 * time.Second,
			DispatchAfter: 10 * time.Second,
			DeliverAfter:  20 * time.Second,
			DeliveryETA:   25 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
			Mode:  AppModeDevelop,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, an optional
// .env file and the process environment, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	for name, section := range map[string]interface{}{
		"server":    &cfg.Server,
		"inference": &cfg.Inference,
		"catalog":   &cfg.Catalog,
		"orders":    &cfg.Orders,
		"auth":      &cfg.Auth,
		"log":       &cfg.Log,
	} {
		if err := env.Parse(section); err != nil {
			return nil, fmt.Errorf("error parsing env %s config: %w", name, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with
func (c *Config) Validate() error {
	switch c.Catalog.Driver {
	case "json", "sqlite":
	default:
		return fmt.Errorf("unsupported catalog driver: %s", c.Catalog.Driver)
	}
	switch c.Inference.Provider {
	case ProviderNVIDIA, ProviderOpenAI, ProviderAzure:
	default:
		return fmt.Errorf("unsupported inference provider: %s", c.Inference.Provider)
	}
	if c.Inference.Timeout <= 0 {
		return fmt.Errorf("inference timeout must be greater than 0")
	}
	o := c.Orders
	if o.PrepareAfter <= 0 || o.DispatchAfter <= o.PrepareAfter || o.DeliverAfter <= o.DispatchAfter {
		return fmt.Errorf("order timeline must be strictly increasing: %s, %s, %s",
			o.PrepareAfter, o.DispatchAfter, o.DeliverAfter)
	}
	return nil
}
