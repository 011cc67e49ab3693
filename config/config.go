package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	LLM struct {
		Provider    string  `mapstructure:"provider"` // "openai" or "gemini"
		Model       string  `mapstructure:"model"`
		Temperature float32 `mapstructure:"temperature"`
	} `mapstructure:"llm"`
	Recommendation struct {
		InteractionTTL time.Duration `mapstructure:"interactionTTL"`
	} `mapstructure:"recommendation"`
}

// Credentials are the provider keys, read from the environment once in main
// and injected into each collaborator at construction time.
type Credentials struct {
	OpenAIAPIKey     string
	GeminiAPIKey     string
	VWorldAPIKey     string
	KMAServiceKey    string
	GoogleMapsAPIKey string
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}
