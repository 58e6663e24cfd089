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
	Metrics struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Completion struct {
		Provider    string        `mapstructure:"provider"`
		Temperature float64       `mapstructure:"temperature"`
		MaxTokens   int           `mapstructure:"maxTokens"`
		Timeout     time.Duration `mapstructure:"timeout"`
		Perplexity struct {
			Model   string `mapstructure:"model"`
			BaseURL string `mapstructure:"baseURL"`
		} `mapstructure:"perplexity"`
		Gemini struct {
			Model string `mapstructure:"model"`
		} `mapstructure:"gemini"`
	} `mapstructure:"completion"`
	Prompt struct {
		Mode string `mapstructure:"mode"`
	} `mapstructure:"prompt"`
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
