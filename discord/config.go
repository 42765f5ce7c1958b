package discord

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the adapter settings, read from BOT_* environment variables.
type Config struct {
	// Token is the bot token, without the "Bot " prefix.
	Token string `required:"true"`

	// SigningKey signs component custom ids. Rotating it invalidates the
	// controls of every message rendered before the rotation.
	SigningKey string `split_words:"true" required:"true"`

	// IdleTimeout is how long a message keeps its controls without activity.
	IdleTimeout time.Duration `split_words:"true" default:"2m"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `split_words:"true" default:"info"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("BOT", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env config: %w", err)
	}

	return cfg, nil
}
