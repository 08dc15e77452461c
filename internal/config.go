package internal

import (
	"fmt"
	"time"
)

const (
	TypingBackendBadger = "badger"
	TypingBackendRedis  = "redis"
)

type Config struct {
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath        string        `env:"BLUGE_FILEPATH,required=true"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	Host                 string        `env:"HOST,default=0.0.0.0"`
	Port                 int           `env:"PORT,default=8080"`
	MetricsPort          int           `env:"METRICS_PORT,default=9090"`
	DebugPort            int           `env:"DEBUG_PORT"`
	BufferSize           int           `env:"BUFFER_SIZE,default=1024"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=8"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=1s"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s"`
	HealthInterval       time.Duration `env:"HEALTH_INTERVAL,default=5s"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=5s"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=64"`
	LimitMessages        *int          `env:"LIMIT_MESSAGES"`
	TypingStaleAfter     time.Duration `env:"TYPING_STALE_AFTER,default=10s"`
	TypingBackend        string        `env:"TYPING_BACKEND,default=badger"`
	RedisURL             string        `env:"REDIS_URL"`
	ModerationEnabled    bool          `env:"MODERATION_ENABLED,default=true"`
	CharReplacement      string        `env:"CHARACTER_REPLACEMENT,default=*"`
}

// Validate checks the settings that depend on each other.
func (c Config) Validate() error {
	switch c.TypingBackend {
	case TypingBackendBadger:
	case TypingBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when TYPING_BACKEND is %q", TypingBackendRedis)
		}
	default:
		return fmt.Errorf("TYPING_BACKEND must be %q or %q, got %q", TypingBackendBadger, TypingBackendRedis, c.TypingBackend)
	}
	if c.LimitMessages != nil && *c.LimitMessages <= 0 {
		return fmt.Errorf("LIMIT_MESSAGES must be positive, got %d", *c.LimitMessages)
	}
	return nil
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
