package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config points the scenarios at a running master. An empty MasterAddr skips them.
type Config struct {
	MasterAddr string `envconfig:"MASTER_ADDR"`
	// Each WithMaster block, streams included, must finish within Timeout
	Timeout   time.Duration `envconfig:"E2E_TIMEOUT" default:"30s"`
	DebugJSON bool          `envconfig:"E2E_DEBUG_JSON" default:"false"`
	Colours   bool          `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
