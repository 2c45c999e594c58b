// Package bootstrap prepares the process-wide configuration, logger, business
// timezone and database handle shared by the CLI sub-commands.
package bootstrap

import (
	"fmt"

	"github.com/orris-inc/movecomments/internal/infrastructure/config"
	"github.com/orris-inc/movecomments/internal/infrastructure/database"
	"github.com/orris-inc/movecomments/internal/shared/biztime"
	"github.com/orris-inc/movecomments/internal/shared/logger"
)

// Init loads configuration for env, initializes logging and the business
// timezone, and opens the database. Callers close it with database.Close.
func Init(env, configPath string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = GinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// GinMode maps an environment name to a gin mode.
func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
