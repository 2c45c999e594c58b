package migration

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/movecomments/internal/shared/logger"
)

//go:embed scripts
var scriptsFS embed.FS

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate executes the migration strategy
	Migrate(db *gorm.DB, models ...interface{}) error
	// GetName returns the strategy name
	GetName() string
}

// GormAutoMigrateStrategy creates or alters tables straight from the models.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		models = AutoMigrateModels()
	}

	s.logger.Infow("starting gorm auto migration", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// GooseStrategy applies the embedded, versioned SQL scripts for one dialect.
type GooseStrategy struct {
	dialect goose.Dialect
	// scriptsDir is the on-disk directory new migrations are created in.
	scriptsDir string
	logger     logger.Interface
}

// NewGooseStrategy creates a goose strategy for driver ("mysql" or "sqlite").
func NewGooseStrategy(driver, scriptsDir string) (*GooseStrategy, error) {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return nil, err
	}

	return &GooseStrategy{
		dialect:    dialect,
		scriptsDir: scriptsDir,
		logger:     logger.NewLogger().With("component", "migration.goose"),
	}, nil
}

func gooseDialect(driver string) (goose.Dialect, error) {
	switch driver {
	case "mysql", "":
		return goose.DialectMySQL, nil
	case "sqlite":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported migration driver: %s", driver)
	}
}

// scriptsSubdir names the embedded directory holding a dialect's scripts.
func (s *GooseStrategy) scriptsSubdir() string {
	if s.dialect == goose.DialectSQLite3 {
		return "scripts/sqlite"
	}
	return "scripts/mysql"
}

func (s *GooseStrategy) provider(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	fsys, err := fs.Sub(scriptsFS, s.scriptsSubdir())
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}

	p, err := goose.NewProvider(s.dialect, sqlDB, fsys, goose.WithGoMigrations(goMigrations()...))
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}

	return p, nil
}

func (s *GooseStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	ctx := context.Background()
	s.logger.Infow("starting goose migration", "dialect", s.dialect)

	p, err := s.provider(db)
	if err != nil {
		return err
	}

	currentVersion, err := p.GetDBVersion(ctx)
	if err != nil {
		s.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	results, err := p.Up(ctx)
	if err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion,
		"applied", len(results))

	return nil
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	ctx := context.Background()
	s.logger.Infow("starting down migration", "steps", steps)

	p, err := s.provider(db)
	if err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if _, err := p.Down(ctx); err != nil {
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	s.logger.Infow("down migration completed successfully")
	return nil
}

func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	p, err := s.provider(db)
	if err != nil {
		return 0, err
	}

	version, err := p.GetDBVersion(context.Background())
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}

	return version, nil
}

// MigrationState is one script's applied state.
type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

func (s *GooseStrategy) Status(db *gorm.DB) ([]MigrationState, error) {
	p, err := s.provider(db)
	if err != nil {
		return nil, err
	}

	statuses, err := p.Status(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	states := make([]MigrationState, 0, len(statuses))
	for _, st := range statuses {
		states = append(states, MigrationState{
			Version: st.Source.Version,
			Path:    st.Source.Path,
			Applied: st.State == goose.StateApplied,
		})
	}

	return states, nil
}

// Create writes a new, empty SQL migration into the on-disk scripts directory
// for this dialect.
func (s *GooseStrategy) Create(name string) error {
	if s.scriptsDir == "" {
		return fmt.Errorf("scripts directory is not configured")
	}

	if err := goose.Create(nil, s.scriptsDir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	s.logger.Infow("migration created successfully", "name", name, "dir", s.scriptsDir)
	return nil
}
