package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	Mode     string `mapstructure:"mode"`
	Timezone string `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	// clientFoundRows makes RowsAffected count matched rows, so an update that
	// leaves a row unchanged is not mistaken for a missing row.
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC&clientFoundRows=true",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format" validate:"oneof=console json"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret" validate:"required"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type PermissionConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	ModelPath string `mapstructure:"model_path"`
}

// MoveCommentsConfig holds the on/off switches of the move-comment feature.
// Each candidate source is enabled independently.
type MoveCommentsConfig struct {
	ShowUserTickets          bool `mapstructure:"show_user_tickets"`
	ShowAssignedTickets      bool `mapstructure:"show_assigned_tickets"`
	EnableSearch             bool `mapstructure:"enable_search"`
	IncludeProjectName       bool `mapstructure:"include_project_name"`
	CandidateLimit           int  `mapstructure:"candidate_limit" validate:"gte=0"`
	CandidateCacheTTLSeconds int  `mapstructure:"candidate_cache_ttl_seconds" validate:"gte=0"`
	AttachmentOriginTracking bool `mapstructure:"attachment_origin_tracking"`
	SearchRateLimitPerMinute int  `mapstructure:"search_rate_limit_per_minute" validate:"gte=0"`
}

func (m *MoveCommentsConfig) CandidateCacheTTL() time.Duration {
	return time.Duration(m.CandidateCacheTTLSeconds) * time.Second
}

// CandidatesEnabled reports whether any candidate source is switched on.
func (m *MoveCommentsConfig) CandidatesEnabled() bool {
	return m.ShowUserTickets || m.ShowAssignedTickets
}
