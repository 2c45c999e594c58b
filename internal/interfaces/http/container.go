package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orris-inc/movecomments/internal/infrastructure/auth"
	"github.com/orris-inc/movecomments/internal/infrastructure/cache"
	"github.com/orris-inc/movecomments/internal/infrastructure/config"
	"github.com/orris-inc/movecomments/internal/infrastructure/permission"
	"github.com/orris-inc/movecomments/internal/interfaces/http/middleware"
	"github.com/orris-inc/movecomments/internal/shared/logger"
)

// Container holds the infrastructure components, repositories and use cases
// and wires them together. The HTTP router and the CLI share one Container.
type Container struct {
	db    *gorm.DB
	cfg   *config.Config
	log   logger.Interface
	redis *redis.Client

	enforcer       *permission.Enforcer
	visibility     *permission.ProjectVisibility
	candidateCache cache.CandidateTicketCache

	repos *repositories
	ucs   *UseCases

	jwtSvc         *auth.JWTService
	authMiddleware *middleware.AuthMiddleware
	searchLimiter  *middleware.RateLimiter
}

// NewContainer builds every component from cfg. Redis and the casbin
// enforcer are only created when enabled.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		db:  db,
		cfg: cfg,
		log: log,
	}

	if err := c.initInfrastructure(); err != nil {
		c.Shutdown()
		return nil, err
	}

	c.repos = newRepositories(db, cfg)
	c.ucs = c.newUseCases()

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.searchLimiter = middleware.NewRateLimiter(c.redis, "search", cfg.MoveComments.SearchRateLimitPerMinute, time.Minute, log)

	return c, nil
}

func (c *Container) initInfrastructure() error {
	if c.cfg.Redis.Enabled {
		client, err := initRedis(c.cfg, c.log)
		if err != nil {
			return err
		}
		c.redis = client
		c.candidateCache = cache.NewRedisCandidateTicketCache(client, c.log.Named("cache.candidates"))
	}

	if c.cfg.Permission.Enabled {
		enforcer, err := permission.NewEnforcer(c.db, c.cfg.Permission.ModelPath, c.log.Named("permission"))
		if err != nil {
			return fmt.Errorf("failed to initialize permission enforcer: %w", err)
		}
		c.enforcer = enforcer
		c.visibility = permission.NewProjectVisibility(enforcer)
	}

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// UseCases returns the wired application use cases.
func (c *Container) UseCases() *UseCases {
	return c.ucs
}

// Visibility returns the project visibility service, or nil when permissions
// are disabled.
func (c *Container) Visibility() *permission.ProjectVisibility {
	return c.visibility
}

// JWTService returns the token service used by the auth middleware.
func (c *Container) JWTService() *auth.JWTService {
	return c.jwtSvc
}

// Shutdown releases the Redis connection.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
		c.redis = nil
	}
}
