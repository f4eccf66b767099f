package factory

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"userregistry/internal/config"
	"userregistry/internal/database"
	"userregistry/internal/domain"
	"userregistry/internal/repository"
	"userregistry/internal/service"
	"userregistry/pkg/cache"
	"userregistry/pkg/logger"
)

type Factory interface {
	GetLogger() logger.Logger
	GetConfig() *config.Config
	GetDB() *sql.DB
	GetUserRepository() domain.UserRepository
	GetUserService() *service.UserService

	// SeedUsers stores users that are not yet persisted and registers all of
	// them with the in-memory service.
	SeedUsers(users []domain.User) error
	Close() error
}

type AppFactory struct {
	config      *config.Config
	logger      logger.Logger
	db          *sql.DB
	redisClient *redis.Client

	userRepository domain.UserRepository
	userService    *service.UserService
}

func NewFactory(envFiles ...string) (Factory, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}

	return NewFactoryWithConfig(cfg)
}

func NewFactoryWithConfig(cfg *config.Config) (Factory, error) {
	log := logger.New(logger.LogLevel(cfg.LogLevel), nil)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := database.NewMigrationService(db, log).RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrationlar uygulanamadı: %w", err)
	}

	f := &AppFactory{
		config: cfg,
		logger: log,
		db:     db,
	}

	f.userRepository = repository.NewUserRepository(db, log)

	if cfg.Redis.Addr != "" {
		f.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		redisCache := cache.NewRedisCache(f.redisClient, log, "userregistry")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisCache.Ping(ctx); err != nil {
			f.Close()
			return nil, fmt.Errorf("Redis bağlantısı kurulamadı: %w", err)
		}

		f.userRepository = repository.NewCachedUserRepository(f.userRepository, redisCache, log)
	}

	f.userService = service.NewUserService(f.userRepository, log)

	return f, nil
}

func (f *AppFactory) SeedUsers(users []domain.User) error {
	for _, user := range users {
		existing, err := f.userRepository.FindByID(user.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := f.userRepository.Create(user); err != nil {
				return err
			}
		}
	}

	f.userService.Add(users...)
	f.logger.Info("Başlangıç kullanıcıları yüklendi", map[string]interface{}{"count": len(users)})
	return nil
}

func (f *AppFactory) Close() error {
	if f.redisClient != nil {
		if err := f.redisClient.Close(); err != nil {
			f.logger.Error("Redis kapatma hatası", map[string]interface{}{"error": err.Error()})
		}
	}

	return f.db.Close()
}

func (f *AppFactory) GetLogger() logger.Logger {
	return f.logger
}

func (f *AppFactory) GetConfig() *config.Config {
	return f.config
}

func (f *AppFactory) GetDB() *sql.DB {
	return f.db
}

func (f *AppFactory) GetUserRepository() domain.UserRepository {
	return f.userRepository
}

func (f *AppFactory) GetUserService() *service.UserService {
	return f.userService
}

// ParseSeedUsers parses "id:username:password" triples separated by commas.
func ParseSeedUsers(raw string) ([]domain.User, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var users []domain.User
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("geçersiz kullanıcı tanımı: %q", entry)
		}

		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("geçersiz kullanıcı ID'si %q: %w", parts[0], err)
		}

		users = append(users, domain.NewUser(id, parts[1], parts[2]))
	}

	return users, nil
}
