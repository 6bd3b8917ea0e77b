package di

import (
	"github.com/homevista/homevista-backend/internal/cache"
	"github.com/homevista/homevista-backend/internal/database"
	"github.com/homevista/homevista-backend/internal/handler"
	"github.com/homevista/homevista-backend/internal/logger"
	"github.com/homevista/homevista-backend/internal/repository"
	"github.com/homevista/homevista-backend/internal/service"
)

// Container holds all dependencies for the application
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *cache.Client
	Log   *logger.Logger

	// Repositories
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	PropertyRepo repository.PropertyRepository
	BookingRepo  repository.BookingRepository

	// Services
	AuthEvents       *service.AuthBroker
	AuthService      service.AuthService
	PropertyService  service.PropertyService
	BookingService   service.BookingService
	DashboardService service.DashboardService

	// Handlers
	HealthHandler    *handler.HealthHandler
	AuthHandler      *handler.AuthHandler
	PropertyHandler  *handler.PropertyHandler
	BookingHandler   *handler.BookingHandler
	DashboardHandler *handler.DashboardHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB            *database.PostgresDB
	Redis         *cache.Client
	Log           *logger.Logger
	ServiceConfig *service.AuthServiceConfig
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
		Log:   cfg.Log,
	}
	if c.Log == nil {
		c.Log = logger.Get()
	}

	// Initialize repositories
	c.UserRepo = repository.NewPostgresUserRepository(cfg.DB.Pool())
	c.SessionRepo = repository.NewRedisSessionRepository(cfg.Redis)
	c.PropertyRepo = repository.NewPostgresPropertyRepository(cfg.DB.Pool())
	c.BookingRepo = repository.NewPostgresBookingRepository(cfg.DB.Pool())

	// Initialize services
	c.AuthEvents = service.NewAuthBroker()
	c.AuthService = service.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.AuthEvents,
		cfg.ServiceConfig,
		c.Log,
	)
	c.PropertyService = service.NewPropertyService(c.PropertyRepo)
	c.BookingService = service.NewBookingService(c.BookingRepo, c.PropertyRepo)
	c.DashboardService = service.NewDashboardService(
		c.PropertyRepo,
		c.BookingRepo,
		c.UserRepo,
		c.Log,
	)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService, c.SessionRepo, c.UserRepo, c.AuthEvents, c.Log)
	c.PropertyHandler = handler.NewPropertyHandler(c.PropertyService, c.Log)
	c.BookingHandler = handler.NewBookingHandler(c.BookingService, c.Log)
	c.DashboardHandler = handler.NewDashboardHandler(c.DashboardService)

	return c
}
