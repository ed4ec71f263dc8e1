package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"tech-gadget/internal/cache"
	"tech-gadget/internal/config"
	custommiddleware "tech-gadget/internal/middleware"
	"tech-gadget/internal/payment"
	"tech-gadget/internal/repository"
	"tech-gadget/internal/service"
	"tech-gadget/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

// NewServer builds the full route layer: repositories, services,
// handlers and the authorization gates in front of them. redisClient may
// be nil; role lookups then always hit the store.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Liveness endpoints
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("tech gadget server is running"))
	})
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Role cache in front of the per-request role lookups the gates do
	roleLookup := func(ctx context.Context, email string) (string, error) {
		user, err := userRepo.FindByEmail(ctx, email)
		if err != nil {
			return "", err
		}
		return user.Role, nil
	}
	roleCache := cache.NewRoleCache(redisClient, roleLookup, cache.DefaultTTL, logger)

	// Initialize services
	userService := service.NewUserService(userRepo, roleCache)
	authService := service.NewAuthService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	productService := service.NewProductService(productRepo, submissionRepo)
	couponService := service.NewCouponService(couponRepo)
	reviewService := service.NewReviewService(reviewRepo)
	statsService := service.NewStatsService(statsRepo)
	processor := payment.NewClient(cfg.Payment.APIKey, cfg.Payment.BaseURL)
	paymentService := service.NewPaymentService(processor, paymentRepo)

	// Authorization gates
	gates := transport.Gates{
		Auth:      custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger),
		Admin:     custommiddleware.RequireAdmin(roleCache, logger),
		Moderator: custommiddleware.RequireModerator(roleCache, logger),
	}

	// Register routes
	transport.NewAuthHandler(authService, logger).RegisterRoutes(router)
	transport.NewUserHandler(userService, logger).RegisterRoutes(router, gates)
	transport.NewProductHandler(productService, logger).RegisterRoutes(router, gates)
	transport.NewReviewHandler(reviewService, logger).RegisterRoutes(router, gates)
	transport.NewCouponHandler(couponService, logger).RegisterRoutes(router, gates)
	transport.NewPaymentHandler(paymentService, logger).RegisterRoutes(router, gates)
	transport.NewStatsHandler(statsService, logger).RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
