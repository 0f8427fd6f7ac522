package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/framevault/framevault-api/internal/config"
	"github.com/framevault/framevault-api/internal/domain/auth"
	"github.com/framevault/framevault-api/internal/domain/client"
	"github.com/framevault/framevault-api/internal/domain/dashboard"
	"github.com/framevault/framevault-api/internal/domain/photo"
	"github.com/framevault/framevault-api/internal/domain/user"
	"github.com/framevault/framevault-api/internal/domain/video"
	"github.com/framevault/framevault-api/internal/middleware"
	"github.com/framevault/framevault-api/internal/pkg/database"
	pkgresponse "github.com/framevault/framevault-api/internal/pkg/response"
	"github.com/framevault/framevault-api/internal/pkg/session"
	"github.com/framevault/framevault-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting FrameVault API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	// ---------- Session store ----------
	var sessions session.Store
	if redisClient != nil {
		sessions = session.NewRedisStore(redisClient, cfg.SessionTTL)
	} else {
		log.Warn().Msg("Using in-memory session store; sessions will not survive restarts")
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	// ---------- File storage ----------
	var files storage.Storage
	var localFiles *storage.LocalStorage
	switch cfg.StorageDriver {
	case "s3":
		files, err = storage.NewS3Storage(storage.Config{
			S3Endpoint:  cfg.S3Endpoint,
			S3Region:    cfg.S3Region,
			S3Bucket:    cfg.S3Bucket,
			S3AccessKey: cfg.S3AccessKey,
			S3SecretKey: cfg.S3SecretKey,
			S3PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 storage")
		}
	default:
		localFiles, err = storage.NewLocalStorage(cfg.UploadDir, "/uploads")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create local storage")
		}
		files = localFiles
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	clientRepo := client.NewRepository(db)
	photoRepo := photo.NewRepository(db)
	videoRepo := video.NewRepository(db)
	dashboardRepo := dashboard.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, sessions)
	clientService := client.NewService(clientRepo, files)
	photoService := photo.NewService(photoRepo, clientRepo, files, cfg.UploadMaxSize)
	videoService := video.NewService(videoRepo, clientRepo)

	// ---------- Adapters ----------
	photoResolver := &clientResolverAdapter{service: clientService, notFound: photo.ErrClientNotFound}
	videoResolver := &clientResolverAdapter{service: clientService, notFound: video.ErrClientNotFound}

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Name:   cfg.SessionCookie,
		MaxAge: cfg.SessionTTL,
		Secure: cfg.SecureCookies || cfg.IsProduction(),
	})
	clientHandler := client.NewHandler(clientService)
	photoHandler := photo.NewHandler(photoService, photoResolver, uploadRequestCeiling(cfg.UploadMaxSize))
	videoHandler := video.NewHandler(videoService, videoResolver)
	dashboardHandler := dashboard.NewHandler(dashboardRepo)

	authMiddleware := middleware.SessionAuth(sessions, userRepo, cfg.SessionCookie)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/clients", clientHandler.Routes(authMiddleware))
		r.Mount("/photos", photoHandler.Routes(authMiddleware))
		r.Mount("/videos", videoHandler.Routes(authMiddleware))
		r.Mount("/dashboard", dashboard.Routes(dashboardHandler, authMiddleware))

		// Public gallery surface: the access token is the only credential
		r.Route("/public/clients/{accessToken}", func(r chi.Router) {
			r.Get("/", clientHandler.ResolvePublic)
			r.Get("/photos", photoHandler.PublicList)
			r.Get("/videos", videoHandler.PublicList)
		})
	})

	// Uploaded files are publicly readable by URL (local driver only;
	// S3 serves its own URLs)
	if localFiles != nil {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(localFiles.Dir())))
		r.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
			fileServer.ServeHTTP(w, r)
		})
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}

// uploadRequestCeiling bounds the whole multipart body: room for a full
// batch of maximum-size files plus form overhead.
func uploadRequestCeiling(perFile int64) int64 {
	return perFile*20 + 10*1024*1024
}

// clientResolverAdapter adapts client.Service to the Resolver interface
// the photo and video handlers expect. notFound is the consumer's own
// sentinel; any other resolution error passes through unchanged so
// storage failures are not mistaken for dead links.
type clientResolverAdapter struct {
	service  *client.Service
	notFound error
}

func (a *clientResolverAdapter) ResolveClientID(ctx context.Context, accessToken string) (uuid.UUID, error) {
	c, err := a.service.Resolve(ctx, accessToken)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			return uuid.Nil, a.notFound
		}
		return uuid.Nil, err
	}
	return c.ID, nil
}
