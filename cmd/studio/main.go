package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmanzanog/studio-portfolio/internal/application"
	"github.com/jmanzanog/studio-portfolio/internal/domain"
	"github.com/jmanzanog/studio-portfolio/internal/infrastructure/auth"
	"github.com/jmanzanog/studio-portfolio/internal/infrastructure/config"
	"github.com/jmanzanog/studio-portfolio/internal/infrastructure/mail"
	"github.com/jmanzanog/studio-portfolio/internal/infrastructure/objectstore"
	gormstore "github.com/jmanzanog/studio-portfolio/internal/infrastructure/persistence/gorm"
	"github.com/jmanzanog/studio-portfolio/internal/infrastructure/persistence/memory"
	"github.com/jmanzanog/studio-portfolio/internal/infrastructure/persistence/sqldb"
	supastore "github.com/jmanzanog/studio-portfolio/internal/infrastructure/persistence/supabase"
	httpHandler "github.com/jmanzanog/studio-portfolio/internal/interfaces/http"
	"github.com/joho/godotenv"
	_ "github.com/sijms/go-ora/v2"
	supa "github.com/supabase-community/supabase-go"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupLogger configures and returns a structured logger with source information
func setupLogger(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLevel(level),
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newSupabaseClient returns the shared project client, or nil when no
// Supabase adapter is selected.
func newSupabaseClient(cfg *config.Config) (*supa.Client, error) {
	if !cfg.UsesSupabase() {
		return nil, nil
	}
	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return client, nil
}

// initializeDocumentStore opens the configured document store and runs migrations
func initializeDocumentStore(cfg *config.Config, supabaseClient *supa.Client) (domain.DocumentStore, error) {
	switch cfg.DocumentStore {
	case config.DocumentStorePostgres, config.DocumentStoreOracle:
		repo, err := initializeDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.DocumentStoreSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		repo := gormstore.NewGormRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
		return repo, nil
	case config.DocumentStoreSupabase:
		if supabaseClient == nil {
			return nil, errors.New("supabase client is not configured")
		}
		return supastore.NewRepository(supabaseClient), nil
	case config.DocumentStoreMemory:
		slog.Warn("Using in-memory document store, data is lost on restart")
		return memory.NewPortfolioRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported document store: %s", cfg.DocumentStore)
	}
}

// initializeDatabase sets up the database connection and runs migrations
func initializeDatabase(cfg *config.Config) (*sqldb.Repository, error) {
	var db *sql.DB
	var dialect sqldb.Dialect
	var err error

	switch cfg.DocumentStore {
	case config.DocumentStorePostgres:
		db, err = sql.Open("pgx", cfg.DBDSN)
		dialect = &sqldb.PostgresDialect{}
	case config.DocumentStoreOracle:
		db, err = sql.Open("oracle", cfg.DBDSN)
		dialect = &sqldb.OracleDialect{}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DocumentStore)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := sqldb.NewRepository(sqldb.New(db, dialect))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repo.AutoMigrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func initializeObjectStore(cfg *config.Config, supabaseClient *supa.Client) (domain.ObjectStore, error) {
	if cfg.ObjectStore == config.ObjectStoreSupabase {
		if supabaseClient == nil {
			return nil, errors.New("supabase client is not configured")
		}
		store, err := objectstore.NewSupabaseStore(supabaseClient.Storage, cfg.StorageBucket)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	return objectstore.New(objectstore.Config{
		Type:      cfg.ObjectStore,
		BasePath:  cfg.StorageLocalPath,
		BaseURL:   cfg.StorageBaseURL,
		Bucket:    cfg.StorageBucket,
		Region:    cfg.StorageRegion,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Endpoint:  cfg.StorageEndpoint,
	})
}

func initializeAuth(cfg *config.Config, supabaseClient *supa.Client) (domain.AuthProvider, error) {
	switch cfg.AuthProvider {
	case config.AuthProviderSupabase:
		if supabaseClient == nil {
			return nil, errors.New("supabase client is not configured")
		}
		return auth.NewSupabaseProvider(auth.NewGoTrueClient(supabaseClient.Auth), cfg.AdminEmails), nil
	case config.AuthProviderLocal:
		provider, err := auth.NewLocalProvider(auth.LocalConfig{
			AdminEmail:   cfg.AdminEmail,
			PasswordHash: cfg.AdminPasswordHash,
			Secret:       cfg.JWTSecret,
			TTL:          cfg.SessionTTL,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported auth provider: %s", cfg.AuthProvider)
	}
}

func initializeMailer(cfg *config.Config) (application.Mailer, error) {
	if !cfg.SMTPEnabled() {
		slog.Info("SMTP_HOST not set, contact messages will be logged")
		return mail.NewLogMailer(nil), nil
	}
	mailer, err := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.ContactFrom,
		To:       cfg.ContactTo,
	})
	if err != nil {
		return nil, err
	}
	return mailer, nil
}

// buildServer creates and configures the HTTP server with all routes and handlers
func buildServer(cfg *config.Config, handler *httpHandler.Handler, objects domain.ObjectStore) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery(), httpHandler.RequestLogger())
	httpHandler.SetupRoutes(router, handler)

	if local, ok := objects.(*objectstore.LocalStore); ok {
		router.Static("/files", local.BasePath())
	}

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// App wraps the application components for easier testing
type App struct {
	Server        *http.Server
	Refresher     *application.CacheRefresher
	CancelContext context.CancelFunc
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if a.Refresher != nil {
		a.Refresher.Stop()
	}
	a.CancelContext()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	return nil
}

// hashPassword implements "studio hash-password <password>".
func hashPassword(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: studio hash-password <password>")
	}
	hash, err := auth.HashPassword(args[0])
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

// run contains the main application logic without os.Exit calls
func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogger(cfg.LogLevel, cfg.LogFormat)

	supabaseClient, err := newSupabaseClient(cfg)
	if err != nil {
		return err
	}

	docs, err := initializeDocumentStore(cfg, supabaseClient)
	if err != nil {
		return fmt.Errorf("document store initialization failed: %w", err)
	}
	slog.Info("Using document store", "store", cfg.DocumentStore)

	objects, err := initializeObjectStore(cfg, supabaseClient)
	if err != nil {
		return fmt.Errorf("object store initialization failed: %w", err)
	}
	slog.Info("Using object store", "store", cfg.ObjectStore)

	authProvider, err := initializeAuth(cfg, supabaseClient)
	if err != nil {
		return fmt.Errorf("auth initialization failed: %w", err)
	}

	mailer, err := initializeMailer(cfg)
	if err != nil {
		return fmt.Errorf("mailer initialization failed: %w", err)
	}

	portfolioService := application.NewPortfolioService(docs, objects, application.WithUploadPrefix(cfg.UploadPrefix))
	contactService := application.NewContactService(mailer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loadCtx, loadCancel := context.WithTimeout(ctx, 30*time.Second)
	if err := portfolioService.Refresh(loadCtx); err != nil {
		slog.Error("Initial portfolio load failed, serving an empty cache", "error", err)
	}
	loadCancel()

	var refresher *application.CacheRefresher
	if cfg.CacheRefreshInterval > 0 {
		refresher = application.NewCacheRefresher(portfolioService, cfg.CacheRefreshInterval)
		go refresher.Start(ctx)
	}

	handler := httpHandler.NewHandler(portfolioService, contactService, authProvider, cfg.MaxUploadBytes)
	server := buildServer(cfg, handler, objects)

	app := &App{
		Server:        server,
		Refresher:     refresher,
		CancelContext: cancel,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "host", cfg.ServerHost, "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
		slog.Info("Received shutdown signal")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	slog.Info("Server exited gracefully")
	return nil
}

func main() {
	var err error
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		err = hashPassword(os.Args[2:])
	} else {
		err = run()
	}
	if err != nil {
		slog.Error("Application error", "error", err)
		os.Exit(1)
	}
}
