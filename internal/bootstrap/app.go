package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"ragdocs-backend/internal/auth"
	"ragdocs-backend/internal/documents"
	"ragdocs-backend/internal/shared/authn"
	"ragdocs-backend/internal/shared/authn/gotrue"
	authmemory "ragdocs-backend/internal/shared/authn/memory"
	"ragdocs-backend/internal/shared/config"
	"ragdocs-backend/internal/shared/server"
	"ragdocs-backend/internal/shared/storage/db"
	"ragdocs-backend/internal/shared/storage/object"
	localstore "ragdocs-backend/internal/shared/storage/object/local"
	s3store "ragdocs-backend/internal/shared/storage/object/s3"
	"ragdocs-backend/internal/shared/telemetry"
	"ragdocs-backend/internal/shared/validators"
)

// App holds the wired application dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Provider         authn.Provider
	DocumentsRepo    documents.Repo
	DocumentsService *documents.Service
	AuthService      *auth.Service
	DocumentsHandler *documents.Handler
	AuthHandler      *auth.Handler
}

// Build wires configuration into a runnable application. In dev the
// database and auth provider fall back to in-memory implementations so
// the API runs with no external services; production requires both.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	validators.Register()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	var docRepo documents.Repo
	if sqlDB != nil {
		docRepo = &documents.PGRepo{DB: sqlDB}
	} else {
		docRepo = documents.NewMemoryRepo()
	}

	docSvc := &documents.Service{
		Store: store,
		Repo:  docRepo,
		Validator: &documents.Validator{
			MaxSizeBytes:     cfg.MaxFileSizeBytes(),
			AllowedMimeTypes: cfg.AllowedMimeTypes,
		},
	}
	authSvc := &auth.Service{Provider: provider}

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		Store:            store,
		Provider:         provider,
		DocumentsRepo:    docRepo,
		DocumentsService: docSvc,
		AuthService:      authSvc,
		DocumentsHandler: documents.NewHandler(docSvc),
		AuthHandler:      auth.NewHandler(authSvc),
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		Provider:         provider,
		AuthHandler:      app.AuthHandler,
		DocumentsHandler: app.DocumentsHandler,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("DATABASE_URL is required in production")
		}
		telemetry.Warn("bootstrap.db_fallback", map[string]any{
			"reason": "DATABASE_URL not set, using in-memory repository",
		})
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		telemetry.Warn("bootstrap.db_fallback", map[string]any{
			"reason": "database unreachable, using in-memory repository",
			"error":  err.Error(),
		})
		return nil, nil
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	if cfg.ObjectStoreType == "s3" {
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when OBJECT_STORE=s3")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	}
	return localstore.New(cfg.LocalStoreDir), nil
}

func buildProvider(cfg config.Config) (authn.Provider, error) {
	if cfg.AuthURL == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("AUTH_URL is required in production")
		}
		telemetry.Warn("bootstrap.auth_fallback", map[string]any{
			"reason": "AUTH_URL not set, using in-memory auth provider",
		})
		return authmemory.New(), nil
	}
	return gotrue.New(cfg.AuthURL, cfg.AuthAPIKey, time.Duration(cfg.AuthTimeoutSeconds)*time.Second)
}
