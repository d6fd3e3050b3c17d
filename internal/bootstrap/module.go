package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"mattrack/internal/bootstrap/config"
	"mattrack/internal/bootstrap/database"
	"mattrack/internal/bootstrap/logging"
	"mattrack/internal/domain/workflow"
	"mattrack/internal/infrastructure/filestore"
	sqliterepo "mattrack/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "mattrack/internal/infrastructure/persistence/sqlite/uow"
	"mattrack/internal/metrics"
	"mattrack/internal/ports"
	"mattrack/internal/usecase/lifecycle"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(provideAssignments),
	fx.Provide(providePolicy),
	fx.Provide(provideFileStore),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewMaterialRepository,
			fx.As(new(ports.MaterialRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(lifecycle.NewService),
	fx.Invoke(func() { metrics.Register() }),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

func provideAssignments(ctx context.Context, cfg config.Config) (workflow.AssignmentTable, error) {
	return config.LoadAssignments(ctx, cfg.Assignments.File)
}

func providePolicy(cfg config.Config) (workflow.TransitionPolicy, error) {
	return workflow.ParsePolicy(cfg.Workflow.Policy)
}

func provideFileStore(cfg config.Config) (ports.FileStore, error) {
	return filestore.NewFilesystem(cfg.Files.Dir)
}
