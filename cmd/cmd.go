package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/anicoll/growatt-integration/internal/pkg/config"
	"github.com/anicoll/growatt-integration/internal/pkg/database"
	"github.com/anicoll/growatt-integration/internal/pkg/database/migration"
	"github.com/anicoll/growatt-integration/internal/pkg/growatt"
	"github.com/anicoll/growatt-integration/internal/pkg/mqtt"
	"github.com/anicoll/growatt-integration/internal/pkg/poller"
	"github.com/anicoll/growatt-integration/internal/pkg/publisher"
	"github.com/anicoll/growatt-integration/internal/pkg/server"
	paho_mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jackc/pgx/v5"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func GrowattCommand(ctx *cli.Context) error {
	cfg := &config.Config{
		GrowattCfg: &config.GrowattConfig{
			Username:               ctx.String("growatt-username"),
			Password:               ctx.String("growatt-password"),
			BaseURL:                ctx.String("growatt-base-url"),
			SessionDurationMinutes: ctx.Int("growatt-session-duration"),
		},
		MqttCfg: &config.MqttConfig{
			Host:     ctx.String("mqtt-host"),
			Username: ctx.String("mqtt-user"),
			Password: ctx.String("mqtt-pass"),
		},
		ServerCfg: &config.ServerConfig{
			Addr:            ctx.String("server-addr"),
			APIPasswordHash: ctx.String("api-password-hash"),
		},
		DatabaseURL:      ctx.String("database-url"),
		MigrationsFolder: ctx.String("migrations-folder"),
		PollInterval:     ctx.Duration("poll-interval"),
		LogLevel:         ctx.String("log-level"),
	}

	return setup(ctx.Context, cfg)
}

func setup(ctx context.Context, cfg *config.Config) error {
	logCfg := zap.NewProductionConfig()

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logCfg.Level = level
	logCfg.OutputPaths = []string{"stdout"}
	logCfg.ErrorOutputPaths = []string{"stdout"}
	logCfg.Sampling = nil
	logger := zap.Must(logCfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)))
	defer func() {
		_ = logger.Sync() // flushes buffer, if any.
	}()
	zap.ReplaceGlobals(logger)

	if err := migration.Migrate(cfg.DatabaseURL, cfg.MigrationsFolder); err != nil {
		return err
	}

	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	db := database.NewDatabase(conn)
	defer db.Close()

	if err := publisher.RegisterPublisher("postgres", db); err != nil {
		return err
	}

	if cfg.MqttCfg.Host != "" {
		opts := paho_mqtt.NewClientOptions().
			AddBroker(cfg.MqttCfg.Host).
			SetUsername(cfg.MqttCfg.Username).
			SetPassword(cfg.MqttCfg.Password)
		mqttSvc := mqtt.New(paho_mqtt.NewClient(opts))
		if err := mqttSvc.Connect(); err != nil {
			return err
		}
		if err := publisher.RegisterPublisher("mqtt", mqttSvc); err != nil {
			return err
		}
	}

	portal := growatt.NewFromConfig(cfg.GrowattCfg)
	if _, err := portal.Login(ctx, cfg.GrowattCfg.Username, cfg.GrowattCfg.Password); err != nil {
		return err
	}

	errorChan := make(chan error, 1000)
	return run(ctx, cfg, portal, db, errorChan)
}

func run(ctx context.Context, cfg *config.Config, portal portalService, db *database.Database, errorChan chan error) error {
	eg, ctx := errgroup.WithContext(ctx)

	if db != nil {
		eg.Go(func() error {
			return cronDbCleanup(db, errorChan)
		})

		eg.Go(func() error {
			srv := &http.Server{
				Handler:      server.New(db).Router(cfg.ServerCfg.APIPasswordHash),
				Addr:         cfg.ServerCfg.Addr,
				WriteTimeout: 15 * time.Second,
				ReadTimeout:  15 * time.Second,
			}

			return srv.ListenAndServe()
		})
	}

	eg.Go(func() error {
		return poller.New(portal, cfg.PollInterval).Run(ctx, errorChan)
	})

	eg.Go(func() error {
		return drainErrors(ctx, errorChan)
	})

	return eg.Wait()
}

var errCron = errors.New("cron error")

// drainErrors handles async errors from the services. Cron failures and
// credential rejections are fatal; everything else is logged and polling
// continues.
func drainErrors(ctx context.Context, errorChan chan error) error {
	for {
		select {
		case err := <-errorChan:
			if errors.Is(err, errCron) {
				zap.L().Error("cron error", zap.Error(err))
				return err
			}
			var authErr *growatt.AuthError
			if errors.As(err, &authErr) {
				zap.L().Error("portal rejected credentials", zap.Error(err))
				return err
			}
			zap.L().Error("async error", zap.Error(err))
		case <-ctx.Done():
			zap.L().Info("context done")
			return ctx.Err()
		}
	}
}

func cronDbCleanup(db *database.Database, errChan chan error) error {
	if err := db.Cleanup(context.Background()); err != nil {
		return err
	}

	// CRON automation
	c := cron.New()
	if _, err := c.AddFunc("0 3 * * *", func() {
		if err := db.Cleanup(context.Background()); err != nil {
			zap.L().Error("error cleaning up database", zap.Error(err))
			errChan <- errCron
			return
		}
		zap.L().Info("cleaned up old metrics")
	}); err != nil {
		return err
	}

	c.Run()
	return nil
}
