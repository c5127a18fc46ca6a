package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AppProvider interface {
	Run() error
	Serve() func() error
	Stop(context.Context, context.Context) func() error
}

type App struct {
	logger   *zap.Logger
	config   *Config
	server   *http.Server
	cleanups []func()
}

// NewApp wires the configuration, logging, storage backend, service
// and routing then provides a ready to run instance.
func NewApp(gitCommit, gitTag, buildTime string) (AppProvider, error) {
	config, err := LoadAndInitConfigs(gitCommit, gitTag, buildTime)
	if err != nil {
		return nil, err
	}

	logger, flusher, err := SetupLogging(config)
	if err != nil {
		return nil, err
	}
	cleanups := []func(){flusher}

	var storage BookStorage
	switch config.Storage {
	case StorageRedis:
		redisClient, err := GetRedisClient(config)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis server: %s", err)
		}
		cleanups = append(cleanups, func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.Error("error during closing of redis client", zap.Error(cerr))
			}
		})
		storage = NewRedisBookStorage(logger, redisClient)
	default:
		boltClient, err := GetBoltDBClient(config)
		if err != nil {
			return nil, fmt.Errorf("failed to open the bolt database: %s", err)
		}
		cleanups = append(cleanups, func() {
			if cerr := boltClient.Close(); cerr != nil {
				logger.Error("error during closing of bolt database", zap.Error(cerr))
			}
		})
		storage = NewBoltBookStorage(logger, &config.BoltDB, boltClient)
	}

	library := NewLibraryService(logger, config, storage)
	api := NewAPIHandler(logger, config, NewStatistics(config.GitTag), library)
	router := api.SetupRoutes(httprouter.New(), api.MiddlewaresStacks())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
	}

	return &App{
		logger:   logger,
		config:   config,
		server:   srv,
		cleanups: cleanups,
	}, nil
}

// Run starts the api web server and a goroutine which is responsible to stop it.
func (app *App) Run() error {
	defer app.Clean()
	nCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(nCtx)

	g.Go(app.Serve())
	g.Go(app.Stop(nCtx, gCtx))

	err := g.Wait()
	app.logger.Info("api server stopped",
		zap.String("host", app.config.Server.Host),
		zap.String("port", app.config.Server.Port),
		zap.Error(err),
	)
	return err
}

// Clean calls all registered cleanups functions in reverse order.
func (app *App) Clean() {
	for i := len(app.cleanups) - 1; i >= 0; i-- {
		app.cleanups[i]()
	}
}

// Serve starts the api web server. It returned error
// will be caught by the errorgroup.
func (app *App) Serve() func() error {
	return func() error {
		app.logger.Info("api server starting",
			zap.String("host", app.config.Server.Host),
			zap.String("port", app.config.Server.Port),
			zap.String("storage", app.config.Storage),
		)
		err := app.server.ListenAndServe()
		if err == http.ErrServerClosed {
			err = nil
		}
		return err
	}
}

// Stop listens for the group context and triggers the server graceful shutdown.
// It states the reason of its call. We proceed with a brutal shutdown if the
// graceful did not complete successfully. We explicitly return `nil` to
// allow the errorgroup catches only the `Serve` method result.
func (app *App) Stop(nCtx, gCtx context.Context) func() error {
	return func() error {
		<-gCtx.Done()

		if nCtx.Err() != nil {
			app.logger.Info("api server stopping. reason: requested to stop")
		} else {
			app.logger.Info("api server stopping. reason: errored at running")
		}

		timeout := app.config.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		sCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := app.server.Shutdown(sCtx)
		switch err {
		case nil, http.ErrServerClosed:
			app.logger.Info("api server graceful shutdown succeeded")
		case context.DeadlineExceeded:
			app.logger.Info("api server graceful shutdown timed out")
		default:
			app.logger.Info("api server graceful shutdown failed", zap.Error(err))
		}

		if err != nil && err != http.ErrServerClosed {
			app.logger.Info("api server going to force shutdown", zap.Error(app.server.Close()))
		}
		return nil
	}
}
