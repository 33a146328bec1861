// Command server runs the employee management HTTP API.
//
// @title                       Employee Management API
// @version                     1.0
// @description                 Employee records and user authentication over MongoDB.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/empmanagement/employee-api/internal/api"
	"github.com/empmanagement/employee-api/internal/core/ports"
	"github.com/empmanagement/employee-api/internal/core/service"
	"github.com/empmanagement/employee-api/internal/infrastructure/config"
	mongodb "github.com/empmanagement/employee-api/internal/infrastructure/db/mongo"
	redisdb "github.com/empmanagement/employee-api/internal/infrastructure/db/redis"
	"github.com/empmanagement/employee-api/internal/infrastructure/http/handlers"
	"github.com/empmanagement/employee-api/internal/infrastructure/queue"
	"github.com/empmanagement/employee-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Service: "employee-api"})
		l.Error().Err(err).Msg("failed to load configuration")
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "employee-api",
	})
	if envErr != nil {
		log.Debug().Msg("no .env file loaded, using process environment")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to mongodb")
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	employeeRepo := mongodb.NewEmployeeRepository(db, cfg.Mongo.EmployeesCollection, cfg.Mongo.Timeout)
	userRepo := mongodb.NewUserRepository(db, cfg.Mongo.UsersCollection, cfg.Mongo.Timeout)
	auditRepo := mongodb.NewAuditRepository(db, cfg.Mongo.AuditCollection, cfg.Mongo.Timeout)

	if err := mongodb.EnsureIndexes(ctx, employeeRepo, userRepo); err != nil {
		log.Warn().Err(err).Msg("could not ensure indexes")
	}

	checks := map[string]handlers.Check{"mongodb": handlers.MongoCheck(db)}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to redis")
		return err
	}
	var revoker ports.TokenRevoker
	if rdb != nil {
		defer rdb.Close()
		revoker = redisdb.NewTokenDenylist(rdb)
		checks["redis"] = handlers.RedisCheck(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR is empty, token revocation disabled")
	}

	// Audit workers outlive the signal context so events recorded by
	// in-flight requests are still persisted during shutdown.
	auditCtx, stopAudit := context.WithCancel(context.Background())
	defer stopAudit()
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, logger.Component("audit"))
	dispatcher.Start(auditCtx)

	employees := service.NewEmployeeService(employeeRepo, dispatcher, logger.Component("employees"))
	auth := service.NewAuthService(userRepo, revoker, service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL,
	}, logger.Component("auth"))

	e := api.NewRouter(api.Dependencies{
		Employees: employees,
		Auth:      auth,
		Checks:    checks,
		Logger:    logger.Component("http"),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
			stopAudit()
			dispatcher.Wait()
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	return shutdown(e.Shutdown, stopAudit, dispatcher, cfg.ShutdownTimeout, log)
}

// shutdown stops accepting requests, then drains queued audit events.
func shutdown(stopServer func(context.Context) error, stopAudit context.CancelFunc, dispatcher *queue.Dispatcher, timeout time.Duration, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := stopServer(ctx)
	if err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	stopAudit()
	dispatcher.Wait()
	log.Info().Msg("server stopped")
	return err
}
