package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundtrack/src/api"
	"fundtrack/src/api/controllers"
	"fundtrack/src/api/handlers"
	"fundtrack/src/clients/mfapi"
	"fundtrack/src/config"
	"fundtrack/src/database"
	"fundtrack/src/repositories"
	"fundtrack/src/services"
	"fundtrack/src/utils"
	aws_handler "fundtrack/src/utils/aws"
	redis_utils "fundtrack/src/utils/redis"

	"github.com/go-chi/jwtauth"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings")
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}

	errC, err := run(cfg)
	if err != nil {
		log.Println(err, "Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		log.Println(err, "Error while running")
	}
}

func run(cfg *config.Config) (<-chan error, error) {
	errC := make(chan error, 1)

	logger := utils.NewLogger(cfg.Service.LogLevel)
	ctx := utils.WithLogger(context.Background(), logger.WithField("service", "fundtrack"))

	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	var cacheHandler utils.CacheHandlerI
	if cfg.Databases.Redis.Host != "" {
		redisHandler, err := redis_utils.NewRedisHandler(cfg)
		if err != nil {
			return nil, err
		}
		cacheHandler = redisHandler
	} else {
		cacheHandler = utils.NewMemoryCacheHandler()
	}

	jwtSecret, err := resolveJWTSecret(cfg)
	if err != nil {
		return nil, err
	}
	tokenAuth := jwtauth.New("HS256", []byte(jwtSecret), nil)

	userRepo := repositories.NewUserRepository(db)
	fundRepo := repositories.NewFundRepository(db)
	latestNavRepo := repositories.NewLatestNavRepository(db)
	historyRepo := repositories.NewNavHistoryRepository(db)
	holdingRepo := repositories.NewHoldingRepository(db)

	mfapiClient := mfapi.NewClient(cfg, cacheHandler)

	navSync := services.NewNavSyncService(cfg, latestNavRepo, historyRepo, fundRepo, holdingRepo, mfapiClient)
	valuation := services.NewValuationService(holdingRepo, latestNavRepo, historyRepo)

	handler := handlers.NewHandler(
		controllers.NewAuthController(userRepo, tokenAuth, cfg.Auth.TokenExpiry),
		controllers.NewPortfolioController(holdingRepo, latestNavRepo, fundRepo, mfapiClient, valuation),
		controllers.NewFundsController(mfapiClient, fundRepo, latestNavRepo, historyRepo),
		controllers.NewAdminController(userRepo, holdingRepo, fundRepo, navSync),
	)

	server := api.NewServer(handler, tokenAuth, logger)
	httpServer := api.NewHTTPServer(cfg, server)

	if err := navSync.Start(ctx); err != nil {
		return nil, err
	}

	go func() {
		logger.WithField("port", cfg.Service.Port).Info("Starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or
		// Close, the returned error is ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		logger.Info("Shutting down")
		navSync.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			errC <- err
			return
		}
		db.Close()
		errC <- nil
	}()

	return errC, nil
}

// resolveJWTSecret prefers AWS Secrets Manager when a secret name is
// configured, falling back to the value in the config file.
func resolveJWTSecret(cfg *config.Config) (string, error) {
	if cfg.Auth.SecretName != "" {
		awsHandler, err := aws_handler.NewAWSHandler(cfg.Auth.AWSRegion)
		if err != nil {
			return "", err
		}
		return awsHandler.SecretManager.GetSecretValue(cfg.Auth.SecretName)
	}
	if cfg.Auth.JWTSecret == "" {
		return "", errors.New("auth.jwtSecret is not configured")
	}
	return cfg.Auth.JWTSecret, nil
}
