package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accountrepo "github.com/registrar-hq/registrar/internal/account/repository"
	authservice "github.com/registrar-hq/registrar/internal/auth/service"
	"github.com/registrar-hq/registrar/internal/auth/session"
	"github.com/registrar-hq/registrar/internal/common/clock"
	"github.com/registrar-hq/registrar/internal/common/config"
	commoncrypto "github.com/registrar-hq/registrar/internal/common/crypto"
	"github.com/registrar-hq/registrar/internal/common/db"
	commonhttp "github.com/registrar-hq/registrar/internal/common/http"
	"github.com/registrar-hq/registrar/internal/common/logger"
	srv "github.com/registrar-hq/registrar/internal/common/server"
	studentrepo "github.com/registrar-hq/registrar/internal/student/repository"
	studentservice "github.com/registrar-hq/registrar/internal/student/service"
	"github.com/registrar-hq/registrar/internal/web"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_DIR"), "registrar", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	if err := db.Migrate(log, cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	hasher := &commoncrypto.BcryptHasher{}
	accountRepo := accountrepo.NewPgRepository(pool)

	if err := seedAdmin(accountRepo, hasher, cfg, log); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	sessionStore := session.NewMemoryStore(cfg.SessionTTL, clock.NewRealClock(), log)
	cookieCodec := session.NewCookieCodec(cfg.SessionSecret, cfg.SessionTTL)
	authService := authservice.NewAuthService(accountRepo, sessionStore, hasher, log)

	recordService := studentservice.NewRecordService(studentrepo.NewPgRepository(pool), log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessionStore.StartCleanup(ctx)

	handler := web.NewHandler(authService, recordService, cookieCodec, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler.Routes(cfg.RequestTimeout))
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	baseHandler := commonhttp.BuildBaseHandler(log, mux)

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), baseHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Info("stopping session cleanup")
			cancel()
			return nil
		},
	}

	srv.StartWithGracefulShutdown(server, log, shutdownHooks)
}

func seedAdmin(repo accountrepo.Repository, hasher commoncrypto.PasswordHasher, cfg config.Config, log *logger.Logger) error {
	hash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}

	if err := repo.EnsureSeed(context.Background(), cfg.AdminUsername, hash); err != nil {
		return err
	}

	log.Infof("operator account %q present", cfg.AdminUsername)
	return nil
}
