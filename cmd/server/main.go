package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	"github.com/kloudinfotech/helpdesk-console/internal/api"
	"github.com/kloudinfotech/helpdesk-console/internal/auth"
	"github.com/kloudinfotech/helpdesk-console/internal/config"
	"github.com/kloudinfotech/helpdesk-console/internal/helpdeskapi"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/distlock"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/httpretry"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/logger"
	"github.com/kloudinfotech/helpdesk-console/internal/render"
	"github.com/kloudinfotech/helpdesk-console/internal/repository/postgres"
	"github.com/kloudinfotech/helpdesk-console/internal/service/access"
	"github.com/kloudinfotech/helpdesk-console/internal/service/automation"
	"github.com/kloudinfotech/helpdesk-console/internal/service/domainrules"
	"github.com/kloudinfotech/helpdesk-console/internal/service/roles"
	"github.com/kloudinfotech/helpdesk-console/internal/service/sso"
	"github.com/kloudinfotech/helpdesk-console/internal/service/upgrade"
	"github.com/kloudinfotech/helpdesk-console/internal/session"
)

func main() {
	configPath := pflag.StringP("config", "c", "config/config.yaml", "path to the YAML config file")
	pflag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		logger.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.AppEnv, logger.ParseLevel(cfg.Logging.Level))
	logger.SetRedactPII(cfg.Logging.RedactPII)

	if err := run(cfg); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis holds sessions and drafts; the console cannot run without it.
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return err
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	err = rdb.Ping(pingCtx).Err()
	pingCancel()
	if err != nil {
		return err
	}
	logger.Info("redis connected")

	// The audit trail is optional.
	var (
		db    *sql.DB
		audit api.AuditLog
	)
	if cfg.Database.URL != "" {
		db, err = postgres.Open(ctx, cfg.Database.URL, cfg.Database.MaxOpenConns)
		if err != nil {
			logger.Warn("audit database unavailable, audit trail disabled", "error", err)
			db = nil
		} else {
			defer db.Close()
			repo := postgres.NewAuditRepo(db)
			if err := repo.EnsureSchema(ctx); err != nil {
				return err
			}
			audit = repo
			logger.Info("audit trail enabled")
		}
	}

	client := helpdeskapi.New(cfg.HelpdeskAPI.BaseURL,
		httpretry.New(&http.Client{Timeout: cfg.HelpdeskAPI.Timeout()}, cfg.HelpdeskAPI.ReadRetries))

	sessions := session.NewStore(rdb, cfg.Session.TTL())
	notice, err := domainrules.NewNoticeRenderer(cfg.Domain.RejectionTemplate)
	if err != nil {
		return err
	}
	pages, err := render.New(cfg.Billing.LicensePurchaseURL)
	if err != nil {
		return err
	}

	handlers := api.NewHandlers(api.Services{
		Navigator:    access.NewNavigator(cfg.Billing.LicensePurchaseURL),
		DomainRules:  domainrules.NewService(client, session.NewDraftStore[domainrules.Draft](sessions, "domain-rules")),
		Notice:       notice,
		Organization: cfg.Domain.Organization,
		Automation:   automation.NewService(client, distlock.Factory(rdb)),
		SSO:          sso.NewService(client, cfg.Server.PublicBaseURL, nil),
		Roles:        roles.NewService(client),
		Upgrade:      upgrade.NewService(client),
		TicketIDs:    session.NewTicketIDs(sessions),
		Pages:        pages,
		Audit:        audit,
	})

	authManager := auth.NewManager(client, sessions, auth.CookieConfig{
		Name:   cfg.Session.CookieName,
		MaxAge: int(cfg.Session.TTL().Seconds()),
		Secure: cfg.Session.Secure,
	})

	csrfKey := []byte(cfg.Security.CSRFKey)
	if len(csrfKey) < 32 {
		// Only reachable outside production. Form tokens do not survive a
		// restart.
		csrfKey = make([]byte, 32)
		if _, err := rand.Read(csrfKey); err != nil {
			return err
		}
		logger.Warn("security.csrf_key not set, using an ephemeral key")
	}

	server := api.NewServer(cfg.Server, api.RouterConfig{
		Handlers:       handlers,
		Auth:           authManager,
		Health:         api.NewHealthChecker(db, rdb, cfg.HelpdeskAPI.BaseURL),
		AllowedOrigins: cfg.Security.AllowedOrigins,
		CSRFKey:        csrfKey,
		Secure:         cfg.Session.Secure,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Server.Addr(), "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-done:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown error", "error", err)
	}
	logger.Info("server stopped")
	return nil
}
