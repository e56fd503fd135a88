package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"niti/internal/adapters/api"
	"niti/internal/application"
	"niti/internal/config"
	"niti/internal/infrastructure/database"
	"niti/internal/infrastructure/database/queries"
	"niti/internal/infrastructure/i18n"
	"niti/internal/infrastructure/memory"
	"niti/internal/infrastructure/seed"
	"niti/internal/infrastructure/telegram"
	"niti/internal/logging"
	"niti/internal/ports/output"
	"niti/pkg/display"
	"niti/pkg/tz"
)

type stores struct {
	events       output.EventRepository
	participants output.ParticipantRepository
	profiles     output.ProfileRepository
	pinger       output.Pinger
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()
	logging.Setup(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	if cfg.SeedFile != "" {
		f, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			return err
		}
		if err := seed.Apply(ctx, f, st.profiles, st.events, seed.Options{}); err != nil {
			return err
		}
	}

	loc, err := tz.Load(cfg.Timezone)
	if err != nil {
		return err
	}
	translator := i18n.NewTranslator(cfg.Locale)
	formatter := display.NewFormatter(loc, translator, cfg.Locale)
	if cfg.IsDevelopment() && cfg.Telegram.DevAuthBypass {
		slog.Warn("dev auth bypass enabled, init data with the sentinel hash is trusted")
	}
	verifier := telegram.NewVerifier(cfg.Telegram.BotToken, cfg.Telegram.InitDataMaxAge, cfg.Telegram.DevAuthBypass)

	eventService := application.NewEventService(st.events, st.participants, formatter)
	subscriptionService := application.NewSubscriptionService(st.participants, st.events, st.profiles, formatter)
	handler := api.NewHandler(eventService, subscriptionService, verifier, st.pinger, translator, translator.DefaultLocale(), api.NewMetrics())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening",
			"addr", srv.Addr,
			"env", cfg.AppEnv,
			"storage", cfg.StorageDriver,
			"timezone", formatter.Location().String(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StorageDriver == config.DriverMemory {
		slog.Warn("using in-memory storage, data is lost on restart")
		s := memory.NewStore()
		return &stores{
			events:       s.Events(),
			participants: s.Participants(),
			profiles:     s.Profiles(),
			pinger:       s,
			close:        func() {},
		}, nil
	}

	if cfg.MigrationsAutoApply {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, err
		}
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	q := queries.New(pool)
	return &stores{
		events:       database.NewEventRepository(q),
		participants: database.NewParticipantRepository(q),
		profiles:     database.NewProfileRepository(q),
		pinger:       pool,
		close:        pool.Close,
	}, nil
}
