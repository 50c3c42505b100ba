package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/birdiland/backend/internal/config"
	"github.com/birdiland/backend/internal/handler"
	"github.com/birdiland/backend/internal/model/persona"
	"github.com/birdiland/backend/internal/service/agent"
	"github.com/birdiland/backend/internal/service/session"
	logx "github.com/birdiland/backend/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logx.Init("info")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logx.Warn().Err(err).Msg("no .env file, continuing with system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load configuration")
	}
	// Re-level once the configured value is known.
	logx.Init(cfg.Server.LogLevel)

	personaStore := persona.NewMemoryStore(persona.Seed())

	sessionStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialize session store")
	}

	var chatModel model.ChatModel
	if cfg.AI.Enabled() {
		chatModel, err = cfg.AI.NewChatModel(ctx)
		if err != nil {
			logx.Warn().Err(err).Msg("failed to initialize chat model, chat degrades to fallback replies")
			chatModel = nil
		} else {
			logx.Info().Str("model", cfg.AI.Model).Msg("chat model initialized")
		}
	} else {
		logx.Warn().Msg("ark credentials not configured, chat degrades to fallback replies")
	}

	agentSvc, err := agent.NewService(ctx, personaStore, sessionStore, chatModel)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialize conversation manager")
	}

	router := handler.NewRouter(cfg, personaStore, agentSvc)

	startServer(ctx, cfg.Server, router)
}

// newSessionStore picks the Redis backend when REDIS_URL is set,
// otherwise falls back to the in-memory store.
func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	if !cfg.Redis.Enabled() {
		logx.Info().Int("historyLimit", cfg.Chat.HistoryLimit).Msg("using in-memory session store")
		return session.NewMemoryStore(cfg.Chat.HistoryLimit), nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logx.Info().Int("historyLimit", cfg.Chat.HistoryLimit).Dur("ttl", cfg.Redis.SessionTTL).Msg("using redis session store")
	return session.NewRedisStore(client, cfg.Chat.HistoryLimit, cfg.Redis.SessionTTL), nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logx.Info().Str("addr", serverCfg.Addr).Msg("Birdiland backend listening")
	if err := runServer(ctx, srv); err != nil {
		logx.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
