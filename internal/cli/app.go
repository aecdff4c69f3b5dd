package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	ai "github.com/m-rashid-2024/careagent"
	"github.com/m-rashid-2024/careagent/agent"
	"github.com/m-rashid-2024/careagent/auth"
	"github.com/m-rashid-2024/careagent/careapi"
	"github.com/m-rashid-2024/careagent/caretools"
	"github.com/m-rashid-2024/careagent/client"
	"github.com/m-rashid-2024/careagent/internal/config"
	"github.com/m-rashid-2024/careagent/internal/logging"
	"github.com/m-rashid-2024/careagent/retry"
	"github.com/m-rashid-2024/careagent/store"
	"github.com/m-rashid-2024/careagent/tool"
)

// modelTimeout bounds a single model request. Local models can be slow.
const modelTimeout = 5 * time.Minute

// app is the wired object graph shared by the subcommands.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	registry *tool.Registry
}

func newApp(opts *options) (*app, error) {
	var files []string
	if opts.envFile != "" {
		files = append(files, opts.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	log := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Redact: true,
	})

	tokens := auth.NewPasswordSource(cfg.TokenURL(), cfg.ClientID, cfg.Username, cfg.Password,
		auth.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		auth.WithReuse(cfg.TokenReuse),
		auth.WithLogger(log.With().Str("component", "auth").Logger()),
	)
	api := careapi.New(cfg.APIURL, tokens,
		careapi.WithTimeout(cfg.HTTPTimeout),
		careapi.WithRetry(retry.DefaultConfig().WithAttempts(cfg.RetryAttempts)),
		careapi.WithLogger(log.With().Str("component", "careapi").Logger()),
	)
	service := caretools.NewService(api,
		caretools.WithLogger(log.With().Str("component", "caretools").Logger()),
	)

	return &app{
		cfg:      cfg,
		log:      log,
		registry: service.Register(tool.NewRegistry()),
	}, nil
}

func (a *app) newAgent(ctx context.Context) (*agent.Agent, error) {
	baseURL := ""
	if a.cfg.Provider == ai.ProviderOllama {
		baseURL = a.cfg.OllamaHost
	}
	chat, err := client.New(ctx, client.Config{
		Provider:   a.cfg.Provider,
		BaseURL:    baseURL,
		APIKey:     a.cfg.APIKey,
		Model:      a.cfg.Model,
		HTTPClient: &http.Client{Timeout: modelTimeout},
	}, client.WithLogger(a.log.With().Str("component", "client").Logger()))
	if err != nil {
		return nil, err
	}
	return agent.New(chat, a.registry), nil
}

// openHistory returns the session store. Without CARE_HISTORY_DIR sessions
// live only for the duration of the process.
func (a *app) openHistory() (store.Adapter, error) {
	if a.cfg.HistoryDir == "" {
		a.log.Debug().Msg("CARE_HISTORY_DIR not set, sessions are not persisted")
		return store.NewMemoryAdapter(), nil
	}
	adapter, err := store.NewBadgerAdapter(store.BadgerOptions{Dir: a.cfg.HistoryDir, Logger: &a.log})
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return adapter, nil
}

func (a *app) agentOptions() []agent.Option {
	return []agent.Option{
		agent.WithLogger(a.log.With().Str("component", "agent").Logger()),
	}
}
