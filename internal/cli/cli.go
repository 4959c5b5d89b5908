// Package cli holds the flag handling and start-up shared by the chat
// programs.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-hfchat/internal/chat"
	"go-hfchat/internal/config"
	"go-hfchat/internal/llm"
	"go-hfchat/internal/logging"
)

// Flags are the persistent flags both programs accept. They override the
// config file and environment when set.
type Flags struct {
	ConfigPath   string
	Provider     string
	Model        string
	MaxTokens    int
	SystemPrompt string
	WrapWidth    int
	Verbose      bool
}

// Register adds the flags to cmd.
func (f *Flags) Register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&f.ConfigPath, "config", "", "path to a YAML config file")
	flags.StringVarP(&f.Provider, "provider", "p", "", fmt.Sprintf("LLM provider %v", llm.Providers))
	flags.StringVarP(&f.Model, "model", "m", "", "model identifier")
	flags.IntVar(&f.MaxTokens, "max-tokens", 0, "maximum number of tokens to generate")
	flags.StringVar(&f.SystemPrompt, "system", "", "system prompt")
	flags.IntVar(&f.WrapWidth, "wrap", 0, "wrap output at this column (0 disables)")
	flags.BoolVarP(&f.Verbose, "verbose", "v", false, "enable debug logging")
}

func (f *Flags) apply(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		c.Provider = f.Provider
	}
	if flags.Changed("model") {
		c.Model = f.Model
	}
	if flags.Changed("max-tokens") {
		c.MaxTokens = f.MaxTokens
	}
	if flags.Changed("system") {
		c.SystemPrompt = f.SystemPrompt
	}
	if flags.Changed("wrap") {
		c.WrapWidth = f.WrapWidth
	}
}

// App is everything a command needs once start-up succeeded.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Client    llm.StreamingClient
	SessionID string
}

// Setup loads the config, applies flag overrides, and builds the logger and
// client.
func Setup(ctx context.Context, cmd *cobra.Command, flags *Flags) (*App, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	flags.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, flags.Verbose)
	if err != nil {
		return nil, err
	}
	sessionID := uuid.NewString()
	logger = logger.With(zap.String("session", sessionID))

	client, err := llm.NewClient(ctx, cfg.Provider, cfg.ClientOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	logger.Debug("Client ready",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.String("inferenceProvider", cfg.InferenceProvider))

	return &App{
		Config:    cfg,
		Logger:    logger,
		Client:    client,
		SessionID: sessionID,
	}, nil
}

// ChatOptions returns the request settings from the config.
func (a *App) ChatOptions() chat.Options {
	return chat.Options{
		Model:        a.Config.Model,
		MaxTokens:    a.Config.MaxTokens,
		Temperature:  a.Config.Temperature,
		SystemPrompt: a.Config.SystemPrompt,
		HistoryLimit: a.Config.HistoryLimit,
		WrapWidth:    a.Config.WrapWidth,
		Logger:       a.Logger,
	}
}

// Close flushes the logger.
func (a *App) Close() {
	_ = a.Logger.Sync()
}

// Execute runs cmd with a context cancelled on SIGINT or SIGTERM and exits
// non-zero on failure.
func Execute(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if err := cmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
