package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/allowlist/allowlist"
	"github.com/ellavondegurechaff/allowlist/allowlist/commands"
	"github.com/ellavondegurechaff/allowlist/allowlist/config"
	"github.com/ellavondegurechaff/allowlist/allowlist/database"
	"github.com/ellavondegurechaff/allowlist/allowlist/handlers"
	"github.com/ellavondegurechaff/allowlist/allowlist/logger"
	"github.com/spf13/cobra"
)

var syncCommands bool

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "Connect to Discord and handle applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	serveCMD.Flags().BoolVar(&syncCommands, "sync-commands", false, "Whether to sync commands to discord")
	rootCmd.AddCommand(serveCMD)
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	slog.Info("Starting allowlist bot",
		slog.String("type", "sys"),
		slog.String("version", Version),
		slog.String("commit", Commit))

	db, err := openDatabase(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	b := allowlist.New(*cfg, Version, Commit)

	h := handler.New()
	h.Command("/setup-application", handlers.WrapCommand("setup-application", commands.SetupApplicationHandler(b)))
	h.Command("/setup-cooldown-channel", handlers.WrapCommand("setup-cooldown-channel", commands.SetupCooldownChannelHandler(b)))
	h.Command("/cooldown-exempt", handlers.WrapCommand("cooldown-exempt", commands.CooldownExemptHandler(b)))
	h.Command("/applications/pending", handlers.WrapCommand("applications-pending", commands.PendingHandler(b)))
	h.Command("/version", commands.VersionHandler(b))

	h.Component(config.ApplyButtonID, handlers.WrapComponent("apply", config.ComponentExecutionTimeout, commands.ApplyButtonHandler(b)))
	h.Component(config.ApprovePrefix+"{id}", handlers.WrapComponent("approve", config.ComponentExecutionTimeout, commands.ApproveHandler(b)))
	h.Component(config.DeclinePrefix+"{id}", handlers.WrapComponent("decline", commands.DeclineTimeout(b), commands.DeclineHandler(b)))

	h.Modal(config.ApplicationForm, handlers.WrapModal("apply-form", commands.ApplicationFormHandler(b)))
	h.Modal(config.ReasonModalPrefix+"{id}/{nonce}", handlers.WrapModal("decline-reason", commands.ReasonModalHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		return fmt.Errorf("failed to setup bot: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if err = b.Wire(db); err != nil {
		return err
	}

	if syncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			logger.LogError("Failed to sync commands", err, slog.String("component", "command_sync"))
		}
	}

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(openCtx); err != nil {
		return fmt.Errorf("failed to open gateway: %w", err)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.", slog.String("type", "sys"))
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...", slog.String("type", "sys"))
	return nil
}

// openDatabase connects with retry and brings the schema up to date.
func openDatabase(ctx context.Context, cfg database.Config) (*database.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StartupTimeout)
	defer cancel()

	start := time.Now()
	db, err := database.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed after %s: %w", time.Since(start).Round(time.Millisecond), err)
	}
	if err = db.InitializeSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logger.LogSystem("Database ready", slog.Duration("took", time.Since(start)))
	return db, nil
}
