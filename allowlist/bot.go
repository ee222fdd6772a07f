package allowlist

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/ellavondegurechaff/allowlist/allowlist/config"
	"github.com/ellavondegurechaff/allowlist/allowlist/controls"
	"github.com/ellavondegurechaff/allowlist/allowlist/database"
	"github.com/ellavondegurechaff/allowlist/allowlist/database/repositories"
	"github.com/ellavondegurechaff/allowlist/allowlist/eligibility"
	"github.com/ellavondegurechaff/allowlist/allowlist/lifecycle"
	"github.com/ellavondegurechaff/allowlist/allowlist/logger"
	"github.com/ellavondegurechaff/allowlist/allowlist/review"
	"github.com/ellavondegurechaff/allowlist/allowlist/services"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Registry:  controls.NewRegistry(),
		Prompts:   review.NewPrompts(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string
	DB        *database.DB

	ApplicationRepository repositories.ApplicationRepository
	ExemptionRepository   repositories.ExemptionRepository

	Gate       *eligibility.Gate
	Machine    *lifecycle.Machine
	Controller *review.Controller
	Prompts    *review.Prompts
	Registry   *controls.Registry
	Reconciler *controls.Reconciler
	Board      *services.ReviewBoard
	Users      *services.UserDirectory
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds, gateway.IntentGuildMessages)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventManagerConfigOpts(bot.WithAsyncEventsEnabled()),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

// Wire builds the application services on top of an open store and a configured
// client. SetupBot must have been called first.
func (b *Bot) Wire(db *database.DB) error {
	if b.Client == nil {
		return fmt.Errorf("client is not set up")
	}
	b.DB = db
	b.ApplicationRepository = repositories.NewApplicationRepository(db.BunDB())
	b.ExemptionRepository = repositories.NewExemptionRepository(db.BunDB())

	users, err := services.NewUserDirectory(b.Client, config.UserCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create user directory: %w", err)
	}
	b.Users = users

	apps := b.Cfg.Applications
	banners := services.Banners{Approved: b.Cfg.Banners.Approved, Declined: b.Cfg.Banners.Declined}

	b.Gate = eligibility.NewGate(apps.Cooldown(), apps.BypassIDStrings(), b.ExemptionRepository, b.ApplicationRepository)
	b.Machine = lifecycle.NewMachine(
		b.ApplicationRepository,
		services.NewRoleGranter(b.Client, apps.AllowlistedRole, b.Cfg.Bot.GuildID),
		services.NewDirectMessenger(b.Client, banners),
		services.NewAuditLog(b.Client, b.Cfg.Channels.Logs, users, banners, apps.MinimumAge),
		apps.MinimumAge,
	)
	b.Board = services.NewReviewBoard(b.Client, b.ApplicationRepository, b.Registry,
		b.Cfg.Channels.Application, b.Cfg.Channels.Review, b.Cfg.Banners.Application)
	b.Controller = review.NewController(b.Machine, b.Board, b.Registry, apps.PromptTimeout())
	b.Reconciler = controls.NewReconciler(b.Board, b.ApplicationRepository, b.Registry, b.Cfg.Channels.Review)
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Allowlist bot is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("allowlist applications"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.String("type", "sys"), slog.Any("error", err))
	}
	cancel()

	b.Reconcile()
}

// Reconcile re-attaches controls to the intake message and to every pending review.
func (b *Bot) Reconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), config.StartupTimeout)
	defer cancel()

	start := time.Now()
	report, err := b.Reconciler.Run(ctx)
	if err != nil {
		logger.LogError("Control reconciliation failed", err)
		return
	}
	logger.LogSystem("Controls reconciled",
		slog.Bool("intake_restored", report.IntakeRestored),
		slog.Int("reviews_restored", report.ReviewsRestored),
		slog.Int("reviews_unchanged", report.ReviewsUnchanged),
		slog.Int("reviews_skipped", report.ReviewsSkipped),
		slog.Int("reviews_failed", report.ReviewsFailed),
		slog.Int("bindings", b.Registry.Len()),
		slog.Duration("took", time.Since(start)),
	)
}
