package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/allowlist/allowlist/config"
	"github.com/ellavondegurechaff/allowlist/allowlist/controls"
	"github.com/ellavondegurechaff/allowlist/allowlist/database/models"
	"github.com/ellavondegurechaff/allowlist/allowlist/utils"
)

type ReviewMessageStore interface {
	SetReviewMessage(ctx context.Context, id int64, channelID, messageID string) error
}

// ReviewBoard owns the bot's messages in the intake and review channels.
type ReviewBoard struct {
	client        bot.Client
	store         ReviewMessageStore
	registry      *controls.Registry
	intakeChannel snowflake.ID
	reviewChannel snowflake.ID
	intakeBanner  string
}

func NewReviewBoard(client bot.Client, store ReviewMessageStore, registry *controls.Registry, intakeChannel, reviewChannel snowflake.ID, intakeBanner string) *ReviewBoard {
	return &ReviewBoard{
		client:        client,
		store:         store,
		registry:      registry,
		intakeChannel: intakeChannel,
		reviewChannel: reviewChannel,
		intakeBanner:  intakeBanner,
	}
}

// PostIntake sends a fresh intake message with the Apply button and returns its ID.
func (b *ReviewBoard) PostIntake(ctx context.Context) (snowflake.ID, error) {
	msg, err := b.client.Rest().CreateMessage(b.intakeChannel, utils.IntakeMessage(b.intakeBanner), rest.WithCtx(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to post intake message: %w", err)
	}
	b.registry.Bind(controls.Binding{
		ControlID: config.IntakeControlID,
		ChannelID: b.intakeChannel,
		MessageID: msg.ID,
	})
	return msg.ID, nil
}

// PostReview sends the review message for a new application and stores its reference.
func (b *ReviewBoard) PostReview(ctx context.Context, app *models.Application) error {
	msg, err := b.client.Rest().CreateMessage(b.reviewChannel, utils.ReviewMessage(app), rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to post review message: %w", err)
	}

	app.ChannelID = b.reviewChannel.String()
	app.MessageID = msg.ID.String()
	if err = b.store.SetReviewMessage(ctx, app.ID, app.ChannelID, app.MessageID); err != nil {
		return fmt.Errorf("failed to store review message: %w", err)
	}

	b.registry.Bind(controls.Binding{
		ControlID:     controls.ReviewControlID(app.ID),
		ChannelID:     b.reviewChannel,
		MessageID:     msg.ID,
		ApplicationID: app.ID,
	})
	return nil
}

// MarkDecided recolours the review message and removes its buttons.
func (b *ReviewBoard) MarkDecided(ctx context.Context, app *models.Application) error {
	channelID, messageID, err := b.reviewRef(app)
	if err != nil {
		return err
	}

	_, err = b.client.Rest().UpdateMessage(channelID, messageID, discord.MessageUpdate{
		Embeds:     &[]discord.Embed{utils.DecidedReviewEmbed(app)},
		Components: &[]discord.ContainerComponent{},
	}, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to update review message: %w", err)
	}
	return nil
}

func (b *ReviewBoard) reviewRef(app *models.Application) (snowflake.ID, snowflake.ID, error) {
	if !app.HasReviewMessage() {
		return 0, 0, fmt.Errorf("application %d has no review message", app.ID)
	}
	channelID := b.reviewChannel
	if app.ChannelID != "" {
		id, err := snowflake.Parse(app.ChannelID)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid channel id %q: %w", app.ChannelID, err)
		}
		channelID = id
	}
	messageID, err := snowflake.Parse(app.MessageID)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid message id %q: %w", app.MessageID, err)
	}
	return channelID, messageID, nil
}

// FindIntakeMessage scans recent intake channel history, newest first.
func (b *ReviewBoard) FindIntakeMessage(ctx context.Context) (snowflake.ID, snowflake.ID, bool, error) {
	messages, err := b.client.Rest().GetMessages(b.intakeChannel, 0, 0, 0, config.IntakeHistoryLimit, rest.WithCtx(ctx))
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to read intake history: %w", err)
	}

	selfID := b.client.ID()
	for _, msg := range messages {
		if msg.Author.ID == selfID && len(msg.Components) > 0 {
			return b.intakeChannel, msg.ID, true, nil
		}
	}
	return 0, 0, false, nil
}

func (b *ReviewBoard) AttachIntakeControls(ctx context.Context, channelID, messageID snowflake.ID) error {
	return b.attach(ctx, channelID, messageID, utils.IntakeComponents())
}

func (b *ReviewBoard) AttachReviewControls(ctx context.Context, channelID, messageID snowflake.ID, applicationID int64) error {
	return b.attach(ctx, channelID, messageID, utils.ReviewComponents(applicationID))
}

func (b *ReviewBoard) attach(ctx context.Context, channelID, messageID snowflake.ID, components []discord.ContainerComponent) error {
	_, err := b.client.Rest().UpdateMessage(channelID, messageID, discord.MessageUpdate{
		Components: &components,
	}, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to attach controls to %s: %w", messageID, err)
	}
	slog.Debug("Controls attached",
		slog.String("type", "sys"),
		slog.String("channel_id", channelID.String()),
		slog.String("message_id", messageID.String()),
	)
	return nil
}
