package controls

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/allowlist/allowlist/config"
	"github.com/ellavondegurechaff/allowlist/allowlist/database/models"
	"github.com/ellavondegurechaff/allowlist/allowlist/logger"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -destination=mock/reconciler.go -package=mock . MessageGateway,PendingLister

type MessageGateway interface {
	// FindIntakeMessage returns the most recent bot message with components in the
	// intake channel. ok is false when there is none.
	FindIntakeMessage(ctx context.Context) (channelID, messageID snowflake.ID, ok bool, err error)
	AttachIntakeControls(ctx context.Context, channelID, messageID snowflake.ID) error
	AttachReviewControls(ctx context.Context, channelID, messageID snowflake.ID, applicationID int64) error
}

type PendingLister interface {
	GetPending(ctx context.Context) ([]*models.Application, error)
}

type Report struct {
	IntakeRestored  bool
	ReviewsRestored int
	// ReviewsSkipped counts pending applications that never got a review message.
	ReviewsSkipped int
	// ReviewsUnchanged counts reviews already bound to the same message, as on a
	// second Ready within one process.
	ReviewsUnchanged int
	ReviewsFailed    int
}

type Reconciler struct {
	gateway  MessageGateway
	pending  PendingLister
	registry *Registry
	// reviewChannel is used for rows written before channel_id was stored.
	reviewChannel snowflake.ID
}

func NewReconciler(gateway MessageGateway, pending PendingLister, registry *Registry, reviewChannel snowflake.ID) *Reconciler {
	return &Reconciler{
		gateway:       gateway,
		pending:       pending,
		registry:      registry,
		reviewChannel: reviewChannel,
	}
}

// Run re-attaches the Apply button and the decision buttons of every pending
// application. Individual failures are logged and skipped; only a failure to list
// pending applications is returned.
func (r *Reconciler) Run(ctx context.Context) (Report, error) {
	var report Report

	report.IntakeRestored = r.restoreIntake(ctx)

	apps, err := r.pending.GetPending(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list pending applications: %w", err)
	}

	var restored, unchanged, failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.ReconcileConcurrency)

	for _, app := range apps {
		if !app.HasReviewMessage() {
			report.ReviewsSkipped++
			slog.Warn("Pending application has no review message",
				slog.String("type", "sys"),
				slog.Int64("application_id", app.ID),
			)
			continue
		}

		g.Go(func() error {
			attached, err := r.restoreReview(gctx, app)
			if err != nil {
				failed.Add(1)
				logger.LogError("Failed to restore review controls", err,
					slog.Int64("application_id", app.ID),
					slog.String("message_id", app.MessageID),
				)
				return nil
			}
			if attached {
				restored.Add(1)
			} else {
				unchanged.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	report.ReviewsRestored = int(restored.Load())
	report.ReviewsUnchanged = int(unchanged.Load())
	report.ReviewsFailed = int(failed.Load())
	return report, nil
}

func (r *Reconciler) restoreIntake(ctx context.Context) bool {
	channelID, messageID, ok, err := r.gateway.FindIntakeMessage(ctx)
	if err != nil {
		logger.LogError("Failed to find intake message", err)
		return false
	}
	if !ok {
		slog.Warn("No intake message found, run /setup-application", slog.String("type", "sys"))
		return false
	}
	if err = r.gateway.AttachIntakeControls(ctx, channelID, messageID); err != nil {
		logger.LogError("Failed to restore intake controls", err, slog.String("message_id", messageID.String()))
		return false
	}
	r.registry.Bind(Binding{
		ControlID: config.IntakeControlID,
		ChannelID: channelID,
		MessageID: messageID,
	})
	return true
}

// restoreReview reports false when the controls were already bound to the message.
func (r *Reconciler) restoreReview(ctx context.Context, app *models.Application) (bool, error) {
	channelID := r.reviewChannel
	if app.ChannelID != "" {
		id, err := snowflake.Parse(app.ChannelID)
		if err != nil {
			return false, fmt.Errorf("invalid channel id %q: %w", app.ChannelID, err)
		}
		channelID = id
	}
	messageID, err := snowflake.Parse(app.MessageID)
	if err != nil {
		return false, fmt.Errorf("invalid message id %q: %w", app.MessageID, err)
	}
	controlID := ReviewControlID(app.ID)
	if b, ok := r.registry.Lookup(controlID); ok && b.MessageID == messageID {
		return false, nil
	}
	if err = r.gateway.AttachReviewControls(ctx, channelID, messageID, app.ID); err != nil {
		return false, err
	}
	r.registry.Bind(Binding{
		ControlID:     controlID,
		ChannelID:     channelID,
		MessageID:     messageID,
		ApplicationID: app.ID,
	})
	return true, nil
}

func ReviewControlID(applicationID int64) string {
	return fmt.Sprintf("%s%d", config.ReviewControlID, applicationID)
}
