// Package review runs the approve and decline exchanges a moderator has with a single
// application's review message.
package review

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/allowlist/allowlist/controls"
	"github.com/ellavondegurechaff/allowlist/allowlist/database/models"
	"github.com/ellavondegurechaff/allowlist/allowlist/lifecycle"
	"github.com/ellavondegurechaff/allowlist/allowlist/logger"
)

const (
	MsgNotFoundOrDecided = "Application not found or already decided."
	MsgApprovedWithRole  = "Application approved. Role assigned successfully."
	MsgApprovedNoRole    = "Application approved. Failed to assign role."
	MsgDeclined          = "Application declined."
	MsgReasonRequired    = "A reason is required to decline an application."
	MsgUpdateFailed      = "Failed to update the application. Please try again."
)

// Responder answers one interaction. Acknowledge must be safe to call more than once.
type Responder interface {
	Acknowledge(ctx context.Context) error
	Reply(ctx context.Context, content string) error
}

// Session is the moderator's button interaction on a review message.
type Session interface {
	Responder
	Reviewer() lifecycle.Reviewer
	// PromptReason asks for a decline reason and blocks until it is submitted or ctx
	// ends. The returned Responder answers the prompt submission.
	PromptReason(ctx context.Context, applicationID int64) (string, Responder, error)
}

// Board edits the review message once an application is decided.
type Board interface {
	MarkDecided(ctx context.Context, app *models.Application) error
}

// Unbinder drops a control binding once it can no longer be used.
type Unbinder interface {
	Unbind(controlID string)
}

type Controller struct {
	machine       *lifecycle.Machine
	board         Board
	controls      Unbinder
	promptTimeout time.Duration
}

func NewController(machine *lifecycle.Machine, board Board, controls Unbinder, promptTimeout time.Duration) *Controller {
	return &Controller{
		machine:       machine,
		board:         board,
		controls:      controls,
		promptTimeout: promptTimeout,
	}
}

func (c *Controller) Approve(ctx context.Context, s Session, id int64) error {
	if err := s.Acknowledge(ctx); err != nil {
		return err
	}

	outcome, err := c.machine.Approve(ctx, id, s.Reviewer())
	if err != nil {
		return c.replyTransitionError(ctx, s, id, err)
	}

	c.settle(ctx, outcome.Application)

	msg := MsgApprovedWithRole
	if !outcome.RoleGranted() {
		msg = MsgApprovedNoRole
	}
	return c.reply(ctx, s, msg)
}

// Decline prompts for a reason first. An abandoned prompt leaves the application and
// its review controls untouched.
func (c *Controller) Decline(ctx context.Context, s Session, id int64) error {
	if _, err := c.machine.Pending(ctx, id); err != nil {
		return c.replyTransitionError(ctx, s, id, err)
	}

	promptCtx, cancel := context.WithTimeout(ctx, c.promptTimeout)
	reason, resp, err := s.PromptReason(promptCtx, id)
	cancel()
	if err != nil {
		if errors.Is(err, ErrPromptAbandoned) {
			slog.Info("Decline prompt abandoned",
				slog.String("type", "component"),
				slog.Int64("application_id", id),
				slog.String("reviewer_id", s.Reviewer().ID),
			)
			return nil
		}
		return err
	}

	if err = resp.Acknowledge(ctx); err != nil {
		return err
	}

	// The record is read again inside the transition; another moderator may have
	// decided it while the prompt was open.
	outcome, err := c.machine.Decline(ctx, id, s.Reviewer(), reason)
	if err != nil {
		if errors.Is(err, lifecycle.ErrEmptyReason) {
			return c.reply(ctx, resp, MsgReasonRequired)
		}
		return c.replyTransitionError(ctx, resp, id, err)
	}

	c.settle(ctx, outcome.Application)
	return c.reply(ctx, resp, MsgDeclined)
}

func (c *Controller) settle(ctx context.Context, app *models.Application) {
	if err := c.board.MarkDecided(ctx, app); err != nil {
		logger.LogError("Failed to update review message", err, slog.Int64("application_id", app.ID))
	}
	c.controls.Unbind(controls.ReviewControlID(app.ID))
}

func (c *Controller) replyTransitionError(ctx context.Context, r Responder, id int64, err error) error {
	if errors.Is(err, lifecycle.ErrNotFoundOrDecided) {
		return c.reply(ctx, r, MsgNotFoundOrDecided)
	}
	logger.LogError("Failed to decide application", err, slog.Int64("application_id", id))
	if replyErr := c.reply(ctx, r, MsgUpdateFailed); replyErr != nil {
		return replyErr
	}
	return err
}

func (c *Controller) reply(ctx context.Context, r Responder, content string) error {
	if err := r.Reply(ctx, content); err != nil {
		logger.LogError("Failed to reply to reviewer", err)
		return err
	}
	return nil
}
