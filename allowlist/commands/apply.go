package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/allowlist/allowlist"
	"github.com/ellavondegurechaff/allowlist/allowlist/config"
	"github.com/ellavondegurechaff/allowlist/allowlist/eligibility"
	"github.com/ellavondegurechaff/allowlist/allowlist/lifecycle"
	"github.com/ellavondegurechaff/allowlist/allowlist/logger"
	"github.com/ellavondegurechaff/allowlist/allowlist/utils"
)

const (
	MsgSubmitted        = "Your application has been submitted! Staff will review it and you will be notified by DM."
	MsgInvalidAge       = "Please enter your age as a whole number."
	MsgMissingField     = "Please fill in every required field."
	MsgEligibilityError = "Could not check your application history. Please try again later."
	MsgSubmitFailed     = "Failed to submit your application. Please try again later."
	MsgReviewPostFailed = "Your application was saved but could not be posted for review. Please contact staff."
)

// ApplyButtonHandler opens the application form for eligible applicants.
func ApplyButtonHandler(b *allowlist.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.ComponentExecutionTimeout)
		defer cancel()

		b.Users.Remember(e.User())
		decision, err := b.Gate.CanApply(ctx, e.User().ID.String(), time.Now())
		if err != nil {
			logger.LogError("Eligibility check failed", err, slog.String("user_id", e.User().ID.String()))
			return e.CreateMessage(utils.ErrorMessage(MsgEligibilityError))
		}
		if !decision.Allowed {
			return e.CreateMessage(utils.EphemeralMessage(cooldownReply(b.Gate, decision)))
		}
		return e.Modal(utils.ApplicationModal())
	}
}

// ApplicationFormHandler checks eligibility again, since the form may have been open
// for a while, then records the application and posts it for review.
func ApplicationFormHandler(b *allowlist.Bot) handler.ModalHandler {
	return func(e *handler.ModalEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.ComponentExecutionTimeout)
		defer cancel()

		resp := modalResponder(e)
		if err := resp.Acknowledge(ctx); err != nil {
			return err
		}

		user := e.User()
		now := time.Now()

		decision, err := b.Gate.CanApply(ctx, user.ID.String(), now)
		if err != nil {
			logger.LogError("Eligibility check failed", err, slog.String("user_id", user.ID.String()))
			return resp.Reply(ctx, MsgEligibilityError)
		}
		if !decision.Allowed {
			return resp.Reply(ctx, cooldownReply(b.Gate, decision))
		}

		sub, err := b.Machine.Submit(ctx, lifecycle.Form{
			ApplicantID:    user.ID.String(),
			ApplicantName:  user.Username,
			SteamHex:       e.Data.Text(config.SteamHexInput),
			RealName:       e.Data.Text(config.RealNameInput),
			CharacterName:  e.Data.Text(config.CharacterNameInput),
			Age:            e.Data.Text(config.AgeInput),
			CharacterStory: e.Data.Text(config.CharacterStoryInput),
		}, now)
		if err != nil {
			return resp.Reply(ctx, submitErrorReply(err))
		}
		if sub.AutoDeclined {
			return resp.Reply(ctx, utils.UnderageMessage(b.Machine.MinimumAge()))
		}

		if err = b.Board.PostReview(ctx, sub.Application); err != nil {
			logger.LogError("Failed to post application for review", err,
				slog.Int64("application_id", sub.Application.ID))
			return resp.Reply(ctx, MsgReviewPostFailed)
		}
		return resp.Reply(ctx, MsgSubmitted)
	}
}

func cooldownReply(gate *eligibility.Gate, d eligibility.Decision) string {
	return utils.CooldownMessage(gate.Cooldown(), d.RetryAt)
}

func submitErrorReply(err error) string {
	switch {
	case errors.Is(err, lifecycle.ErrInvalidAge):
		return MsgInvalidAge
	case errors.Is(err, lifecycle.ErrMissingField):
		return MsgMissingField
	default:
		logger.LogError("Failed to submit application", err)
		return MsgSubmitFailed
	}
}
