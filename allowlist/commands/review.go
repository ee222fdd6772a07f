package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/allowlist/allowlist"
	"github.com/ellavondegurechaff/allowlist/allowlist/config"
	"github.com/ellavondegurechaff/allowlist/allowlist/lifecycle"
	"github.com/ellavondegurechaff/allowlist/allowlist/review"
	"github.com/ellavondegurechaff/allowlist/allowlist/utils"
)

const MsgPromptExpired = "This decline prompt has expired. The application was not declined."

func newReviewSession(b *allowlist.Bot, e *handler.ComponentEvent) *reviewSession {
	user := e.User()
	b.Users.Remember(user)

	reviewer := lifecycle.Reviewer{ID: user.ID.String(), Name: user.Username}
	if guildID := e.GuildID(); guildID != nil {
		reviewer.GuildID = guildID.String()
	}
	return &reviewSession{
		interactionResponder: componentResponder(e),
		reviewer:             reviewer,
		prompts:              b.Prompts,
		openModal:            e.Modal,
	}
}

func ApproveHandler(b *allowlist.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		id, ok := parseApplicationID(e.Vars)
		if !ok {
			return e.CreateMessage(utils.ErrorMessage("Invalid application."))
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.ComponentExecutionTimeout)
		defer cancel()

		return b.Controller.Approve(ctx, newReviewSession(b, e), id)
	}
}

func DeclineHandler(b *allowlist.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		id, ok := parseApplicationID(e.Vars)
		if !ok {
			return e.CreateMessage(utils.ErrorMessage("Invalid application."))
		}

		ctx, cancel := context.WithTimeout(context.Background(), DeclineTimeout(b))
		defer cancel()

		return b.Controller.Decline(ctx, newReviewSession(b, e), id)
	}
}

// DeclineTimeout covers the reason prompt plus the decision that follows it.
func DeclineTimeout(b *allowlist.Bot) time.Duration {
	return b.Cfg.Applications.PromptTimeout() + config.ComponentExecutionTimeout
}

// ReasonModalHandler hands a submitted decline reason to the waiting decline.
func ReasonModalHandler(b *allowlist.Bot) handler.ModalHandler {
	return func(e *handler.ModalEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.ComponentExecutionTimeout)
		defer cancel()

		resp := modalResponder(e)
		if err := resp.Acknowledge(ctx); err != nil {
			return err
		}

		if b.Prompts.Resolve(e.Data.CustomID, e.Data.Text(config.ReasonInput), resp) {
			return nil
		}

		id, _ := review.ParsePromptID(e.Data.CustomID)
		slog.Info("Late decline reason ignored",
			slog.String("type", "modal"),
			slog.Int64("application_id", id),
			slog.String("user_id", e.User().ID.String()),
		)
		return resp.Reply(ctx, MsgPromptExpired)
	}
}
