package commands

import (
	"context"
	"strconv"
	"sync"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/disgo/rest"
	"github.com/ellavondegurechaff/allowlist/allowlist/lifecycle"
	"github.com/ellavondegurechaff/allowlist/allowlist/review"
	"github.com/ellavondegurechaff/allowlist/allowlist/utils"
)

type (
	deferFunc    func(ephemeral bool, opts ...rest.RequestOpt) error
	createFunc   func(msg discord.MessageCreate, opts ...rest.RequestOpt) error
	followupFunc func(ctx context.Context, msg discord.MessageCreate) error
)

// interactionResponder answers one interaction with ephemeral messages. Once the
// interaction is acknowledged, replies go out as followups.
type interactionResponder struct {
	mu       sync.Mutex
	acked    bool
	deferFn  deferFunc
	create   createFunc
	followup followupFunc
}

func newResponder(deferFn deferFunc, create createFunc, followup followupFunc) *interactionResponder {
	return &interactionResponder{deferFn: deferFn, create: create, followup: followup}
}

func componentResponder(e *handler.ComponentEvent) *interactionResponder {
	return newResponder(e.DeferCreateMessage, e.CreateMessage, func(ctx context.Context, msg discord.MessageCreate) error {
		_, err := e.Client().Rest().CreateFollowupMessage(e.ApplicationID(), e.Token(), msg, rest.WithCtx(ctx))
		return err
	})
}

func modalResponder(e *handler.ModalEvent) *interactionResponder {
	return newResponder(e.DeferCreateMessage, e.CreateMessage, func(ctx context.Context, msg discord.MessageCreate) error {
		_, err := e.Client().Rest().CreateFollowupMessage(e.ApplicationID(), e.Token(), msg, rest.WithCtx(ctx))
		return err
	})
}

func (r *interactionResponder) Acknowledge(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.acked {
		return nil
	}
	if err := r.deferFn(true, rest.WithCtx(ctx)); err != nil {
		return err
	}
	r.acked = true
	return nil
}

func (r *interactionResponder) Reply(ctx context.Context, content string) error {
	return r.Send(ctx, utils.EphemeralMessage(content))
}

func (r *interactionResponder) Send(ctx context.Context, msg discord.MessageCreate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.acked {
		return r.followup(ctx, msg)
	}
	if err := r.create(msg, rest.WithCtx(ctx)); err != nil {
		return err
	}
	r.acked = true
	return nil
}

// markResponded records that the interaction was answered some other way, e.g. with a modal.
func (r *interactionResponder) markResponded() {
	r.mu.Lock()
	r.acked = true
	r.mu.Unlock()
}

type reviewSession struct {
	*interactionResponder
	reviewer  lifecycle.Reviewer
	prompts   *review.Prompts
	openModal func(modal discord.ModalCreate, opts ...rest.RequestOpt) error
}

func (s *reviewSession) Reviewer() lifecycle.Reviewer {
	return s.reviewer
}

func (s *reviewSession) PromptReason(ctx context.Context, applicationID int64) (string, review.Responder, error) {
	prompt := s.prompts.Open(applicationID)
	if err := s.openModal(utils.ReasonModal(prompt.ID, applicationID), rest.WithCtx(ctx)); err != nil {
		s.prompts.Cancel(prompt)
		return "", nil, err
	}
	s.markResponded()
	return s.prompts.Wait(ctx, prompt)
}

func parseApplicationID(vars map[string]string) (int64, bool) {
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
