package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/ellavondegurechaff/allowlist/allowlist/lifecycle"
	"github.com/ellavondegurechaff/allowlist/allowlist/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	defers    int
	created   []discord.MessageCreate
	followups []discord.MessageCreate
	deferErr  error
}

func (r *recorder) responder() *interactionResponder {
	return newResponder(
		func(ephemeral bool, _ ...rest.RequestOpt) error {
			if r.deferErr != nil {
				return r.deferErr
			}
			r.defers++
			return nil
		},
		func(msg discord.MessageCreate, _ ...rest.RequestOpt) error {
			r.created = append(r.created, msg)
			return nil
		},
		func(_ context.Context, msg discord.MessageCreate) error {
			r.followups = append(r.followups, msg)
			return nil
		},
	)
}

func TestResponder_ReplyBeforeAcknowledge(t *testing.T) {
	rec := &recorder{}
	resp := rec.responder()

	require.NoError(t, resp.Reply(context.Background(), "first"))
	require.NoError(t, resp.Reply(context.Background(), "second"))

	require.Len(t, rec.created, 1)
	assert.Equal(t, "first", rec.created[0].Content)
	assert.Equal(t, discord.MessageFlagEphemeral, rec.created[0].Flags)
	require.Len(t, rec.followups, 1)
	assert.Equal(t, "second", rec.followups[0].Content)
}

func TestResponder_AcknowledgeIsIdempotent(t *testing.T) {
	rec := &recorder{}
	resp := rec.responder()

	require.NoError(t, resp.Acknowledge(context.Background()))
	require.NoError(t, resp.Acknowledge(context.Background()))
	require.NoError(t, resp.Reply(context.Background(), "done"))

	assert.Equal(t, 1, rec.defers)
	assert.Empty(t, rec.created)
	require.Len(t, rec.followups, 1)
	assert.Equal(t, "done", rec.followups[0].Content)
}

func TestResponder_AcknowledgeFailure(t *testing.T) {
	rec := &recorder{deferErr: errors.New("unknown interaction")}
	resp := rec.responder()

	require.Error(t, resp.Acknowledge(context.Background()))
	require.NoError(t, resp.Reply(context.Background(), "retry"))
	assert.Len(t, rec.created, 1)
}

func TestReviewSession_PromptOpenFailureCancelsPrompt(t *testing.T) {
	rec := &recorder{}
	var opened string
	s := &reviewSession{
		interactionResponder: rec.responder(),
		reviewer:             lifecycle.Reviewer{ID: "900"},
		prompts:              review.NewPrompts(),
		openModal: func(modal discord.ModalCreate, _ ...rest.RequestOpt) error {
			opened = modal.CustomID
			return errors.New("interaction expired")
		},
	}

	_, _, err := s.PromptReason(context.Background(), 7)
	require.Error(t, err)
	assert.False(t, s.prompts.Resolve(opened, "late", rec.responder()))
}

func TestReviewSession_PromptResolved(t *testing.T) {
	rec := &recorder{}
	opened := make(chan string, 1)
	s := &reviewSession{
		interactionResponder: rec.responder(),
		reviewer:             lifecycle.Reviewer{ID: "900"},
		prompts:              review.NewPrompts(),
		openModal: func(modal discord.ModalCreate, _ ...rest.RequestOpt) error {
			opened <- modal.CustomID
			return nil
		},
	}

	modalResp := (&recorder{}).responder()
	go func() {
		s.prompts.Resolve(<-opened, "Story too short", modalResp)
	}()

	reason, resp, err := s.PromptReason(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Story too short", reason)
	assert.Same(t, modalResp, resp)

	// The modal answered the button, so later replies must be followups.
	require.NoError(t, s.Reply(context.Background(), "after"))
	assert.Empty(t, rec.created)
	assert.Len(t, rec.followups, 1)
}

func TestReviewSession_PromptResolvedBeforeWait(t *testing.T) {
	rec := &recorder{}
	modalResp := (&recorder{}).responder()
	s := &reviewSession{
		interactionResponder: rec.responder(),
		reviewer:             lifecycle.Reviewer{ID: "900"},
		prompts:              review.NewPrompts(),
	}
	s.openModal = func(modal discord.ModalCreate, _ ...rest.RequestOpt) error {
		// Submit lands while the modal request is still returning.
		s.prompts.Resolve(modal.CustomID, "Too vague", modalResp)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	reason, resp, err := s.PromptReason(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, "Too vague", reason)
	assert.Same(t, modalResp, resp)
}

func TestParseApplicationID(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			id, ok := parseApplicationID(map[string]string{"id": tt.in})
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestExemptionReply(t *testing.T) {
	assert.Equal(t, "<@1> is now exempt from the application cooldown.", exemptionReply(exemptAdd, "1", true))
	assert.Equal(t, "<@1> was already exempt from the application cooldown.", exemptionReply(exemptAdd, "1", false))
	assert.Equal(t, "<@1> is no longer exempt from the application cooldown.", exemptionReply(exemptRemove, "1", true))
	assert.Equal(t, "<@1> was not exempt from the application cooldown.", exemptionReply(exemptRemove, "1", false))
}

func TestSubmitErrorReply(t *testing.T) {
	assert.Equal(t, MsgInvalidAge, submitErrorReply(fmt.Errorf("age %q: %w", "abc", lifecycle.ErrInvalidAge)))
	assert.Equal(t, MsgMissingField, submitErrorReply(lifecycle.ErrMissingField))
	assert.Equal(t, MsgSubmitFailed, submitErrorReply(errors.New("connection reset")))
}

func TestCommandNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, cmd := range Commands {
		name := cmd.CommandName()
		assert.False(t, seen[name], "duplicate command %s", name)
		seen[name] = true
	}
	assert.Len(t, seen, 5)
}
