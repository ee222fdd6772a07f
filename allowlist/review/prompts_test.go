package review

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompts_ResolveDeliversReason(t *testing.T) {
	p := NewPrompts()
	prompt := p.Open(7)
	responder := &fakeResponder{}

	go func() {
		time.Sleep(5 * time.Millisecond)
		p.Resolve(prompt.ID, "no backstory", responder)
	}()

	reason, got, err := p.Wait(context.Background(), prompt)

	require.NoError(t, err)
	assert.Equal(t, "no backstory", reason)
	assert.Same(t, responder, got)
	assert.False(t, p.Resolve(prompt.ID, "again", responder))
}

func TestPrompts_ResolveBeforeWaitIsKept(t *testing.T) {
	p := NewPrompts()
	prompt := p.Open(7)
	responder := &fakeResponder{}

	// The modal can be submitted before the decline reaches Wait.
	require.True(t, p.Resolve(prompt.ID, "submitted early", responder))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	reason, got, err := p.Wait(ctx, prompt)

	require.NoError(t, err)
	assert.Equal(t, "submitted early", reason)
	assert.Same(t, responder, got)
}

func TestPrompts_WaitAfterDeadlineStillTakesResolvedReason(t *testing.T) {
	p := NewPrompts()
	prompt := p.Open(7)
	require.True(t, p.Resolve(prompt.ID, "just in time", &fakeResponder{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reason, _, err := p.Wait(ctx, prompt)

	require.NoError(t, err)
	assert.Equal(t, "just in time", reason)
}

func TestPrompts_WaitTimesOut(t *testing.T) {
	p := NewPrompts()
	prompt := p.Open(7)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, _, err := p.Wait(ctx, prompt)

	assert.ErrorIs(t, err, ErrPromptAbandoned)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, p.Resolve(prompt.ID, "late", &fakeResponder{}))
}

func TestPrompts_Cancel(t *testing.T) {
	p := NewPrompts()
	prompt := p.Open(7)
	p.Cancel(prompt)
	p.Cancel(prompt)

	assert.False(t, p.Resolve(prompt.ID, "late", &fakeResponder{}))
	_, _, err := p.Wait(context.Background(), prompt)
	assert.ErrorIs(t, err, ErrPromptAbandoned)
}

func TestPrompts_IDsAreUniquePerOpen(t *testing.T) {
	p := NewPrompts()
	first, second := p.Open(7), p.Open(7)

	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, strings.HasPrefix(first.ID, "/review/reason/7/"))
}

func TestParsePromptID(t *testing.T) {
	id, err := ParsePromptID("/review/reason/42/2b1c7a0e-0000-4000-8000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParsePromptID("/review/approve/42")
	assert.Error(t, err)
}
