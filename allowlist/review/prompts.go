package review

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ellavondegurechaff/allowlist/allowlist/config"
	"github.com/google/uuid"
)

// ErrPromptAbandoned is returned when the reason prompt is closed or times out.
var ErrPromptAbandoned = errors.New("reason prompt abandoned")

type promptResult struct {
	reason    string
	responder Responder
}

// Prompts tracks open decline reason prompts by modal custom ID. Each ID carries a
// nonce, so a modal left open from an earlier click cannot resolve a newer wait.
type Prompts struct {
	pending sync.Map
}

func NewPrompts() *Prompts {
	return &Prompts{}
}

// Prompt is an open reason prompt. The result channel is held here rather than
// looked up again in Wait, so a reason submitted before Wait starts is kept.
type Prompt struct {
	ID string
	ch chan promptResult
}

// Open registers a prompt for the application. Its ID is the modal custom ID.
func (p *Prompts) Open(applicationID int64) *Prompt {
	prompt := &Prompt{
		ID: fmt.Sprintf("%s%d/%s", config.ReasonModalPrefix, applicationID, uuid.NewString()),
		ch: make(chan promptResult, 1),
	}
	p.pending.Store(prompt.ID, prompt.ch)
	return prompt
}

// Wait blocks until the prompt is resolved or ctx ends. The prompt is removed either way.
func (p *Prompts) Wait(ctx context.Context, prompt *Prompt) (string, Responder, error) {
	select {
	case res, ok := <-prompt.ch:
		if !ok {
			return "", nil, ErrPromptAbandoned
		}
		return res.reason, res.responder, nil
	case <-ctx.Done():
		if _, removed := p.pending.LoadAndDelete(prompt.ID); removed {
			return "", nil, fmt.Errorf("%w: %w", ErrPromptAbandoned, ctx.Err())
		}
	}

	// Whoever removed the prompt first either sends a result or closes the channel.
	res, ok := <-prompt.ch
	if !ok {
		return "", nil, ErrPromptAbandoned
	}
	return res.reason, res.responder, nil
}

// Resolve delivers a submitted reason. It returns false when the prompt is unknown or
// has already expired.
func (p *Prompts) Resolve(customID, reason string, responder Responder) bool {
	v, ok := p.pending.LoadAndDelete(customID)
	if !ok {
		return false
	}
	v.(chan promptResult) <- promptResult{reason: reason, responder: responder}
	return true
}

// Cancel withdraws a prompt whose modal never opened. A pending Wait returns
// ErrPromptAbandoned.
func (p *Prompts) Cancel(prompt *Prompt) {
	if _, removed := p.pending.LoadAndDelete(prompt.ID); removed {
		close(prompt.ch)
	}
}

// ParsePromptID extracts the application ID from a reason modal custom ID.
func ParsePromptID(customID string) (int64, error) {
	rest, ok := strings.CutPrefix(customID, config.ReasonModalPrefix)
	if !ok {
		return 0, fmt.Errorf("not a reason prompt: %q", customID)
	}
	idPart, _, _ := strings.Cut(rest, "/")
	return strconv.ParseInt(idPart, 10, 64)
}
