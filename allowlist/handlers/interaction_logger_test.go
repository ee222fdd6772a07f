package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
)

func testInteraction() interaction {
	return interaction{
		kind:  "component",
		label: "Component interaction",
		name:  "review/approve",
		user:  discord.User{ID: snowflake.ID(42), Username: "moderator"},
	}
}

func TestRun_ReturnsHandlerResult(t *testing.T) {
	boom := errors.New("boom")

	assert.NoError(t, run(testInteraction(), time.Second, func() error { return nil }))
	assert.ErrorIs(t, run(testInteraction(), time.Second, func() error { return boom }), boom)
}

func TestRun_TimesOut(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	err := run(testInteraction(), 20*time.Millisecond, func() error {
		<-release
		return nil
	})

	assert.ErrorContains(t, err, "timed out")
}

func TestGuildString(t *testing.T) {
	id := snowflake.ID(123)

	assert.Equal(t, "", guildString(nil))
	assert.Equal(t, "123", guildString(&id))
}
