package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/allowlist/allowlist/config"
)

type interaction struct {
	kind    string
	label   string
	name    string
	user    discord.User
	guild   string
	channel string
}

// WrapCommand wraps a slash command handler with logging and a timeout.
func WrapCommand(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return run(interaction{
			kind:    "cmd",
			label:   "Command",
			name:    name,
			user:    e.User(),
			guild:   guildString(e.GuildID()),
			channel: e.ChannelID().String(),
		}, config.CommandExecutionTimeout, func() error { return h(e) })
	}
}

// WrapComponent wraps a button handler. Handlers that wait on a moderator
// prompt pass a timeout covering the prompt window.
func WrapComponent(name string, timeout time.Duration, h handler.ComponentHandler) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		return run(interaction{
			kind:    "component",
			label:   "Component interaction",
			name:    name,
			user:    e.User(),
			guild:   guildString(e.GuildID()),
			channel: e.ChannelID().String(),
		}, timeout, func() error { return h(e) })
	}
}

func WrapModal(name string, h handler.ModalHandler) handler.ModalHandler {
	return func(e *handler.ModalEvent) error {
		return run(interaction{
			kind:    "modal",
			label:   "Modal submission",
			name:    name,
			user:    e.User(),
			guild:   guildString(e.GuildID()),
			channel: e.ChannelID().String(),
		}, config.ComponentExecutionTimeout, func() error { return h(e) })
	}
}

func run(i interaction, timeout time.Duration, fn func() error) error {
	start := time.Now()

	slog.Info(i.label+" started",
		slog.String("type", i.kind),
		slog.String("name", i.name),
		slog.String("user_id", i.user.ID.String()),
		slog.String("user_name", i.user.Username),
		slog.String("guild_id", i.guild),
		slog.String("channel_id", i.channel),
	)

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		duration := time.Since(start)
		attrs := []any{
			slog.String("type", i.kind),
			slog.String("name", i.name),
			slog.String("user_id", i.user.ID.String()),
			slog.String("user_name", i.user.Username),
			slog.Duration("took", duration),
		}

		switch {
		case err != nil:
			slog.Error(i.label+" failed", append(attrs,
				slog.Any("error", err),
				slog.String("status", "failed"),
			)...)
		case duration > config.SlowHandlerThreshold:
			slog.Warn(i.label+" executed slowly", append(attrs,
				slog.String("status", "slow"),
			)...)
		default:
			slog.Info(i.label+" completed", append(attrs,
				slog.String("status", "success"),
			)...)
		}
		return err

	case <-time.After(timeout):
		slog.Error(i.label+" timed out",
			slog.String("type", i.kind),
			slog.String("name", i.name),
			slog.String("user_id", i.user.ID.String()),
			slog.String("user_name", i.user.Username),
			slog.String("status", "timeout"),
			slog.Duration("timeout", timeout),
		)
		return fmt.Errorf("%s %s timed out after %s", i.kind, i.name, timeout)
	}
}

func guildString(id *snowflake.ID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
