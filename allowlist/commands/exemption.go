package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/allowlist/allowlist"
	"github.com/ellavondegurechaff/allowlist/allowlist/config"
	"github.com/ellavondegurechaff/allowlist/allowlist/logger"
	"github.com/ellavondegurechaff/allowlist/allowlist/utils"
)

const (
	exemptAdd    = "add"
	exemptRemove = "remove"
)

var CooldownExempt = discord.SlashCommandCreate{
	Name:        "cooldown-exempt",
	Description: "Let a member apply again without waiting for the cooldown",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "The member to update",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "action",
			Description: "Add or remove the exemption",
			Required:    true,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Add", Value: exemptAdd},
				{Name: "Remove", Value: exemptRemove},
			},
		},
	},
}

func CooldownExemptHandler(b *allowlist.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		inChannel := b.Cfg.Channels.CooldownManagement != 0 && e.ChannelID() == b.Cfg.Channels.CooldownManagement
		if !inChannel && !hasPermission(e, discord.PermissionAdministrator) {
			return e.CreateMessage(utils.ErrorMessage(
				"This command can only be used in the cooldown management channel."))
		}

		data := e.SlashCommandInteractionData()
		target := data.User("user")
		action := data.String("action")

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		var (
			changed bool
			err     error
		)
		switch action {
		case exemptAdd:
			changed, err = b.ExemptionRepository.Add(ctx, target.ID.String(), e.User().ID.String())
		case exemptRemove:
			changed, err = b.ExemptionRepository.Remove(ctx, target.ID.String())
		default:
			return e.CreateMessage(utils.ErrorMessage(fmt.Sprintf("Unknown action %q.", action)))
		}
		if err != nil {
			logger.LogError("Failed to update cooldown exemption", err,
				slog.String("user_id", target.ID.String()),
				slog.String("action", action))
			return e.CreateMessage(utils.ErrorMessage("Failed to update the cooldown exemption."))
		}

		slog.Info("Cooldown exemption updated",
			slog.String("type", "audit"),
			slog.String("action", action),
			slog.Bool("changed", changed),
			slog.String("user_id", target.ID.String()),
			slog.String("user_name", e.User().Username),
		)
		return e.CreateMessage(utils.EphemeralMessage(exemptionReply(action, target.ID.String(), changed)))
	}
}

func exemptionReply(action, userID string, changed bool) string {
	mention := utils.Mention(userID)
	switch {
	case action == exemptAdd && changed:
		return mention + " is now exempt from the application cooldown."
	case action == exemptAdd:
		return mention + " was already exempt from the application cooldown."
	case changed:
		return mention + " is no longer exempt from the application cooldown."
	default:
		return mention + " was not exempt from the application cooldown."
	}
}
