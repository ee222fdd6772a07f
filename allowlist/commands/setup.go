package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/disgo/rest"
	"github.com/ellavondegurechaff/allowlist/allowlist"
	"github.com/ellavondegurechaff/allowlist/allowlist/config"
	"github.com/ellavondegurechaff/allowlist/allowlist/logger"
	"github.com/ellavondegurechaff/allowlist/allowlist/utils"
)

var SetupApplication = discord.SlashCommandCreate{
	Name:        "setup-application",
	Description: "Post the allowlist application message in the application channel",
}

var SetupCooldownChannel = discord.SlashCommandCreate{
	Name:        "setup-cooldown-channel",
	Description: "Post cooldown exemption instructions in the cooldown management channel",
}

func SetupApplicationHandler(b *allowlist.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !hasPermission(e, discord.PermissionManageGuild) {
			return e.CreateMessage(utils.ErrorMessage(MsgMissingPermission))
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		messageID, err := b.Board.PostIntake(ctx)
		if err != nil {
			logger.LogError("Failed to post intake message", err)
			return e.CreateMessage(utils.ErrorMessage("Failed to post the application message. Check the bot's channel permissions."))
		}

		logger.LogSystem("Intake message posted",
			slog.String("channel_id", b.Cfg.Channels.Application.String()),
			slog.String("message_id", messageID.String()),
			slog.String("user_id", e.User().ID.String()),
		)
		return e.CreateMessage(utils.EphemeralMessage(
			fmt.Sprintf("Application message posted in <#%s>.", b.Cfg.Channels.Application)))
	}
}

func SetupCooldownChannelHandler(b *allowlist.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !hasPermission(e, discord.PermissionAdministrator) {
			return e.CreateMessage(utils.ErrorMessage(MsgMissingPermission))
		}

		channelID := b.Cfg.Channels.CooldownManagement
		if channelID == 0 {
			channelID = e.ChannelID()
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		_, err := b.Client.Rest().CreateMessage(channelID, discord.MessageCreate{
			Embeds: []discord.Embed{utils.CooldownChannelEmbed()},
		}, rest.WithCtx(ctx))
		if err != nil {
			logger.LogError("Failed to post cooldown instructions", err)
			return e.CreateMessage(utils.ErrorMessage("Failed to post the cooldown instructions."))
		}
		return e.CreateMessage(utils.EphemeralMessage(
			fmt.Sprintf("Cooldown management instructions posted in <#%s>.", channelID)))
	}
}
