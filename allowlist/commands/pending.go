package commands

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/ellavondegurechaff/allowlist/allowlist"
	"github.com/ellavondegurechaff/allowlist/allowlist/config"
	"github.com/ellavondegurechaff/allowlist/allowlist/logger"
	"github.com/ellavondegurechaff/allowlist/allowlist/utils"
)

var Applications = discord.SlashCommandCreate{
	Name:        "applications",
	Description: "Allowlist application tools",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "pending",
			Description: "List applications waiting for review",
		},
	},
}

var Version = discord.SlashCommandCreate{
	Name:        "version",
	Description: "Show the bot version",
}

func PendingHandler(b *allowlist.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !hasPermission(e, discord.PermissionManageGuild) {
			return e.CreateMessage(utils.ErrorMessage(MsgMissingPermission))
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		apps, err := b.ApplicationRepository.GetPending(ctx)
		if err != nil {
			logger.LogError("Failed to list pending applications", err)
			return e.CreateMessage(utils.ErrorMessage("Failed to load pending applications."))
		}
		if len(apps) == 0 {
			return e.CreateMessage(utils.EphemeralMessage("There are no pending applications."))
		}

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				utils.PendingPage(embed, apps, page, config.PendingListPageSize)
			},
			Pages:      utils.PageCount(len(apps), config.PendingListPageSize),
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, true)
	}
}

func VersionHandler(b *allowlist.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return e.CreateMessage(utils.EphemeralMessage(
			fmt.Sprintf("Version: `%s`\nCommit: `%s`", b.Version, b.Commit)))
	}
}
