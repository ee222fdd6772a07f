package services

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/allowlist/allowlist/database/models"
	"github.com/ellavondegurechaff/allowlist/allowlist/utils"
)

// DirectMessenger tells applicants about decisions by DM.
type DirectMessenger struct {
	client  bot.Client
	banners Banners
}

func NewDirectMessenger(client bot.Client, banners Banners) *DirectMessenger {
	return &DirectMessenger{client: client, banners: banners}
}

func (m *DirectMessenger) NotifyApproved(ctx context.Context, app *models.Application, roleGranted bool) error {
	return m.send(ctx, app.ApplicantID, utils.ApprovedDMEmbed(m.banners.Approved, roleGranted))
}

func (m *DirectMessenger) NotifyDeclined(ctx context.Context, app *models.Application) error {
	return m.send(ctx, app.ApplicantID, utils.DeclinedDMEmbed(app.ReviewReason, m.banners.Declined))
}

func (m *DirectMessenger) send(ctx context.Context, userID string, embed discord.Embed) error {
	id, err := snowflake.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	dmChannel, err := m.client.Rest().CreateDMChannel(id, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	_, err = m.client.Rest().CreateMessage(dmChannel.ID(), discord.MessageCreate{
		Embeds: []discord.Embed{embed},
	}, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}
	return nil
}

// RoleGranter assigns the configured allowlisted role.
type RoleGranter struct {
	client       bot.Client
	roleID       snowflake.ID
	defaultGuild snowflake.ID
}

func NewRoleGranter(client bot.Client, roleID, defaultGuild snowflake.ID) *RoleGranter {
	return &RoleGranter{client: client, roleID: roleID, defaultGuild: defaultGuild}
}

func (g *RoleGranter) GrantAllowlistRole(ctx context.Context, guildID, applicantID string) error {
	guild := g.defaultGuild
	if guildID != "" {
		id, err := snowflake.Parse(guildID)
		if err != nil {
			return fmt.Errorf("invalid guild id %q: %w", guildID, err)
		}
		guild = id
	}
	if guild == 0 {
		return fmt.Errorf("no guild to assign the role in")
	}

	user, err := snowflake.Parse(applicantID)
	if err != nil {
		return fmt.Errorf("invalid applicant id %q: %w", applicantID, err)
	}

	if err = g.client.Rest().AddMemberRole(guild, user, g.roleID, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to add role %s: %w", g.roleID, err)
	}
	return nil
}
