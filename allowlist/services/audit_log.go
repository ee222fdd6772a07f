package services

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/allowlist/allowlist/database/models"
	"github.com/ellavondegurechaff/allowlist/allowlist/lifecycle"
	"github.com/ellavondegurechaff/allowlist/allowlist/utils"
)

type Banners struct {
	Approved string
	Declined string
}

// AuditLog posts lifecycle entries to the staff logs channel.
type AuditLog struct {
	client     bot.Client
	channelID  snowflake.ID
	users      *UserDirectory
	banners    Banners
	minimumAge int
}

func NewAuditLog(client bot.Client, channelID snowflake.ID, users *UserDirectory, banners Banners, minimumAge int) *AuditLog {
	return &AuditLog{
		client:     client,
		channelID:  channelID,
		users:      users,
		banners:    banners,
		minimumAge: minimumAge,
	}
}

func (a *AuditLog) Approved(ctx context.Context, app *models.Application, reviewer lifecycle.Reviewer, role lifecycle.StepResult) error {
	embed := utils.ApprovedAuditEmbed(app, reviewerLabel(reviewer), role.Err, a.banners.Approved)
	return a.post(ctx, a.withApplicant(ctx, embed, app))
}

func (a *AuditLog) Declined(ctx context.Context, app *models.Application, reviewer lifecycle.Reviewer) error {
	embed := utils.DeclinedAuditEmbed(app, reviewerLabel(reviewer), a.banners.Declined)
	return a.post(ctx, a.withApplicant(ctx, embed, app))
}

func (a *AuditLog) AutoDeclined(ctx context.Context, form lifecycle.Form, age int) error {
	embed := utils.AutoDeclinedAuditEmbed(form.ApplicantID, age, a.minimumAge)
	if form.ApplicantName != "" {
		embed.Author = &discord.EmbedAuthor{Name: form.ApplicantName}
	}
	return a.post(ctx, embed)
}

func (a *AuditLog) DeliveryFailed(ctx context.Context, app *models.Application, cause error) error {
	return a.post(ctx, utils.DeliveryFailedEmbed(app, cause))
}

func (a *AuditLog) withApplicant(ctx context.Context, embed discord.Embed, app *models.Application) discord.Embed {
	name := app.ApplicantName
	if name == "" {
		name = a.users.Name(ctx, app.ApplicantID)
	}
	embed.Author = &discord.EmbedAuthor{Name: name}
	return embed
}

func (a *AuditLog) post(ctx context.Context, embed discord.Embed) error {
	_, err := a.client.Rest().CreateMessage(a.channelID, discord.MessageCreate{
		Embeds: []discord.Embed{embed},
	}, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to post audit entry: %w", err)
	}
	return nil
}

func reviewerLabel(r lifecycle.Reviewer) string {
	if r.Name == "" {
		return utils.Mention(r.ID)
	}
	return fmt.Sprintf("%s (%s)", utils.Mention(r.ID), r.Name)
}
