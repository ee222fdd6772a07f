package utils

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/ellavondegurechaff/allowlist/allowlist/config"
	"github.com/ellavondegurechaff/allowlist/allowlist/database/models"
)

const (
	approvedPrefix = "[APPROVED] "
	declinedPrefix = "[DECLINED] "
	reviewTitle    = "New Allowlist Application"
)

// Mention formats a Discord user ID as a mention.
func Mention(userID string) string {
	return "<@" + userID + ">"
}

// Truncate cuts s to at most n runes, appending "..." when it was cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// FormatDuration renders a cooldown the way staff configure it: hours, or minutes
// when shorter than an hour.
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	case d >= time.Minute:
		m := int(d.Round(time.Minute) / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	default:
		return d.Round(time.Second).String()
	}
}

func IntakeMessage(bannerURL string) discord.MessageCreate {
	embed := discord.NewEmbedBuilder().
		SetTitle("Allowlist Application").
		SetDescription("Ready to join the city? Press **Apply** below and fill in the form.\n\n" +
			"• Have your Steam hex ready\n" +
			"• You must be 18 or older\n" +
			"• Staff will review your application and you will be notified by DM").
		SetColor(config.InfoColor)
	if bannerURL != "" {
		embed.SetImage(bannerURL)
	}

	return discord.MessageCreate{
		Embeds:     []discord.Embed{embed.Build()},
		Components: IntakeComponents(),
	}
}

func IntakeComponents() []discord.ContainerComponent {
	return []discord.ContainerComponent{
		discord.NewActionRow(discord.NewPrimaryButton("Apply", config.ApplyButtonID)),
	}
}

func ApplicationModal() discord.ModalCreate {
	return discord.ModalCreate{
		CustomID: config.ApplicationForm,
		Title:    "Allowlist Application",
		Components: []discord.ContainerComponent{
			discord.NewActionRow(discord.NewShortTextInput(config.SteamHexInput, "Steam Hex").
				WithRequired(true).
				WithPlaceholder("steam:110000100000001")),
			discord.NewActionRow(discord.NewShortTextInput(config.RealNameInput, "Real Name").
				WithRequired(true)),
			discord.NewActionRow(discord.NewShortTextInput(config.CharacterNameInput, "Character Name").
				WithRequired(true)),
			discord.NewActionRow(discord.NewShortTextInput(config.AgeInput, "Age").
				WithRequired(true).
				WithMaxLength(3)),
			discord.NewActionRow(discord.NewParagraphTextInput(config.CharacterStoryInput, "Character Story").
				WithRequired(false).
				WithMaxLength(4000)),
		},
	}
}

func ReasonModal(customID string, applicationID int64) discord.ModalCreate {
	return discord.ModalCreate{
		CustomID: customID,
		Title:    fmt.Sprintf("Decline Application #%d", applicationID),
		Components: []discord.ContainerComponent{
			discord.NewActionRow(discord.NewParagraphTextInput(config.ReasonInput, "Reason").
				WithRequired(true).
				WithMaxLength(1000)),
		},
	}
}

func ReviewComponents(applicationID int64) []discord.ContainerComponent {
	id := strconv.FormatInt(applicationID, 10)
	return []discord.ContainerComponent{
		discord.NewActionRow(
			discord.NewSuccessButton("Approve", config.ApprovePrefix+id),
			discord.NewDangerButton("Decline", config.DeclinePrefix+id),
		),
	}
}

// ReviewEmbed renders an application for moderators. Stories longer than a field
// allows are cut here and attached in full by ReviewMessage.
func ReviewEmbed(app *models.Application) discord.Embed {
	story := app.CharacterStory
	if story == "" {
		story = "Not provided"
	} else if len(story) > config.EmbedFieldLimit {
		story = Truncate(story, config.StoryPreviewLength)
	}

	embed := discord.NewEmbedBuilder().
		SetTitle(reviewTitle).
		SetColor(config.PendingColor).
		AddField("Applicant", Mention(app.ApplicantID), true).
		AddField("Steam Hex", app.SteamHex, true).
		AddField("Real Name", app.RealName, true).
		AddField("Character Name", app.CharacterName, true).
		AddField("Age", strconv.Itoa(app.Age), true).
		AddField("Character Story", story, false).
		SetFooter(fmt.Sprintf("Application ID: %d | User ID: %s", app.ID, app.ApplicantID), "")
	if !app.CreatedAt.IsZero() {
		embed.SetTimestamp(app.CreatedAt)
	}
	return embed.Build()
}

func ReviewMessage(app *models.Application) discord.MessageCreate {
	msg := discord.MessageCreate{
		Embeds:     []discord.Embed{ReviewEmbed(app)},
		Components: ReviewComponents(app.ID),
	}
	if len(app.CharacterStory) > config.EmbedFieldLimit {
		msg.Files = []*discord.File{StoryFile(app)}
	}
	return msg
}

func StoryFile(app *models.Application) *discord.File {
	return discord.NewFile(
		fmt.Sprintf("character_story_%s.txt", app.ApplicantID),
		"Full character story",
		bytes.NewReader([]byte(app.CharacterStory)),
	)
}

// DecidedReviewEmbed is the review embed after a decision: recoloured, title
// prefixed with the outcome, reviewer and reason added.
func DecidedReviewEmbed(app *models.Application) discord.Embed {
	embed := ReviewEmbed(app)

	switch app.Status {
	case models.ApplicationApproved:
		embed.Title = approvedPrefix + reviewTitle
		embed.Color = config.SuccessColor
	case models.ApplicationDeclined:
		embed.Title = declinedPrefix + reviewTitle
		embed.Color = config.ErrorColor
	}

	if app.ReviewerID != "" {
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:  "Reviewed By",
			Value: Mention(app.ReviewerID),
		})
	}
	if app.ReviewReason != "" {
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:  "Reason",
			Value: Truncate(app.ReviewReason, config.StoryPreviewLength),
		})
	}
	return embed
}

func ApprovedAuditEmbed(app *models.Application, reviewerName string, roleErr error, bannerURL string) discord.Embed {
	embed := discord.NewEmbedBuilder().
		SetTitle("Application Approved").
		SetDescription(fmt.Sprintf("%s's application was approved by %s.", Mention(app.ApplicantID), reviewerName)).
		SetColor(config.SuccessColor).
		AddField("Application ID", strconv.FormatInt(app.ID, 10), true).
		AddField("Character Name", app.CharacterName, true).
		SetTimestamp(time.Now())
	if roleErr != nil {
		embed.AddField("Warning", "Failed to assign the allowlisted role: "+Truncate(roleErr.Error(), 200), false)
	}
	if bannerURL != "" {
		embed.SetImage(bannerURL)
	}
	return embed.Build()
}

func DeclinedAuditEmbed(app *models.Application, reviewerName string, bannerURL string) discord.Embed {
	embed := discord.NewEmbedBuilder().
		SetTitle("Application Declined").
		SetDescription(fmt.Sprintf("%s's application was declined by %s.", Mention(app.ApplicantID), reviewerName)).
		SetColor(config.ErrorColor).
		AddField("Application ID", strconv.FormatInt(app.ID, 10), true).
		AddField("Character Name", app.CharacterName, true).
		AddField("Reason", Truncate(app.ReviewReason, config.StoryPreviewLength), false).
		SetTimestamp(time.Now())
	if bannerURL != "" {
		embed.SetImage(bannerURL)
	}
	return embed.Build()
}

func AutoDeclinedAuditEmbed(applicantID string, age, minimumAge int) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("Application Automatically Declined").
		SetDescription(fmt.Sprintf("%s: Automatically declined for being under %d", Mention(applicantID), minimumAge)).
		SetColor(config.ErrorColor).
		AddField("Age", strconv.Itoa(age), true).
		SetTimestamp(time.Now()).
		Build()
}

func DeliveryFailedEmbed(app *models.Application, cause error) discord.Embed {
	outcome := "decision"
	switch app.Status {
	case models.ApplicationApproved:
		outcome = "approval"
	case models.ApplicationDeclined:
		outcome = "decline"
	}
	return discord.NewEmbedBuilder().
		SetTitle("Notification Failed").
		SetDescription(fmt.Sprintf("Could not DM %s about their %s.", Mention(app.ApplicantID), outcome)).
		SetColor(config.WarningColor).
		AddField("Application ID", strconv.FormatInt(app.ID, 10), true).
		AddField("Error", Truncate(cause.Error(), 200), false).
		Build()
}

// ApprovedDMEmbed mentions the role only when it was actually granted.
func ApprovedDMEmbed(bannerURL string, roleGranted bool) discord.Embed {
	description := "Congratulations! Your allowlist application has been approved. Welcome to the city!"
	if roleGranted {
		description += "\n\nYou have been granted the allowlisted role!"
	}
	embed := discord.NewEmbedBuilder().
		SetTitle("Application Approved").
		SetDescription(description).
		SetColor(config.SuccessColor)
	if bannerURL != "" {
		embed.SetImage(bannerURL)
	}
	return embed.Build()
}

func DeclinedDMEmbed(reason, bannerURL string) discord.Embed {
	embed := discord.NewEmbedBuilder().
		SetTitle("Application Declined").
		SetDescription("Unfortunately your allowlist application has been declined.").
		SetColor(config.ErrorColor).
		AddField("Reason", Truncate(reason, config.StoryPreviewLength), false)
	if bannerURL != "" {
		embed.SetImage(bannerURL)
	}
	return embed.Build()
}

// PendingPage fills one page of the pending applications listing.
func PendingPage(embed *discord.EmbedBuilder, apps []*models.Application, page, pageSize int) {
	start := page * pageSize
	end := min(start+pageSize, len(apps))

	var b strings.Builder
	for _, app := range apps[start:end] {
		fmt.Fprintf(&b, "**#%d** %s • %s • <t:%d:R>\n",
			app.ID, Mention(app.ApplicantID), app.CharacterName, app.CreatedAt.Unix())
	}

	embed.SetTitle(fmt.Sprintf("Pending Applications (%d)", len(apps))).
		SetDescription(b.String()).
		SetColor(config.PendingColor).
		SetFooter(fmt.Sprintf("Page %d/%d", page+1, PageCount(len(apps), pageSize)), "")
}

func PageCount(total, pageSize int) int {
	if total == 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

func CooldownChannelEmbed() discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("Cooldown Management").
		SetDescription("Use `/cooldown-exempt user:<member> action:add` to let a member apply again " +
			"without waiting for the cooldown.\n" +
			"Use `/cooldown-exempt user:<member> action:remove` to restore the normal cooldown.").
		SetColor(config.InfoColor).
		Build()
}

func CooldownMessage(cooldown time.Duration, retryAt time.Time) string {
	return fmt.Sprintf("You can apply only once every %s. Please try again <t:%d:R>.",
		FormatDuration(cooldown), retryAt.Unix())
}

func UnderageMessage(minimumAge int) string {
	return fmt.Sprintf("You must be %d+ to apply for the allowlist.", minimumAge)
}

// ErrorMessage is an ephemeral error reply.
func ErrorMessage(description string) discord.MessageCreate {
	return discord.MessageCreate{
		Embeds: []discord.Embed{discord.NewEmbedBuilder().
			SetDescription(description).
			SetColor(config.ErrorColor).
			Build()},
		Flags: discord.MessageFlagEphemeral,
	}
}

// EphemeralMessage is a plain ephemeral reply.
func EphemeralMessage(content string) discord.MessageCreate {
	return discord.MessageCreate{
		Content: content,
		Flags:   discord.MessageFlagEphemeral,
	}
}
