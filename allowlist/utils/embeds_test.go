package utils

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/ellavondegurechaff/allowlist/allowlist/config"
	"github.com/ellavondegurechaff/allowlist/allowlist/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func application(story string) *models.Application {
	return &models.Application{
		ID:             12,
		ApplicantID:    "100",
		SteamHex:       "110000100000001",
		RealName:       "Alex",
		CharacterName:  "Vin",
		Age:            21,
		CharacterStory: story,
		Status:         models.ApplicationPending,
	}
}

func field(t *testing.T, embed discord.Embed, name string) string {
	t.Helper()
	for _, f := range embed.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	t.Fatalf("field %q not found", name)
	return ""
}

func TestReviewMessage_ShortStory(t *testing.T) {
	msg := ReviewMessage(application("Grew up in Sandy Shores."))

	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, "Grew up in Sandy Shores.", field(t, msg.Embeds[0], "Character Story"))
	assert.Equal(t, "Application ID: 12 | User ID: 100", msg.Embeds[0].Footer.Text)
	assert.Empty(t, msg.Files)
	assert.Len(t, msg.Components, 1)
}

func TestReviewMessage_LongStoryIsTruncatedAndAttached(t *testing.T) {
	story := strings.Repeat("a", config.EmbedFieldLimit+1)
	msg := ReviewMessage(application(story))

	preview := field(t, msg.Embeds[0], "Character Story")
	assert.Equal(t, strings.Repeat("a", config.StoryPreviewLength)+"...", preview)

	require.Len(t, msg.Files, 1)
	assert.Equal(t, "character_story_100.txt", msg.Files[0].Name)
	body, err := io.ReadAll(msg.Files[0].Reader)
	require.NoError(t, err)
	assert.Equal(t, story, string(body))
}

func TestReviewMessage_StoryAtFieldLimitIsKept(t *testing.T) {
	story := strings.Repeat("b", config.EmbedFieldLimit)
	msg := ReviewMessage(application(story))

	assert.Equal(t, story, field(t, msg.Embeds[0], "Character Story"))
	assert.Empty(t, msg.Files)
}

func TestReviewMessage_EmptyStory(t *testing.T) {
	msg := ReviewMessage(application(""))

	assert.Equal(t, "Not provided", field(t, msg.Embeds[0], "Character Story"))
}

func TestDecidedReviewEmbed(t *testing.T) {
	approved := application("")
	approved.Status = models.ApplicationApproved
	approved.ReviewerID = "900"

	embed := DecidedReviewEmbed(approved)
	assert.Equal(t, "[APPROVED] New Allowlist Application", embed.Title)
	assert.Equal(t, config.SuccessColor, embed.Color)
	assert.Equal(t, "<@900>", field(t, embed, "Reviewed By"))

	declined := application("")
	declined.Status = models.ApplicationDeclined
	declined.ReviewerID = "900"
	declined.ReviewReason = "Story too short"

	embed = DecidedReviewEmbed(declined)
	assert.Equal(t, "[DECLINED] New Allowlist Application", embed.Title)
	assert.Equal(t, config.ErrorColor, embed.Color)
	assert.Equal(t, "Story too short", field(t, embed, "Reason"))
}

func TestApprovedAuditEmbed_RoleWarning(t *testing.T) {
	embed := ApprovedAuditEmbed(application(""), "moderator", errors.New("Missing Permissions"), "")

	assert.Contains(t, field(t, embed, "Warning"), "Missing Permissions")

	embed = ApprovedAuditEmbed(application(""), "moderator", nil, "https://cdn.example/banner.png")
	for _, f := range embed.Fields {
		assert.NotEqual(t, "Warning", f.Name)
	}
	require.NotNil(t, embed.Image)
	assert.Equal(t, "https://cdn.example/banner.png", embed.Image.URL)
}

func TestAutoDeclinedAuditEmbed(t *testing.T) {
	embed := AutoDeclinedAuditEmbed("100", 17, 18)

	assert.Contains(t, embed.Description, "Automatically declined for being under 18")
	assert.Equal(t, "17", field(t, embed, "Age"))
}

func TestApprovedDMEmbed_RoleLine(t *testing.T) {
	granted := ApprovedDMEmbed("https://cdn.example/approved.png", true)
	assert.Contains(t, granted.Description, "You have been granted the allowlisted role!")
	require.NotNil(t, granted.Image)
	assert.Equal(t, "https://cdn.example/approved.png", granted.Image.URL)

	missing := ApprovedDMEmbed("", false)
	assert.NotContains(t, missing.Description, "allowlisted role")
	assert.Contains(t, missing.Description, "has been approved")
	assert.Nil(t, missing.Image)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "ééé...", Truncate("éééé", 3))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{24 * time.Hour, "24 hours"},
		{time.Hour, "1 hour"},
		{90 * time.Minute, "90 minutes"},
		{time.Minute, "1 minute"},
		{30 * time.Second, "30s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in))
	}
}

func TestPendingPage(t *testing.T) {
	apps := make([]*models.Application, 12)
	for i := range apps {
		apps[i] = application("")
		apps[i].ID = int64(i + 1)
	}

	embed := discord.NewEmbedBuilder()
	PendingPage(embed, apps, 1, 10)
	built := embed.Build()

	assert.Equal(t, "Pending Applications (12)", built.Title)
	assert.Equal(t, "Page 2/2", built.Footer.Text)
	assert.Equal(t, 2, strings.Count(built.Description, "\n"))
	assert.Contains(t, built.Description, "**#11**")
	assert.Equal(t, 1, PageCount(0, 10))
}

func TestCooldownMessage(t *testing.T) {
	retryAt := time.Unix(1717236000, 0)

	assert.Equal(t,
		"You can apply only once every 24 hours. Please try again <t:1717236000:R>.",
		CooldownMessage(24*time.Hour, retryAt))
}
