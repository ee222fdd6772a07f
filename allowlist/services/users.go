package services

import (
	"context"
	"log/slog"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	lru "github.com/hashicorp/golang-lru"
)

type userFetcher func(ctx context.Context, id snowflake.ID) (*discord.User, error)

// UserDirectory resolves Discord users for display, keeping recent lookups in a
// bounded cache. Only platform identities are cached, never application data.
type UserDirectory struct {
	cache *lru.Cache
	fetch userFetcher
}

func NewUserDirectory(client bot.Client, size int) (*UserDirectory, error) {
	return newUserDirectory(size, func(ctx context.Context, id snowflake.ID) (*discord.User, error) {
		return client.Rest().GetUser(id, rest.WithCtx(ctx))
	})
}

func newUserDirectory(size int, fetch userFetcher) (*UserDirectory, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &UserDirectory{cache: cache, fetch: fetch}, nil
}

// Remember caches a user already at hand, e.g. the author of an interaction.
func (d *UserDirectory) Remember(user discord.User) {
	d.cache.Add(user.ID, user.Username)
}

// Name returns the username for userID, or its mention when the lookup fails.
func (d *UserDirectory) Name(ctx context.Context, userID string) string {
	id, err := snowflake.Parse(userID)
	if err != nil {
		return userID
	}
	if v, ok := d.cache.Get(id); ok {
		return v.(string)
	}

	user, err := d.fetch(ctx, id)
	if err != nil {
		slog.Warn("Failed to resolve user",
			slog.String("type", "sys"),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return "<@" + userID + ">"
	}
	d.cache.Add(id, user.Username)
	return user.Username
}
