package allowlist

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/allowlist/allowlist/config"
	"github.com/ellavondegurechaff/allowlist/allowlist/database"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads the TOML file at path, then applies a .env file from the working
// directory (if any) and environment overrides. A missing TOML file is only an error
// when the environment does not supply the required settings either.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err = toml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("Config file not found, using environment only", slog.String("path", path))
	default:
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	if err = godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err = applyEnv(cfg); err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	opts := env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(snowflake.ID(0)): func(v string) (any, error) {
				return snowflake.Parse(v)
			},
		},
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: slog.LevelInfo},
		DB: database.Config{
			Host:         "localhost",
			Port:         5432,
			PoolSize:     10,
			MaxIdleConns: 5,
		},
		Applications: ApplicationsConfig{
			CooldownSeconds:      config.DefaultCooldownSeconds,
			PromptTimeoutSeconds: int(config.DefaultPromptTimeout / time.Second),
			MinimumAge:           config.DefaultMinimumAge,
		},
	}
}

type Config struct {
	Log          LogConfig          `toml:"log"`
	Bot          BotConfig          `toml:"bot"`
	DB           database.Config    `toml:"db"`
	Channels     ChannelsConfig     `toml:"channels"`
	Applications ApplicationsConfig `toml:"applications"`
	Banners      BannersConfig      `toml:"banners"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds" env:"DEV_GUILD_IDS" envSeparator:","`
	Token     string         `toml:"token" env:"DISCORD_TOKEN"`
	GuildID   snowflake.ID   `toml:"guild_id" env:"GUILD_ID"`
}

type LogConfig struct {
	Level slog.Level `toml:"level" env:"LOG_LEVEL"`
}

type ChannelsConfig struct {
	Application        snowflake.ID `toml:"application" env:"APPLICATION_CHANNEL_ID"`
	Review             snowflake.ID `toml:"review" env:"MOD_REVIEW_CHANNEL_ID"`
	Logs               snowflake.ID `toml:"logs" env:"LOGS_CHANNEL_ID"`
	CooldownManagement snowflake.ID `toml:"cooldown_management" env:"COOLDOWN_MANAGEMENT_CHANNEL_ID"`
}

type ApplicationsConfig struct {
	AllowlistedRole      snowflake.ID   `toml:"allowlisted_role" env:"ALLOWLISTED_ROLE_ID"`
	CooldownSeconds      int            `toml:"cooldown_seconds" env:"APPLICATION_COOLDOWN"`
	BypassIDs            []snowflake.ID `toml:"bypass_ids" env:"COOLDOWN_BYPASS_IDS" envSeparator:","`
	PromptTimeoutSeconds int            `toml:"prompt_timeout_seconds" env:"PROMPT_TIMEOUT"`
	MinimumAge           int            `toml:"minimum_age"`
}

type BannersConfig struct {
	Application string `toml:"application" env:"APPLICATION_BANNER_URL"`
	Approved    string `toml:"approved" env:"APPROVED_BANNER_URL"`
	Declined    string `toml:"declined" env:"DECLINED_BANNER_URL"`
}

func (c *Config) Validate() error {
	var errs []error
	if c.Bot.Token == "" {
		errs = append(errs, errors.New("bot token is required (DISCORD_TOKEN)"))
	}
	if c.Channels.Application == 0 {
		errs = append(errs, errors.New("application channel is required (APPLICATION_CHANNEL_ID)"))
	}
	if c.Channels.Review == 0 {
		errs = append(errs, errors.New("review channel is required (MOD_REVIEW_CHANNEL_ID)"))
	}
	if c.Channels.Logs == 0 {
		errs = append(errs, errors.New("logs channel is required (LOGS_CHANNEL_ID)"))
	}
	if c.Applications.AllowlistedRole == 0 {
		errs = append(errs, errors.New("allowlisted role is required (ALLOWLISTED_ROLE_ID)"))
	}
	if c.Applications.CooldownSeconds < 0 {
		errs = append(errs, errors.New("cooldown_seconds must not be negative"))
	}
	if c.Applications.PromptTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("prompt_timeout_seconds must be positive"))
	}
	if c.DB.URL == "" && c.DB.Database == "" {
		errs = append(errs, errors.New("database url or name is required (DATABASE_URL)"))
	}
	return errors.Join(errs...)
}

func (c ApplicationsConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

func (c ApplicationsConfig) PromptTimeout() time.Duration {
	return time.Duration(c.PromptTimeoutSeconds) * time.Second
}

func (c ApplicationsConfig) BypassIDStrings() []string {
	ids := make([]string, 0, len(c.BypassIDs))
	for _, id := range c.BypassIDs {
		ids = append(ids, id.String())
	}
	return ids
}
