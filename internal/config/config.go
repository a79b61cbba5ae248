package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harvest-tools/lifeforce-prices/internal/sources"
	"github.com/harvest-tools/lifeforce-prices/internal/utils"
)

const DefaultLeague = "Mercenaries"

type Config struct {
	League     string `yaml:"league"`
	Endpoint   string `yaml:"endpoint"`
	TimeoutSec int    `yaml:"timeout_sec"`
	UserAgent  string `yaml:"user_agent"`

	Display  DisplayConfig  `yaml:"display"`
	Journal  JournalConfig  `yaml:"journal"`
	Telegram TelegramConfig `yaml:"telegram"`
}

type DisplayConfig struct {
	Timezone string `yaml:"timezone"`
	Calendar string `yaml:"calendar"`
}

// JournalConfig enables the SQLite run journal when Path is set.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// TelegramConfig enables run notifications when both fields are set.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != 0
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func DefaultConfigPath() string {
	if v := os.Getenv("LFP_CONFIG"); v != "" {
		return v
	}
	return "prices.yaml"
}

func Default() Config {
	return Config{
		League:     DefaultLeague,
		Endpoint:   sources.DefaultEndpoint,
		TimeoutSec: int(sources.DefaultTimeout / time.Second),
		UserAgent:  sources.DefaultUserAgent,
		Display: DisplayConfig{
			Timezone: "Local",
			Calendar: utils.CalendarGregorian,
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := Default()
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LFP_LEAGUE"); v != "" {
		cfg.League = v
	}
	if v := os.Getenv("LFP_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("LFP_TIMEOUT_SEC"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid LFP_TIMEOUT_SEC: %q", v)
		}
		cfg.TimeoutSec = n
	}
	if v := os.Getenv("LFP_JOURNAL"); v != "" {
		cfg.Journal.Path = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("LFP_TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("LFP_TELEGRAM_CHAT"); v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid LFP_TELEGRAM_CHAT: %q", v)
		}
		cfg.Telegram.ChatID = id
	}
	if v := os.Getenv("LFP_TZ"); v != "" {
		cfg.Display.Timezone = v
	}
	if v := os.Getenv("LFP_CALENDAR"); v != "" {
		cfg.Display.Calendar = strings.ToLower(v)
	}
	return nil
}

func (c *Config) validate() error {
	c.League = strings.TrimSpace(c.League)
	if c.League == "" {
		c.League = DefaultLeague
	}
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = int(sources.DefaultTimeout / time.Second)
	}
	if c.Display.Calendar == "" {
		c.Display.Calendar = utils.CalendarGregorian
	}
	if !utils.ValidCalendar(c.Display.Calendar) {
		return fmt.Errorf("unknown calendar %q (want %s or %s)", c.Display.Calendar, utils.CalendarGregorian, utils.CalendarJalali)
	}
	if _, err := utils.LoadLocation(c.Display.Timezone); err != nil {
		return err
	}
	return nil
}
