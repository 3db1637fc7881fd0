package main

import (
	"fmt"
	"strings"
	"time"

	"habitquest/internal/model"
	"habitquest/internal/repository"
	"habitquest/internal/service"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config       `yaml:"database"`
	Remote   repository.RemoteConfig `yaml:"remote"`
	Server   ServerConfig            `yaml:"server"`

	TelegramAuth TelegramAuthConfig `yaml:"telegramAuth"`

	Sync          SyncConfig          `yaml:"sync"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Rewards       RewardsConfig       `yaml:"rewards"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type TelegramAuthConfig struct {
	TelegramBotToken string `yaml:"telegramBotToken"`
	DebugMode        bool   `yaml:"debugMode"`
}

type SyncConfig struct {
	// Enabled switches the remote document store on. Local persistence is
	// unconditional either way.
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

type NotificationsConfig struct {
	Enabled      bool          `yaml:"enabled"`
	PollInterval time.Duration `yaml:"pollInterval"`
	ViaTelegram  bool          `yaml:"viaTelegram"`
}

type RewardPresetConfig struct {
	XP   int `yaml:"xp"`
	Gold int `yaml:"gold"`
}

// RewardsConfig is the canonical difficulty table; quests freeze these values
// in at creation time, so changing them never rewrites existing quests.
type RewardsConfig struct {
	Easy   RewardPresetConfig `yaml:"easy"`
	Medium RewardPresetConfig `yaml:"medium"`
	Hard   RewardPresetConfig `yaml:"hard"`
}

func (r RewardsConfig) Presets() service.DifficultyPresets {
	return service.DifficultyPresets{
		model.DifficultyEasy:   {XP: r.Easy.XP, Gold: r.Easy.Gold},
		model.DifficultyMedium: {XP: r.Medium.XP, Gold: r.Medium.Gold},
		model.DifficultyHard:   {XP: r.Hard.XP, Gold: r.Hard.Gold},
	}
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("sync.debounce", time.Second)
	viper.SetDefault("notifications.pollInterval", time.Minute)
	viper.SetDefault("rewards.easy", map[string]int{"xp": 50, "gold": 10})
	viper.SetDefault("rewards.medium", map[string]int{"xp": 100, "gold": 20})
	viper.SetDefault("rewards.hard", map[string]int{"xp": 200, "gold": 50})
	viper.SetDefault("logLevel", "info")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
