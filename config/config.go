package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Event preparation specifics
	Household      HouseholdConfig
	Authority      AuthorityConfig
	Storage        StorageConfig
	GoogleCalendar GoogleCalendarConfig
	ICS            ICSConfig
	Sync           SyncConfig
	Prep           PrepConfig
	Refresh        RefreshConfig
	Learning       LearningConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	RateLimitPerMin int
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// HouseholdConfig describes the household the engine schedules for.
type HouseholdConfig struct {
	ID                   string
	HasDog               bool
	DogCareMinutes       int
	MealPrepMinutes      int
	GeneralPrepMinutes   int
	CommuteBufferMinutes int
	Children             []string
}

// AuthorityConfig points at the remote template authority. An empty
// BaseURL runs the engine in local-only mode.
type AuthorityConfig struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

type StorageConfig struct {
	DataDir string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
}

type ICSConfig struct {
	FeedURL string
}

type SyncConfig struct {
	InitiallyOnline bool
	FlushCron       string
}

type PrepConfig struct {
	WindowMinutes         int
	MinTemplateConfidence int
}

type RefreshConfig struct {
	Cron       string
	WindowDays int
}

type LearningConfig struct {
	DecayCron string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = viper.GetInt("http_server.rate_limit_per_min")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Household
	cfg.Household.ID = viper.GetString("household.id")
	cfg.Household.HasDog = viper.GetBool("household.has_dog")
	cfg.Household.DogCareMinutes = viper.GetInt("household.dog_care_minutes")
	cfg.Household.MealPrepMinutes = viper.GetInt("household.meal_prep_minutes")
	cfg.Household.GeneralPrepMinutes = viper.GetInt("household.general_prep_minutes")
	cfg.Household.CommuteBufferMinutes = viper.GetInt("household.commute_buffer_minutes")
	cfg.Household.Children = splitList(viper.GetString("household.children"))

	// Remote authority
	cfg.Authority.BaseURL = viper.GetString("authority.base_url")
	cfg.Authority.APIKey = viper.GetString("authority.api_key")
	cfg.Authority.TimeoutSeconds = viper.GetInt("authority.timeout_seconds")
	if key := viper.GetString("authority_api_key"); key != "" {
		cfg.Authority.APIKey = key
	}

	// Local storage
	cfg.Storage.DataDir = viper.GetString("storage.data_dir")

	// Calendar sources
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}
	cfg.ICS.FeedURL = viper.GetString("ics.feed_url")

	// Sync
	cfg.Sync.InitiallyOnline = viper.GetBool("sync.initially_online")
	cfg.Sync.FlushCron = viper.GetString("sync.flush_cron")

	// Prep
	cfg.Prep.WindowMinutes = viper.GetInt("prep.window_minutes")
	cfg.Prep.MinTemplateConfidence = viper.GetInt("prep.min_template_confidence")

	// Calendar refresh
	cfg.Refresh.Cron = viper.GetString("refresh.cron")
	cfg.Refresh.WindowDays = viper.GetInt("refresh.window_days")

	// Learning
	cfg.Learning.DecayCron = viper.GetString("learning.decay_cron")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.rate_limit_per_min", 600)
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("household.id", "default")
	viper.SetDefault("household.has_dog", true)
	viper.SetDefault("household.dog_care_minutes", 15)
	viper.SetDefault("household.meal_prep_minutes", 30)
	viper.SetDefault("household.general_prep_minutes", 20)
	viper.SetDefault("household.commute_buffer_minutes", 15)

	viper.SetDefault("authority.timeout_seconds", 10)
	viper.SetDefault("storage.data_dir", "./data")

	viper.SetDefault("sync.initially_online", true)
	viper.SetDefault("sync.flush_cron", "@every 5m")

	viper.SetDefault("prep.window_minutes", 240)
	viper.SetDefault("prep.min_template_confidence", 70)

	viper.SetDefault("refresh.cron", "@every 30m")
	viper.SetDefault("refresh.window_days", 7)

	viper.SetDefault("learning.decay_cron", "@daily")
}

// splitList parses a comma-separated value. Viper does not reliably
// parse arrays coming from env vars.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
