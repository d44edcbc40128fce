package utils

import (
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	port string

	location *time.Location

	groqApiKey string

	holidayFeedURL string
	holidayCron    string

	staticWebClientDir string
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),

		groqApiKey: func() string {
			groqApiKey := os.Getenv("GROQ_API_KEY")
			if groqApiKey == "" {
				slog.Warn("GROQ_API_KEY is not set, event suggestions will use the static fallback list")
				return ""
			}
			slog.Debug("env", "GROQ_API_KEY", groqApiKey[0:3]+"...")
			return groqApiKey
		}(),

		holidayFeedURL: func() string {
			holidayFeedURL := os.Getenv("HOLIDAY_FEED_URL")
			if holidayFeedURL == "" {
				slog.Warn("HOLIDAY_FEED_URL is not set, holidays will not be fetched")
				return ""
			}
			if _, err := url.ParseRequestURI(holidayFeedURL); err != nil {
				slog.Error("invalid HOLIDAY_FEED_URL", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "HOLIDAY_FEED_URL", holidayFeedURL)
			return holidayFeedURL
		}(),
		holidayCron: func() string {
			holidayCron := os.Getenv("HOLIDAY_CRON")
			if holidayCron == "" {
				holidayCron = "0 4 * * *" // daily, 4am
			}
			slog.Debug("env", "HOLIDAY_CRON", holidayCron)
			return holidayCron
		}(),

		staticWebClientDir: func() string {
			staticWebClientDir := os.Getenv("STATIC_WEB_CLIENT_DIR")
			if staticWebClientDir == "" {
				slog.Warn("STATIC_WEB_CLIENT_DIR is not set, the SPA route is disabled")
				return ""
			}
			info, err := os.Stat(staticWebClientDir)
			if err != nil {
				slog.Error("can't get info of STATIC_WEB_CLIENT_DIR", "error", err)
				os.Exit(1)
			}
			if !info.IsDir() {
				slog.Error("STATIC_WEB_CLIENT_DIR is not a directory")
				os.Exit(1)
			}
			slog.Debug("env", "STATIC_WEB_CLIENT_DIR", staticWebClientDir)
			return filepath.Clean(staticWebClientDir)
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get GROQ_API_KEY env, blank when unset
func (c *Config) GetGroqApiKey() string {
	return c.groqApiKey
}

// Get HOLIDAY_FEED_URL env, blank when unset
func (c *Config) GetHolidayFeedURL() string {
	return c.holidayFeedURL
}

// Get HOLIDAY_CRON env, default daily at 4am
func (c *Config) GetHolidayCron() string {
	return c.holidayCron
}

// Get STATIC_WEB_CLIENT_DIR env, blank when unset
func (c *Config) GetStaticWebClientDir() string {
	return c.staticWebClientDir
}
