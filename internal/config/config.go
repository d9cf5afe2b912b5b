// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type BrowserConfig struct {
	// Type selects the driver binding ("auto" resolves to the default)
	Type     string `yaml:"type"`
	Headless bool   `yaml:"headless"`
	// Humanize enables human-like scrolling/mouse movement after navigation
	Humanize bool `yaml:"humanize"`
	// NavigationTimeoutSeconds bounds page-load waits
	NavigationTimeoutSeconds int `yaml:"navigation_timeout_seconds"`
}

type Config struct {
	//Persistence
	DatabasePath   string `yaml:"database_path"`
	MaxConnections int    `yaml:"max_connections"`
	BackupDir      string `yaml:"backup_dir"`
	//Browser
	Browser BrowserConfig `yaml:"browser"`
	//Paths
	ScreenshotDir string `yaml:"screenshot_dir"`
	//Optional outcome reporting
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		cfg.DatabasePath = path
	}

	if maxConns := os.Getenv("MAX_CONNECTIONS"); maxConns != "" {
		n, err := strconv.Atoi(maxConns)
		if err != nil {
			log.Fatalf("Invalid MAX_CONNECTIONS: %v", err)
		}
		cfg.MaxConnections = n
	}

	if browserType := os.Getenv("BROWSER_TYPE"); browserType != "" {
		cfg.Browser.Type = browserType
	}

	if headless := os.Getenv("BROWSER_HEADLESS"); headless != "" {
		b, err := strconv.ParseBool(headless)
		if err != nil {
			log.Fatalf("Invalid BROWSER_HEADLESS: %v", err)
		}
		cfg.Browser.Headless = b
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "db/application_data.db"
	}

	if cfg.MaxConnections <= 0 {
		cfg.MaxConnections = 5
	}

	if cfg.BackupDir == "" {
		cfg.BackupDir = "db/backups"
	}

	if cfg.Browser.Type == "" {
		cfg.Browser.Type = "auto"
	}

	if cfg.Browser.NavigationTimeoutSeconds <= 0 {
		cfg.Browser.NavigationTimeoutSeconds = 10
	}

	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "logs/screenshots"
	}

	//Telegram reporting is optional: both fields must be set together
	if (cfg.TelegramToken == "") != (cfg.TelegramChatID == 0) {
		log.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}

	return cfg
}
