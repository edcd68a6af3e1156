package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrMissingEnv = errors.New("missing environment variables")

const (
	EnvTrelloAppKey  = "TRELLO_APP_KEY"
	EnvTrelloToken   = "TRELLO_TOKEN"
	EnvTrelloBoardID = "TRELLO_BOARD_ID"
	EnvTrelloListID  = "TRELLO_LIST_ID"
	EnvHookSecret    = "HOOK_SECRET"
	EnvPort          = "PORT"
	EnvTemplatePath  = "TEMPLATE_PATH"
	EnvMappingPath   = "MAPPING_PATH"
	EnvDedupeLabels  = "DEDUPE_LABELS"
	EnvLogLevel      = "LOG_LEVEL"
)

type Config struct {
	TrelloAppKey  string
	TrelloToken   string
	TrelloBoardID string
	TrelloListID  string
	HookSecret    string
	Port          int
	TemplatePath  string
	MappingPath   string
	DedupeLabels  bool
	LogLevel      slog.Level
}

// LoadDotEnv loads the given env files (".env" when none are given) into the
// process environment. Variables already set are not overridden. A missing
// file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// Load reads the configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		TrelloAppKey:  os.Getenv(EnvTrelloAppKey),
		TrelloToken:   os.Getenv(EnvTrelloToken),
		TrelloBoardID: os.Getenv(EnvTrelloBoardID),
		TrelloListID:  os.Getenv(EnvTrelloListID),
		HookSecret:    os.Getenv(EnvHookSecret),
		Port:          3000,
		TemplatePath:  getEnvDefault(EnvTemplatePath, "res/content.njk"),
		MappingPath:   getEnvDefault(EnvMappingPath, "res/mapping.yml"),
		LogLevel:      slog.LevelInfo,
	}

	if raw := os.Getenv(EnvPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("%s: invalid port %q", EnvPort, raw)
		}
		cfg.Port = port
	}

	if raw := os.Getenv(EnvDedupeLabels); raw != "" {
		dedupe, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvDedupeLabels, err)
		}
		cfg.DedupeLabels = dedupe
	}

	if raw := os.Getenv(EnvLogLevel); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	return cfg, nil
}

// Require fails with ErrMissingEnv naming every variable in names that is
// unset or blank.
func Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if strings.TrimSpace(os.Getenv(name)) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return nil
}

func getEnvDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
