package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dgallion1/serialform/internal/docerr"
)

type Config struct {
	// Preview server
	Port   string `yaml:"port"`
	APIKey string `yaml:"api_key"` // optional bearer token
	Watch  bool   `yaml:"watch"`   // reload the documentation set on change

	// Documentation set
	ModelPath         string `yaml:"model_path"`
	MaxHierarchyDepth int    `yaml:"max_hierarchy_depth"`

	// Localization
	Language     string `yaml:"language"`
	MessagesPath string `yaml:"messages_path"` // optional message overrides

	// Page chrome
	WindowTitle string `yaml:"window_title"`
	Header      string `yaml:"header"`
	Footer      string `yaml:"footer"`
	Bottom      string `yaml:"bottom"`
	Stylesheet  string `yaml:"stylesheet"`

	// Output
	OutputDir     string `yaml:"output_dir"`
	OutputFormat  string `yaml:"output_format"`
	OutputRetries int    `yaml:"output_retries"`
}

func Defaults() Config {
	return Config{
		Port:              "8090",
		ModelPath:         "serialform.yaml",
		MaxHierarchyDepth: 64,
		Language:          "en",
		Stylesheet:        "stylesheet.css",
		OutputDir:         "./site",
		OutputFormat:      "html",
		OutputRetries:     3,
	}
}

// Load builds the configuration from defaults, then the YAML file at path (if
// path is non-empty and the file exists), then SERIALFORM_* environment
// variables. A .env file in the working directory seeds variables that are
// not already set.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, docerr.Wrap(err, docerr.CategoryConfig, "read .env file")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, docerr.Wrap(err, docerr.CategoryConfig, "read config file").WithContext("path", path)
		default:
			if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
				return cfg, docerr.Wrap(err, docerr.CategoryConfig, "parse config file").WithContext("path", path)
			}
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.Port = envOr("SERIALFORM_PORT", cfg.Port)
	cfg.APIKey = envOr("SERIALFORM_API_KEY", cfg.APIKey)
	cfg.Watch = envBool("SERIALFORM_WATCH", cfg.Watch)
	cfg.ModelPath = envOr("SERIALFORM_MODEL_PATH", cfg.ModelPath)
	cfg.MaxHierarchyDepth = envInt("SERIALFORM_MAX_HIERARCHY_DEPTH", cfg.MaxHierarchyDepth)
	cfg.Language = envOr("SERIALFORM_LANGUAGE", cfg.Language)
	cfg.MessagesPath = envOr("SERIALFORM_MESSAGES_PATH", cfg.MessagesPath)
	cfg.WindowTitle = envOr("SERIALFORM_WINDOW_TITLE", cfg.WindowTitle)
	cfg.OutputDir = envOr("SERIALFORM_OUTPUT_DIR", cfg.OutputDir)
	cfg.OutputFormat = strings.ToLower(envOr("SERIALFORM_OUTPUT_FORMAT", cfg.OutputFormat))
	cfg.OutputRetries = envInt("SERIALFORM_OUTPUT_RETRIES", cfg.OutputRetries)

	if cfg.OutputRetries < 0 {
		cfg.OutputRetries = 0
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Port == "" {
		cfg.Port = "8090"
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.ModelPath == "" {
		return docerr.ConfigInvalid("model_path", "required")
	}
	if c.MaxHierarchyDepth <= 0 {
		return docerr.ConfigInvalid("max_hierarchy_depth", fmt.Sprintf("must be positive, got %d", c.MaxHierarchyDepth))
	}
	switch c.OutputFormat {
	case "html", "docx":
	default:
		return docerr.ConfigInvalid("output_format", fmt.Sprintf("unsupported format %q", c.OutputFormat))
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
