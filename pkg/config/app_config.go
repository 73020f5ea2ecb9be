package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	appDirName     = "chatge"
	configFileName = "config.yaml"

	DefaultPort         = 8080
	DefaultRenderMode   = "minimal"
	DefaultPollInterval = time.Second
	DefaultMaxAttempts  = 30
	DefaultFallback     = "new_thread"
	DefaultInstructions = "You are an AI assistant helping users with questions about Irish General Elections. Reference previous messages in the thread to maintain context."
)

type AppConfig struct {
	General   GeneralConfig             `yaml:"general"`
	Assistant AssistantConfig           `yaml:"assistant"`
	Providers map[string]ProviderConfig `yaml:"providers"`
	Prompts   PromptCatalog             `yaml:"prompts"`
}

type GeneralConfig struct {
	Port           int    `yaml:"port,omitempty"`
	RenderMode     string `yaml:"render_mode,omitempty"`
	ShowErrorTurns bool   `yaml:"show_error_turns,omitempty"`
}

type AssistantConfig struct {
	ID             string        `yaml:"id,omitempty"`
	Instructions   string        `yaml:"instructions,omitempty"`
	PollInterval   time.Duration `yaml:"poll_interval,omitempty"`
	MaxAttempts    int           `yaml:"max_attempts,omitempty"`
	ThreadFallback string        `yaml:"thread_fallback,omitempty"`
}

type ProviderConfig map[string]string

// OpenAI returns the openai provider section, never nil.
func (c *AppConfig) OpenAI() ProviderConfig {
	if c.Providers == nil {
		c.Providers = make(map[string]ProviderConfig)
	}
	if c.Providers["openai"] == nil {
		c.Providers["openai"] = make(ProviderConfig)
	}
	return c.Providers["openai"]
}

// customConfigDir overrides the OS config directory (used for testing).
var customConfigDir string

// SetConfigDir sets a custom configuration directory. An empty dir restores the default.
func SetConfigDir(dir string) {
	customConfigDir = dir
}

func GetConfigDir() (string, error) {
	if customConfigDir != "" {
		return customConfigDir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appDirName), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadAppConfig reads config.yaml, overlays the environment and fills defaults.
// A missing file is not an error.
func LoadAppConfig() (*AppConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadAppConfigFile(path)
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	cfg.ApplyDefaults()
	return cfg, nil
}

// LoadAppConfigFile reads a config file without environment overlay or defaults.
func LoadAppConfigFile(path string) (*AppConfig, error) {
	cfg := &AppConfig{Providers: make(map[string]ProviderConfig)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	return cfg, nil
}

func SaveAppConfig(cfg *AppConfig) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// The file holds the API key.
	return os.WriteFile(path, data, 0600)
}

// ApplyDefaults fills every unset field with its default value.
func (c *AppConfig) ApplyDefaults() {
	if c.General.Port <= 0 {
		c.General.Port = DefaultPort
	}
	if c.General.RenderMode == "" {
		c.General.RenderMode = DefaultRenderMode
	}
	if c.Assistant.Instructions == "" {
		c.Assistant.Instructions = DefaultInstructions
	}
	if c.Assistant.PollInterval <= 0 {
		c.Assistant.PollInterval = DefaultPollInterval
	}
	if c.Assistant.MaxAttempts <= 0 {
		c.Assistant.MaxAttempts = DefaultMaxAttempts
	}
	if c.Assistant.ThreadFallback == "" {
		c.Assistant.ThreadFallback = DefaultFallback
	}
	c.Prompts.applyDefaults()
}

// Validate reports missing settings required to serve requests.
func (c *AppConfig) Validate() error {
	if c.OpenAI()["api_key"] == "" {
		return errors.New("openai api key is not configured (set OPENAI_API_KEY or run 'chatge setup')")
	}
	if c.Assistant.ID == "" {
		return errors.New("assistant id is not configured (set ASSISTANT_ID or run 'chatge setup')")
	}
	switch c.General.RenderMode {
	case "minimal", "markdown":
	default:
		return errors.Errorf("unknown render mode %q", c.General.RenderMode)
	}
	switch c.Assistant.ThreadFallback {
	case "new_thread", "fail":
	default:
		return errors.Errorf("unknown thread fallback %q", c.Assistant.ThreadFallback)
	}
	return nil
}

// RequestTimeout is the longest a single ask can take while polling.
func (c *AppConfig) RequestTimeout() time.Duration {
	return c.Assistant.PollInterval * time.Duration(c.Assistant.MaxAttempts)
}
