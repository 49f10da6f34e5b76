package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/sethvargo/go-password/password"
	"github.com/spf13/afero"
)

// Settings is the persisted, non-secret service configuration. Credentials
// never live here; they come from the environment (see LoadCredentials).
type Settings struct {
	Server      ServerSettings      `json:"server"`
	Database    DatabaseSettings    `json:"database"`
	Recipes     RecipeSettings      `json:"recipes"`
	Marketplace MarketplaceSettings `json:"marketplace"`
	Log         LogSettings         `json:"log"`
	Rollover    RolloverSettings    `json:"rollover"`
}

type ServerSettings struct {
	Port int `json:"port"`
}

type DatabaseSettings struct {
	Path string `json:"path"`
}

type RecipeSettings struct {
	CacheTTLSeconds int `json:"cacheTtlSeconds"`
	PageSize        int `json:"pageSize"`
}

type MarketplaceSettings struct {
	DefaultLimit int `json:"defaultLimit"`
}

type LogSettings struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays"`
}

type RolloverSettings struct {
	Enabled bool `json:"enabled"`
	Workers int  `json:"workers"`
}

// DefaultSettings returns the configuration used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		Server:      ServerSettings{Port: 8080},
		Database:    DatabaseSettings{Path: "data/calorease.db"},
		Recipes:     RecipeSettings{CacheTTLSeconds: 3600, PageSize: 12},
		Marketplace: MarketplaceSettings{DefaultLimit: 100},
		Log:         LogSettings{Path: "logs/calorease.log", MaxSizeMB: 20, MaxBackups: 3, MaxAgeDays: 14},
		Rollover:    RolloverSettings{Enabled: true, Workers: 4},
	}
}

// Manager loads and persists the settings file. The filesystem is injected
// so tests can run against an in-memory fs.
type Manager struct {
	fs   afero.Fs
	path string
	mu   sync.RWMutex
}

func NewManager(path string) *Manager {
	return &Manager{fs: afero.NewOsFs(), path: path}
}

// NewManagerWithFs constructs a manager over an arbitrary filesystem.
func NewManagerWithFs(fs afero.Fs, path string) *Manager {
	return &Manager{fs: fs, path: path}
}

// Load reads the settings file, falling back to defaults when it is absent.
func (m *Manager) Load() (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return settings, nil
}

// Save writes the settings file, creating parent directories as needed.
func (m *Manager) Save(settings Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir := filepath.Dir(m.path)
	if dir != "" && dir != "." {
		if err := m.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := afero.WriteFile(m.fs, m.path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Credentials holds the server-side API keys read from the environment.
// A missing provider key is not fatal at startup; the owning handler reports
// it as a per-request configuration error instead.
type Credentials struct {
	SpoonacularAPIKey string
	SerpAPIKey        string
	GeminiAPIKey      string
	JWTSecret         string
}

// LoadCredentials reads credentials from the environment. When no JWT secret
// is configured a random per-process secret is generated so the server still
// starts; issued tokens then only survive until restart.
func LoadCredentials() Credentials {
	creds := Credentials{
		SpoonacularAPIKey: os.Getenv("SPOONACULAR_API_KEY"),
		SerpAPIKey:        os.Getenv("SERPAPI_KEY"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		JWTSecret:         os.Getenv("JWT_SECRET_KEY"),
	}

	if creds.JWTSecret == "" {
		secret, err := password.Generate(48, 12, 0, false, true)
		if err != nil {
			log.Fatalf("[config] failed to generate fallback JWT secret: %v", err)
		}
		creds.JWTSecret = secret
		log.Println("[config] JWT_SECRET_KEY not set, generated a per-process secret; sessions will not survive restarts")
	}

	return creds
}
