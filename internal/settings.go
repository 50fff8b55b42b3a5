package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Stored setting keys
const (
	SettingAPIKey         = "ai_api_key"
	SettingModel          = "ai_model"
	SettingPromptTemplate = "ai_prompt_template"
	SettingProvider       = "ai_provider"
)

// SettingKeys lists every key accepted by Settings.Set
var SettingKeys = []string{SettingAPIKey, SettingModel, SettingPromptTemplate, SettingProvider}

// AISettings are the persisted optimizer preferences
type AISettings struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	PromptTemplate string `mapstructure:"prompt_template"`
	Provider       string `mapstructure:"provider"`
}

// Settings reads and writes AISettings in a Store
type Settings struct {
	store Store
}

// NewSettings creates a settings accessor over the given store
func NewSettings(store Store) *Settings {
	return &Settings{store: store}
}

// Load returns the stored settings; missing keys read as empty strings
func (s *Settings) Load(ctx context.Context) (AISettings, error) {
	var out AISettings
	for _, field := range []struct {
		key string
		dst *string
	}{
		{SettingAPIKey, &out.APIKey},
		{SettingModel, &out.Model},
		{SettingPromptTemplate, &out.PromptTemplate},
		{SettingProvider, &out.Provider},
	} {
		v, err := s.store.Get(ctx, field.key)
		if errors.Is(err, ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return out, err
		}
		*field.dst = v
	}
	return out, nil
}

// Set stores a single setting. An empty value removes it.
func (s *Settings) Set(ctx context.Context, key, value string) error {
	if !isSettingKey(key) {
		return &ConfigError{Field: key, Err: fmt.Errorf("unknown setting (valid: %s)", strings.Join(SettingKeys, ", "))}
	}
	if value == "" {
		return s.store.Delete(ctx, key)
	}
	return s.store.Set(ctx, key, value)
}

func isSettingKey(key string) bool {
	for _, k := range SettingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// MaskSecret hides all but the last four characters of a secret
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
