package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LLMCredentials mirrors the YAML credentials file:
//
//	openai:
//	  api_key: ${OPENAI_API_KEY}
//	  base_url: https://example.com/v1
type LLMCredentials struct {
	OpenAI struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"openai"`
}

// LoadLLMCredentials reads the credentials file. A missing file is not an
// error and yields nil.
func LoadLLMCredentials(path string) (*LLMCredentials, error) {
	if path == "" {
		return nil, nil
	}

	resolved, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds LLMCredentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	creds.OpenAI.APIKey = strings.TrimSpace(os.ExpandEnv(creds.OpenAI.APIKey))
	creds.OpenAI.BaseURL = strings.TrimSpace(os.ExpandEnv(creds.OpenAI.BaseURL))

	return &creds, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
