package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const tokenFileName = "token"

func initConfig() {
	viper.SetEnvPrefix("FEEDCLI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("api.url", "http://localhost:8080/api/v1")
	viper.SetDefault("feed.limit", 20)
	viper.SetDefault("render.width", 80)

	if dir, err := configDir(); err == nil {
		viper.AddConfigPath(dir)
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	// A missing config file is fine, flags and env cover everything.
	_ = viper.ReadInConfig()
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "uniportal"), nil
}

func loadToken() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	b, err := os.ReadFile(filepath.Join(dir, tokenFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func saveToken(token string) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, tokenFileName)
	if token == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}
