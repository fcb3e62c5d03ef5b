package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// DefaultCopiedTimeout is how long a "copied" indicator stays raised.
const DefaultCopiedTimeout = time.Second

type Config interface {
	BasePath() string
	LogMode() string
	LogFile() string
	CopiedTimeout() time.Duration
}

func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.plustag.db")
	viper.SetDefault("log.mode", "dev")
	viper.SetDefault("log.file", "")
	viper.SetDefault("copied", DefaultCopiedTimeout.String())
	viper.SetConfigName(".plustag") // .yaml is implicit
	viper.SetEnvPrefix("PLUSTAG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if override := os.Getenv("PLUSTAG_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	copied := viper.GetDuration("copied")
	if copied <= 0 {
		copied = DefaultCopiedTimeout
	}

	return &fileConfig{
		Path:    path,
		Mode:    viper.GetString("log.mode"),
		File:    viper.GetString("log.file"),
		Timeout: copied,
	}, nil
}

type fileConfig struct {
	Path    string        `json:"path"`
	Mode    string        `json:"logMode"`
	File    string        `json:"logFile"`
	Timeout time.Duration `json:"copied"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) LogMode() string {
	return f.Mode
}

func (f *fileConfig) LogFile() string {
	return f.File
}

func (f *fileConfig) CopiedTimeout() time.Duration {
	return f.Timeout
}
