// Package config layers rorg settings from defaults, YAML files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ProjectFileName is looked up in the working directory.
const ProjectFileName = ".rorg.yaml"

const envPrefix = "RORG"

const (
	keyFormat      = "format"
	keyCompleted   = "completed_keywords"
	keyStatusCycle = "status_cycle"
	keyColor       = "color"
)

// Config is the effective set of settings.
type Config struct {
	Format            string   `yaml:"format"`
	CompletedKeywords []string `yaml:"completed_keywords"`
	StatusCycle       []string `yaml:"status_cycle"`
	Color             bool     `yaml:"color"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:            "text",
		CompletedKeywords: []string{"DONE"},
		StatusCycle:       []string{"TODO", "IN-PROGRESS", "DONE"},
		Color:             true,
	}
}

// Options points Load at the files to consider. Empty fields are skipped.
type Options struct {
	// UserFile is the user-wide settings file, usually ~/.rorg/config.yaml.
	UserFile string
	// WorkDir is searched for .rorg.yaml.
	WorkDir string
	// File is an explicit config file; unlike the others it must exist.
	File string
}

// Load merges, in increasing precedence: defaults, UserFile,
// WorkDir/.rorg.yaml, File, and RORG_* environment variables.
func Load(opts Options) (Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault(keyFormat, def.Format)
	v.SetDefault(keyCompleted, def.CompletedKeywords)
	v.SetDefault(keyStatusCycle, def.StatusCycle)
	v.SetDefault(keyColor, def.Color)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(keyCompleted, envPrefix+"_COMPLETED"); err != nil {
		return Config{}, err
	}

	var candidates []string
	if opts.UserFile != "" {
		candidates = append(candidates, opts.UserFile)
	}
	if opts.WorkDir != "" {
		candidates = append(candidates, filepath.Join(opts.WorkDir, ProjectFileName))
	}
	for _, path := range candidates {
		if err := mergeFile(v, path, false); err != nil {
			return Config{}, err
		}
	}
	if opts.File != "" {
		if err := mergeFile(v, opts.File, true); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		Format:            strings.ToLower(strings.TrimSpace(v.GetString(keyFormat))),
		CompletedKeywords: v.GetStringSlice(keyCompleted),
		StatusCycle:       v.GetStringSlice(keyStatusCycle),
		Color:             v.GetBool(keyColor),
	}
	if len(cfg.CompletedKeywords) == 0 {
		cfg.CompletedKeywords = def.CompletedKeywords
	}
	if len(cfg.StatusCycle) == 0 {
		cfg.StatusCycle = def.StatusCycle
	}
	return cfg, nil
}

func mergeFile(v *viper.Viper, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config %s: %w", path, err)
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}
