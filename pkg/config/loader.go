package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/logging"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every configuration environment variable
const EnvPrefix = "MODTEXT_"

// UserConfigPather is a Pather that also knows the user config file.
type UserConfigPather interface {
	types.Pather
	UserConfigPath() string
}

// LoadOptions selects the layers Load reads.
type LoadOptions struct {
	// Paths locates the user and project files; nil skips both
	Paths UserConfigPather
	// File replaces the project file lookup when set
	File string
	// Overrides are applied last, keyed by dotted path (output.newline)
	Overrides map[string]interface{}
	// SkipEnv ignores MODTEXT_* variables
	SkipEnv bool
}

// Load builds the layered configuration and validates it.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")
	var sources []string

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if opts.Paths != nil {
		if path := opts.Paths.UserConfigPath(); fileExists(path) {
			if err := loadFile(k, path); err != nil {
				return nil, err
			}
			sources = append(sources, path)
		}
	}

	project := opts.File
	if project == "" && opts.Paths != nil {
		project = opts.Paths.ProjectConfigPath()
	}
	if project != "" {
		if !fileExists(project) {
			return nil, errors.Newf(errors.ErrConfigLoad, "config file %s does not exist", project).InFile(project)
		}
		if err := loadFile(k, project); err != nil {
			return nil, err
		}
		sources = append(sources, project)
	}

	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
		}
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flag overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	cfg.Sources = sources

	if err := cfg.Validate(); err != nil {
		if len(sources) > 0 {
			return nil, errors.WithPath(err, sources[len(sources)-1])
		}
		return nil, err
	}

	logger.Debug().Strs("sources", sources).Int("jobs", len(cfg.Jobs)).Msg("configuration loaded")
	return &cfg, nil
}

// Default returns the built-in configuration alone.
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipEnv: true})
	if err != nil {
		panic("config: built-in defaults are invalid: " + err.Error())
	}
	return cfg
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).InFile(path)
	}
	return nil
}

// envKey maps MODTEXT_OUTPUT__NEWLINE to output.newline.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
