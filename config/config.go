package config

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	EnvPrefix       = "ENVER"
	DefaultEnvFile  = ".env"
	configFileName  = "enver"
	flagConfig      = "config"
	flagFile        = "file"
	flagIgnore      = "ignore-missing"
	flagExclude     = "exclude-override"
	flagLogLevel    = "log-level"
	flagEnvironment = "environment"
)

var varNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

type FileConfig struct {
	Path            string   `mapstructure:"path"`
	IgnoreMissing   bool     `mapstructure:"ignore_missing"`
	ExcludeOverride []string `mapstructure:"exclude_override"`
}

type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Environment string `mapstructure:"environment"`
}

type Config struct {
	File    FileConfig    `mapstructure:"file"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(flagConfig, "", "path to an enver.yaml settings file")
	fs.StringP(flagFile, "f", DefaultEnvFile, "env file to read or write")
	fs.Bool(flagIgnore, false, "treat a missing env file as empty")
	fs.StringSlice(flagExclude, nil, "variables whose current environment value wins over the file")
	fs.String(flagLogLevel, LogLevelWarn, "log level: debug, info, warn or error")
	fs.String(flagEnvironment, EnvDev, "environment name: dev, staging or prod")
}

// Load resolves settings in viper's order: flags set on the command line,
// ENVER_* variables, the settings file, then defaults. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("file.path", DefaultEnvFile)
	v.SetDefault("file.ignore_missing", false)
	v.SetDefault("file.exclude_override", []string{})
	v.SetDefault("logging.level", LogLevelWarn)
	v.SetDefault("logging.environment", EnvDev)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if path := v.GetString(flagConfig); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Debug("config file not found, using defaults and environment variables")
	} else {
		slog.Debug("loaded config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		flagConfig:              flagConfig,
		"file.path":             flagFile,
		"file.ignore_missing":   flagIgnore,
		"file.exclude_override": flagExclude,
		"logging.level":         flagLogLevel,
		"logging.environment":   flagEnvironment,
	}
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.File,
			validation.By(func(value interface{}) error {
				fc, ok := value.(FileConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a FileConfig")
				}
				return validation.ValidateStruct(&fc,
					validation.Field(&fc.Path, validation.Required),
					validation.Field(&fc.ExcludeOverride,
						validation.Each(validation.By(ValidateVarName)),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
					validation.Field(&lc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
				)
			}),
		),
	)
}

// ValidateVarName checks that value is a string usable as a variable name.
func ValidateVarName(value interface{}) error {
	name, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if name == "" {
		return validation.NewError("validation_empty_name", "variable name cannot be empty")
	}
	if !varNamePattern.MatchString(name) {
		return validation.NewError("validation_invalid_name", "must start with a letter or underscore and contain only letters, digits, '_' or '.'")
	}
	return nil
}
