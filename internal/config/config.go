package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/popclean-cli/internal/dataset"
)

// Default file names of the cleaning job.
const (
	DefaultInput  = "messy_population_data.csv"
	DefaultOutput = "cleaned_population_data.csv"
	DefaultReport = "data_distribution_comparison.txt"
)

// Global configuration structure.
type Global struct {
	InputPath  string `mapstructure:"input_path" yaml:"input_path" validate:"required"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path" validate:"required"`
	ReportPath string `mapstructure:"report_path" yaml:"report_path" validate:"required,nefield=OutputPath"`
	// Delimiter of delimited input and output; empty picks by extension.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter" validate:"omitempty,oneof=comma semicolon tab"`
	// Sheet of an .xlsx input; empty means the first sheet.
	Sheet    string   `mapstructure:"sheet" yaml:"sheet"`
	NAValues []string `mapstructure:"na_values" yaml:"na_values"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" validate:"oneof=text json"`
}

// Delim maps the configured delimiter name to its rune. Zero means choose
// by file extension.
func (c *Global) Delim() rune {
	switch c.Delimiter {
	case "comma":
		return ','
	case "semicolon":
		return ';'
	case "tab":
		return '\t'
	}
	return 0
}

// ReadOptions returns the dataset reader options for this configuration.
func (c *Global) ReadOptions() dataset.Options {
	return dataset.Options{Delimiter: c.Delim(), Sheet: c.Sheet, NAValues: c.NAValues}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml key names in errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field values against their constraints.
func (c *Global) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "nefield":
			msgs = append(msgs, fmt.Sprintf("%s must differ from output_path", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Dir returns the default configuration directory, ~/.popclean.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".popclean"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.popclean/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("POPCLEAN")
	v.AutomaticEnv()

	v.SetDefault("input_path", DefaultInput)
	v.SetDefault("output_path", DefaultOutput)
	v.SetDefault("report_path", DefaultReport)
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet", "")
	v.SetDefault("na_values", dataset.DefaultNAValues)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
