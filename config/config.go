package config

import (
	"bytes"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyJiraURL           = "jira.url"
	KeyJiraToken         = "jira.token"
	KeyFillDailyHours    = "fill.daily_hours"
	KeyFillMaxEntryHours = "fill.max_entry_hours"
	KeyFillLookbackDays  = "fill.task_lookback_days"
	KeyRecordEnabled     = "record.enabled"
	KeyRecordDB          = "record.db"
)

type Config struct {
	Jira   JiraConfig   `mapstructure:"jira" validate:"required"`
	Fill   FillConfig   `mapstructure:"fill"`
	Record RecordConfig `mapstructure:"record"`
}

type JiraConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`

	// Token may stay empty in the file and come from the --token flag or
	// the JIRA_TOKEN environment variable instead.
	Token string `mapstructure:"token"`
}

type FillConfig struct {
	DailyHours       float64 `mapstructure:"daily_hours" validate:"gte=1"`
	MaxEntryHours    float64 `mapstructure:"max_entry_hours" validate:"gte=1,ltefield=DailyHours"`
	TaskLookbackDays int     `mapstructure:"task_lookback_days" validate:"gte=1"`
}

type RecordConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DB      string `mapstructure:"db" validate:"required"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# jirafill configuration
jira:
  url: "https://jira.example.com"
  # Personal access token; can also be passed via --token or JIRA_TOKEN.
  token: ""

fill:
  daily_hours: 4
  max_entry_hours: 2
  task_lookback_days: 60

record:
  enabled: true
  db: "./jirafill.db"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyJiraURL, "https://jira.example.com")
	v.SetDefault(KeyJiraToken, "")
	v.SetDefault(KeyFillDailyHours, 4.0)
	v.SetDefault(KeyFillMaxEntryHours, 2.0)
	v.SetDefault(KeyFillLookbackDays, 60)
	v.SetDefault(KeyRecordEnabled, true)
	v.SetDefault(KeyRecordDB, "./jirafill.db")
}
