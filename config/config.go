package config

import (
	"github.com/spf13/viper"
)

// AppConf holds the HTTP listener settings.
type AppConf struct {
	Env  string `mapstructure:"env"`
	Port int    `mapstructure:"port"`
}

// SupabaseConf holds the backing platform settings: PostgREST for records,
// Storage for binary assets.
type SupabaseConf struct {
	URL    string `mapstructure:"url"`
	Key    string `mapstructure:"key"`
	Bucket string `mapstructure:"bucket"`
}

// AuthConf holds the identity resolver settings.
type AuthConf struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// Config is the application configuration, loaded from a YAML file with
// environment variable overrides.
type Config struct {
	App      AppConf      `mapstructure:"app"`
	Supabase SupabaseConf `mapstructure:"supabase"`
	Auth     AuthConf     `mapstructure:"auth"`
	Log      struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// Load reads the configuration file at path and applies defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.App.Port == 0 {
		cfg.App.Port = 8080
	}
	if cfg.Supabase.Bucket == "" {
		cfg.Supabase.Bucket = "scene-assets"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	return &cfg, nil
}
