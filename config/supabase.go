package config

import (
	"fmt"
	"os"

	supa "github.com/supabase-community/supabase-go"
)

// NewSupabaseClient initializes the Supabase client for the configured
// project. SUPABASE_URL and SUPABASE_SERVICE_KEY environment variables take
// precedence over the config file so deployments can inject credentials
// without touching it.
func NewSupabaseClient(cfg SupabaseConf) (*supa.Client, error) {
	url := cfg.URL
	if env := os.Getenv("SUPABASE_URL"); env != "" {
		url = env
	}
	key := cfg.Key
	if env := os.Getenv("SUPABASE_SERVICE_KEY"); env != "" {
		key = env
	}
	if url == "" || key == "" {
		return nil, fmt.Errorf("supabase url and key must be configured")
	}

	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing Supabase client: %w", err)
	}
	return client, nil
}

// SupabaseURL returns the effective project URL, env override included. The
// storage layer needs it to absolutize signed upload URLs.
func SupabaseURL(cfg SupabaseConf) string {
	if env := os.Getenv("SUPABASE_URL"); env != "" {
		return env
	}
	return cfg.URL
}
