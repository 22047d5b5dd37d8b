// Package config resolves ragview settings with Viper.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/ragview"
	"github.com/spf13/viper"
)

// Option is a configuration key with its default value and meaning.
type Option struct {
	Key     string
	Default any
	Comment string
}

// Options returns every configuration key with its default.
func Options() []Option {
	return []Option{
		{Key: "backend.url", Default: "http://localhost:8080", Comment: "Base URL of the RAG backend"},
		{Key: "backend.timeout", Default: 2 * time.Minute, Comment: "Per-attempt timeout for backend requests"},
		{Key: "backend.retries", Default: 2, Comment: "Retries on network errors, 429 and 5xx"},

		{Key: "http.addr", Default: ":8090", Comment: "Listen address of the web front end"},

		{Key: "defaults.provider", Default: string(ragview.ProviderBedrock), Comment: "Provider used when none is given: bedrock, gemini or gitlab_duo"},
		{Key: "defaults.max_depth", Default: ragview.DefaultMaxDepth, Comment: "Crawl depth used when none is given"},
		{Key: "defaults.max_pages", Default: ragview.DefaultMaxPages, Comment: "Page limit used when none is given"},

		{Key: "render.pattern", Default: "**/*.json", Comment: "Glob selecting saved responses for batch rendering"},
		{Key: "render.out", Default: "html", Comment: "Output directory for batch rendering"},

		{Key: "tui.width", Default: 100, Comment: "Maximum width of the terminal answer view"},

		{Key: "trace.level", Default: "Error", Comment: "Trace level: Debug, Info or Error"},
	}
}

func applyDefaults(v *viper.Viper) {
	for _, o := range Options() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// A config file set with SetConfigFile must exist; the search path
// locations are optional.
func Load(v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "ragview"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ragview"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// RAGVIEW_BACKEND_URL etc.
	v.SetEnvPrefix("ragview")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}

// Check reports every invalid setting in v.
func Check(v *viper.Viper) error {
	var errs []error

	raw := strings.TrimSpace(v.GetString("backend.url"))
	if raw == "" {
		errs = append(errs, errors.New("backend.url is required"))
	} else if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("backend.url %q is not an absolute URL", raw))
	}
	if v.GetDuration("backend.timeout") <= 0 {
		errs = append(errs, errors.New("backend.timeout must be greater than 0"))
	}
	if v.GetInt("backend.retries") < 0 {
		errs = append(errs, errors.New("backend.retries must not be negative"))
	}
	if strings.TrimSpace(v.GetString("http.addr")) == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	if _, err := ragview.ParseProvider(v.GetString("defaults.provider")); err != nil {
		errs = append(errs, fmt.Errorf("defaults.provider: %w", err))
	}
	if v.GetInt("defaults.max_depth") < 0 {
		errs = append(errs, errors.New("defaults.max_depth must not be negative"))
	}
	if v.GetInt("defaults.max_pages") <= 0 {
		errs = append(errs, errors.New("defaults.max_pages must be greater than 0"))
	}
	if strings.TrimSpace(v.GetString("render.pattern")) == "" {
		errs = append(errs, errors.New("render.pattern is required"))
	}
	if v.GetInt("tui.width") <= 0 {
		errs = append(errs, errors.New("tui.width must be greater than 0"))
	}
	switch strings.ToLower(v.GetString("trace.level")) {
	case "debug", "info", "error":
	default:
		errs = append(errs, fmt.Errorf("trace.level %q must be Debug, Info or Error", v.GetString("trace.level")))
	}
	return errors.Join(errs...)
}

// Defaults returns the request defaults configured in v.
func Defaults(v *viper.Viper) ragview.Request {
	p, err := ragview.ParseProvider(v.GetString("defaults.provider"))
	if err != nil {
		p = ragview.ProviderBedrock
	}
	return ragview.Request{
		Provider: p,
		MaxDepth: ragview.Limit(v.GetInt("defaults.max_depth")),
		MaxPages: ragview.Limit(v.GetInt("defaults.max_pages")),
	}
}
