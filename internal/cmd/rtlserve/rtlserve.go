// Package rtlserve parses rtlserve flags and launches the static page server.
package rtlserve

import (
	"context"
	"flag"
	"fmt"

	"github.com/gothicvibe/rtlpage/internal/direction"
	entrypoint "github.com/gothicvibe/rtlpage/internal/platform/cmd"
	"github.com/gothicvibe/rtlpage/internal/services/static"
)

// Config holds rtlserve command configuration.
type Config struct {
	HTTPAddr string `env:"RTLPAGE_HTTP_ADDR" envDefault:"localhost:8080"`
	Root     string `env:"RTLPAGE_ROOT" envDefault:"."`
	Lang     string `env:"RTLPAGE_LANG" envDefault:"ar"`
	NoCache  bool   `env:"RTLPAGE_NO_CACHE" envDefault:"true"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.Root, "root", cfg.Root, "Directory of pages to serve")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "Document language tag (direction follows its script)")
	fs.BoolVar(&cfg.NoCache, "no-cache", cfg.NoCache, "Send no-cache headers on every response")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the static page server.
func Run(ctx context.Context, cfg Config) error {
	in, err := direction.NewForLanguage(cfg.Lang)
	if err != nil {
		return err
	}
	server, err := static.NewServer(static.Config{
		HTTPAddr:    cfg.HTTPAddr,
		Root:        cfg.Root,
		NoCache:     cfg.NoCache,
		Initializer: in,
	})
	if err != nil {
		return fmt.Errorf("init static server: %w", err)
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRTLServe, func(ctx context.Context) error {
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve static: %w", err)
		}
		return nil
	})
}
