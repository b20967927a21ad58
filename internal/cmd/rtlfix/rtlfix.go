// Package rtlfix parses rtlfix flags and rewrites HTML files in place or to
// an output stream.
package rtlfix

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gothicvibe/rtlpage/internal/direction"
	entrypoint "github.com/gothicvibe/rtlpage/internal/platform/cmd"
	"github.com/gothicvibe/rtlpage/internal/services/rewrite"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/gothicvibe/rtlpage/internal/cmd/rtlfix"

// Config holds rtlfix command configuration.
type Config struct {
	Lang    string `env:"RTLPAGE_LANG" envDefault:"ar"`
	Output  string
	InPlace bool
	Files   []string
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "Document language tag (direction follows its script)")
	fs.StringVar(&cfg.Output, "o", "", "Write the rewritten document to this file")
	fs.BoolVar(&cfg.InPlace, "w", false, "Rewrite files in place")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Files = fs.Args()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.InPlace && c.Output != "":
		return errors.New("-w and -o are mutually exclusive")
	case c.InPlace && len(c.Files) == 0:
		return errors.New("-w requires at least one file")
	case c.Output != "" && len(c.Files) > 1:
		return errors.New("-o accepts a single input file")
	}
	return nil
}

// Run rewrites every configured input. With no files it reads stdin.
func Run(ctx context.Context, cfg Config, stdin io.Reader, stdout io.Writer) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	in, err := direction.NewForLanguage(cfg.Lang)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRTLFix, func(ctx context.Context) error {
		f := fixer{initializer: in, stdout: stdout}
		if len(cfg.Files) == 0 {
			return f.stream(ctx, "<stdin>", stdin, cfg.Output)
		}
		for _, path := range cfg.Files {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f.file(ctx, path, cfg); err != nil {
				return err
			}
		}
		return nil
	})
}

type fixer struct {
	initializer *direction.Initializer
	stdout      io.Writer
}

func (f fixer) file(ctx context.Context, path string, cfg Config) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()

	if !cfg.InPlace {
		return f.stream(ctx, path, src, cfg.Output)
	}

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	var out bytes.Buffer
	if err := f.rewrite(ctx, path, src, &out); err != nil {
		return err
	}
	return writeAtomic(path, out.Bytes(), info.Mode().Perm())
}

func (f fixer) stream(ctx context.Context, name string, src io.Reader, output string) error {
	if src == nil {
		return errors.New("input reader is required")
	}
	if output == "" {
		if f.stdout == nil {
			return errors.New("output writer is required")
		}
		return f.rewrite(ctx, name, src, f.stdout)
	}
	var out bytes.Buffer
	if err := f.rewrite(ctx, name, src, &out); err != nil {
		return err
	}
	return writeAtomic(output, out.Bytes(), 0o644)
}

func (f fixer) rewrite(ctx context.Context, name string, src io.Reader, dst io.Writer) error {
	_, span := otel.Tracer(tracerName).Start(ctx, "rtlfix.file")
	defer span.End()
	span.SetAttributes(attribute.String("file.path", name))

	report, err := rewrite.Document(f.initializer, src, dst)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rewrite failed")
		return fmt.Errorf("rewrite %s: %w", name, err)
	}
	span.SetAttributes(attribute.Int("rewrite.matched.total", report.Total()))
	log.Printf("rewrote %s: %d elements", name, report.Total())
	return nil
}

// writeAtomic replaces path via a temp file in the same directory.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
