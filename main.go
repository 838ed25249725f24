package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/rest-go/sqlitejson/pkg/export"
	"github.com/rest-go/sqlitejson/pkg/log"
	"github.com/rest-go/sqlitejson/pkg/report"
	"github.com/rest-go/sqlitejson/pkg/sql"
)

// Args are the command line arguments, set values override the config file
type Args struct {
	Database     string   `arg:"positional" help:"path to the SQLite database file"`
	Config       string   `arg:"-c,--config,env:SQLITEJSON_CONFIG" help:"path to a YAML config file"`
	Output       string   `arg:"-o,--output,env:SQLITEJSON_OUTPUT" help:"write the document to this file instead of stdout"`
	Pretty       bool     `arg:"--pretty" help:"indent the document with two spaces"`
	Tables       []string `arg:"--tables,separate" help:"export only this table, can be repeated"`
	SkipInternal bool     `arg:"--skip-internal" help:"skip sqlite_ internal tables"`
	BlobEncoding string   `arg:"--blob-encoding,env:SQLITEJSON_BLOB_ENCODING" help:"blob encoding: base64 or text"`
	Summary      bool     `arg:"--summary" help:"print a summary table on stderr"`
	Progress     bool     `arg:"--progress" help:"show a progress bar on stderr"`
}

func (Args) Description() string {
	return "sqlitejson exports every table of a SQLite database as one JSON document\n"
}

func parseArgs(args []string) (*Config, error) {
	a := Args{}
	parser, err := arg.NewParser(arg.Config{}, &a)
	if err != nil {
		return nil, err
	}
	parser.MustParse(args)

	cfg := &Config{}
	if a.Config != "" {
		cfg, err = NewConfig(a.Config)
		if err != nil {
			return nil, err
		}
	}
	cfg.merge(&a)
	if cfg.DB.Path == "" {
		parser.Fail("database is required")
	}
	return cfg, nil
}

// options translates the config into exporter options
func options(cfg *Config) ([]export.Option, error) {
	enc, err := sql.ParseBlobEncoding(cfg.Output.BlobEncoding)
	if err != nil {
		return nil, err
	}
	opts := []export.Option{
		export.WithTables(cfg.DB.Tables...),
		export.WithBlobEncoding(enc),
	}
	if cfg.DB.SkipInternal {
		opts = append(opts, export.WithoutInternal())
	}
	if cfg.Output.Pretty {
		opts = append(opts, export.WithIndent("  "))
	}
	return opts, nil
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("exporting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func run(ctx context.Context, cfg *Config) error {
	opts, err := options(cfg)
	if err != nil {
		return err
	}
	if cfg.Output.Progress {
		var bar *progressbar.ProgressBar
		opts = append(opts, export.WithProgress(func(p export.Progress) {
			if bar == nil {
				bar = newProgressBar(p.Total)
			}
			bar.Describe(p.Table)
			_ = bar.Set(p.Index)
			if p.Index == p.Total {
				_ = bar.Finish()
			}
		}))
	}

	e, err := export.New(cfg.DB.Path, opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	doc, err := e.Build(ctx)
	if err != nil {
		return err
	}
	data, err := e.Encode(doc)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if cfg.Output.Path == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("write stdout, %w", err)
		}
	} else if err := os.WriteFile(cfg.Output.Path, data, 0o644); err != nil {
		return fmt.Errorf("write output file, %w", err)
	}
	log.Infof("exported %d tables from %s", doc.Data.Len(), cfg.DB.Path)

	if cfg.Output.Summary {
		report.Summary(os.Stderr, cfg.DB.Path, doc.Tables())
	}
	return nil
}

// exitCode maps an error to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, sql.KindOpen):
		return 2
	case errors.Is(err, sql.KindQuery):
		return 3
	case errors.Is(err, sql.KindSchema):
		return 4
	}
	return 1
}

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log.Debugf("config: %s", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(exitCode(err))
}
