package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"pdftext/internal/config"
	"pdftext/internal/extract"
	"pdftext/internal/output"
	"pdftext/internal/util"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const usage = "Usage: pdftext <pdf_file>"

func main() {
	_ = godotenv.Load(".env")
	zerolog.TimeFieldFormat = time.RFC3339
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code. stderr carries the usage and error
// lines plus any log output enabled by PDFTEXT_LOG_LEVEL.
func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()
	logger := newLogger(cfg, stderr)

	if len(args) != 1 {
		fmt.Fprintln(stderr, usage)
		return 1
	}
	path := args[0]
	logger = logger.With().Str("path", path).Logger()

	ex := extract.NewPDFExtractor(cfg.MaxPages, logger)
	raw, err := extract.ExtractText(context.Background(), ex, path)
	if err != nil {
		logger.Debug().Err(err).Str("error_type", string(extract.ClassifyError(err))).Msg("extraction failed")
		fmt.Fprintf(stderr, "Error extracting text: %v\n", err)
		return 1
	}

	text := util.SanitizeText(raw)

	out, err := output.New(stdout, cfg.OutputEncoding, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("falling back to utf-8 output")
		out, _ = output.New(stdout, "utf-8", logger)
	}
	logger.Debug().Str("encoding", out.Encoding()).Int("bytes", len(text)).Msg("writing sanitized text")
	if err := out.WriteText(text); err != nil {
		logger.Error().Err(err).Msg("write failed")
		return 1
	}
	return 0
}

func newLogger(cfg config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.WarnLevel
	}
	var sink io.Writer = w
	if cfg.LogFormat != "json" {
		sink = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(sink).Level(level).With().Timestamp().Str("run_id", uuid.NewString()).Logger()
}
