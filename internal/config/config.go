package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	LogLevel       string
	LogFormat      string
	OutputEncoding string
	MaxPages       int
}

// Load reads PDFTEXT_* variables. Every key is optional; the zero
// environment gives quiet logs, UTF-8 output and no page limit.
func Load() Config {
	return Config{
		LogLevel:       strings.ToLower(getenv("PDFTEXT_LOG_LEVEL", "warn")),
		LogFormat:      strings.ToLower(getenv("PDFTEXT_LOG_FORMAT", "console")),
		OutputEncoding: getenv("PDFTEXT_OUTPUT_ENCODING", "utf-8"),
		MaxPages:       getenvInt("PDFTEXT_MAX_PAGES", 0),
	}
}

func getenv(k, fallback string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
