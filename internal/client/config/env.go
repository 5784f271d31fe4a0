package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv overlays Config with JOBBOARD_* environment variables. A dotenv
// file named by -e or -env, or ./.env when present, is loaded first; it
// never overrides variables already set in the process environment.
// Panics on malformed values.
func parseEnv(cfg *Config) {
	loadEnvFile(flagx.EnvFileFlags())

	if v, ok := os.LookupEnv("JOBBOARD_API_URL"); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv("JOBBOARD_UPLOAD_URL"); ok && v != "" {
		cfg.UploadBaseURL = v
	}
	if v, ok := os.LookupEnv("JOBBOARD_REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("JOBBOARD_REQUEST_TIMEOUT: %w", err))
		}
		cfg.RequestTimeout = d
	}
	if v, ok := os.LookupEnv("JOBBOARD_SESSION_DB"); ok && v != "" {
		cfg.SessionDB = v
	}
	if v, ok := os.LookupEnv("JOBBOARD_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("JOBBOARD_PAGE_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("JOBBOARD_PAGE_SIZE: %w", err))
		}
		cfg.PageSize = n
	}
	if v, ok := os.LookupEnv("JOBBOARD_STATUS_POLICY"); ok && v != "" {
		cfg.StatusPolicy = v
	}
}

func loadEnvFile(path string) {
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return
		}
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}
