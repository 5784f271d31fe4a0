package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jobboard/internal/flagx"
	"github.com/dmitrijs2005/jobboard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "10s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	UploadBaseURL  string         `json:"upload_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	SessionDB      string         `json:"session_db"`
	LogLevel       string         `json:"log_level"`
	PageSize       int            `json:"page_size"`
	StatusPolicy   string         `json:"status_policy"`
}

// parseJson overlays Config with values loaded from a JSON file named by
// -c or -config. Keys missing from the file keep their current value.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.UploadBaseURL != "" {
		cfg.UploadBaseURL = jc.UploadBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionDB != "" {
		cfg.SessionDB = jc.SessionDB
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.StatusPolicy != "" {
		cfg.StatusPolicy = jc.StatusPolicy
	}
}
