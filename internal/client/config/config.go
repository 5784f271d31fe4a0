package config

import (
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
)

// Status policies accepted by StatusPolicy.
const (
	PolicyAny     = "any"
	PolicyForward = "forward"
)

// Config holds runtime settings for the jobboard CLI.
//
// Fields:
//   - APIBaseURL: root of the job board REST API, including the /api prefix.
//   - UploadBaseURL: root of the signed-form upload endpoint.
//   - RequestTimeout: per-request timeout of the API client.
//   - SessionDB: path of the SQLite file holding the saved session.
//   - LogLevel: debug, info, warn or error.
//   - PageSize: limit used when listing the candidate's applications.
//   - StatusPolicy: "any" lets employers set any status, "forward" forbids
//     moving back and changing Offer or Rejected.
type Config struct {
	APIBaseURL     string
	UploadBaseURL  string
	RequestTimeout time.Duration
	SessionDB      string
	LogLevel       string
	PageSize       int
	StatusPolicy   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.UploadBaseURL = "https://api.cloudinary.com/v1_1"
	c.RequestTimeout = 10 * time.Second
	c.SessionDB = "jobboard.db"
	c.LogLevel = "info"
	c.PageSize = 100
	c.StatusPolicy = PolicyAny
}

// Policy returns the transition policy selected by StatusPolicy.
func (c *Config) Policy() models.TransitionPolicy {
	if c.StatusPolicy == PolicyForward {
		return models.ForwardOnly
	}
	return models.AllowAll
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
