// Package config loads runtime configuration for the jobboard CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables JOBBOARD_*, after loading an optional dotenv
//     file selected via -e or -env (default ./.env when it exists).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-u string   upload base URL
//	-t int      request timeout (seconds)
//	-d string   session database path
//	-l string   log level
//	-s string   status policy
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://jobs.example.com/api",
//	  "upload_base_url": "https://api.cloudinary.com/v1_1",
//	  "request_timeout": "10s",
//	  "session_db": "jobboard.db",
//	  "log_level": "info",
//	  "page_size": 100,
//	  "status_policy": "any"
//	}
package config
