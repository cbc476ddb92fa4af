// Package config loads runtime configuration for the operator console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file: -env-file <path>, or ./.env when present.
//  3. OUTREACH_* environment variables (see parseEnv).
//  4. Optional JSON file selected via flags: -c or -config.
//  5. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   primary backend base URL
//	-b string   secondary backend base URL
//	-p string   admin path segment
//	-s string   state database path
//
// # JSON schema
//
// Durations accept strings like "30s" or integer nanoseconds:
//
//	{
//	  "primary_api": "http://localhost:8000/api/v1",
//	  "secondary_api": "http://localhost:8001/api/v1",
//	  "admin_path": "admin",
//	  "state_path": "console.db",
//	  "log_level": "info",
//	  "request_timeout": "15s",
//	  "retry_attempts": 2,
//	  "leads_refresh_interval": "30s"
//	}
//
// None of these values is editable while the console runs.
package config
