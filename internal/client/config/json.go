package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/outreach-console/internal/flagx"
	"github.com/dmitrijs2005/outreach-console/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so a partial file only overrides
// what it names.
type JsonConfig struct {
	PrimaryAPI           *string         `json:"primary_api"`
	SecondaryAPI         *string         `json:"secondary_api"`
	AdminPath            *string         `json:"admin_path"`
	StatePath            *string         `json:"state_path"`
	LogLevel             *string         `json:"log_level"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	RetryAttempts        *uint           `json:"retry_attempts"`
	LeadsRefreshInterval *timex.Duration `json:"leads_refresh_interval"`
	OTelEndpoint         *string         `json:"otel_endpoint"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without the flag nothing is loaded. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigFile(args)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.PrimaryAPI, jc.PrimaryAPI)
	setIf(&cfg.SecondaryAPI, jc.SecondaryAPI)
	setIf(&cfg.AdminPath, jc.AdminPath)
	setIf(&cfg.StatePath, jc.StatePath)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.RetryAttempts, jc.RetryAttempts)
	setIf(&cfg.OTelEndpoint, jc.OTelEndpoint)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LeadsRefreshInterval != nil {
		cfg.LeadsRefreshInterval = jc.LeadsRefreshInterval.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
