package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://a:9000", "-b", "http://b:9001", "-p", "ops", "-s", "/tmp/state.db"},
			expected: &Config{
				PrimaryAPI: "http://a:9000", SecondaryAPI: "http://b:9001",
				AdminPath: "ops", StatePath: "/tmp/state.db",
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-config", "x.json", "-a", "http://a"},
			expected: &Config{PrimaryAPI: "http://a"},
		},
		{
			name:        "flag missing its value",
			args:        []string{"-a"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
