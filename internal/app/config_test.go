package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `
name: demo
contexts: contexts.csv
rewards: rewards.csv
costs: [0.1, 0.2]
beta: 1.0
budget: 2
policy: oracle
fallback: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, []float64{0.1, 0.2}, cfg.Costs)
	assert.Equal(t, 2, cfg.Budget)
	assert.Equal(t, PolicyOracle, cfg.Policy)
	assert.True(t, cfg.Fallback)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", "contexts: a.csv\nrewards: b.csv\npolicy: oracle\n"},
		{"missing files", "name: x\npolicy: oracle\n"},
		{"unknown policy", "name: x\ncontexts: a.csv\nrewards: b.csv\npolicy: thompson\n"},
		{"missing policy", "name: x\ncontexts: a.csv\nrewards: b.csv\n"},
		{"negative budget", "name: x\ncontexts: a.csv\nrewards: b.csv\npolicy: ucb1\nbudget: -1\n"},
		{"negative cost", "name: x\ncontexts: a.csv\nrewards: b.csv\npolicy: oracle\ncosts: [-0.1]\n"},
		{"bad yaml", "name: [unclosed\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
