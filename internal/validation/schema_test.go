package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/catalog"
)

func TestDefaultCatalogPassesSchema(t *testing.T) {
	data, err := yaml.Marshal(catalog.Default())
	require.NoError(t, err)

	errs := ValidateCatalogBytes(data)
	assert.Empty(t, errs)
}

func TestValidateCatalogBytes(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			yaml:    "agents: [unclosed",
			wantErr: "YAML parse error",
		},
		{
			name:    "missing required sections",
			yaml:    "agents:\n  - id: chatgpt\n    name: ChatGPT\n",
			wantErr: "/",
		},
		{
			name: "agent without name",
			yaml: `
agents:
  - id: chatgpt
informationalTasks:
  - id: probe
    title: Probe
    instructions: Ask.
generativeTasks:
  - id: draft
    title: Draft
    instructions: Write.
functional:
  - id: func_1
    negPole: bad
    posPole: good
social:
  - id: soc_1
    negPole: cold
    posPole: warm
sTIAS:
  - id: stias_1
    text: Statement.
singleItems:
  - id: usefulness
    text: Useful?
`,
			wantErr: "/agents/0",
		},
		{
			name: "unknown top-level key",
			yaml: `
agents:
  - id: chatgpt
    name: ChatGPT
informationalTasks:
  - id: probe
    title: Probe
    instructions: Ask.
generativeTasks:
  - id: draft
    title: Draft
    instructions: Write.
functional:
  - id: func_1
    negPole: bad
    posPole: good
social:
  - id: soc_1
    negPole: cold
    posPole: warm
sTIAS:
  - id: stias_1
    text: Statement.
singleItems:
  - id: usefulness
    text: Useful?
surprise: true
`,
			wantErr: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCatalogBytes([]byte(tt.yaml))
			require.NotEmpty(t, errs)
			found := false
			for _, e := range errs {
				if len(e) >= len(tt.wantErr) && e[:len(tt.wantErr)] == tt.wantErr {
					found = true
				}
			}
			assert.True(t, found, "expected an error at %q, got %v", tt.wantErr, errs)
		})
	}
}

func TestValidateCatalogFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ValidateCatalogFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("valid file", func(t *testing.T) {
		data, err := yaml.Marshal(catalog.Default())
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		errs, err := ValidateCatalogFile(path)
		require.NoError(t, err)
		assert.Empty(t, errs)
	})
}
