package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	cat := Default()
	require.NoError(t, cat.Validate())

	assert.Len(t, cat.CombinedScaleItems(), 20)
	assert.Len(t, cat.STIAS, 3)
	assert.Len(t, cat.SingleItems, 2)
	assert.NotEmpty(t, cat.InformationalTasks)
	assert.NotEmpty(t, cat.GenerativeTasks)
	assert.Len(t, cat.Agents, 4)
}

func TestTasksFor(t *testing.T) {
	cat := Default()

	assert.Equal(t, cat.InformationalTasks, cat.TasksFor(TaskInformational))
	assert.Equal(t, cat.GenerativeTasks, cat.TasksFor(TaskGenerative))
	assert.Nil(t, cat.TasksFor(TaskType("bogus")))
}

func TestTaskLookup(t *testing.T) {
	cat := Default()

	for _, def := range cat.InformationalTasks {
		got, ok := cat.Task(def.ID)
		require.True(t, ok)
		assert.Equal(t, def, got)
	}

	_, ok := cat.Task("no-such-task")
	assert.False(t, ok)
}

func TestScaleFor(t *testing.T) {
	cat := Default()

	assert.Equal(t, cat.UsefulnessScale, cat.ScaleFor("usefulness"))
	assert.Equal(t, cat.SatisfactionScale, cat.ScaleFor("satisfaction"))
	assert.Equal(t, cat.LikertScale, cat.ScaleFor("anything-else"))
}

func TestClearChatInstructionsFallback(t *testing.T) {
	cat := Default()

	known := cat.ClearChatInstructions("claude")
	assert.NotEmpty(t, known.Button)

	fallback := cat.ClearChatInstructions("unknown-agent")
	assert.Equal(t, cat.ClearChat[defaultClearChatID], fallback)
}

func TestBackgroundQuestionsOrder(t *testing.T) {
	cat := Default()

	qs := cat.BackgroundQuestions()
	require.Len(t, qs, len(cat.Demographics)+len(cat.AIExperience)+len(cat.AgentFamiliarity))
	assert.Equal(t, cat.Demographics[0].Key, qs[0].Key)
	assert.Equal(t, cat.AgentFamiliarity[len(cat.AgentFamiliarity)-1].Key, qs[len(qs)-1].Key)
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	cat := Default()
	cat.Social[0].ID = cat.Functional[0].ID

	err := cat.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate scale item id")
}

func TestValidateRejectsEmptySections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Catalog)
	}{
		{"no agents", func(c *Catalog) { c.Agents = nil }},
		{"no informational tasks", func(c *Catalog) { c.InformationalTasks = nil }},
		{"no generative tasks", func(c *Catalog) { c.GenerativeTasks = nil }},
		{"no functional items", func(c *Catalog) { c.Functional = nil }},
		{"no short scale items", func(c *Catalog) { c.STIAS = nil }},
		{"no single items", func(c *Catalog) { c.SingleItems = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := Default()
			tt.mutate(cat)
			assert.Error(t, cat.Validate())
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("agents: [unclosed"), 0o644))
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("valid minimal catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(minimalCatalogYAML), 0o644))
		cat, err := LoadFile(path)
		require.NoError(t, err)
		assert.Len(t, cat.Agents, 1)
		assert.Equal(t, "probe", cat.InformationalTasks[0].ID)
	})
}

const minimalCatalogYAML = `
agents:
  - id: chatgpt
    name: ChatGPT
    url: https://chatgpt.com
informationalTasks:
  - id: probe
    title: Probe
    instructions: Ask a question.
generativeTasks:
  - id: draft
    title: Draft
    instructions: Write a text.
functional:
  - id: func_1
    negPole: unreliable
    posPole: reliable
social:
  - id: soc_1
    negPole: cold
    posPole: warm
sTIAS:
  - id: stias_1
    text: I can rely on the assistant.
singleItems:
  - id: usefulness
    text: How useful was the assistant?
`
