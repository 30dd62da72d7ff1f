package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/catalog"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/record"
)

func TestPadRight(t *testing.T) {
	assert.Equal(t, "abc  ", padRight("abc", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 5))
	assert.Equal(t, "", padRight("", 0))
}

func TestTaskSummary(t *testing.T) {
	var task record.TaskProgress
	assert.Equal(t, "not started", taskSummary(&task))

	start := time.Now().UTC()
	task.Type = catalog.TaskInformational
	task.TaskID = "probe"
	task.StartTime = &start
	assert.Contains(t, taskSummary(&task), "in progress")
	assert.Contains(t, taskSummary(&task), "probe")

	end := start.Add(12 * time.Minute)
	task.EndTime = &end
	task.SetGroup(record.GroupSocialFunctional, map[string]any{"func_1": 4})
	task.Screenshots = []string{"data:image/png;base64,AAAA"}

	summary := taskSummary(&task)
	assert.Contains(t, summary, "12.0 min")
	assert.Contains(t, summary, "1/3 scale groups")
	assert.Contains(t, summary, "1 screenshots")
}

func TestBackgroundSummary(t *testing.T) {
	rec := record.New(time.Now(), false)
	assert.Equal(t, "not answered", backgroundSummary(rec))

	rec.Background.Role = "Student"
	assert.Contains(t, backgroundSummary(rec), "missing")
	assert.Contains(t, backgroundSummary(rec), "age")

	rec.Background = record.Background{
		Role: "Student", Age: "25-34", Gender: "Male", Education: "Bachelor",
		AIFrequency: "Daily", AILiteracy: "3", PriorUse: "No", Familiarity: "2",
	}
	assert.Equal(t, "complete", backgroundSummary(rec))
}
