package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/catalog"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/randomize"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/record"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/store"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	st := store.NewFileStore(t.TempDir(), randomize.NewSeeded(1))
	ctrl, err := NewController(st, catalog.Default(), randomize.NewSeeded(2))
	require.NoError(t, err)
	return ctrl
}

func fullResponses(ids []string) map[string]any {
	m := make(map[string]any, len(ids))
	for _, id := range ids {
		m[id] = 4
	}
	return m
}

// submitAllScales persists all three questionnaire groups for a task.
func submitAllScales(t *testing.T, ctrl *Controller, n int) {
	t.Helper()
	require.NoError(t, ctrl.SubmitScales(n, record.GroupSocialFunctional,
		fullResponses(ctrl.Catalog().CombinedScaleIDs())))
	require.NoError(t, ctrl.SubmitScales(n, record.GroupSTIAS,
		fullResponses(ctrl.Catalog().STIASIDs())))
	require.NoError(t, ctrl.SubmitScales(n, record.GroupSingleItems,
		fullResponses(ctrl.Catalog().SingleItemIDs())))
}

func TestAcceptConsentIsIdempotent(t *testing.T) {
	ctrl := newTestController(t)

	require.NoError(t, ctrl.AcceptConsent())
	rec := ctrl.Record()
	require.NotNil(t, rec.AssignedAgent)
	agent := rec.AssignedAgent.ID
	order := append([]catalog.TaskType(nil), rec.TaskOrder...)

	require.NoError(t, ctrl.AcceptConsent())
	assert.Equal(t, agent, rec.AssignedAgent.ID)
	assert.Equal(t, order, rec.TaskOrder)
}

func TestStartTaskFreezesSelection(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.AcceptConsent())

	def, err := ctrl.StartTask(1)
	require.NoError(t, err)

	task := ctrl.Record().Task(1)
	assert.Equal(t, def.ID, task.TaskID)
	assert.Equal(t, ctrl.Record().TaskOrder[0], task.Type)
	require.NotNil(t, task.StartTime)
	firstStart := *task.StartTime

	// Re-entering the stage returns the frozen selection unchanged.
	again, err := ctrl.StartTask(1)
	require.NoError(t, err)
	assert.Equal(t, def.ID, again.ID)
	assert.Equal(t, firstStart, *ctrl.Record().Task(1).StartTime)
}

func TestStartTaskRequiresAssignments(t *testing.T) {
	ctrl := newTestController(t)

	_, err := ctrl.StartTask(1)
	assert.Error(t, err)

	_, err = ctrl.StartTask(3)
	assert.Error(t, err)
}

func TestFinishTaskRequiresStart(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.AcceptConsent())

	err := ctrl.FinishTask(1)
	assert.ErrorIs(t, err, ErrTaskNotStarted)

	_, err = ctrl.StartTask(1)
	require.NoError(t, err)
	require.NoError(t, ctrl.FinishTask(1))

	end := *ctrl.Record().Task(1).EndTime
	require.NoError(t, ctrl.FinishTask(1))
	assert.Equal(t, end, *ctrl.Record().Task(1).EndTime, "second finish must not move the end time")
}

func TestScaleGroupOrderCounterbalancing(t *testing.T) {
	ctrl := newTestController(t)

	assert.Equal(t, []record.ScaleGroup{
		record.GroupSocialFunctional, record.GroupSTIAS, record.GroupSingleItems,
	}, ctrl.ScaleGroupOrder(1))
	assert.Equal(t, []record.ScaleGroup{
		record.GroupSTIAS, record.GroupSocialFunctional, record.GroupSingleItems,
	}, ctrl.ScaleGroupOrder(2))
}

func TestSubmitScalesRejectsIncomplete(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.AcceptConsent())
	_, err := ctrl.StartTask(1)
	require.NoError(t, err)

	ids := ctrl.Catalog().CombinedScaleIDs()
	partial := fullResponses(ids[:len(ids)-1])

	err = ctrl.SubmitScales(1, record.GroupSocialFunctional, partial)
	require.ErrorIs(t, err, ErrIncompleteResponses)
	assert.False(t, ctrl.Record().Task(1).HasGroup(record.GroupSocialFunctional),
		"rejected submission must not persist")
}

func TestSubmitScalesRejectsBadValues(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.AcceptConsent())
	_, err := ctrl.StartTask(1)
	require.NoError(t, err)

	ids := ctrl.Catalog().STIASIDs()

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"out of range high", func(m map[string]any) { m[ids[0]] = 8 }},
		{"out of range low", func(m map[string]any) { m[ids[0]] = 0 }},
		{"non-numeric", func(m map[string]any) { m[ids[0]] = "five" }},
		{"fractional", func(m map[string]any) { m[ids[0]] = 4.5 }},
		{"unknown key", func(m map[string]any) { m["func_999"] = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responses := fullResponses(ids)
			tt.mutate(responses)
			err := ctrl.SubmitScales(1, record.GroupSTIAS, responses)
			assert.Error(t, err)
		})
	}
}

func TestSubmitScalesAcceptsReasons(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.AcceptConsent())
	_, err := ctrl.StartTask(1)
	require.NoError(t, err)

	responses := fullResponses(ctrl.Catalog().SingleItemIDs())
	responses["usefulness_reason"] = "it found the answer quickly"
	responses["satisfaction_reason"] = "" // empty rationale is dropped

	require.NoError(t, ctrl.SubmitScales(1, record.GroupSingleItems, responses))

	task := ctrl.Record().Task(1)
	got, ok := task.ResponseString(record.GroupSingleItems, "usefulness_reason")
	require.True(t, ok)
	assert.Equal(t, "it found the answer quickly", got)

	_, ok = task.ResponseString(record.GroupSingleItems, "satisfaction_reason")
	assert.False(t, ok)
}

func TestSubmitScalesUnknownGroup(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.AcceptConsent())
	_, err := ctrl.StartTask(1)
	require.NoError(t, err)

	err = ctrl.SubmitScales(1, record.ScaleGroup("bogus"), map[string]any{})
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestSaveScreenshotsEnforcesLimits(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.AcceptConsent())
	_, err := ctrl.StartTask(1)
	require.NoError(t, err)
	require.NoError(t, ctrl.FinishTask(1))
	submitAllScales(t, ctrl, 1)

	shot := "data:image/png;base64,AAAA"

	err = ctrl.SaveScreenshots(1, nil)
	assert.ErrorIs(t, err, ErrScreenshotCount)

	six := []string{shot, shot, shot, shot, shot, shot}
	err = ctrl.SaveScreenshots(1, six)
	assert.ErrorIs(t, err, ErrScreenshotCount)

	require.NoError(t, ctrl.SaveScreenshots(1, []string{shot, shot}))
	assert.Len(t, ctrl.Record().Task(1).Screenshots, 2)

	// A later save replaces the set wholesale.
	require.NoError(t, ctrl.SaveScreenshots(1, []string{shot}))
	assert.Len(t, ctrl.Record().Task(1).Screenshots, 1)
}

func TestSaveScreenshotsRequiresAllScaleGroups(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.AcceptConsent())
	_, err := ctrl.StartTask(1)
	require.NoError(t, err)
	require.NoError(t, ctrl.FinishTask(1))

	shots := []string{"data:image/png;base64,AAAA"}

	// A session interrupted after the combined scale resumes at the
	// upload stage; the upload must still refuse until every group is
	// persisted.
	require.NoError(t, ctrl.SubmitScales(1, record.GroupSocialFunctional,
		fullResponses(ctrl.Catalog().CombinedScaleIDs())))
	err = ctrl.SaveScreenshots(1, shots)
	require.ErrorIs(t, err, ErrScalesPending)
	assert.Empty(t, ctrl.Record().Task(1).Screenshots)

	require.NoError(t, ctrl.SubmitScales(1, record.GroupSTIAS,
		fullResponses(ctrl.Catalog().STIASIDs())))
	err = ctrl.SaveScreenshots(1, shots)
	require.ErrorIs(t, err, ErrScalesPending)

	require.NoError(t, ctrl.SubmitScales(1, record.GroupSingleItems,
		fullResponses(ctrl.Catalog().SingleItemIDs())))
	require.NoError(t, ctrl.SaveScreenshots(1, shots))
}

func TestSubmitBackgroundCompletesSession(t *testing.T) {
	ctrl := newTestController(t)
	runFullSession(t, ctrl)

	assert.Equal(t, StageComplete, ctrl.Stage())
	rec := ctrl.Record()
	assert.True(t, rec.Completed)
	require.NotNil(t, rec.CompletionTime)
	assert.True(t, rec.ReadyForCompletion())
}

func TestSubmitBackgroundRejectsIncomplete(t *testing.T) {
	ctrl := newTestController(t)

	err := ctrl.SubmitBackground(record.Background{Role: "Student"})
	require.ErrorIs(t, err, ErrBackgroundIncomplete)
	assert.True(t, ctrl.Record().Background.Empty())
}

func TestSubmitBackgroundRequiresCompletedTasks(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.AcceptConsent())

	bg := record.Background{
		Role: "Student", Age: "25-34", Gender: "Female", Education: "Master",
		AIFrequency: "Daily", AILiteracy: "4", PriorUse: "Yes", Familiarity: "5",
	}

	// Complete answers, but neither task has even started: the record
	// must never end up completed with empty task data.
	err := ctrl.SubmitBackground(bg)
	require.ErrorIs(t, err, ErrSessionIncomplete)
	rec := ctrl.Record()
	assert.False(t, rec.Completed)
	assert.Nil(t, rec.CompletionTime)
	assert.True(t, rec.Background.Empty(), "rejected submission must not persist")

	// Still rejected while the second task owes its screenshots.
	_, err = ctrl.StartTask(1)
	require.NoError(t, err)
	require.NoError(t, ctrl.FinishTask(1))
	submitAllScales(t, ctrl, 1)
	require.NoError(t, ctrl.SaveScreenshots(1, []string{"data:image/png;base64,AAAA"}))
	_, err = ctrl.StartTask(2)
	require.NoError(t, err)
	require.NoError(t, ctrl.FinishTask(2))
	submitAllScales(t, ctrl, 2)
	err = ctrl.SubmitBackground(bg)
	require.ErrorIs(t, err, ErrSessionIncomplete)

	require.NoError(t, ctrl.SaveScreenshots(2, []string{"data:image/png;base64,AAAA"}))
	require.NoError(t, ctrl.SubmitBackground(bg))
	assert.True(t, ctrl.Record().Completed)
}

func TestResumeAcrossControllers(t *testing.T) {
	dir := t.TempDir()
	st := store.NewFileStore(dir, randomize.NewSeeded(1))
	ctrl, err := NewController(st, catalog.Default(), randomize.NewSeeded(2))
	require.NoError(t, err)

	require.NoError(t, ctrl.AcceptConsent())
	def, err := ctrl.StartTask(1)
	require.NoError(t, err)
	require.NoError(t, ctrl.SubmitScales(1, record.GroupSocialFunctional,
		fullResponses(ctrl.Catalog().CombinedScaleIDs())))

	// Simulate a restart: a new controller over the same directory.
	st2 := store.NewFileStore(dir, randomize.NewSeeded(9))
	ctrl2, err := NewController(st2, catalog.Default(), randomize.NewSeeded(9))
	require.NoError(t, err)

	assert.Equal(t, ctrl.Record().ParticipantID, ctrl2.Record().ParticipantID)
	assert.Equal(t, StageScales1, ctrl2.Stage())
	assert.Equal(t, []record.ScaleGroup{record.GroupSTIAS, record.GroupSingleItems},
		ctrl2.PendingGroups(1), "resumed session must still owe the remaining groups")

	// The frozen task selection survives the restart.
	again, err := ctrl2.StartTask(1)
	require.NoError(t, err)
	assert.Equal(t, def.ID, again.ID)
}

func TestReset(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.AcceptConsent())
	before := ctrl.Record().ParticipantID

	require.NoError(t, ctrl.Reset())

	after := ctrl.Record()
	assert.NotEqual(t, before, after.ParticipantID)
	assert.Nil(t, after.AssignedAgent)
	assert.Equal(t, StageConsent, ctrl.Stage())
}

func TestCombinedDisplayDoesNotPersistOrder(t *testing.T) {
	ctrl := newTestController(t)

	items1, rev1 := ctrl.CombinedDisplay()
	items2, rev2 := ctrl.CombinedDisplay()

	assert.Equal(t, rev1, rev2, "reversal flag is fixed per session")
	assert.Len(t, items1, 20)
	assert.Len(t, items2, 20)
	assert.Equal(t, ctrl.Record().PoleReversal, rev1)
}

// runFullSession drives a complete session through the controller.
func runFullSession(t *testing.T, ctrl *Controller) {
	t.Helper()

	require.NoError(t, ctrl.AcceptConsent())
	for n := 1; n <= 2; n++ {
		_, err := ctrl.StartTask(n)
		require.NoError(t, err)
		require.NoError(t, ctrl.FinishTask(n))
		submitAllScales(t, ctrl, n)
		require.NoError(t, ctrl.SaveScreenshots(n, []string{"data:image/png;base64,AAAA"}))
	}
	require.NoError(t, ctrl.SubmitBackground(record.Background{
		Role: "Student", Age: "25-34", Gender: "Female", Education: "Master",
		AIFrequency: "Daily", AILiteracy: "4", PriorUse: "Yes", Familiarity: "5",
	}))
}
