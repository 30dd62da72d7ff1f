// Package record defines the session record: the structured account of
// one participant's progress and answers. Randomized assignments are set
// exactly once through guarded setters; everything else is written by the
// stage controller and persisted whole through the session store.
package record

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/catalog"
)

// ErrAlreadyAssigned is returned when a set-once field is assigned twice.
var ErrAlreadyAssigned = errors.New("assignment already made for this session")

// ErrInvalidTaskOrder is returned for task orders that are not a
// permutation of the two task types.
var ErrInvalidTaskOrder = errors.New("task order must cover both task types exactly once")

// ScaleGroup names a group of questionnaire responses within a task.
type ScaleGroup string

const (
	GroupSocialFunctional ScaleGroup = "socialFunctional"
	GroupSTIAS            ScaleGroup = "sTIAS"
	GroupSingleItems      ScaleGroup = "singleItems"
)

// TaskProgress tracks one ordinal task slot: which task was drawn, when
// the participant worked on it, the questionnaire responses, and the
// screenshot evidence.
type TaskProgress struct {
	Type      catalog.TaskType `json:"type,omitempty"`
	TaskID    string           `json:"taskId,omitempty"`
	StartTime *time.Time       `json:"startTime,omitempty"`
	EndTime   *time.Time       `json:"endTime,omitempty"`

	// Scales maps a group name to item-id → response. Responses are
	// numeric (1-7, canonical polarity) except the optional "_reason"
	// free-text entries in the singleItems group. A group is written
	// atomically and completely or not at all.
	Scales map[ScaleGroup]map[string]any `json:"scales"`

	// Screenshots holds 1-5 inline image payloads (data URIs) once the
	// upload stage completes. The JSON field name matches the persisted
	// record format.
	Screenshots []string `json:"screenshot,omitempty"`
}

// Started reports whether the task's interaction window has opened.
func (t *TaskProgress) Started() bool { return t.StartTime != nil }

// Finished reports whether the task's interaction window has closed.
func (t *TaskProgress) Finished() bool { return t.EndTime != nil }

// HasGroup reports whether the named scale group has been persisted.
func (t *TaskProgress) HasGroup(g ScaleGroup) bool {
	if t.Scales == nil {
		return false
	}
	_, ok := t.Scales[g]
	return ok
}

// SetGroup stores a complete response mapping for a group, replacing any
// prior value. Completeness checks belong to the stage controller.
func (t *TaskProgress) SetGroup(g ScaleGroup, responses map[string]any) {
	if t.Scales == nil {
		t.Scales = make(map[ScaleGroup]map[string]any)
	}
	t.Scales[g] = responses
}

// ResponseInt returns the numeric response for an item, tolerating the
// float64 values produced by a JSON round trip.
func (t *TaskProgress) ResponseInt(g ScaleGroup, itemID string) (int, bool) {
	if t.Scales == nil {
		return 0, false
	}
	v, ok := t.Scales[g][itemID]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// ResponseString returns a free-text response for an item.
func (t *TaskProgress) ResponseString(g ScaleGroup, itemID string) (string, bool) {
	if t.Scales == nil {
		return "", false
	}
	v, ok := t.Scales[g][itemID]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// DurationMinutes returns the task duration in minutes, or false if the
// interaction window is not fully recorded.
func (t *TaskProgress) DurationMinutes() (float64, bool) {
	if t.StartTime == nil || t.EndTime == nil {
		return 0, false
	}
	return t.EndTime.Sub(*t.StartTime).Minutes(), true
}

// Complete reports whether this task slot is fully populated: timing,
// all three scale groups, and at least one screenshot.
func (t *TaskProgress) Complete() bool {
	return t.Started() && t.Finished() &&
		t.HasGroup(GroupSocialFunctional) &&
		t.HasGroup(GroupSTIAS) &&
		t.HasGroup(GroupSingleItems) &&
		len(t.Screenshots) > 0
}

// Background holds the demographic, AI-experience, and agent-familiarity
// answers, collected in one form and assigned as a whole.
type Background struct {
	Role        string `json:"role,omitempty" mapstructure:"role"`
	Age         string `json:"age,omitempty" mapstructure:"age"`
	Gender      string `json:"gender,omitempty" mapstructure:"gender"`
	Education   string `json:"education,omitempty" mapstructure:"education"`
	AIFrequency string `json:"aiFrequency,omitempty" mapstructure:"aiFrequency"`
	AILiteracy  string `json:"aiLiteracy,omitempty" mapstructure:"aiLiteracy"`
	PriorUse    string `json:"priorUse,omitempty" mapstructure:"priorUse"`
	Familiarity string `json:"familiarity,omitempty" mapstructure:"familiarity"`
}

// Empty reports whether no background answer has been recorded.
func (b Background) Empty() bool {
	return b == Background{}
}

// Complete reports whether every background field is answered.
func (b Background) Complete() bool {
	return b.Role != "" && b.Age != "" && b.Gender != "" && b.Education != "" &&
		b.AIFrequency != "" && b.AILiteracy != "" && b.PriorUse != "" && b.Familiarity != ""
}

// MissingFields lists unanswered background field keys.
func (b Background) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		key, value string
	}{
		{"role", b.Role},
		{"age", b.Age},
		{"gender", b.Gender},
		{"education", b.Education},
		{"aiFrequency", b.AIFrequency},
		{"aiLiteracy", b.AILiteracy},
		{"priorUse", b.PriorUse},
		{"familiarity", b.Familiarity},
	} {
		if f.value == "" {
			missing = append(missing, f.key)
		}
	}
	return missing
}

// SessionRecord is the full record of one participant's session. One
// record exists per storage scope; it is created at first load and only
// ever deleted by an explicit operator reset.
type SessionRecord struct {
	ParticipantID  string             `json:"participantId"`
	StartTime      time.Time          `json:"startTime"`
	AssignedAgent  *catalog.Agent     `json:"assignedAgent"`
	TaskOrder      []catalog.TaskType `json:"taskOrder"`
	PoleReversal   bool               `json:"poleReversal"`
	Task1          TaskProgress       `json:"task1"`
	Task2          TaskProgress       `json:"task2"`
	Background     Background         `json:"background"`
	CompletionTime *time.Time         `json:"completionTime"`
	Completed      bool               `json:"completed"`
}

// New creates a fresh session record. The pole-reversal flag is decided
// here, at record creation, so it stays stable even if the briefing stage
// is re-entered.
func New(now time.Time, poleReversal bool) *SessionRecord {
	return &SessionRecord{
		ParticipantID: NewParticipantID(now),
		StartTime:     now.UTC(),
		TaskOrder:     []catalog.TaskType{},
		PoleReversal:  poleReversal,
		Task1:         TaskProgress{Scales: make(map[ScaleGroup]map[string]any)},
		Task2:         TaskProgress{Scales: make(map[ScaleGroup]map[string]any)},
	}
}

// NewParticipantID builds a participant id from a millisecond timestamp
// plus a random component, unique without central coordination.
func NewParticipantID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("P%d-%s", now.UnixMilli(), random)
}

// AssignAgent records the agent assignment. It may be made exactly once.
func (r *SessionRecord) AssignAgent(a catalog.Agent) error {
	if r.AssignedAgent != nil {
		return fmt.Errorf("agent: %w", ErrAlreadyAssigned)
	}
	r.AssignedAgent = &a
	return nil
}

// AssignTaskOrder records the task ordering. It may be made exactly once
// and must be a permutation of both task types.
func (r *SessionRecord) AssignTaskOrder(order []catalog.TaskType) error {
	if len(r.TaskOrder) != 0 {
		return fmt.Errorf("task order: %w", ErrAlreadyAssigned)
	}
	if len(order) != 2 || order[0] == order[1] || !order[0].Valid() || !order[1].Valid() {
		return ErrInvalidTaskOrder
	}
	r.TaskOrder = append([]catalog.TaskType(nil), order...)
	return nil
}

// Task returns the TaskProgress for ordinal n (1 or 2).
func (r *SessionRecord) Task(n int) *TaskProgress {
	switch n {
	case 1:
		return &r.Task1
	case 2:
		return &r.Task2
	default:
		return nil
	}
}

// ReadyForCompletion reports whether both tasks are fully populated and
// the background form is complete.
func (r *SessionRecord) ReadyForCompletion() bool {
	return r.Task1.Complete() && r.Task2.Complete() && r.Background.Complete()
}

// MarkCompleted sets the completion timestamp and flag, in that order.
// The background must already be saved: the completed flag can never be
// set on a record with an empty background.
func (r *SessionRecord) MarkCompleted(now time.Time) error {
	if r.Background.Empty() {
		return fmt.Errorf("cannot complete session %s: background not saved", r.ParticipantID)
	}
	ts := now.UTC()
	r.CompletionTime = &ts
	r.Completed = true
	return nil
}
