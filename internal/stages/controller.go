package stages

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/catalog"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/randomize"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/record"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/store"
)

var (
	// ErrIncompleteResponses is returned when a scale submission does
	// not cover every item the catalog defines for the group. Nothing
	// is persisted in that case.
	ErrIncompleteResponses = errors.New("submission does not answer every item")

	// ErrUnknownGroup is returned for scale group names the catalog
	// does not define.
	ErrUnknownGroup = errors.New("unknown scale group")

	// ErrTaskNotStarted is returned when a transition requires a task
	// that has no recorded start time.
	ErrTaskNotStarted = errors.New("task has not been started")

	// ErrScreenshotCount is returned when a screenshot save is outside
	// the allowed 1-5 range.
	ErrScreenshotCount = errors.New("between 1 and 5 screenshots are required")

	// ErrBackgroundIncomplete is returned when the background form is
	// submitted with unanswered fields.
	ErrBackgroundIncomplete = errors.New("all background questions must be answered")

	// ErrScalesPending is returned when a screenshot save arrives while
	// the task still owes questionnaire parts.
	ErrScalesPending = errors.New("all questionnaire parts must be saved before screenshots")

	// ErrSessionIncomplete is returned when the background form is
	// submitted before both task records are fully populated.
	ErrSessionIncomplete = errors.New("both tasks must be fully recorded before the background form")
)

// MaxScreenshots is the per-task upload limit.
const MaxScreenshots = 5

// Controller drives the experiment flow: it owns the loaded record,
// consults the randomization engine for assignments not yet made, and
// writes every mutation through the store before advancing.
type Controller struct {
	store  store.Store
	cat    *catalog.Catalog
	engine *randomize.Engine
	rec    *record.SessionRecord
	logger *slog.Logger
	now    func() time.Time
}

// NewController loads (or initializes) the session record and returns a
// controller bound to it.
func NewController(st store.Store, cat *catalog.Catalog, engine *randomize.Engine) (*Controller, error) {
	rec, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return &Controller{
		store:  st,
		cat:    cat,
		engine: engine,
		rec:    rec,
		logger: slog.Default(),
		now:    time.Now,
	}, nil
}

// Record exposes the loaded session record. Callers must treat it as
// read-only; all mutations go through controller methods.
func (c *Controller) Record() *record.SessionRecord { return c.rec }

// Catalog exposes the study catalog the controller reads from.
func (c *Controller) Catalog() *catalog.Catalog { return c.cat }

// Stage derives the current stage from the record state.
func (c *Controller) Stage() Stage { return Derive(c.rec) }

// AcceptConsent records the randomized assignments made at briefing
// time: the agent and the task order, each exactly once. Re-entering
// the briefing after assignment is a no-op. The pole-reversal flag was
// already fixed at record creation.
func (c *Controller) AcceptConsent() error {
	if c.rec.AssignedAgent != nil {
		return nil
	}

	agent := c.engine.PickAgent(c.cat.Agents)
	if err := c.rec.AssignAgent(agent); err != nil {
		return err
	}
	if err := c.rec.AssignTaskOrder(c.engine.PickTaskOrder()); err != nil {
		return err
	}
	if err := c.store.Save(c.rec); err != nil {
		return err
	}

	c.logger.Info("assignments made",
		"participant", c.rec.ParticipantID,
		"agent", agent.ID,
		"taskOrder", fmt.Sprintf("%s;%s", c.rec.TaskOrder[0], c.rec.TaskOrder[1]))
	return nil
}

// StartTask selects a task for ordinal n and records type, taskId, and
// startTime in a single persisted write, freezing the selection. If the
// task is already started the recorded definition is returned unchanged,
// so re-entering the stage can never reselect.
func (c *Controller) StartTask(n int) (catalog.TaskDef, error) {
	t := c.rec.Task(n)
	if t == nil {
		return catalog.TaskDef{}, fmt.Errorf("invalid task ordinal %d", n)
	}
	if len(c.rec.TaskOrder) != 2 {
		return catalog.TaskDef{}, fmt.Errorf("task order not assigned yet")
	}

	if t.Started() {
		def, ok := c.cat.Task(t.TaskID)
		if !ok {
			return catalog.TaskDef{}, fmt.Errorf("recorded task %q not found in catalog", t.TaskID)
		}
		return def, nil
	}

	taskType := c.rec.TaskOrder[n-1]
	def := c.engine.PickTask(c.cat.TasksFor(taskType))

	start := c.now().UTC()
	t.Type = taskType
	t.TaskID = def.ID
	t.StartTime = &start
	if err := c.store.Save(c.rec); err != nil {
		return catalog.TaskDef{}, err
	}

	c.logger.Info("task started", "ordinal", n, "type", taskType, "task", def.ID)
	return def, nil
}

// FinishTask closes the task's interaction window. The end time is
// never set before the start time exists.
func (c *Controller) FinishTask(n int) error {
	t := c.rec.Task(n)
	if t == nil {
		return fmt.Errorf("invalid task ordinal %d", n)
	}
	if !t.Started() {
		return fmt.Errorf("task %d: %w", n, ErrTaskNotStarted)
	}
	if t.Finished() {
		return nil
	}
	end := c.now().UTC()
	t.EndTime = &end
	return c.store.Save(c.rec)
}

// ScaleGroupOrder returns the fixed questionnaire part ordering for a
// task ordinal. Task 1 presents the 20-item semantic-differential scale
// before the short scale; task 2 presents them in the opposite order, a
// fixed counterbalancing rule. The single items always come last.
func (c *Controller) ScaleGroupOrder(n int) []record.ScaleGroup {
	if n == 1 {
		return []record.ScaleGroup{record.GroupSocialFunctional, record.GroupSTIAS, record.GroupSingleItems}
	}
	return []record.ScaleGroup{record.GroupSTIAS, record.GroupSocialFunctional, record.GroupSingleItems}
}

// PendingGroups returns the scale groups for task n that have not been
// persisted yet, in presentation order. Renderers consult this so a
// resumed session can never skip a questionnaire part.
func (c *Controller) PendingGroups(n int) []record.ScaleGroup {
	t := c.rec.Task(n)
	if t == nil {
		return nil
	}
	var pending []record.ScaleGroup
	for _, g := range c.ScaleGroupOrder(n) {
		if !t.HasGroup(g) {
			pending = append(pending, g)
		}
	}
	return pending
}

// RequiredItemIDs returns the catalog's item-id set for a scale group.
func (c *Controller) RequiredItemIDs(g record.ScaleGroup) ([]string, error) {
	switch g {
	case record.GroupSocialFunctional:
		return c.cat.CombinedScaleIDs(), nil
	case record.GroupSTIAS:
		return c.cat.STIASIDs(), nil
	case record.GroupSingleItems:
		return c.cat.SingleItemIDs(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, g)
	}
}

// SubmitScales validates and persists one complete scale-group
// submission. The response key set must exactly equal the catalog's
// item-id set for the group; the singleItems group additionally accepts
// optional "<id>_reason" free-text entries. A rejected submission leaves
// the persisted state untouched.
func (c *Controller) SubmitScales(n int, g record.ScaleGroup, responses map[string]any) error {
	t := c.rec.Task(n)
	if t == nil {
		return fmt.Errorf("invalid task ordinal %d", n)
	}
	if !t.Started() {
		return fmt.Errorf("task %d: %w", n, ErrTaskNotStarted)
	}

	required, err := c.RequiredItemIDs(g)
	if err != nil {
		return err
	}

	clean, err := normalizeResponses(g, required, responses)
	if err != nil {
		return err
	}

	prev, had := t.Scales[g]
	t.SetGroup(g, clean)
	if err := c.store.Save(c.rec); err != nil {
		// Keep the in-memory record consistent with what is persisted.
		if had {
			t.Scales[g] = prev
		} else {
			delete(t.Scales, g)
		}
		return err
	}

	c.logger.Info("scale group saved", "ordinal", n, "group", g, "items", len(clean))
	return nil
}

// normalizeResponses checks completeness and value ranges and returns a
// fresh map with numeric values as int.
func normalizeResponses(g record.ScaleGroup, required []string, responses map[string]any) (map[string]any, error) {
	clean := make(map[string]any, len(responses))

	var missing []string
	for _, id := range required {
		v, ok := responses[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		val, ok := asInt(v)
		if !ok || val < 1 || val > 7 {
			return nil, fmt.Errorf("item %q: response must be an integer from 1 to 7", id)
		}
		clean[id] = val
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: missing %v", ErrIncompleteResponses, missing)
	}

	requiredSet := make(map[string]bool, len(required))
	for _, id := range required {
		requiredSet[id] = true
	}
	for key, v := range responses {
		if requiredSet[key] {
			continue
		}
		// Optional free-text rationale entries ride along with the
		// single-item measures.
		if g == record.GroupSingleItems && isReasonKey(key, required) {
			if s, ok := v.(string); ok {
				if s != "" {
					clean[key] = s
				}
				continue
			}
			return nil, fmt.Errorf("item %q: rationale must be text", key)
		}
		return nil, fmt.Errorf("unexpected response key %q for group %s", key, g)
	}

	return clean, nil
}

func isReasonKey(key string, required []string) bool {
	for _, id := range required {
		if key == id+"_reason" {
			return true
		}
	}
	return false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// SaveScreenshots persists the task's screenshot evidence wholesale,
// replacing any prior list. Between 1 and 5 images are accepted.
func (c *Controller) SaveScreenshots(n int, shots []string) error {
	t := c.rec.Task(n)
	if t == nil {
		return fmt.Errorf("invalid task ordinal %d", n)
	}
	if !t.Started() {
		return fmt.Errorf("task %d: %w", n, ErrTaskNotStarted)
	}
	if len(shots) == 0 || len(shots) > MaxScreenshots {
		return fmt.Errorf("%w (got %d)", ErrScreenshotCount, len(shots))
	}
	// A session resumed mid-questionnaire must collect the remaining
	// groups before the upload can close the task out.
	if pending := c.PendingGroups(n); len(pending) > 0 {
		return fmt.Errorf("task %d: %w: %v", n, ErrScalesPending, pending)
	}

	t.Screenshots = append([]string(nil), shots...)
	return c.store.Save(c.rec)
}

// SubmitBackground persists the background answers atomically, then
// marks the record completed with the completion timestamp, in that
// order, so the completed flag can never precede the saved background.
// Both task records must be fully populated first; an out-of-order
// submission is rejected without persisting anything.
func (c *Controller) SubmitBackground(bg record.Background) error {
	if !bg.Complete() {
		return fmt.Errorf("%w: missing %v", ErrBackgroundIncomplete, bg.MissingFields())
	}
	if !c.rec.Task1.Complete() || !c.rec.Task2.Complete() {
		return ErrSessionIncomplete
	}

	c.rec.Background = bg
	if err := c.store.Save(c.rec); err != nil {
		c.rec.Background = record.Background{}
		return err
	}

	if err := c.rec.MarkCompleted(c.now()); err != nil {
		return err
	}
	if err := c.store.Save(c.rec); err != nil {
		return err
	}

	c.logger.Info("session completed", "participant", c.rec.ParticipantID)
	return nil
}

// ClearChatGuide returns the agent-specific chat-clearing instructions
// for the reminder stage, falling back for unrecognized agent ids.
func (c *Controller) ClearChatGuide() catalog.ClearChatGuide {
	id := ""
	if c.rec.AssignedAgent != nil {
		id = c.rec.AssignedAgent.ID
	}
	return c.cat.ClearChatInstructions(id)
}

// CombinedDisplay returns the combined functional+social items in a
// fresh shuffle for rendering, together with the session's reversal
// flag. The shuffle is never persisted.
func (c *Controller) CombinedDisplay() ([]catalog.ScaleItem, bool) {
	return c.engine.ShuffleItems(c.cat.CombinedScaleItems()), c.rec.PoleReversal
}

// Reset irreversibly clears the persisted record and loads a fresh one.
// Operator affordance only; never part of the participant flow.
func (c *Controller) Reset() error {
	if err := c.store.Clear(); err != nil {
		return err
	}
	rec, err := c.store.Load()
	if err != nil {
		return err
	}
	c.rec = rec
	c.logger.Info("session reset", "participant", rec.ParticipantID)
	return nil
}
