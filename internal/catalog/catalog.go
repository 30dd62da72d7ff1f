// Package catalog holds the static study content: agents, task
// definitions, trust-scale items, response scales, and background
// question definitions. The experiment core reads from a Catalog but
// never generates or mutates one.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TaskType identifies one of the two task categories in the study.
type TaskType string

const (
	TaskInformational TaskType = "informational"
	TaskGenerative    TaskType = "generative"
)

// TaskTypes lists all valid task types.
var TaskTypes = []TaskType{TaskInformational, TaskGenerative}

// Valid reports whether t is a known task type.
func (t TaskType) Valid() bool {
	return t == TaskInformational || t == TaskGenerative
}

// Agent is one of the AI systems a participant can be assigned to.
type Agent struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// TaskDef describes a single task a participant performs with the agent.
// Instructions may contain markdown.
type TaskDef struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	Instructions string `json:"instructions" yaml:"instructions"`
}

// ScaleItem is a semantic-differential item anchored by opposite-meaning
// pole labels. Stored values are always canonical: 1 = NegPole,
// 7 = PosPole, regardless of which side each pole is displayed on.
type ScaleItem struct {
	ID      string `json:"id" yaml:"id"`
	NegPole string `json:"negPole" yaml:"negPole"`
	PosPole string `json:"posPole" yaml:"posPole"`
}

// LikertItem is a statement rated on a labeled agreement scale.
type LikertItem struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// SingleItem is a standalone question with its own labeled 7-point scale.
type SingleItem struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// ScalePoint is one point of a labeled response scale.
type ScalePoint struct {
	Value int    `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Question is a background question definition. Type is "text" or
// "select"; Options is populated for selects.
type Question struct {
	Key      string   `json:"key" yaml:"key"`
	Question string   `json:"question" yaml:"question"`
	Type     string   `json:"type" yaml:"type"`
	Options  []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// ClearChatGuide tells a participant how to start a fresh conversation
// in a specific agent's UI before the second task.
type ClearChatGuide struct {
	Location string `json:"location" yaml:"location"`
	Button   string `json:"button" yaml:"button"`
	Details  string `json:"details" yaml:"details"`
}

// Catalog is the complete read-only study content.
type Catalog struct {
	Agents []Agent `json:"agents" yaml:"agents"`

	InformationalTasks []TaskDef `json:"informationalTasks" yaml:"informationalTasks"`
	GenerativeTasks    []TaskDef `json:"generativeTasks" yaml:"generativeTasks"`

	Functional  []ScaleItem  `json:"functional" yaml:"functional"`
	Social      []ScaleItem  `json:"social" yaml:"social"`
	STIAS       []LikertItem `json:"sTIAS" yaml:"sTIAS"`
	SingleItems []SingleItem `json:"singleItems" yaml:"singleItems"`

	SemanticDifferentialPoints []int        `json:"semanticDifferentialPoints" yaml:"semanticDifferentialPoints"`
	LikertScale                []ScalePoint `json:"likertScale" yaml:"likertScale"`
	UsefulnessScale            []ScalePoint `json:"usefulnessScale" yaml:"usefulnessScale"`
	SatisfactionScale          []ScalePoint `json:"satisfactionScale" yaml:"satisfactionScale"`

	Demographics     []Question `json:"demographics" yaml:"demographics"`
	AIExperience     []Question `json:"aiExperience" yaml:"aiExperience"`
	AgentFamiliarity []Question `json:"agentFamiliarity" yaml:"agentFamiliarity"`

	ClearChat map[string]ClearChatGuide `json:"clearChat" yaml:"clearChat"`
}

// LoadFile reads a catalog from a YAML file. Callers that need schema
// diagnostics should validate the bytes first (see internal/validation).
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return &cat, nil
}

// TasksFor returns the task definitions for the given type.
func (c *Catalog) TasksFor(t TaskType) []TaskDef {
	switch t {
	case TaskInformational:
		return c.InformationalTasks
	case TaskGenerative:
		return c.GenerativeTasks
	default:
		return nil
	}
}

// Task looks up a task definition by id across both types.
func (c *Catalog) Task(id string) (TaskDef, bool) {
	for _, t := range c.InformationalTasks {
		if t.ID == id {
			return t, true
		}
	}
	for _, t := range c.GenerativeTasks {
		if t.ID == id {
			return t, true
		}
	}
	return TaskDef{}, false
}

// Agent looks up an agent by id.
func (c *Catalog) Agent(id string) (Agent, bool) {
	for _, a := range c.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return Agent{}, false
}

// CombinedScaleItems returns the functional and social items as one
// slice, in canonical catalog order. Display order is shuffled per
// render by the randomization engine, never here.
func (c *Catalog) CombinedScaleItems() []ScaleItem {
	items := make([]ScaleItem, 0, len(c.Functional)+len(c.Social))
	items = append(items, c.Functional...)
	items = append(items, c.Social...)
	return items
}

// CombinedScaleIDs returns the item ids of the combined scale.
func (c *Catalog) CombinedScaleIDs() []string {
	items := c.CombinedScaleItems()
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// STIASIDs returns the short trust-scale item ids.
func (c *Catalog) STIASIDs() []string {
	ids := make([]string, len(c.STIAS))
	for i, it := range c.STIAS {
		ids[i] = it.ID
	}
	return ids
}

// SingleItemIDs returns the single-item measure ids.
func (c *Catalog) SingleItemIDs() []string {
	ids := make([]string, len(c.SingleItems))
	for i, it := range c.SingleItems {
		ids[i] = it.ID
	}
	return ids
}

// ScaleFor returns the labeled response scale for a single-item measure.
func (c *Catalog) ScaleFor(singleItemID string) []ScalePoint {
	switch singleItemID {
	case "usefulness":
		return c.UsefulnessScale
	case "satisfaction":
		return c.SatisfactionScale
	default:
		return c.LikertScale
	}
}

// ClearChatInstructions returns the chat-clearing guide for an agent id,
// falling back to the first agent's guide for unrecognized ids.
func (c *Catalog) ClearChatInstructions(agentID string) ClearChatGuide {
	if g, ok := c.ClearChat[agentID]; ok {
		return g
	}
	return c.ClearChat[defaultClearChatID]
}

// BackgroundQuestions returns all background question definitions in
// presentation order: demographics, AI experience, agent familiarity.
func (c *Catalog) BackgroundQuestions() []Question {
	qs := make([]Question, 0, len(c.Demographics)+len(c.AIExperience)+len(c.AgentFamiliarity))
	qs = append(qs, c.Demographics...)
	qs = append(qs, c.AIExperience...)
	qs = append(qs, c.AgentFamiliarity...)
	return qs
}

// Validate performs structural sanity checks: non-empty sections and
// unique ids within each item group.
func (c *Catalog) Validate() error {
	if len(c.Agents) == 0 {
		return fmt.Errorf("catalog has no agents")
	}
	if len(c.InformationalTasks) == 0 || len(c.GenerativeTasks) == 0 {
		return fmt.Errorf("catalog must define tasks for both task types")
	}
	if len(c.Functional) == 0 || len(c.Social) == 0 {
		return fmt.Errorf("catalog must define functional and social scale items")
	}
	if len(c.STIAS) == 0 {
		return fmt.Errorf("catalog must define short trust-scale items")
	}
	if len(c.SingleItems) == 0 {
		return fmt.Errorf("catalog must define single-item measures")
	}

	seen := map[string]bool{}
	for _, id := range c.CombinedScaleIDs() {
		if seen[id] {
			return fmt.Errorf("duplicate scale item id %q", id)
		}
		seen[id] = true
	}
	for _, id := range c.STIASIDs() {
		if seen[id] {
			return fmt.Errorf("duplicate scale item id %q", id)
		}
		seen[id] = true
	}
	for _, id := range c.SingleItemIDs() {
		if seen[id] {
			return fmt.Errorf("duplicate scale item id %q", id)
		}
		seen[id] = true
	}

	agentIDs := map[string]bool{}
	for _, a := range c.Agents {
		if a.ID == "" || a.Name == "" {
			return fmt.Errorf("agent entries require id and name")
		}
		if agentIDs[a.ID] {
			return fmt.Errorf("duplicate agent id %q", a.ID)
		}
		agentIDs[a.ID] = true
	}

	return nil
}
