// Package stages contains the experiment state machine: the stage
// sequence, the pure resume derivation, and the controller that drives
// transitions and persists every mutation through the session store.
package stages

import "github.com/philhmdresearch-afk/trust-ai-study/internal/record"

// Stage identifies one screen of the experiment flow.
type Stage int

// Stages in canonical forward order. Briefing is only ever entered
// directly after consent within a single run; Derive never returns it
// because an interrupted session with assignments already made resumes
// at the first task instead.
const (
	StageConsent Stage = iota
	StageBriefing
	StageTask1
	StageScales1
	StageSingleItems1
	StageScreenshots1
	StageClearChat
	StageTask2
	StageScales2
	StageSingleItems2
	StageScreenshots2
	StageBackground
	StageComplete
)

var stageNames = map[Stage]string{
	StageConsent:      "consent",
	StageBriefing:     "briefing",
	StageTask1:        "task-1",
	StageScales1:      "scales-1",
	StageSingleItems1: "single-items-1",
	StageScreenshots1: "screenshots-1",
	StageClearChat:    "clear-chat",
	StageTask2:        "task-2",
	StageScales2:      "scales-2",
	StageSingleItems2: "single-items-2",
	StageScreenshots2: "screenshots-2",
	StageBackground:   "background",
	StageComplete:     "complete",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// TaskNumber returns the ordinal task a stage belongs to, or 0 for
// stages outside both tasks.
func (s Stage) TaskNumber() int {
	switch s {
	case StageTask1, StageScales1, StageSingleItems1, StageScreenshots1:
		return 1
	case StageTask2, StageScales2, StageSingleItems2, StageScreenshots2:
		return 2
	default:
		return 0
	}
}

// Derive computes the current stage purely from which fields of the
// record are populated. It is the only authority on "where are we":
// no in-memory stage pointer is ever trusted across a reload. Calling
// it twice without a mutation always yields the same stage.
//
// Precedence, first unmet condition wins:
//  1. no task1 start       → task 1
//  2. no task1 combined    → task 1 scales
//  3. no task1 screenshots → task 1 upload
//  4. no task2 start       → clear-chat reminder (leads into task 2)
//  5. no task2 combined    → task 2 scales
//  6. no task2 screenshots → task 2 upload
//  7. background missing   → background
//  8. otherwise            → complete
func Derive(rec *record.SessionRecord) Stage {
	if rec.Completed {
		return StageComplete
	}
	if rec.AssignedAgent == nil {
		return StageConsent
	}

	switch {
	case !rec.Task1.Started():
		return StageTask1
	case !rec.Task1.HasGroup(record.GroupSocialFunctional):
		return StageScales1
	case len(rec.Task1.Screenshots) == 0:
		return StageScreenshots1
	case !rec.Task2.Started():
		return StageClearChat
	case !rec.Task2.HasGroup(record.GroupSocialFunctional):
		return StageScales2
	case len(rec.Task2.Screenshots) == 0:
		return StageScreenshots2
	case !rec.Background.Complete():
		return StageBackground
	default:
		return StageComplete
	}
}
