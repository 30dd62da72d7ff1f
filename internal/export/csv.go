package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/record"
)

// SchemaVersion identifies the tabular column layout. Bump on any
// change to the column set or order; rows from the same version can be
// concatenated naively across participants.
const SchemaVersion = "1"

// Columns is the fixed tabular schema: identical count and order for
// every exported record. Scale columns are addressed by canonical item
// id, never by display position.
var Columns = buildColumns()

func buildColumns() []string {
	cols := []string{
		"Participant_ID", "Start_Time", "Completion_Time", "Completed",
		"Agent_ID", "Agent_Name", "Task_Order", "Pole_Reversal",
	}
	for n := 1; n <= 2; n++ {
		cols = append(cols,
			fmt.Sprintf("Task%d_Type", n),
			fmt.Sprintf("Task%d_ID", n),
			fmt.Sprintf("Task%d_Start", n),
			fmt.Sprintf("Task%d_End", n),
			fmt.Sprintf("Task%d_Duration_Min", n),
		)
		for i := 1; i <= 10; i++ {
			cols = append(cols, fmt.Sprintf("T%d_Func_%d", n, i))
		}
		for i := 1; i <= 10; i++ {
			cols = append(cols, fmt.Sprintf("T%d_Soc_%d", n, i))
		}
		for i := 1; i <= 3; i++ {
			cols = append(cols, fmt.Sprintf("T%d_STIAS_%d", n, i))
		}
		cols = append(cols,
			fmt.Sprintf("T%d_Usefulness", n),
			fmt.Sprintf("T%d_Satisfaction", n),
			fmt.Sprintf("T%d_Usefulness_Reason", n),
			fmt.Sprintf("T%d_Satisfaction_Reason", n),
		)
	}
	cols = append(cols,
		"Role", "Age", "Gender", "Education",
		"AI_Frequency", "AI_Literacy", "Agent_Prior_Use", "Agent_Familiarity",
		"Task1_Screenshot_Count", "Task2_Screenshot_Count",
	)
	return cols
}

// WriteCSV writes the header row and one data row for the record.
// Missing values render as empty fields, never as null markers or
// omitted columns; encoding/csv quotes and doubles embedded quotes so
// free-text fields stay parseable by standard tabular tools.
func WriteCSV(w io.Writer, rec *record.SessionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	if err := cw.Write(BuildRow(rec)); err != nil {
		return fmt.Errorf("writing CSV row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// BuildRow flattens the record into the fixed schema. The row length
// always equals len(Columns) regardless of how much of the record is
// filled in.
func BuildRow(rec *record.SessionRecord) []string {
	row := make([]string, 0, len(Columns))

	agentID, agentName := "", ""
	if rec.AssignedAgent != nil {
		agentID = rec.AssignedAgent.ID
		agentName = rec.AssignedAgent.Name
	}

	taskOrder := ""
	if len(rec.TaskOrder) == 2 {
		taskOrder = string(rec.TaskOrder[0]) + ";" + string(rec.TaskOrder[1])
	}

	pole := "Normal"
	if rec.PoleReversal {
		pole = "Reversed"
	}

	row = append(row,
		rec.ParticipantID,
		formatTime(&rec.StartTime),
		formatTime(rec.CompletionTime),
		strconv.FormatBool(rec.Completed),
		agentID,
		agentName,
		taskOrder,
		pole,
	)

	row = append(row, taskBlock(&rec.Task1)...)
	row = append(row, taskBlock(&rec.Task2)...)

	bg := rec.Background
	row = append(row,
		bg.Role, bg.Age, bg.Gender, bg.Education,
		bg.AIFrequency, bg.AILiteracy, bg.PriorUse, bg.Familiarity,
		strconv.Itoa(len(rec.Task1.Screenshots)),
		strconv.Itoa(len(rec.Task2.Screenshots)),
	)

	return row
}

// taskBlock emits the 32 per-task columns: timing, the 20 combined
// semantic-differential items, the 3 short-scale items, and the single
// items with their optional rationales.
func taskBlock(t *record.TaskProgress) []string {
	block := make([]string, 0, 32)

	duration := ""
	if minutes, ok := t.DurationMinutes(); ok {
		duration = strconv.FormatFloat(minutes, 'f', 2, 64)
	}

	block = append(block,
		string(t.Type),
		t.TaskID,
		formatTime(t.StartTime),
		formatTime(t.EndTime),
		duration,
	)

	for i := 1; i <= 10; i++ {
		block = append(block, scaleValue(t, record.GroupSocialFunctional, fmt.Sprintf("func_%d", i)))
	}
	for i := 1; i <= 10; i++ {
		block = append(block, scaleValue(t, record.GroupSocialFunctional, fmt.Sprintf("soc_%d", i)))
	}
	for i := 1; i <= 3; i++ {
		block = append(block, scaleValue(t, record.GroupSTIAS, fmt.Sprintf("stias_%d", i)))
	}

	block = append(block,
		scaleValue(t, record.GroupSingleItems, "usefulness"),
		scaleValue(t, record.GroupSingleItems, "satisfaction"),
		textValue(t, record.GroupSingleItems, "usefulness_reason"),
		textValue(t, record.GroupSingleItems, "satisfaction_reason"),
	)

	return block
}

func scaleValue(t *record.TaskProgress, g record.ScaleGroup, id string) string {
	if v, ok := t.ResponseInt(g, id); ok {
		return strconv.Itoa(v)
	}
	return ""
}

func textValue(t *record.TaskProgress, g record.ScaleGroup, id string) string {
	if s, ok := t.ResponseString(g, id); ok {
		return s
	}
	return ""
}

func formatTime(ts *time.Time) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
