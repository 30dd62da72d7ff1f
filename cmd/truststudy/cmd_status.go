package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/record"
)

func newStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the persisted session and its current stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctrl, err := loadStudy()
			if err != nil {
				return err
			}

			rec := ctrl.Record()
			out := cmd.OutOrStdout()

			rows := [][2]string{
				{"Participant", rec.ParticipantID},
				{"Stage", ctrl.Stage().String()},
				{"Started", rec.StartTime.Local().Format("2006-01-02 15:04")},
				{"Pole reversal", fmt.Sprintf("%t", rec.PoleReversal)},
			}
			if rec.AssignedAgent != nil {
				rows = append(rows, [2]string{"Agent", rec.AssignedAgent.Name})
			}
			if len(rec.TaskOrder) == 2 {
				rows = append(rows, [2]string{"Task order",
					fmt.Sprintf("%s; %s", rec.TaskOrder[0], rec.TaskOrder[1])})
			}
			rows = append(rows,
				[2]string{"Task 1", taskSummary(&rec.Task1)},
				[2]string{"Task 2", taskSummary(&rec.Task2)},
				[2]string{"Background", backgroundSummary(rec)},
				[2]string{"Completed", fmt.Sprintf("%t", rec.Completed)},
			)

			width := 0
			for _, r := range rows {
				if w := runewidth.StringWidth(r[0]); w > width {
					width = w
				}
			}
			for _, r := range rows {
				fmt.Fprintf(out, "%s  %s\n", padRight(r[0], width), r[1])
			}
			return nil
		},
	}
	return cmd
}

func taskSummary(t *record.TaskProgress) string {
	if !t.Started() {
		return "not started"
	}

	parts := []string{fmt.Sprintf("%s (%s)", t.TaskID, t.Type)}
	if t.Finished() {
		if minutes, ok := t.DurationMinutes(); ok {
			parts = append(parts, fmt.Sprintf("%.1f min", minutes))
		}
	} else {
		parts = append(parts, "in progress")
	}

	groups := 0
	for _, g := range []record.ScaleGroup{record.GroupSocialFunctional, record.GroupSTIAS, record.GroupSingleItems} {
		if t.HasGroup(g) {
			groups++
		}
	}
	parts = append(parts, fmt.Sprintf("%d/3 scale groups", groups))
	parts = append(parts, fmt.Sprintf("%d screenshots", len(t.Screenshots)))
	return strings.Join(parts, ", ")
}

func backgroundSummary(rec *record.SessionRecord) string {
	switch {
	case rec.Background.Complete():
		return "complete"
	case rec.Background.Empty():
		return "not answered"
	default:
		return fmt.Sprintf("missing %s", strings.Join(rec.Background.MissingFields(), ", "))
	}
}

// padRight pads a string to the given display width.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
