// Package wizard drives a complete participant session in the terminal
// using interactive forms. It renders the same stage sequence as the
// browser flow and persists through the same controller.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/catalog"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/randomize"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/record"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/screenshot"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/stages"
)

// Flow runs the participant-facing terminal session.
type Flow struct {
	ctrl *stages.Controller
	in   io.Reader
	out  io.Writer
}

// NewFlow creates a flow bound to the given controller and streams.
func NewFlow(ctrl *stages.Controller, in io.Reader, out io.Writer) *Flow {
	return &Flow{ctrl: ctrl, in: in, out: out}
}

// Run loops until the derived stage reaches completion. Every screen
// re-derives the stage from persisted state, so a session interrupted
// mid-run resumes exactly where it left off on the next invocation.
func (f *Flow) Run() error {
	for {
		stage := f.ctrl.Stage()
		switch stage {
		case stages.StageConsent:
			if err := f.runConsent(); err != nil {
				return err
			}
			if err := f.showBriefing(); err != nil {
				return err
			}
		case stages.StageTask1, stages.StageTask2:
			if err := f.runTask(stage.TaskNumber()); err != nil {
				return err
			}
		case stages.StageScales1, stages.StageSingleItems1, stages.StageScales2, stages.StageSingleItems2:
			if err := f.runScales(stage.TaskNumber()); err != nil {
				return err
			}
		case stages.StageScreenshots1, stages.StageScreenshots2:
			// A session interrupted mid-questionnaire derives to the
			// upload stage; collect any still-pending groups first.
			if err := f.runScales(stage.TaskNumber()); err != nil {
				return err
			}
			if err := f.runScreenshots(stage.TaskNumber()); err != nil {
				return err
			}
		case stages.StageClearChat:
			if err := f.showClearChat(); err != nil {
				return err
			}
			if err := f.runTask(2); err != nil {
				return err
			}
		case stages.StageBackground:
			if err := f.runBackground(); err != nil {
				return err
			}
		case stages.StageComplete:
			return f.showCompletion()
		default:
			return fmt.Errorf("unexpected stage %s", stage)
		}
	}
}

func (f *Flow) runConsent() error {
	var agreed bool
	form := f.form(huh.NewGroup(
		huh.NewNote().
			Title("AI Assistant Study").
			Description("You will complete two short tasks with an AI assistant and answer questionnaires about your experience.\n\nYour responses are stored only on this computer until you hand them to the researcher. You may stop at any time."),
		huh.NewConfirm().
			Title("Do you agree to participate?").
			Affirmative("I agree").
			Negative("Exit").
			Value(&agreed),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("consent form: %w", err)
	}
	if !agreed {
		return fmt.Errorf("participation declined")
	}
	return f.ctrl.AcceptConsent()
}

func (f *Flow) showBriefing() error {
	rec := f.ctrl.Record()
	agent := rec.AssignedAgent
	desc := fmt.Sprintf("You will be working with %s.", agent.Name)
	if agent.URL != "" {
		desc += fmt.Sprintf("\n\nPlease open %s in your browser before starting.", agent.URL)
	}
	form := f.form(huh.NewGroup(
		huh.NewNote().Title("Your assignment").Description(desc),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("briefing: %w", err)
	}
	return nil
}

func (f *Flow) runTask(n int) error {
	def, err := f.ctrl.StartTask(n)
	if err != nil {
		return err
	}

	// The screen repeats until the participant confirms; the task's
	// interaction window is closed exactly when they do.
	for {
		var done bool
		form := f.form(huh.NewGroup(
			huh.NewNote().
				Title(fmt.Sprintf("Task %d: %s", n, def.Title)).
				Description(def.Instructions),
			huh.NewConfirm().
				Title("Work on the task with your assistant, then continue.").
				Affirmative("I have finished").
				Negative("Not yet").
				Value(&done),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("task %d: %w", n, err)
		}
		if done {
			return f.ctrl.FinishTask(n)
		}
	}
}

func (f *Flow) runScales(n int) error {
	for _, g := range f.ctrl.PendingGroups(n) {
		var err error
		switch g {
		case record.GroupSocialFunctional:
			err = f.runCombinedScale(n)
		case record.GroupSTIAS:
			err = f.runStatementScale(n)
		case record.GroupSingleItems:
			err = f.runSingleItems(n)
		default:
			err = fmt.Errorf("unknown scale group %s", g)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// runCombinedScale presents the 20 semantic-differential items in a
// fresh shuffled order. Selected option values are already canonical, so
// the stored response is orientation-independent.
func (f *Flow) runCombinedScale(n int) error {
	items, reversed := f.ctrl.CombinedDisplay()

	answers := make([]int, len(items))
	fields := make([]huh.Field, 0, len(items)+1)
	fields = append(fields, huh.NewNote().
		Title("How would you describe the assistant?").
		Description("For each pair of words, pick the point that best matches your impression."))

	for i, it := range items {
		left, right := randomize.DisplayPoles(it, reversed)
		opts := make([]huh.Option[int], 0, 7)
		for pos := 1; pos <= 7; pos++ {
			opts = append(opts, huh.NewOption(scalePointLabel(pos, left, right), randomize.CanonicalValue(pos, reversed)))
		}
		fields = append(fields, huh.NewSelect[int]().
			Title(fmt.Sprintf("%s … %s", left, right)).
			Options(opts...).
			Value(&answers[i]))
	}

	if err := f.form(huh.NewGroup(fields...)).Run(); err != nil {
		return fmt.Errorf("scale form: %w", err)
	}

	responses := make(map[string]any, len(items))
	for i, it := range items {
		responses[it.ID] = answers[i]
	}
	return f.ctrl.SubmitScales(n, record.GroupSocialFunctional, responses)
}

func (f *Flow) runStatementScale(n int) error {
	cat := f.ctrl.Catalog()

	answers := make([]int, len(cat.STIAS))
	fields := make([]huh.Field, 0, len(cat.STIAS))
	for i, it := range cat.STIAS {
		fields = append(fields, huh.NewSelect[int]().
			Title(it.Text).
			Options(pointOptions(cat.LikertScale)...).
			Value(&answers[i]))
	}

	if err := f.form(huh.NewGroup(fields...)).Run(); err != nil {
		return fmt.Errorf("trust scale form: %w", err)
	}

	responses := make(map[string]any, len(cat.STIAS))
	for i, it := range cat.STIAS {
		responses[it.ID] = answers[i]
	}
	return f.ctrl.SubmitScales(n, record.GroupSTIAS, responses)
}

func (f *Flow) runSingleItems(n int) error {
	cat := f.ctrl.Catalog()

	answers := make([]int, len(cat.SingleItems))
	reasons := make([]string, len(cat.SingleItems))
	fields := make([]huh.Field, 0, 2*len(cat.SingleItems))
	for i, it := range cat.SingleItems {
		fields = append(fields,
			huh.NewSelect[int]().
				Title(it.Text).
				Options(pointOptions(cat.ScaleFor(it.ID))...).
				Value(&answers[i]),
			huh.NewText().
				Title("Why? (optional)").
				Lines(2).
				Value(&reasons[i]))
	}

	if err := f.form(huh.NewGroup(fields...)).Run(); err != nil {
		return fmt.Errorf("single-item form: %w", err)
	}

	responses := make(map[string]any, len(cat.SingleItems))
	for i, it := range cat.SingleItems {
		responses[it.ID] = answers[i]
		if r := strings.TrimSpace(reasons[i]); r != "" {
			responses[it.ID+"_reason"] = r
		}
	}
	return f.ctrl.SubmitScales(n, record.GroupSingleItems, responses)
}

func (f *Flow) runScreenshots(n int) error {
	var raw string
	form := f.form(huh.NewGroup(
		huh.NewNote().
			Title("Save your conversation").
			Description(fmt.Sprintf("Take 1 to 5 screenshots of your full conversation for task %d.", n)),
		huh.NewText().
			Title("Screenshot file paths, one per line").
			Lines(5).
			Value(&raw).
			Validate(func(s string) error {
				paths := splitLines(s)
				if len(paths) < 1 || len(paths) > stages.MaxScreenshots {
					return fmt.Errorf("between 1 and %d paths are required", stages.MaxScreenshots)
				}
				return nil
			}),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("screenshot form: %w", err)
	}

	album := screenshot.NewAlbum(stages.MaxScreenshots)
	for _, p := range splitLines(raw) {
		if err := album.AddFile(p); err != nil {
			fmt.Fprintf(f.out, "could not add %s: %v\n", p, err)
			return nil // re-derive, stage repeats
		}
	}
	return f.ctrl.SaveScreenshots(n, album.List())
}

func (f *Flow) showClearChat() error {
	guide := f.ctrl.ClearChatGuide()
	agent := f.ctrl.Record().AssignedAgent
	desc := fmt.Sprintf("Please start a completely new conversation in %s so the second task is not influenced by the first.\n\nWhere: %s\nClick: %s\n%s",
		agent.Name, guide.Location, guide.Button, guide.Details)
	form := f.form(huh.NewGroup(
		huh.NewNote().Title("Before the second task").Description(desc),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("clear-chat screen: %w", err)
	}
	return nil
}

func (f *Flow) runBackground() error {
	cat := f.ctrl.Catalog()
	agentName := ""
	if a := f.ctrl.Record().AssignedAgent; a != nil {
		agentName = a.Name
	}

	qs := cat.BackgroundQuestions()
	answers := make([]string, len(qs))
	fields := make([]huh.Field, 0, len(qs))
	for i, q := range qs {
		title := strings.ReplaceAll(q.Question, "[AGENT_NAME]", agentName)
		if q.Type == "select" {
			opts := make([]huh.Option[string], 0, len(q.Options))
			for _, o := range q.Options {
				opts = append(opts, huh.NewOption(o, o))
			}
			fields = append(fields, huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(&answers[i]))
		} else {
			fields = append(fields, huh.NewInput().
				Title(title).
				Value(&answers[i]).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("an answer is required")
					}
					return nil
				}))
		}
	}

	if err := f.form(huh.NewGroup(fields...)).Run(); err != nil {
		return fmt.Errorf("background form: %w", err)
	}

	byKey := make(map[string]string, len(qs))
	for i, q := range qs {
		byKey[q.Key] = strings.TrimSpace(answers[i])
	}
	return f.ctrl.SubmitBackground(record.Background{
		Role:        byKey["role"],
		Age:         byKey["age"],
		Gender:      byKey["gender"],
		Education:   byKey["education"],
		AIFrequency: byKey["aiFrequency"],
		AILiteracy:  byKey["aiLiteracy"],
		PriorUse:    byKey["priorUse"],
		Familiarity: byKey["familiarity"],
	})
}

func (f *Flow) showCompletion() error {
	rec := f.ctrl.Record()
	fmt.Fprintf(f.out, "\nThank you! Your session is complete.\n")
	fmt.Fprintf(f.out, "Participant ID: %s\n", rec.ParticipantID)
	return nil
}

// form applies shared input/output wiring and accessible mode for
// non-TTY input (e.g. tests, piped input).
func (f *Flow) form(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).
		WithInput(f.in).
		WithOutput(f.out)
	if file, ok := f.in.(*os.File); !ok || !term.IsTerminal(int(file.Fd())) {
		form = form.WithAccessible(true)
	}
	return form
}

func pointOptions(points []catalog.ScalePoint) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, len(points))
	for _, p := range points {
		label := p.Label
		if label == "" {
			label = fmt.Sprintf("%d", p.Value)
		} else {
			label = fmt.Sprintf("%d · %s", p.Value, p.Label)
		}
		opts = append(opts, huh.NewOption(label, p.Value))
	}
	return opts
}

func scalePointLabel(pos int, left, right string) string {
	switch pos {
	case 1:
		return fmt.Sprintf("1 · %s", left)
	case 7:
		return fmt.Sprintf("7 · %s", right)
	default:
		return fmt.Sprintf("%d", pos)
	}
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
