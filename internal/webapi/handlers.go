// Package webapi exposes the experiment flow over a local REST API for
// the browser-based participant frontend.
package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/catalog"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/export"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/randomize"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/record"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/screenshot"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/stages"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0"

// Handlers holds the HTTP handler methods for the web API. A mutex
// serializes access to the controller: the instrument serves exactly one
// participant session at a time.
type Handlers struct {
	mu     sync.Mutex
	ctrl   *stages.Controller
	logger *slog.Logger
}

// NewHandlers creates a new Handlers bound to the given controller.
func NewHandlers(ctrl *stages.Controller) *Handlers {
	return &Handlers{ctrl: ctrl, logger: slog.Default()}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleSession returns the loaded session and its derived stage. The
// frontend calls this on load and routes to the stage it names.
func (h *Handlers) HandleSession(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec := h.ctrl.Record()
	resp := SessionResponse{
		ParticipantID: rec.ParticipantID,
		Stage:         h.ctrl.Stage().String(),
		StartTime:     rec.StartTime,
		PoleReversal:  rec.PoleReversal,
		Completed:     rec.Completed,
		Agent:         rec.AssignedAgent,
		TaskOrder:     taskOrderStrings(rec),
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleConsent records consent and performs the one-time randomized
// assignments. Idempotent: repeating the call never reassigns.
func (h *Handlers) HandleConsent(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ctrl.AcceptConsent(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StageResponse{Stage: h.ctrl.Stage().String()})
}

// HandleBriefing returns the assignments shown on the briefing screen.
func (h *Handlers) HandleBriefing(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec := h.ctrl.Record()
	if rec.AssignedAgent == nil {
		writeError(w, http.StatusConflict, "consent has not been recorded yet")
		return
	}
	writeJSON(w, http.StatusOK, BriefingResponse{
		Agent:     *rec.AssignedAgent,
		TaskOrder: taskOrderStrings(rec),
	})
}

// HandleTaskStart selects (or re-reads) the task for the ordinal and
// returns it with rendered instructions.
func (h *Handlers) HandleTaskStart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n, ok := taskOrdinal(w, r)
	if !ok {
		return
	}

	def, err := h.ctrl.StartTask(n)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	t := h.ctrl.Record().Task(n)
	writeJSON(w, http.StatusOK, TaskResponse{
		Ordinal:          n,
		Type:             string(t.Type),
		ID:               def.ID,
		Title:            def.Title,
		Description:      def.Description,
		InstructionsHTML: renderMarkdown(def.Instructions),
	})
}

// HandleTaskComplete closes the task's interaction window.
func (h *Handlers) HandleTaskComplete(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n, ok := taskOrdinal(w, r)
	if !ok {
		return
	}
	if err := h.ctrl.FinishTask(n); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StageResponse{Stage: h.ctrl.Stage().String()})
}

// HandleScales returns the questionnaire display data for a task: the
// pending groups in presentation order, a freshly shuffled combined
// matrix with per-position canonical values, and the remaining scales.
func (h *Handlers) HandleScales(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n, ok := taskOrdinal(w, r)
	if !ok {
		return
	}

	cat := h.ctrl.Catalog()
	items, reversed := h.ctrl.CombinedDisplay()

	combined := make([]ScaleRow, len(items))
	for i, it := range items {
		left, right := randomize.DisplayPoles(it, reversed)
		values := make([]int, 0, 7)
		for pos := 1; pos <= 7; pos++ {
			values = append(values, randomize.CanonicalValue(pos, reversed))
		}
		combined[i] = ScaleRow{ID: it.ID, Left: left, Right: right, Values: values}
	}

	stias := make([]StatementRow, len(cat.STIAS))
	for i, it := range cat.STIAS {
		stias[i] = StatementRow{ID: it.ID, Text: it.Text, Points: cat.LikertScale}
	}

	singles := make([]SingleItemRow, len(cat.SingleItems))
	for i, it := range cat.SingleItems {
		singles[i] = SingleItemRow{
			ID:        it.ID,
			Text:      it.Text,
			Points:    cat.ScaleFor(it.ID),
			ReasonKey: it.ID + "_reason",
		}
	}

	pending := h.ctrl.PendingGroups(n)
	names := make([]string, len(pending))
	for i, g := range pending {
		names[i] = string(g)
	}

	writeJSON(w, http.StatusOK, ScalesResponse{
		Ordinal:       n,
		PendingGroups: names,
		Combined:      combined,
		STIAS:         stias,
		SingleItems:   singles,
	})
}

// HandleScaleSubmit persists one complete scale-group submission.
func (h *Handlers) HandleScaleSubmit(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n, ok := taskOrdinal(w, r)
	if !ok {
		return
	}
	group := record.ScaleGroup(r.PathValue("group"))

	var sub ScaleSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ctrl.SubmitScales(n, group, sub.Responses); err != nil {
		switch {
		case errors.Is(err, stages.ErrUnknownGroup):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, stages.ErrIncompleteResponses), errors.Is(err, stages.ErrTaskNotStarted):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, StageResponse{Stage: h.ctrl.Stage().String()})
}

// HandleScreenshots saves the task's screenshot evidence. Every entry
// must be an image data URI; the set replaces any prior list.
func (h *Handlers) HandleScreenshots(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n, ok := taskOrdinal(w, r)
	if !ok {
		return
	}

	var sub ScreenshotSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	for i, uri := range sub.Screenshots {
		mime, _, err := screenshot.Decode(uri)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("screenshot %d: %v", i+1, err))
			return
		}
		if !strings.HasPrefix(mime, "image/") {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("screenshot %d: not an image (%s)", i+1, mime))
			return
		}
	}

	if err := h.ctrl.SaveScreenshots(n, sub.Screenshots); err != nil {
		if errors.Is(err, stages.ErrScalesPending) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StageResponse{Stage: h.ctrl.Stage().String()})
}

// HandleClearChat returns the chat-clearing guide for the assigned agent.
func (h *Handlers) HandleClearChat(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec := h.ctrl.Record()
	if rec.AssignedAgent == nil {
		writeError(w, http.StatusConflict, "no agent assigned yet")
		return
	}
	writeJSON(w, http.StatusOK, ClearChatResponse{
		Agent: *rec.AssignedAgent,
		Guide: h.ctrl.ClearChatGuide(),
	})
}

// HandleBackgroundForm returns the background questions with the agent
// name substituted into familiarity items, plus any saved answers.
func (h *Handlers) HandleBackgroundForm(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec := h.ctrl.Record()
	agentName := ""
	if rec.AssignedAgent != nil {
		agentName = rec.AssignedAgent.Name
	}

	qs := h.ctrl.Catalog().BackgroundQuestions()
	out := make([]catalog.Question, len(qs))
	for i, q := range qs {
		q.Question = strings.ReplaceAll(q.Question, "[AGENT_NAME]", agentName)
		out[i] = q
	}

	writeJSON(w, http.StatusOK, BackgroundResponse{
		Questions: out,
		Answers:   backgroundAnswers(rec.Background),
	})
}

// HandleBackgroundSubmit decodes and persists the background answers and
// marks the session complete.
func (h *Handlers) HandleBackgroundSubmit(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var bg record.Background
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &bg,
		ErrorUnused: true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := dec.Decode(raw); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid background answers: %v", err))
		return
	}

	if err := h.ctrl.SubmitBackground(bg); err != nil {
		switch {
		case errors.Is(err, stages.ErrBackgroundIncomplete):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, stages.ErrSessionIncomplete):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, StageResponse{Stage: h.ctrl.Stage().String()})
}

// HandleExportJSON streams the structured export as a download.
// ?gzip=1 compresses the payload.
func (h *Handlers) HandleExportJSON(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec := h.ctrl.Record()
	name := export.JSONFilename(rec)

	if r.URL.Query().Get("gzip") == "1" {
		w.Header().Set("Content-Type", "application/gzip")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".gz"))
		if err := export.WriteJSONGz(w, rec); err != nil {
			h.exportFailed(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := export.WriteJSON(w, rec); err != nil {
		h.exportFailed(w, err)
	}
}

// HandleExportCSV streams the analysis CSV as a download.
func (h *Handlers) HandleExportCSV(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec := h.ctrl.Record()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.CSVFilename(rec)))
	if err := export.WriteCSV(w, rec); err != nil {
		h.exportFailed(w, err)
	}
}

// HandleReset clears the persisted session. The body must carry an
// explicit confirmation; this endpoint is an operator affordance.
func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Confirm {
		writeError(w, http.StatusBadRequest, "reset requires confirmation")
		return
	}
	if err := h.ctrl.Reset(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StageResponse{Stage: h.ctrl.Stage().String()})
}

// exportFailed logs a mid-stream export failure. Headers are already
// written at this point, so no error status can be sent.
func (h *Handlers) exportFailed(_ http.ResponseWriter, err error) {
	h.logger.Error("export write failed", "error", err)
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, ctrl *stages.Controller) {
	h := NewHandlers(ctrl)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/session", h.HandleSession)
	mux.HandleFunc("POST /api/consent", h.HandleConsent)
	mux.HandleFunc("GET /api/briefing", h.HandleBriefing)
	mux.HandleFunc("POST /api/tasks/{n}/start", h.HandleTaskStart)
	mux.HandleFunc("POST /api/tasks/{n}/complete", h.HandleTaskComplete)
	mux.HandleFunc("GET /api/scales/{n}", h.HandleScales)
	mux.HandleFunc("POST /api/scales/{n}/{group}", h.HandleScaleSubmit)
	mux.HandleFunc("POST /api/screenshots/{n}", h.HandleScreenshots)
	mux.HandleFunc("GET /api/clear-chat", h.HandleClearChat)
	mux.HandleFunc("GET /api/background", h.HandleBackgroundForm)
	mux.HandleFunc("POST /api/background", h.HandleBackgroundSubmit)
	mux.HandleFunc("GET /api/export/json", h.HandleExportJSON)
	mux.HandleFunc("GET /api/export/csv", h.HandleExportCSV)
	mux.HandleFunc("POST /api/reset", h.HandleReset)
}

func taskOrdinal(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || (n != 1 && n != 2) {
		writeError(w, http.StatusBadRequest, "task ordinal must be 1 or 2")
		return 0, false
	}
	return n, true
}

func taskOrderStrings(rec *record.SessionRecord) []string {
	if len(rec.TaskOrder) != 2 {
		return nil
	}
	return []string{string(rec.TaskOrder[0]), string(rec.TaskOrder[1])}
}

func backgroundAnswers(bg record.Background) map[string]string {
	if bg.Empty() {
		return nil
	}
	return map[string]string{
		"role":        bg.Role,
		"age":         bg.Age,
		"gender":      bg.Gender,
		"education":   bg.Education,
		"aiFrequency": bg.AIFrequency,
		"aiLiteracy":  bg.AILiteracy,
		"priorUse":    bg.PriorUse,
		"familiarity": bg.Familiarity,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
