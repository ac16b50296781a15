package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/lol-stats/internal/executor"
	"github.com/riskibarqy/lol-stats/internal/usecase"
)

type taskStatusRequest struct {
	Handles []string `json:"handles" validate:"max=500,dive,required"`
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "GetTask")
	defer span.End()

	handle := strings.TrimSpace(r.PathValue("handle"))
	if handle == "" {
		writeError(w, fmt.Errorf("%w: task handle is required", usecase.ErrInvalidInput))
		return
	}

	rec, ok := h.tasks.Record(executor.Handle(handle))
	if !ok {
		h.logger.DebugContext(ctx, "unknown task handle", "handle", handle)
	}
	writeSuccess(w, http.StatusOK, taskToDTO(rec))
}

// TaskStatus answers whether every listed task succeeded. Unknown and pruned
// handles count as not succeeded.
func (h *Handler) TaskStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "TaskStatus")
	defer span.End()

	var req taskStatusRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(w, err)
		return
	}

	handles := make([]executor.Handle, 0, len(req.Handles))
	tasks := make([]taskDTO, 0, len(req.Handles))
	for _, raw := range req.Handles {
		handle := executor.Handle(strings.TrimSpace(raw))
		handles = append(handles, handle)
		rec, _ := h.tasks.Record(handle)
		tasks = append(tasks, taskToDTO(rec))
	}

	writeSuccess(w, http.StatusOK, taskStatusDTO{
		AllSucceeded: h.tasks.StatusAll(handles),
		Tasks:        tasks,
	})
}
