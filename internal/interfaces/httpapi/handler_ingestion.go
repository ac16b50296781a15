package httpapi

import (
	"net/http"

	"github.com/riskibarqy/lol-stats/external/riot"
	"github.com/riskibarqy/lol-stats/internal/executor"
)

type regionRequest struct {
	Region string `json:"region" validate:"required"`
}

type challengerRequest struct {
	Region string `json:"region" validate:"required"`
	Queue  string `json:"queue" validate:"omitempty,oneof=RANKED_SOLO_5x5 RANKED_TEAM_3x3 RANKED_TEAM_5x5"`
}

type batchRequest struct {
	Region string `json:"region" validate:"required"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=1000"`
}

const defaultBatchLimit = 100

func (h *Handler) RefreshStaticData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "RefreshStaticData")
	defer span.End()

	var req regionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(w, err)
		return
	}
	region, err := parseRegion(req.Region)
	if err != nil {
		writeError(w, err)
		return
	}

	handles := h.pipeline.RefreshStaticData(ctx, region)
	writeSuccess(w, http.StatusAccepted, handlesToDTO(handles))
}

func (h *Handler) FetchChallenger(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "FetchChallenger")
	defer span.End()

	var req challengerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(w, err)
		return
	}
	region, err := parseRegion(req.Region)
	if err != nil {
		writeError(w, err)
		return
	}
	queue := req.Queue
	if queue == "" {
		queue = riot.QueueRankedSolo5x5
	}

	handle := h.pipeline.FetchChallenger(ctx, region, queue)
	writeSuccess(w, http.StatusAccepted, handlesToDTO([]executor.Handle{handle}))
}

func (h *Handler) BackfillLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "BackfillLeagues")
	defer span.End()

	var req batchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(w, err)
		return
	}
	region, err := parseRegion(req.Region)
	if err != nil {
		writeError(w, err)
		return
	}

	handles, err := h.pipeline.BackfillLeagues(ctx, region, batchLimit(req.Limit))
	if err != nil {
		h.logger.ErrorContext(ctx, "backfill leagues failed", "region", region, "error", err)
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusAccepted, handlesToDTO(handles))
}

func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "Sweep")
	defer span.End()

	var req batchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(w, err)
		return
	}
	region, err := parseRegion(req.Region)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.summonerService.Sweep(ctx, region, batchLimit(req.Limit))
	if err != nil {
		h.logger.ErrorContext(ctx, "sweep failed", "region", region, "error", err)
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusAccepted, sweepDTO{
		Checked: result.Checked,
		Tasks:   handlesToDTO(result.Handles).Handles,
	})
}

func batchLimit(v int) int {
	if v <= 0 {
		return defaultBatchLimit
	}
	return v
}
