package httpapi

import (
	"net/http"

	"github.com/riskibarqy/lol-stats/internal/usecase"
)

type lookupSummonerRequest struct {
	Region string `json:"region" validate:"required"`
	Name   string `json:"name" validate:"required,max=64"`
}

func (h *Handler) LookupSummoner(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "LookupSummoner")
	defer span.End()

	var req lookupSummonerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.summonerService.Lookup(ctx, req.Region, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "lookup summoner failed", "region", req.Region, "name", req.Name, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, lookupToDTO(result))
}

func (h *Handler) RefreshSummoner(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "RefreshSummoner")
	defer span.End()

	h.refresh(w, r, func(region string, summonerID int64) (taskListDTO, error) {
		handles, err := h.summonerService.Refresh(ctx, region, summonerID)
		return handlesToDTO(handles), err
	})
}

func (h *Handler) RefreshDueSummoner(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "RefreshDueSummoner")
	defer span.End()

	h.refresh(w, r, func(region string, summonerID int64) (taskListDTO, error) {
		handles, err := h.summonerService.RefreshDue(ctx, region, summonerID)
		return handlesToDTO(handles), err
	})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request, run func(region string, summonerID int64) (taskListDTO, error)) {
	region, err := parseRegion(r.PathValue("region"))
	if err != nil {
		writeError(w, err)
		return
	}
	summonerID, err := parseSummonerID(r.PathValue("summonerID"))
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := run(region, summonerID)
	if err != nil {
		h.logger.WarnContext(r.Context(), "refresh summoner failed", "region", region, "summoner_id", summonerID, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusAccepted, out)
}

func lookupToDTO(v usecase.LookupResult) lookupDTO {
	s := v.Summoner
	return lookupDTO{
		Summoner: summonerDTO{
			Region:            s.Region,
			SummonerID:        s.SummonerID,
			Name:              s.Name,
			StdName:           s.StdName,
			ProfileIconID:     s.ProfileIconID,
			SummonerLevel:     s.SummonerLevel,
			RevisionDate:      formatOptionalTime(s.RevisionDate),
			LastUpdate:        formatTime(s.LastUpdate),
			LastMatchesUpdate: formatOptionalTime(s.LastMatchesUpdate),
			LastLeaguesUpdate: formatOptionalTime(s.LastLeaguesUpdate),
			LastFullUpdate:    formatOptionalTime(s.LastFullUpdate),
		},
		State: string(v.State),
		Tasks: handlesToDTO(v.Handles).Handles,
	}
}
