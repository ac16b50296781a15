package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSummonerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/summoners/lookup", handler.LookupSummoner)
	mux.HandleFunc("POST /v1/summoners/{region}/{summonerID}/refresh", handler.RefreshSummoner)
	// Submits only the parts whose TTL elapsed; not subject to the refresh cooldown.
	mux.HandleFunc("POST /v1/summoners/{region}/{summonerID}/refresh-due", handler.RefreshDueSummoner)
}

func registerTaskRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tasks/{handle}", handler.GetTask)
	mux.HandleFunc("POST /v1/tasks/status", handler.TaskStatus)
}

func registerIngestionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/static/refresh", handler.RefreshStaticData)
	mux.HandleFunc("POST /v1/leagues/challenger", handler.FetchChallenger)
	mux.HandleFunc("POST /v1/leagues/backfill", handler.BackfillLeagues)
	mux.HandleFunc("POST /v1/sweep", handler.Sweep)
}
