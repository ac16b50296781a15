package httpapi

import (
	"time"

	"github.com/riskibarqy/lol-stats/internal/executor"
)

type summonerDTO struct {
	Region            string `json:"region"`
	SummonerID        int64  `json:"summoner_id"`
	Name              string `json:"name"`
	StdName           string `json:"std_name"`
	ProfileIconID     int    `json:"profile_icon_id"`
	SummonerLevel     int    `json:"summoner_level"`
	RevisionDate      string `json:"revision_date,omitempty"`
	LastUpdate        string `json:"last_update,omitempty"`
	LastMatchesUpdate string `json:"last_matches_update,omitempty"`
	LastLeaguesUpdate string `json:"last_leagues_update,omitempty"`
	LastFullUpdate    string `json:"last_full_update,omitempty"`
}

type lookupDTO struct {
	Summoner summonerDTO `json:"summoner"`
	State    string      `json:"state"`
	Tasks    []string    `json:"tasks"`
}

type taskListDTO struct {
	Handles []string `json:"handles"`
}

type taskDTO struct {
	Handle      string `json:"handle"`
	Operation   string `json:"operation,omitempty"`
	Key         string `json:"key,omitempty"`
	Region      string `json:"region,omitempty"`
	Status      string `json:"status"`
	Attempts    int    `json:"attempts"`
	LastError   string `json:"last_error,omitempty"`
	SubmittedAt string `json:"submitted_at,omitempty"`
	FinishedAt  string `json:"finished_at,omitempty"`
}

type taskStatusDTO struct {
	AllSucceeded bool      `json:"all_succeeded"`
	Tasks        []taskDTO `json:"tasks"`
}

type sweepDTO struct {
	Checked int      `json:"checked"`
	Tasks   []string `json:"tasks"`
}

func handlesToDTO(handles []executor.Handle) taskListDTO {
	out := make([]string, 0, len(handles))
	for _, h := range handles {
		out = append(out, string(h))
	}
	return taskListDTO{Handles: out}
}

func taskToDTO(rec executor.Record) taskDTO {
	return taskDTO{
		Handle:      string(rec.Handle),
		Operation:   rec.Operation,
		Key:         rec.Key,
		Region:      rec.Region,
		Status:      string(rec.Status),
		Attempts:    rec.Attempts,
		LastError:   rec.LastError,
		SubmittedAt: formatTime(rec.SubmittedAt),
		FinishedAt:  formatTime(rec.FinishedAt),
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return formatTime(*v)
}
