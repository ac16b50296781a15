package riot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		BaseURL:       srv.URL,
		StaticBaseURL: srv.URL,
		APIKey:        "secret-key",
		Timeout:       2 * time.Second,
	})
	return client, &hits
}

func TestClient_GetSummonerByName(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/lol/euw/v1.4/summoner/by-name/fakerfan" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "secret-key" {
			t.Errorf("expected api key query parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fakerfan":{"id":42,"name":"Faker Fan","profileIconId":7,"revisionDate":1450000000000,"summonerLevel":30}}`))
	})

	res, err := client.Invoke(context.Background(), GetSummonerByName{Region: RegionEUW, Name: "fakerfan"})
	require.NoError(t, err)

	summoners, ok := res.(SummonerMap)
	require.True(t, ok, "unexpected result type %T", res)
	require.Equal(t, int64(42), summoners["fakerfan"].ID)
	require.Equal(t, "Faker Fan", summoners["fakerfan"].Name)
	require.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestClient_GetMatchListQuery(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/lol/na/v2.2/matchlist/by-summoner/9" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("rankedQueues"); got != QueueRankedSolo5x5 {
			t.Errorf("unexpected rankedQueues: %q", got)
		}
		_, _ = w.Write([]byte(`{"matches":[{"matchId":3,"timestamp":3000},{"matchId":2,"timestamp":2000}],"totalGames":2}`))
	})

	res, err := client.Invoke(context.Background(), GetMatchList{Region: RegionNA, SummonerID: 9})
	require.NoError(t, err)
	list := res.(MatchList)
	require.Len(t, list.Matches, 2)
	require.Equal(t, int64(3), list.Matches[0].MatchID)
}

func TestClient_ClassifiesStatusCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		retryAfter string
		wantClass  Class
		wantDelay  time.Duration
		wantHint   bool
	}{
		{name: "rate limited with hint", status: http.StatusTooManyRequests, retryAfter: "5", wantClass: ClassRateLimited, wantDelay: 5 * time.Second, wantHint: true},
		{name: "rate limited without hint", status: http.StatusTooManyRequests, wantClass: ClassRateLimited},
		{name: "server error", status: http.StatusServiceUnavailable, wantClass: ClassServerError},
		{name: "internal error", status: http.StatusInternalServerError, wantClass: ClassServerError},
		{name: "not found", status: http.StatusNotFound, wantClass: ClassNotFound},
		{name: "bad request", status: http.StatusBadRequest, wantClass: ClassClientError},
		{name: "unauthorized", status: http.StatusUnauthorized, wantClass: ClassClientError},
		{name: "redirect", status: http.StatusNotModified, wantClass: ClassUnknown},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				if tc.retryAfter != "" {
					w.Header().Set("Retry-After", tc.retryAfter)
				}
				w.WriteHeader(tc.status)
			})

			_, err := client.Invoke(context.Background(), GetMatch{Region: RegionKR, MatchID: 1})
			require.Error(t, err)
			require.Equal(t, tc.wantClass, ClassOf(err))

			delay, hasHint := RetryAfterOf(err)
			require.Equal(t, tc.wantHint, hasHint)
			require.Equal(t, tc.wantDelay, delay)
		})
	}
}

func TestClient_InvalidParametersNeverHitNetwork(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ids := make([]int64, MaxSummonerIDsPerCall+1)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	ops := []Operation{
		GetSummonerByName{Region: "XX", Name: "someone"},
		GetSummonerByName{Region: RegionEUW},
		GetSummonersByID{Region: RegionEUW, IDs: ids},
		GetLeagues{Region: RegionEUW, SummonerIDs: ids[:MaxLeagueSummonersPerCall+1]},
		GetChallenger{Region: RegionEUW, Queue: "NORMAL_5x5"},
		GetMatch{Region: RegionEUW},
		GetMatchList{Region: RegionEUW, SummonerID: 1, RankedQueues: "RANKED_TEAM_3x3"},
	}
	for _, op := range ops {
		_, err := client.Invoke(context.Background(), op)
		require.Error(t, err, "operation %s", op.Kind())
		require.Equal(t, ClassClientError, ClassOf(err), "operation %s", op.Kind())
	}
	require.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestClient_UndecodableBodyIsUnknown(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := client.Invoke(context.Background(), GetChallenger{Region: RegionOCE, Queue: QueueRankedSolo5x5})
	require.Error(t, err)
	require.Equal(t, ClassUnknown, ClassOf(err))
}

func TestClient_ErrorsDoNotLeakAPIKey(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"status":{"message":"Forbidden ` + r.URL.RawQuery + `"}}`))
	})

	_, err := client.Invoke(context.Background(), GetChampionList{Region: RegionBR})
	require.Error(t, err)
	require.Equal(t, ClassClientError, ClassOf(err))
	require.False(t, strings.Contains(err.Error(), "secret-key"), "api key leaked: %s", err.Error())
}

func TestClient_StaticDataUsesStaticHost(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/lol/static-data/tr/v1.2/summoner-spell" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"type":"summoner","version":"6.1.1","data":{"4":{"id":4,"key":"SummonerFlash","name":"Flash","summonerLevel":8}}}`))
	})

	res, err := client.Invoke(context.Background(), GetSummonerSpellList{Region: RegionTR})
	require.NoError(t, err)
	spells := res.(SpellList)
	require.Equal(t, "Flash", spells.Data["4"].Name)
}

func TestParseRegion(t *testing.T) {
	t.Parallel()

	got, err := ParseRegion(" euw ")
	require.NoError(t, err)
	require.Equal(t, RegionEUW, got)
	require.Equal(t, "euw", got.Lower())

	_, err = ParseRegion("mars")
	require.Error(t, err)
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)

	d, ok := parseRetryAfter("3", now)
	require.True(t, ok)
	require.Equal(t, 3*time.Second, d)

	d, ok = parseRetryAfter(now.Add(10*time.Second).Format(http.TimeFormat), now)
	require.True(t, ok)
	require.Equal(t, 10*time.Second, d)

	_, ok = parseRetryAfter("soon", now)
	require.False(t, ok)
}
