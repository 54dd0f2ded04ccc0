package playerapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/darkscore-api/internal/platform/logging"
	"github.com/riskibarqy/darkscore-api/internal/platform/resilience"
	"github.com/riskibarqy/darkscore-api/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, retries int, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL,
		Timeout:        time.Second,
		MaxRetries:     retries,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
		Backoff:        func(int) time.Duration { return 0 },
	})
}

func TestClient_ListByTeam(t *testing.T) {
	t.Parallel()

	var gotNation string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotNation = r.URL.Query().Get("nation")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":"Unai Simon","nation":"Spain","best_position":"GK","club":"Athletic","overall_rating":"86","potential":"87","age":"28","value":"€30M"},
			{"name":"Pedri","nation":"Spain","best_position":"CM/AM","club":"Barcelona","overall_rating":89,"potential":92,"age":22,"value":100000000}
		]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0, resilience.CircuitBreakerConfig{})
	players, err := client.ListByTeam(t.Context(), " Spain ")
	require.NoError(t, err)

	assert.Equal(t, "spain", gotNation)
	require.Len(t, players, 2)
	assert.Equal(t, 1, players[0].Number)
	assert.Equal(t, "Unai Simon", players[0].Name)
	assert.Equal(t, "GK", players[0].Position)
	assert.Equal(t, 86, players[0].Overall)
	assert.Equal(t, 28, players[0].Age)
	assert.Equal(t, "€30M", players[0].Value)
	assert.Equal(t, 2, players[1].Number)
	assert.Equal(t, "CM/AM", players[1].Position)
	assert.Equal(t, 92, players[1].Potential)
	assert.Equal(t, "100000000", players[1].Value)
}

func TestClient_ListByTeam_Envelope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"nation":"japan","count":1,"players":[{"name":"Mitoma","best_position":"LW","overall_rating":"84"}]}`))
	}))
	defer srv.Close()

	players, err := newTestClient(srv.URL, 0, resilience.CircuitBreakerConfig{}).ListByTeam(t.Context(), "Japan")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, 84, players[0].Overall)
}

func TestClient_ListByTeam_EmptyIsNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("nation") == "atlantis" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0, resilience.CircuitBreakerConfig{})

	_, err := client.ListByTeam(t.Context(), "Haiti")
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = client.ListByTeam(t.Context(), "Atlantis")
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestClient_ListByTeam_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"name":"A","best_position":"ST"}]`))
	}))
	defer srv.Close()

	players, err := newTestClient(srv.URL, 2, resilience.CircuitBreakerConfig{}).ListByTeam(t.Context(), "Ghana")
	require.NoError(t, err)
	assert.Len(t, players, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ListByTeam_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3, resilience.CircuitBreakerConfig{}).ListByTeam(t.Context(), "Ghana")
	require.Error(t, err)
	assert.False(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ListByTeam_OpensCircuit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		_, err := client.ListByTeam(t.Context(), "Qatar")
		assert.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	}

	_, err := client.ListByTeam(t.Context(), "Qatar")
	assert.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_ListByTeam_RequiresTeam(t *testing.T) {
	t.Parallel()

	_, err := newTestClient("http://127.0.0.1:0", 0, resilience.CircuitBreakerConfig{}).ListByTeam(t.Context(), "  ")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestClient_ListByTeam_DecodesAttributesAndPlaystyles(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"name":"Lamine Yamal","best_position":"RW","acceleration":"91","sprint_speed":88,"dribbling":"90",
			 "finishing":80,"short_passing":"84","long_passing":78,"reactions":"85","heading_accuracy":45,
			 "total_attacking":"390","total_skill":410,"total_movement":"440","total_power":330,
			 "total_mentality":"350","total_defending":90,"total_goalkeeping":"40",
			 "playstyles":"Finesse Shot, Technical","playstyles2":"  ","playstyles3":null},
			{"name":"Rodri","best_position":"CDM","playstyles":"","playstyles2":"Tiki Taka"}
		]`))
	}))
	defer srv.Close()

	players, err := newTestClient(srv.URL, 0, resilience.CircuitBreakerConfig{}).ListByTeam(t.Context(), "Spain")
	require.NoError(t, err)
	require.Len(t, players, 2)

	attrs := players[0].Attributes
	require.NotNil(t, attrs)
	assert.Equal(t, 91, attrs.Acceleration)
	assert.Equal(t, 88, attrs.SprintSpeed)
	assert.Equal(t, 90, attrs.Dribbling)
	assert.Equal(t, 80, attrs.Finishing)
	assert.Equal(t, 84, attrs.ShortPassing)
	assert.Equal(t, 78, attrs.LongPassing)
	assert.Equal(t, 85, attrs.Reactions)
	assert.Equal(t, 45, attrs.HeadingAccuracy)
	assert.Equal(t, 390, attrs.TotalAttacking)
	assert.Equal(t, 410, attrs.TotalSkill)
	assert.Equal(t, 440, attrs.TotalMovement)
	assert.Equal(t, 330, attrs.TotalPower)
	assert.Equal(t, 350, attrs.TotalMentality)
	assert.Equal(t, 90, attrs.TotalDefending)
	assert.Equal(t, 40, attrs.TotalGoalkeeping)
	assert.Equal(t, []string{"Finesse Shot, Technical"}, players[0].Playstyles)

	assert.Nil(t, players[1].Attributes)
	assert.Equal(t, []string{"Tiki Taka"}, players[1].Playstyles)
}

func TestClient_ListByTeam_SharedFetchIgnoresCallerCancel(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Son","best_position":"LW"}]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	players, err := newTestClient(srv.URL, 0, resilience.CircuitBreakerConfig{}).ListByTeam(ctx, "Korea Republic")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Son", players[0].Name)
}
