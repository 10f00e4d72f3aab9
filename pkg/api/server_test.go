package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dernier-metro/dernier-metro/pkg/apilog"
	"github.com/dernier-metro/dernier-metro/pkg/repository/memory"
	"github.com/dernier-metro/dernier-metro/pkg/transit"
)

func testDependencies() Dependencies {
	stations := memory.NewStationRepository([]transit.Station{
		{
			Name:          "Châtelet",
			Slug:          "chatelet",
			Zone:          1,
			Accessibility: true,
			Lines: []transit.Line{
				{Code: "M1", Name: "Ligne 1"},
			},
		},
		{
			Name: "Champs-Élysées",
			Slug: "champs-elysees",
			Zone: 1,
		},
		{
			Name: "Bastille",
			Slug: "bastille",
			Zone: 1,
			Lines: []transit.Line{
				{Code: "M5", Name: "Ligne 5"},
			},
		},
	})

	schedules := memory.NewScheduleRepository([]transit.ServiceCalendar{
		{
			LineCode:             "M1",
			DayType:              transit.DayTypeWeekday,
			ServiceStart:         transit.ClockTime{Hour: 5, Minute: 30},
			ServiceEnd:           transit.ClockTime{Hour: 1, Minute: 15},
			LastTrainWindowStart: transit.ClockTime{Hour: 0, Minute: 45},
			HeadwayMinutes:       2,
		},
	})

	fallback := transit.ServiceCalendar{
		ServiceStart:         transit.ClockTime{Hour: 5, Minute: 30},
		ServiceEnd:           transit.ClockTime{Hour: 1, Minute: 15},
		LastTrainWindowStart: transit.ClockTime{Hour: 0, Minute: 45},
		HeadwayMinutes:       3,
	}

	return Dependencies{
		Stations:        stations,
		Calculator:      transit.NewCalculator(schedules, fallback, "Europe/Paris"),
		DefaultLine:     transit.Line{Code: "M1", Name: "Ligne 1"},
		SuggestionLimit: 5,
		Healthcheck: func(ctx context.Context) error {
			return nil
		},
	}
}

func getJSON(t *testing.T, deps Dependencies, url string) (int, map[string]any) {
	t.Helper()

	app := NewApp(deps)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	return response.StatusCode, decoded
}

func TestNextMetroMissingStation(t *testing.T) {
	status, body := getJSON(t, testDependencies(), "/next-metro")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "missing station", body["error"])
}

func TestNextMetroInvalidDatetime(t *testing.T) {
	status, body := getJSON(t, testDependencies(), "/next-metro?station=chatelet&datetime=yesterday")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Parameter datetime should be an RFC3339/ISO8601 datetime", body["error"])
}

func TestNextMetroUnknownStationSuggestions(t *testing.T) {
	status, body := getJSON(t, testDependencies(), "/next-metro?station=cha")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "unknown station", body["error"])

	// Name prefix matches outrank slug prefix matches.
	assert.Equal(t, []any{"Champs-Élysées", "Châtelet"}, body["suggestions"])
}

func TestNextMetroScheduledService(t *testing.T) {
	// A Monday afternoon, against the stored weekday calendar of M1.
	status, body := getJSON(t, testDependencies(), "/next-metro?station=chatelet&datetime=2025-10-06T14:30:00Z")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Châtelet", body["station"])
	assert.Equal(t, "M1", body["line"])
	assert.Equal(t, float64(2), body["headwayMin"])
	assert.Equal(t, "14:32", body["nextArrival"])
	assert.Equal(t, false, body["isLast"])
	assert.Equal(t, "weekday", body["dayType"])
	assert.Equal(t, "Europe/Paris", body["tz"])
	assert.Equal(t, float64(1), body["zone"])
	assert.Equal(t, true, body["accessibility"])
}

func TestNextMetroLastTrainWindow(t *testing.T) {
	status, body := getJSON(t, testDependencies(), "/next-metro?station=chatelet&datetime=2025-10-06T00:50:00Z")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "00:52", body["nextArrival"])
	assert.Equal(t, true, body["isLast"])
}

func TestNextMetroClosed(t *testing.T) {
	status, body := getJSON(t, testDependencies(), "/next-metro?station=chatelet&datetime=2025-10-06T02:00:00Z")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "closed", body["service"])
	assert.Equal(t, "Châtelet", body["station"])
	assert.Equal(t, "M1", body["line"])
	assert.Equal(t, "Europe/Paris", body["tz"])
	assert.NotContains(t, body, "nextArrival")
}

func TestNextMetroFallbackCalendar(t *testing.T) {
	// Bastille sits on M5 which has no stored calendar, so the default
	// calendar answers and no day type is reported.
	status, body := getJSON(t, testDependencies(), "/next-metro?station=bastille&datetime=2025-10-06T14:30:00Z")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "M5", body["line"])
	assert.Equal(t, float64(3), body["headwayMin"])
	assert.Equal(t, "14:33", body["nextArrival"])
	assert.NotContains(t, body, "dayType")
}

func TestNextMetroDefaultLine(t *testing.T) {
	// Champs-Élysées carries no line rows, so the configured default line
	// stands in.
	status, body := getJSON(t, testDependencies(), "/next-metro?station=champs-elysees&datetime=2025-10-06T14:30:00Z")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "M1", body["line"])
	assert.Equal(t, "weekday", body["dayType"])
}

func TestStations(t *testing.T) {
	status, body := getJSON(t, testDependencies(), "/stations")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), body["count"])

	stations, ok := body["stations"].([]any)
	require.True(t, ok)
	require.Len(t, stations, 3)

	first, ok := stations[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Bastille", first["name"])
	assert.Equal(t, "bastille", first["slug"])
}

func TestHealthOK(t *testing.T) {
	status, body := getJSON(t, testDependencies(), "/health")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHealthDatabaseDown(t *testing.T) {
	deps := testDependencies()
	deps.Healthcheck = func(ctx context.Context) error {
		return errors.New("dial tcp: connection refused")
	}

	status, body := getJSON(t, deps, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "database connection failed", body["error"])
}

func TestAPIVersion(t *testing.T) {
	status, body := getJSON(t, testDependencies(), "/version")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "dernier-metro", body["service"])
	assert.Equal(t, "v0.1.0", body["version"])
}

func TestRouteNotFound(t *testing.T) {
	status, body := getJSON(t, testDependencies(), "/nope")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "route not found", body["error"])
}

// gatedRecorder holds every Record call until the gate opens, so recording
// goroutines outlive the requests that spawned them.
type gatedRecorder struct {
	gate chan struct{}

	mu      sync.Mutex
	entries []apilog.Entry
}

func (r *gatedRecorder) Record(ctx context.Context, entry apilog.Entry) error {
	<-r.gate

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)

	return nil
}

func (r *gatedRecorder) recorded() []apilog.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]apilog.Entry(nil), r.entries...)
}

// Entries must survive the request context being recycled for later requests.
func TestRequestLogSurvivesContextReuse(t *testing.T) {
	recorder := &gatedRecorder{gate: make(chan struct{})}
	deps := testDependencies()
	deps.RequestLog = recorder

	app := NewApp(deps)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/next-metro?station=chatelet&datetime=2025-10-06T14:30:00Z", nil))
	require.NoError(t, err)
	response.Body.Close()

	// Churn the server with different requests so fasthttp reuses the first
	// request's buffers before its entry is recorded
	padding := strings.Repeat("x", 64)
	for i := 0; i < 50; i++ {
		response, err := app.Test(httptest.NewRequest(http.MethodGet, "/stations?padding="+padding, nil))
		require.NoError(t, err)
		response.Body.Close()
	}

	close(recorder.gate)
	require.Eventually(t, func() bool {
		return len(recorder.recorded()) == 51
	}, 5*time.Second, 10*time.Millisecond)

	var nextMetroEntries []apilog.Entry
	for _, entry := range recorder.recorded() {
		if entry.Path == "/next-metro" {
			nextMetroEntries = append(nextMetroEntries, entry)
		}
	}

	require.Len(t, nextMetroEntries, 1)
	entry := nextMetroEntries[0]
	assert.Equal(t, http.MethodGet, entry.Method)
	assert.Equal(t, http.StatusOK, entry.StatusCode)
	assert.Equal(t, "chatelet", entry.QueryParams["station"])
	assert.NotContains(t, entry.QueryParams, "padding")
}

// Request metrics label on the matched route pattern, never on raw URLs.
func TestMetricsLabelsUseMatchedRoute(t *testing.T) {
	app := NewApp(testDependencies())

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/stations", nil))
	require.NoError(t, err)
	response.Body.Close()

	response, err = app.Test(httptest.NewRequest(http.MethodGet, "/scanner-probe-zzz?cmd=whoami", nil))
	require.NoError(t, err)
	response.Body.Close()

	response, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	scrape := string(body)

	assert.Contains(t, scrape, `path="/stations"`)
	assert.NotContains(t, scrape, "scanner-probe-zzz")
}
