package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostident/internal/domain"
	"hostident/internal/machine"
)

type fakeIdentity struct {
	id    machine.Identity
	ready bool
}

func (f *fakeIdentity) Initialized() bool { return f.ready }

func (f *fakeIdentity) Instance() machine.Identity {
	if !f.ready {
		panic(machine.ErrNotInitialized)
	}
	return f.id
}

type fakeHistory struct {
	snapshots []domain.Snapshot
	err       error
	gotLimit  int
}

func (f *fakeHistory) List(_ context.Context, limit int) ([]domain.Snapshot, error) {
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.snapshots) {
		return f.snapshots[:limit], nil
	}
	return f.snapshots, nil
}

func readyIdentity() *fakeIdentity {
	v4 := netip.MustParseAddr("203.0.113.7")
	return &fakeIdentity{
		ready: true,
		id: machine.Identity{
			Hostname:       "alpha.example.com",
			Primary:        v4,
			IPv4:           v4,
			IPv4Rank:       machine.RankGlobal,
			AddressText:    "203.0.113.7",
			AddressHexText: "cb007107",
			Source:         machine.SourceInterfaces,
			ResolvedAt:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func serve(t *testing.T, h *MachineHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	h.Register(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetMachineJSON(t *testing.T) {
	rec := serve(t, NewMachineHandler(readyIdentity(), nil), "/api/machine")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alpha.example.com", body["hostname"])
	assert.Equal(t, "cb007107", body["address_hex"])
}

func TestGetMachineYAML(t *testing.T) {
	rec := serve(t, NewMachineHandler(readyIdentity(), nil), "/api/machine?format=yaml")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "hostname: alpha.example.com")
}

func TestGetMachineUnknownFormat(t *testing.T) {
	rec := serve(t, NewMachineHandler(readyIdentity(), nil), "/api/machine?format=xml")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Unsupported format", body.Error)
}

func TestGetMachineNotResolved(t *testing.T) {
	rec := serve(t, NewMachineHandler(&fakeIdentity{}, nil), "/api/machine")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetHistory(t *testing.T) {
	hist := &fakeHistory{snapshots: []domain.Snapshot{
		{ID: "b", Hostname: "alpha"},
		{ID: "a", Hostname: "alpha"},
	}}
	rec := serve(t, NewMachineHandler(readyIdentity(), hist), "/api/machine/history?limit=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, hist.gotLimit)

	var body HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "b", body.Snapshots[0].ID)
}

func TestGetHistoryLimits(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantLimit int
	}{
		{"default", "", http.StatusOK, 20},
		{"capped", "?limit=50000", http.StatusOK, maxHistory},
		{"zero", "?limit=0", http.StatusBadRequest, 0},
		{"garbage", "?limit=many", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hist := &fakeHistory{}
			rec := serve(t, NewMachineHandler(readyIdentity(), hist), "/api/machine/history"+tt.query)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantLimit, hist.gotLimit)
		})
	}
}

func TestGetHistoryErrors(t *testing.T) {
	rec := serve(t, NewMachineHandler(readyIdentity(), nil), "/api/machine/history")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	hist := &fakeHistory{err: errors.New("disk gone")}
	rec = serve(t, NewMachineHandler(readyIdentity(), hist), "/api/machine/history")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "disk gone")
}

func TestHealth(t *testing.T) {
	rec := serve(t, NewMachineHandler(&fakeIdentity{}, nil), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "starting")

	rec = serve(t, NewMachineHandler(readyIdentity(), nil), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "alpha.example.com", body.Hostname)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRecover(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), Recover, Logger)

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "Internal server error"))
}

func TestWithIdentity(t *testing.T) {
	var (
		got machine.Identity
		ok  bool
	)
	inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, ok = machine.FromContext(r.Context())
	})

	Chain(inner, WithIdentity(&fakeIdentity{}), Logger).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)

	Chain(inner, WithIdentity(readyIdentity()), Logger).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, ok)
	assert.Equal(t, "alpha.example.com", got.Hostname)
}

func TestStatusRecorder(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	rec.WriteHeader(http.StatusTeapot)
	rec.WriteHeader(http.StatusOK)
	_, err := rec.Write([]byte("abc"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, rec.status)
	assert.Equal(t, 3, rec.bytes)
}
