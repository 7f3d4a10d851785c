package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/repository"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/service"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/stats"
)

// stubStats satisfies service.StatsStore with fixed aggregates.
type stubStats struct {
	mu        sync.Mutex
	total     int
	groups    map[string][]stats.GroupCount
	failRead  bool
	lastCount repository.Filter
}

func (s *stubStats) CountAll(ctx context.Context, f repository.Filter) (int, error) {
	s.mu.Lock()
	s.lastCount = f
	s.mu.Unlock()
	if s.failRead {
		return 0, errors.New("read failed")
	}
	return s.total, nil
}

func (s *stubStats) GroupCount(ctx context.Context, column string, f repository.Filter) ([]stats.GroupCount, error) {
	return s.groups[column], nil
}

func (s *stubStats) SumColumns(ctx context.Context, columns []string, f repository.Filter) ([]int, error) {
	return make([]int, len(columns)), nil
}

func (s *stubStats) CountWhereNotIn(ctx context.Context, column string, excluded []string, f repository.Filter) (int, error) {
	return 0, nil
}

func (s *stubStats) CountWhereEquals(ctx context.Context, column string, value string, f repository.Filter) (int, error) {
	return 0, nil
}

func (s *stubStats) CountWhereTrue(ctx context.Context, column string, f repository.Filter) (int, error) {
	return 0, nil
}

func (s *stubStats) ProjectColumns(ctx context.Context, columns []string, f repository.Filter) ([][]string, error) {
	return nil, nil
}

func newDashboardHandler(store *stubStats) *DashboardHandler {
	svc := service.NewDashboardService(store, zap.NewNop())
	return NewDashboardHandler(svc, zap.NewNop())
}

func TestGetStats_CompletePayload(t *testing.T) {
	store := &stubStats{
		total: 3,
		groups: map[string][]stats.GroupCount{
			repository.ColGender: {{Label: "Laki-laki", Count: 2}, {Label: "Perempuan", Count: 1}},
		},
	}
	h := newDashboardHandler(store)

	rec := httptest.NewRecorder()
	h.GetStats(rec, httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// Every key is present even when its aggregate is empty.
	for _, key := range []string{
		"totalKeluarga", "totalJiwa", "totalSidi", "totalPekerjaAktif",
		"totalKeahlian", "totalBersediaMelayani", "totalProfesional",
		"totalPendidikanAnak", "totalSakitBaru", "totalBerobatRutin",
		"gender", "lingkungan", "rayon", "pendidikan", "kesediaanMelayani",
		"statusUsaha", "penerimaDiakonia", "keahlian", "minat", "aset",
		"sumberAir", "disabilitas", "penyakitKronis", "kendalaUsaha",
		"kebutuhanPelatihan", "kebutuhanUsaha",
	} {
		assert.Contains(t, body, key)
	}

	var gender map[string]int
	require.NoError(t, json.Unmarshal(body["gender"], &gender))
	assert.Equal(t, map[string]int{"Laki-laki": 2, "Perempuan": 1}, gender)

	assert.JSONEq(t, `{}`, string(body["aset"]))
}

func TestGetStats_FilterPassthrough(t *testing.T) {
	store := &stubStats{total: 1}
	h := newDashboardHandler(store)

	rec := httptest.NewRecorder()
	h.GetStats(rec, httptest.NewRequest(http.MethodGet, "/dashboard/stats?zone=3&subzone=A", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, repository.Filter{Lingkungan: "3", Rayon: "A"}, store.lastCount)
}

func TestGetStats_ReadFailureIsOpaque500(t *testing.T) {
	h := newDashboardHandler(&stubStats{failRead: true})

	rec := httptest.NewRecorder()
	h.GetStats(rec, httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to compute dashboard statistics"}`, rec.Body.String())
}
