package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/repository"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/stats"
)

// topN bounds the long-tail distributions (business issues, training
// needs, business needs, chronic conditions).
const topN = 5

// Occupation values that do not count as an active occupation. NULL
// collapses to "" in the store, so the empty string is excluded here.
var pekerjaanNonAktif = []string{"", "Tidak Bekerja", "Pensiunan"}

const kesediaanBersedia = "Bersedia"

// StatsStore is the aggregate read capability the dashboard consumes.
type StatsStore interface {
	CountAll(ctx context.Context, f repository.Filter) (int, error)
	GroupCount(ctx context.Context, column string, f repository.Filter) ([]stats.GroupCount, error)
	SumColumns(ctx context.Context, columns []string, f repository.Filter) ([]int, error)
	CountWhereNotIn(ctx context.Context, column string, excluded []string, f repository.Filter) (int, error)
	CountWhereEquals(ctx context.Context, column string, value string, f repository.Filter) (int, error)
	CountWhereTrue(ctx context.Context, column string, f repository.Filter) (int, error)
	ProjectColumns(ctx context.Context, columns []string, f repository.Filter) ([][]string, error)
}

// DashboardService computes the dashboard snapshot: it fans the fixed set
// of aggregate reads out concurrently, folds the results into
// distributions, and assembles the response payload. Every request
// recomputes from scratch; nothing is cached across requests.
type DashboardService struct {
	store  StatsStore
	logger *zap.Logger
}

func NewDashboardService(store StatsStore, logger *zap.Logger) *DashboardService {
	return &DashboardService{store: store, logger: logger}
}

// projectionColumns lists the encoded-list columns fetched row-by-row.
// The store cannot aggregate these; they are decoded in the builder.
var projectionColumns = []string{
	repository.ColKeahlian,
	repository.ColMinat,
	repository.ColAset,
	repository.ColSumberAir,
	repository.ColPenyakitKronis,
	repository.ColKendalaUsaha,
	repository.ColKebutuhanPelatihan,
	repository.ColKebutuhanUsaha,
	repository.ColAnggotaProfesional,
	repository.ColPendidikanAnak,
	repository.ColDisabilitasFisik,
	repository.ColDisabilitasIntelektual,
	repository.ColDisabilitasMental,
	repository.ColDisabilitasSensorik,
}

// Indexes into projectionColumns.
const (
	projKeahlian = iota
	projMinat
	projAset
	projSumberAir
	projPenyakitKronis
	projKendalaUsaha
	projKebutuhanPelatihan
	projKebutuhanUsaha
	projAnggotaProfesional
	projPendidikanAnak
	projDisabilitasFisik
	projDisabilitasIntelektual
	projDisabilitasMental
	projDisabilitasSensorik
)

// bundle holds the raw results of one fan-out. Each field is written by
// exactly one read goroutine.
type bundle struct {
	totalKeluarga int
	globalSums    []int // jumlah_jiwa, jumlah_sidi (unfiltered, see gather)
	genderSums    []int // jumlah_laki, jumlah_perempuan
	genderHead    []stats.GroupCount
	lingkungan    []stats.GroupCount
	rayon         []stats.GroupCount
	pendidikan    []stats.GroupCount
	kesediaan     []stats.GroupCount
	punyaUsaha    []stats.GroupCount
	diakonia      []stats.GroupCount
	pekerjaAktif  int
	bersedia      int
	sakitBaru     int
	berobatRutin  int
	projection    [][]string
}

// Snapshot runs the full aggregation for the given locality filter.
// All reads must succeed; the first failure cancels the rest and fails
// the whole snapshot. Reads observe live data, so a write landing
// mid-fan-out may be visible to some reads and not others.
func (s *DashboardService) Snapshot(ctx context.Context, f repository.Filter) (*stats.Snapshot, error) {
	b, err := s.gather(ctx, f)
	if err != nil {
		return nil, err
	}
	return assemble(b), nil
}

func (s *DashboardService) gather(ctx context.Context, f repository.Filter) (*bundle, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b := &bundle{}
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	run := func(name string, fn func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", name, err)
					cancel()
				}
				mu.Unlock()
			}
		}()
	}

	run("count_keluarga", func(ctx context.Context) error {
		n, err := s.store.CountAll(ctx, f)
		b.totalKeluarga = n
		return err
	})
	// jumlah_jiwa/jumlah_sidi are per-household totals unaffected by the
	// viewing scope: these two sums are always computed without the
	// locality filter.
	run("sum_global", func(ctx context.Context) error {
		sums, err := s.store.SumColumns(ctx,
			[]string{repository.ColJumlahJiwa, repository.ColJumlahSidi}, repository.Filter{})
		b.globalSums = sums
		return err
	})
	run("sum_gender", func(ctx context.Context) error {
		sums, err := s.store.SumColumns(ctx,
			[]string{repository.ColJumlahLaki, repository.ColJumlahPerempuan}, f)
		b.genderSums = sums
		return err
	})
	run("group_gender_kepala", func(ctx context.Context) error {
		g, err := s.store.GroupCount(ctx, repository.ColGender, f)
		b.genderHead = g
		return err
	})
	run("group_lingkungan", func(ctx context.Context) error {
		g, err := s.store.GroupCount(ctx, repository.ColLingkungan, f)
		b.lingkungan = g
		return err
	})
	run("group_rayon", func(ctx context.Context) error {
		g, err := s.store.GroupCount(ctx, repository.ColRayon, f)
		b.rayon = g
		return err
	})
	run("group_pendidikan", func(ctx context.Context) error {
		g, err := s.store.GroupCount(ctx, repository.ColPendidikan, f)
		b.pendidikan = g
		return err
	})
	run("group_kesediaan", func(ctx context.Context) error {
		g, err := s.store.GroupCount(ctx, repository.ColKesediaan, f)
		b.kesediaan = g
		return err
	})
	run("group_punya_usaha", func(ctx context.Context) error {
		g, err := s.store.GroupCount(ctx, repository.ColPunyaUsaha, f)
		b.punyaUsaha = g
		return err
	})
	run("group_diakonia", func(ctx context.Context) error {
		g, err := s.store.GroupCount(ctx, repository.ColPenerimaDiakonia, f)
		b.diakonia = g
		return err
	})
	run("count_pekerja_aktif", func(ctx context.Context) error {
		n, err := s.store.CountWhereNotIn(ctx, repository.ColPekerjaan, pekerjaanNonAktif, f)
		b.pekerjaAktif = n
		return err
	})
	run("count_bersedia", func(ctx context.Context) error {
		n, err := s.store.CountWhereEquals(ctx, repository.ColKesediaan, kesediaanBersedia, f)
		b.bersedia = n
		return err
	})
	run("count_sakit_baru", func(ctx context.Context) error {
		n, err := s.store.CountWhereTrue(ctx, repository.ColSakitBaru, f)
		b.sakitBaru = n
		return err
	})
	run("count_berobat_rutin", func(ctx context.Context) error {
		n, err := s.store.CountWhereTrue(ctx, repository.ColBerobatRutin, f)
		b.berobatRutin = n
		return err
	})
	run("project_lists", func(ctx context.Context) error {
		rows, err := s.store.ProjectColumns(ctx, projectionColumns, f)
		b.projection = rows
		return err
	})

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return b, nil
}

// column extracts one projected column across all rows.
func column(rows [][]string, idx int) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if idx < len(row) {
			out = append(out, row[idx])
		}
	}
	return out
}

func assemble(b *bundle) *stats.Snapshot {
	// Gender prefers the member-by-gender counters; rows collected before
	// those counters existed fall back to head-of-household gender.
	genderPrimary := stats.NewDistribution()
	if len(b.genderSums) == 2 {
		genderPrimary.AddN("Laki-laki", b.genderSums[0])
		genderPrimary.AddN("Perempuan", b.genderSums[1])
	}
	gender := stats.FallbackCounts{
		Name:      "gender",
		Primary:   genderPrimary,
		Secondary: stats.BuildGrouped(b.genderHead, nil),
	}.Resolve()

	sumJiwa, sumSidi := 0, 0
	if len(b.globalSums) == 2 {
		sumJiwa, sumSidi = b.globalSums[0], b.globalSums[1]
	}
	totalJiwa := stats.FallbackTotal{
		Name:      "totalJiwa",
		Primary:   sumJiwa,
		Secondary: b.totalKeluarga,
	}.Resolve()

	keahlianVals := column(b.projection, projKeahlian)

	disabilitas := stats.NewDistribution()
	disabilitas.AddN(stats.DisabilitasFisik, stats.CountPresence(column(b.projection, projDisabilitasFisik)))
	disabilitas.AddN(stats.DisabilitasIntelektual, stats.CountPresence(column(b.projection, projDisabilitasIntelektual)))
	disabilitas.AddN(stats.DisabilitasMental, stats.CountPresence(column(b.projection, projDisabilitasMental)))
	disabilitas.AddN(stats.DisabilitasSensorik, stats.CountPresence(column(b.projection, projDisabilitasSensorik)))

	return &stats.Snapshot{
		TotalKeluarga:         b.totalKeluarga,
		TotalJiwa:             totalJiwa,
		TotalSidi:             sumSidi,
		TotalPekerjaAktif:     b.pekerjaAktif,
		TotalKeahlian:         stats.CountPresence(keahlianVals),
		TotalBersediaMelayani: b.bersedia,
		TotalProfesional:      stats.CountElements(column(b.projection, projAnggotaProfesional)),
		TotalPendidikanAnak:   stats.CountElements(column(b.projection, projPendidikanAnak)),
		TotalSakitBaru:        b.sakitBaru,
		TotalBerobatRutin:     b.berobatRutin,

		Gender:            gender,
		Lingkungan:        stats.BuildGrouped(b.lingkungan, stats.NormalizeZone),
		Rayon:             stats.BuildGrouped(b.rayon, stats.NormalizeZone),
		Pendidikan:        stats.BuildGrouped(b.pendidikan, nil),
		KesediaanMelayani: stats.BuildGrouped(b.kesediaan, nil),
		StatusUsaha:       stats.BuildGrouped(b.punyaUsaha, nil),
		PenerimaDiakonia:  stats.BuildGrouped(b.diakonia, nil),
		Keahlian:          stats.BuildListCounts(keahlianVals),
		Minat:             stats.BuildListCounts(column(b.projection, projMinat)),
		Aset:              stats.BuildListCounts(column(b.projection, projAset)),
		SumberAir:         stats.BuildListCounts(column(b.projection, projSumberAir)),
		Disabilitas:       disabilitas,

		PenyakitKronis:     stats.BuildListCounts(column(b.projection, projPenyakitKronis)).TopN(topN),
		KendalaUsaha:       stats.BuildListCounts(column(b.projection, projKendalaUsaha)).TopN(topN),
		KebutuhanPelatihan: stats.BuildListCounts(column(b.projection, projKebutuhanPelatihan)).TopN(topN),
		KebutuhanUsaha:     stats.BuildListCounts(column(b.projection, projKebutuhanUsaha)).TopN(topN),
	}
}
