package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/models"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/stats"
)

// ErrWargaNotFound reports that no row matched the requested id. Handlers
// check for it to tell a missing record apart from a failing store.
var ErrWargaNotFound = errors.New("warga not found")

// WargaRepository is the CRUD surface over the warga table used by the
// registration form and the admin dashboard.
type WargaRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewWargaRepository(db *sql.DB, logger *zap.Logger) *WargaRepository {
	return &WargaRepository{db: db, logger: logger}
}

// ListFilter narrows ListWarga results.
type ListFilter struct {
	Search     string // matches nama or no_kk, case-insensitive
	Status     string
	Lingkungan string
	Limit      int
	Offset     int
}

const wargaColumns = `
	id, nama, COALESCE(no_kk, ''), COALESCE(gender, ''), tanggal_lahir,
	COALESCE(lingkungan, ''), COALESCE(rayon, ''), status,
	COALESCE(pendidikan, ''), COALESCE(pekerjaan, ''),
	COALESCE(kesediaan_melayani, ''), COALESCE(penerima_diakonia, ''),
	COALESCE(punya_usaha, ''), COALESCE(sakit_baru, FALSE), COALESCE(berobat_rutin, FALSE),
	COALESCE(jumlah_jiwa, 0), COALESCE(jumlah_laki, 0), COALESCE(jumlah_perempuan, 0), COALESCE(jumlah_sidi, 0),
	COALESCE(keahlian, ''), COALESCE(minat, ''), COALESCE(aset, ''), COALESCE(sumber_air, ''),
	COALESCE(penyakit_kronis, ''), COALESCE(kendala_usaha, ''),
	COALESCE(kebutuhan_pelatihan, ''), COALESCE(kebutuhan_usaha, ''),
	COALESCE(anggota_profesional, ''), COALESCE(pendidikan_anak, ''),
	COALESCE(disabilitas_fisik, ''), COALESCE(disabilitas_intelektual, ''),
	COALESCE(disabilitas_mental, ''), COALESCE(disabilitas_sensorik, ''),
	created_at, updated_at`

func scanWarga(scan func(dest ...any) error) (*models.Warga, error) {
	var w models.Warga
	var tanggalLahir sql.NullTime
	var keahlian, minat, aset, sumberAir, penyakitKronis, kendalaUsaha string
	var kebutuhanPelatihan, kebutuhanUsaha, anggotaProfesional, pendidikanAnak string
	var disFisik, disIntelektual, disMental, disSensorik string

	err := scan(
		&w.ID, &w.Nama, &w.NoKK, &w.Gender, &tanggalLahir,
		&w.Lingkungan, &w.Rayon, &w.Status,
		&w.Pendidikan, &w.Pekerjaan,
		&w.KesediaanMelayani, &w.PenerimaDiakonia,
		&w.PunyaUsaha, &w.SakitBaru, &w.BerobatRutin,
		&w.JumlahJiwa, &w.JumlahLaki, &w.JumlahPerempuan, &w.JumlahSidi,
		&keahlian, &minat, &aset, &sumberAir,
		&penyakitKronis, &kendalaUsaha,
		&kebutuhanPelatihan, &kebutuhanUsaha,
		&anggotaProfesional, &pendidikanAnak,
		&disFisik, &disIntelektual,
		&disMental, &disSensorik,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tanggalLahir.Valid {
		w.TanggalLahir = &tanggalLahir.Time
	}

	// List fields are stored as JSON-ish text blobs; decode tolerantly.
	w.Keahlian = stats.DecodeList(keahlian)
	w.Minat = stats.DecodeList(minat)
	w.Aset = stats.DecodeList(aset)
	w.SumberAir = stats.DecodeList(sumberAir)
	w.PenyakitKronis = stats.DecodeList(penyakitKronis)
	w.KendalaUsaha = stats.DecodeList(kendalaUsaha)
	w.KebutuhanPelatihan = stats.DecodeList(kebutuhanPelatihan)
	w.KebutuhanUsaha = stats.DecodeList(kebutuhanUsaha)
	w.AnggotaProfesional = stats.DecodeList(anggotaProfesional)
	w.PendidikanAnak = stats.DecodeList(pendidikanAnak)
	w.DisabilitasFisik = stats.DecodeList(disFisik)
	w.DisabilitasIntelektual = stats.DecodeList(disIntelektual)
	w.DisabilitasMental = stats.DecodeList(disMental)
	w.DisabilitasSensorik = stats.DecodeList(disSensorik)

	return &w, nil
}

// encodeList stores a tag list as a JSON array; empty lists store as "[]"
// so new rows never reintroduce the bare-string legacy shape.
func encodeList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// GetWarga fetches one household by id.
func (r *WargaRepository) GetWarga(ctx context.Context, id int64) (*models.Warga, error) {
	query := "SELECT " + wargaColumns + " FROM warga WHERE id = $1"

	w, err := scanWarga(func(dest ...any) error {
		return r.db.QueryRowContext(ctx, query, id).Scan(dest...)
	})
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %d", ErrWargaNotFound, id)
		}
		return nil, fmt.Errorf("failed to get warga: %w", err)
	}
	return w, nil
}

// ListWarga returns matching households plus the unpaginated total.
func (r *WargaRepository) ListWarga(ctx context.Context, f ListFilter) ([]*models.Warga, int, error) {
	var conds []string
	var args []any
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(nama ILIKE $%d OR no_kk ILIKE $%d)", len(args), len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Lingkungan != "" {
		args = append(args, f.Lingkungan)
		conds = append(conds, fmt.Sprintf("lingkungan = $%d", len(args)))
	}
	where := whereClause(conds)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM warga"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count warga list: %w", err)
	}

	query := "SELECT " + wargaColumns + " FROM warga" + where + " ORDER BY nama, id"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list warga: %w", err)
	}
	defer rows.Close()

	var out []*models.Warga
	for rows.Next() {
		w, err := scanWarga(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan warga: %w", err)
		}
		out = append(out, w)
	}
	return out, total, rows.Err()
}

// CreateWarga inserts a household and returns its id. Status must be set
// by the caller (PENDING for form submissions, VALIDATED for admin input).
func (r *WargaRepository) CreateWarga(ctx context.Context, w *models.Warga) (int64, error) {
	query := `
		INSERT INTO warga (
			nama, no_kk, gender, tanggal_lahir, lingkungan, rayon, status,
			pendidikan, pekerjaan, kesediaan_melayani, penerima_diakonia,
			punya_usaha, sakit_baru, berobat_rutin,
			jumlah_jiwa, jumlah_laki, jumlah_perempuan, jumlah_sidi,
			keahlian, minat, aset, sumber_air,
			penyakit_kronis, kendala_usaha, kebutuhan_pelatihan, kebutuhan_usaha,
			anggota_profesional, pendidikan_anak,
			disabilitas_fisik, disabilitas_intelektual, disabilitas_mental, disabilitas_sensorik
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14,
			$15, $16, $17, $18,
			$19, $20, $21, $22,
			$23, $24, $25, $26,
			$27, $28,
			$29, $30, $31, $32
		)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		w.Nama, w.NoKK, w.Gender, w.TanggalLahir, w.Lingkungan, w.Rayon, w.Status,
		w.Pendidikan, w.Pekerjaan, w.KesediaanMelayani, w.PenerimaDiakonia,
		w.PunyaUsaha, w.SakitBaru, w.BerobatRutin,
		w.JumlahJiwa, w.JumlahLaki, w.JumlahPerempuan, w.JumlahSidi,
		encodeList(w.Keahlian), encodeList(w.Minat), encodeList(w.Aset), encodeList(w.SumberAir),
		encodeList(w.PenyakitKronis), encodeList(w.KendalaUsaha),
		encodeList(w.KebutuhanPelatihan), encodeList(w.KebutuhanUsaha),
		encodeList(w.AnggotaProfesional), encodeList(w.PendidikanAnak),
		encodeList(w.DisabilitasFisik), encodeList(w.DisabilitasIntelektual),
		encodeList(w.DisabilitasMental), encodeList(w.DisabilitasSensorik),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create warga: %w", err)
	}
	return id, nil
}

// UpdateWarga rewrites the full record for id.
func (r *WargaRepository) UpdateWarga(ctx context.Context, id int64, w *models.Warga) error {
	query := `
		UPDATE warga SET
			nama = $2, no_kk = $3, gender = $4, tanggal_lahir = $5,
			lingkungan = $6, rayon = $7, status = $8,
			pendidikan = $9, pekerjaan = $10, kesediaan_melayani = $11,
			penerima_diakonia = $12, punya_usaha = $13,
			sakit_baru = $14, berobat_rutin = $15,
			jumlah_jiwa = $16, jumlah_laki = $17, jumlah_perempuan = $18, jumlah_sidi = $19,
			keahlian = $20, minat = $21, aset = $22, sumber_air = $23,
			penyakit_kronis = $24, kendala_usaha = $25,
			kebutuhan_pelatihan = $26, kebutuhan_usaha = $27,
			anggota_profesional = $28, pendidikan_anak = $29,
			disabilitas_fisik = $30, disabilitas_intelektual = $31,
			disabilitas_mental = $32, disabilitas_sensorik = $33,
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		id,
		w.Nama, w.NoKK, w.Gender, w.TanggalLahir,
		w.Lingkungan, w.Rayon, w.Status,
		w.Pendidikan, w.Pekerjaan, w.KesediaanMelayani,
		w.PenerimaDiakonia, w.PunyaUsaha,
		w.SakitBaru, w.BerobatRutin,
		w.JumlahJiwa, w.JumlahLaki, w.JumlahPerempuan, w.JumlahSidi,
		encodeList(w.Keahlian), encodeList(w.Minat), encodeList(w.Aset), encodeList(w.SumberAir),
		encodeList(w.PenyakitKronis), encodeList(w.KendalaUsaha),
		encodeList(w.KebutuhanPelatihan), encodeList(w.KebutuhanUsaha),
		encodeList(w.AnggotaProfesional), encodeList(w.PendidikanAnak),
		encodeList(w.DisabilitasFisik), encodeList(w.DisabilitasIntelektual),
		encodeList(w.DisabilitasMental), encodeList(w.DisabilitasSensorik),
	)
	if err != nil {
		return fmt.Errorf("failed to update warga: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrWargaNotFound, id)
	}
	return nil
}

// ValidateWarga moves a PENDING record to VALIDATED.
func (r *WargaRepository) ValidateWarga(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE warga SET status = $2, updated_at = NOW() WHERE id = $1",
		id, models.StatusValidated,
	)
	if err != nil {
		return fmt.Errorf("failed to validate warga: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrWargaNotFound, id)
	}
	return nil
}

// DeleteWarga hard-deletes a record. There is no archival state.
func (r *WargaRepository) DeleteWarga(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM warga WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete warga: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrWargaNotFound, id)
	}
	return nil
}
