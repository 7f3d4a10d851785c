package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/models"
)

func setupWargaRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *WargaRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	repo := NewWargaRepository(db, zap.NewNop())
	return db, mock, repo
}

var wargaScanCols = []string{
	"id", "nama", "no_kk", "gender", "tanggal_lahir",
	"lingkungan", "rayon", "status",
	"pendidikan", "pekerjaan",
	"kesediaan_melayani", "penerima_diakonia",
	"punya_usaha", "sakit_baru", "berobat_rutin",
	"jumlah_jiwa", "jumlah_laki", "jumlah_perempuan", "jumlah_sidi",
	"keahlian", "minat", "aset", "sumber_air",
	"penyakit_kronis", "kendala_usaha",
	"kebutuhan_pelatihan", "kebutuhan_usaha",
	"anggota_profesional", "pendidikan_anak",
	"disabilitas_fisik", "disabilitas_intelektual",
	"disabilitas_mental", "disabilitas_sensorik",
	"created_at", "updated_at",
}

func wargaRow(id int64, nama string) []driverValue {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	return []driverValue{
		id, nama, "3201", "Laki-laki", nil,
		"Lingkungan 3", "Rayon A", models.StatusValidated,
		"SMA", "Petani",
		"Bersedia", "Tidak",
		"Ya", true, false,
		4, 2, 2, 3,
		`["Bertani"]`, "[]", `["Motor","TV"]`, `["Sumur"]`,
		"[]", "[]",
		"[]", "[]",
		"[]", `["SD","SMP"]`,
		"[]", "[]",
		"[]", "[]",
		now, now,
	}
}

type driverValue = driver.Value

func addWargaRow(rows *sqlmock.Rows, vals []driverValue) *sqlmock.Rows {
	return rows.AddRow(vals...)
}

func TestGetWarga_Success(t *testing.T) {
	db, mock, repo := setupWargaRepo(t)
	defer db.Close()

	rows := addWargaRow(sqlmock.NewRows(wargaScanCols), wargaRow(12, "Budi Santoso"))
	mock.ExpectQuery(`SELECT`).WithArgs(int64(12)).WillReturnRows(rows)

	w, err := repo.GetWarga(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), w.ID)
	assert.Equal(t, "Budi Santoso", w.Nama)
	assert.Equal(t, []string{"Motor", "TV"}, w.Aset)
	assert.Equal(t, []string{"SD", "SMP"}, w.PendidikanAnak)
	assert.Empty(t, w.Minat)
	assert.Nil(t, w.TanggalLahir)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWarga_NotFound(t *testing.T) {
	db, mock, repo := setupWargaRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetWarga(context.Background(), 99)
	assert.ErrorIs(t, err, ErrWargaNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWarga_QueryErrorIsNotNotFound(t *testing.T) {
	db, mock, repo := setupWargaRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs(int64(99)).WillReturnError(errors.New("connection reset"))

	_, err := repo.GetWarga(context.Background(), 99)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrWargaNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWarga_WithSearch(t *testing.T) {
	db, mock, repo := setupWargaRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("%Budi%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := addWargaRow(sqlmock.NewRows(wargaScanCols), wargaRow(12, "Budi Santoso"))
	mock.ExpectQuery(`SELECT`).
		WithArgs("%Budi%", 25, 0).
		WillReturnRows(rows)

	items, total, err := repo.ListWarga(context.Background(), ListFilter{Search: "Budi", Limit: 25})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Budi Santoso", items[0].Nama)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWarga_EncodesLists(t *testing.T) {
	db, mock, repo := setupWargaRepo(t)
	defer db.Close()

	w := &models.Warga{
		Nama:   "Siti Aminah",
		Status: models.StatusPending,
		Aset:   []string{"Motor"},
	}

	mock.ExpectQuery(`INSERT INTO warga`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.CreateWarga(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateWarga(t *testing.T) {
	db, mock, repo := setupWargaRepo(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE warga SET status`).
		WithArgs(int64(5), models.StatusValidated).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ValidateWarga(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateWarga_NotFound(t *testing.T) {
	db, mock, repo := setupWargaRepo(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE warga SET status`).
		WithArgs(int64(5), models.StatusValidated).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ValidateWarga(context.Background(), 5)
	assert.ErrorIs(t, err, ErrWargaNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWarga(t *testing.T) {
	db, mock, repo := setupWargaRepo(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM warga`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteWarga(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEncodeList(t *testing.T) {
	assert.Equal(t, "[]", encodeList(nil))
	assert.Equal(t, "[]", encodeList([]string{}))
	assert.Equal(t, `["Motor","TV"]`, encodeList([]string{"Motor", "TV"}))
}
