package httpapi

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/models"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/repository"
)

func setupWargaHandler(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *WargaHandler) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	repo := repository.NewWargaRepository(db, zap.NewNop())
	return db, mock, NewWargaHandler(repo, zap.NewNop())
}

func TestGenerateWargaWorkbook(t *testing.T) {
	items := []*models.Warga{
		{
			Nama:       "Budi Santoso",
			NoKK:       "3201",
			Gender:     "Laki-laki",
			Lingkungan: "Lingkungan 3",
			Rayon:      "Rayon A",
			Status:     models.StatusValidated,
			JumlahJiwa: 4,
		},
		{
			Nama:   "Siti Aminah",
			Status: models.StatusPending,
		},
	}

	data, err := generateWargaWorkbook(items)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(wargaSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, WargaExportHeader, rows[0][:len(WargaExportHeader)])
	assert.Equal(t, "Budi Santoso", rows[1][0])
	assert.Equal(t, "4", rows[1][9])
	assert.Equal(t, "Siti Aminah", rows[2][0])
}

func TestWargaFromRow(t *testing.T) {
	w := wargaFromRow([]string{
		" Budi ", "3201", "Laki-laki", "Lingkungan 3", "Rayon A",
		"ignored", "SMA", "Petani", "Bersedia", "4", "2", "2", "3",
	})
	assert.Equal(t, "Budi", w.Nama)
	assert.Equal(t, models.StatusValidated, w.Status)
	assert.Equal(t, 4, w.JumlahJiwa)
	assert.Equal(t, 3, w.JumlahSidi)

	// Short rows fill missing cells with zero values.
	w = wargaFromRow([]string{"Siti"})
	assert.Equal(t, "Siti", w.Nama)
	assert.Equal(t, 0, w.JumlahJiwa)
}

func importRequest(t *testing.T, workbook []byte) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "warga.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/api/v1/warga/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImport_MixedRows(t *testing.T) {
	db, mock, h := setupWargaHandler(t)
	defer db.Close()

	workbook, err := generateWargaWorkbook([]*models.Warga{
		{Nama: "Budi Santoso", JumlahJiwa: 4},
		{Nama: ""},
	})
	require.NoError(t, err)

	// Only the named row reaches the store.
	mock.ExpectQuery(`INSERT INTO warga`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	rec := httptest.NewRecorder()
	h.Import(rec, importRequest(t, workbook))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Imported int      `json:"imported"`
		Failed   int      `json:"failed"`
		Errors   []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Imported)
	assert.Equal(t, 1, body.Failed)
	require.Len(t, body.Errors, 1)
	assert.Contains(t, body.Errors[0], "nama is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImport_InvalidFile(t *testing.T) {
	db, _, h := setupWargaHandler(t)
	defer db.Close()

	rec := httptest.NewRecorder()
	h.Import(rec, importRequest(t, []byte("not an xlsx")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid xlsx file"}`, rec.Body.String())
}
