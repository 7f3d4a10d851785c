package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/models"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/repository"
)

const wargaSheetName = "Warga"

// WargaExportHeader is the spreadsheet column order for export and the
// expected order for bulk import.
var WargaExportHeader = []string{
	"Nama",
	"No KK",
	"Gender",
	"Lingkungan",
	"Rayon",
	"Status",
	"Pendidikan",
	"Pekerjaan",
	"Kesediaan Melayani",
	"Jumlah Jiwa",
	"Jumlah Laki-laki",
	"Jumlah Perempuan",
	"Jumlah Sidi",
}

// Export handles GET /admin/api/v1/warga/export: the full record set as
// an xlsx workbook.
func (h *WargaHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	items, _, err := h.repo.ListWarga(r.Context(), repository.ListFilter{})
	if err != nil {
		h.logger.Error("Failed to load warga for export", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to export warga")
		return
	}

	data, err := generateWargaWorkbook(items)
	if err != nil {
		h.logger.Error("Failed to build export workbook", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to export warga")
		return
	}

	filename := fmt.Sprintf("warga-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}

func generateWargaWorkbook(items []*models.Warga) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(wargaSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range WargaExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(wargaSheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(wargaSheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, warga := range items {
		values := []any{
			warga.Nama,
			warga.NoKK,
			warga.Gender,
			warga.Lingkungan,
			warga.Rayon,
			warga.Status,
			warga.Pendidikan,
			warga.Pekerjaan,
			warga.KesediaanMelayani,
			warga.JumlahJiwa,
			warga.JumlahLaki,
			warga.JumlahPerempuan,
			warga.JumlahSidi,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(wargaSheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Import handles POST /admin/api/v1/warga/import: bulk insert from an
// uploaded xlsx in the export column order. Imported records are
// VALIDATED (admin-curated input, same as manual creation).
func (h *WargaHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(16 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid xlsx file")
		return
	}
	defer f.Close()

	sheet := wargaSheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read sheet")
		return
	}
	if len(rows) < 2 {
		writeError(w, http.StatusBadRequest, "no data rows")
		return
	}

	imported := 0
	var failures []string
	for i, row := range rows[1:] {
		warga := wargaFromRow(row)
		if strings.TrimSpace(warga.Nama) == "" {
			failures = append(failures, fmt.Sprintf("row %d: nama is required", i+2))
			continue
		}
		if _, err := h.repo.CreateWarga(r.Context(), warga); err != nil {
			h.logger.Error("Failed to import warga row",
				zap.Int("row", i+2),
				zap.Error(err),
			)
			failures = append(failures, fmt.Sprintf("row %d: insert failed", i+2))
			continue
		}
		imported++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"imported": imported,
		"failed":   len(failures),
		"errors":   failures,
	})
}

func wargaFromRow(row []string) *models.Warga {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	return &models.Warga{
		Nama:              cell(0),
		NoKK:              cell(1),
		Gender:            cell(2),
		Lingkungan:        cell(3),
		Rayon:             cell(4),
		Status:            models.StatusValidated,
		Pendidikan:        cell(6),
		Pekerjaan:         cell(7),
		KesediaanMelayani: cell(8),
		JumlahJiwa:        parseInt(cell(9), 0),
		JumlahLaki:        parseInt(cell(10), 0),
		JumlahPerempuan:   parseInt(cell(11), 0),
		JumlahSidi:        parseInt(cell(12), 0),
	}
}
