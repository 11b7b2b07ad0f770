package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/smpregistry/inspections_backend/config"
	"github.com/smpregistry/inspections_backend/models"
	"github.com/smpregistry/inspections_backend/utils"
)

const exportSheet = "Проверки"

var templateHeaders = []string{
	"ID проверки (оставьте пустым для новой)",
	"ID СМП",
	"Наименование СМП*",
	"ИНН СМП*",
	"Адрес",
	"Номер проверки",
	"Контролирующий орган*",
	"Дата начала (ГГГГ-ММ-ДД)*",
	"Дата окончания (ГГГГ-ММ-ДД)*",
	"Длительность (дней)",
	"Статус",
	"Примечания",
	"Дата создания",
	"Дата обновления",
}

// Export carries the same header set so an exported file can be edited
// and fed straight back through the import. The loader ignores the two
// timestamp columns.
var exportHeaders = templateHeaders

type sheetStyles struct {
	header  int
	cell    int
	example int
}

func buildStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	thin := []excelize.Border{
		{Type: "left", Color: "BFBFBF", Style: 1},
		{Type: "right", Color: "BFBFBF", Style: 1},
		{Type: "top", Color: "BFBFBF", Style: 1},
		{Type: "bottom", Color: "BFBFBF", Style: 1},
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return s, err
	}

	s.cell, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return s, err
	}

	s.example, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Color: "808080"},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thin,
	})
	return s, err
}

func writeHeader(f *excelize.File, sheet string, headers []string, styles sheetStyles) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, styles.header); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheet, 1, 40); err != nil {
		return err
	}
	return f.AutoFilter(sheet, fmt.Sprintf("A1:%s", last), nil)
}

// autoWidth sizes each column after the longest value it holds, within
// sane bounds so one long note does not blow the layout up.
func autoWidth(f *excelize.File, sheet string, table [][]string) error {
	widths := map[int]float64{}
	for _, row := range table {
		for i, cell := range row {
			w := float64(len([]rune(cell))) + 4
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i, w := range widths {
		if w < 12 {
			w = 12
		}
		if w > 50 {
			w = 50
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowIndex int, cells []string, style int) error {
	for i, value := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, rowIndex)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(cells), rowIndex)
	if err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func savedWorkbook(f *excelize.File, prefix string) (string, error) {
	dir := config.UploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func exportCells(row *models.InspectionWithSmp) []string {
	duration := ""
	if row.PlannedDuration > 0 {
		duration = strconv.Itoa(row.PlannedDuration)
	}
	smpId := ""
	if row.SmpId != nil {
		smpId = strconv.Itoa(*row.SmpId)
	}
	return []string{
		strconv.Itoa(row.ID),
		smpId,
		utils.DereferencePtr(row.SmpName),
		utils.DereferencePtr(row.SmpInn),
		utils.DereferencePtr(row.SmpAddress),
		row.InspectionNumber,
		row.ControllingAuthority,
		row.StartDate,
		row.EndDate,
		duration,
		string(row.Status),
		utils.DereferencePtr(row.Notes),
		row.CreatedAt.Format("2006-01-02 15:04:05"),
		row.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ExportInspections writes the given records into a styled workbook
// under the upload directory and returns the file path.
func ExportInspections(rows []*models.InspectionWithSmp) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := exportSheet
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return "", err
	}

	styles, err := buildStyles(f)
	if err != nil {
		return "", err
	}
	if err := writeHeader(f, sheet, exportHeaders, styles); err != nil {
		return "", err
	}

	table := [][]string{exportHeaders}
	for i, row := range rows {
		cells := exportCells(row)
		if err := writeRow(f, sheet, i+2, cells, styles.cell); err != nil {
			return "", err
		}
		table = append(table, cells)
	}
	if err := autoWidth(f, sheet, table); err != nil {
		return "", err
	}

	return savedWorkbook(f, "inspections_export")
}

var templateExampleRow = []string{
	"",
	"",
	"ООО \"Ромашка\"",
	"1234567890",
	"г. Москва, ул. Ленина, д. 1",
	"",
	"Роспотребнадзор",
	"2025-03-01",
	"2025-03-10",
	"10",
	"planned",
	"Пример строки, удалите перед загрузкой",
	"",
	"",
}

// GenerateTemplate writes an empty import form with one greyed example
// row and returns the file path.
func GenerateTemplate() (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := exportSheet
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return "", err
	}

	styles, err := buildStyles(f)
	if err != nil {
		return "", err
	}
	if err := writeHeader(f, sheet, templateHeaders, styles); err != nil {
		return "", err
	}
	if err := writeRow(f, sheet, 2, templateExampleRow, styles.example); err != nil {
		return "", err
	}
	if err := autoWidth(f, sheet, [][]string{templateHeaders, templateExampleRow}); err != nil {
		return "", err
	}

	return savedWorkbook(f, "inspections_template")
}
