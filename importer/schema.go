package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportRow is one data row of an upload file, addressed by column name
// rather than position. All cells stay strings until the transformer
// runs; RowNumber is the 1-based row in the sheet as the user sees it.
type ImportRow struct {
	ID                   string
	SmpId                string
	SmpName              string
	SmpInn               string
	Address              string
	InspectionNumber     string
	ControllingAuthority string
	StartDate            string
	EndDate              string
	PlannedDuration      string
	Status               string
	Notes                string

	RowNumber int
}

// Canonical header names after normalization.
const (
	colID                   = "id проверки"
	colSmpId                = "id смп"
	colSmpName              = "наименование смп"
	colSmpInn               = "инн смп"
	colAddress              = "адрес"
	colInspectionNumber     = "номер проверки"
	colControllingAuthority = "контролирующий орган"
	colStartDate            = "дата начала"
	colEndDate              = "дата окончания"
	colPlannedDuration      = "длительность"
	colStatus               = "статус"
	colNotes                = "примечания"
)

var requiredColumns = []string{
	colSmpName,
	colSmpInn,
	colControllingAuthority,
	colStartDate,
	colEndDate,
}

// normalizeHeader folds a header cell down to its canonical name:
// "Дата начала (ГГГГ-ММ-ДД)*" becomes "дата начала".
func normalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	if i := strings.Index(h, "("); i >= 0 {
		h = h[:i]
	}
	h = strings.TrimSuffix(strings.TrimSpace(h), "*")
	return strings.ToLower(strings.TrimSpace(h))
}

type columnMap map[string]int

func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{}
	for i, cell := range header {
		name := normalizeHeader(cell)
		if name == "" {
			continue
		}
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("в файле отсутствует обязательная колонка «%s»", required)
		}
	}
	return cols, nil
}

func (c columnMap) cell(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (c columnMap) row(cells []string, rowNumber int) *ImportRow {
	return &ImportRow{
		ID:                   c.cell(cells, colID),
		SmpId:                c.cell(cells, colSmpId),
		SmpName:              c.cell(cells, colSmpName),
		SmpInn:               c.cell(cells, colSmpInn),
		Address:              c.cell(cells, colAddress),
		InspectionNumber:     c.cell(cells, colInspectionNumber),
		ControllingAuthority: c.cell(cells, colControllingAuthority),
		StartDate:            c.cell(cells, colStartDate),
		EndDate:              c.cell(cells, colEndDate),
		PlannedDuration:      c.cell(cells, colPlannedDuration),
		Status:               c.cell(cells, colStatus),
		Notes:                c.cell(cells, colNotes),
		RowNumber:            rowNumber,
	}
}

func isEmptyRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// LoadRows reads an upload file into import rows. The extension decides
// the reader: .xlsx/.xls through excelize, .csv through encoding/csv.
func LoadRows(path string) ([]*ImportRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCsvRows(path)
	case ".xlsx", ".xls":
		return loadExcelRows(path)
	default:
		return nil, fmt.Errorf("неподдерживаемый формат файла «%s»", filepath.Ext(path))
	}
}

func loadExcelRows(path string) ([]*ImportRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rawRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return rowsFromTable(rawRows)
}

func loadCsvRows(path string) ([]*ImportRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rawRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("не удалось разобрать CSV: %w", err)
	}
	return rowsFromTable(rawRows)
}

func rowsFromTable(rawRows [][]string) ([]*ImportRow, error) {
	if len(rawRows) == 0 {
		return nil, fmt.Errorf("файл не содержит строк")
	}

	cols, err := mapColumns(rawRows[0])
	if err != nil {
		return nil, err
	}

	rows := make([]*ImportRow, 0, len(rawRows)-1)
	for i, cells := range rawRows[1:] {
		if isEmptyRow(cells) {
			continue
		}
		rows = append(rows, cols.row(cells, i+2))
	}
	return rows, nil
}
