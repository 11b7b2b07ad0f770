package importer

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/smpregistry/inspections_backend/models"
)

func strPtr(s string) *string { return &s }

func TestGenerateTemplate_RoundTripsThroughLoader(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	path, err := GenerateTemplate()
	if err != nil {
		t.Fatalf("GenerateTemplate error: %v", err)
	}
	if !strings.HasSuffix(path, ".xlsx") {
		t.Fatalf("expected xlsx path, got %s", path)
	}

	rows, err := LoadRows(path)
	if err != nil {
		t.Fatalf("template does not load back: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected the example row only, got %d rows", len(rows))
	}
	if rows[0].SmpInn != "1234567890" {
		t.Fatalf("example row mismapped: %+v", rows[0])
	}
}

func TestExportInspections_WritesHeaderAndData(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	smpId := 3
	data := []*models.InspectionWithSmp{
		{
			PlannedInspection: models.PlannedInspection{
				ID:                   1,
				SmpId:                &smpId,
				InspectionNumber:     "PP-2025-06-0001",
				ControllingAuthority: "Роспотребнадзор",
				StartDate:            "2025-06-01",
				EndDate:              "2025-06-10",
				PlannedDuration:      10,
				Status:               models.InspectionStatusPlanned,
			},
			SmpName: strPtr("ООО Тест"),
			SmpInn:  strPtr("7700000001"),
		},
	}

	path, err := ExportInspections(data)
	if err != nil {
		t.Fatalf("ExportInspections error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	table, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(table))
	}
	if normalizeHeader(table[0][6]) != colControllingAuthority {
		t.Fatalf("header layout changed: %v", table[0])
	}
	if table[1][5] != "PP-2025-06-0001" {
		t.Fatalf("number cell mismatch: %v", table[1])
	}

	// An export must be importable again.
	rows, err := LoadRows(path)
	if err != nil {
		t.Fatalf("export does not load back: %v", err)
	}
	if len(rows) != 1 || rows[0].InspectionNumber != "PP-2025-06-0001" {
		t.Fatalf("round trip failed: %+v", rows)
	}
}
