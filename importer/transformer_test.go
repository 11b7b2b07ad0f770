package importer

import (
	"context"
	"testing"
)

func TestParseIntCell_LenientFormats(t *testing.T) {
	cases := []struct {
		in       string
		expected int
	}{
		{"", 0},
		{"5", 5},
		{" 5 ", 5},
		{"5.0", 5},
		{"10.00", 10},
		{"десять", 0},
	}
	for _, tc := range cases {
		if got := ParseIntCell(tc.in); got != tc.expected {
			t.Fatalf("ParseIntCell(%q) expected %d, got %d", tc.in, tc.expected, got)
		}
	}
}

func TestNormalizeStatus_MapsAliases(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"planned", "planned"},
		{"Запланирована", "planned"},
		{"ПРОВОДИТСЯ", "in_progress"},
		{"завершена", "completed"},
		{"cancelled", "cancelled"},
		{"", "planned"},
		{"что-то", "planned"},
	}
	for _, tc := range cases {
		if got := normalizeStatus(tc.in); got != tc.expected {
			t.Fatalf("normalizeStatus(%q) expected %s, got %s", tc.in, tc.expected, got)
		}
	}
}

func TestTransform_GeneratesNumberWhenBlank(t *testing.T) {
	tr := &Transformer{GenerateNumber: func(context.Context) (string, error) {
		return "PP-2025-06-0042", nil
	}}
	row := &ImportRow{
		ControllingAuthority: "Роспотребнадзор",
		StartDate:            "01.06.2025",
		EndDate:              "2025-06-10",
		PlannedDuration:      "10",
		RowNumber:            2,
	}
	input, err := tr.Transform(context.Background(), row, 7)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if input.InspectionNumber != "PP-2025-06-0042" {
		t.Fatalf("expected generated number, got %s", input.InspectionNumber)
	}
	if input.SmpId != 7 {
		t.Fatalf("expected smp id 7, got %d", input.SmpId)
	}
	if input.StartDate != "2025-06-01" || input.EndDate != "2025-06-10" {
		t.Fatalf("dates not normalized: %s / %s", input.StartDate, input.EndDate)
	}
	if input.Status != "planned" {
		t.Fatalf("expected default status, got %s", input.Status)
	}
}

func TestTransform_KeepsExplicitNumber(t *testing.T) {
	tr := &Transformer{GenerateNumber: func(context.Context) (string, error) {
		t.Fatal("generator must not be called for explicit numbers")
		return "", nil
	}}
	row := &ImportRow{
		InspectionNumber:     "PP-2025-01-0003",
		ControllingAuthority: "МЧС",
		StartDate:            "2025-01-10",
		EndDate:              "2025-01-12",
		PlannedDuration:      "3",
	}
	input, err := tr.Transform(context.Background(), row, 1)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if input.InspectionNumber != "PP-2025-01-0003" {
		t.Fatalf("expected explicit number kept, got %s", input.InspectionNumber)
	}
}

func TestTransform_DurationFallsBackToDateSpan(t *testing.T) {
	tr := &Transformer{GenerateNumber: func(context.Context) (string, error) { return "PP-2025-06-0001", nil }}
	row := &ImportRow{
		ControllingAuthority: "МЧС",
		StartDate:            "2025-06-01",
		EndDate:              "2025-06-10",
	}
	input, err := tr.Transform(context.Background(), row, 1)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if input.PlannedDuration != 10 {
		t.Fatalf("expected inclusive span 10, got %d", input.PlannedDuration)
	}
}
