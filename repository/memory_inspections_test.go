package repository

import (
	"context"
	"testing"

	"github.com/smpregistry/inspections_backend/models"
)

func seedSearchFixture(t *testing.T) *MemoryInspectionRepository {
	t.Helper()
	smps := NewMemorySmpRepository()
	repo := NewMemoryInspectionRepository(smps)
	ctx := context.Background()

	romashka, err := smps.Create(ctx, &models.NewSmp{Name: "ООО Ромашка", Inn: "7701234567"})
	if err != nil {
		t.Fatalf("seed smp: %v", err)
	}
	vasilek, err := smps.Create(ctx, &models.NewSmp{Name: "АО Василёк", Inn: "5049876543"})
	if err != nil {
		t.Fatalf("seed smp: %v", err)
	}

	inputs := []*models.NewPlannedInspection{
		{
			SmpId:                romashka.ID,
			InspectionNumber:     "PP-2025-06-0001",
			ControllingAuthority: "Роспотребнадзор",
			StartDate:            "2025-06-01",
			EndDate:              "2025-06-10",
			PlannedDuration:      10,
			Status:               "planned",
		},
		{
			SmpId:                vasilek.ID,
			InspectionNumber:     "XX-77",
			ControllingAuthority: "МЧС России",
			StartDate:            "2025-07-01",
			EndDate:              "2025-07-05",
			PlannedDuration:      5,
			Status:               "completed",
		},
	}
	for i, input := range inputs {
		_, fieldErrs, err := repo.Create(ctx, input)
		if err != nil || len(fieldErrs) > 0 {
			t.Fatalf("seed inspection %d: %v %v", i, err, fieldErrs)
		}
	}
	return repo
}

func searchNumbers(t *testing.T, repo *MemoryInspectionRepository, filters models.InspectionFilters) []string {
	t.Helper()
	rows, _, err := repo.Search(context.Background(), filters, 100, 0)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	numbers := make([]string, 0, len(rows))
	for _, row := range rows {
		numbers = append(numbers, row.InspectionNumber)
	}
	return numbers
}

func TestMemorySearch_QMatchesAnyOfTheFourFields(t *testing.T) {
	repo := seedSearchFixture(t)

	cases := []struct {
		q        string
		expected []string
	}{
		{"0001", []string{"PP-2025-06-0001"}},    // inspection number
		{"ромашка", []string{"PP-2025-06-0001"}}, // SMP name, case folded
		{"504987", []string{"XX-77"}},            // SMP INN
		{"мчс", []string{"XX-77"}},               // controlling authority
		{"нигде", nil},
	}
	for _, tc := range cases {
		got := searchNumbers(t, repo, models.InspectionFilters{Q: tc.q})
		if len(got) != len(tc.expected) {
			t.Fatalf("Q=%q expected %v, got %v", tc.q, tc.expected, got)
		}
		for i := range tc.expected {
			if got[i] != tc.expected[i] {
				t.Fatalf("Q=%q expected %v, got %v", tc.q, tc.expected, got)
			}
		}
	}
}

func TestMemorySearch_QIsDisjunctiveNotConjunctive(t *testing.T) {
	repo := seedSearchFixture(t)

	// "Роспотребнадзор" appears only in row 1's authority and nowhere in
	// row 1's number; a hit proves the fields are OR-combined.
	got := searchNumbers(t, repo, models.InspectionFilters{Q: "роспотреб"})
	if len(got) != 1 || got[0] != "PP-2025-06-0001" {
		t.Fatalf("expected authority-only match, got %v", got)
	}
}

func TestMemorySearch_StatusIsExact(t *testing.T) {
	repo := seedSearchFixture(t)

	got := searchNumbers(t, repo, models.InspectionFilters{Status: "planned"})
	if len(got) != 1 || got[0] != "PP-2025-06-0001" {
		t.Fatalf("status=planned expected one match, got %v", got)
	}
	if got := searchNumbers(t, repo, models.InspectionFilters{Status: "plan"}); len(got) != 0 {
		t.Fatalf("status must not substring-match, got %v", got)
	}
}

func TestMemorySearch_DateBoundsAreInclusive(t *testing.T) {
	repo := seedSearchFixture(t)

	// start_date >= filter; equality on the boundary must match.
	got := searchNumbers(t, repo, models.InspectionFilters{StartDate: "2025-07-01"})
	if len(got) != 1 || got[0] != "XX-77" {
		t.Fatalf("start_date=2025-07-01 expected XX-77, got %v", got)
	}

	// end_date <= filter; equality on the boundary must match.
	got = searchNumbers(t, repo, models.InspectionFilters{EndDate: "2025-06-10"})
	if len(got) != 1 || got[0] != "PP-2025-06-0001" {
		t.Fatalf("end_date=2025-06-10 expected PP-2025-06-0001, got %v", got)
	}

	// One day tighter on each side excludes the boundary rows.
	if got := searchNumbers(t, repo, models.InspectionFilters{StartDate: "2025-07-02"}); len(got) != 0 {
		t.Fatalf("start_date=2025-07-02 expected no matches, got %v", got)
	}
	if got := searchNumbers(t, repo, models.InspectionFilters{EndDate: "2025-06-09"}); len(got) != 0 {
		t.Fatalf("end_date=2025-06-09 expected no matches, got %v", got)
	}
}

func TestMemorySearch_CombinedFilters(t *testing.T) {
	repo := seedSearchFixture(t)

	got := searchNumbers(t, repo, models.InspectionFilters{
		SmpName:              "василёк",
		ControllingAuthority: "мчс",
		Status:               "completed",
	})
	if len(got) != 1 || got[0] != "XX-77" {
		t.Fatalf("combined filters expected XX-77, got %v", got)
	}

	got = searchNumbers(t, repo, models.InspectionFilters{
		SmpName: "василёк",
		Status:  "planned",
	})
	if len(got) != 0 {
		t.Fatalf("filters must AND together, got %v", got)
	}
}
