package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/smpregistry/inspections_backend/models"
	"github.com/smpregistry/inspections_backend/repository"
)

func newTestServices(t *testing.T) (*InspectionService, *SmpService, *repository.MemorySmpRepository) {
	t.Helper()
	smpRepo := repository.NewMemorySmpRepository()
	inspectionRepo := repository.NewMemoryInspectionRepository(smpRepo)
	return NewInspectionService(inspectionRepo), NewSmpService(smpRepo), smpRepo
}

func seedSmp(t *testing.T, smps *SmpService, name, inn string) int {
	t.Helper()
	id, err := smps.FindOrCreateSmp(context.Background(), 0, name, inn, "")
	if err != nil {
		t.Fatalf("FindOrCreateSmp error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected SMP to be created")
	}
	return id
}

func seedInspections(t *testing.T, svc *InspectionService, smpId, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		input := &models.NewPlannedInspection{
			SmpId:                smpId,
			InspectionNumber:     fmt.Sprintf("PP-2025-06-%04d", i),
			ControllingAuthority: "Роспотребнадзор",
			StartDate:            fmt.Sprintf("2025-06-%02d", i),
			EndDate:              fmt.Sprintf("2025-06-%02d", i+1),
			PlannedDuration:      2,
			Status:               "planned",
		}
		_, fieldErrs, err := svc.Create(context.Background(), input)
		if err != nil || len(fieldErrs) > 0 {
			t.Fatalf("seed create %d failed: %v %v", i, err, fieldErrs)
		}
	}
}

func TestList_BuildsPagerAndMeta(t *testing.T) {
	inspections, smps, _ := newTestServices(t)
	smpId := seedSmp(t, smps, "ООО Тест", "7700000001")
	seedInspections(t, inspections, smpId, 25)

	list, err := inspections.List(context.Background(), models.ListParams{Page: 3, PerPage: 10})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if !list.Success {
		t.Fatal("expected success=true")
	}
	if len(list.Data) != 5 {
		t.Fatalf("expected 5 rows on last page, got %d", len(list.Data))
	}
	if list.Pager.TotalPages != 3 || list.Pager.TotalItems != 25 || list.Pager.CurrentPage != 3 {
		t.Fatalf("bad pager: %+v", list.Pager)
	}
	if list.Meta.From != 21 || list.Meta.To != 25 || list.Meta.LastPage != 3 {
		t.Fatalf("bad meta: %+v", list.Meta)
	}
}

func TestList_ClampsNonPositivePaging(t *testing.T) {
	inspections, smps, _ := newTestServices(t)
	smpId := seedSmp(t, smps, "ООО Тест", "7700000001")
	seedInspections(t, inspections, smpId, 3)

	list, err := inspections.List(context.Background(), models.ListParams{Page: -2, PerPage: 0})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if list.Pager.CurrentPage != 1 || list.Pager.PerPage != 1 {
		t.Fatalf("paging not clamped: %+v", list.Pager)
	}
	if len(list.Data) != 1 {
		t.Fatalf("expected 1 row, got %d", len(list.Data))
	}
}

func TestList_EmptyResultHasZeroedMeta(t *testing.T) {
	inspections, _, _ := newTestServices(t)

	list, err := inspections.List(context.Background(), models.ListParams{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list.Data) != 0 || list.Meta.From != 0 || list.Meta.To != 0 {
		t.Fatalf("expected empty page, got %+v", list.Meta)
	}
}

func TestCreate_GeneratesSequentialNumbers(t *testing.T) {
	inspections, smps, _ := newTestServices(t)
	smpId := seedSmp(t, smps, "ООО Тест", "7700000001")

	var first, second string
	for i := 0; i < 2; i++ {
		input := &models.NewPlannedInspection{
			SmpId:                smpId,
			ControllingAuthority: "Роспотребнадзор",
			StartDate:            "2025-06-01",
			EndDate:              "2025-06-10",
			PlannedDuration:      10,
		}
		created, fieldErrs, err := inspections.Create(context.Background(), input)
		if err != nil || len(fieldErrs) > 0 {
			t.Fatalf("Create failed: %v %v", err, fieldErrs)
		}
		if i == 0 {
			first = created.InspectionNumber
		} else {
			second = created.InspectionNumber
		}
	}
	if first == "" || second == "" || first == second {
		t.Fatalf("expected distinct generated numbers, got %q and %q", first, second)
	}
}

func upsertInput(smpId int, number string) *models.NewPlannedInspection {
	return &models.NewPlannedInspection{
		SmpId:                smpId,
		InspectionNumber:     number,
		ControllingAuthority: "Роспотребнадзор",
		StartDate:            "2025-06-01",
		EndDate:              "2025-06-10",
		PlannedDuration:      10,
		Status:               "planned",
	}
}

func TestUpsert_CreatesThenUpdatesByNumber(t *testing.T) {
	inspections, smps, _ := newTestServices(t)
	smpId := seedSmp(t, smps, "ООО Тест", "7700000001")

	action, err := inspections.Upsert(context.Background(), 0, upsertInput(smpId, "PP-2025-06-0001"), true)
	if err != nil {
		t.Fatalf("first Upsert error: %v", err)
	}
	if action != ActionCreated {
		t.Fatalf("expected created, got %s", action)
	}

	input := upsertInput(smpId, "PP-2025-06-0001")
	input.Status = "completed"
	action, err = inspections.Upsert(context.Background(), 0, input, true)
	if err != nil {
		t.Fatalf("second Upsert error: %v", err)
	}
	if action != ActionUpdated {
		t.Fatalf("expected updated, got %s", action)
	}
}

func TestUpsert_SkipsMatchWhenUpdateDisabled(t *testing.T) {
	inspections, smps, _ := newTestServices(t)
	smpId := seedSmp(t, smps, "ООО Тест", "7700000001")

	if _, err := inspections.Upsert(context.Background(), 0, upsertInput(smpId, "PP-2025-06-0001"), true); err != nil {
		t.Fatalf("seed Upsert error: %v", err)
	}
	action, err := inspections.Upsert(context.Background(), 0, upsertInput(smpId, "PP-2025-06-0001"), false)
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if action != ActionSkipped {
		t.Fatalf("expected skipped, got %s", action)
	}

	list, err := inspections.List(context.Background(), models.ListParams{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if list.Pager.TotalItems != 1 {
		t.Fatalf("skip duplicated the record: %d items", list.Pager.TotalItems)
	}
}

func TestUpsert_MatchesByExplicitId(t *testing.T) {
	inspections, smps, _ := newTestServices(t)
	smpId := seedSmp(t, smps, "ООО Тест", "7700000001")

	created, fieldErrs, err := inspections.Create(context.Background(), upsertInput(smpId, "PP-2025-06-0001"))
	if err != nil || len(fieldErrs) > 0 {
		t.Fatalf("Create failed: %v %v", err, fieldErrs)
	}

	// Same id, different number: the explicit id wins over number matching.
	input := upsertInput(smpId, "PP-2025-06-0002")
	action, err := inspections.Upsert(context.Background(), created.ID, input, true)
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if action != ActionUpdated {
		t.Fatalf("expected updated, got %s", action)
	}

	found, err := inspections.Find(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if found == nil || found.InspectionNumber != "PP-2025-06-0002" {
		t.Fatalf("expected number rewritten on the same record, got %+v", found)
	}
}

func TestUpsert_InvalidInputBecomesRowError(t *testing.T) {
	inspections, smps, _ := newTestServices(t)
	smpId := seedSmp(t, smps, "ООО Тест", "7700000001")

	input := upsertInput(smpId, "PP-2025-06-0001")
	input.ControllingAuthority = ""
	action, err := inspections.Upsert(context.Background(), 0, input, true)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if action != ActionSkipped {
		t.Fatalf("expected skipped, got %s", action)
	}
}

func TestUpdate_KeepsOmittedStatusAndNotes(t *testing.T) {
	inspections, smps, _ := newTestServices(t)
	smpId := seedSmp(t, smps, "ООО Тест", "7700000001")

	notes := "выездная"
	input := upsertInput(smpId, "PP-2025-06-0001")
	input.Status = "completed"
	input.Notes = &notes
	created, fieldErrs, err := inspections.Create(context.Background(), input)
	if err != nil || len(fieldErrs) > 0 {
		t.Fatalf("Create failed: %v %v", err, fieldErrs)
	}

	patch := upsertInput(smpId, "PP-2025-06-0001")
	patch.Status = ""
	patch.Notes = nil
	patch.PlannedDuration = 5
	updated, fieldErrs, err := inspections.Update(context.Background(), created.ID, patch)
	if err != nil || len(fieldErrs) > 0 {
		t.Fatalf("Update failed: %v %v", err, fieldErrs)
	}
	if updated.Status != "completed" {
		t.Fatalf("status not preserved: %s", updated.Status)
	}
	if updated.Notes == nil || *updated.Notes != notes {
		t.Fatalf("notes not preserved: %v", updated.Notes)
	}
	if updated.PlannedDuration != 5 {
		t.Fatalf("duration not updated: %d", updated.PlannedDuration)
	}
}

func TestUpdate_MissingRecordReturnsNil(t *testing.T) {
	inspections, smps, _ := newTestServices(t)
	smpId := seedSmp(t, smps, "ООО Тест", "7700000001")

	updated, fieldErrs, err := inspections.Update(context.Background(), 42, upsertInput(smpId, "PP-2025-06-0001"))
	if err != nil || len(fieldErrs) > 0 {
		t.Fatalf("unexpected failure: %v %v", err, fieldErrs)
	}
	if updated != nil {
		t.Fatalf("expected nil for missing record, got %+v", updated)
	}
}

func TestDelete_ReportsMissingRecord(t *testing.T) {
	inspections, smps, _ := newTestServices(t)
	smpId := seedSmp(t, smps, "ООО Тест", "7700000001")
	seedInspections(t, inspections, smpId, 1)

	deleted, err := inspections.Delete(context.Background(), 1)
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed: %v %v", deleted, err)
	}
	deleted, err = inspections.Delete(context.Background(), 1)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if deleted {
		t.Fatal("expected second delete to report missing record")
	}
}
