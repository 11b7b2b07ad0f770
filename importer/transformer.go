package importer

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/smpregistry/inspections_backend/models"
)

// Transformer turns a validated row into repository input. Number
// generation is injected so the pipeline stays storage-agnostic.
type Transformer struct {
	GenerateNumber func(ctx context.Context) (string, error)
}

// ParseIntCell reads an integer cell leniently: excelize hands numeric
// cells back as "5" or "5.0" depending on the source formatting.
func ParseIntCell(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}

var statusAliases = map[string]models.InspectionStatus{
	"planned":      models.InspectionStatusPlanned,
	"запланирована": models.InspectionStatusPlanned,
	"in_progress":  models.InspectionStatusInProgress,
	"проводится":   models.InspectionStatusInProgress,
	"completed":    models.InspectionStatusCompleted,
	"завершена":    models.InspectionStatusCompleted,
	"cancelled":    models.InspectionStatusCancelled,
	"отменена":     models.InspectionStatusCancelled,
}

func normalizeStatus(raw string) string {
	if status, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return string(status)
	}
	return string(models.InspectionStatusPlanned)
}

// durationFromDates falls back to the inclusive day span when the file
// leaves the duration cell empty.
func durationFromDates(startDate, endDate string) int {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// Transform builds the write input for one row. smpId comes from the
// entity-resolution step; a blank inspection number gets a generated one.
func (t *Transformer) Transform(ctx context.Context, row *ImportRow, smpId int) (*models.NewPlannedInspection, error) {
	number := strings.TrimSpace(row.InspectionNumber)
	if number == "" {
		generated, err := t.GenerateNumber(ctx)
		if err != nil {
			return nil, err
		}
		number = generated
	}

	startDate := NormalizeDate(row.StartDate)
	endDate := NormalizeDate(row.EndDate)

	duration := ParseIntCell(row.PlannedDuration)
	if duration <= 0 {
		duration = durationFromDates(startDate, endDate)
	}

	input := &models.NewPlannedInspection{
		SmpId:                smpId,
		InspectionNumber:     number,
		ControllingAuthority: row.ControllingAuthority,
		StartDate:            startDate,
		EndDate:              endDate,
		PlannedDuration:      duration,
		Status:               normalizeStatus(row.Status),
	}
	if notes := strings.TrimSpace(row.Notes); notes != "" {
		input.Notes = &notes
	}
	return input, nil
}
