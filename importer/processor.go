package importer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/smpregistry/inspections_backend/config"
	"github.com/smpregistry/inspections_backend/models"
	"github.com/smpregistry/inspections_backend/services"
)

// Options control the write behavior of one import run.
type Options struct {
	// UpdateExisting rewrites matched records; when false a matched
	// record is counted as skipped and left untouched.
	UpdateExisting bool
}

// Processor drives the import pipeline: load rows, validate, resolve
// the SMP, transform, upsert. A bad row is reported and skipped, it
// never aborts the batch.
type Processor struct {
	inspections *services.InspectionService
	smps        *services.SmpService
	transformer *Transformer
	logger      *logrus.Logger
}

func NewProcessor(inspections *services.InspectionService, smps *services.SmpService) *Processor {
	return &Processor{
		inspections: inspections,
		smps:        smps,
		transformer: &Transformer{GenerateNumber: inspections.GenerateInspectionNumber},
		logger:      config.GetLogger(),
	}
}

// Process imports one uploaded file. File-level failures (unreadable
// file, missing required columns) return an error; row-level failures
// land in the result as "Строка N: ..." messages.
func (p *Processor) Process(ctx context.Context, path string, opts Options) (*models.ImportResult, error) {
	rows, err := LoadRows(path)
	if err != nil {
		return nil, err
	}

	// Success reflects the run, not the rows: a readable file with a
	// usable header is a successful import even when rows were
	// rejected. Row failures are visible through Skipped and Errors.
	result := &models.ImportResult{
		Success: true,
		Total:   len(rows),
		Errors:  []string{},
	}

	for _, row := range rows {
		p.processRow(ctx, row, opts, result)
	}

	return result, nil
}

func (p *Processor) processRow(ctx context.Context, row *ImportRow, opts Options, result *models.ImportResult) {
	defer func() {
		if r := recover(); r != nil {
			config.LogError(p.logger, "importer", "processRow", "recovered row fault", logrus.Fields{
				"row": row.RowNumber,
			}, fmt.Errorf("%v", r))
			p.rejectRow(result, row, fmt.Sprintf("внутренняя ошибка обработки: %v", r))
		}
	}()

	if msgs := ValidateRow(row); len(msgs) > 0 {
		p.rejectRow(result, row, msgs...)
		return
	}

	smpId, err := p.smps.FindOrCreateSmp(ctx, ParseIntCell(row.SmpId), row.SmpName, row.SmpInn, row.Address)
	if err != nil {
		p.rejectRow(result, row, err.Error())
		return
	}
	if smpId == 0 {
		msgs := ValidateSmpData(row)
		if len(msgs) == 0 {
			msgs = []string{"Не удалось определить СМП"}
		}
		p.rejectRow(result, row, msgs...)
		return
	}

	input, err := p.transformer.Transform(ctx, row, smpId)
	if err != nil {
		p.rejectRow(result, row, err.Error())
		return
	}

	action, err := p.inspections.Upsert(ctx, ParseIntCell(row.ID), input, opts.UpdateExisting)
	if err != nil {
		p.rejectRow(result, row, err.Error())
		return
	}

	switch action {
	case services.ActionCreated:
		result.Imported++
	case services.ActionUpdated:
		result.Updated++
	default:
		result.Skipped++
	}
}

func (p *Processor) rejectRow(result *models.ImportResult, row *ImportRow, msgs ...string) {
	result.Skipped++
	for _, msg := range msgs {
		result.Errors = append(result.Errors, fmt.Sprintf("Строка %d: %s", row.RowNumber, msg))
	}
}
