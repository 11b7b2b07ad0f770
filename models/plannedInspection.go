package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type InspectionStatus string

const (
	InspectionStatusPlanned    InspectionStatus = "planned"
	InspectionStatusInProgress InspectionStatus = "in_progress"
	InspectionStatusCompleted  InspectionStatus = "completed"
	InspectionStatusCancelled  InspectionStatus = "cancelled"
)

type PlannedInspection struct {
	ID                   int              `gorm:"primary_key" json:"id"`
	SmpId                *int             `gorm:"index" json:"smp_id"`
	InspectionNumber     string           `gorm:"size:50;not null" json:"inspection_number"`
	ControllingAuthority string           `gorm:"size:255;not null" json:"controlling_authority"`
	StartDate            string           `gorm:"size:10;not null" json:"start_date"`
	EndDate              string           `gorm:"size:10;not null" json:"end_date"`
	PlannedDuration      int              `gorm:"not null;default:0" json:"planned_duration"`
	Status               InspectionStatus `gorm:"type:enum('planned','in_progress','completed','cancelled');not null;default:'planned'" json:"status"`
	Notes                *string          `gorm:"type:text" json:"notes"`
	CreatedAt            time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// InspectionWithSmp is the read model joined with the SMP directory.
// SMP columns stay null when smp_id dangles or the smp table is absent.
type InspectionWithSmp struct {
	PlannedInspection
	SmpName    *string `json:"smp_name"`
	SmpInn     *string `json:"smp_inn"`
	SmpAddress *string `json:"smp_address"`
}

type NewPlannedInspection struct {
	SmpId                int     `json:"smp_id" validate:"required"`
	InspectionNumber     string  `json:"inspection_number"`
	ControllingAuthority string  `json:"controlling_authority" validate:"required,min=3,max=255"`
	StartDate            string  `json:"start_date" validate:"required"`
	EndDate              string  `json:"end_date" validate:"required"`
	PlannedDuration      int     `json:"planned_duration" validate:"required,gt=0"`
	Status               string  `json:"status" validate:"required,oneof=planned in_progress completed cancelled"`
	Notes                *string `json:"notes"`
}

var validate = validator.New()

// Validate returns per-field messages in the shape the API surfaces
// on 422 responses. Empty map means the input is valid.
func (input *NewPlannedInspection) Validate() map[string]string {
	errs := map[string]string{}
	err := validate.Struct(input)
	if err == nil {
		return errs
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "SmpId":
			errs["smp_id"] = "Выберите СМП"
		case "ControllingAuthority":
			if fe.Tag() == "min" {
				errs["controlling_authority"] = "Название органа должно содержать минимум 3 символа"
			} else {
				errs["controlling_authority"] = "Укажите контролирующий орган"
			}
		case "StartDate":
			errs["start_date"] = "Укажите дату начала"
		case "EndDate":
			errs["end_date"] = "Укажите дату окончания"
		case "PlannedDuration":
			errs["planned_duration"] = "Длительность должна быть положительным числом"
		case "Status":
			errs["status"] = "Недопустимый статус"
		}
	}
	return errs
}
