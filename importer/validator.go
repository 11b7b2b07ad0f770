package importer

import "strings"

// ValidateRow checks what must be present before entity resolution even
// starts. Returned messages carry no row prefix; the processor adds it.
func ValidateRow(row *ImportRow) []string {
	var errs []string

	if row.ControllingAuthority == "" {
		errs = append(errs, "Не указан контролирующий орган")
	}
	if row.StartDate == "" || row.EndDate == "" {
		errs = append(errs, "Не указаны даты начала или окончания")
	}
	return errs
}

// ValidateSmpData applies only when the row has no usable SMP reference
// and a new SMP would have to be created.
func ValidateSmpData(row *ImportRow) []string {
	var errs []string

	if strings.TrimSpace(row.SmpName) == "" {
		errs = append(errs, "Не указано наименование СМП")
	}
	if strings.TrimSpace(row.SmpInn) == "" {
		errs = append(errs, "Не указан ИНН СМП")
	}
	return errs
}
