// Package validate checks candidate form payloads against the fixed
// inspection schema. All problems are collected and returned together so the
// form layer can show the submitter a complete correction list in one pass.
package validate

import (
	"fmt"
	"strings"
	"time"

	"donorcheck/internal/inspection/models"
)

// Reason classifies a single field failure.
type Reason string

const (
	ReasonMissing    Reason = "MISSING"
	ReasonWrongType  Reason = "WRONG_TYPE"
	ReasonNotAllowed Reason = "NOT_ALLOWED"
)

// FieldError is one validation failure on one schema field.
type FieldError struct {
	Field  string `json:"field"`
	Reason Reason `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

func (e FieldError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Field, e.Reason, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Errors is the full set of failures for one candidate. Never empty when
// returned as an error.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Contact numbers mirror the original form rule: digits only, 8 to 15 long.
const (
	minContactDigits = 8
	maxContactDigits = 15
)

// Record validates a candidate against the schema and, on success, returns a
// typed record with system and audit fields left unset for the store to
// fill. On failure it returns every field error found, not just the first.
func Record(c models.Candidate) (models.InspectionRecord, Errors) {
	var (
		r    models.InspectionRecord
		errs Errors
	)

	missing := func(field string) { errs = append(errs, FieldError{Field: field, Reason: ReasonMissing}) }
	wrongType := func(field, detail string) {
		errs = append(errs, FieldError{Field: field, Reason: ReasonWrongType, Detail: detail})
	}

	// Store-assigned fields must not be supplied by the caller.
	for _, sys := range []struct {
		field string
		v     *string
	}{
		{models.FieldID, c.ID},
		{models.FieldSubmissionTime, c.SubmissionTime},
		{models.FieldCreatedAt, c.CreatedAt},
	} {
		if sys.v != nil && *sys.v != "" {
			errs = append(errs, FieldError{Field: sys.field, Reason: ReasonNotAllowed, Detail: "assigned by the store"})
		}
	}

	if c.FormDate == nil || strings.TrimSpace(*c.FormDate) == "" {
		missing(models.FieldFormDate)
	} else if d, err := time.Parse(models.DateFormat, *c.FormDate); err != nil {
		wrongType(models.FieldFormDate, "want a calendar date in "+models.DateFormat+" form")
	} else {
		r.FormDate = d
	}

	if v, ok := requiredText(c.InspectorName); ok {
		r.InspectorName = v
	} else {
		missing(models.FieldInspectorName)
	}

	if v, ok := requiredText(c.UserEmail); !ok {
		missing(models.FieldUserEmail)
	} else if !strings.Contains(v, "@") {
		wrongType(models.FieldUserEmail, "not an email address")
	} else {
		r.UserEmail = v
	}

	for _, b := range []struct {
		field string
		src   *bool
		dst   *bool
	}{
		{models.FieldDonationChairsFunctional, c.DonationChairsFunctional, &r.DonationChairsFunctional},
		{models.FieldBloodPressureMonitorsCalibrated, c.BloodPressureMonitorsCalibrated, &r.BloodPressureMonitorsCalibrated},
		{models.FieldScalesAccurate, c.ScalesAccurate, &r.ScalesAccurate},
		{models.FieldRefrigerationTempOK, c.RefrigerationTempOK, &r.RefrigerationTempOK},
		{models.FieldCentrifugeFunctional, c.CentrifugeFunctional, &r.CentrifugeFunctional},
		{models.FieldSterilizationEquipmentOK, c.SterilizationEquipmentOK, &r.SterilizationEquipmentOK},
		{models.FieldEmergencyEquipmentAccessible, c.EmergencyEquipmentAccessible, &r.EmergencyEquipmentAccessible},
		{models.FieldDonorScreeningAreaClean, c.DonorScreeningAreaClean, &r.DonorScreeningAreaClean},
		{models.FieldCollectionSuppliesAdequate, c.CollectionSuppliesAdequate, &r.CollectionSuppliesAdequate},
		{models.FieldSafetyProtocolsFollowed, c.SafetyProtocolsFollowed, &r.SafetyProtocolsFollowed},
		{models.FieldStaffTrainingCurrent, c.StaffTrainingCurrent, &r.StaffTrainingCurrent},
		{models.FieldDonorComfortFacilitiesOK, c.DonorComfortFacilitiesOK, &r.DonorComfortFacilitiesOK},
		{models.FieldDonorHealthScreeningCompleted, c.DonorHealthScreeningCompleted, &r.DonorHealthScreeningCompleted},
		{models.FieldDonorConsentFormCompleted, c.DonorConsentFormCompleted, &r.DonorConsentFormCompleted},
	} {
		if b.src == nil {
			missing(b.field)
			continue
		}
		*b.dst = *b.src
	}

	if v, ok := requiredText(c.DonorName); ok {
		r.DonorName = v
	} else {
		missing(models.FieldDonorName)
	}

	if v, ok := requiredText(c.DonorContactNumber); !ok {
		missing(models.FieldDonorContactNumber)
	} else if !digitsOnly(v) {
		wrongType(models.FieldDonorContactNumber, "digits only")
	} else if len(v) < minContactDigits || len(v) > maxContactDigits {
		wrongType(models.FieldDonorContactNumber, fmt.Sprintf("want %d to %d digits", minContactDigits, maxContactDigits))
	} else {
		r.DonorContactNumber = v
	}

	r.Notes = optionalText(c.Notes)
	r.IssuesFound = optionalText(c.IssuesFound)
	r.CorrectiveActions = optionalText(c.CorrectiveActions)

	if len(errs) > 0 {
		return models.InspectionRecord{}, errs
	}
	return r, nil
}

func requiredText(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

func optionalText(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func digitsOnly(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
