package models

import "time"

// DateFormat is the wire and storage layout for form dates.
const DateFormat = "2006-01-02"

// InspectionRecord is one completed equipment and donor-compliance
// checklist. System fields (ID, SubmissionTime, CreatedAt) are assigned by
// the store on insert; audit fields are set only through the edit path.
type InspectionRecord struct {
	ID             string     `json:"id"`
	FormDate       time.Time  `json:"form_date"`
	InspectorName  string     `json:"inspector_name"`
	UserEmail      string     `json:"user_email"`
	SubmissionTime time.Time  `json:"submission_time"`

	// Equipment checks, one per checklist line.
	DonationChairsFunctional        bool `json:"donation_chairs_functional"`
	BloodPressureMonitorsCalibrated bool `json:"blood_pressure_monitors_calibrated"`
	ScalesAccurate                  bool `json:"scales_accurate"`
	RefrigerationTempOK             bool `json:"refrigeration_temp_ok"`
	CentrifugeFunctional            bool `json:"centrifuge_functional"`
	SterilizationEquipmentOK        bool `json:"sterilization_equipment_ok"`
	EmergencyEquipmentAccessible    bool `json:"emergency_equipment_accessible"`
	DonorScreeningAreaClean         bool `json:"donor_screening_area_clean"`
	CollectionSuppliesAdequate      bool `json:"collection_supplies_adequate"`
	SafetyProtocolsFollowed         bool `json:"safety_protocols_followed"`
	StaffTrainingCurrent            bool `json:"staff_training_current"`
	DonorComfortFacilitiesOK        bool `json:"donor_comfort_facilities_ok"`

	// Donor compliance.
	DonorName                     string `json:"donor_name"`
	DonorContactNumber            string `json:"donor_contact_number"`
	DonorHealthScreeningCompleted bool   `json:"donor_health_screening_completed"`
	DonorConsentFormCompleted     bool   `json:"donor_consent_form_completed"`

	// Free text; empty string means not provided.
	Notes             string `json:"notes,omitempty"`
	IssuesFound       string `json:"issues_found,omitempty"`
	CorrectiveActions string `json:"corrective_actions,omitempty"`

	// Audit trail. LastModifiedTime, LastModifiedBy and EditReason are set
	// together or not at all.
	CreatedAt        time.Time  `json:"created_at"`
	LastModifiedTime *time.Time `json:"last_modified_time,omitempty"`
	LastModifiedBy   string     `json:"last_modified_by,omitempty"`
	EditReason       string     `json:"edit_reason,omitempty"`
}

// Edited reports whether the record has ever been modified after insert.
func (r InspectionRecord) Edited() bool {
	return r.LastModifiedTime != nil
}

// FieldValue returns the value of the named schema field. Dates are returned
// in DateFormat, timestamps in RFC3339, booleans and texts as-is. The second
// return is false for unknown names.
func (r InspectionRecord) FieldValue(name string) (any, bool) {
	switch name {
	case FieldID:
		return r.ID, true
	case FieldFormDate:
		return r.FormDate.Format(DateFormat), true
	case FieldInspectorName:
		return r.InspectorName, true
	case FieldUserEmail:
		return r.UserEmail, true
	case FieldSubmissionTime:
		return r.SubmissionTime.Format(time.RFC3339), true
	case FieldDonationChairsFunctional:
		return r.DonationChairsFunctional, true
	case FieldBloodPressureMonitorsCalibrated:
		return r.BloodPressureMonitorsCalibrated, true
	case FieldScalesAccurate:
		return r.ScalesAccurate, true
	case FieldRefrigerationTempOK:
		return r.RefrigerationTempOK, true
	case FieldCentrifugeFunctional:
		return r.CentrifugeFunctional, true
	case FieldSterilizationEquipmentOK:
		return r.SterilizationEquipmentOK, true
	case FieldEmergencyEquipmentAccessible:
		return r.EmergencyEquipmentAccessible, true
	case FieldDonorScreeningAreaClean:
		return r.DonorScreeningAreaClean, true
	case FieldCollectionSuppliesAdequate:
		return r.CollectionSuppliesAdequate, true
	case FieldSafetyProtocolsFollowed:
		return r.SafetyProtocolsFollowed, true
	case FieldStaffTrainingCurrent:
		return r.StaffTrainingCurrent, true
	case FieldDonorComfortFacilitiesOK:
		return r.DonorComfortFacilitiesOK, true
	case FieldDonorName:
		return r.DonorName, true
	case FieldDonorContactNumber:
		return r.DonorContactNumber, true
	case FieldDonorHealthScreeningCompleted:
		return r.DonorHealthScreeningCompleted, true
	case FieldDonorConsentFormCompleted:
		return r.DonorConsentFormCompleted, true
	case FieldNotes:
		return r.Notes, true
	case FieldIssuesFound:
		return r.IssuesFound, true
	case FieldCorrectiveActions:
		return r.CorrectiveActions, true
	case FieldCreatedAt:
		return r.CreatedAt.Format(time.RFC3339), true
	case FieldLastModifiedTime:
		if r.LastModifiedTime == nil {
			return "", true
		}
		return r.LastModifiedTime.Format(time.RFC3339), true
	case FieldLastModifiedBy:
		return r.LastModifiedBy, true
	case FieldEditReason:
		return r.EditReason, true
	default:
		return nil, false
	}
}

// Candidate is the caller-supplied form payload before validation. Pointer
// fields distinguish "absent" from zero values so the validator can report
// MISSING for booleans as well as texts. System and audit fields appear here
// only so their presence can be rejected.
type Candidate struct {
	FormDate      *string `json:"form_date,omitempty"`
	InspectorName *string `json:"inspector_name,omitempty"`
	UserEmail     *string `json:"user_email,omitempty"`

	DonationChairsFunctional        *bool `json:"donation_chairs_functional,omitempty"`
	BloodPressureMonitorsCalibrated *bool `json:"blood_pressure_monitors_calibrated,omitempty"`
	ScalesAccurate                  *bool `json:"scales_accurate,omitempty"`
	RefrigerationTempOK             *bool `json:"refrigeration_temp_ok,omitempty"`
	CentrifugeFunctional            *bool `json:"centrifuge_functional,omitempty"`
	SterilizationEquipmentOK        *bool `json:"sterilization_equipment_ok,omitempty"`
	EmergencyEquipmentAccessible    *bool `json:"emergency_equipment_accessible,omitempty"`
	DonorScreeningAreaClean         *bool `json:"donor_screening_area_clean,omitempty"`
	CollectionSuppliesAdequate      *bool `json:"collection_supplies_adequate,omitempty"`
	SafetyProtocolsFollowed         *bool `json:"safety_protocols_followed,omitempty"`
	StaffTrainingCurrent            *bool `json:"staff_training_current,omitempty"`
	DonorComfortFacilitiesOK        *bool `json:"donor_comfort_facilities_ok,omitempty"`

	DonorName                     *string `json:"donor_name,omitempty"`
	DonorContactNumber            *string `json:"donor_contact_number,omitempty"`
	DonorHealthScreeningCompleted *bool   `json:"donor_health_screening_completed,omitempty"`
	DonorConsentFormCompleted     *bool   `json:"donor_consent_form_completed,omitempty"`

	Notes             *string `json:"notes,omitempty"`
	IssuesFound       *string `json:"issues_found,omitempty"`
	CorrectiveActions *string `json:"corrective_actions,omitempty"`

	// Store-assigned fields; rejected with NOT_ALLOWED when supplied.
	ID             *string `json:"id,omitempty"`
	SubmissionTime *string `json:"submission_time,omitempty"`
	CreatedAt      *string `json:"created_at,omitempty"`
}
