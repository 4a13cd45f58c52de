package models

// Kind is the storage type of a schema field.
type Kind int

const (
	KindDate Kind = iota
	KindText
	KindBool
	KindTimestamp
)

// Field describes one column of the inspection table. System fields are
// assigned by the store; audit fields are maintained by the edit path. Both
// are excluded from duplicate detection and change diffs.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	System   bool
	Audit    bool
}

// Column names, single source of truth for the fixed schema.
const (
	FieldID             = "id"
	FieldFormDate       = "form_date"
	FieldInspectorName  = "inspector_name"
	FieldUserEmail      = "user_email"
	FieldSubmissionTime = "submission_time"

	FieldDonationChairsFunctional        = "donation_chairs_functional"
	FieldBloodPressureMonitorsCalibrated = "blood_pressure_monitors_calibrated"
	FieldScalesAccurate                  = "scales_accurate"
	FieldRefrigerationTempOK             = "refrigeration_temp_ok"
	FieldCentrifugeFunctional            = "centrifuge_functional"
	FieldSterilizationEquipmentOK        = "sterilization_equipment_ok"
	FieldEmergencyEquipmentAccessible    = "emergency_equipment_accessible"
	FieldDonorScreeningAreaClean         = "donor_screening_area_clean"
	FieldCollectionSuppliesAdequate      = "collection_supplies_adequate"
	FieldSafetyProtocolsFollowed         = "safety_protocols_followed"
	FieldStaffTrainingCurrent            = "staff_training_current"
	FieldDonorComfortFacilitiesOK        = "donor_comfort_facilities_ok"

	FieldDonorName                     = "donor_name"
	FieldDonorContactNumber            = "donor_contact_number"
	FieldDonorHealthScreeningCompleted = "donor_health_screening_completed"
	FieldDonorConsentFormCompleted     = "donor_consent_form_completed"

	FieldNotes             = "notes"
	FieldIssuesFound       = "issues_found"
	FieldCorrectiveActions = "corrective_actions"

	FieldCreatedAt        = "created_at"
	FieldLastModifiedTime = "last_modified_time"
	FieldLastModifiedBy   = "last_modified_by"
	FieldEditReason       = "edit_reason"
)

// schemaFields is ordered to match the table layout. Order matters for the
// change diff, which reports modifications in this order.
var schemaFields = []Field{
	{Name: FieldID, Kind: KindText, System: true},
	{Name: FieldFormDate, Kind: KindDate, Required: true},
	{Name: FieldInspectorName, Kind: KindText, Required: true},
	{Name: FieldUserEmail, Kind: KindText, Required: true},
	{Name: FieldSubmissionTime, Kind: KindTimestamp, System: true},

	{Name: FieldDonationChairsFunctional, Kind: KindBool, Required: true},
	{Name: FieldBloodPressureMonitorsCalibrated, Kind: KindBool, Required: true},
	{Name: FieldScalesAccurate, Kind: KindBool, Required: true},
	{Name: FieldRefrigerationTempOK, Kind: KindBool, Required: true},
	{Name: FieldCentrifugeFunctional, Kind: KindBool, Required: true},
	{Name: FieldSterilizationEquipmentOK, Kind: KindBool, Required: true},
	{Name: FieldEmergencyEquipmentAccessible, Kind: KindBool, Required: true},
	{Name: FieldDonorScreeningAreaClean, Kind: KindBool, Required: true},
	{Name: FieldCollectionSuppliesAdequate, Kind: KindBool, Required: true},
	{Name: FieldSafetyProtocolsFollowed, Kind: KindBool, Required: true},
	{Name: FieldStaffTrainingCurrent, Kind: KindBool, Required: true},
	{Name: FieldDonorComfortFacilitiesOK, Kind: KindBool, Required: true},

	{Name: FieldDonorName, Kind: KindText, Required: true},
	{Name: FieldDonorContactNumber, Kind: KindText, Required: true},
	{Name: FieldDonorHealthScreeningCompleted, Kind: KindBool, Required: true},
	{Name: FieldDonorConsentFormCompleted, Kind: KindBool, Required: true},

	{Name: FieldNotes, Kind: KindText},
	{Name: FieldIssuesFound, Kind: KindText},
	{Name: FieldCorrectiveActions, Kind: KindText},

	{Name: FieldCreatedAt, Kind: KindTimestamp, System: true},
	{Name: FieldLastModifiedTime, Kind: KindTimestamp, Audit: true},
	{Name: FieldLastModifiedBy, Kind: KindText, Audit: true},
	{Name: FieldEditReason, Kind: KindText, Audit: true},
}

// Fields returns the ordered schema. The returned slice is a copy.
func Fields() []Field {
	return append([]Field{}, schemaFields...)
}

// ComparableFields returns the ordered non-system, non-audit fields: the set
// considered by duplicate detection and the edit diff.
func ComparableFields() []Field {
	out := make([]Field, 0, len(schemaFields))
	for _, f := range schemaFields {
		if f.System || f.Audit {
			continue
		}
		out = append(out, f)
	}
	return out
}

// IsOptional reports whether the named field may be omitted by a submitter.
// Unknown names are not optional.
func IsOptional(name string) bool {
	for _, f := range schemaFields {
		if f.Name == name {
			return !f.Required && !f.System && !f.Audit
		}
	}
	return false
}
