// Package auditdiff computes field-level change sets for record edits and
// stamps the audit trail. An edit without a stated reason is rejected
// outright; audit completeness is mandatory, not best effort.
package auditdiff

import (
	"strings"
	"time"

	"donorcheck/internal/inspection/models"
	"donorcheck/internal/inspection/validate"
)

// FieldChange records one modified field with its before and after values.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}

// Result is the outcome of a diff: the record ready to persist with audit
// fields stamped, plus the ordered change set for before/after display.
type Result struct {
	UpdatedRecord models.InspectionRecord
	Changes       []FieldChange
	Editor        string
	Reason        string
	EditTimestamp time.Time
}

// Diff compares original against edited over the comparable schema fields
// and returns the change set in schema order; unchanged fields are omitted.
// The returned record carries edited's display fields with id, creation
// metadata and submission time preserved from original, and the audit trail
// set to (editor, reason, now).
//
// An empty change set is not an error: recording "edit attempted, no change,
// reason X" is legitimate for audit compliance and the caller decides policy.
func Diff(original, edited models.InspectionRecord, editor, reason string, now time.Time) (Result, error) {
	if strings.TrimSpace(reason) == "" {
		return Result{}, validate.Errors{{Field: models.FieldEditReason, Reason: validate.ReasonMissing}}
	}

	var changes []FieldChange
	for _, f := range models.ComparableFields() {
		oldV, _ := original.FieldValue(f.Name)
		newV, _ := edited.FieldValue(f.Name)
		if oldV != newV {
			changes = append(changes, FieldChange{Field: f.Name, OldValue: oldV, NewValue: newV})
		}
	}

	updated := edited
	updated.ID = original.ID
	updated.CreatedAt = original.CreatedAt
	updated.SubmissionTime = original.SubmissionTime
	updated.LastModifiedTime = &now
	updated.LastModifiedBy = editor
	updated.EditReason = reason

	return Result{
		UpdatedRecord: updated,
		Changes:       changes,
		Editor:        editor,
		Reason:        reason,
		EditTimestamp: now,
	}, nil
}
