// Package dedupe flags accidental double submissions. The check is a safety
// net for the double-click case, not a semantic matcher: exact, case
// sensitive equality over every non-system field, with no normalization and
// no fuzzy distance.
package dedupe

import "donorcheck/internal/inspection/models"

// IsDuplicate reports whether candidate matches any record in recent under
// exact equality of all non-system, non-audit fields. The recent slice is a
// caller-scoped window (typically same form date and inspector); this
// function performs no querying and has no side effects.
func IsDuplicate(candidate models.InspectionRecord, recent []models.InspectionRecord) bool {
	for _, r := range recent {
		if Equal(candidate, r) {
			return true
		}
	}
	return false
}

// Equal compares two records field by field over the comparable schema
// fields. Symmetric by construction.
func Equal(a, b models.InspectionRecord) bool {
	for _, f := range models.ComparableFields() {
		av, _ := a.FieldValue(f.Name)
		bv, _ := b.FieldValue(f.Name)
		if av != bv {
			return false
		}
	}
	return true
}
