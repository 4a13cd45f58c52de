package auditdiff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorcheck/internal/inspection/models"
	"donorcheck/internal/inspection/validate"
)

func storedRecord() models.InspectionRecord {
	created := time.Date(2025, 8, 14, 9, 30, 0, 0, time.UTC)
	return models.InspectionRecord{
		ID:                 "rec-1",
		FormDate:           time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC),
		InspectorName:      "Dana Reyes",
		UserEmail:          "dana.reyes@example.org",
		SubmissionTime:     created,
		ScalesAccurate:     true,
		DonorName:          "Alex Moana",
		DonorContactNumber: "0412345678",
		Notes:              "all good",
		CreatedAt:          created,
	}
}

func TestDiffRequiresReason(t *testing.T) {
	for _, reason := range []string{"", "   ", "\t"} {
		_, err := Diff(storedRecord(), storedRecord(), "editor@example.org", reason, time.Now())
		require.Error(t, err)

		var verrs validate.Errors
		require.ErrorAs(t, err, &verrs)
		require.Len(t, verrs, 1)
		assert.Equal(t, models.FieldEditReason, verrs[0].Field)
		assert.Equal(t, validate.ReasonMissing, verrs[0].Reason)
	}
}

func TestDiffReportsChangesInSchemaOrder(t *testing.T) {
	original := storedRecord()
	edited := storedRecord()
	edited.Notes = "chair 3 wobbly"
	edited.ScalesAccurate = false
	edited.DonorName = "Alexandra Moana"

	now := time.Date(2025, 8, 15, 11, 0, 0, 0, time.UTC)
	result, err := Diff(original, edited, "lead@example.org", "scales recalibrated after recheck", now)
	require.NoError(t, err)

	require.Len(t, result.Changes, 3)
	assert.Equal(t, models.FieldScalesAccurate, result.Changes[0].Field)
	assert.Equal(t, true, result.Changes[0].OldValue)
	assert.Equal(t, false, result.Changes[0].NewValue)
	assert.Equal(t, models.FieldDonorName, result.Changes[1].Field)
	assert.Equal(t, models.FieldNotes, result.Changes[2].Field)
	assert.Equal(t, "all good", result.Changes[2].OldValue)
	assert.Equal(t, "chair 3 wobbly", result.Changes[2].NewValue)
}

func TestDiffStampsAuditTrail(t *testing.T) {
	original := storedRecord()
	edited := storedRecord()
	edited.Notes = "updated"

	now := time.Date(2025, 8, 15, 11, 0, 0, 0, time.UTC)
	result, err := Diff(original, edited, "lead@example.org", "note correction", now)
	require.NoError(t, err)

	updated := result.UpdatedRecord
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)
	assert.Equal(t, original.SubmissionTime, updated.SubmissionTime)
	require.NotNil(t, updated.LastModifiedTime)
	assert.Equal(t, now, *updated.LastModifiedTime)
	assert.Equal(t, "lead@example.org", updated.LastModifiedBy)
	assert.Equal(t, "note correction", updated.EditReason)
	assert.True(t, updated.Edited())

	assert.Equal(t, "lead@example.org", result.Editor)
	assert.Equal(t, "note correction", result.Reason)
	assert.Equal(t, now, result.EditTimestamp)
}

func TestDiffNoChangesIsNotAnError(t *testing.T) {
	result, err := Diff(storedRecord(), storedRecord(), "lead@example.org", "reviewed, confirmed correct", time.Now())
	require.NoError(t, err)
	assert.Empty(t, result.Changes)
	assert.True(t, result.UpdatedRecord.Edited())
}

func TestDiffIgnoresAuditFieldsOfInputs(t *testing.T) {
	original := storedRecord()
	edited := storedRecord()
	prior := time.Date(2025, 8, 14, 12, 0, 0, 0, time.UTC)
	edited.LastModifiedTime = &prior
	edited.LastModifiedBy = "previous@example.org"
	edited.EditReason = "previous reason"

	result, err := Diff(original, edited, "lead@example.org", "no content change", time.Now())
	require.NoError(t, err)
	assert.Empty(t, result.Changes)
	assert.Equal(t, "lead@example.org", result.UpdatedRecord.LastModifiedBy)
	assert.Equal(t, "no content change", result.UpdatedRecord.EditReason)
}
