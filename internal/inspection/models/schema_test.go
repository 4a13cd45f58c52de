package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaShape(t *testing.T) {
	fields := Fields()
	require.Len(t, fields, 28)

	var system, audit, required int
	for _, f := range fields {
		if f.System {
			system++
		}
		if f.Audit {
			audit++
		}
		if f.Required {
			required++
		}
	}
	assert.Equal(t, 3, system, "id, submission_time, created_at")
	assert.Equal(t, 3, audit, "last_modified_time, last_modified_by, edit_reason")
	assert.Equal(t, 19, required)
}

func TestComparableFieldsExcludeSystemAndAudit(t *testing.T) {
	for _, f := range ComparableFields() {
		assert.False(t, f.System, "%s should not be comparable", f.Name)
		assert.False(t, f.Audit, "%s should not be comparable", f.Name)
	}
	assert.Len(t, ComparableFields(), 22)
}

func TestFieldsReturnsCopy(t *testing.T) {
	fields := Fields()
	fields[0].Name = "mutated"
	assert.Equal(t, FieldID, Fields()[0].Name)
}

func TestIsOptional(t *testing.T) {
	assert.True(t, IsOptional(FieldNotes))
	assert.True(t, IsOptional(FieldIssuesFound))
	assert.True(t, IsOptional(FieldCorrectiveActions))
	assert.False(t, IsOptional(FieldFormDate))
	assert.False(t, IsOptional(FieldID))
	assert.False(t, IsOptional(FieldEditReason))
	assert.False(t, IsOptional("no_such_field"))
}

func TestFieldValueCoversEverySchemaField(t *testing.T) {
	var r InspectionRecord
	for _, f := range Fields() {
		_, ok := r.FieldValue(f.Name)
		assert.True(t, ok, "FieldValue should know %s", f.Name)
	}

	_, ok := r.FieldValue("no_such_field")
	assert.False(t, ok)
}

func TestFieldValueAuditFields(t *testing.T) {
	var r InspectionRecord
	v, ok := r.FieldValue(FieldLastModifiedTime)
	require.True(t, ok)
	assert.Equal(t, "", v, "unedited record has no modification time")

	v, ok = r.FieldValue(FieldLastModifiedBy)
	require.True(t, ok)
	assert.Equal(t, "", v)

	edited := time.Date(2025, 8, 14, 11, 0, 0, 0, time.UTC)
	r.LastModifiedTime = &edited
	r.LastModifiedBy = "dana.reyes@example.org"

	v, ok = r.FieldValue(FieldLastModifiedTime)
	require.True(t, ok)
	assert.Equal(t, "2025-08-14T11:00:00Z", v)

	v, ok = r.FieldValue(FieldLastModifiedBy)
	require.True(t, ok)
	assert.Equal(t, "dana.reyes@example.org", v)
}

func TestFieldValueFormatsTimes(t *testing.T) {
	r := InspectionRecord{
		FormDate:       time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC),
		SubmissionTime: time.Date(2025, 8, 14, 9, 30, 0, 0, time.UTC),
	}
	v, ok := r.FieldValue(FieldFormDate)
	require.True(t, ok)
	assert.Equal(t, "2025-08-14", v)

	v, ok = r.FieldValue(FieldSubmissionTime)
	require.True(t, ok)
	assert.Equal(t, "2025-08-14T09:30:00Z", v)
}
