package dedupe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"donorcheck/internal/inspection/models"
)

func baseRecord() models.InspectionRecord {
	return models.InspectionRecord{
		FormDate:                      time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC),
		InspectorName:                 "Dana Reyes",
		UserEmail:                     "dana.reyes@example.org",
		ScalesAccurate:                true,
		DonorName:                     "Alex Moana",
		DonorContactNumber:            "0412345678",
		DonorHealthScreeningCompleted: true,
		DonorConsentFormCompleted:     true,
		Notes:                         "all good",
	}
}

func TestEqualIgnoresSystemAndAuditFields(t *testing.T) {
	a := baseRecord()
	b := baseRecord()
	b.ID = "different-id"
	b.SubmissionTime = time.Now()
	b.CreatedAt = time.Now()
	modified := time.Now()
	b.LastModifiedTime = &modified
	b.LastModifiedBy = "someone.else@example.org"
	b.EditReason = "fixed typo"

	assert.True(t, Equal(a, b))
}

func TestEqualDetectsFieldDifferences(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.InspectionRecord)
	}{
		{"boolean flipped", func(r *models.InspectionRecord) { r.ScalesAccurate = false }},
		{"notes differ", func(r *models.InspectionRecord) { r.Notes = "chair 3 wobbly" }},
		{"case differs", func(r *models.InspectionRecord) { r.DonorName = "alex moana" }},
		{"whitespace differs", func(r *models.InspectionRecord) { r.Notes = "all good " }},
		{"date differs", func(r *models.InspectionRecord) { r.FormDate = r.FormDate.AddDate(0, 0, 1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := baseRecord()
			b := baseRecord()
			tc.mutate(&b)
			assert.False(t, Equal(a, b))
			assert.False(t, Equal(b, a), "equality must be symmetric")
		})
	}
}

func TestIsDuplicate(t *testing.T) {
	t.Run("empty window", func(t *testing.T) {
		assert.False(t, IsDuplicate(baseRecord(), nil))
	})

	t.Run("identical record in window", func(t *testing.T) {
		prior := baseRecord()
		prior.ID = "rec-1"
		other := baseRecord()
		other.Notes = "different shift"
		assert.True(t, IsDuplicate(baseRecord(), []models.InspectionRecord{other, prior}))
	})

	t.Run("no match in window", func(t *testing.T) {
		other := baseRecord()
		other.DonorName = "Sam Kerr"
		assert.False(t, IsDuplicate(baseRecord(), []models.InspectionRecord{other}))
	})
}
