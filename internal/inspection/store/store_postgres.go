package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"donorcheck/internal/inspection/models"
	dErrors "donorcheck/pkg/domain-errors"
)

// PostgresStore persists inspection records in a single table. The table
// name is configurable because the hosting platform owns the table and its
// location differs per environment.
type PostgresStore struct {
	db       *sql.DB
	tableRaw string
	table    string // quoted identifier, safe for interpolation
	now      func() time.Time
}

// NewPostgresStore creates a store over an existing connection pool.
func NewPostgresStore(db *sql.DB, table string) *PostgresStore {
	return &PostgresStore{db: db, tableRaw: table, table: pq.QuoteIdentifier(table), now: time.Now}
}

// WithClock overrides the store clock. Test hook.
func (s *PostgresStore) WithClock(now func() time.Time) *PostgresStore {
	s.now = now
	return s
}

// EnsureTable provisions the table when it does not exist yet. Dev and test
// environments only; production tables are managed externally.
func (s *PostgresStore) EnsureTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, DDLFor(s.tableRaw)); err != nil {
		return fmt.Errorf("ensure inspection table: %w", err)
	}
	return nil
}

const insertColumns = `id, form_date, inspector_name, user_email, submission_time,
	donation_chairs_functional, blood_pressure_monitors_calibrated, scales_accurate,
	refrigeration_temp_ok, centrifuge_functional, sterilization_equipment_ok,
	emergency_equipment_accessible, donor_screening_area_clean, collection_supplies_adequate,
	safety_protocols_followed, staff_training_current, donor_comfort_facilities_ok,
	donor_name, donor_contact_number, donor_health_screening_completed, donor_consent_form_completed,
	notes, issues_found, corrective_actions, created_at, last_modified_time, last_modified_by, edit_reason`

func (s *PostgresStore) Insert(ctx context.Context, record models.InspectionRecord) (models.InspectionRecord, error) {
	now := s.now().UTC()
	record.ID = uuid.NewString()
	record.SubmissionTime = now
	record.CreatedAt = now

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, s.table, insertColumns, placeholders(28))
	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.FormDate,
		record.InspectorName,
		record.UserEmail,
		record.SubmissionTime,
		record.DonationChairsFunctional,
		record.BloodPressureMonitorsCalibrated,
		record.ScalesAccurate,
		record.RefrigerationTempOK,
		record.CentrifugeFunctional,
		record.SterilizationEquipmentOK,
		record.EmergencyEquipmentAccessible,
		record.DonorScreeningAreaClean,
		record.CollectionSuppliesAdequate,
		record.SafetyProtocolsFollowed,
		record.StaffTrainingCurrent,
		record.DonorComfortFacilitiesOK,
		record.DonorName,
		record.DonorContactNumber,
		record.DonorHealthScreeningCompleted,
		record.DonorConsentFormCompleted,
		nullableText(record.Notes),
		nullableText(record.IssuesFound),
		nullableText(record.CorrectiveActions),
		record.CreatedAt,
		record.LastModifiedTime,
		nullableText(record.LastModifiedBy),
		nullableText(record.EditReason),
	)
	if err != nil {
		return models.InspectionRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "insert inspection record")
	}
	return record, nil
}

func (s *PostgresStore) QueryRecent(ctx context.Context, filter RecentFilter) ([]models.InspectionRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	query := fmt.Sprintf(`SELECT %s FROM %s
		WHERE form_date = $1 AND inspector_name = $2
		ORDER BY submission_time DESC
		LIMIT $3`, insertColumns, s.table)
	rows, err := s.db.QueryContext(ctx, query, filter.FormDate, filter.InspectorName, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "query recent inspections")
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (s *PostgresStore) FetchByID(ctx context.Context, id string) (models.InspectionRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, insertColumns, s.table)
	record, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.InspectionRecord{}, ErrNotFound
	}
	if err != nil {
		return models.InspectionRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "fetch inspection record")
	}
	return record, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, record models.InspectionRecord) error {
	query := fmt.Sprintf(`UPDATE %s SET
		form_date = $2, inspector_name = $3, user_email = $4,
		donation_chairs_functional = $5, blood_pressure_monitors_calibrated = $6, scales_accurate = $7,
		refrigeration_temp_ok = $8, centrifuge_functional = $9, sterilization_equipment_ok = $10,
		emergency_equipment_accessible = $11, donor_screening_area_clean = $12, collection_supplies_adequate = $13,
		safety_protocols_followed = $14, staff_training_current = $15, donor_comfort_facilities_ok = $16,
		donor_name = $17, donor_contact_number = $18, donor_health_screening_completed = $19,
		donor_consent_form_completed = $20, notes = $21, issues_found = $22, corrective_actions = $23,
		last_modified_time = $24, last_modified_by = $25, edit_reason = $26
		WHERE id = $1`, s.table)
	res, err := s.db.ExecContext(ctx, query,
		id,
		record.FormDate,
		record.InspectorName,
		record.UserEmail,
		record.DonationChairsFunctional,
		record.BloodPressureMonitorsCalibrated,
		record.ScalesAccurate,
		record.RefrigerationTempOK,
		record.CentrifugeFunctional,
		record.SterilizationEquipmentOK,
		record.EmergencyEquipmentAccessible,
		record.DonorScreeningAreaClean,
		record.CollectionSuppliesAdequate,
		record.SafetyProtocolsFollowed,
		record.StaffTrainingCurrent,
		record.DonorComfortFacilitiesOK,
		record.DonorName,
		record.DonorContactNumber,
		record.DonorHealthScreeningCompleted,
		record.DonorConsentFormCompleted,
		nullableText(record.Notes),
		nullableText(record.IssuesFound),
		nullableText(record.CorrectiveActions),
		record.LastModifiedTime,
		nullableText(record.LastModifiedBy),
		nullableText(record.EditReason),
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "update inspection record")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "update inspection record")
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]models.InspectionRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY submission_time DESC`, insertColumns, s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list inspection records")
	}
	defer rows.Close()

	return scanRecords(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.InspectionRecord, error) {
	var (
		r                         models.InspectionRecord
		notes, issues, corrective sql.NullString
		modifiedBy, editReason    sql.NullString
		modifiedTime              sql.NullTime
	)
	err := row.Scan(
		&r.ID,
		&r.FormDate,
		&r.InspectorName,
		&r.UserEmail,
		&r.SubmissionTime,
		&r.DonationChairsFunctional,
		&r.BloodPressureMonitorsCalibrated,
		&r.ScalesAccurate,
		&r.RefrigerationTempOK,
		&r.CentrifugeFunctional,
		&r.SterilizationEquipmentOK,
		&r.EmergencyEquipmentAccessible,
		&r.DonorScreeningAreaClean,
		&r.CollectionSuppliesAdequate,
		&r.SafetyProtocolsFollowed,
		&r.StaffTrainingCurrent,
		&r.DonorComfortFacilitiesOK,
		&r.DonorName,
		&r.DonorContactNumber,
		&r.DonorHealthScreeningCompleted,
		&r.DonorConsentFormCompleted,
		&notes,
		&issues,
		&corrective,
		&r.CreatedAt,
		&modifiedTime,
		&modifiedBy,
		&editReason,
	)
	if err != nil {
		return models.InspectionRecord{}, err
	}
	r.Notes = notes.String
	r.IssuesFound = issues.String
	r.CorrectiveActions = corrective.String
	if modifiedTime.Valid {
		t := modifiedTime.Time
		r.LastModifiedTime = &t
	}
	r.LastModifiedBy = modifiedBy.String
	r.EditReason = editReason.String
	return r, nil
}

func scanRecords(rows *sql.Rows) ([]models.InspectionRecord, error) {
	var records []models.InspectionRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "scan inspection record")
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "iterate inspection records")
	}
	return records, nil
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func placeholders(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(out, ", ")
}
