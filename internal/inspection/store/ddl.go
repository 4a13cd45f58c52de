package store

import (
	"fmt"

	"github.com/lib/pq"
)

// ddl is the inspection table layout. The production table is owned by the
// hosting data platform; this lets integration tests and dev environments
// provision a scratch copy. Uniqueness exists only on the store-assigned id,
// matching the managed table.
const ddl = `
CREATE TABLE IF NOT EXISTS %s (
    id                                 TEXT PRIMARY KEY,
    form_date                          DATE NOT NULL,
    inspector_name                     TEXT NOT NULL,
    user_email                         TEXT NOT NULL,
    submission_time                    TIMESTAMPTZ NOT NULL,
    donation_chairs_functional         BOOLEAN NOT NULL,
    blood_pressure_monitors_calibrated BOOLEAN NOT NULL,
    scales_accurate                    BOOLEAN NOT NULL,
    refrigeration_temp_ok              BOOLEAN NOT NULL,
    centrifuge_functional              BOOLEAN NOT NULL,
    sterilization_equipment_ok         BOOLEAN NOT NULL,
    emergency_equipment_accessible     BOOLEAN NOT NULL,
    donor_screening_area_clean         BOOLEAN NOT NULL,
    collection_supplies_adequate       BOOLEAN NOT NULL,
    safety_protocols_followed          BOOLEAN NOT NULL,
    staff_training_current             BOOLEAN NOT NULL,
    donor_comfort_facilities_ok        BOOLEAN NOT NULL,
    donor_name                         TEXT NOT NULL,
    donor_contact_number               TEXT NOT NULL,
    donor_health_screening_completed   BOOLEAN NOT NULL,
    donor_consent_form_completed       BOOLEAN NOT NULL,
    notes                              TEXT,
    issues_found                       TEXT,
    corrective_actions                 TEXT,
    created_at                         TIMESTAMPTZ NOT NULL,
    last_modified_time                 TIMESTAMPTZ,
    last_modified_by                   TEXT,
    edit_reason                        TEXT
);
CREATE INDEX IF NOT EXISTS %s ON %s (form_date, inspector_name, submission_time DESC);
`

// DDLFor renders the table DDL for an unquoted table name.
func DDLFor(table string) string {
	quoted := pq.QuoteIdentifier(table)
	return fmt.Sprintf(ddl, quoted, pq.QuoteIdentifier(table+"_window_idx"), quoted)
}
