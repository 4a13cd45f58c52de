package auditlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	dErrors "donorcheck/pkg/domain-errors"
)

const auditDDL = `
CREATE TABLE IF NOT EXISTS %s (
    id         TEXT PRIMARY KEY,
    timestamp  TIMESTAMPTZ NOT NULL,
    actor      TEXT NOT NULL,
    action     TEXT NOT NULL,
    record_id  TEXT,
    detail     TEXT,
    request_id TEXT
);
CREATE INDEX IF NOT EXISTS %s ON %s (record_id, timestamp DESC);
`

// PostgresStore appends events to a dedicated table. No update or delete
// paths exist; the table only ever grows.
type PostgresStore struct {
	db       *sql.DB
	tableRaw string
	table    string // quoted identifier, safe for interpolation
	now      func() time.Time
}

func NewPostgresStore(db *sql.DB, table string) *PostgresStore {
	return &PostgresStore{db: db, tableRaw: table, table: pq.QuoteIdentifier(table), now: time.Now}
}

// WithClock overrides the store clock. Test hook.
func (s *PostgresStore) WithClock(now func() time.Time) *PostgresStore {
	s.now = now
	return s
}

// EnsureTable provisions the table when it does not exist yet.
func (s *PostgresStore) EnsureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(auditDDL, s.table, pq.QuoteIdentifier(s.tableRaw+"_record_idx"), s.table)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure audit table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now().UTC()
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, timestamp, actor, action, record_id, detail, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, s.table)
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.Timestamp,
		event.Actor,
		string(event.Action),
		nullable(event.RecordID),
		nullable(event.Detail),
		nullable(event.RequestID),
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "append audit event")
	}
	return nil
}

func (s *PostgresStore) ListByRecord(ctx context.Context, recordID string) ([]Event, error) {
	query := fmt.Sprintf(`SELECT id, timestamp, actor, action, record_id, detail, request_id
		FROM %s WHERE record_id = $1 ORDER BY timestamp DESC`, s.table)
	rows, err := s.db.QueryContext(ctx, query, recordID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list audit events by record")
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT id, timestamp, actor, action, record_id, detail, request_id
		FROM %s ORDER BY timestamp DESC LIMIT $1`, s.table)
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list recent audit events")
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var (
			e                         Event
			action                    string
			recordID, detail, request sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Actor, &action, &recordID, &detail, &request); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "scan audit event")
		}
		e.Action = Action(action)
		e.RecordID = recordID.String
		e.Detail = detail.String
		e.RequestID = request.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "iterate audit events")
	}
	return events, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
