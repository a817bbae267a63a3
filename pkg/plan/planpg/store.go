package planpg

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Abraxas-365/packwright/pkg/errx"
	"github.com/Abraxas-365/packwright/pkg/plan"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresStore is the PostgreSQL implementation of plan.Store.
// Artifacts are stored as a JSONB payload keyed by id; the payload is
// opaque to the database, which only needs lookup by id.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new artifact store backed by the given database.
func NewPostgresStore(db *sqlx.DB) plan.Store {
	return &PostgresStore{db: db}
}

type artifactRow struct {
	ID        string    `db:"id"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}

// Save inserts an artifact. Artifacts are immutable once written; saving
// an id that already exists is a conflict.
func (s *PostgresStore) Save(ctx context.Context, artifact plan.Artifact) error {
	payload, err := json.Marshal(artifact)
	if err != nil {
		return errx.Wrap(err, "failed to encode plan artifact", errx.TypeInternal).
			WithDetail("plan_id", artifact.ID)
	}

	query := `
		INSERT INTO plan_artifacts (id, payload, created_at)
		VALUES (:id, :payload, :created_at)`

	row := artifactRow{
		ID:        artifact.ID,
		Payload:   payload,
		CreatedAt: artifact.CreatedAt,
	}

	_, err = s.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return storeErrors.New(ErrDuplicate).WithDetail("plan_id", artifact.ID)
		}
		return errx.Wrap(err, "failed to save plan artifact", errx.TypeInternal).
			WithDetail("plan_id", artifact.ID)
	}
	return nil
}

// Get returns the artifact with the given id.
func (s *PostgresStore) Get(ctx context.Context, id string) (plan.Artifact, error) {
	var row artifactRow
	query := `SELECT id, payload, created_at FROM plan_artifacts WHERE id = $1`
	err := s.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return plan.Artifact{}, storeErrors.New(ErrNotFound).
				WithDetail("plan_id", id)
		}
		return plan.Artifact{}, errx.Wrap(err, "failed to load plan artifact", errx.TypeInternal).
			WithDetail("plan_id", id)
	}

	var artifact plan.Artifact
	if err := json.Unmarshal(row.Payload, &artifact); err != nil {
		return plan.Artifact{}, errx.Wrap(err, "failed to decode plan artifact", errx.TypeInternal).
			WithDetail("plan_id", id)
	}
	return artifact, nil
}
