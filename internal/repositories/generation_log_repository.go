package repositories

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	intconfig "tripplanner/internal/config"
	intdb "tripplanner/internal/db"
	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
)

type GenerationLogRepository struct {
	DB *sql.DB
}

func (r GenerationLogRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert stores one exchange and returns its id. Missing ids and timestamps
// are filled in.
func (r GenerationLogRepository) Insert(l models.GenerationLog) (string, error) {
	db := r.db()
	if db == nil {
		return "", domain.PersistenceError{Op: "generation_log.insert", Err: errNoDB}
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO generation_logs
			(id, user_id, trip_id, kind, provider, prompt, raw_response, outcome, stage, error_text, latency_ms, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		l.ID, l.UserID, nullIfZero(l.TripID), l.Kind, l.Provider, l.Prompt, l.RawResponse,
		l.Outcome, intdb.NullIfEmpty(l.Stage), intdb.NullIfEmpty(l.ErrorText), l.LatencyMS, l.CreatedAt,
	)
	if err != nil {
		return "", domain.PersistenceError{Op: "generation_log.insert", Err: err}
	}
	return l.ID, nil
}

func nullIfZero(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
