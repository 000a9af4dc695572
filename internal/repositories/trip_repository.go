package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "tripplanner/internal/config"
	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
)

const tripColumns = `id, user_id, destination, start_date, end_date,
	budget_total, budget_spent, budget_remaining, COALESCE(currency,''),
	preferences, itinerary, summary, status, created_at, updated_at`

// TripRepository stores trips. Every read and write is scoped by the owner's
// user id; a trip owned by someone else is reported as not found.
type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TripRepository) Create(t models.Trip) (models.Trip, error) {
	db := r.db()
	if db == nil {
		return t, domain.PersistenceError{Op: "trip.create", Err: errNoDB}
	}
	prefs, itinerary, summary, err := encodeTripDocs(t)
	if err != nil {
		return t, domain.PersistenceError{Op: "trip.create", Err: err}
	}

	now := time.Now()
	res, err := db.Exec(`
		INSERT INTO trips
			(user_id, destination, start_date, end_date, budget_total, budget_spent, budget_remaining,
			 currency, preferences, itinerary, summary, status, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.UserID, t.Destination, t.StartDate, t.EndDate,
		t.Budget.Total, t.Budget.Spent, t.Budget.Remaining, t.Budget.Currency,
		prefs, itinerary, summary, string(t.Status), now, now,
	)
	if err != nil {
		return t, domain.PersistenceError{Op: "trip.create", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return t, domain.PersistenceError{Op: "trip.create", Err: err}
	}
	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now
	return t, nil
}

func (r TripRepository) GetByID(id, userID int64) (models.Trip, error) {
	db := r.db()
	if db == nil {
		return models.Trip{}, domain.PersistenceError{Op: "trip.get", Err: errNoDB}
	}
	row := db.QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id=? AND user_id=? LIMIT 1`, id, userID)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
	}
	if err != nil {
		return models.Trip{}, domain.PersistenceError{Op: "trip.get", Err: err}
	}
	return t, nil
}

// ListByUser returns the user's trips, newest first.
func (r TripRepository) ListByUser(userID int64) ([]models.Trip, error) {
	db := r.db()
	if db == nil {
		return nil, domain.PersistenceError{Op: "trip.list", Err: errNoDB}
	}
	rows, err := db.Query(`SELECT `+tripColumns+` FROM trips WHERE user_id=? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, domain.PersistenceError{Op: "trip.list", Err: err}
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, domain.PersistenceError{Op: "trip.list", Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return out, domain.PersistenceError{Op: "trip.list", Err: err}
	}
	return out, nil
}

// Update writes every mutable column of t. The owner and creation time are
// never changed.
func (r TripRepository) Update(t models.Trip) (models.Trip, error) {
	db := r.db()
	if db == nil {
		return t, domain.PersistenceError{Op: "trip.update", Err: errNoDB}
	}
	prefs, itinerary, summary, err := encodeTripDocs(t)
	if err != nil {
		return t, domain.PersistenceError{Op: "trip.update", Err: err}
	}

	now := time.Now()
	res, err := db.Exec(`
		UPDATE trips SET
			destination=?, start_date=?, end_date=?,
			budget_total=?, budget_spent=?, budget_remaining=?, currency=?,
			preferences=?, itinerary=?, summary=?, status=?, updated_at=?
		WHERE id=? AND user_id=?`,
		t.Destination, t.StartDate, t.EndDate,
		t.Budget.Total, t.Budget.Spent, t.Budget.Remaining, t.Budget.Currency,
		prefs, itinerary, summary, string(t.Status), now,
		t.ID, t.UserID,
	)
	if err != nil {
		return t, domain.PersistenceError{Op: "trip.update", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return t, domain.PersistenceError{Op: "trip.update", Err: err}
	}
	if affected == 0 {
		// MySQL reports 0 for rows matched but unchanged.
		exists, err := r.exists(db, t.ID, t.UserID)
		if err != nil {
			return t, domain.PersistenceError{Op: "trip.update", Err: err}
		}
		if !exists {
			return t, domain.NotFoundError{Resource: "trip"}
		}
	}
	t.UpdatedAt = now
	return t, nil
}

func (r TripRepository) Delete(id, userID int64) error {
	db := r.db()
	if db == nil {
		return domain.PersistenceError{Op: "trip.delete", Err: errNoDB}
	}
	res, err := db.Exec(`DELETE FROM trips WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return domain.PersistenceError{Op: "trip.delete", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.PersistenceError{Op: "trip.delete", Err: err}
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func (r TripRepository) exists(db *sql.DB, id, userID int64) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM trips WHERE id=? AND user_id=? LIMIT 1`, id, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(s rowScanner) (models.Trip, error) {
	var (
		t                         models.Trip
		status                    string
		prefs, itinerary, summary sql.NullString
	)
	if err := s.Scan(
		&t.ID, &t.UserID, &t.Destination, &t.StartDate, &t.EndDate,
		&t.Budget.Total, &t.Budget.Spent, &t.Budget.Remaining, &t.Budget.Currency,
		&prefs, &itinerary, &summary, &status, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return t, err
	}
	t.Status = models.TripStatus(status)
	if err := decodeJSON(prefs, &t.Preferences); err != nil {
		return t, fmt.Errorf("trip %d preferences: %w", t.ID, err)
	}
	if err := decodeJSON(itinerary, &t.Itinerary); err != nil {
		return t, fmt.Errorf("trip %d itinerary: %w", t.ID, err)
	}
	if err := decodeJSON(summary, &t.Summary); err != nil {
		return t, fmt.Errorf("trip %d summary: %w", t.ID, err)
	}
	if t.Itinerary == nil {
		t.Itinerary = []models.DayPlan{}
	}
	if t.Budget.Currency == "" {
		t.Budget.Currency = models.DefaultCurrency
	}
	return t, nil
}

func encodeTripDocs(t models.Trip) (prefs, itinerary, summary string, err error) {
	if prefs, err = encodeJSON(t.Preferences); err != nil {
		return
	}
	days := t.Itinerary
	if days == nil {
		days = []models.DayPlan{}
	}
	if itinerary, err = encodeJSON(days); err != nil {
		return
	}
	summary, err = encodeJSON(t.Summary)
	return
}
