package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	intconfig "tripplanner/internal/config"
	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

const userColumns = `id, name, email, password_hash, preferences, created_at, updated_at`

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r UserRepository) Create(u models.User) (models.User, error) {
	db := r.db()
	if db == nil {
		return u, domain.PersistenceError{Op: "user.create", Err: errNoDB}
	}
	prefs, err := encodeJSON(u.Preferences)
	if err != nil {
		return u, domain.PersistenceError{Op: "user.create", Err: err}
	}

	u.Email = normalizeEmail(u.Email)
	now := time.Now()
	res, err := db.Exec(`
		INSERT INTO users (name, email, password_hash, preferences, created_at, updated_at)
		VALUES (?,?,?,?,?,?)`,
		u.Name, u.Email, u.PasswordHash, prefs, now, now,
	)
	if err != nil {
		if isDuplicate(err) {
			return u, domain.ConflictError{Resource: "user", Msg: "email already registered", Err: err}
		}
		return u, domain.PersistenceError{Op: "user.create", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return u, domain.PersistenceError{Op: "user.create", Err: err}
	}
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return u, nil
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	db := r.db()
	if db == nil {
		return models.User{}, domain.PersistenceError{Op: "user.get", Err: errNoDB}
	}
	row := db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email=? LIMIT 1`, normalizeEmail(email))
	return r.one(row)
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	db := r.db()
	if db == nil {
		return models.User{}, domain.PersistenceError{Op: "user.get", Err: errNoDB}
	}
	row := db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id=? LIMIT 1`, id)
	return r.one(row)
}

func (r UserRepository) EmailExists(email string) (bool, error) {
	db := r.db()
	if db == nil {
		return false, domain.PersistenceError{Op: "user.email_exists", Err: errNoDB}
	}
	var one int
	err := db.QueryRow(`SELECT 1 FROM users WHERE email=? LIMIT 1`, normalizeEmail(email)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, domain.PersistenceError{Op: "user.email_exists", Err: err}
	}
	return true, nil
}

func (r UserRepository) Update(u models.User) (models.User, error) {
	db := r.db()
	if db == nil {
		return u, domain.PersistenceError{Op: "user.update", Err: errNoDB}
	}
	prefs, err := encodeJSON(u.Preferences)
	if err != nil {
		return u, domain.PersistenceError{Op: "user.update", Err: err}
	}

	u.Email = normalizeEmail(u.Email)
	now := time.Now()
	_, err = db.Exec(`
		UPDATE users SET name=?, email=?, password_hash=?, preferences=?, updated_at=?
		WHERE id=?`,
		u.Name, u.Email, u.PasswordHash, prefs, now, u.ID,
	)
	if err != nil {
		if isDuplicate(err) {
			return u, domain.ConflictError{Resource: "user", Msg: "email already registered", Err: err}
		}
		return u, domain.PersistenceError{Op: "user.update", Err: err}
	}
	u.UpdatedAt = now
	return u, nil
}

func (r UserRepository) one(row *sql.Row) (models.User, error) {
	var (
		u     models.User
		prefs sql.NullString
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &prefs, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return models.User{}, domain.PersistenceError{Op: "user.get", Err: err}
	}
	if err := decodeJSON(prefs, &u.Preferences); err != nil {
		return models.User{}, domain.PersistenceError{Op: "user.get", Err: err}
	}
	return u, nil
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
