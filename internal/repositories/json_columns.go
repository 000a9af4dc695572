package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
)

var errNoDB = errors.New("database is not connected")

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeJSON leaves dst untouched for NULL or empty columns.
func decodeJSON(col sql.NullString, dst any) error {
	if !col.Valid || strings.TrimSpace(col.String) == "" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), dst)
}
