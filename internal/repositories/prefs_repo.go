package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fleetbilling/internal/billing"
	intdb "fleetbilling/internal/db"
	"fleetbilling/internal/domain"
)

// PrefsRepository keeps one JSON document of form preferences per profile.
type PrefsRepository struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

func (r PrefsRepository) store() store { return store{DB: r.DB, Dialect: r.Dialect} }

// Get returns empty preferences for an unknown profile.
func (r PrefsRepository) Get(ctx context.Context, profile string) (billing.UserPreferences, error) {
	out := billing.UserPreferences{LastByRoute: map[string]billing.LastUsed{}}
	s := r.store()
	db := s.db()
	if db == nil {
		return out, errNoDB
	}

	var data []byte
	err := db.QueryRowContext(ctx, s.dialect().Rebind(`SELECT data FROM user_preferences WHERE profile = ?`), profile).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("get preferences: %w", err)
	}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode preferences: %w", err)
	}
	if out.LastByRoute == nil {
		out.LastByRoute = map[string]billing.LastUsed{}
	}
	return out, nil
}

func (r PrefsRepository) Save(ctx context.Context, profile string, prefs billing.UserPreferences) error {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return domain.Invalid("profile", "required")
	}
	s := r.store()
	db := s.db()
	if db == nil {
		return errNoDB
	}
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	d := s.dialect()
	query := `INSERT INTO user_preferences (profile, data) VALUES (?, ?)` + d.Upsert("profile", "data")
	if _, err := db.ExecContext(ctx, d.Rebind(query), profile, string(data)); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
