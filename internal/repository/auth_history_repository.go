package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/samoilovartem/movies-auth/internal/model"
)

// AuthHistoryRepo persists the append-only authentication audit trail.
// Rows are only ever inserted; nothing in the service mutates or
// deletes them.
type AuthHistoryRepo struct{ DB *sql.DB }

func NewAuthHistoryRepo(db *sql.DB) *AuthHistoryRepo { return &AuthHistoryRepo{DB: db} }

// Insert appends an auth event.  EventTime is assigned by the database.
func (r *AuthHistoryRepo) Insert(ctx context.Context, ev model.AuthHistoryEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO auth_history (id, user_id, auth_event_type, auth_event_fingerprint, device) VALUES (?,?,?,?,?)",
		ev.ID, ev.UserID, ev.EventType, ev.Fingerprint, ev.Device)
	return err
}

// ListByUser returns one page of the user's auth events ordered newest
// first, plus the total row count for pagination.  Page numbers start
// at 1.
func (r *AuthHistoryRepo) ListByUser(ctx context.Context, userID string, page, perPage int) ([]model.AuthHistoryEvent, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 3
	}

	var total int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM auth_history WHERE user_id=?", userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, auth_event_type, auth_event_fingerprint, device, auth_event_time
		 FROM auth_history
		 WHERE user_id=?
		 ORDER BY auth_event_time DESC
		 LIMIT ? OFFSET ?`, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []model.AuthHistoryEvent
	for rows.Next() {
		var ev model.AuthHistoryEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.EventType, &ev.Fingerprint, &ev.Device, &ev.EventTime); err != nil {
			return nil, 0, err
		}
		events = append(events, ev)
	}
	return events, total, rows.Err()
}
