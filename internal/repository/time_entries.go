package repository

import (
	"context"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

func (r *Repository) CreateTimeEntry(entry *domain.TimeEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO time_entries (user_id, unit_id, start_time, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{entry.UserID, entry.UnitID, entry.StartTime, entry.Note}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt, &entry.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTimeEntryByID(id int64) (*domain.TimeEntry, error) {
	query := `
		SELECT user_id, unit_id, start_time, end_time, note, created_at, version
		FROM time_entries WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	entry := &domain.TimeEntry{
		ID: id,
	}

	dst := []any{&entry.UserID, &entry.UnitID, &entry.StartTime, &entry.EndTime, &entry.Note, &entry.CreatedAt, &entry.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return entry, nil
}

// FinishTimeEntry 补上打卡记录的结束时间
func (r *Repository) FinishTimeEntry(entry *domain.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET
			end_time = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, entry.EndTime, entry.ID, entry.Version).Scan(&entry.Version); err != nil {
		return err
	}

	return nil
}

// GetTimeEntriesByUserID 获取某个用户在某个时间区间内的打卡记录
func (r *Repository) GetTimeEntriesByUserID(userID int64, from time.Time, to time.Time) ([]*domain.TimeEntry, error) {
	query := `
		SELECT id, user_id, unit_id, start_time, end_time, note, created_at, version
		FROM time_entries
		WHERE user_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.TimeEntry, 0)
	for rows.Next() {
		entry := &domain.TimeEntry{}
		dst := []any{&entry.ID, &entry.UserID, &entry.UnitID, &entry.StartTime, &entry.EndTime, &entry.Note, &entry.CreatedAt, &entry.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
