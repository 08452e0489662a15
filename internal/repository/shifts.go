package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

var ErrNoDraftShifts = errors.New("没有可发布的草稿班次")

func (r *Repository) CreateShift(shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO shifts (user_id, unit_id, start_time, end_time, is_day_off, note, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{shift.UserID, shift.UnitID, shift.StartTime, shift.EndTime, shift.IsDayOff, shift.Note, shift.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT user_id, unit_id, start_time, end_time, is_day_off, note, status, created_at, version
		FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	dst := []any{&shift.UserID, &shift.UnitID, &shift.StartTime, &shift.EndTime, &shift.IsDayOff, &shift.Note, &shift.Status, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return shift, nil
}

// GetShiftsByUnitIDs 获取给定单位在某个时间区间内的所有班次
func (r *Repository) GetShiftsByUnitIDs(unitIDs []int64, from time.Time, to time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT id, user_id, unit_id, start_time, end_time, is_day_off, note, status, created_at, version
		FROM shifts
		WHERE unit_id = ANY($1) AND start_time >= $2 AND start_time < $3
		ORDER BY start_time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, unitIDs, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShifts(rows)
}

// GetPublishedShiftsByUserID 获取某个用户的所有已发布班次（周工资估算用）
func (r *Repository) GetPublishedShiftsByUserID(userID int64) ([]*domain.Shift, error) {
	query := `
		SELECT id, user_id, unit_id, start_time, end_time, is_day_off, note, status, created_at, version
		FROM shifts
		WHERE user_id = $1 AND status = $2
		ORDER BY start_time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, domain.ShiftStatusPublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShifts(rows)
}

func scanShifts(rows *sql.Rows) ([]*domain.Shift, error) {
	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ID, &shift.UserID, &shift.UnitID, &shift.StartTime, &shift.EndTime, &shift.IsDayOff, &shift.Note, &shift.Status, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			user_id = $1,
			unit_id = $2,
			start_time = $3,
			end_time = $4,
			is_day_off = $5,
			note = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.UserID, shift.UnitID, shift.StartTime, shift.EndTime, shift.IsDayOff, shift.Note, shift.ID, shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// PublishShifts 在一个事务内把给定的草稿班次全部置为已发布。
// 整批要么全部生效要么全部失败，状态只允许从草稿变为已发布。
func (r *Repository) PublishShifts(ids []int64) error {
	if len(ids) == 0 {
		return ErrNoDraftShifts
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE shifts
		SET
			status = $1,
			version = version + 1
		WHERE id = ANY($2) AND status = $3
	`

	if _, err := tx.ExecContext(ctx, query, domain.ShiftStatusPublished, ids, domain.ShiftStatusDraft); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
