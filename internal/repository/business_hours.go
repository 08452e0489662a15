package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

// GetBusinessHours 读取某个单位某一周的营业时间。
// 第一次查看时记录还不存在，此时用配置中的默认时间懒创建一条。
func (r *Repository) GetBusinessHours(unitID int64, weekStart time.Time) (*domain.BusinessHours, error) {
	query := `
		SELECT id, daily, version FROM business_hours
		WHERE unit_id = $1 AND week_start = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	hours := &domain.BusinessHours{
		UnitID:    unitID,
		WeekStart: weekStart,
	}

	var dailyJSON []byte
	err := r.dbpool.QueryRowContext(ctx, query, unitID, weekStart).Scan(&hours.ID, &dailyJSON, &hours.Version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		for i := range hours.Daily {
			hours.Daily[i] = domain.DailyHours{
				OpeningTime: r.cfg.BusinessHours.DefaultOpeningTime,
				ClosingTime: r.cfg.BusinessHours.DefaultClosingTime,
			}
		}
		if err := r.insertBusinessHours(ctx, hours); err != nil {
			return nil, err
		}
		return hours, nil
	case err != nil:
		return nil, err
	}

	if err := json.Unmarshal(dailyJSON, &hours.Daily); err != nil {
		return nil, err
	}

	return hours, nil
}

func (r *Repository) insertBusinessHours(ctx context.Context, hours *domain.BusinessHours) error {
	query := `
		INSERT INTO business_hours (unit_id, week_start, daily)
		VALUES ($1, $2, $3)
		ON CONFLICT (unit_id, week_start) DO NOTHING
		RETURNING id, version
	`

	dailyJSON, err := json.Marshal(hours.Daily)
	if err != nil {
		return err
	}

	err = r.dbpool.QueryRowContext(ctx, query, hours.UnitID, hours.WeekStart, dailyJSON).Scan(&hours.ID, &hours.Version)
	if errors.Is(err, sql.ErrNoRows) {
		// 并发的第一次查看已经插入过了，不处理
		return nil
	}

	return err
}

// UpdateBusinessHours 整体覆盖某个单位某一周的营业时间
func (r *Repository) UpdateBusinessHours(hours *domain.BusinessHours) error {
	query := `
		UPDATE business_hours
		SET
			daily = $1,
			version = version + 1
		WHERE unit_id = $2 AND week_start = $3
		RETURNING id, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dailyJSON, err := json.Marshal(hours.Daily)
	if err != nil {
		return err
	}

	if err := r.dbpool.QueryRowContext(ctx, query, dailyJSON, hours.UnitID, hours.WeekStart).Scan(&hours.ID, &hours.Version); err != nil {
		return err
	}

	return nil
}
