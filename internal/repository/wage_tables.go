package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

// GetWageTable 读取某个用户的时薪表，没有记录时返回空表而不是错误
func (r *Repository) GetWageTable(userID int64) (*domain.WageTable, error) {
	query := `
		SELECT id, wages, version FROM wage_tables WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	table := &domain.WageTable{
		UserID: userID,
		Wages:  make(map[int64]float64),
	}

	var wagesJSON []byte
	err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(&table.ID, &wagesJSON, &table.Version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return table, nil
	case err != nil:
		return nil, err
	}

	// jsonb 的键只能是字符串，这里转回 int64
	raw := make(map[string]float64)
	if err := json.Unmarshal(wagesJSON, &raw); err != nil {
		return nil, err
	}
	for key, wage := range raw {
		unitID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		table.Wages[unitID] = wage
	}

	return table, nil
}

// UpsertWageTable 合并写入某个用户的时薪表
func (r *Repository) UpsertWageTable(table *domain.WageTable) error {
	query := `
		INSERT INTO wage_tables (user_id, wages)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET
			wages = wage_tables.wages || EXCLUDED.wages,
			version = wage_tables.version + 1
		RETURNING id, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	raw := make(map[string]float64, len(table.Wages))
	for unitID, wage := range table.Wages {
		raw[strconv.FormatInt(unitID, 10)] = wage
	}
	wagesJSON, err := json.Marshal(raw)
	if err != nil {
		return err
	}

	if err := r.dbpool.QueryRowContext(ctx, query, table.UserID, wagesJSON).Scan(&table.ID, &table.Version); err != nil {
		return err
	}

	return nil
}
