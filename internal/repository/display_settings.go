package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

// GetDisplaySettings 读取某个单位组合的显示设置，没有记录时返回空设置
func (r *Repository) GetDisplaySettings(unitKey string) (*domain.DisplaySettings, error) {
	query := `
		SELECT id, ordered_user_ids, hidden_user_ids, version
		FROM display_settings WHERE unit_key = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	settings := &domain.DisplaySettings{
		UnitKey:        unitKey,
		OrderedUserIDs: make([]int64, 0),
		HiddenUserIDs:  make([]int64, 0),
	}

	var orderedJSON, hiddenJSON []byte
	err := r.dbpool.QueryRowContext(ctx, query, unitKey).Scan(&settings.ID, &orderedJSON, &hiddenJSON, &settings.Version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return settings, nil
	case err != nil:
		return nil, err
	}

	if err := json.Unmarshal(orderedJSON, &settings.OrderedUserIDs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(hiddenJSON, &settings.HiddenUserIDs); err != nil {
		return nil, err
	}

	return settings, nil
}

// UpsertDisplaySettings 整体覆盖某个单位组合的显示设置
func (r *Repository) UpsertDisplaySettings(settings *domain.DisplaySettings) error {
	query := `
		INSERT INTO display_settings (unit_key, ordered_user_ids, hidden_user_ids)
		VALUES ($1, $2, $3)
		ON CONFLICT (unit_key) DO UPDATE
		SET
			ordered_user_ids = EXCLUDED.ordered_user_ids,
			hidden_user_ids = EXCLUDED.hidden_user_ids,
			version = display_settings.version + 1
		RETURNING id, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	orderedJSON, err := json.Marshal(settings.OrderedUserIDs)
	if err != nil {
		return err
	}
	hiddenJSON, err := json.Marshal(settings.HiddenUserIDs)
	if err != nil {
		return err
	}

	if err := r.dbpool.QueryRowContext(ctx, query, settings.UnitKey, orderedJSON, hiddenJSON).Scan(&settings.ID, &settings.Version); err != nil {
		return err
	}

	return nil
}
