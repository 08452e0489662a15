package repository

import (
	"context"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

func (r *Repository) CreateUnit(unit *domain.Unit) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO units (name)
		VALUES ($1)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, unit.Name).Scan(&unit.ID, &unit.CreatedAt, &unit.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetUnitByID(id int64) (*domain.Unit, error) {
	query := `
		SELECT name, created_at, version FROM units WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	unit := &domain.Unit{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&unit.Name, &unit.CreatedAt, &unit.Version); err != nil {
		return nil, err
	}

	return unit, nil
}

func (r *Repository) GetAllUnits() ([]*domain.Unit, error) {
	query := `
		SELECT id, name, created_at, version FROM units ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	units := make([]*domain.Unit, 0)
	for rows.Next() {
		unit := &domain.Unit{}
		if err := rows.Scan(&unit.ID, &unit.Name, &unit.CreatedAt, &unit.Version); err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return units, nil
}

func (r *Repository) UpdateUnit(unit *domain.Unit) error {
	query := `
		UPDATE units
		SET
			name = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, unit.Name, unit.ID, unit.Version).Scan(&unit.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteUnit(id int64) error {
	query := `
		DELETE FROM units WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) AddUnitMember(unitID int64, userID int64) error {
	query := `
		INSERT INTO user_units (user_id, unit_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, unit_id) DO NOTHING
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, userID, unitID)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) RemoveUnitMember(unitID int64, userID int64) error {
	query := `
		DELETE FROM user_units WHERE user_id = $1 AND unit_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, userID, unitID)
	if err != nil {
		return err
	}

	return nil
}

// GetUsersByUnitIDs 获取属于任意一个给定单位的所有用户（花名册）
func (r *Repository) GetUsersByUnitIDs(unitIDs []int64) ([]*domain.User, error) {
	query := `
		SELECT DISTINCT u.id, u.username, u.password_hash, u.full_name, u.email, u.role, u.position, u.is_active, u.created_at, u.version
		FROM users u
		JOIN user_units uu ON u.id = uu.user_id
		WHERE uu.unit_id = ANY($1) AND u.is_active = TRUE
		ORDER BY u.position, u.full_name, u.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, unitIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := []any{&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.Email, &user.Role, &user.Position, &user.IsActive, &user.CreatedAt, &user.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
