package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

func (r *Repository) GetEmailConfig(serviceID string) (*domain.EmailConfig, error) {
	query := `
		SELECT id, subject, body, enabled, version
		FROM email_configs WHERE service_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	config := &domain.EmailConfig{
		ServiceID: serviceID,
	}

	dst := []any{&config.ID, &config.Subject, &config.Body, &config.Enabled, &config.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, serviceID).Scan(dst...); err != nil {
		return nil, err
	}

	return config, nil
}

// UpsertEmailConfig 整体覆盖某个服务的邮件模板
func (r *Repository) UpsertEmailConfig(config *domain.EmailConfig) error {
	query := `
		INSERT INTO email_configs (service_id, subject, body, enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (service_id) DO UPDATE
		SET
			subject = EXCLUDED.subject,
			body = EXCLUDED.body,
			enabled = EXCLUDED.enabled,
			version = email_configs.version + 1
		RETURNING id, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{config.ServiceID, config.Subject, config.Body, config.Enabled}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&config.ID, &config.Version); err != nil {
		return err
	}

	return nil
}

// GetFeatureFlag 查询功能开关，记录不存在时视为关闭
func (r *Repository) GetFeatureFlag(name string) (bool, error) {
	query := `
		SELECT COALESCE((SELECT enabled FROM feature_flags WHERE name = $1), FALSE)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	enabled := false
	if err := r.dbpool.QueryRowContext(ctx, query, name).Scan(&enabled); err != nil {
		return false, err
	}

	return enabled, nil
}

func (r *Repository) SetFeatureFlag(name string, enabled bool) error {
	query := `
		INSERT INTO feature_flags (name, enabled)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET enabled = EXCLUDED.enabled
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, name, enabled)
	if err != nil {
		return err
	}

	return nil
}

// CreateAuditRecord 写入审计记录。调用方必须吞掉这里的错误，
// 审计失败只记录日志，绝不允许影响主操作。
func (r *Repository) CreateAuditRecord(record *domain.AuditRecord) error {
	query := `
		INSERT INTO audit_records (actor_id, action, target, detail)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	detailJSON, err := json.Marshal(record.Detail)
	if err != nil {
		return err
	}

	args := []any{record.ActorID, record.Action, record.Target, detailJSON}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt); err != nil {
		return err
	}

	return nil
}
