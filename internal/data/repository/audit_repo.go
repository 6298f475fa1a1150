package repository

import (
	"context"
	"fmt"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/database"

	"go.uber.org/zap"
)

type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindRecent(ctx context.Context, limit, offset int) ([]*entity.AuditLog, error)
	Count(ctx context.Context) (int64, error)
}

type auditRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditRepository(db database.PgxIface, log *zap.Logger) AuditRepository {
	return &auditRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit")),
	}
}

func (r *auditRepository) Create(ctx context.Context, record *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, actor_id, action, entity_type, entity_id, detail, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.ActorID,
		record.Action,
		record.EntityType,
		record.EntityID,
		record.Detail,
		record.IPAddress,
		record.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create audit log",
			zap.Error(err),
			zap.String("action", record.Action),
		)
		return fmt.Errorf("create audit log %s: %w", record.Action, err)
	}

	return nil
}

func (r *auditRepository) FindRecent(ctx context.Context, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, actor_id, action, entity_type, entity_id, detail, ip_address, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to query audit logs", zap.Error(err))
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.AuditLog
	for rows.Next() {
		var record entity.AuditLog
		err := rows.Scan(
			&record.ID,
			&record.ActorID,
			&record.Action,
			&record.EntityType,
			&record.EntityID,
			&record.Detail,
			&record.IPAddress,
			&record.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan audit log row", zap.Error(err))
			return nil, fmt.Errorf("scan audit log row: %w", err)
		}
		logs = append(logs, &record)
	}

	return logs, nil
}

func (r *auditRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`).Scan(&count); err != nil {
		r.log.Error("Failed to count audit logs", zap.Error(err))
		return 0, fmt.Errorf("count audit logs: %w", err)
	}

	return count, nil
}
