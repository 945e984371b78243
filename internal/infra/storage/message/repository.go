package message

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

// Repository журнал сообщений в поддержку и AI-ассистенту
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сообщений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет сообщение и заполняет CreatedAt
func (r *Repository) Create(ctx context.Context, msg *domain.SupportMessage) (*domain.SupportMessage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("support_messages").
		Columns("id", "client_id", "channel", "user_message", "ai_response").
		Values(msg.ID, msg.ClientID, msg.Channel, msg.Message, msg.AIResponse).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	msg.CreatedAt = createdAt.Time
	return msg, nil
}

// ListByClient сообщения клиента в канале, новые первыми
func (r *Repository) ListByClient(ctx context.Context, clientID string, channel domain.Channel) ([]*domain.SupportMessage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "client_id", "channel", "user_message", "ai_response", "created_at").
		From("support_messages").
		Where(squirrel.Eq{"client_id": clientID, "channel": channel}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	messages := make([]*domain.SupportMessage, 0)
	for rows.Next() {
		var (
			msg       domain.SupportMessage
			createdAt sql.NullTime
		)
		if err := rows.Scan(&msg.ID, &msg.ClientID, &msg.Channel, &msg.Message, &msg.AIResponse, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListByClient - scan row: %v", ErrScanRow, err)
		}
		msg.CreatedAt = createdAt.Time
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByClient - rows error: %v", ErrScanRow, err)
	}

	return messages, nil
}
