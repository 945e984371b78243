package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

var clientColumns = []string{
	"id",
	"email",
	"password_hash",
	"name",
	"role",
	"age",
	"availability_json",
	"profile_photo",
	"created_at",
}

// Repository репозиторий клиентов (учетные данные и профиль)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует клиента; повтор email -> ErrDuplicateEmail
func (r *Repository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("id", "email", "password_hash", "name").
		Values(client.ID, client.Email, client.PasswordHash, client.Name).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	client.CreatedAt = createdAt.Time
	return client, nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByEmail получает клиента по email (вместе с хешем пароля)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"email": email})
}

// ExistsByEmail проверяет, занят ли email
func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("clients").
		Where(squirrel.Eq{"email": email}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return false, fmt.Errorf("%w: ExistsByEmail - scan count: %v", ErrScanRow, err)
	}

	return total > 0, nil
}

// GetAvailability читает только доступность клиента; nil если не задана
func (r *Repository) GetAvailability(ctx context.Context, id string) (domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("availability_json").
		From("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - build select query: %v", ErrBuildQuery, err)
	}

	var raw sql.NullString
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - scan: %v", ErrScanRow, err)
	}

	return decodeAvailability(raw)
}

// UpdateProfile переписывает только переданные поля профиля
func (r *Repository) UpdateProfile(ctx context.Context, id string, changes domain.ProfileChanges) error {
	if changes.IsEmpty() {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("clients").Where(squirrel.Eq{"id": id})

	if changes.Name != nil {
		updateBuilder = updateBuilder.Set("name", *changes.Name)
	}
	if changes.Role != nil {
		updateBuilder = updateBuilder.Set("role", *changes.Role)
	}
	if changes.Age != nil {
		updateBuilder = updateBuilder.Set("age", *changes.Age)
	}
	if changes.Availability != nil {
		encoded, err := json.Marshal(changes.Availability)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEncodeAvailability, err)
		}
		updateBuilder = updateBuilder.Set("availability_json", string(encoded))
	}
	if changes.ProfilePhoto != nil {
		updateBuilder = updateBuilder.Set("profile_photo", *changes.ProfilePhoto)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrClientNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var (
		client       domain.Client
		name         sql.NullString
		age          sql.NullInt64
		availability sql.NullString
		createdAt    sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&client.ID,
		&client.Email,
		&client.PasswordHash,
		&name,
		&client.Role,
		&age,
		&availability,
		&client.ProfilePhoto,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan client: %v", ErrScanRow, op, err)
	}

	client.Name = name.String
	if age.Valid {
		v := int(age.Int64)
		client.Age = &v
	}
	client.CreatedAt = createdAt.Time

	client.Availability, err = decodeAvailability(availability)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &client, nil
}

func decodeAvailability(raw sql.NullString) (domain.Availability, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	availability, err := domain.ParseAvailability([]byte(raw.String))
	if err != nil {
		return nil, fmt.Errorf("%w: decode availability_json: %v", ErrScanRow, err)
	}
	return availability, nil
}
