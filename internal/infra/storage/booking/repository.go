package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Моменты времени читаются и пишутся только как строки YYYY-MM-DDTHH:MM,
// поэтому драйвер не выполняет никаких преобразований часовых поясов
var bookingColumns = []string{
	"id",
	"client_id",
	"room_label",
	"to_char(meeting_date, 'YYYY-MM-DD')",
	`to_char(start_time, 'YYYY-MM-DD"T"HH24:MI')`,
	`to_char(end_time, 'YYYY-MM-DD"T"HH24:MI')`,
	"description",
	"status",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет новое бронирование и возвращает его в том виде, в каком оно сохранено
// Вызывается внутри транзакции вместе с HasConflict; пересечение, пойманное
// exclusion-ограничением, возвращается как ErrConflict
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"client_id",
			"room_label",
			"meeting_date",
			"start_time",
			"end_time",
			"description",
			"status",
		).
		Values(
			booking.ID,
			booking.ClientID,
			booking.Room,
			squirrel.Expr("?::date", booking.MeetingDate.String()),
			squirrel.Expr("?::timestamp", booking.StartTime.String()),
			squirrel.Expr("?::timestamp", booking.EndTime.String()),
			booking.Description,
			booking.Status,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: Create - %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return r.GetByID(ctx, booking.ID)
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, readError("GetByID", err)
	}

	return booking, nil
}

// GetActiveOwned получает активное бронирование клиента
// Чужое, отмененное и несуществующее бронирование неразличимы (ErrBookingNotFound)
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetActiveOwned(ctx context.Context, id, clientID string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"id":        id,
			"client_id": clientID,
			"status":    domain.StatusActive,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOwned - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, readError("GetActiveOwned", err)
	}

	return booking, nil
}

// ListByClient все бронирования клиента (любой статус) по возрастанию start_time
func (r *Repository) ListByClient(ctx context.Context, clientID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("start_time ASC", "created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// HasConflict проверяет, есть ли активное бронирование той же комнаты на ту же дату,
// пересекающее полуоткрытый интервал [Start, End)
func (r *Repository) HasConflict(ctx context.Context, q domain.ConflictQuery) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"room_label": q.Room,
			"status":     domain.StatusActive,
		}).
		Where(squirrel.Expr("meeting_date = ?::date", q.MeetingDate.String())).
		Where(squirrel.Expr("start_time < ?::timestamp", q.End.String())).
		Where(squirrel.Expr("end_time > ?::timestamp", q.Start.String()))

	if q.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *q.ExcludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasConflict - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		if pgerr.IsConflict(err) {
			return false, fmt.Errorf("%w: HasConflict - %v", ErrConflict, err)
		}
		return false, fmt.Errorf("%w: HasConflict - scan count: %v", ErrScanRow, err)
	}

	return total > 0, nil
}

// Update переписывает только переданные колонки
func (r *Repository) Update(ctx context.Context, id string, changes domain.BookingChanges) error {
	if changes.IsEmpty() {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").Where(squirrel.Eq{"id": id})

	if changes.Room != nil {
		updateBuilder = updateBuilder.Set("room_label", *changes.Room)
	}
	if changes.MeetingDate != nil {
		updateBuilder = updateBuilder.Set("meeting_date", squirrel.Expr("?::date", changes.MeetingDate.String()))
	}
	if changes.StartTime != nil {
		updateBuilder = updateBuilder.Set("start_time", squirrel.Expr("?::timestamp", changes.StartTime.String()))
	}
	if changes.EndTime != nil {
		updateBuilder = updateBuilder.Set("end_time", squirrel.Expr("?::timestamp", changes.EndTime.String()))
	}
	if changes.SetDescription {
		updateBuilder = updateBuilder.Set("description", changes.Description)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsConflict(err) {
			return fmt.Errorf("%w: Update - %v", ErrConflict, err)
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel единственный условный переход ACTIVE -> CANCELED
// 0 затронутых строк (нет, чужое или уже отменено) -> ErrBookingNotFound
func (r *Repository) Cancel(ctx context.Context, id, clientID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCanceled).
		Where(squirrel.Eq{
			"id":        id,
			"client_id": clientID,
			"status":    domain.StatusActive,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ReleaseExpired отменяет все активные бронирования, закончившиеся до now
// Возвращает количество освобожденных бронирований
func (r *Repository) ReleaseExpired(ctx context.Context, now domain.Timestamp) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCanceled).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.Expr("end_time < ?::timestamp", now.String())).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseExpired - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseExpired - execute update: %v", ErrExecQuery, err)
	}

	released, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return released, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking     domain.Booking
		meetingDate string
		start, end  string
		createdAt   sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.Room,
		&meetingDate,
		&start,
		&end,
		&booking.Description,
		&booking.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.MeetingDate = types.DateString(meetingDate)
	booking.StartTime = domain.Timestamp(start)
	booking.EndTime = domain.Timestamp(end)
	booking.CreatedAt = createdAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, readError("scanBookings", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, readError("scanBookings", err)
	}

	return bookings, nil
}

// readError классифицирует ошибку чтения строки
// Внутри SERIALIZABLE транзакции даже чтение может получить 40001, это конфликт, а не сбой
func readError(op string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrBookingNotFound
	case pgerr.IsConflict(err):
		return fmt.Errorf("%w: %s - %v", ErrConflict, op, err)
	default:
		return fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}
}
