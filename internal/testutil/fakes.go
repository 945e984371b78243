// Package testutil содержит in-memory реализации репозиториев и transaction manager для unit-тестов
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	clientRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/client"
)

// BookingRepo in-memory репозиторий бронирований с той же семантикой, что и PostgreSQL-версия
type BookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
	seq      map[string]int

	// Writes количество успешных Create/Update/Cancel
	Writes int

	// Err, если задан, возвращается из каждого метода
	Err error

	// GetByIDErr, если задан, возвращается только из GetByID
	GetByIDErr error
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{
		bookings: make(map[string]*domain.Booking),
		seq:      make(map[string]int),
	}
}

func (r *BookingRepo) HasConflict(_ context.Context, q domain.ConflictQuery) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}

	for _, b := range r.bookings {
		if !b.IsActive() || b.Room != q.Room || b.MeetingDate != q.MeetingDate {
			continue
		}
		if q.ExcludeID != nil && b.ID == *q.ExcludeID {
			continue
		}
		if b.Overlaps(q.Start, q.End) {
			return true, nil
		}
	}
	return false, nil
}

func (r *BookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	// аналог exclusion-ограничения
	for _, other := range r.bookings {
		if other.IsActive() && other.Room == b.Room && other.Overlaps(b.StartTime, b.EndTime) {
			return nil, bookingRepo.ErrConflict
		}
	}

	stored := *b
	stored.CreatedAt = time.Now()
	r.bookings[b.ID] = &stored
	r.seq[b.ID] = len(r.seq)
	r.Writes++

	cp := stored
	return &cp, nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if r.GetByIDErr != nil {
		return nil, r.GetByIDErr
	}

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *BookingRepo) GetActiveOwned(_ context.Context, id, clientID string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	b, ok := r.bookings[id]
	if !ok || b.ClientID != clientID || !b.IsActive() {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *BookingRepo) ListByClient(_ context.Context, clientID string) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.ClientID == clientID {
			cp := *b
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime.Before(result[j].StartTime)
		}
		return r.seq[result[i].ID] < r.seq[result[j].ID]
	})
	return result, nil
}

func (r *BookingRepo) Update(_ context.Context, id string, changes domain.BookingChanges) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if changes.IsEmpty() {
		return nil
	}

	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	next := *b
	if changes.Room != nil {
		next.Room = *changes.Room
	}
	if changes.MeetingDate != nil {
		next.MeetingDate = *changes.MeetingDate
	}
	if changes.StartTime != nil {
		next.StartTime = *changes.StartTime
	}
	if changes.EndTime != nil {
		next.EndTime = *changes.EndTime
	}
	if changes.SetDescription {
		next.Description = changes.Description
	}

	for otherID, other := range r.bookings {
		if otherID != id && other.IsActive() && other.Room == next.Room && other.Overlaps(next.StartTime, next.EndTime) {
			return bookingRepo.ErrConflict
		}
	}

	r.bookings[id] = &next
	r.Writes++
	return nil
}

func (r *BookingRepo) Cancel(_ context.Context, id, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	b, ok := r.bookings[id]
	if !ok || b.ClientID != clientID || !b.IsActive() {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCanceled
	r.Writes++
	return nil
}

func (r *BookingRepo) ReleaseExpired(_ context.Context, now domain.Timestamp) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}

	var released int64
	for _, b := range r.bookings {
		if b.IsActive() && b.EndTime.Before(now) {
			b.Status = domain.StatusCanceled
			released++
		}
	}
	return released, nil
}

// Put кладет бронирование напрямую, минуя проверки
func (r *BookingRepo) Put(b *domain.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	r.seq[b.ID] = len(r.seq)
}

// ClientRepo in-memory репозиторий клиентов
type ClientRepo struct {
	mu      sync.Mutex
	clients map[string]*domain.Client
	Err     error
}

func NewClientRepo() *ClientRepo {
	return &ClientRepo{clients: make(map[string]*domain.Client)}
}

func (r *ClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, existing := range r.clients {
		if existing.Email == c.Email {
			return nil, clientRepo.ErrDuplicateEmail
		}
	}
	stored := *c
	stored.CreatedAt = time.Now()
	r.clients[c.ID] = &stored
	cp := stored
	return &cp, nil
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	c, ok := r.clients[id]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *ClientRepo) GetByEmail(_ context.Context, email string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, c := range r.clients {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, clientRepo.ErrClientNotFound
}

func (r *ClientRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == clientRepo.ErrClientNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *ClientRepo) GetAvailability(ctx context.Context, id string) (domain.Availability, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Availability, nil
}

func (r *ClientRepo) UpdateProfile(_ context.Context, id string, changes domain.ProfileChanges) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	c, ok := r.clients[id]
	if !ok {
		return clientRepo.ErrClientNotFound
	}
	if changes.Name != nil {
		c.Name = *changes.Name
	}
	if changes.Role != nil {
		c.Role = changes.Role
	}
	if changes.Age != nil {
		c.Age = changes.Age
	}
	if changes.Availability != nil {
		c.Availability = changes.Availability
	}
	if changes.ProfilePhoto != nil {
		c.ProfilePhoto = changes.ProfilePhoto
	}
	return nil
}

// MessageRepo in-memory журнал сообщений
type MessageRepo struct {
	mu       sync.Mutex
	messages []*domain.SupportMessage
	Err      error
}

func NewMessageRepo() *MessageRepo {
	return &MessageRepo{}
}

func (r *MessageRepo) Create(_ context.Context, m *domain.SupportMessage) (*domain.SupportMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	stored := *m
	// монотонное время создания, чтобы порядок был детерминированным
	stored.CreatedAt = time.Date(2025, 1, 1, 0, 0, len(r.messages), 0, time.UTC)
	r.messages = append(r.messages, &stored)
	cp := stored
	return &cp, nil
}

func (r *MessageRepo) ListByClient(_ context.Context, clientID string, channel domain.Channel) ([]*domain.SupportMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	result := make([]*domain.SupportMessage, 0)
	for i := len(r.messages) - 1; i >= 0; i-- {
		m := r.messages[i]
		if m.ClientID == clientID && m.Channel == channel {
			cp := *m
			result = append(result, &cp)
		}
	}
	return result, nil
}

// TxManager выполняет функцию без настоящей транзакции
type TxManager struct {
	Calls int
	Err   error
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return m.Err
}

// Metrics запоминает исходы операций
type Metrics struct {
	mu       sync.Mutex
	Outcomes map[string]int
}

func NewMetrics() *Metrics {
	return &Metrics{Outcomes: make(map[string]int)}
}

func (m *Metrics) ObserveBooking(operation, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes[operation+":"+outcome]++
}

func (m *Metrics) ObserveBookings(operation, outcome string, count int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes[operation+":"+outcome] += int(count)
}

func (m *Metrics) Count(operation, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Outcomes[operation+":"+outcome]
}
