package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindByRef(ctx context.Context, ref string) (*entity.Booking, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, paymentState entity.PaymentState) error {
	args := m.Called(ctx, bookingID, status, paymentState)
	return args.Error(0)
}

func (m *mockBookingRepo) HasOverlap(ctx context.Context, carID uuid.UUID, startAt, endAt time.Time) (bool, error) {
	args := m.Called(ctx, carID, startAt, endAt)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) CreateAtomic(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepo) ExpireUnpaidHolds(ctx context.Context, deadline time.Time) ([]*entity.Booking, error) {
	args := m.Called(ctx, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.BookingStatus]int64), args.Error(1)
}

func (m *mockBookingRepo) SumPaidBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) SumOutstandingHolds(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockPromoRepo struct {
	mock.Mock
}

func (m *mockPromoRepo) Create(ctx context.Context, promo *entity.PromoCode) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}

func (m *mockPromoRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PromoCode), args.Error(1)
}

func (m *mockPromoRepo) FindByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PromoCode), args.Error(1)
}

func (m *mockPromoRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.PromoCode, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PromoCode), args.Error(1)
}

func (m *mockPromoRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPromoRepo) Update(ctx context.Context, promo *entity.PromoCode) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}

func (m *mockPromoRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPromoRepo) DecrementUsageByCode(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *mockPromoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) FindByRole(ctx context.Context, role entity.UserRole, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, role, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role entity.UserRole) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error {
	args := m.Called(ctx, id, suspended)
	return args.Error(0)
}

type mockLockReleaser struct {
	mock.Mock
}

func (m *mockLockReleaser) ReleaseCarLock(ctx context.Context, carID uuid.UUID) error {
	args := m.Called(ctx, carID)
	return args.Error(0)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) Publish(ctx context.Context, event events.ChangeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func expiredBooking() *entity.Booking {
	return &entity.Booking{
		Base:         entity.Base{ID: uuid.New()},
		BookingRef:   "BK-SWEEP1",
		UserID:       uuid.New(),
		CarID:        uuid.New(),
		Status:       entity.BookingStatusExpired,
		PaymentState: entity.PaymentStateUnpaid,
	}
}

func TestHoldSweeper_Sweep(t *testing.T) {
	t.Run("releases locks and publishes for each expired hold", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		locks := &mockLockReleaser{}
		producer := &mockEventPublisher{}

		first := expiredBooking()
		second := expiredBooking()

		bookings.On("ExpireUnpaidHolds", mock.Anything, mock.AnythingOfType("time.Time")).
			Return([]*entity.Booking{first, second}, nil)
		locks.On("ReleaseCarLock", mock.Anything, first.CarID).Return(nil)
		locks.On("ReleaseCarLock", mock.Anything, second.CarID).Return(nil)
		producer.On("Publish", mock.Anything, mock.MatchedBy(func(e events.ChangeEvent) bool {
			return e.Table == events.TableBookings && e.Action == events.ActionUpdate
		})).Return(nil).Twice()

		sweeper := NewHoldSweeper(bookings, &mockPromoRepo{}, locks, producer, time.Second, zap.NewNop())
		sweeper.sweep(context.Background())

		locks.AssertExpectations(t)
		producer.AssertExpectations(t)
	})

	t.Run("expired hold returns its promo use", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		promos := &mockPromoRepo{}
		locks := &mockLockReleaser{}
		producer := &mockEventPublisher{}

		code := "SAVE20"
		booking := expiredBooking()
		booking.PromoCode = &code

		bookings.On("ExpireUnpaidHolds", mock.Anything, mock.AnythingOfType("time.Time")).
			Return([]*entity.Booking{booking}, nil)
		promos.On("DecrementUsageByCode", mock.Anything, "SAVE20").Return(nil)
		locks.On("ReleaseCarLock", mock.Anything, booking.CarID).Return(nil)
		producer.On("Publish", mock.Anything, mock.Anything).Return(nil)

		sweeper := NewHoldSweeper(bookings, promos, locks, producer, time.Second, zap.NewNop())
		sweeper.sweep(context.Background())

		promos.AssertCalled(t, "DecrementUsageByCode", mock.Anything, "SAVE20")
	})

	t.Run("lock release failure does not skip the event", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		locks := &mockLockReleaser{}
		producer := &mockEventPublisher{}

		booking := expiredBooking()

		bookings.On("ExpireUnpaidHolds", mock.Anything, mock.AnythingOfType("time.Time")).
			Return([]*entity.Booking{booking}, nil)
		locks.On("ReleaseCarLock", mock.Anything, booking.CarID).Return(errors.New("redis down"))
		producer.On("Publish", mock.Anything, mock.Anything).Return(nil)

		sweeper := NewHoldSweeper(bookings, &mockPromoRepo{}, locks, producer, time.Second, zap.NewNop())
		sweeper.sweep(context.Background())

		producer.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("repository failure touches nothing", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		locks := &mockLockReleaser{}
		producer := &mockEventPublisher{}

		bookings.On("ExpireUnpaidHolds", mock.Anything, mock.AnythingOfType("time.Time")).
			Return(nil, errors.New("db down"))

		sweeper := NewHoldSweeper(bookings, &mockPromoRepo{}, locks, producer, time.Second, zap.NewNop())
		sweeper.sweep(context.Background())

		locks.AssertNotCalled(t, "ReleaseCarLock", mock.Anything, mock.Anything)
		producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestNotifier_Handle(t *testing.T) {
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	newNotifierForTest := func(bookings *mockBookingRepo, users *mockUserRepo, mailer *mockMailer) *Notifier {
		return NewNotifier(nil, bookings, users, mailer, zap.NewNop())
	}

	t.Run("confirmed booking mails the customer", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		users := &mockUserRepo{}
		mailer := &mockMailer{}

		booking := &entity.Booking{
			Base:       entity.Base{ID: uuid.New()},
			BookingRef: "BK-NOTIF1",
			UserID:     uuid.New(),
			StartAt:    start,
			EndAt:      end,
			Status:     entity.BookingStatusConfirmed,
		}
		user := &entity.User{
			Base:  entity.Base{ID: booking.UserID},
			Name:  "Asha",
			Email: "asha@example.com",
		}

		bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		users.On("FindByID", mock.Anything, booking.UserID).Return(user, nil)
		mailer.On("Send", "asha@example.com", "Booking confirmed: BK-NOTIF1", mock.AnythingOfType("string")).Return(nil)

		notifier := newNotifierForTest(bookings, users, mailer)

		err := notifier.handle(context.Background(), events.ChangeEvent{
			Table:    events.TableBookings,
			Action:   events.ActionUpdate,
			EntityID: booking.ID.String(),
		})

		assert.NoError(t, err)
		mailer.AssertExpectations(t)
	})

	t.Run("events for other tables are skipped", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		mailer := &mockMailer{}

		notifier := newNotifierForTest(bookings, &mockUserRepo{}, mailer)

		err := notifier.handle(context.Background(), events.ChangeEvent{
			Table:    events.TableCars,
			Action:   events.ActionUpdate,
			EntityID: uuid.New().String(),
		})

		assert.NoError(t, err)
		bookings.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("statuses without a message send nothing", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		users := &mockUserRepo{}
		mailer := &mockMailer{}

		booking := &entity.Booking{
			Base:       entity.Base{ID: uuid.New()},
			BookingRef: "BK-NOTIF2",
			UserID:     uuid.New(),
			Status:     entity.BookingStatusPending,
		}
		bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

		notifier := newNotifierForTest(bookings, users, mailer)

		err := notifier.handle(context.Background(), events.ChangeEvent{
			Table:    events.TableBookings,
			Action:   events.ActionUpdate,
			EntityID: booking.ID.String(),
		})

		assert.NoError(t, err)
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("transient load failure does not kill the consumer", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		users := &mockUserRepo{}
		mailer := &mockMailer{}

		bookingID := uuid.New()
		bookings.On("FindByID", mock.Anything, bookingID).Return(nil, errors.New("connection reset"))

		notifier := newNotifierForTest(bookings, users, mailer)

		err := notifier.handle(context.Background(), events.ChangeEvent{
			Table:    events.TableBookings,
			Action:   events.ActionUpdate,
			EntityID: bookingID.String(),
		})

		assert.NoError(t, err)
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("mail failure does not fail the handler", func(t *testing.T) {
		bookings := &mockBookingRepo{}
		users := &mockUserRepo{}
		mailer := &mockMailer{}

		booking := &entity.Booking{
			Base:       entity.Base{ID: uuid.New()},
			BookingRef: "BK-NOTIF3",
			UserID:     uuid.New(),
			StartAt:    start,
			EndAt:      end,
			Status:     entity.BookingStatusCancelled,
		}
		user := &entity.User{Base: entity.Base{ID: booking.UserID}, Email: "asha@example.com"}

		bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		users.On("FindByID", mock.Anything, booking.UserID).Return(user, nil)
		mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp timeout"))

		notifier := newNotifierForTest(bookings, users, mailer)

		err := notifier.handle(context.Background(), events.ChangeEvent{
			Table:    events.TableBookings,
			Action:   events.ActionUpdate,
			EntityID: booking.ID.String(),
		})

		assert.NoError(t, err)
	})
}
