package usecase

import (
	"context"
	"time"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/events"

	"github.com/google/uuid"
)

// Cache is the slice of the redis cache the services touch.
type Cache interface {
	AcquireCarLock(ctx context.Context, carID, bookingID uuid.UUID, ttl time.Duration) (bool, error)
	ReleaseCarLock(ctx context.Context, carID uuid.UUID) error
	GetPublishedCars(ctx context.Context) ([]*entity.Car, error)
	SetPublishedCars(ctx context.Context, cars []*entity.Car) error
	InvalidatePublishedCars(ctx context.Context) error
}

// Publisher emits change events to the feed.
type Publisher interface {
	Publish(ctx context.Context, event events.ChangeEvent) error
}
