package usecase

import (
	"context"
	"io"

	"thgamestore/internal/domain/entity"
)

type TokenIssuer interface {
	GenerateToken(userID, role string) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type Mailer interface {
	SendPasswordReset(ctx context.Context, to, username, resetLink string) error
}

// ImageProcessor turns an uploaded image into the published JPEG rendition.
type ImageProcessor interface {
	FitJPEG(r io.Reader) ([]byte, error)
}

type ImageStore interface {
	Upload(ctx context.Context, r io.Reader, contentType, folder string) (url, objectName string, err error)
}

type EventPublisher interface {
	PublishOrderPaid(ctx context.Context, event entity.OrderPaidEvent) error
}

// CatalogCache holds read-mostly catalog projections. Get reports a miss
// with false and no error.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context) error
}

type CheckoutObserver interface {
	ObserveCheckout(outcome string, amount float64, items int)
}
