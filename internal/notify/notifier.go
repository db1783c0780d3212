// Package notify defines the notification interface and implementations
// for price drop delivery.
package notify

import (
	"context"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// Notifier defines the interface for delivering price drop notifications.
type Notifier interface {
	SendDrop(ctx context.Context, drop domain.DropNotification) error
	SendBatchDrops(ctx context.Context, drops []domain.DropNotification) error
}
