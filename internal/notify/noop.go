package notify

import (
	"context"
	"log/slog"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// NoopNotifier implements Notifier by logging drops instead of sending them.
// Used when no notification target is configured.
type NoopNotifier struct {
	log *slog.Logger
}

// NewNoopNotifier creates a NoopNotifier logging through l.
func NewNoopNotifier(l *slog.Logger) *NoopNotifier {
	if l == nil {
		l = slog.Default()
	}
	return &NoopNotifier{log: l}
}

// SendDrop logs the drop.
func (n *NoopNotifier) SendDrop(_ context.Context, drop domain.DropNotification) error {
	n.log.Info("price drop (notifications disabled)",
		"product_id", drop.ProductID,
		"title", drop.Title,
		"previous_price", drop.PreviousPrice,
		"current_price", drop.CurrentPrice,
		"drop_percent", drop.DropPercent,
	)
	return nil
}

// SendBatchDrops logs each drop.
func (n *NoopNotifier) SendBatchDrops(ctx context.Context, drops []domain.DropNotification) error {
	for _, d := range drops {
		if err := n.SendDrop(ctx, d); err != nil {
			return err
		}
	}
	return nil
}
