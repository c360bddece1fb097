package inventory

import (
	"context"

	domaininventory "github.com/mgudino/stock-ledger-api/internal/domain/inventory"
	"github.com/mgudino/stock-ledger-api/internal/domain/repository"
)

// TxRunner runs a function inside one database transaction, passing
// repositories bound to that transaction. It is the atomicity guarantee of
// the stock engine: the stock line write and the movement record insert
// either both commit or neither does.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lineRepo repository.StockLineRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// EventPublisher delivers domain events to observers after a successful
// commit. Publishing is fire-and-forget: implementations log failures and
// never propagate them to the mutation path.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domaininventory.Event)
}
