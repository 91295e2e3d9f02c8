package repositories

import (
	"context"

	"github.com/satriahrh/arunika/relay/domain/entities"
)

// ExchangePublisher emits a record of each processed exchange
type ExchangePublisher interface {
	PublishExchange(ctx context.Context, exchange entities.Exchange) error
}
