package usecase

import (
	"context"

	"github.com/iho/fuelwatch/internal/domain"
)

// WalletProvider fetches the opening-of-day wallet snapshot.
type WalletProvider interface {
	WalletRemains(ctx context.Context, businessDate string) ([]*domain.Wallet, error)
}

// TransactionProvider fetches the same-day transaction feed.
type TransactionProvider interface {
	Transactions(ctx context.Context, businessDate string) ([]*domain.TransactionRecord, error)
}

// Notifier delivers a rendered alert message.
type Notifier interface {
	Send(ctx context.Context, message string) error
}
