package exchange

import (
	"context"

	"github.com/shopspring/decimal"
)

type Balance struct {
	Asset  string          `json:"asset"`
	Free   decimal.Decimal `json:"free"`
	Locked decimal.Decimal `json:"locked"`
}

// IsZero free 和 locked 都不为正
func (b Balance) IsZero() bool {
	return !b.Free.IsPositive() && !b.Locked.IsPositive()
}

type AccountService interface {
	// Balances only returns assets with a positive free or locked amount
	Balances(ctx context.Context) ([]Balance, error)
}
