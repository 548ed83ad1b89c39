package rate

import (
	"time"

	"github.com/shopspring/decimal"
)

type View struct {
	Code      string
	Sell      decimal.Decimal
	Buy       decimal.Decimal
	FetchedAt time.Time
}

type CodesView struct {
	Codes     []string
	FetchedAt time.Time
}
