package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Instrument is a tradeable contract listed on the exchange.
type Instrument struct {
	Symbol          string
	Type            string
	Tradeable       bool
	Underlying      string
	LastTradingTime time.Time
	TickSize        decimal.Decimal
	ContractSize    decimal.Decimal
}

// Ticker is the current market snapshot for one instrument.
type Ticker struct {
	Symbol    string
	Suspended bool

	Last     decimal.Decimal
	LastTime time.Time
	LastSize int64

	Open24h decimal.Decimal
	High24h decimal.Decimal
	Low24h  decimal.Decimal
	Vol24h  int64

	Bid     decimal.Decimal
	BidSize int64

	Ask     decimal.Decimal
	AskSize int64

	MarkPrice decimal.Decimal
}

// PriceLevel is one order book level, transmitted as a [price, size] pair.
type PriceLevel struct {
	Price decimal.Decimal
	Size  int64
}

// UnmarshalJSON decodes the exchange's two-element array form.
func (l *PriceLevel) UnmarshalJSON(data []byte) error {
	var pair []json.Number
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("price level: want [price, size], got %d elements", len(pair))
	}

	price, err := decimal.NewFromString(pair[0].String())
	if err != nil {
		return fmt.Errorf("price level price: %w", err)
	}
	size, err := pair[1].Int64()
	if err != nil {
		return fmt.Errorf("price level size: %w", err)
	}

	l.Price = price
	l.Size = size
	return nil
}

// OrderBook holds resting liquidity. The exchange sends bids in descending
// and asks in ascending price order.
type OrderBook struct {
	Bids []PriceLevel `json:"bids"`
	Asks []PriceLevel `json:"asks"`
}

// Trade is one public trade execution.
type Trade struct {
	Time    time.Time
	TradeID int64
	Price   decimal.Decimal
	Size    int64
}
