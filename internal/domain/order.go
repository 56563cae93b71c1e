package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Valid reports whether the side is one the exchange accepts.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// OrderSpec describes an order to be placed. It is a closed set:
// LimitOrder and StopOrder are the only implementations.
type OrderSpec interface {
	orderSpec()
}

// LimitOrder rests at Price until filled or cancelled.
type LimitOrder struct {
	Symbol string
	Side   Side
	Price  decimal.Decimal
}

// StopOrder becomes a limit order at LimitPrice once StopPrice trades.
type StopOrder struct {
	Symbol     string
	Side       Side
	LimitPrice decimal.Decimal
	StopPrice  decimal.Decimal
}

func (LimitOrder) orderSpec() {}
func (StopOrder) orderSpec()  {}

// OrderStatus is the exchange's acknowledgment of an order operation.
// ReceivedTime is nil when the order filled immediately or was rejected
// before acknowledgment. OrderID is empty when placement failed outright.
type OrderStatus struct {
	ReceivedTime *time.Time
	Status       string
	OrderID      string
}

// OpenOrder is a resting order together with its fill progress.
type OpenOrder struct {
	Spec         OrderSpec
	Status       OrderStatus
	FilledSize   int64
	UnfilledSize int64
}

// BatchInstruction is one element of a batch order request: either a
// CancelInstruction or a PlaceInstruction.
type BatchInstruction interface {
	batchInstruction()
}

// CancelInstruction asks the exchange to cancel the given order.
type CancelInstruction struct {
	OrderID string
}

// PlaceInstruction asks the exchange to place Spec with the given size.
type PlaceInstruction struct {
	Spec OrderSpec
	Size int64
}

func (CancelInstruction) batchInstruction() {}
func (PlaceInstruction) batchInstruction()  {}
