package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fill is one execution against one of the caller's orders.
type Fill struct {
	FillTime time.Time
	OrderID  string
	FillID   string
	Symbol   string
	Side     Side
	Size     int64
	Price    decimal.Decimal
}

// Position is an open position entry.
type Position struct {
	FillTime time.Time
	Symbol   string
	Side     string
	Size     int64
	Price    decimal.Decimal
}

// Money is an amount of a specific currency.
type Money struct {
	Currency string
	Amount   decimal.Decimal
}

// TransferStatus is the exchange's acknowledgment of a transfer, both for
// fresh withdrawal requests and for historical transfer records.
type TransferStatus struct {
	ReceivedTime time.Time
	Status       string
	TransferID   string
}

// Transfer is one deposit or withdrawal record. CompletedTime is nil while
// the transfer is still pending; TargetAddress is empty for deposits.
type Transfer struct {
	Status        TransferStatus
	CompletedTime *time.Time
	TransactionID string
	TargetAddress string
	TransferType  string
	Money         Money
}
