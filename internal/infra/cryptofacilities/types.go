package cryptofacilities

import (
	"github.com/shopspring/decimal"

	"cfgo/internal/domain"
)

// Raw response shapes. Timestamps arrive as strings and numeric fields as
// exchange-native numbers; records are converted at the boundary into the
// domain value objects.

// envelope wraps every response body.
// result is "success" or "error"; error carries the code on failure.
type envelope struct {
	Result     string `json:"result"`
	Error      string `json:"error"`
	ServerTime string `json:"serverTime"`
}

type instrumentRecord struct {
	Symbol          string          `json:"symbol"`
	Type            string          `json:"type"`
	Tradeable       bool            `json:"tradeable"`
	Underlying      string          `json:"underlying"`
	LastTradingTime wireTime        `json:"lastTradingTime"`
	TickSize        decimal.Decimal `json:"tickSize"`
	ContractSize    decimal.Decimal `json:"contractSize"`
}

func (r instrumentRecord) toDomain() domain.Instrument {
	return domain.Instrument{
		Symbol:          r.Symbol,
		Type:            r.Type,
		Tradeable:       r.Tradeable,
		Underlying:      r.Underlying,
		LastTradingTime: r.LastTradingTime.Time,
		TickSize:        r.TickSize,
		ContractSize:    r.ContractSize,
	}
}

type instrumentsResponse struct {
	Instruments []instrumentRecord `json:"instruments"`
}

type tickerRecord struct {
	Symbol    string          `json:"symbol"`
	Suspended bool            `json:"suspended"`
	Last      decimal.Decimal `json:"last"`
	LastTime  wireTime        `json:"lastTime"`
	LastSize  int64           `json:"lastSize"`
	Open24h   decimal.Decimal `json:"open24h"`
	High24h   decimal.Decimal `json:"high24h"`
	Low24h    decimal.Decimal `json:"low24h"`
	Vol24h    int64           `json:"vol24h"`
	Bid       decimal.Decimal `json:"bid"`
	BidSize   int64           `json:"bidSize"`
	Ask       decimal.Decimal `json:"ask"`
	AskSize   int64           `json:"askSize"`
	MarkPrice decimal.Decimal `json:"markPrice"`
}

func (r tickerRecord) toDomain() domain.Ticker {
	return domain.Ticker{
		Symbol:    r.Symbol,
		Suspended: r.Suspended,
		Last:      r.Last,
		LastTime:  r.LastTime.Time,
		LastSize:  r.LastSize,
		Open24h:   r.Open24h,
		High24h:   r.High24h,
		Low24h:    r.Low24h,
		Vol24h:    r.Vol24h,
		Bid:       r.Bid,
		BidSize:   r.BidSize,
		Ask:       r.Ask,
		AskSize:   r.AskSize,
		MarkPrice: r.MarkPrice,
	}
}

type tickersResponse struct {
	Tickers []tickerRecord `json:"tickers"`
}

type orderBookResponse struct {
	OrderBook domain.OrderBook `json:"orderBook"`
}

type tradeRecord struct {
	Time    wireTime        `json:"time"`
	TradeID int64           `json:"trade_id"`
	Price   decimal.Decimal `json:"price"`
	Size    int64           `json:"size"`
}

func (r tradeRecord) toDomain() domain.Trade {
	return domain.Trade{
		Time:    r.Time.Time,
		TradeID: r.TradeID,
		Price:   r.Price,
		Size:    r.Size,
	}
}

type historyResponse struct {
	History []tradeRecord `json:"history"`
}

type accountsResponse struct {
	Accounts domain.Accounts `json:"accounts"`
}

// statusRecord is the exchange's order acknowledgment, shared by
// sendorder, cancelorder, batchorder and openorders responses.
type statusRecord struct {
	ReceivedTime *wireTime `json:"receivedTime"`
	Status       string    `json:"status"`
	OrderID      string    `json:"order_id"`
	OrderTag     *string   `json:"order_tag"`
}

type sendOrderResponse struct {
	SendStatus statusRecord `json:"sendStatus"`
}

type cancelOrderResponse struct {
	CancelStatus statusRecord `json:"cancelStatus"`
}

type batchOrderResponse struct {
	BatchStatus []statusRecord `json:"batchStatus"`
}

// openOrderRecord combines an order spec with its status and fill sizes.
type openOrderRecord struct {
	OrderType    string           `json:"orderType"`
	Symbol       string           `json:"symbol"`
	Side         string           `json:"side"`
	LimitPrice   decimal.Decimal  `json:"limitPrice"`
	StopPrice    *decimal.Decimal `json:"stopPrice"`
	ReceivedTime *wireTime        `json:"receivedTime"`
	Status       string           `json:"status"`
	OrderID      string           `json:"order_id"`
	FilledSize   int64            `json:"filledSize"`
	UnfilledSize int64            `json:"unfilledSize"`
}

type openOrdersResponse struct {
	OpenOrders []openOrderRecord `json:"openOrders"`
}

type fillRecord struct {
	FillTime wireTime        `json:"fillTime"`
	OrderID  string          `json:"order_id"`
	FillID   string          `json:"fill_id"`
	Symbol   string          `json:"symbol"`
	Side     string          `json:"side"`
	Size     int64           `json:"size"`
	Price    decimal.Decimal `json:"price"`
}

func (r fillRecord) toDomain() domain.Fill {
	return domain.Fill{
		FillTime: r.FillTime.Time,
		OrderID:  r.OrderID,
		FillID:   r.FillID,
		Symbol:   r.Symbol,
		Side:     domain.Side(r.Side),
		Size:     r.Size,
		Price:    r.Price,
	}
}

type fillsResponse struct {
	Fills []fillRecord `json:"fills"`
}

type positionRecord struct {
	FillTime wireTime        `json:"fillTime"`
	Symbol   string          `json:"symbol"`
	Side     string          `json:"side"`
	Size     int64           `json:"size"`
	Price    decimal.Decimal `json:"price"`
}

func (r positionRecord) toDomain() domain.Position {
	return domain.Position{
		FillTime: r.FillTime.Time,
		Symbol:   r.Symbol,
		Side:     r.Side,
		Size:     r.Size,
		Price:    r.Price,
	}
}

type positionsResponse struct {
	OpenPositions []positionRecord `json:"openPositions"`
}

// withdrawalResponse fields sit directly in the envelope remainder.
type withdrawalResponse struct {
	ReceivedTime wireTime `json:"receivedTime"`
	Status       string   `json:"status"`
	TransferID   string   `json:"transfer_id"`
}

func (r withdrawalResponse) toDomain() domain.TransferStatus {
	return domain.TransferStatus{
		ReceivedTime: r.ReceivedTime.Time,
		Status:       r.Status,
		TransferID:   r.TransferID,
	}
}

type transferRecord struct {
	ReceivedTime  wireTime        `json:"receivedTime"`
	CompletedTime *wireTime       `json:"completedTime"`
	Status        string          `json:"status"`
	TransferID    string          `json:"transfer_id"`
	TransactionID string          `json:"transaction_id"`
	TargetAddress string          `json:"targetAddress"`
	TransferType  string          `json:"transferType"`
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
}

func (r transferRecord) toDomain() domain.Transfer {
	transfer := domain.Transfer{
		Status: domain.TransferStatus{
			ReceivedTime: r.ReceivedTime.Time,
			Status:       r.Status,
			TransferID:   r.TransferID,
		},
		TransactionID: r.TransactionID,
		TargetAddress: r.TargetAddress,
		TransferType:  r.TransferType,
		Money: domain.Money{
			Currency: r.Currency,
			Amount:   r.Amount,
		},
	}
	if r.CompletedTime != nil {
		t := r.CompletedTime.Time
		transfer.CompletedTime = &t
	}
	return transfer
}

type transfersResponse struct {
	Transfers []transferRecord `json:"transfers"`
}
