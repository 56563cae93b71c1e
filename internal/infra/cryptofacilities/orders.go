package cryptofacilities

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"cfgo/internal/domain"
)

// orderParams marshals an order spec into the exchange's ordered parameter
// list. The order of the pairs is part of the signed request.
func orderParams(spec domain.OrderSpec, size int64) ([]Param, error) {
	sizeStr := strconv.FormatInt(size, 10)

	switch o := spec.(type) {
	case domain.LimitOrder:
		return []Param{
			{"orderType", "lmt"},
			{"symbol", o.Symbol},
			{"side", string(o.Side)},
			{"size", sizeStr},
			{"limitPrice", o.Price.String()},
		}, nil
	case domain.StopOrder:
		return []Param{
			{"orderType", "stp"},
			{"symbol", o.Symbol},
			{"side", string(o.Side)},
			{"size", sizeStr},
			{"limitPrice", o.LimitPrice.String()},
			{"stopPrice", o.StopPrice.String()},
		}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported order spec %T", domain.ErrProtocol, spec)
	}
}

// orderSpecFromRecord parses the exchange's order-type code back into a
// spec. Codes outside {lmt, stp} are a contract violation, never guessed.
func orderSpecFromRecord(rec openOrderRecord) (domain.OrderSpec, error) {
	side := domain.Side(rec.Side)
	if !side.Valid() {
		return nil, fmt.Errorf("%w: order side %q", domain.ErrProtocol, rec.Side)
	}

	switch rec.OrderType {
	case "lmt":
		if rec.StopPrice != nil {
			return nil, fmt.Errorf("%w: limit order %q carries a stop price", domain.ErrProtocol, rec.OrderID)
		}
		return domain.LimitOrder{Symbol: rec.Symbol, Side: side, Price: rec.LimitPrice}, nil
	case "stp":
		if rec.StopPrice == nil {
			return nil, fmt.Errorf("%w: stop order %q missing stop price", domain.ErrProtocol, rec.OrderID)
		}
		return domain.StopOrder{Symbol: rec.Symbol, Side: side, LimitPrice: rec.LimitPrice, StopPrice: *rec.StopPrice}, nil
	default:
		return nil, fmt.Errorf("%w: unknown order type %q", domain.ErrProtocol, rec.OrderType)
	}
}

// orderStatusFromRecord converts an acknowledgment record. knownID is the
// order id the caller addressed ("" when the exchange assigns it); when
// both sides name an id they must agree.
func orderStatusFromRecord(rec statusRecord, knownID string) (domain.OrderStatus, error) {
	if rec.Status == "" {
		return domain.OrderStatus{}, fmt.Errorf("%w: order status missing", domain.ErrProtocol)
	}

	orderID := knownID
	if orderID == "" {
		// Missing when placing the order failed.
		orderID = rec.OrderID
	} else if rec.OrderID != "" && rec.OrderID != orderID {
		return domain.OrderStatus{}, fmt.Errorf("%w: status for order %q answers order %q", domain.ErrProtocol, rec.OrderID, orderID)
	}

	var received *time.Time
	if rec.ReceivedTime != nil {
		t := rec.ReceivedTime.Time
		received = &t
	}

	return domain.OrderStatus{
		ReceivedTime: received,
		Status:       rec.Status,
		OrderID:      orderID,
	}, nil
}

// SendOrder places an order of the given size.
func (c *Client) SendOrder(ctx context.Context, key APIKey, spec domain.OrderSpec, size int64) (domain.OrderStatus, error) {
	params, err := orderParams(spec, size)
	if err != nil {
		return domain.OrderStatus{}, err
	}

	var resp sendOrderResponse
	if err := c.do(ctx, http.MethodPost, "sendorder", params, &key, &resp); err != nil {
		return domain.OrderStatus{}, err
	}
	return orderStatusFromRecord(resp.SendStatus, "")
}

// SendLimitOrder places a limit order.
func (c *Client) SendLimitOrder(ctx context.Context, key APIKey, symbol string, side domain.Side, price decimal.Decimal, size int64) (domain.OrderStatus, error) {
	return c.SendOrder(ctx, key, domain.LimitOrder{Symbol: symbol, Side: side, Price: price}, size)
}

// SendStopOrder places a stop order.
func (c *Client) SendStopOrder(ctx context.Context, key APIKey, symbol string, side domain.Side, limitPrice, stopPrice decimal.Decimal, size int64) (domain.OrderStatus, error) {
	return c.SendOrder(ctx, key, domain.StopOrder{Symbol: symbol, Side: side, LimitPrice: limitPrice, StopPrice: stopPrice}, size)
}

// CancelOrder cancels a resting order by id.
func (c *Client) CancelOrder(ctx context.Context, key APIKey, orderID string) (domain.OrderStatus, error) {
	params := []Param{{"order_id", orderID}}

	var resp cancelOrderResponse
	if err := c.do(ctx, http.MethodPost, "cancelorder", params, &key, &resp); err != nil {
		return domain.OrderStatus{}, err
	}
	return orderStatusFromRecord(resp.CancelStatus, orderID)
}

// batchElement is one instruction in the batchorder JSON body.
type batchElement struct {
	Order      string `json:"order"`
	OrderID    string `json:"order_id,omitempty"`
	OrderTag   string `json:"order_tag,omitempty"`
	OrderType  string `json:"orderType,omitempty"`
	Symbol     string `json:"symbol,omitempty"`
	Side       string `json:"side,omitempty"`
	Size       string `json:"size,omitempty"`
	LimitPrice string `json:"limitPrice,omitempty"`
	StopPrice  string `json:"stopPrice,omitempty"`
}

type batchBody struct {
	BatchOrder []batchElement `json:"batchOrder"`
}

// SendOrCancelOrders submits a mixed batch of placements and cancellations
// in one request. The returned statuses are positional: statuses[i] answers
// instructions[i].
//
// Placements are tagged with their position before dispatch so the
// unordered response can be re-associated. Several cancellations naming the
// same order id share that id's single response record. Any input left
// unresolved, or any response record naming an unknown order id or tag, is
// a contract violation.
func (c *Client) SendOrCancelOrders(ctx context.Context, key APIKey, instructions []domain.BatchInstruction) ([]domain.OrderStatus, error) {
	elements := make([]batchElement, len(instructions))
	idToIxs := make(map[string][]int)

	for i, instruction := range instructions {
		switch ins := instruction.(type) {
		case domain.CancelInstruction:
			elements[i] = batchElement{Order: "cancel", OrderID: ins.OrderID}
			idToIxs[ins.OrderID] = append(idToIxs[ins.OrderID], i)
		case domain.PlaceInstruction:
			params, err := orderParams(ins.Spec, ins.Size)
			if err != nil {
				return nil, err
			}
			el := batchElement{Order: "send", OrderTag: strconv.Itoa(i)}
			for _, p := range params {
				switch p.Key {
				case "orderType":
					el.OrderType = p.Value
				case "symbol":
					el.Symbol = p.Value
				case "side":
					el.Side = p.Value
				case "size":
					el.Size = p.Value
				case "limitPrice":
					el.LimitPrice = p.Value
				case "stopPrice":
					el.StopPrice = p.Value
				}
			}
			elements[i] = el
		default:
			return nil, fmt.Errorf("%w: unsupported batch instruction %T", domain.ErrProtocol, instruction)
		}
	}

	encoded, err := json.Marshal(batchBody{BatchOrder: elements})
	if err != nil {
		return nil, err
	}

	var resp batchOrderResponse
	if err := c.do(ctx, http.MethodPost, "batchorder", []Param{{"json", string(encoded)}}, &key, &resp); err != nil {
		return nil, err
	}

	statuses := make([]*domain.OrderStatus, len(instructions))
	for _, rec := range resp.BatchStatus {
		var ixs []int
		var status domain.OrderStatus

		if rec.OrderTag != nil {
			ix, err := strconv.Atoi(*rec.OrderTag)
			if err != nil || ix < 0 || ix >= len(instructions) {
				return nil, fmt.Errorf("%w: batch response tag %q", domain.ErrProtocol, *rec.OrderTag)
			}
			if _, ok := instructions[ix].(domain.PlaceInstruction); !ok {
				return nil, fmt.Errorf("%w: batch tag %d does not address a placement", domain.ErrProtocol, ix)
			}
			status, err = orderStatusFromRecord(rec, "")
			if err != nil {
				return nil, err
			}
			ixs = []int{ix}
		} else {
			if rec.OrderID == "" {
				return nil, fmt.Errorf("%w: batch record without order id or tag", domain.ErrProtocol)
			}
			var ok bool
			ixs, ok = idToIxs[rec.OrderID]
			if !ok {
				return nil, fmt.Errorf("%w: batch record for unknown order %q", domain.ErrProtocol, rec.OrderID)
			}
			var err error
			status, err = orderStatusFromRecord(rec, rec.OrderID)
			if err != nil {
				return nil, err
			}
		}

		for _, i := range ixs {
			if statuses[i] != nil {
				return nil, fmt.Errorf("%w: batch instruction %d resolved twice", domain.ErrProtocol, i)
			}
			s := status
			statuses[i] = &s
		}
	}

	out := make([]domain.OrderStatus, len(statuses))
	for i, s := range statuses {
		if s == nil {
			return nil, fmt.Errorf("%w: batch instruction %d unresolved", domain.ErrProtocol, i)
		}
		out[i] = *s
	}
	return out, nil
}

// GetOpenOrders returns the caller's resting orders with fill progress.
func (c *Client) GetOpenOrders(ctx context.Context, key APIKey) ([]domain.OpenOrder, error) {
	var resp openOrdersResponse
	if err := c.do(ctx, http.MethodGet, "openorders", nil, &key, &resp); err != nil {
		return nil, err
	}

	orders := make([]domain.OpenOrder, 0, len(resp.OpenOrders))
	for _, rec := range resp.OpenOrders {
		spec, err := orderSpecFromRecord(rec)
		if err != nil {
			return nil, err
		}
		status, err := orderStatusFromRecord(statusRecord{
			ReceivedTime: rec.ReceivedTime,
			Status:       rec.Status,
			OrderID:      rec.OrderID,
		}, "")
		if err != nil {
			return nil, err
		}

		orders = append(orders, domain.OpenOrder{
			Spec:         spec,
			Status:       status,
			FilledSize:   rec.FilledSize,
			UnfilledSize: rec.UnfilledSize,
		})
	}
	return orders, nil
}
