package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceLevel_UnmarshalJSON(t *testing.T) {
	t.Run("price and size pair", func(t *testing.T) {
		var level PriceLevel
		if err := json.Unmarshal([]byte(`[4213.5, 2000]`), &level); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}

		if !level.Price.Equal(decimal.RequireFromString("4213.5")) {
			t.Errorf("Price = %s, want 4213.5", level.Price)
		}
		if level.Size != 2000 {
			t.Errorf("Size = %d, want 2000", level.Size)
		}
	})

	t.Run("integer price keeps exact value", func(t *testing.T) {
		var level PriceLevel
		if err := json.Unmarshal([]byte(`[4213, 2000]`), &level); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}

		if level.Price.String() != "4213" {
			t.Errorf("Price = %s, want 4213", level.Price)
		}
	})

	t.Run("rejects wrong arity", func(t *testing.T) {
		var level PriceLevel
		if err := json.Unmarshal([]byte(`[4213, 2000, 7]`), &level); err == nil {
			t.Error("Expected error for a 3-element level")
		}
	})

	t.Run("rejects non-integer size", func(t *testing.T) {
		var level PriceLevel
		if err := json.Unmarshal([]byte(`[4213, 0.5]`), &level); err == nil {
			t.Error("Expected error for a fractional size")
		}
	})
}

func TestOrderBook_Unmarshal(t *testing.T) {
	raw := `{"bids": [[4213, 2000], [4210, 4000]], "asks": [[4218, 4000], [4220, 5000]]}`

	var book OrderBook
	if err := json.Unmarshal([]byte(raw), &book); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(book.Bids) != 2 || len(book.Asks) != 2 {
		t.Fatalf("Got %d bids / %d asks, want 2 / 2", len(book.Bids), len(book.Asks))
	}
	if !book.Bids[0].Price.GreaterThan(book.Bids[1].Price) {
		t.Error("Bids should arrive in descending price order")
	}
	if !book.Asks[0].Price.LessThan(book.Asks[1].Price) {
		t.Error("Asks should arrive in ascending price order")
	}
}

func TestSide_Valid(t *testing.T) {
	if !SideBuy.Valid() || !SideSell.Valid() {
		t.Error("buy and sell must be valid sides")
	}
	if Side("long").Valid() {
		t.Error("long is not an order side")
	}
}
