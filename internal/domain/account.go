package domain

import "github.com/shopspring/decimal"

// Accounts maps account names (e.g. "cash", "fi_xbtusd") to their state.
type Accounts map[string]Account

// Account is a cash or margin account. Cash accounts carry only Type and
// Balances; the remaining fields are zero.
type Account struct {
	Type               string                     `json:"type"`
	Currency           string                     `json:"currency"`
	Balances           map[string]decimal.Decimal `json:"balances"`
	Auxiliary          Auxiliary                  `json:"auxiliary"`
	MarginRequirements MarginTiers                `json:"marginRequirements"`
	TriggerEstimates   MarginTiers                `json:"triggerEstimates"`
}

// Auxiliary figures of a margin account, in units of the account currency.
type Auxiliary struct {
	AvailableFunds decimal.Decimal `json:"af"`
	PnL            decimal.Decimal `json:"pnl"`
	PortfolioValue decimal.Decimal `json:"pv"`
}

// MarginTiers holds the four margin thresholds of a futures account:
// initial, maintenance, liquidation and termination. The same shape is used
// both for requirements (in currency) and trigger estimates (spot prices).
type MarginTiers struct {
	Initial     decimal.Decimal `json:"im"`
	Maintenance decimal.Decimal `json:"mm"`
	Liquidation decimal.Decimal `json:"lt"`
	Termination decimal.Decimal `json:"tt"`
}
