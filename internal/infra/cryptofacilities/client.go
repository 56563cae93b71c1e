package cryptofacilities

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cfgo/internal/domain"
)

const (
	// DefaultBaseURL is the production REST endpoint.
	DefaultBaseURL = "https://www.cryptofacilities.com/derivatives"

	apiVersion = "/api/v3/"
)

// Param is one request parameter. Parameters are carried as an ordered
// slice, not a map: the exchange signs the parameter string in the exact
// order it is transmitted.
type Param struct {
	Key   string
	Value string
}

// Client is the Crypto Facilities derivatives REST API client. Calls are
// synchronous request/response round trips; the client keeps no state
// between calls apart from the nonce counter.
//
// The client never retries. Rate limiting (one call per 0.1s per source
// address) surfaces as a retriable RemoteError for the caller to back off
// on.
type Client struct {
	baseURL    string
	httpClient *http.Client
	nonce      *Nonce
	logger     *slog.Logger
}

// NewClient creates a client for the given base URL ("" selects the
// production endpoint).
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		nonce:  NewNonce(),
		logger: slog.Default().With("module", "cf_client"),
	}
}

// encodeParams renders k1=v1&k2=v2... preserving caller order (never
// sorted). The same string feeds both the signature and the transmitted
// query/body.
func encodeParams(params []Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// do performs one round trip. key == nil sends an unauthenticated request;
// otherwise the next nonce is consumed and APIKey/Nonce/Authent headers are
// attached. On success the body is unmarshalled into payload (which may be
// nil when only the envelope matters).
func (c *Client) do(ctx context.Context, method, path string, params []Param, key *APIKey, payload any) error {
	encoded := encodeParams(params)

	reqURL := c.baseURL + apiVersion + path
	var body io.Reader
	if method == http.MethodGet {
		if encoded != "" {
			reqURL += "?" + encoded
		}
	} else {
		body = strings.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return err
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if key != nil {
		nonce := c.nonce.Next()
		authent, err := NewSigner(key.Private).Sign(encoded, nonce, apiVersion+path)
		if err != nil {
			return err
		}
		req.Header.Set("APIKey", key.Public)
		req.Header.Set("Nonce", nonce)
		req.Header.Set("Authent", authent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewNetworkError(method+" "+path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewNetworkError("read "+path, err)
	}

	c.logger.Debug("request complete",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.HTTPError{StatusCode: resp.StatusCode}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode %s envelope: %w", path, err)
	}
	if env.Result != "success" {
		code := env.Error
		if code == "" {
			code = domain.UnspecifiedError
		}
		return &domain.RemoteError{Code: code}
	}

	if payload != nil {
		if err := json.Unmarshal(raw, payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", path, err)
		}
	}
	return nil
}

// GetInstruments lists the contracts the exchange offers.
func (c *Client) GetInstruments(ctx context.Context) ([]domain.Instrument, error) {
	var resp instrumentsResponse
	if err := c.do(ctx, http.MethodGet, "instruments", nil, nil, &resp); err != nil {
		return nil, err
	}

	instruments := make([]domain.Instrument, 0, len(resp.Instruments))
	for _, rec := range resp.Instruments {
		instruments = append(instruments, rec.toDomain())
	}
	return instruments, nil
}

// GetTickers returns the current market snapshot for every instrument.
func (c *Client) GetTickers(ctx context.Context) ([]domain.Ticker, error) {
	var resp tickersResponse
	if err := c.do(ctx, http.MethodGet, "tickers", nil, nil, &resp); err != nil {
		return nil, err
	}

	tickers := make([]domain.Ticker, 0, len(resp.Tickers))
	for _, rec := range resp.Tickers {
		tickers = append(tickers, rec.toDomain())
	}
	return tickers, nil
}

// GetOrderBook returns resting liquidity for one symbol. Bids arrive in
// descending and asks in ascending price order.
func (c *Client) GetOrderBook(ctx context.Context, symbol string) (domain.OrderBook, error) {
	params := []Param{{"symbol", symbol}}

	var resp orderBookResponse
	if err := c.do(ctx, http.MethodGet, "orderbook", params, nil, &resp); err != nil {
		return domain.OrderBook{}, err
	}
	return resp.OrderBook, nil
}

// GetTradeHistory returns public trades for a symbol, newest first, capped
// at 100 entries server-side. A non-nil lastTime returns only trades at or
// before it (inclusive); callers paginate by passing the oldest returned
// timestamp as the next cursor.
func (c *Client) GetTradeHistory(ctx context.Context, symbol string, lastTime *time.Time) ([]domain.Trade, error) {
	params := []Param{{"symbol", symbol}}
	if lastTime != nil {
		params = append(params, Param{"lastTime", FormatTime(*lastTime)})
	}

	var resp historyResponse
	if err := c.do(ctx, http.MethodGet, "history", params, nil, &resp); err != nil {
		return nil, err
	}

	trades := make([]domain.Trade, 0, len(resp.History))
	for _, rec := range resp.History {
		trades = append(trades, rec.toDomain())
	}
	return trades, nil
}

// GetAccounts returns cash and margin account state.
func (c *Client) GetAccounts(ctx context.Context, key APIKey) (domain.Accounts, error) {
	var resp accountsResponse
	if err := c.do(ctx, http.MethodGet, "accounts", nil, &key, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// GetFillHistory returns the caller's fills, newest first, capped at 100
// entries server-side. A non-nil lastTime returns only fills at or before
// it.
func (c *Client) GetFillHistory(ctx context.Context, key APIKey, lastTime *time.Time) ([]domain.Fill, error) {
	var params []Param
	if lastTime != nil {
		params = append(params, Param{"lastFillTime", FormatTime(*lastTime)})
	}

	var resp fillsResponse
	if err := c.do(ctx, http.MethodGet, "fills", params, &key, &resp); err != nil {
		return nil, err
	}

	fills := make([]domain.Fill, 0, len(resp.Fills))
	for _, rec := range resp.Fills {
		fills = append(fills, rec.toDomain())
	}
	return fills, nil
}

// GetPositions returns the caller's open positions.
func (c *Client) GetPositions(ctx context.Context, key APIKey) ([]domain.Position, error) {
	var resp positionsResponse
	if err := c.do(ctx, http.MethodGet, "openpositions", nil, &key, &resp); err != nil {
		return nil, err
	}

	positions := make([]domain.Position, 0, len(resp.OpenPositions))
	for _, rec := range resp.OpenPositions {
		positions = append(positions, rec.toDomain())
	}
	return positions, nil
}

// Withdraw requests a withdrawal to the given address.
func (c *Client) Withdraw(ctx context.Context, key APIKey, targetAddress string, money domain.Money) (domain.TransferStatus, error) {
	params := []Param{
		{"targetAddress", targetAddress},
		{"currency", money.Currency},
		{"amount", money.Amount.String()},
	}

	var resp withdrawalResponse
	if err := c.do(ctx, http.MethodPost, "withdrawal", params, &key, &resp); err != nil {
		return domain.TransferStatus{}, err
	}
	return resp.toDomain(), nil
}

// GetTransferHistory returns deposits and withdrawals, newest first, capped
// at 100 entries server-side. A non-nil lastTime returns only transfers
// received at or before it.
func (c *Client) GetTransferHistory(ctx context.Context, key APIKey, lastTime *time.Time) ([]domain.Transfer, error) {
	var params []Param
	if lastTime != nil {
		params = append(params, Param{"lastTransferTime", FormatTime(*lastTime)})
	}

	var resp transfersResponse
	if err := c.do(ctx, http.MethodGet, "transfers", params, &key, &resp); err != nil {
		return nil, err
	}

	transfers := make([]domain.Transfer, 0, len(resp.Transfers))
	for _, rec := range resp.Transfers {
		transfers = append(transfers, rec.toDomain())
	}
	return transfers, nil
}
