package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cfgo/internal/infra"
	"cfgo/internal/infra/cryptofacilities"
)

func main() {
	// 1. Load Config
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		slog.Error("❌ Loading configuration failed", slog.Any("error", err))
		os.Exit(1)
	}

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := cryptofacilities.NewClient(cfg.API.CryptoFacilities.RestURL)

	instruments, err := client.GetInstruments(ctx)
	if err != nil {
		slog.Error("Failed to fetch instruments", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("✅ Instruments fetched", slog.Int("count", len(instruments)))

	tickers, err := client.GetTickers(ctx)
	if err != nil {
		slog.Error("Failed to fetch tickers", slog.Any("error", err))
		os.Exit(1)
	}
	for _, t := range tickers {
		if t.Suspended {
			continue
		}
		slog.Info("Ticker",
			slog.String("symbol", t.Symbol),
			slog.String("last", t.Last.String()),
			slog.String("bid", t.Bid.String()),
			slog.String("ask", t.Ask.String()),
		)
	}

	if !cfg.HasAPIKey() {
		slog.Info("No API key configured, skipping account data")
		return
	}

	key := cryptofacilities.APIKey{
		Public:  cfg.API.CryptoFacilities.PublicKey,
		Private: cfg.API.CryptoFacilities.PrivateKey,
	}

	accounts, err := client.GetAccounts(ctx, key)
	if err != nil {
		slog.Error("Failed to fetch accounts", slog.Any("error", err))
		os.Exit(1)
	}
	for name, acct := range accounts {
		slog.Info("Account", slog.String("name", name), slog.String("type", acct.Type))
	}

	openOrders, err := client.GetOpenOrders(ctx, key)
	if err != nil {
		slog.Error("Failed to fetch open orders", slog.Any("error", err))
		os.Exit(1)
	}
	for _, oo := range openOrders {
		slog.Info("Open order",
			slog.String("order_id", oo.Status.OrderID),
			slog.String("status", oo.Status.Status),
			slog.Int64("filled", oo.FilledSize),
			slog.Int64("unfilled", oo.UnfilledSize),
		)
	}
}
