// Command dydxctl queries the dYdX API from the command line. Settings come
// from DYDX_* environment variables and the YAML file named by
// DYDX_CONFIG_FILE.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	dydx "github.com/tradewire/dydx-go"
	"github.com/tradewire/dydx-go/internal/config"
)

const (
	commandTimeout = 60 * time.Second
	// maxConcurrentFetches bounds parallel orderbook requests.
	maxConcurrentFetches = 4
)

// Config holds the process streams.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns the standard streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// publicAPI is the part of *dydx.Public used by the commands.
type publicAPI interface {
	GetMarkets(ctx context.Context, ticker string) (*dydx.PerpetualMarketResponse, error)
	GetOrderbook(ctx context.Context, market string) (*dydx.OrderbookResponse, error)
	GetTime(ctx context.Context) (*dydx.TimeResponse, error)
}

// accountAPI is the part of *dydx.Subaccount used by the commands.
type accountAPI interface {
	GetAccount(ctx context.Context) (*dydx.SubaccountResponse, error)
	GetOrders(ctx context.Context, query dydx.OrdersQuery) ([]dydx.Order, error)
}

func usage() error {
	return errors.New("usage: dydxctl <time|markets [ticker]|orderbooks <market>...|account|orders [ticker]|account-id <address> [number]>")
}

func run(args []string, cfg *Config) error {
	if len(args) < 2 {
		return usage()
	}

	// No network access needed.
	if args[1] == "account-id" {
		return runAccountID(cfg, args[2:])
	}

	settings, err := config.Load(os.Getenv("DYDX_CONFIG_FILE"))
	if err != nil {
		return err
	}
	opts, err := settings.ClientOptions()
	if err != nil {
		return err
	}
	client, err := dydx.New(settings.API.Host, opts...)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch args[1] {
	case "time":
		return runTime(ctx, client.Public(), cfg)
	case "markets":
		ticker := ""
		if len(args) > 2 {
			ticker = args[2]
		}
		return runMarkets(ctx, client.Public(), cfg, ticker)
	case "orderbooks":
		return runOrderbooks(ctx, client.Public(), cfg, args[2:])
	case "account", "orders":
		sub, err := client.Subaccount()
		if err != nil {
			return fmt.Errorf("%s: set DYDX_CREDENTIALS_ADDRESS: %w", args[1], err)
		}
		if args[1] == "account" {
			return runAccount(ctx, sub, cfg)
		}
		ticker := ""
		if len(args) > 2 {
			ticker = args[2]
		}
		return runOrders(ctx, sub, cfg, ticker)
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func runTime(ctx context.Context, api publicAPI, cfg *Config) error {
	resp, err := api.GetTime(ctx)
	if err != nil {
		return fmt.Errorf("get time: %w", err)
	}
	return writeJSON(cfg.Stdout, resp)
}

func runMarkets(ctx context.Context, api publicAPI, cfg *Config, ticker string) error {
	resp, err := api.GetMarkets(ctx, ticker)
	if err != nil {
		return fmt.Errorf("get markets: %w", err)
	}
	return writeJSON(cfg.Stdout, resp)
}

func runOrderbooks(ctx context.Context, api publicAPI, cfg *Config, markets []string) error {
	if len(markets) == 0 {
		return errors.New("usage: dydxctl orderbooks <market> [market...]")
	}

	var mu sync.Mutex
	books := make(map[string]*dydx.OrderbookResponse, len(markets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for _, market := range markets {
		g.Go(func() error {
			book, err := api.GetOrderbook(ctx, market)
			if err != nil {
				return fmt.Errorf("get orderbook %s: %w", market, err)
			}
			mu.Lock()
			books[market] = book
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return writeJSON(cfg.Stdout, books)
}

func runAccount(ctx context.Context, api accountAPI, cfg *Config) error {
	resp, err := api.GetAccount(ctx)
	if err != nil {
		return fmt.Errorf("get account: %w", err)
	}
	return writeJSON(cfg.Stdout, resp)
}

func runOrders(ctx context.Context, api accountAPI, cfg *Config, ticker string) error {
	orders, err := api.GetOrders(ctx, dydx.OrdersQuery{Ticker: ticker})
	if err != nil {
		return fmt.Errorf("get orders: %w", err)
	}
	return writeJSON(cfg.Stdout, orders)
}

func runAccountID(cfg *Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: dydxctl account-id <address> [number]")
	}
	number := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("account number: %w", err)
		}
		number = n
	}
	return writeJSON(cfg.Stdout, map[string]string{"id": dydx.AccountID(args[0], number)})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
