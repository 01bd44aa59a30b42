package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"hermes/internal/adapters/config"
	"hermes/internal/adapters/errors/noop"
	"hermes/internal/adapters/errors/sentry"
	"hermes/internal/adapters/exchangefactory"
	"hermes/internal/adapters/exchanges"
	"hermes/internal/adapters/exchanges/transport"
	"hermes/internal/adapters/redis"
	"hermes/internal/metrics"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

const usage = `deltactl — Delta Exchange command line client

Usage:
  deltactl <command> [args]

Commands:
  time                         print exchange server time
  status                       print exchange availability
  markets                      list markets
  currencies                   list currencies
  ticker <symbol>              print a ticker
  book <symbol>                print the order book
  trades <symbol>              print recent trades
  candles <symbol> <timeframe> print recent candles
  balances                     print wallet balances (requires credentials)
  positions                    print open positions (requires credentials)
  orders [symbol]              print open orders (requires credentials)
  cancel <id> <symbol>         cancel an order (requires credentials)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	metrics.Register()
	if cfg.App.MetricsAddr != "" {
		go serveMetrics(cfg.App.MetricsAddr, log)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory := exchangefactory.New(cfg, initCache(cfg, log))
	client, err := factory.Create("delta")
	if err != nil {
		log.Fatalf("create client: %v", err)
	}

	if err := run(ctx, client, os.Args[1], os.Args[2:]); err != nil {
		errorTracker.Flush(ctx)
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		return noop.New()
	}
	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}
	return tracker
}

// serveMetrics exposes the Prometheus endpoint for long-running invocations
func serveMetrics(addr string, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warnf("metrics endpoint: %v", err)
	}
}

// initCache wires the catalog response cache: Redis when configured, local
// memory otherwise.
func initCache(cfg *config.Config, log *logger.Logger) transport.Cache {
	if !cfg.Redis.Enabled {
		return transport.NewMemoryCache()
	}
	client, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Warnf("Redis unavailable, falling back to memory cache: %v", err)
		return transport.NewMemoryCache()
	}
	return transport.NewRedisCache(client.Client(), "delta:")
}

func run(ctx context.Context, client exchanges.Exchange, command string, args []string) error {
	switch command {
	case "time":
		serverTime, err := client.FetchTime(ctx)
		if err != nil {
			return err
		}
		fmt.Println(serverTime.UTC().Format(time.RFC3339))
		return nil

	case "status":
		status, err := client.FetchStatus(ctx)
		if err != nil {
			return err
		}
		state := "ok"
		if !status.OK {
			state = "maintenance"
		}
		fmt.Printf("%s (as of %s)\n", state, status.Updated.UTC().Format(time.RFC3339))
		return nil

	case "markets":
		if err := client.LoadMarkets(ctx, false); err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "SYMBOL\tID\tKIND\tACTIVE\tTICK")
		for _, market := range client.Markets() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
				market.Symbol, market.ID, market.Kind, market.Active, market.TickSize)
		}
		return w.Flush()

	case "currencies":
		if err := client.LoadMarkets(ctx, false); err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "CODE\tID\tACTIVE\tPRECISION")
		for _, currency := range client.Currencies() {
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\n",
				currency.Code, currency.ExchangeID, currency.Active, currency.Precision)
		}
		return w.Flush()

	case "ticker":
		symbol, err := oneArg(args, "symbol")
		if err != nil {
			return err
		}
		ticker, err := client.FetchTicker(ctx, symbol)
		if err != nil {
			return err
		}
		fmt.Printf("%s close=%s high=%s low=%s volume=%s\n",
			ticker.Symbol, ticker.Close, ticker.High, ticker.Low, ticker.BaseVolume)
		if ticker.PercentChange != nil {
			fmt.Printf("change %s%%\n", ticker.PercentChange.StringFixed(2))
		}
		return nil

	case "book":
		symbol, err := oneArg(args, "symbol")
		if err != nil {
			return err
		}
		book, err := client.FetchOrderBook(ctx, symbol, 10)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "SIDE\tPRICE\tSIZE")
		for _, level := range book.Asks {
			fmt.Fprintf(w, "ask\t%s\t%s\n", level.Price, level.Amount)
		}
		for _, level := range book.Bids {
			fmt.Fprintf(w, "bid\t%s\t%s\n", level.Price, level.Amount)
		}
		return w.Flush()

	case "trades":
		symbol, err := oneArg(args, "symbol")
		if err != nil {
			return err
		}
		trades, err := client.FetchTrades(ctx, symbol)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "TIME\tSIDE\tPRICE\tSIZE")
		for _, trade := range trades {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				trade.Timestamp.UTC().Format(time.RFC3339), trade.Side, trade.Price, trade.Amount)
		}
		return w.Flush()

	case "candles":
		if len(args) < 2 {
			return errors.Wrap(errors.ErrMissingArgument, "candles requires <symbol> <timeframe>")
		}
		candles, err := client.FetchOHLCV(ctx, args[0], args[1], time.Time{}, 20)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "TIME\tOPEN\tHIGH\tLOW\tCLOSE\tVOLUME")
		for _, candle := range candles {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				candle.Timestamp.UTC().Format(time.RFC3339),
				candle.Open, candle.High, candle.Low, candle.Close, candle.Volume)
		}
		return w.Flush()

	case "balances":
		balances, err := client.FetchBalances(ctx)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "CURRENCY\tTOTAL\tFREE")
		for _, balance := range balances {
			fmt.Fprintf(w, "%s\t%s\t%s\n", balance.Currency, balance.Total, balance.Free)
		}
		return w.Flush()

	case "positions":
		positions, err := client.FetchPositions(ctx)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "SYMBOL\tSIZE\tENTRY\tLIQUIDATION")
		for _, position := range positions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				position.Symbol, position.Size, position.EntryPrice, position.LiquidationPrice)
		}
		return w.Flush()

	case "orders":
		opts := exchanges.ListOptions{}
		if len(args) > 0 {
			opts.Symbol = args[0]
		}
		orders, _, err := client.FetchOpenOrders(ctx, opts)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tSYMBOL\tSIDE\tTYPE\tPRICE\tSIZE\tFILLED\tSTATUS")
		for _, order := range orders {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				order.ID, order.Symbol, order.Side, order.Type,
				order.Price, order.Size, order.Filled, order.Status)
		}
		return w.Flush()

	case "cancel":
		if len(args) < 2 {
			return errors.Wrap(errors.ErrMissingArgument, "cancel requires <id> <symbol>")
		}
		if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
			return errors.Wrapf(errors.ErrInvalidInput, "order id %q", args[0])
		}
		order, err := client.CancelOrder(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("cancelled %s (%s)\n", order.ID, order.Status)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return errors.Wrapf(errors.ErrInvalidInput, "unknown command %q", command)
	}
}

func oneArg(args []string, name string) (string, error) {
	if len(args) < 1 {
		return "", errors.Wrapf(errors.ErrMissingArgument, "missing <%s>", name)
	}
	return args[0], nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}
