package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/khata-io/khata"
	"github.com/khata-io/khata/event"
	"github.com/khata-io/khata/server"
	"github.com/khata-io/khata/store"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the ledger API over HTTP" }
func (*serveCmd) Usage() string {
	return `kta serve [-addr <host:port>]

  Serves the JSON API. Configuration is read from the environment, with an
  optional .env file:

    KHATA_ADDR     listen address (default :8080, overridden by -addr)
    KHATA_DATA     data directory for the fs store (default: -data flag)
    KHATA_STORE    fs, memory or postgres (default fs)
    DATABASE_URL   Postgres connection string, required for the postgres store
    KAFKA_BROKERS  comma-separated broker list; events are dropped when unset
`
}

func (p *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.addr, "addr", "", "Listen address. Overrides KHATA_ADDR.")
}

func (p *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// A missing .env file is fine, the environment alone is enough.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	st, err := openConfiguredStore(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to open store")
		return subcommands.ExitFailure
	}

	var pub event.Publisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		k := event.NewKafka(strings.Split(brokers, ","))
		defer k.Close()
		pub = k
		log.Info().Str("brokers", brokers).Msg("publishing events to kafka")
	}

	svc := khata.NewService(st, log, pub)

	addr := p.addr
	if addr == "" {
		addr = os.Getenv("KHATA_ADDR")
	}
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      server.New(svc, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// openConfiguredStore picks the store backend from KHATA_STORE.
func openConfiguredStore(ctx context.Context) (store.Store, error) {
	switch kind := os.Getenv("KHATA_STORE"); kind {
	case "", "fs":
		dir := os.Getenv("KHATA_DATA")
		if dir == "" {
			dir = *dataDir
		}
		return store.NewFS(dir)
	case "memory":
		return store.NewMemory(), nil
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return nil, fmt.Errorf("KHATA_STORE=postgres requires DATABASE_URL")
		}
		return store.OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}
