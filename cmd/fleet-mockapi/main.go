// Command fleet-mockapi serves the in-memory fleet API used for local
// development and for exercising the fleetadmin client end to end.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fleetops/fleetadmin/internal/mockapi"
)

func main() {
	var (
		addr     = flag.String("addr", ":8090", "listen address")
		secret   = flag.String("jwt-secret", "", "JWT signing secret; defaults to the built-in development secret")
		tokenTTL = flag.Duration("token-ttl", 24*time.Hour, "issued token lifetime")
		noSeed   = flag.Bool("no-seed", false, "start with an empty fleet instead of the demo data")
	)
	flag.Parse()

	api := mockapi.New(mockapi.Config{
		JWTSecret: []byte(*secret),
		TokenTTL:  *tokenTTL,
		Seed:      !*noSeed,
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("fleet-mockapi listening on %s\n", *addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "serve failed: %v\n", err)
			os.Exit(1)
		}
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("fleet-mockapi stopped")
	}
}
