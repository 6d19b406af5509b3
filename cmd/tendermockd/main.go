// Command tendermockd runs a mocked consensus node serving the
// JSON-RPC/WebSocket and gRPC surfaces described in the project's
// specification, against deterministic locally produced blocks.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/certen/tendermock/pkg/tendermock"
)

func main() {
	var (
		verbose    = flag.Bool("verbose", false, "log listeners, produced blocks and WebSocket connections")
		jsonPort   = flag.Uint("json-port", 26657, "JSON-RPC/WebSocket listen port")
		grpcPort   = flag.Uint("grpc-port", 50051, "gRPC listen port")
		configPath = flag.String("config", "", "path to the node's genesis configuration file")
		blockSecs  = flag.Uint64("block", 20, "seconds between automatically produced blocks")
	)
	flag.Parse()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("tendermockd: fatal: %v", r)
			os.Exit(1)
		}
	}()

	b := tendermock.New().
		Verbose(*verbose).
		ListenJSONRPC(fmt.Sprintf(":%d", *jsonPort)).
		ListenGRPC(fmt.Sprintf(":%d", *grpcPort)).
		GrowthRate(time.Duration(*blockSecs) * time.Second)

	if *configPath != "" {
		if err := b.LoadConfig(*configPath); err != nil {
			log.Fatalf("tendermockd: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Print("tendermockd: shutting down")
		cancel()
	}()

	if err := b.Start(ctx); err != nil {
		log.Fatalf("tendermockd: %v", err)
	}
}
