package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tso-redispatch/redispatch/pkg/api"
	"github.com/tso-redispatch/redispatch/pkg/client"
	"github.com/tso-redispatch/redispatch/pkg/events"
	"github.com/tso-redispatch/redispatch/pkg/gateway"
	"github.com/tso-redispatch/redispatch/pkg/log"
	"github.com/tso-redispatch/redispatch/pkg/orders"
	"github.com/tso-redispatch/redispatch/pkg/storage"
	"github.com/tso-redispatch/redispatch/pkg/stream"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "redispatch",
	Short: "Redispatch - Real-time redispatch order notification platform",
	Long: `Redispatch streams grid redispatch orders to balancing entities over
Server-Sent Events, with per-entity replay on reconnect, a pass-through
gateway, and a reference client that fetches and acknowledges orders.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		jsonOut, _ := cmd.Flags().GetBool("log-json")
		log.Init(log.Config{Level: log.Level(level), JSONOutput: jsonOut})
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Redispatch version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log in JSON format")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(gatewayCmd)
	rootCmd.AddCommand(clientCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the redispatch order service",
	Long: `Run the redispatch order service.

The service issues mock redispatch orders on each entity stream, keeps a
bounded per-entity event log for reconnect replay, and records order
acknowledgements to a local bolt database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		heartbeat, _ := cmd.Flags().GetDuration("heartbeat-interval")
		orderMin, _ := cmd.Flags().GetDuration("order-min-interval")
		orderMax, _ := cmd.Flags().GetDuration("order-max-interval")

		if orderMax < orderMin {
			return fmt.Errorf("--order-max-interval must not be less than --order-min-interval")
		}
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}

		store, err := storage.NewBoltStore(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open acknowledgement store: %v", err)
		}
		defer store.Close()

		orderSvc := orders.NewService(store)
		eventLog := events.NewLog(events.DefaultCapacity)
		streams := stream.NewServer(eventLog, orderSvc, stream.Config{
			HeartbeatInterval: heartbeat,
			OrderMinInterval:  orderMin,
			OrderMaxInterval:  orderMax,
		})

		server := api.NewServer(streams, orderSvc)
		errCh := make(chan error, 1)
		go func() {
			if err := server.Start(addr); err != nil {
				errCh <- err
			}
		}()

		if err := waitForShutdown(errCh); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Stop(ctx)
	},
}

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Run the pass-through gateway",
	Long: `Run the pass-through gateway in front of the order service.

The gateway forwards every request to the upstream with its raw path
intact, so pre-encoded order ids are never re-encoded, and it flushes
stream events through without buffering.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		upstream, _ := cmd.Flags().GetString("upstream")

		proxy, err := gateway.NewProxy(upstream)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			if err := proxy.Start(addr); err != nil {
				errCh <- err
			}
		}()

		if err := waitForShutdown(errCh); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return proxy.Stop(ctx)
	},
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Run the reference order client",
	Long: `Run the reference order client for one balancing entity.

The client subscribes to the entity's event stream, resumes from the
last seen event id after a connection loss, and runs the standard
workflow for every issued order: fetch the order detail, then submit a
RECEIVED acknowledgement.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, _ := cmd.Flags().GetString("server")
		entityID, _ := cmd.Flags().GetString("entity-id")
		retry, _ := cmd.Flags().GetDuration("retry-delay")

		handler := client.NewOrderHandler(client.NewAPIClient(serverURL), entityID)
		sub := client.NewSubscription(serverURL, entityID, handler).WithRetryDelay(retry)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		err := sub.Run(ctx)
		handler.Wait()
		if err == context.Canceled {
			return nil
		}
		return err
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Address for the HTTP API")
	serveCmd.Flags().String("data-dir", "./redispatch-data", "Data directory for the acknowledgement store")
	serveCmd.Flags().Duration("heartbeat-interval", stream.DefaultHeartbeatInterval, "Interval between heartbeat events")
	serveCmd.Flags().Duration("order-min-interval", stream.DefaultOrderMinInterval, "Minimum delay between issued orders")
	serveCmd.Flags().Duration("order-max-interval", stream.DefaultOrderMaxInterval, "Maximum delay between issued orders")

	gatewayCmd.Flags().String("addr", "127.0.0.1:8081", "Address for the gateway")
	gatewayCmd.Flags().String("upstream", "http://127.0.0.1:8080", "Upstream order service base URL")

	clientCmd.Flags().String("server", "http://127.0.0.1:8081", "Order service or gateway base URL")
	clientCmd.Flags().String("entity-id", "", "Balancing entity to subscribe for")
	clientCmd.Flags().Duration("retry-delay", client.DefaultRetryDelay, "Delay before reconnecting a dropped stream")
	clientCmd.MarkFlagRequired("entity-id")
}

// waitForShutdown blocks until an interrupt arrives or the server fails
func waitForShutdown(errCh <-chan error) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		fmt.Println("\nShutting down...")
		return nil
	case err := <-errCh:
		return err
	}
}
