/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"voteapp/domain"
	"voteapp/domain/config"
	"voteapp/interface/api"
	"voteapp/interface/exporter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the read API and the metrics",
	Long:  `Serves the read API and the metrics, and reports the treasury state periodically. Stops on SIGINT or SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()
		defer closeDependencies()

		exporter.Init(prometheus.DefaultRegisterer)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := &http.Server{
			Addr:              config.GetListenAddress(),
			Handler:           api.NewRouter(api.NewHandler(treasuryInteractor, voterInteractor, proposalInteractor)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		group, ctx := errgroup.WithContext(ctx)
		group.Go(func() error {
			log.Printf("🔵 listening on %v\n", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		group.Go(func() error {
			reportTicker := schedule(report, config.GetReportInterval(), ctx.Done())
			<-ctx.Done()
			reportTicker.Stop()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})

		if err := group.Wait(); err != nil {
			log.Printf("🔴 serve stopped - %v\n", err.Error())
			return
		}
		log.Printf("Stopped")
	},
}

func schedule(task func(), interval time.Duration, done <-chan struct{}) *time.Ticker {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {

			case <-ticker.C:
				ticker.Stop()
				task()
				ticker.Reset(interval)

			case <-done:
				return
			}
		}
	}()
	return ticker
}

func report() {
	result, err := statisticInteractor.Statistic(context.Background())
	if errors.Is(err, domain.ErrorTreasuryNotInitialized) {
		log.Printf("⚠️ treasury is not initialized yet")
		return
	}
	if err != nil {
		log.Printf("❌ Failed to report treasury state - %v\n", err.Error())
		return
	}
	statisticInteractor.Store(result)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
