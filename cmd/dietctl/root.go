package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/dietlog/internal/client"
	"github.com/dukerupert/dietlog/internal/config"
	"github.com/dukerupert/dietlog/internal/record"
)

type app struct {
	server      string
	timeout     time.Duration
	minIDLength int
}

func (a *app) client() *client.Client {
	return client.New(a.server,
		client.WithTimeout(a.timeout),
		client.WithPolicy(record.Policy{MinStoredIDLength: a.minIDLength}),
	)
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "dietctl",
		Short:         "dietctl logs meals and exercise against a dietlog server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.server, "server", cfg.Client.BaseURL+cfg.HTTP.APIPrefix, "Base URL of the dietlog API, including the prefix")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", cfg.Client.Timeout, "Request timeout")
	root.PersistentFlags().IntVar(&a.minIDLength, "min-id-length", cfg.Records.MinStoredIDLength, "Identifiers shorter than this are treated as new records")

	root.AddCommand(newMealsCmd(a), newExercisesCmd(a), newStatsCmd(a))
	return root
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func requireFlag(cmd *cobra.Command, name string) error {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
