package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/flightobs/flightwatch/app"
	"github.com/flightobs/flightwatch/config"
)

var flightsDay string

var flightsCmd = &cobra.Command{
	Use:   "flights",
	Short: "Flight catalog commands",
}

var flightsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the day's flights",
	RunE:  runFlightsLs,
}

func init() {
	flightsLsCmd.Flags().StringVar(&flightsDay, "day", time.Now().Format("2006-01-02"), "day table to read")
	flightsCmd.AddCommand(flightsLsCmd)
	rootCmd.AddCommand(flightsCmd)
}

func runFlightsLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	flights, err := svc.Manager.Catalog(cmd.Context(), flightsDay)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FLIGHT\tGATE\tDEST\tBOARD\tDEP\tOBSERVERS")
	for _, f := range flights {
		board := "-"
		if f.BoardingStart != nil && f.BoardingEnd != nil {
			board = f.BoardingStart.Format("15:04") + "-" + f.BoardingEnd.Format("15:04")
		}
		dep := "-"
		if f.ScheduledDep != nil {
			dep = f.ScheduledDep.Format("15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", f.Number, f.Gate, f.Destination, board, dep, f.ObserverList())
	}
	return w.Flush()
}
