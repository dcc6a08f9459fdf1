package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/flightobs/flightwatch/app"
	"github.com/flightobs/flightwatch/config"
)

var (
	suggestDay      string
	suggestObserver string
	suggestStart    string
	suggestEnd      string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest a non-conflicting observation schedule",
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestDay, "day", time.Now().Format("2006-01-02"), "day table to read")
	suggestCmd.Flags().StringVar(&suggestObserver, "observer", "", "observer name")
	suggestCmd.Flags().StringVar(&suggestStart, "start", "", "window start, e.g. 08:00")
	suggestCmd.Flags().StringVar(&suggestEnd, "end", "", "window end, e.g. 12:00")
	_ = suggestCmd.MarkFlagRequired("observer")
	_ = suggestCmd.MarkFlagRequired("start")
	_ = suggestCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	window, err := svc.Manager.ParseWindow(suggestStart, suggestEnd)
	if err != nil {
		return err
	}
	res, err := svc.Manager.Suggest(cmd.Context(), suggestDay, suggestObserver, window)
	if err != nil {
		return err
	}
	if len(res.Entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no flights fit the window")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FLIGHT\tGATE\tBOARD\tGAP\tNOTE")
	for _, e := range res.Entries {
		note := ""
		if e.Preassigned {
			note = "already yours"
		}
		fmt.Fprintf(w, "%s\t%s\t%s-%s\t%s\t%s\n",
			e.Flight.Number, e.Flight.Gate,
			e.Flight.BoardingStart.Format("15:04"), e.Flight.BoardingEnd.Format("15:04"),
			e.TimeBetween(), note)
	}
	return w.Flush()
}
