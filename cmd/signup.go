package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flightobs/flightwatch/app"
	"github.com/flightobs/flightwatch/config"
	"github.com/flightobs/flightwatch/core/roster"
)

var (
	signupDay      string
	signupObserver string
	signupFlight   string
	signupOverride bool
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Sign an observer up for a single flight",
	RunE:  runSignup,
}

func init() {
	signupCmd.Flags().StringVar(&signupDay, "day", time.Now().Format("2006-01-02"), "day table to write")
	signupCmd.Flags().StringVar(&signupObserver, "observer", "", "observer name")
	signupCmd.Flags().StringVar(&signupFlight, "flight", "", "flight number")
	signupCmd.Flags().BoolVar(&signupOverride, "override", false, "sign up despite a departure-time conflict")
	_ = signupCmd.MarkFlagRequired("observer")
	_ = signupCmd.MarkFlagRequired("flight")
	rootCmd.AddCommand(signupCmd)
}

func runSignup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	res, err := svc.Manager.SignUp(cmd.Context(), signupDay, signupObserver, signupFlight, signupOverride)
	if err != nil {
		return err
	}
	switch res.Status {
	case roster.StatusAssigned:
		fmt.Fprintf(cmd.OutOrStdout(), "%s signed up for flight %s\n", signupObserver, signupFlight)
	case roster.StatusAlready:
		fmt.Fprintf(cmd.OutOrStdout(), "%s is already signed up for flight %s\n", signupObserver, signupFlight)
	case roster.StatusConflict:
		fmt.Fprintf(cmd.OutOrStdout(), "flight %s departs within 50 minutes of %s; rerun with --override to sign up anyway\n",
			signupFlight, res.ConflictWith)
	}
	return nil
}
