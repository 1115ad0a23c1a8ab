package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/alphafx/profile"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create the local demo profile",
	Long: `Write the demo profile record that seeds the default and minimum trade
amount of every session.

Example:
  alphafx signup --name "Sam" --email sam@example.com --currency USD --amount 1,500`,
	Args: cobra.NoArgs,
	RunE: runSignup,
}

var (
	signupName     string
	signupEmail    string
	signupCurrency string
	signupAmount   string
)

func init() {
	rootCmd.AddCommand(signupCmd)
	signupCmd.Flags().StringVar(&signupName, "name", "", "display name")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "email address")
	signupCmd.Flags().StringVar(&signupCurrency, "currency", "", "base currency (required)")
	signupCmd.Flags().StringVar(&signupAmount, "amount", "", "basic trade amount (required)")
}

func runSignup(cmd *cobra.Command, args []string) error {
	p := profile.Profile{
		Name:             signupName,
		Email:            signupEmail,
		BaseCurrency:     signupCurrency,
		BasicTradeAmount: profile.SanitizeAmount(signupAmount),
	}

	out := cmd.OutOrStdout()
	store := profile.NewStore(cfg.Profile.Path)
	if err := store.Save(p); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return err
	}
	zlog.Info("demo profile saved", zap.String("path", store.Path))

	fmt.Fprintf(out, "Account Created: Welcome to AlphaFxTrader! Your account has been created with %s as base currency. Basic trade amount: %g\n",
		p.BaseCurrency, p.BasicTradeAmount)
	fmt.Fprintf(out, "  profile: %s\n", store.Path)
	return nil
}
