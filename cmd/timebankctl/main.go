package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/chris/hive-timebank/pkg/bootstrap"
	"github.com/chris/hive-timebank/pkg/config"
	"github.com/spf13/cobra"
)

// app carries the wired service into the subcommands. It is built lazily by
// the root command's pre-run hook unless already set.
type app struct {
	envFile string
	svc     *bootstrap.Service
}

func (a *app) preRun(cmd *cobra.Command, args []string) error {
	if a.svc != nil {
		return nil
	}
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	svc, err := bootstrap.New(cmd.Context(), cfg, cfg.NewLogger(os.Stderr))
	if err != nil {
		return err
	}
	a.svc = svc
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "timebankctl",
		Short:         "Operate the TimeBank ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "env file read before the environment")
	rootCmd.PersistentPreRunE = a.preRun

	rootCmd.AddCommand(auditCommand(a))
	rootCmd.AddCommand(memberCommands(a))
	rootCmd.AddCommand(engagementCommands(a))
	rootCmd.AddCommand(ledgerCommand(a))
	return rootCmd
}

// printJSON writes v to the command's output as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd(&app{}).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
