package main

import (
	"fmt"

	"github.com/chris/hive-timebank/pkg/api"
	"github.com/chris/hive-timebank/pkg/mapping"
	"github.com/chris/hive-timebank/pkg/models"
	"github.com/chris/hive-timebank/pkg/timebank"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func auditCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Check the ledger invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.svc.Auditor.Run(cmd.Context())
			if err != nil {
				return err
			}
			if err := printJSON(cmd, mapping.ToApiAuditReport(report)); err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("audit found %d violations", len(report.Violations))
			}
			return nil
		},
	}
}

func memberCommands(a *app) *cobra.Command {
	memberCmd := &cobra.Command{
		Use:   "member",
		Short: "Manage member accounts",
	}

	memberCmd.AddCommand(&cobra.Command{
		Use:   "open <member-id>",
		Short: "Open an account with the starting balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			member, err := a.svc.Ledger.OpenAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, mapping.ToApiMember(member))
		},
	})

	memberCmd.AddCommand(&cobra.Command{
		Use:   "get <member-id>",
		Short: "Show a member's balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			member, err := a.svc.Ledger.GetMember(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, mapping.ToApiMember(member))
		},
	})

	memberCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := a.svc.Ledger.ListMembers(cmd.Context())
			if err != nil {
				return err
			}
			apiMembers := make([]*api.Member, len(members))
			for i, member := range members {
				apiMembers[i] = mapping.ToApiMember(&member)
			}
			return printJSON(cmd, apiMembers)
		},
	})

	return memberCmd
}

func engagementCommands(a *app) *cobra.Command {
	engagementCmd := &cobra.Command{
		Use:   "engagement",
		Short: "Drive engagements through their lifecycle",
	}

	var proposal timebank.Proposal
	var hours string
	proposeCmd := &cobra.Command{
		Use:   "propose",
		Short: "Propose an engagement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := decimal.NewFromString(hours)
			if err != nil {
				return fmt.Errorf("invalid hours %q: %w", hours, err)
			}
			proposal.Hours = h
			eng, err := a.svc.Ledger.ProposeEngagement(cmd.Context(), proposal)
			if err != nil {
				return err
			}
			return printJSON(cmd, mapping.ToApiEngagement(eng))
		},
	}
	proposeCmd.Flags().StringVar(&proposal.RequesterID, "requester", "", "member requesting the service")
	proposeCmd.Flags().StringVar(&proposal.ProviderID, "provider", "", "member providing the service")
	proposeCmd.Flags().StringVar(&hours, "hours", "", "hours, in steps of 0.5")
	proposeCmd.Flags().StringVar(&proposal.PostID, "post", "", "post the engagement answers")
	proposeCmd.Flags().StringVar(&proposal.Message, "message", "", "message to the provider")
	proposeCmd.MarkFlagRequired("requester")
	proposeCmd.MarkFlagRequired("provider")
	proposeCmd.MarkFlagRequired("hours")
	engagementCmd.AddCommand(proposeCmd)

	engagementCmd.AddCommand(&cobra.Command{
		Use:   "get <engagement-id>",
		Short: "Show an engagement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.svc.Ledger.GetEngagement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, mapping.ToApiEngagement(eng))
		},
	})

	engagementCmd.AddCommand(&cobra.Command{
		Use:   "reserve <engagement-id>",
		Short: "Reserve the hours of a proposed engagement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.svc.Ledger.Reserve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, mapping.ToApiEngagement(eng))
		},
	})

	engagementCmd.AddCommand(&cobra.Command{
		Use:       "confirm <engagement-id> <requester|provider>",
		Short:     "Confirm completion on behalf of one party",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(models.PartyRequester), string(models.PartyProvider)},
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.svc.Ledger.ConfirmCompletion(cmd.Context(), args[0], models.Party(args[1]))
			if err != nil {
				return err
			}
			return printJSON(cmd, mapping.ToApiEngagement(eng))
		},
	})

	var reason string
	cancelCmd := &cobra.Command{
		Use:   "cancel <engagement-id>",
		Short: "Reject a proposed or cancel a reserved engagement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.svc.Ledger.Cancel(cmd.Context(), args[0], reason)
			if err != nil {
				return err
			}
			return printJSON(cmd, mapping.ToApiEngagement(eng))
		},
	}
	cancelCmd.Flags().StringVar(&reason, "reason", "", "why the engagement is cancelled")
	engagementCmd.AddCommand(cancelCmd)

	return engagementCmd
}

func ledgerCommand(a *app) *cobra.Command {
	var member string
	var limit int32
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "List the most recent journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []models.LedgerEntry
			var err error
			if member != "" {
				entries, err = a.svc.Ledger.ListMemberLedgerEntries(cmd.Context(), member, limit)
			} else {
				entries, err = a.svc.Ledger.ListLedgerEntries(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}
			apiEntries := make([]*api.LedgerEntry, len(entries))
			for i, entry := range entries {
				apiEntries[i] = mapping.ToApiLedgerEntry(&entry)
			}
			return printJSON(cmd, apiEntries)
		},
	}
	ledgerCmd.Flags().StringVar(&member, "member", "", "only entries of this member")
	ledgerCmd.Flags().Int32Var(&limit, "limit", 20, "maximum number of entries")
	return ledgerCmd
}
