package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgagudelom/otp-secret-messages/audit"
)

var (
	auditAction string
	auditLimit  int
	auditFailed bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent audit log events",
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().StringVar(&auditAction, "action", "", "filter by action name")
	auditCmd.Flags().IntVar(&auditLimit, "limit", 50, "maximum number of events to show")
	auditCmd.Flags().BoolVar(&auditFailed, "failed", false, "show only failed operations")

	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	options := audit.QueryOptions{
		Action: auditAction,
		Limit:  auditLimit,
	}
	if auditFailed {
		failed := false
		options.Success = &failed
	}

	result, err := auditLogger.Query(options)
	if err != nil {
		return fmt.Errorf("failed to query audit log: %w", err)
	}

	if len(result.Events) == 0 {
		fmt.Println("No audit events found (is --audit-log set?)")
		return nil
	}

	for _, event := range result.Events {
		status := "ok"
		if !event.Success {
			status = "FAILED"
		}
		fmt.Printf("%s  %-24s %-6s %s\n",
			event.Timestamp.Format(time.RFC3339), event.Action, status, event.Error)
	}
	fmt.Printf("%d of %d events\n", len(result.Events), result.Filtered)

	return nil
}
