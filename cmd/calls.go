package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnlab/internal/store"
)

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "Inspect recorded backend calls",
}

// openCalls sets up the runtime and requires the call log to be enabled.
func openCalls(cmd *cobra.Command) (*runtime, store.EventRepo, error) {
	rt, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	repo := rt.calls()
	if repo == nil {
		rt.Close()
		return nil, nil, errCallLogDisabled
	}
	return rt, repo, nil
}

var callsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent backend calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		op, _ := cmd.Flags().GetString("op")

		rt, repo, err := openCalls(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		calls, err := repo.QueryCalls(cmd.Context(), store.QueryOpts{Limit: limit, Operation: op})
		if err != nil {
			return fmt.Errorf("query calls: %w", err)
		}

		if len(calls) == 0 {
			fmt.Println("No calls recorded.")
			return nil
		}

		// Header.
		fmt.Printf("%-5s  %-19s  %-14s  %-6s  %-7s  %-36s  %s\n",
			"ID", "Timestamp", "Operation", "Status", "Ms", "Request ID", "OK")
		fmt.Println(strings.Repeat("\u2500", 100))

		for _, c := range calls {
			ok := "✓"
			if !c.Success {
				ok = "✗"
			}
			status := "-"
			if c.StatusCode > 0 {
				status = fmt.Sprint(c.StatusCode)
			}
			fmt.Printf("%-5d  %-19s  %-14s  %-6s  %-7d  %-36s  %s\n",
				c.ID,
				c.Timestamp.Local().Format("2006-01-02 15:04:05"),
				c.Operation,
				status,
				c.LatencyMs,
				c.RequestID,
				ok,
			)
		}
		return nil
	},
}

var callsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of a call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		rt, repo, err := openCalls(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		c, err := repo.GetCall(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get call: %w", err)
		}
		if c == nil {
			return fmt.Errorf("call %d not found", id)
		}

		sep := strings.Repeat("\u2500", 60)

		fmt.Printf("ID:         %d\n", c.ID)
		fmt.Printf("Time:       %s\n", c.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Operation:  %s\n", c.Operation)
		fmt.Printf("Request ID: %s\n", c.RequestID)
		fmt.Printf("Status:     %d\n", c.StatusCode)
		fmt.Printf("Latency:    %dms\n", c.LatencyMs)
		fmt.Printf("Success:    %v\n", c.Success)
		if c.ErrorMessage != "" {
			fmt.Printf("Error:      %s\n", c.ErrorMessage)
		}

		printBody(sep, "REQUEST", c.RequestBody)
		printBody(sep, "RESPONSE", c.ResponseBody)
		return nil
	},
}

func printBody(sep, label, body string) {
	fmt.Println()
	fmt.Println(sep)
	fmt.Println(label)
	fmt.Println(sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

var callsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show call counts, failures and latency per operation",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, repo, err := openCalls(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		stats, err := repo.UsageByOperation(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		if len(stats) == 0 {
			fmt.Println("No calls recorded yet.")
			return nil
		}

		fmt.Println("Usage by Operation")
		fmt.Println(strings.Repeat("\u2500", 56))
		fmt.Printf("%-16s  %6s  %8s  %8s  %8s\n", "Operation", "Calls", "Failed", "Rate", "Avg Ms")
		fmt.Println(strings.Repeat("\u2500", 56))

		var totalCalls, totalFailed int
		for _, st := range stats {
			fmt.Printf("%-16s  %6d  %8d  %7.0f%%  %8d\n",
				st.Operation, st.Calls, st.Failures, successRate(st.Calls, st.Failures), st.AvgLatencyMs)
			totalCalls += st.Calls
			totalFailed += st.Failures
		}

		fmt.Println(strings.Repeat("\u2500", 56))
		fmt.Printf("%-16s  %6d  %8d  %7.0f%%\n",
			"TOTAL", totalCalls, totalFailed, successRate(totalCalls, totalFailed))
		return nil
	},
}

func successRate(calls, failures int) float64 {
	if calls == 0 {
		return 0
	}
	return float64(calls-failures) / float64(calls) * 100
}

func init() {
	callsListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	callsListCmd.Flags().StringP("op", "o", "", "Filter by operation (e.g. create-plan, generate-quiz)")

	callsCmd.AddCommand(callsListCmd)
	callsCmd.AddCommand(callsViewCmd)
	callsCmd.AddCommand(callsStatsCmd)
}
