package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnlab/internal/gateway"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create a study plan and print it",
	Example: `  learnlab plan --name Ada --subject "Go concurrency" --level intermediate --days 5
  learnlab plan --name Ada --subject Rust --json > plan.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		subject, _ := cmd.Flags().GetString("subject")
		level, _ := cmd.Flags().GetString("level")
		days, _ := cmd.Flags().GetInt("days")
		asJSON, _ := cmd.Flags().GetBool("json")

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.gateway().CreatePlan(cmd.Context(), gateway.PlanRequest{
			Subject:     subject,
			Level:       level,
			TotalDays:   days,
			LearnerName: name,
		})
		if err != nil {
			return fmt.Errorf("create plan: %s", gateway.UserMessage(err))
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Plan)
		}
		printPlan(res)
		return nil
	},
}

func printPlan(res *gateway.PlanResult) {
	plan := res.Plan
	sep := strings.Repeat("\u2500", 60)

	fmt.Printf("Subject:   %s\n", plan.Subject)
	if res.Summary.Level != "" {
		fmt.Printf("Level:     %s\n", res.Summary.Level)
	}
	fmt.Printf("Theme:     %s\n", plan.Theme())
	fmt.Printf("Days:      %d\n", len(plan.Modules))

	for _, m := range plan.Modules {
		fmt.Println()
		fmt.Println(sep)
		fmt.Println(m.Title)
		fmt.Println(sep)
		printList("Objectives", m.LearningObjectives)
		printList("Tasks", m.DailyTasks)
		printList("Resources", m.Resources)
	}
}

func printList(label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("%s:\n", label)
	for _, it := range items {
		fmt.Printf("  • %s\n", it)
	}
}

func init() {
	planCmd.Flags().String("name", "", "Learner name")
	planCmd.Flags().String("subject", "", "What to study")
	planCmd.Flags().String("level", gateway.LevelBeginner, "Level: "+strings.Join(gateway.Levels, ", "))
	planCmd.Flags().Int("days", 7, "Plan length in days")
	planCmd.Flags().Bool("json", false, "Print the plan as JSON")

	_ = planCmd.MarkFlagRequired("name")
	_ = planCmd.MarkFlagRequired("subject")
}
