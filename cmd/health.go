package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnlab/internal/gateway"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		msg, err := rt.gateway().Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("%s: %s", rt.cfg.Backend.URL, gateway.UserMessage(err))
		}
		fmt.Printf("Backend online (%s): %s\n", rt.cfg.Backend.URL, msg)
		return nil
	},
}
