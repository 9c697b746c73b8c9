package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var abilitiesLimit int

var abilitiesCmd = &cobra.Command{
	Use:   "abilities",
	Short: "List and inspect abilities",
}

var abilitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List abilities",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		abilities, err := client.ListAbilities(cmd.Context(), abilitiesLimit)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		for _, a := range abilities {
			bold.Println(a.Name)
			if a.Description != "" {
				fmt.Printf("  %s\n", a.Description)
			}
			if len(a.Tools) > 0 {
				fmt.Printf("  tools: %s\n", strings.Join(a.Tools, ", "))
			}
		}
		fmt.Printf("\n%d ability(ies)\n", len(abilities))
		return nil
	},
}

var abilitiesGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show an ability",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		ability, err := client.GetAbility(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		color.New(color.Bold).Println(ability.Name)
		fmt.Printf("  id:          %s\n", ability.ID)
		if ability.Description != "" {
			fmt.Printf("  description: %s\n", ability.Description)
		}
		if len(ability.Tools) > 0 {
			fmt.Printf("  tools:       %s\n", strings.Join(ability.Tools, ", "))
		}
		return nil
	},
}

func init() {
	abilitiesListCmd.Flags().IntVar(&abilitiesLimit, "limit", 0, "Maximum number of abilities to list (0 = all)")

	abilitiesCmd.AddCommand(abilitiesListCmd)
	abilitiesCmd.AddCommand(abilitiesGetCmd)
}
