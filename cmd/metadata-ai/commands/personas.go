package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/metadata-ai/metadata-ai-go/pkg/types"
)

var (
	personasLimit        int
	personaCreateDesc    string
	personaCreatePrompt  string
	personaCreateDisplay string
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List and manage personas",
}

var personasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List personas",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		personas, err := client.ListPersonas(cmd.Context(), personasLimit)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		for _, p := range personas {
			bold.Println(p.Name)
			if p.Description != "" {
				fmt.Printf("  %s\n", p.Description)
			}
		}
		fmt.Printf("\n%d persona(s)\n", len(personas))
		return nil
	},
}

var personasGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a persona",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		persona, err := client.GetPersona(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		color.New(color.Bold).Println(persona.Name)
		fmt.Printf("  id:          %s\n", persona.ID)
		if persona.Description != "" {
			fmt.Printf("  description: %s\n", persona.Description)
		}
		if persona.Prompt != "" {
			fmt.Printf("  prompt:      %s\n", persona.Prompt)
		}
		return nil
	},
}

var personasCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a persona",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if personaCreatePrompt == "" {
			return fmt.Errorf("--prompt is required")
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		persona, err := client.CreatePersona(cmd.Context(), types.CreatePersonaRequest{
			Name:        args[0],
			Description: personaCreateDesc,
			Prompt:      personaCreatePrompt,
			DisplayName: personaCreateDisplay,
		})
		if err != nil {
			return err
		}

		color.Green("Created persona %s", persona.Name)
		return nil
	},
}

func init() {
	personasListCmd.Flags().IntVar(&personasLimit, "limit", 0, "Maximum number of personas to list (0 = all)")

	personasCreateCmd.Flags().StringVar(&personaCreateDesc, "description", "", "Persona description")
	personasCreateCmd.Flags().StringVar(&personaCreatePrompt, "prompt", "", "System prompt (required)")
	personasCreateCmd.Flags().StringVar(&personaCreateDisplay, "display-name", "", "Display name")

	personasCmd.AddCommand(personasListCmd)
	personasCmd.AddCommand(personasGetCmd)
	personasCmd.AddCommand(personasCreateCmd)
}
