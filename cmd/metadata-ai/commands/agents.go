package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/metadata-ai/metadata-ai-go/pkg/types"
)

var (
	agentsLimit          int
	agentCreatePersona   string
	agentCreateDesc      string
	agentCreateMode      string
	agentCreateAbilities []string
	agentCreatePrompt    string
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List and manage agents",
}

var agentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API-enabled agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		agents, err := client.ListAgents(cmd.Context(), agentsLimit)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		for _, a := range agents {
			bold.Println(a.Name)
			if a.Description != "" {
				fmt.Printf("  %s\n", a.Description)
			}
			if len(a.Abilities) > 0 {
				fmt.Printf("  abilities: %s\n", strings.Join(a.Abilities, ", "))
			}
		}
		fmt.Printf("\n%d agent(s)\n", len(agents))
		return nil
	},
}

var agentsGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show an agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		agent, err := client.GetAgent(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		color.New(color.Bold).Println(agent.Name)
		if agent.DisplayName != "" {
			fmt.Printf("  displayName: %s\n", agent.DisplayName)
		}
		if agent.Description != "" {
			fmt.Printf("  description: %s\n", agent.Description)
		}
		if len(agent.Abilities) > 0 {
			fmt.Printf("  abilities:   %s\n", strings.Join(agent.Abilities, ", "))
		}
		fmt.Printf("  apiEnabled:  %v\n", agent.APIEnabled)
		return nil
	},
}

var agentsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a dynamic agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if agentCreatePersona == "" {
			return fmt.Errorf("--persona is required")
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		agent, err := client.CreateAgent(cmd.Context(), types.CreateAgentRequest{
			Name:        args[0],
			Description: agentCreateDesc,
			Persona:     agentCreatePersona,
			Mode:        agentCreateMode,
			Abilities:   agentCreateAbilities,
			Prompt:      agentCreatePrompt,
			APIEnabled:  true,
		})
		if err != nil {
			return err
		}

		color.Green("Created agent %s", agent.Name)
		return nil
	},
}

func init() {
	agentsListCmd.Flags().IntVar(&agentsLimit, "limit", 0, "Maximum number of agents to list (0 = all)")

	agentsCreateCmd.Flags().StringVar(&agentCreatePersona, "persona", "", "Persona name (required)")
	agentsCreateCmd.Flags().StringVar(&agentCreateDesc, "description", "", "Agent description")
	agentsCreateCmd.Flags().StringVar(&agentCreateMode, "mode", "chat", "Agent mode (chat|agent|both)")
	agentsCreateCmd.Flags().StringArrayVar(&agentCreateAbilities, "ability", nil, "Ability name(s) to attach")
	agentsCreateCmd.Flags().StringVar(&agentCreatePrompt, "prompt", "", "Default prompt")

	agentsCmd.AddCommand(agentsListCmd)
	agentsCmd.AddCommand(agentsGetCmd)
	agentsCmd.AddCommand(agentsCreateCmd)
}
