package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var toolsCallArgs string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List and call the server's MCP tools",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List MCP tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		tools, err := client.MCP().ListTools(cmd.Context())
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		for _, t := range tools {
			bold.Println(t.Name)
			if t.Description != "" {
				fmt.Printf("  %s\n", t.Description)
			}
			for _, p := range t.Parameters {
				req := ""
				if p.Required {
					req = " (required)"
				}
				fmt.Printf("  - %s: %s%s\n", p.Name, p.Type, req)
			}
		}
		return nil
	},
}

var toolsCallCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Call an MCP tool",
	Long: `Call an MCP tool with JSON arguments.

Example:
  metadata-ai tools call search_metadata --args '{"query": "customers"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var toolArgs map[string]any
		if toolsCallArgs != "" {
			if err := json.Unmarshal([]byte(toolsCallArgs), &toolArgs); err != nil {
				return fmt.Errorf("invalid --args: %w", err)
			}
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		result, err := client.MCP().CallTool(cmd.Context(), args[0], toolArgs)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result.Data, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	toolsCallCmd.Flags().StringVar(&toolsCallArgs, "args", "", "Tool arguments as a JSON object")

	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsCallCmd)
}
