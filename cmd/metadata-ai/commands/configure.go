package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write a .env file with connection settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		fmt.Print("Server URL: ")
		host, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		host = strings.TrimSpace(host)
		if host == "" {
			return fmt.Errorf("server URL is required")
		}

		fmt.Print("Bot token: ")
		token, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return fmt.Errorf("token is required")
		}

		if _, err := os.Stat(".env"); err == nil {
			fmt.Print(".env already exists, overwrite? [y/N] ")
			answer, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				return nil
			}
		}

		content := fmt.Sprintf("METADATA_AI_HOST=%s\nMETADATA_AI_TOKEN=%s\n", host, token)
		if err := os.WriteFile(".env", []byte(content), 0o600); err != nil {
			return fmt.Errorf("write .env: %w", err)
		}

		color.Green("Wrote .env")
		return nil
	},
}
