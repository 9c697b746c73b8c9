package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var botsLimit int

var botsCmd = &cobra.Command{
	Use:   "bots",
	Short: "List and inspect bots",
}

var botsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bots",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		bots, err := client.ListBots(cmd.Context(), botsLimit)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		for _, b := range bots {
			bold.Println(b.Name)
			if b.Description != "" {
				fmt.Printf("  %s\n", b.Description)
			}
		}
		fmt.Printf("\n%d bot(s)\n", len(bots))
		return nil
	},
}

var botsGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a bot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		bot, err := client.GetBot(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		color.New(color.Bold).Println(bot.Name)
		fmt.Printf("  id:          %s\n", bot.ID)
		if bot.DisplayName != "" {
			fmt.Printf("  displayName: %s\n", bot.DisplayName)
		}
		if bot.Description != "" {
			fmt.Printf("  description: %s\n", bot.Description)
		}
		if bot.BotUser != nil {
			fmt.Printf("  botUser:     %s\n", bot.BotUser.Name)
		}
		return nil
	},
}

func init() {
	botsListCmd.Flags().IntVar(&botsLimit, "limit", 0, "Maximum number of bots to list (0 = all)")

	botsCmd.AddCommand(botsListCmd)
	botsCmd.AddCommand(botsGetCmd)
}
