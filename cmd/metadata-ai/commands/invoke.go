package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	metadataai "github.com/metadata-ai/metadata-ai-go"
	"github.com/metadata-ai/metadata-ai-go/pkg/types"
)

var (
	invokeStream       bool
	invokeConversation string
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <agent> [message...]",
	Short: "Invoke an agent with a message",
	Long: `Invoke an agent with a message and print the response.

Examples:
  metadata-ai invoke DataQualityPlannerAgent "Analyze the customers table"
  metadata-ai invoke DataQualityPlannerAgent --stream "Analyze the customers table"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		agent := client.Agent(args[0])
		message := strings.Join(args[1:], " ")

		var opts []metadataai.InvokeOption
		if invokeConversation != "" {
			opts = append(opts, metadataai.WithConversationID(invokeConversation))
		}

		if invokeStream {
			return streamResponse(cmd, agent, message, opts)
		}

		resp, err := agent.Call(cmd.Context(), message, opts...)
		if err != nil {
			return err
		}
		fmt.Println(resp.Response)
		if len(resp.ToolsUsed) > 0 {
			color.New(color.Faint).Printf("\ntools used: %s\n", strings.Join(resp.ToolsUsed, ", "))
		}
		if resp.ConversationID != "" {
			color.New(color.Faint).Printf("conversation: %s\n", resp.ConversationID)
		}
		return nil
	},
}

func streamResponse(cmd *cobra.Command, agent *metadataai.AgentHandle, message string, opts []metadataai.InvokeOption) error {
	stream, err := agent.Stream(cmd.Context(), message, opts...)
	if err != nil {
		return err
	}
	defer stream.Close()

	faint := color.New(color.Faint)
	var conversationID string
	for stream.Next() {
		ev := stream.Event()
		if ev.ConversationID != "" {
			conversationID = ev.ConversationID
		}
		switch ev.Type {
		case types.EventContent:
			fmt.Print(ev.Content)
		case types.EventToolUse:
			faint.Printf("[tool: %s]\n", ev.ToolName)
		case types.EventError:
			return fmt.Errorf("stream error: %s", ev.Err)
		}
	}
	if err := stream.Err(); err != nil {
		return err
	}

	fmt.Println()
	if conversationID != "" {
		faint.Printf("conversation: %s\n", conversationID)
	}
	return nil
}

func init() {
	invokeCmd.Flags().BoolVar(&invokeStream, "stream", false, "Stream the response as it is produced")
	invokeCmd.Flags().StringVarP(&invokeConversation, "conversation", "c", "", "Conversation ID to continue")
}
