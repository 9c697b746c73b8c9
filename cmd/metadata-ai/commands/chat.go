package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/metadata-ai/metadata-ai-go/pkg/types"
)

var chatStream bool

var chatCmd = &cobra.Command{
	Use:   "chat <agent>",
	Short: "Hold a multi-turn chat with an agent",
	Long: `Hold a multi-turn chat with an agent. The conversation id is carried
across turns so the agent keeps context. Type /reset to start over,
/tools to see which tools the agent used, or /quit to leave.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		conv := client.Agent(args[0]).Conversation()

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		bold.Printf("Chatting with %s. /quit to exit.\n\n", args[0])

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())

			switch line {
			case "":
				continue
			case "/quit", "/exit":
				return nil
			case "/reset":
				conv.Reset()
				faint.Println("conversation reset")
				continue
			case "/tools":
				tools := conv.ToolsUsed()
				if len(tools) == 0 {
					faint.Println("no tools used yet")
				} else {
					faint.Println(strings.Join(tools, ", "))
				}
				continue
			}

			if chatStream {
				stream, err := conv.Stream(cmd.Context(), line)
				if err != nil {
					color.Red("error: %v", err)
					continue
				}
				for stream.Next() {
					ev := stream.Event()
					switch ev.Type {
					case types.EventContent:
						fmt.Print(ev.Content)
					case types.EventToolUse:
						faint.Printf("[tool: %s]\n", ev.ToolName)
					case types.EventError:
						color.Red("\nstream error: %s", ev.Err)
					}
				}
				if err := stream.Err(); err != nil {
					color.Red("error: %v", err)
				}
				stream.Close()
				fmt.Println()
				continue
			}

			resp, err := conv.Send(cmd.Context(), line)
			if err != nil {
				color.Red("error: %v", err)
				continue
			}
			fmt.Println(resp.Response)
		}
	},
}

func init() {
	chatCmd.Flags().BoolVar(&chatStream, "stream", false, "Stream responses as they are produced")
}
