// Package commands provides the CLI commands for the metadata-ai tool.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	metadataai "github.com/metadata-ai/metadata-ai-go"
	"github.com/metadata-ai/metadata-ai-go/internal/logging"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	logLevel string
	debug    bool
)

var rootCmd = &cobra.Command{
	Use:   "metadata-ai",
	Short: "metadata-ai - invoke AI agents from the command line",
	Long: `metadata-ai talks to a metadata server's AI agents: discover agents,
bots, personas, and abilities, invoke agents with a single message, or
hold a multi-turn chat.

Configuration comes from METADATA_AI_* environment variables or a .env
file; run 'metadata-ai configure' to create one.`,
	Version: Version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Shorthand for --log-level DEBUG")

	rootCmd.SetVersionTemplate(fmt.Sprintf("metadata-ai %s (%s)\n", Version, BuildTime))

	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(botsCmd)
	rootCmd.AddCommand(personasCmd)
	rootCmd.AddCommand(abilitiesCmd)
	rootCmd.AddCommand(invokeCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configureCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newClient builds a client from the environment, applying the global
// logging flags on top. CLI logging uses the pretty console writer.
func newClient() (*metadataai.Client, error) {
	cfg, err := metadataai.FromEnv()
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.LogLevel = "DEBUG"
	} else if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	opts := []metadataai.Option{
		metadataai.WithTimeout(cfg.Timeout),
		metadataai.WithMaxRetries(cfg.MaxRetries),
		metadataai.WithRetryDelay(cfg.RetryDelay),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, metadataai.WithUserAgent(cfg.UserAgent))
	}
	if !cfg.VerifySSL {
		opts = append(opts, metadataai.WithInsecureSkipVerify())
	}
	if cfg.LogLevel != "" {
		opts = append(opts, metadataai.WithLogger(logging.New(logging.Config{
			Level:  logging.ParseLevel(cfg.LogLevel),
			Pretty: true,
		})))
	}
	return metadataai.New(cfg.Host, cfg.Token, opts...)
}
