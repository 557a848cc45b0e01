package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd builds the flowgate command tree.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "flowgate",
		Short:        "Flowgate - synchronous invocation bridge for trigger-driven workflows",
		Long:         "Flowgate turns asynchronous, trigger-driven workflows into synchronous request/response calls over HTTP and MCP.",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(WorkflowCmd())
	return rootCmd
}
