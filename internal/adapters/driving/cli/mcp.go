package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol commands",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the document tools to MCP clients",
	Long: `Exposes search_documents, get_document and list_documents, plus the
churchill://documents resources, to any MCP client. Only the documents are
loaded; no LLM key is needed.

Without --port the server speaks JSON-RPC on stdio, which is what desktop
assistants expect:

  {"mcpServers": {"churchill-falls": {"command": "churchill", "args": ["mcp", "serve"]}}}

With --port it serves the streamable HTTP transport instead. churchill serve
already runs this endpoint on server.mcp_port next to the chat API.`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd.Context(), withDocuments)
	if err != nil {
		return err
	}
	defer a.Close()

	server, err := mcp.NewServer(&mcp.Ports{Tools: a.tools})
	if err != nil {
		return err
	}

	if mcpPort <= 0 {
		return server.Run(cmd.Context())
	}

	// Stdout is free in HTTP mode.
	cmd.Printf("MCP endpoint: http://localhost:%d (%d documents)\n", mcpPort, len(a.tools.ListDocuments(cmd.Context())))
	return server.RunHTTP(cmd.Context(), fmt.Sprintf(":%d", mcpPort))
}
