package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/documents/filesystem"
	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driving/httpapi"
	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driving/mcp"
	"github.com/lillianfidler/churchill-falls-assistant/internal/config"
	"github.com/lillianfidler/churchill-falls-assistant/internal/logger"
)

var (
	servePort    int
	serveMCPPort int
	serveNoMCP   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Loads the documents and serves the chat API:

  POST /api/chat            answer a question (text or voice)
  POST /api/voice-chat      legacy voice endpoint
  GET  /api/voice-status    monthly voice budget
  GET  /api/health          load summary
  GET  /api/documents       loaded documents
  GET  /metrics             Prometheus metrics

The MCP document tools are served over HTTP on server.mcp_port as well,
unless --no-mcp is given or the port is 0.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (default from config, 3001)")
	serveCmd.Flags().IntVar(&serveMCPPort, "mcp-port", 0, "MCP HTTP port (default from config, 3002)")
	serveCmd.Flags().BoolVar(&serveNoMCP, "no-mcp", false, "do not serve the MCP endpoint")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd.Context(), withChat)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.cfg
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	if serveMCPPort > 0 {
		cfg.Server.MCPPort = serveMCPPort
	}

	api, err := httpapi.NewServer(&httpapi.Ports{
		Chat:      a.chat,
		Voice:     a.voice,
		Documents: a.documents,
		Search:    a.search,
	}, httpapi.Config{
		Port:              cfg.Server.Port,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		RateLimitRPS:      cfg.Server.RateLimitRPS,
		RateLimitBurst:    cfg.Server.RateLimitBurst,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		VoiceID:           cfg.Voice.VoiceID,
		Model:             cfg.LLM.Model,
		Version:           version,
	})
	if err != nil {
		return err
	}

	printBanner(cmd, a)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return api.Run(ctx)
	})

	if !serveNoMCP && cfg.Server.MCPPort > 0 {
		tools, err := mcp.NewServer(&mcp.Ports{Tools: a.tools})
		if err != nil {
			return err
		}
		g.Go(func() error {
			return tools.RunHTTP(ctx, fmt.Sprintf(":%d", cfg.Server.MCPPort))
		})
	}

	if cfg.Documents.Watch {
		g.Go(func() error {
			return watchDocuments(ctx, cfg.Documents)
		})
	}

	return g.Wait()
}

// watchDocuments logs changes to catalog files. Loaded content is never
// replaced; a restart picks the change up.
func watchDocuments(ctx context.Context, docs config.DocumentsConfig) error {
	w := filesystem.NewWatcher(docs.Dir, docs.Catalog().Names())
	changes, err := w.Watch(ctx)
	if err != nil {
		logger.Warn("Document watcher disabled: %v", err)
		return nil
	}
	defer w.Close()

	for change := range changes {
		logger.Warn("Document %s was %s on disk; restart to reload", change.Name, change.Kind)
	}
	return nil
}

func printBanner(cmd *cobra.Command, a *app) {
	report := a.documents.Report()
	cmd.Println("============================================================")
	cmd.Println("Churchill Falls Assistant")
	cmd.Printf("Server running on port %d\n", a.cfg.Server.Port)
	cmd.Printf("Documents: %d loaded (%s), %d resident (%s)\n",
		report.LoadedCount, formatSize(report.TotalBytes),
		report.ResidentCount, formatSize(report.ResidentBytes))
	if failed := report.Failed(); len(failed) > 0 {
		cmd.Printf("Missing: %d documents (see log)\n", len(failed))
	}
	if a.voice.Available() {
		cmd.Println("Voice API: configured")
	} else {
		cmd.Println("Voice API: not configured")
	}
	cmd.Println("============================================================")
}
