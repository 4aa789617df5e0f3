package cli

import (
	liftmcp "github.com/claude/liftcalc/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *options, version string) *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:     "mcp",
		Short:   "Serve the calculators as MCP tools over stdio",
		GroupID: "tooling",
		Long: `Serve the calculators as MCP tools over stdio for AI assistants.

With --remote the lift log tools are added, backed by the REST API of a
liftcalc server (for example over Tailscale).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ds liftmcp.DataSource
			if remote != "" {
				ds = liftmcp.NewHTTPClient(remote)
				opts.log.Info("mcp remote lift log", "url", remote)
			}
			return server.ServeStdio(liftmcp.New(ds, version, opts.log))
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "liftcalc server URL for the lift log tools")
	return cmd
}
