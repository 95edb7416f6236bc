package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/config"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/logging"
	httpserver "github.com/proxasaurus/proxasaurus-mcp-server/pkg/server/http"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/server/mcp"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/version"
)

// IOStreams represents standard input, output, and error streams
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// NewMCPServer creates the root cobra command for the Proxasaurus MCP Server
func NewMCPServer(streams IOStreams) *cobra.Command {
	flags := config.DefaultConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   version.BinaryName,
		Short: "Proxasaurus MCP Server - Model Context Protocol server for PegaProx and Kubernetes management",
		Long: `Proxasaurus MCP Server is a Model Context Protocol (MCP) server that exposes
PegaProx multi-cluster Proxmox management and Kubernetes operations as MCP tools.

The server runs in stdio mode for integration with MCP clients, or in HTTP mode
(streamable HTTP and SSE) when a port is configured.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags, configPath)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg, streams)
		},
	}

	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	cmd.Flags().IntVar(&flags.Port, "port", flags.Port, "Port to listen on for HTTP mode (0 for stdio mode)")
	cmd.Flags().StringVar(&flags.SSEBaseURL, "sse-base-url", flags.SSEBaseURL, "Base URL advertised to SSE clients")
	cmd.Flags().IntVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level (0-9)")
	cmd.Flags().StringVar(&flags.PegaProxBaseURL, "pegaprox-base-url", flags.PegaProxBaseURL, "PegaProx API base URL")
	cmd.Flags().StringVar(&flags.PegaProxAPIToken, "pegaprox-api-token", flags.PegaProxAPIToken, "PegaProx API bearer token")
	cmd.Flags().StringVar(&flags.Kubeconfig, "kubeconfig", flags.Kubeconfig, "Path to the kubeconfig file (defaults to standard loading rules)")
	cmd.Flags().BoolVar(&flags.ReadOnly, "read-only", flags.ReadOnly, "Expose only read-only tools")
	cmd.Flags().BoolVar(&flags.DisableDestructive, "disable-destructive", flags.DisableDestructive, "Disable destructive tools")
	cmd.Flags().StringSliceVar(&flags.Toolsets, "toolsets", flags.Toolsets, "Comma-separated list of toolsets to enable")
	cmd.Flags().StringSliceVar(&flags.EnabledTools, "enabled-tools", flags.EnabledTools, "Comma-separated list of tools to enable")
	cmd.Flags().StringSliceVar(&flags.DisabledTools, "disabled-tools", flags.DisabledTools, "Comma-separated list of tools to disable")

	cmd.AddCommand(newVersionCommand(streams))

	return cmd
}

// resolveConfig merges configuration sources: defaults, then the optional
// config file and environment, then any flag set on the command line.
func resolveConfig(cmd *cobra.Command, flags *config.StaticConfig, configPath string) (*config.StaticConfig, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = flags.Port
	}
	if cmd.Flags().Changed("sse-base-url") {
		cfg.SSEBaseURL = flags.SSEBaseURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if cmd.Flags().Changed("pegaprox-base-url") {
		cfg.PegaProxBaseURL = flags.PegaProxBaseURL
	}
	if cmd.Flags().Changed("pegaprox-api-token") {
		cfg.PegaProxAPIToken = flags.PegaProxAPIToken
	}
	if cmd.Flags().Changed("kubeconfig") {
		cfg.Kubeconfig = flags.Kubeconfig
	}
	if cmd.Flags().Changed("read-only") {
		cfg.ReadOnly = flags.ReadOnly
	}
	if cmd.Flags().Changed("disable-destructive") {
		cfg.DisableDestructive = flags.DisableDestructive
	}
	if cmd.Flags().Changed("toolsets") {
		cfg.Toolsets = flags.Toolsets
	}
	if cmd.Flags().Changed("enabled-tools") {
		cfg.EnabledTools = flags.EnabledTools
	}
	if cmd.Flags().Changed("disabled-tools") {
		cfg.DisabledTools = flags.DisabledTools
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %v", err)
	}
	return cfg, nil
}

// runServer runs the MCP server with the given configuration
func runServer(ctx context.Context, cfg *config.StaticConfig, streams IOStreams) error {
	// Logging goes to stderr in both modes; in stdio mode stdout carries the
	// MCP transport and must stay clean.
	logging.Initialize(cfg.LogLevel)

	server, err := mcp.NewServer(mcp.Configuration{StaticConfig: cfg})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %v", err)
	}
	defer server.Close()

	if cfg.Port == 0 {
		fmt.Fprintf(streams.ErrOut, "Starting %s in stdio mode\n", version.BinaryName)
		fmt.Fprintf(streams.ErrOut, "Enabled tools: %v\n", server.GetEnabledTools())
		return server.ServeStdio()
	}

	fmt.Fprintf(streams.ErrOut, "Starting %s in HTTP mode on port %d\n", version.BinaryName, cfg.Port)
	fmt.Fprintf(streams.ErrOut, "Enabled tools: %v\n", server.GetEnabledTools())
	return httpserver.Serve(ctx, server, cfg)
}

// newVersionCommand creates the version command
func newVersionCommand(streams IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(streams.Out, "%s\n", version.GetVersionInfo())
		},
	}

	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)

	return cmd
}
