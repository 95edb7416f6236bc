package mcp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/kube"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/pegaprox"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/config"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/logging"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/cluster"
	kubernetesToolset "github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/kubernetes"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/monitor"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/storage"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/vm"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/version"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const authorizationKey contextKey = "Authorization"

// Configuration wraps the static configuration with additional runtime components
type Configuration struct {
	*config.StaticConfig
}

// Server represents the MCP server
type Server struct {
	configuration  *Configuration
	server         *server.MCPServer
	enabledTools   []string
	combinedClient *toolset.CombinedClient
}

// NewServer creates a new MCP server with the given configuration
func NewServer(configuration Configuration) (*Server, error) {
	// Note: Logging is initialized in root.go before calling NewServer
	// to properly handle stdio vs HTTP/SSE mode

	var serverOptions []server.ServerOption

	serverOptions = append(serverOptions,
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	// Initialize the PegaProx client. Tool handlers report a configuration
	// error at call time if the endpoint is absent.
	var pegaproxClient *pegaprox.Client
	if configuration.HasPegaProxConfig() {
		pegaproxClient = pegaprox.NewClient(configuration.PegaProxBaseURL, configuration.PegaProxAPIToken)
		logging.Info("PegaProx client initialized for %s", configuration.PegaProxBaseURL)
	} else {
		logging.Warn("No PegaProx endpoint configured")
		logging.Warn("PegaProx tools will not be available")
	}

	// The resolver falls back to the standard kubeconfig loading rules
	// (KUBECONFIG, ~/.kube/config) when no explicit path is given.
	kubeResolver := kube.NewResolver(configuration.Kubeconfig)

	s := &Server{
		configuration: &configuration,
		server:        server.NewMCPServer(version.BinaryName, version.Version, serverOptions...),
		combinedClient: &toolset.CombinedClient{
			PegaProx: pegaproxClient,
			Kube:     kubeResolver,
		},
	}

	// Register tools
	if err := s.registerTools(); err != nil {
		return nil, err
	}

	return s, nil
}

// registerTools registers all available tools based on configuration
func (s *Server) registerTools() error {
	availableToolsets := map[string]toolset.Toolset{
		"cluster":    &cluster.Toolset{},
		"vm":         &vm.Toolset{},
		"storage":    &storage.Toolset{},
		"monitor":    &monitor.Toolset{},
		"kubernetes": &kubernetesToolset.Toolset{},
	}

	// Determine which toolsets to enable
	enabledToolsets := make([]toolset.Toolset, 0)
	if len(s.configuration.Toolsets) > 0 {
		for _, toolsetName := range s.configuration.Toolsets {
			if ts, exists := availableToolsets[toolsetName]; exists {
				enabledToolsets = append(enabledToolsets, ts)
			}
		}
	} else {
		for _, ts := range availableToolsets {
			enabledToolsets = append(enabledToolsets, ts)
		}
	}

	// Register tools from each enabled toolset
	for _, ts := range enabledToolsets {
		for _, tool := range ts.GetTools() {
			if !s.shouldEnableTool(tool) {
				continue
			}
			if err := s.registerTool(tool); err != nil {
				return fmt.Errorf("failed to register tool %s: %w", tool.Tool.Name, err)
			}
		}
	}

	logging.Info("MCP server initialized with %d tools", len(s.enabledTools))
	return nil
}

// shouldEnableTool determines if a tool should be enabled based on configuration
func (s *Server) shouldEnableTool(tool toolset.ServerTool) bool {
	// Security filters take precedence over any explicit enable list.
	if s.configuration.ReadOnly {
		if tool.Annotations.ReadOnlyHint == nil || !*tool.Annotations.ReadOnlyHint {
			return false
		}
	}
	if s.configuration.DisableDestructive {
		if tool.Annotations.DestructiveHint != nil && *tool.Annotations.DestructiveHint {
			return false
		}
	}

	for _, disabledTool := range s.configuration.DisabledTools {
		if disabledTool == tool.Tool.Name {
			return false
		}
	}

	if len(s.configuration.EnabledTools) > 0 {
		for _, enabledTool := range s.configuration.EnabledTools {
			if enabledTool == tool.Tool.Name {
				return true
			}
		}
		return false
	}

	return true
}

func contextFunc(ctx context.Context, r *http.Request) context.Context {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		return context.WithValue(ctx, authorizationKey, authHeader)
	}
	return ctx
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(tool toolset.ServerTool) error {
	toolHandler := server.ToolHandlerFunc(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logging.Debug("Tool %s called with params: %v", tool.Tool.Name, request.Params.Arguments)

		// Convert arguments to the format expected by our tool handlers
		params := make(map[string]interface{})
		if arguments, ok := request.Params.Arguments.(map[string]interface{}); ok {
			for key, value := range arguments {
				params[key] = value
			}
		}

		result, err := tool.Handler(ctx, s.combinedClient, params)
		return NewTextResult(result, err), nil
	})

	s.server.AddTool(tool.Tool, toolHandler)
	s.enabledTools = append(s.enabledTools, tool.Tool.Name)

	logging.Debug("Registered tool: %s", tool.Tool.Name)
	return nil
}

// ServeStdio starts the MCP server in stdio mode
func (s *Server) ServeStdio() error {
	logging.Info("Starting MCP server in stdio mode")
	return server.ServeStdio(s.server)
}

// ServeSse starts the MCP server in SSE mode
func (s *Server) ServeSse(baseURL string, httpServer *http.Server) *server.SSEServer {
	logging.Info("Starting MCP server in SSE mode")

	options := make([]server.SSEOption, 0)
	options = append(options, server.WithHTTPServer(httpServer), server.WithSSEContextFunc(contextFunc))

	if baseURL != "" {
		options = append(options, server.WithBaseURL(baseURL))
	}

	return server.NewSSEServer(s.server, options...)
}

// ServeHTTP starts the MCP server in streamable HTTP mode
func (s *Server) ServeHTTP(httpServer *http.Server) *server.StreamableHTTPServer {
	logging.Info("Starting MCP server in HTTP mode")

	options := []server.StreamableHTTPOption{
		server.WithHTTPContextFunc(contextFunc),
		server.WithStreamableHTTPServer(httpServer),
		server.WithStateLess(true),
	}

	return server.NewStreamableHTTPServer(s.server, options...)
}

// GetEnabledTools returns the list of enabled tools
func (s *Server) GetEnabledTools() []string {
	return s.enabledTools
}

// IsHealthy returns true if the server and its clients are properly initialized
func (s *Server) IsHealthy() bool {
	if s.configuration.HasPegaProxConfig() && s.combinedClient.PegaProx == nil {
		return false
	}
	return true
}

// Close cleans up the server resources
func (s *Server) Close() {
	logging.Info("Closing MCP server")
	// Nothing to clean up for now
}

// NewTextResult creates a standardized text result for tool responses
func NewTextResult(content string, err error) *mcp.CallToolResult {
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: err.Error(),
				},
			},
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: content,
			},
		},
	}
}
