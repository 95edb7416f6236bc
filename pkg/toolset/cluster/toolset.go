// Package cluster provides MCP tools for PegaProx cluster and node operations.
package cluster

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// Toolset implements the cluster toolset backed by the PegaProx API
type Toolset struct{}

var _ toolset.Toolset = (*Toolset)(nil)

// formatProperty is the shared schema for the format parameter.
var formatProperty = map[string]any{
	"type":        "string",
	"description": "Output format: json or yaml",
	"enum":        []string{"json", "yaml"},
	"default":     "json",
}

// clusterNameProperty is the shared schema for the cluster_name parameter.
var clusterNameProperty = map[string]any{
	"type":        "string",
	"description": "Cluster name (use list_clusters to discover available clusters)",
}

// GetName returns the name of the toolset
func (t *Toolset) GetName() string {
	return "cluster"
}

// GetDescription returns the description of the toolset
func (t *Toolset) GetDescription() string {
	return "Proxmox cluster and node operations via the PegaProx API"
}

// GetTools returns the tools provided by this toolset
func (t *Toolset) GetTools() []toolset.ServerTool {
	return []toolset.ServerTool{
		{
			Tool: mcp.Tool{
				Name:        "list_clusters",
				Description: "List all Proxmox clusters managed by PegaProx. Returns each cluster's name, status (online/offline), node count, and basic resource summary.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"format": formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listClustersHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_global_summary",
				Description: "Get a global resource summary across all clusters: aggregated CPU, memory, storage, and VM counts.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"format": formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: getGlobalSummaryHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_cluster_metrics",
				Description: "Get detailed metrics for a specific cluster: CPU, memory, storage usage over time, and current node/VM statistics.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"format":       formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: getClusterMetricsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_nodes",
				Description: "List all nodes in a Proxmox cluster. Returns each node's name, online status, CPU/memory usage, and uptime.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"format":       formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listNodesHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_node_summary",
				Description: "Get a detailed summary for a specific node: CPU, memory, storage, network stats, and running VM list.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "node_name"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"node_name": map[string]any{
							"type":        "string",
							"description": "Node name (e.g. 'pve1')",
						},
						"format": formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: getNodeSummaryHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "node_action",
				Description: "Perform a power action on a Proxmox node. IMPORTANT: this is destructive, stopping or rebooting a node affects all VMs running on it.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "node_name", "action"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"node_name": map[string]any{
							"type":        "string",
							"description": "Node name (e.g. 'pve1')",
						},
						"action": map[string]any{
							"type":        "string",
							"description": "Power action to perform",
							"enum":        []string{"start", "stop", "reboot"},
						},
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				DestructiveHint: paramutil.BoolPtr(true),
			},
			Handler: nodeActionHandler,
		},
	}
}
