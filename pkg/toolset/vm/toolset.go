// Package vm provides MCP tools for virtual machine lifecycle, provisioning,
// and snapshot operations via the PegaProx API.
package vm

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// Toolset implements the vm toolset backed by the PegaProx API
type Toolset struct{}

var _ toolset.Toolset = (*Toolset)(nil)

var clusterNameProperty = map[string]any{
	"type":        "string",
	"description": "Cluster name (use list_clusters to discover available clusters)",
}

var vmidProperty = map[string]any{
	"type":        "integer",
	"description": "Numeric VM ID",
}

var formatProperty = map[string]any{
	"type":        "string",
	"description": "Output format: json or yaml",
	"enum":        []string{"json", "yaml"},
	"default":     "json",
}

// GetName returns the name of the toolset
func (t *Toolset) GetName() string {
	return "vm"
}

// GetDescription returns the description of the toolset
func (t *Toolset) GetDescription() string {
	return "Virtual machine lifecycle, provisioning, and snapshot operations"
}

// GetTools returns the tools provided by this toolset
func (t *Toolset) GetTools() []toolset.ServerTool {
	tools := []toolset.ServerTool{
		{
			Tool: mcp.Tool{
				Name:        "list_vms",
				Description: "List virtual machines in a cluster, optionally filtered by node. Returns each VM's VMID, name, status, CPU/memory allocation, and node.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"node_name": map[string]any{
							"type":        "string",
							"description": "If provided, only return VMs on this specific node",
							"default":     "",
						},
						"format": formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listVMsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_vm_config",
				Description: "Get the full configuration for a specific VM: CPU, memory, disks, network interfaces, and current runtime status.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "vmid"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"vmid":         vmidProperty,
						"format":       formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: getVMConfigHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "vm_action",
				Description: "Perform a power/lifecycle action on a VM. Confirm with the user before stopping, rebooting, or resetting a running VM to avoid data loss.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "vmid", "action"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"vmid":         vmidProperty,
						"action": map[string]any{
							"type":        "string",
							"description": "Lifecycle action to perform",
							"enum":        []string{"start", "stop", "shutdown", "reboot", "suspend", "resume", "reset"},
						},
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				DestructiveHint: paramutil.BoolPtr(true),
			},
			Handler: vmActionHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "migrate_vm",
				Description: "Migrate a VM to a different node within the same cluster. Online migration by default, offline migration requires the VM to be stopped.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "vmid", "target_node"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"vmid":         vmidProperty,
						"target_node": map[string]any{
							"type":        "string",
							"description": "Destination node name",
						},
						"online": map[string]any{
							"type":        "boolean",
							"description": "Perform a live migration",
							"default":     true,
						},
					},
				},
			},
			Handler: migrateVMHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "clone_vm",
				Description: "Clone a VM or template into a new VM. Full clones are independent copies, linked clones require a template source.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "vmid", "new_vmid"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"vmid": map[string]any{
							"type":        "integer",
							"description": "Source VM ID to clone from",
						},
						"new_vmid": map[string]any{
							"type":        "integer",
							"description": "VMID to assign to the new VM",
						},
						"name": map[string]any{
							"type":        "string",
							"description": "Optional name for the new VM",
							"default":     "",
						},
						"target_node": map[string]any{
							"type":        "string",
							"description": "Node to place the clone on, defaults to the source VM's node",
							"default":     "",
						},
						"full_clone": map[string]any{
							"type":        "boolean",
							"description": "Create an independent full clone instead of a linked clone",
							"default":     true,
						},
					},
				},
			},
			Handler: cloneVMHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "delete_vm",
				Description: "Permanently delete a VM and optionally purge its disk images. IMPORTANT: this is irreversible, always confirm with the user first.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "vmid"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"vmid":         vmidProperty,
						"purge": map[string]any{
							"type":        "boolean",
							"description": "Also delete associated disk images from storage",
							"default":     false,
						},
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				DestructiveHint: paramutil.BoolPtr(true),
			},
			Handler: deleteVMHandler,
		},
	}
	tools = append(tools, t.provisioningTools()...)
	tools = append(tools, t.snapshotTools()...)
	return tools
}
