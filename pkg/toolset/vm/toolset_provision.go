package vm

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

var nodeNameProperty = map[string]any{
	"type":        "string",
	"description": "Node name (e.g. 'pve1')",
}

// provisioningTools returns the QEMU/LXC provisioning and image listing tools.
func (t *Toolset) provisioningTools() []toolset.ServerTool {
	return []toolset.ServerTool{
		{
			Tool: mcp.Tool{
				Name:        "create_vm",
				Description: "Create a new QEMU virtual machine on a node with a virtio SCSI disk and a virtio network interface.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "node_name", "vmid", "name"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"node_name":    nodeNameProperty,
						"vmid": map[string]any{
							"type":        "integer",
							"description": "VM ID, must be unique in the cluster",
						},
						"name": map[string]any{
							"type":        "string",
							"description": "VM name",
						},
						"memory_mb": map[string]any{
							"type":        "integer",
							"description": "RAM in megabytes",
							"default":     2048,
						},
						"cores": map[string]any{
							"type":        "integer",
							"description": "CPU cores per socket",
							"default":     2,
						},
						"sockets": map[string]any{
							"type":        "integer",
							"description": "CPU sockets",
							"default":     1,
						},
						"disk_size_gb": map[string]any{
							"type":        "integer",
							"description": "Primary disk size in GB",
							"default":     32,
						},
						"storage": map[string]any{
							"type":        "string",
							"description": "Storage pool for the disk",
							"default":     "local-lvm",
						},
						"iso": map[string]any{
							"type":        "string",
							"description": "Optional ISO path to mount as CDROM (e.g. 'local:iso/ubuntu-24.04.iso')",
							"default":     "",
						},
						"os_type": map[string]any{
							"type":        "string",
							"description": "OS type hint, 'l26' for Linux, 'win11' for Windows, etc",
							"default":     "l26",
						},
						"net_bridge": map[string]any{
							"type":        "string",
							"description": "Network bridge to attach to",
							"default":     "vmbr0",
						},
						"start_on_create": map[string]any{
							"type":        "boolean",
							"description": "Start the VM immediately after creation",
							"default":     false,
						},
					},
				},
			},
			Handler: createVMHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "create_container",
				Description: "Create a new LXC container from a template.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "node_name", "vmid", "name", "template"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"node_name":    nodeNameProperty,
						"vmid": map[string]any{
							"type":        "integer",
							"description": "Container ID, must be unique in the cluster",
						},
						"name": map[string]any{
							"type":        "string",
							"description": "Container hostname",
						},
						"template": map[string]any{
							"type":        "string",
							"description": "Container template (e.g. 'local:vztmpl/ubuntu-24.04-standard_24.04-2_amd64.tar.zst')",
						},
						"memory_mb": map[string]any{
							"type":        "integer",
							"description": "RAM in megabytes",
							"default":     512,
						},
						"swap_mb": map[string]any{
							"type":        "integer",
							"description": "Swap in megabytes",
							"default":     512,
						},
						"cores": map[string]any{
							"type":        "integer",
							"description": "CPU cores",
							"default":     1,
						},
						"disk_size_gb": map[string]any{
							"type":        "integer",
							"description": "Root disk size in GB",
							"default":     8,
						},
						"storage": map[string]any{
							"type":        "string",
							"description": "Storage pool for the disk",
							"default":     "local-lvm",
						},
						"net_bridge": map[string]any{
							"type":        "string",
							"description": "Network bridge to attach to",
							"default":     "vmbr0",
						},
						"ip_config": map[string]any{
							"type":        "string",
							"description": "IP config string, 'dhcp' or 'ip=192.168.1.100/24,gw=192.168.1.1'",
							"default":     "dhcp",
						},
						"password": map[string]any{
							"type":        "string",
							"description": "Root password for the container",
							"default":     "",
						},
						"ssh_public_key": map[string]any{
							"type":        "string",
							"description": "Optional SSH public key to inject",
							"default":     "",
						},
						"start_on_create": map[string]any{
							"type":        "boolean",
							"description": "Start the container after creation",
							"default":     false,
						},
						"unprivileged": map[string]any{
							"type":        "boolean",
							"description": "Run as unprivileged container (recommended)",
							"default":     true,
						},
					},
				},
			},
			Handler: createContainerHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_available_templates",
				Description: "List VM and container templates available for deployment in a cluster.",
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
			Handler: listAvailableTemplatesHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_isos",
				Description: "List ISO images available on a node for VM installation.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "node_name"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"node_name":    nodeNameProperty,
						"format":       formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listISOsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_node_templates",
				Description: "List container templates available on a node.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "node_name"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"node_name":    nodeNameProperty,
						"format":       formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listNodeTemplatesHandler,
		},
	}
}

// snapshotTools returns the VM snapshot management tools.
func (t *Toolset) snapshotTools() []toolset.ServerTool {
	return []toolset.ServerTool{
		{
			Tool: mcp.Tool{
				Name:        "list_snapshots",
				Description: "List all snapshots for a specific VM: name, creation time, description, and whether RAM state is included.",
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
			Handler: listSnapshotsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_all_snapshots",
				Description: "List all snapshots across every VM in a cluster, useful for identifying old or unused snapshots.",
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
			Handler: listAllSnapshotsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "create_snapshot",
				Description: "Create a snapshot of a VM, optionally including RAM state.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "vmid", "snapshot_name"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"vmid":         vmidProperty,
						"snapshot_name": map[string]any{
							"type":        "string",
							"description": "Name for the snapshot (alphanumeric and hyphens only)",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "Optional human-readable description",
							"default":     "",
						},
						"include_ram": map[string]any{
							"type":        "boolean",
							"description": "Include RAM state in the snapshot (requires more time and storage)",
							"default":     false,
						},
					},
				},
			},
			Handler: createSnapshotHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "rollback_snapshot",
				Description: "Roll back a VM to a previously created snapshot. IMPORTANT: all changes made after the snapshot was taken are permanently lost.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "vmid", "snapshot_name"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"vmid":         vmidProperty,
						"snapshot_name": map[string]any{
							"type":        "string",
							"description": "Name of the snapshot to roll back to",
						},
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				DestructiveHint: paramutil.BoolPtr(true),
			},
			Handler: rollbackSnapshotHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "delete_snapshot",
				Description: "Delete a snapshot from a VM. IMPORTANT: snapshot deletion is irreversible.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "vmid", "snapshot_name"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"vmid":         vmidProperty,
						"snapshot_name": map[string]any{
							"type":        "string",
							"description": "Name of the snapshot to delete",
						},
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				DestructiveHint: paramutil.BoolPtr(true),
			},
			Handler: deleteSnapshotHandler,
		},
	}
}
