// Package storage provides MCP tools for datastore, storage cluster, and
// backup operations via the PegaProx API.
package storage

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// Toolset implements the storage toolset backed by the PegaProx API
type Toolset struct{}

var _ toolset.Toolset = (*Toolset)(nil)

var clusterNameProperty = map[string]any{
	"type":        "string",
	"description": "Cluster name (use list_clusters to discover available clusters)",
}

var storageNameProperty = map[string]any{
	"type":        "string",
	"description": "Storage pool name (e.g. 'local', 'nfs-backups')",
}

var nodeNameProperty = map[string]any{
	"type":        "string",
	"description": "Node name the VM resides on",
}

var vmTypeProperty = map[string]any{
	"type":        "string",
	"description": "VM type, 'qemu' for VMs or 'lxc' for containers",
	"enum":        []string{"qemu", "lxc"},
}

var vmidProperty = map[string]any{
	"type":        "integer",
	"description": "Numeric VM/container ID",
}

var formatProperty = map[string]any{
	"type":        "string",
	"description": "Output format: json or yaml",
	"enum":        []string{"json", "yaml"},
	"default":     "json",
}

// GetName returns the name of the toolset
func (t *Toolset) GetName() string {
	return "storage"
}

// GetDescription returns the description of the toolset
func (t *Toolset) GetDescription() string {
	return "Datastore, storage cluster, and backup operations"
}

// GetTools returns the tools provided by this toolset
func (t *Toolset) GetTools() []toolset.ServerTool {
	return []toolset.ServerTool{
		{
			Tool: mcp.Tool{
				Name:        "list_datastores",
				Description: "List all storage pools/datastores in a cluster with usage stats.",
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
			Handler: listDatastoresHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_datastore_content",
				Description: "List contents of a storage pool (backups, ISOs, templates, disk images), optionally filtered by content type.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "storage_name"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"storage_name": storageNameProperty,
						"content_type": map[string]any{
							"type":        "string",
							"description": "Optional filter: 'backup', 'iso', 'vztmpl', 'images', or '' for all",
							"default":     "",
						},
						"format": formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listDatastoreContentHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "delete_datastore_content",
				Description: "Delete a file from a storage pool (ISO, template, backup, etc). WARNING: this is irreversible.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "storage_name", "volid"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"storage_name": storageNameProperty,
						"volid": map[string]any{
							"type":        "string",
							"description": "Volume ID to delete",
						},
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				DestructiveHint: paramutil.BoolPtr(true),
			},
			Handler: deleteDatastoreContentHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "download_iso",
				Description: "Download an ISO or container template from a URL into a storage pool.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "storage_name", "url", "filename"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"storage_name": storageNameProperty,
						"url": map[string]any{
							"type":        "string",
							"description": "Direct download URL for the ISO or template",
						},
						"filename": map[string]any{
							"type":        "string",
							"description": "Filename to save as (e.g. 'ubuntu-24.04.iso')",
						},
					},
				},
			},
			Handler: downloadISOHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_storage_clusters",
				Description: "List storage clusters (Ceph, ZFS, etc) and their status.",
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
			Handler: listStorageClustersHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_storage_cluster_status",
				Description: "Get detailed status and health of a storage cluster (e.g. Ceph health, OSD status).",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "storage_cluster_id"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"storage_cluster_id": map[string]any{
							"type":        "string",
							"description": "ID of the storage cluster",
						},
						"format": formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: getStorageClusterStatusHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_backups",
				Description: "List all backups for a specific VM or container.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "node_name", "vm_type", "vmid"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"node_name":    nodeNameProperty,
						"vm_type":      vmTypeProperty,
						"vmid":         vmidProperty,
						"format":       formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listBackupsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "create_backup",
				Description: "Create a backup of a VM or container. Snapshot mode runs without downtime.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "node_name", "vm_type", "vmid", "storage"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"node_name":    nodeNameProperty,
						"vm_type":      vmTypeProperty,
						"vmid":         vmidProperty,
						"storage": map[string]any{
							"type":        "string",
							"description": "Storage pool to save the backup to (e.g. 'local', 'nfs-backups')",
						},
						"mode": map[string]any{
							"type":        "string",
							"description": "Backup mode",
							"enum":        []string{"snapshot", "suspend", "stop"},
							"default":     "snapshot",
						},
						"compress": map[string]any{
							"type":        "string",
							"description": "Compression algorithm",
							"enum":        []string{"zstd", "lzo", "gzip", "none"},
							"default":     "zstd",
						},
						"notes": map[string]any{
							"type":        "string",
							"description": "Optional notes to attach to the backup",
							"default":     "",
						},
					},
				},
			},
			Handler: createBackupHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "restore_backup",
				Description: "Restore a VM or container from a backup. WARNING: this overwrites the current VM state.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "node_name", "vm_type", "vmid", "volid"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"node_name":    nodeNameProperty,
						"vm_type":      vmTypeProperty,
						"vmid":         vmidProperty,
						"volid": map[string]any{
							"type":        "string",
							"description": "Backup volume ID to restore from (e.g. 'local:backup/vzdump-qemu-100-...')",
						},
						"target_storage": map[string]any{
							"type":        "string",
							"description": "Optional storage pool to restore disks to, defaults to original",
							"default":     "",
						},
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				DestructiveHint: paramutil.BoolPtr(true),
			},
			Handler: restoreBackupHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "delete_backup",
				Description: "Delete a backup. WARNING: this is irreversible.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name", "node_name", "vm_type", "vmid", "volid"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"node_name":    nodeNameProperty,
						"vm_type":      vmTypeProperty,
						"vmid":         vmidProperty,
						"volid": map[string]any{
							"type":        "string",
							"description": "Backup volume ID to delete",
						},
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				DestructiveHint: paramutil.BoolPtr(true),
			},
			Handler: deleteBackupHandler,
		},
	}
}
