// Package monitor provides MCP tools for alerts, scheduled tasks, and audit
// history via the PegaProx API.
package monitor

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// Toolset implements the monitor toolset backed by the PegaProx API
type Toolset struct{}

var _ toolset.Toolset = (*Toolset)(nil)

var clusterNameProperty = map[string]any{
	"type":        "string",
	"description": "Cluster name (use list_clusters to discover available clusters)",
}

var formatProperty = map[string]any{
	"type":        "string",
	"description": "Output format: json or yaml",
	"enum":        []string{"json", "yaml"},
	"default":     "json",
}

// GetName returns the name of the toolset
func (t *Toolset) GetName() string {
	return "monitor"
}

// GetDescription returns the description of the toolset
func (t *Toolset) GetDescription() string {
	return "Alerting, scheduled tasks, and audit history"
}

// GetTools returns the tools provided by this toolset
func (t *Toolset) GetTools() []toolset.ServerTool {
	return []toolset.ServerTool{
		{
			Tool: mcp.Tool{
				Name:        "list_alerts",
				Description: "List configured alerts, optionally filtered by cluster or to currently firing alerts only.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"cluster_name": map[string]any{
							"type":        "string",
							"description": "If provided, only return alerts for this cluster",
							"default":     "",
						},
						"active_only": map[string]any{
							"type":        "boolean",
							"description": "Return only currently firing alerts",
							"default":     false,
						},
						"format": formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listAlertsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "create_alert",
				Description: "Create a new alert rule watching a cluster metric against a threshold.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"name", "cluster_name", "metric", "threshold", "condition"},
					Properties: map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Unique name for this alert rule",
						},
						"cluster_name": clusterNameProperty,
						"metric": map[string]any{
							"type":        "string",
							"description": "Metric to watch (e.g. 'cpu_usage', 'memory_usage', 'storage_usage')",
						},
						"threshold": map[string]any{
							"type":        "number",
							"description": "Numeric threshold value that triggers the alert",
						},
						"condition": map[string]any{
							"type":        "string",
							"description": "Comparison operator",
							"enum":        []string{"gt", "lt", "gte", "lte"},
						},
						"severity": map[string]any{
							"type":        "string",
							"description": "Alert severity level",
							"enum":        []string{"info", "warning", "critical"},
							"default":     "warning",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "Optional human-readable description of what this alert means",
							"default":     "",
						},
					},
				},
			},
			Handler: createAlertHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "delete_alert",
				Description: "Delete an alert rule by its ID.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"alert_id"},
					Properties: map[string]any{
						"alert_id": map[string]any{
							"type":        "string",
							"description": "ID of the alert to delete (as returned by list_alerts)",
						},
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				DestructiveHint: paramutil.BoolPtr(true),
			},
			Handler: deleteAlertHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_scheduled_tasks",
				Description: "List all scheduled tasks: name, cron schedule, action, target, last run, and next run.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"cluster_name": map[string]any{
							"type":        "string",
							"description": "If provided, only return tasks for this cluster",
							"default":     "",
						},
						"format": formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listScheduledTasksHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "create_scheduled_task",
				Description: "Create a new scheduled task driven by a cron expression.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"name", "cluster_name", "action", "schedule", "target_type"},
					Properties: map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Unique name for this scheduled task",
						},
						"cluster_name": clusterNameProperty,
						"action": map[string]any{
							"type":        "string",
							"description": "Action to perform (e.g. 'snapshot', 'start', 'stop', 'backup', 'reboot')",
						},
						"schedule": map[string]any{
							"type":        "string",
							"description": "Cron expression (e.g. '0 2 * * *' for daily at 2am)",
						},
						"target_type": map[string]any{
							"type":        "string",
							"description": "What the action targets",
							"enum":        []string{"vm", "node", "cluster"},
						},
						"target_id": map[string]any{
							"type":        "string",
							"description": "VMID or node name, not required when target_type is 'cluster'",
							"default":     "",
						},
						"enabled": map[string]any{
							"type":        "boolean",
							"description": "Enable the task immediately",
							"default":     true,
						},
						"description": map[string]any{
							"type":        "string",
							"description": "Optional description of what this task does",
							"default":     "",
						},
					},
				},
			},
			Handler: createScheduledTaskHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "delete_scheduled_task",
				Description: "Delete a scheduled task by its ID.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"task_id"},
					Properties: map[string]any{
						"task_id": map[string]any{
							"type":        "string",
							"description": "ID of the scheduled task to delete (as returned by list_scheduled_tasks)",
						},
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				DestructiveHint: paramutil.BoolPtr(true),
			},
			Handler: deleteScheduledTaskHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "run_scheduled_task",
				Description: "Immediately trigger a scheduled task to run now, outside its schedule.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"task_id"},
					Properties: map[string]any{
						"task_id": map[string]any{
							"type":        "string",
							"description": "ID of the scheduled task to run",
						},
					},
				},
			},
			Handler: runScheduledTaskHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_audit_log",
				Description: "Get the global audit log of all actions performed through PegaProx, with pagination and user/action filters.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"limit": map[string]any{
							"type":        "integer",
							"description": "Maximum number of entries to return",
							"default":     50,
						},
						"offset": map[string]any{
							"type":        "integer",
							"description": "Number of entries to skip for pagination",
							"default":     0,
						},
						"user": map[string]any{
							"type":        "string",
							"description": "Filter to actions performed by this username",
							"default":     "",
						},
						"action": map[string]any{
							"type":        "string",
							"description": "Filter to this specific action type (e.g. 'vm.start', 'snapshot.create')",
							"default":     "",
						},
						"format": formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: getAuditLogHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_cluster_audit",
				Description: "Get the audit log filtered to a specific cluster: VM operations, node actions, snapshot events, and configuration changes.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"cluster_name"},
					Properties: map[string]any{
						"cluster_name": clusterNameProperty,
						"limit": map[string]any{
							"type":        "integer",
							"description": "Maximum number of entries to return",
							"default":     50,
						},
						"offset": map[string]any{
							"type":        "integer",
							"description": "Number of entries to skip for pagination",
							"default":     0,
						},
						"format": formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: getClusterAuditHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_migration_history",
				Description: "Get the history of VM migrations: source node, target node, VM ID, timestamp, duration, and outcome.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"cluster_name": map[string]any{
							"type":        "string",
							"description": "Filter migrations to this cluster",
							"default":     "",
						},
						"vmid": map[string]any{
							"type":        "integer",
							"description": "Filter migrations to this specific VM ID",
						},
						"limit": map[string]any{
							"type":        "integer",
							"description": "Maximum number of entries to return",
							"default":     50,
						},
						"format": formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: getMigrationHistoryHandler,
		},
	}
}
