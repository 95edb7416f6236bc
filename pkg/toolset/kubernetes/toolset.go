// Package kubernetes provides MCP tools for managing Kubernetes clusters
// reachable through kubeconfig contexts.
package kubernetes

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// Toolset implements the kubernetes toolset via client-go
type Toolset struct{}

var _ toolset.Toolset = (*Toolset)(nil)

// contextProperty is the shared schema for the context parameter.
var contextProperty = map[string]any{
	"type":        "string",
	"description": "Kubeconfig context name (cluster). Uses the active context if omitted",
	"default":     "",
}

var nodeNameProperty = map[string]any{
	"type":        "string",
	"description": "Name of the node",
}

var namespaceDefaultProperty = map[string]any{
	"type":        "string",
	"description": "Namespace (default: 'default')",
	"default":     "default",
}

var formatProperty = map[string]any{
	"type":        "string",
	"description": "Output format: json or yaml",
	"enum":        []string{"json", "yaml"},
	"default":     "json",
}

// GetName returns the name of the toolset
func (t *Toolset) GetName() string {
	return "kubernetes"
}

// GetDescription returns the description of the toolset
func (t *Toolset) GetDescription() string {
	return "Kubernetes cluster, node, and workload operations via kubeconfig contexts"
}

// GetTools returns the tools provided by this toolset
func (t *Toolset) GetTools() []toolset.ServerTool {
	tools := []toolset.ServerTool{
		{
			Tool: mcp.Tool{
				Name:        "k8s_list_contexts",
				Description: "List all Kubernetes clusters (kubeconfig contexts) available: cluster name, user, active context, and default namespace.",
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
			Handler: listContextsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_list_namespaces",
				Description: "List all namespaces in a Kubernetes cluster with status, age, and labels.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"context": contextProperty,
						"format":  formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listNamespacesHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_create_namespace",
				Description: "Create a new Kubernetes namespace, optionally with labels.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"name"},
					Properties: map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Namespace name to create",
						},
						"context": contextProperty,
						"labels": map[string]any{
							"type":        "string",
							"description": "Optional comma-separated key=value labels (e.g. 'env=prod,team=ops')",
							"default":     "",
						},
					},
				},
			},
			Handler: createNamespaceHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_delete_namespace",
				Description: "Delete a Kubernetes namespace and all resources within it. WARNING: this deletes all pods, services, deployments, and data in the namespace.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"name"},
					Properties: map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Namespace to delete",
						},
						"context": contextProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				DestructiveHint: paramutil.BoolPtr(true),
			},
			Handler: deleteNamespaceHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_cluster_info",
				Description: "Get a high-level cluster summary: node count, pod count by phase, namespace count, and Kubernetes version.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"context": contextProperty,
						"format":  formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: clusterInfoHandler,
		},
	}
	tools = append(tools, t.nodeTools()...)
	tools = append(tools, t.workloadTools()...)
	return tools
}

// nodeTools returns the node management tools.
func (t *Toolset) nodeTools() []toolset.ServerTool {
	return []toolset.ServerTool{
		{
			Tool: mcp.Tool{
				Name:        "k8s_list_nodes",
				Description: "List all nodes in a Kubernetes cluster with status, roles, and resource capacity.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"context": contextProperty,
						"format":  formatProperty,
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
				Name:        "k8s_describe_node",
				Description: "Get detailed information about a specific Kubernetes node.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"node_name"},
					Properties: map[string]any{
						"node_name": nodeNameProperty,
						"context":   contextProperty,
						"format":    formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: describeNodeHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_cordon_node",
				Description: "Cordon a node: mark it unschedulable so no new pods are placed on it. Existing pods continue running. Use before draining or maintenance.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"node_name"},
					Properties: map[string]any{
						"node_name": nodeNameProperty,
						"context":   contextProperty,
					},
				},
			},
			Handler: cordonNodeHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_uncordon_node",
				Description: "Uncordon a node: re-enable scheduling so pods can be placed on it.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"node_name"},
					Properties: map[string]any{
						"node_name": nodeNameProperty,
						"context":   contextProperty,
					},
				},
			},
			Handler: uncordonNodeHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_drain_node",
				Description: "Drain a node: cordon it, then evict all evictable pods so it can be safely taken offline. DaemonSet pods are skipped by default. WARNING: running pods will be disrupted.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"node_name"},
					Properties: map[string]any{
						"node_name": nodeNameProperty,
						"context":   contextProperty,
						"ignore_daemonsets": map[string]any{
							"type":        "boolean",
							"description": "Skip DaemonSet-managed pods",
							"default":     true,
						},
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				DestructiveHint: paramutil.BoolPtr(true),
			},
			Handler: drainNodeHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_node_metrics",
				Description: "Get CPU and memory usage for all nodes (requires metrics-server).",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"context": contextProperty,
						"format":  formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: nodeMetricsHandler,
		},
	}
}

// workloadTools returns the pod, deployment, service, and batch tools.
func (t *Toolset) workloadTools() []toolset.ServerTool {
	return []toolset.ServerTool{
		{
			Tool: mcp.Tool{
				Name:        "k8s_list_pods",
				Description: "List pods with status, node placement, and restart counts.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"namespace": map[string]any{
							"type":        "string",
							"description": "Namespace to filter by. Lists all namespaces if omitted",
							"default":     "",
						},
						"context": contextProperty,
						"node_name": map[string]any{
							"type":        "string",
							"description": "Optional: filter pods running on a specific node",
							"default":     "",
						},
						"format": formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listPodsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_list_deployments",
				Description: "List deployments with replica status and image info.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"namespace": namespaceDefaultProperty,
						"context":   contextProperty,
						"format":    formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listDeploymentsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_restart_deployment",
				Description: "Trigger a zero-downtime rolling restart of a deployment by patching the pod template annotation with a timestamp.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"name"},
					Properties: map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Deployment name",
						},
						"namespace": namespaceDefaultProperty,
						"context":   contextProperty,
					},
				},
			},
			Handler: restartDeploymentHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_scale_deployment",
				Description: "Scale a deployment to a specific number of replicas.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"name", "replicas"},
					Properties: map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Deployment name",
						},
						"replicas": map[string]any{
							"type":        "integer",
							"description": "Desired replica count",
						},
						"namespace": namespaceDefaultProperty,
						"context":   contextProperty,
					},
				},
			},
			Handler: scaleDeploymentHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_list_services",
				Description: "List services with type, cluster IP, external IP, and ports.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"namespace": map[string]any{
							"type":        "string",
							"description": "Namespace (default: 'default'). Use '' for all namespaces",
							"default":     "default",
						},
						"context": contextProperty,
						"format":  formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listServicesHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_get_pod_logs",
				Description: "Get logs from a pod or a specific container in it.",
				InputSchema: mcp.ToolInputSchema{
					Type:     "object",
					Required: []string{"name"},
					Properties: map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Pod name",
						},
						"namespace": namespaceDefaultProperty,
						"context":   contextProperty,
						"container": map[string]any{
							"type":        "string",
							"description": "Container name (required if the pod has multiple containers)",
							"default":     "",
						},
						"tail_lines": map[string]any{
							"type":        "integer",
							"description": "Number of log lines to return from the end",
							"default":     100,
						},
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: getPodLogsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_pod_metrics",
				Description: "Get CPU and memory usage per pod (requires metrics-server).",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"namespace": map[string]any{
							"type":        "string",
							"description": "Namespace to filter by. All namespaces if omitted",
							"default":     "",
						},
						"context": contextProperty,
						"format":  formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: podMetricsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_list_statefulsets",
				Description: "List StatefulSets with replica status and images.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"namespace": namespaceDefaultProperty,
						"context":   contextProperty,
						"format":    formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listStatefulSetsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_list_jobs",
				Description: "List Jobs with completion status.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"namespace": namespaceDefaultProperty,
						"context":   contextProperty,
						"format":    formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listJobsHandler,
		},
		{
			Tool: mcp.Tool{
				Name:        "k8s_list_ingresses",
				Description: "List Ingress resources with hostnames and backend services.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"namespace": map[string]any{
							"type":        "string",
							"description": "Namespace (default: 'default'). Use '' for all namespaces",
							"default":     "default",
						},
						"context": contextProperty,
						"format":  formatProperty,
					},
				},
			},
			Annotations: toolset.ToolAnnotations{
				ReadOnlyHint: paramutil.BoolPtr(true),
			},
			Handler: listIngressesHandler,
		},
	}
}
