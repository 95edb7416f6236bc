package cluster

import (
	"context"
	"fmt"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/pegaprox"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// listClustersHandler handles the list_clusters tool
func listClustersHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Get(ctx, "/api/clusters")
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// getGlobalSummaryHandler handles the get_global_summary tool
func getGlobalSummaryHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Get(ctx, "/api/summary")
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// getClusterMetricsHandler handles the get_cluster_metrics tool
func getClusterMetricsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Get(ctx, fmt.Sprintf("/api/clusters/%s/metrics", clusterName))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// listNodesHandler handles the list_nodes tool
func listNodesHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Get(ctx, fmt.Sprintf("/api/clusters/%s/nodes", clusterName))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// getNodeSummaryHandler handles the get_node_summary tool
func getNodeSummaryHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	nodeName, err := paramutil.ExtractRequiredString(params, paramutil.ParamNodeName)
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Get(ctx, fmt.Sprintf("/api/clusters/%s/nodes/%s", clusterName, nodeName))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// nodeActionHandler handles the node_action tool
func nodeActionHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	nodeName, err := paramutil.ExtractRequiredString(params, paramutil.ParamNodeName)
	if err != nil {
		return "", err
	}
	action, err := paramutil.ExtractRequiredString(params, paramutil.ParamAction)
	if err != nil {
		return "", err
	}
	if err := paramutil.ValidateEnum(paramutil.ParamAction, action, "start", "stop", "reboot"); err != nil {
		return "", err
	}

	data, err := pegaproxClient.Post(ctx,
		fmt.Sprintf("/api/clusters/%s/nodes/%s/action", clusterName, nodeName),
		pegaprox.WithJSONBody(map[string]interface{}{"action": action}))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}
