package vm

import (
	"context"
	"fmt"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/pegaprox"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// listSnapshotsHandler handles the list_snapshots tool
func listSnapshotsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	vmid, err := paramutil.ExtractRequiredInt64(params, paramutil.ParamVMID)
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Get(ctx, fmt.Sprintf("/api/clusters/%s/vms/%d/snapshots", clusterName, vmid))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// listAllSnapshotsHandler handles the list_all_snapshots tool
func listAllSnapshotsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Get(ctx, fmt.Sprintf("/api/clusters/%s/snapshots", clusterName))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// createSnapshotHandler handles the create_snapshot tool
func createSnapshotHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	vmid, err := paramutil.ExtractRequiredInt64(params, paramutil.ParamVMID)
	if err != nil {
		return "", err
	}
	snapshotName, err := paramutil.ExtractRequiredString(params, "snapshot_name")
	if err != nil {
		return "", err
	}

	payload := map[string]interface{}{
		"snapname": snapshotName,
		"vmstate":  paramutil.ExtractBool(params, "include_ram", false),
	}
	if description := paramutil.ExtractOptionalString(params, "description"); description != "" {
		payload["description"] = description
	}

	data, err := pegaproxClient.Post(ctx,
		fmt.Sprintf("/api/clusters/%s/vms/%d/snapshots", clusterName, vmid),
		pegaprox.WithJSONBody(payload))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// rollbackSnapshotHandler handles the rollback_snapshot tool
func rollbackSnapshotHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	vmid, err := paramutil.ExtractRequiredInt64(params, paramutil.ParamVMID)
	if err != nil {
		return "", err
	}
	snapshotName, err := paramutil.ExtractRequiredString(params, "snapshot_name")
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Post(ctx,
		fmt.Sprintf("/api/clusters/%s/vms/%d/snapshots/%s/rollback", clusterName, vmid, snapshotName))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// deleteSnapshotHandler handles the delete_snapshot tool
func deleteSnapshotHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	vmid, err := paramutil.ExtractRequiredInt64(params, paramutil.ParamVMID)
	if err != nil {
		return "", err
	}
	snapshotName, err := paramutil.ExtractRequiredString(params, "snapshot_name")
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Delete(ctx,
		fmt.Sprintf("/api/clusters/%s/vms/%d/snapshots/%s", clusterName, vmid, snapshotName))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}
