package vm

import (
	"context"
	"fmt"
	"net/url"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/pegaprox"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// listVMsHandler handles the list_vms tool
func listVMsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}

	opts := []pegaprox.RequestOption{}
	if nodeName := paramutil.ExtractOptionalString(params, paramutil.ParamNodeName); nodeName != "" {
		opts = append(opts, pegaprox.WithQuery(url.Values{"node": []string{nodeName}}))
	}

	data, err := pegaproxClient.Get(ctx, fmt.Sprintf("/api/clusters/%s/vms", clusterName), opts...)
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// getVMConfigHandler handles the get_vm_config tool
func getVMConfigHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
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

	data, err := pegaproxClient.Get(ctx, fmt.Sprintf("/api/clusters/%s/vms/%d", clusterName, vmid))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// vmActionHandler handles the vm_action tool
func vmActionHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
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
	action, err := paramutil.ExtractRequiredString(params, paramutil.ParamAction)
	if err != nil {
		return "", err
	}
	if err := paramutil.ValidateEnum(paramutil.ParamAction, action,
		"start", "stop", "shutdown", "reboot", "suspend", "resume", "reset"); err != nil {
		return "", err
	}

	data, err := pegaproxClient.Post(ctx,
		fmt.Sprintf("/api/clusters/%s/vms/%d/action", clusterName, vmid),
		pegaprox.WithJSONBody(map[string]interface{}{"action": action}))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// migrateVMHandler handles the migrate_vm tool
func migrateVMHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
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
	targetNode, err := paramutil.ExtractRequiredString(params, "target_node")
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Post(ctx,
		fmt.Sprintf("/api/clusters/%s/vms/%d/migrate", clusterName, vmid),
		pegaprox.WithJSONBody(map[string]interface{}{
			"target_node": targetNode,
			"online":      paramutil.ExtractBool(params, "online", true),
		}))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// cloneVMHandler handles the clone_vm tool
func cloneVMHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
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
	newVMID, err := paramutil.ExtractRequiredInt64(params, "new_vmid")
	if err != nil {
		return "", err
	}

	payload := map[string]interface{}{
		"new_vmid": newVMID,
		"full":     paramutil.ExtractBool(params, "full_clone", true),
	}
	if name := paramutil.ExtractOptionalString(params, paramutil.ParamName); name != "" {
		payload["name"] = name
	}
	if targetNode := paramutil.ExtractOptionalString(params, "target_node"); targetNode != "" {
		payload["target"] = targetNode
	}

	data, err := pegaproxClient.Post(ctx,
		fmt.Sprintf("/api/clusters/%s/vms/%d/clone", clusterName, vmid),
		pegaprox.WithJSONBody(payload))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// deleteVMHandler handles the delete_vm tool
func deleteVMHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
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

	opts := []pegaprox.RequestOption{}
	if paramutil.ExtractBool(params, "purge", false) {
		opts = append(opts, pegaprox.WithQuery(url.Values{"purge": []string{"1"}}))
	}

	data, err := pegaproxClient.Delete(ctx, fmt.Sprintf("/api/clusters/%s/vms/%d", clusterName, vmid), opts...)
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}
