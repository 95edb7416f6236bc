package vm

import (
	"context"
	"fmt"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/pegaprox"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// createVMHandler handles the create_vm tool
func createVMHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
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
	vmid, err := paramutil.ExtractRequiredInt64(params, paramutil.ParamVMID)
	if err != nil {
		return "", err
	}
	name, err := paramutil.ExtractRequiredString(params, paramutil.ParamName)
	if err != nil {
		return "", err
	}

	storage := paramutil.ExtractOptionalStringWithDefault(params, "storage", "local-lvm")
	diskSizeGB := paramutil.ExtractInt64(params, "disk_size_gb", 32)
	netBridge := paramutil.ExtractOptionalStringWithDefault(params, "net_bridge", "vmbr0")

	payload := map[string]interface{}{
		"vmid":    vmid,
		"name":    name,
		"memory":  paramutil.ExtractInt64(params, "memory_mb", 2048),
		"cores":   paramutil.ExtractInt64(params, "cores", 2),
		"sockets": paramutil.ExtractInt64(params, "sockets", 1),
		"ostype":  paramutil.ExtractOptionalStringWithDefault(params, "os_type", "l26"),
		"scsi0":   fmt.Sprintf("%s:%d", storage, diskSizeGB),
		"scsihw":  "virtio-scsi-pci",
		"net0":    fmt.Sprintf("virtio,bridge=%s", netBridge),
		"boot":    "order=scsi0;ide2;net0",
	}
	if iso := paramutil.ExtractOptionalString(params, "iso"); iso != "" {
		payload["ide2"] = fmt.Sprintf("%s,media=cdrom", iso)
	}
	if paramutil.ExtractBool(params, "start_on_create", false) {
		payload["start"] = 1
	}

	data, err := pegaproxClient.Post(ctx,
		fmt.Sprintf("/api/clusters/%s/nodes/%s/qemu", clusterName, nodeName),
		pegaprox.WithJSONBody(payload))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// createContainerHandler handles the create_container tool
func createContainerHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
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
	vmid, err := paramutil.ExtractRequiredInt64(params, paramutil.ParamVMID)
	if err != nil {
		return "", err
	}
	name, err := paramutil.ExtractRequiredString(params, paramutil.ParamName)
	if err != nil {
		return "", err
	}
	template, err := paramutil.ExtractRequiredString(params, "template")
	if err != nil {
		return "", err
	}

	storage := paramutil.ExtractOptionalStringWithDefault(params, "storage", "local-lvm")
	diskSizeGB := paramutil.ExtractInt64(params, "disk_size_gb", 8)
	netBridge := paramutil.ExtractOptionalStringWithDefault(params, "net_bridge", "vmbr0")
	ipConfig := paramutil.ExtractOptionalStringWithDefault(params, "ip_config", "dhcp")

	unprivileged := 0
	if paramutil.ExtractBool(params, "unprivileged", true) {
		unprivileged = 1
	}

	payload := map[string]interface{}{
		"vmid":         vmid,
		"hostname":     name,
		"ostemplate":   template,
		"memory":       paramutil.ExtractInt64(params, "memory_mb", 512),
		"swap":         paramutil.ExtractInt64(params, "swap_mb", 512),
		"cores":        paramutil.ExtractInt64(params, "cores", 1),
		"rootfs":       fmt.Sprintf("%s:%d", storage, diskSizeGB),
		"net0":         fmt.Sprintf("name=eth0,bridge=%s,ip=%s", netBridge, ipConfig),
		"unprivileged": unprivileged,
	}
	if password := paramutil.ExtractOptionalString(params, "password"); password != "" {
		payload["password"] = password
	}
	if sshKey := paramutil.ExtractOptionalString(params, "ssh_public_key"); sshKey != "" {
		payload["ssh-public-keys"] = sshKey
	}
	if paramutil.ExtractBool(params, "start_on_create", false) {
		payload["start"] = 1
	}

	data, err := pegaproxClient.Post(ctx,
		fmt.Sprintf("/api/clusters/%s/nodes/%s/lxc", clusterName, nodeName),
		pegaprox.WithJSONBody(payload))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// listAvailableTemplatesHandler handles the list_available_templates tool
func listAvailableTemplatesHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Get(ctx, fmt.Sprintf("/api/clusters/%s/templates/available", clusterName))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// listISOsHandler handles the list_isos tool
func listISOsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
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

	data, err := pegaproxClient.Get(ctx, fmt.Sprintf("/api/clusters/%s/nodes/%s/isos", clusterName, nodeName))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// listNodeTemplatesHandler handles the list_node_templates tool
func listNodeTemplatesHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
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

	data, err := pegaproxClient.Get(ctx, fmt.Sprintf("/api/clusters/%s/nodes/%s/templates", clusterName, nodeName))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}
