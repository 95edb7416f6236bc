package storage

import (
	"context"
	"fmt"
	"net/url"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/pegaprox"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// listDatastoresHandler handles the list_datastores tool
func listDatastoresHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Get(ctx, fmt.Sprintf("/api/clusters/%s/datastores", clusterName))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// listDatastoreContentHandler handles the list_datastore_content tool
func listDatastoreContentHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	storageName, err := paramutil.ExtractRequiredString(params, "storage_name")
	if err != nil {
		return "", err
	}

	opts := []pegaprox.RequestOption{}
	if contentType := paramutil.ExtractOptionalString(params, "content_type"); contentType != "" {
		opts = append(opts, pegaprox.WithQuery(url.Values{"content": []string{contentType}}))
	}

	data, err := pegaproxClient.Get(ctx,
		fmt.Sprintf("/api/clusters/%s/datastores/%s/content", clusterName, storageName), opts...)
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// deleteDatastoreContentHandler handles the delete_datastore_content tool
func deleteDatastoreContentHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	storageName, err := paramutil.ExtractRequiredString(params, "storage_name")
	if err != nil {
		return "", err
	}
	volid, err := paramutil.ExtractRequiredString(params, "volid")
	if err != nil {
		return "", err
	}

	// Volume IDs contain ':' and '/', escape them into a single path segment.
	data, err := pegaproxClient.Delete(ctx,
		fmt.Sprintf("/api/clusters/%s/datastores/%s/content/%s",
			clusterName, storageName, url.PathEscape(volid)))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// downloadISOHandler handles the download_iso tool
func downloadISOHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	storageName, err := paramutil.ExtractRequiredString(params, "storage_name")
	if err != nil {
		return "", err
	}
	downloadURL, err := paramutil.ExtractRequiredString(params, "url")
	if err != nil {
		return "", err
	}
	filename, err := paramutil.ExtractRequiredString(params, "filename")
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Post(ctx,
		fmt.Sprintf("/api/clusters/%s/datastores/%s/download-url", clusterName, storageName),
		pegaprox.WithJSONBody(map[string]interface{}{"url": downloadURL, "filename": filename}))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// listStorageClustersHandler handles the list_storage_clusters tool
func listStorageClustersHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Get(ctx, fmt.Sprintf("/api/clusters/%s/storage-clusters", clusterName))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// getStorageClusterStatusHandler handles the get_storage_cluster_status tool
func getStorageClusterStatusHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	storageClusterID, err := paramutil.ExtractRequiredString(params, "storage_cluster_id")
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Get(ctx,
		fmt.Sprintf("/api/clusters/%s/storage-clusters/%s/status", clusterName, storageClusterID))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// extractBackupTarget pulls the shared node/type/vmid triple used by the
// backup tools.
func extractBackupTarget(params map[string]interface{}) (nodeName, vmType string, vmid int64, err error) {
	nodeName, err = paramutil.ExtractRequiredString(params, paramutil.ParamNodeName)
	if err != nil {
		return "", "", 0, err
	}
	vmType, err = paramutil.ExtractRequiredString(params, "vm_type")
	if err != nil {
		return "", "", 0, err
	}
	if err = paramutil.ValidateEnum("vm_type", vmType, "qemu", "lxc"); err != nil {
		return "", "", 0, err
	}
	vmid, err = paramutil.ExtractRequiredInt64(params, paramutil.ParamVMID)
	if err != nil {
		return "", "", 0, err
	}
	return nodeName, vmType, vmid, nil
}

// listBackupsHandler handles the list_backups tool
func listBackupsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	nodeName, vmType, vmid, err := extractBackupTarget(params)
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Get(ctx,
		fmt.Sprintf("/api/clusters/%s/vms/%s/%s/%d/backups", clusterName, nodeName, vmType, vmid))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// createBackupHandler handles the create_backup tool
func createBackupHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	nodeName, vmType, vmid, err := extractBackupTarget(params)
	if err != nil {
		return "", err
	}
	storage, err := paramutil.ExtractRequiredString(params, "storage")
	if err != nil {
		return "", err
	}

	mode := paramutil.ExtractOptionalStringWithDefault(params, "mode", "snapshot")
	if err := paramutil.ValidateEnum("mode", mode, "snapshot", "suspend", "stop"); err != nil {
		return "", err
	}
	compress := paramutil.ExtractOptionalStringWithDefault(params, "compress", "zstd")
	if err := paramutil.ValidateEnum("compress", compress, "zstd", "lzo", "gzip", "none"); err != nil {
		return "", err
	}

	payload := map[string]interface{}{
		"storage":  storage,
		"mode":     mode,
		"compress": compress,
	}
	if notes := paramutil.ExtractOptionalString(params, "notes"); notes != "" {
		payload["notes"] = notes
	}

	data, err := pegaproxClient.Post(ctx,
		fmt.Sprintf("/api/clusters/%s/vms/%s/%s/%d/backups/create", clusterName, nodeName, vmType, vmid),
		pegaprox.WithJSONBody(payload))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// restoreBackupHandler handles the restore_backup tool
func restoreBackupHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	nodeName, vmType, vmid, err := extractBackupTarget(params)
	if err != nil {
		return "", err
	}
	volid, err := paramutil.ExtractRequiredString(params, "volid")
	if err != nil {
		return "", err
	}

	payload := map[string]interface{}{"volid": volid}
	if targetStorage := paramutil.ExtractOptionalString(params, "target_storage"); targetStorage != "" {
		payload["storage"] = targetStorage
	}

	data, err := pegaproxClient.Post(ctx,
		fmt.Sprintf("/api/clusters/%s/vms/%s/%s/%d/backups/restore", clusterName, nodeName, vmType, vmid),
		pegaprox.WithJSONBody(payload))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// deleteBackupHandler handles the delete_backup tool
func deleteBackupHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	nodeName, vmType, vmid, err := extractBackupTarget(params)
	if err != nil {
		return "", err
	}
	volid, err := paramutil.ExtractRequiredString(params, "volid")
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Delete(ctx,
		fmt.Sprintf("/api/clusters/%s/vms/%s/%s/%d/backups/%s",
			clusterName, nodeName, vmType, vmid, url.PathEscape(volid)))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}
