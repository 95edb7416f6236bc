package monitor

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/pegaprox"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// listAlertsHandler handles the list_alerts tool
func listAlertsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	if clusterName := paramutil.ExtractOptionalString(params, paramutil.ParamClusterName); clusterName != "" {
		query.Set("cluster", clusterName)
	}
	if paramutil.ExtractBool(params, "active_only", false) {
		query.Set("active", "true")
	}

	opts := []pegaprox.RequestOption{}
	if len(query) > 0 {
		opts = append(opts, pegaprox.WithQuery(query))
	}

	data, err := pegaproxClient.Get(ctx, "/api/alerts", opts...)
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// createAlertHandler handles the create_alert tool
func createAlertHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	name, err := paramutil.ExtractRequiredString(params, paramutil.ParamName)
	if err != nil {
		return "", err
	}
	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	metric, err := paramutil.ExtractRequiredString(params, "metric")
	if err != nil {
		return "", err
	}
	threshold, err := paramutil.ExtractRequiredFloat64(params, "threshold")
	if err != nil {
		return "", err
	}
	condition, err := paramutil.ExtractRequiredString(params, "condition")
	if err != nil {
		return "", err
	}
	if err := paramutil.ValidateEnum("condition", condition, "gt", "lt", "gte", "lte"); err != nil {
		return "", err
	}
	severity := paramutil.ExtractOptionalStringWithDefault(params, "severity", "warning")
	if err := paramutil.ValidateEnum("severity", severity, "info", "warning", "critical"); err != nil {
		return "", err
	}

	payload := map[string]interface{}{
		"name":      name,
		"cluster":   clusterName,
		"metric":    metric,
		"threshold": threshold,
		"condition": condition,
		"severity":  severity,
	}
	if description := paramutil.ExtractOptionalString(params, "description"); description != "" {
		payload["description"] = description
	}

	data, err := pegaproxClient.Post(ctx, "/api/alerts", pegaprox.WithJSONBody(payload))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// deleteAlertHandler handles the delete_alert tool
func deleteAlertHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	alertID, err := paramutil.ExtractRequiredString(params, "alert_id")
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Delete(ctx, fmt.Sprintf("/api/alerts/%s", alertID))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// listScheduledTasksHandler handles the list_scheduled_tasks tool
func listScheduledTasksHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	opts := []pegaprox.RequestOption{}
	if clusterName := paramutil.ExtractOptionalString(params, paramutil.ParamClusterName); clusterName != "" {
		opts = append(opts, pegaprox.WithQuery(url.Values{"cluster": []string{clusterName}}))
	}

	data, err := pegaproxClient.Get(ctx, "/api/schedules", opts...)
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// createScheduledTaskHandler handles the create_scheduled_task tool
func createScheduledTaskHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	name, err := paramutil.ExtractRequiredString(params, paramutil.ParamName)
	if err != nil {
		return "", err
	}
	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}
	action, err := paramutil.ExtractRequiredString(params, paramutil.ParamAction)
	if err != nil {
		return "", err
	}
	schedule, err := paramutil.ExtractRequiredString(params, "schedule")
	if err != nil {
		return "", err
	}
	targetType, err := paramutil.ExtractRequiredString(params, "target_type")
	if err != nil {
		return "", err
	}
	if err := paramutil.ValidateEnum("target_type", targetType, "vm", "node", "cluster"); err != nil {
		return "", err
	}

	payload := map[string]interface{}{
		"name":        name,
		"cluster":     clusterName,
		"action":      action,
		"schedule":    schedule,
		"target_type": targetType,
		"enabled":     paramutil.ExtractBool(params, "enabled", true),
	}
	if targetID := paramutil.ExtractOptionalString(params, "target_id"); targetID != "" {
		payload["target_id"] = targetID
	}
	if description := paramutil.ExtractOptionalString(params, "description"); description != "" {
		payload["description"] = description
	}

	data, err := pegaproxClient.Post(ctx, "/api/schedules", pegaprox.WithJSONBody(payload))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// deleteScheduledTaskHandler handles the delete_scheduled_task tool
func deleteScheduledTaskHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	taskID, err := paramutil.ExtractRequiredString(params, "task_id")
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Delete(ctx, fmt.Sprintf("/api/schedules/%s", taskID))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// runScheduledTaskHandler handles the run_scheduled_task tool
func runScheduledTaskHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	taskID, err := paramutil.ExtractRequiredString(params, "task_id")
	if err != nil {
		return "", err
	}

	data, err := pegaproxClient.Post(ctx, fmt.Sprintf("/api/schedules/%s/run", taskID))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.FormatJSON)
}

// getAuditLogHandler handles the get_audit_log tool
func getAuditLogHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("limit", strconv.FormatInt(paramutil.ExtractInt64(params, "limit", 50), 10))
	query.Set("offset", strconv.FormatInt(paramutil.ExtractInt64(params, "offset", 0), 10))
	if user := paramutil.ExtractOptionalString(params, "user"); user != "" {
		query.Set("user", user)
	}
	if action := paramutil.ExtractOptionalString(params, paramutil.ParamAction); action != "" {
		query.Set("action", action)
	}

	data, err := pegaproxClient.Get(ctx, "/api/audit", pegaprox.WithQuery(query))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// getClusterAuditHandler handles the get_cluster_audit tool
func getClusterAuditHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	clusterName, err := paramutil.ExtractRequiredString(params, paramutil.ParamClusterName)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("limit", strconv.FormatInt(paramutil.ExtractInt64(params, "limit", 50), 10))
	query.Set("offset", strconv.FormatInt(paramutil.ExtractInt64(params, "offset", 0), 10))

	data, err := pegaproxClient.Get(ctx,
		fmt.Sprintf("/api/clusters/%s/audit", clusterName), pegaprox.WithQuery(query))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}

// getMigrationHistoryHandler handles the get_migration_history tool
func getMigrationHistoryHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	pegaproxClient, err := toolset.ValidatePegaProxClient(client)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("limit", strconv.FormatInt(paramutil.ExtractInt64(params, "limit", 50), 10))
	if clusterName := paramutil.ExtractOptionalString(params, paramutil.ParamClusterName); clusterName != "" {
		query.Set("cluster", clusterName)
	}
	if vmid, err := paramutil.ExtractRequiredInt64(params, paramutil.ParamVMID); err == nil {
		query.Set("vmid", strconv.FormatInt(vmid, 10))
	}

	data, err := pegaproxClient.Get(ctx, "/api/migrations", pegaprox.WithQuery(query))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(data, paramutil.ExtractFormat(params))
}
