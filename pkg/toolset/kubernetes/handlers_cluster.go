package kubernetes

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/kube"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// listContextsHandler handles the k8s_list_contexts tool
func listContextsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	resolver, err := toolset.ValidateKubeResolver(client)
	if err != nil {
		return "", err
	}

	contexts, err := resolver.ListContexts()
	if err != nil {
		return "", err
	}
	return toolset.FormatData(contexts, paramutil.ExtractFormat(params))
}

// listNamespacesHandler handles the k8s_list_namespaces tool
func listNamespacesHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	core, err := handles.CoreV1()
	if err != nil {
		return "", err
	}

	result, err := kube.Invoke(func() (*corev1.NamespaceList, error) {
		return core.Namespaces().List(ctx, metav1.ListOptions{})
	})
	if err != nil {
		return "", err
	}

	namespaces := make([]map[string]interface{}, 0, len(result.Items))
	for _, ns := range result.Items {
		labels := ns.Labels
		if labels == nil {
			labels = map[string]string{}
		}
		namespaces = append(namespaces, map[string]interface{}{
			"name":   ns.Name,
			"status": string(ns.Status.Phase),
			"age":    formatTime(ns.CreationTimestamp),
			"labels": labels,
		})
	}
	return toolset.FormatData(namespaces, paramutil.ExtractFormat(params))
}

// createNamespaceHandler handles the k8s_create_namespace tool
func createNamespaceHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	name, err := paramutil.ExtractRequiredString(params, paramutil.ParamName)
	if err != nil {
		return "", err
	}
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	core, err := handles.CoreV1()
	if err != nil {
		return "", err
	}

	var labels map[string]string
	if raw := paramutil.ExtractOptionalString(params, "labels"); raw != "" {
		labels = parseLabels(raw)
	}

	namespace := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: name, Labels: labels},
	}
	_, err = kube.Invoke(func() (*corev1.Namespace, error) {
		return core.Namespaces().Create(ctx, namespace, metav1.CreateOptions{})
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Namespace '%s' created successfully.", name), nil
}

// deleteNamespaceHandler handles the k8s_delete_namespace tool
func deleteNamespaceHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	name, err := paramutil.ExtractRequiredString(params, paramutil.ParamName)
	if err != nil {
		return "", err
	}
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	core, err := handles.CoreV1()
	if err != nil {
		return "", err
	}

	if err := kube.Run(func() error {
		return core.Namespaces().Delete(ctx, name, metav1.DeleteOptions{})
	}); err != nil {
		return "", err
	}
	return fmt.Sprintf("Namespace '%s' deletion initiated.", name), nil
}

// clusterInfoHandler handles the k8s_cluster_info tool
func clusterInfoHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	core, err := handles.CoreV1()
	if err != nil {
		return "", err
	}

	nodes, err := kube.Invoke(func() (*corev1.NodeList, error) {
		return core.Nodes().List(ctx, metav1.ListOptions{})
	})
	if err != nil {
		return "", fmt.Errorf("listing nodes: %s", err)
	}

	pods, err := kube.Invoke(func() (*corev1.PodList, error) {
		return core.Pods(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	})
	if err != nil {
		return "", fmt.Errorf("listing pods: %s", err)
	}

	namespaces, err := kube.Invoke(func() (*corev1.NamespaceList, error) {
		return core.Namespaces().List(ctx, metav1.ListOptions{})
	})
	if err != nil {
		return "", fmt.Errorf("listing namespaces: %s", err)
	}

	version := "unknown"
	if len(nodes.Items) > 0 {
		version = nodes.Items[0].Status.NodeInfo.KubeletVersion
	}

	ready := 0
	for _, node := range nodes.Items {
		for _, condition := range node.Status.Conditions {
			if condition.Type == corev1.NodeReady && condition.Status == corev1.ConditionTrue {
				ready++
				break
			}
		}
	}

	podPhases := map[string]int{}
	for _, pod := range pods.Items {
		phase := string(pod.Status.Phase)
		if phase == "" {
			phase = "Unknown"
		}
		podPhases[phase]++
	}

	contextName := paramutil.ExtractOptionalStringWithDefault(params, paramutil.ParamContext, "active")
	summary := map[string]interface{}{
		"context":            contextName,
		"kubernetes_version": version,
		"nodes": map[string]interface{}{
			"total": len(nodes.Items),
			"ready": ready,
		},
		"namespaces": len(namespaces.Items),
		"pods":       podPhases,
	}
	return toolset.FormatData(summary, paramutil.ExtractFormat(params))
}
