package kubernetes

import (
	"context"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/kube"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

var nodeMetricsGVR = schema.GroupVersionResource{
	Group:    "metrics.k8s.io",
	Version:  "v1beta1",
	Resource: "nodes",
}

// nodeSummary condenses a node object into the fields operators actually
// look at during maintenance.
func nodeSummary(node *corev1.Node) map[string]interface{} {
	conditions := map[string]string{}
	for _, condition := range node.Status.Conditions {
		conditions[string(condition.Type)] = string(condition.Status)
	}

	roles := []string{}
	for label := range node.Labels {
		if strings.HasPrefix(label, "node-role.kubernetes.io/") {
			roles = append(roles, strings.TrimPrefix(label, "node-role.kubernetes.io/"))
		}
	}
	if len(roles) == 0 {
		roles = []string{"worker"}
	}

	quantity := func(list corev1.ResourceList, name corev1.ResourceName) string {
		if value, ok := list[name]; ok {
			return value.String()
		}
		return "?"
	}

	info := node.Status.NodeInfo
	return map[string]interface{}{
		"name":            node.Name,
		"ready":           conditions["Ready"] == "True",
		"schedulable":     !node.Spec.Unschedulable,
		"roles":           roles,
		"kubelet_version": info.KubeletVersion,
		"os":              info.OSImage,
		"arch":            info.Architecture,
		"capacity": map[string]interface{}{
			"cpu":    quantity(node.Status.Capacity, corev1.ResourceCPU),
			"memory": quantity(node.Status.Capacity, corev1.ResourceMemory),
			"pods":   quantity(node.Status.Capacity, corev1.ResourcePods),
		},
		"allocatable": map[string]interface{}{
			"cpu":    quantity(node.Status.Allocatable, corev1.ResourceCPU),
			"memory": quantity(node.Status.Allocatable, corev1.ResourceMemory),
			"pods":   quantity(node.Status.Allocatable, corev1.ResourcePods),
		},
		"conditions": conditions,
		"created":    formatTime(node.CreationTimestamp),
	}
}

// listNodesHandler handles the k8s_list_nodes tool
func listNodesHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	core, err := handles.CoreV1()
	if err != nil {
		return "", err
	}

	result, err := kube.Invoke(func() (*corev1.NodeList, error) {
		return core.Nodes().List(ctx, metav1.ListOptions{})
	})
	if err != nil {
		return "", err
	}

	nodes := make([]map[string]interface{}, 0, len(result.Items))
	for i := range result.Items {
		nodes = append(nodes, nodeSummary(&result.Items[i]))
	}
	return toolset.FormatData(nodes, paramutil.ExtractFormat(params))
}

// describeNodeHandler handles the k8s_describe_node tool
func describeNodeHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	nodeName, err := paramutil.ExtractRequiredString(params, paramutil.ParamNodeName)
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

	node, err := kube.Invoke(func() (*corev1.Node, error) {
		return core.Nodes().Get(ctx, nodeName, metav1.GetOptions{})
	})
	if err != nil {
		return "", err
	}
	return toolset.FormatData(nodeSummary(node), paramutil.ExtractFormat(params))
}

// cordonNodeHandler handles the k8s_cordon_node tool
func cordonNodeHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	nodeName, err := paramutil.ExtractRequiredString(params, paramutil.ParamNodeName)
	if err != nil {
		return "", err
	}
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	clientset, err := handles.Clientset()
	if err != nil {
		return "", err
	}

	if err := kube.Cordon(ctx, clientset, nodeName); err != nil {
		return "", err
	}
	return fmt.Sprintf("Node '%s' cordoned (unschedulable=True).", nodeName), nil
}

// uncordonNodeHandler handles the k8s_uncordon_node tool
func uncordonNodeHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	nodeName, err := paramutil.ExtractRequiredString(params, paramutil.ParamNodeName)
	if err != nil {
		return "", err
	}
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	clientset, err := handles.Clientset()
	if err != nil {
		return "", err
	}

	if err := kube.Uncordon(ctx, clientset, nodeName); err != nil {
		return "", err
	}
	return fmt.Sprintf("Node '%s' uncordoned (schedulable).", nodeName), nil
}

// drainNodeHandler handles the k8s_drain_node tool
func drainNodeHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	nodeName, err := paramutil.ExtractRequiredString(params, paramutil.ParamNodeName)
	if err != nil {
		return "", err
	}
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	clientset, err := handles.Clientset()
	if err != nil {
		return "", err
	}

	report, err := kube.Drain(ctx, clientset, nodeName,
		paramutil.ExtractBool(params, "ignore_daemonsets", true))
	if err != nil {
		return "", err
	}
	return toolset.FormatData(report, paramutil.FormatJSON)
}

// nodeMetricsHandler handles the k8s_node_metrics tool
func nodeMetricsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	dynamicClient, err := handles.Dynamic()
	if err != nil {
		return "", err
	}

	result, err := kube.Invoke(func() (*unstructured.UnstructuredList, error) {
		return dynamicClient.Resource(nodeMetricsGVR).List(ctx, metav1.ListOptions{})
	})
	if err != nil {
		return "", fmt.Errorf("%s (is metrics-server installed?)", err)
	}

	nodes := make([]map[string]interface{}, 0, len(result.Items))
	for _, item := range result.Items {
		usage, _, _ := unstructured.NestedStringMap(item.Object, "usage")
		timestamp, _, _ := unstructured.NestedString(item.Object, "timestamp")
		nodes = append(nodes, map[string]interface{}{
			"name":      item.GetName(),
			"cpu":       usage["cpu"],
			"memory":    usage["memory"],
			"timestamp": timestamp,
		})
	}
	return toolset.FormatData(nodes, paramutil.ExtractFormat(params))
}
