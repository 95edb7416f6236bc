package kubernetes

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/kube"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

var podMetricsGVR = schema.GroupVersionResource{
	Group:    "metrics.k8s.io",
	Version:  "v1beta1",
	Resource: "pods",
}

// listPodsHandler handles the k8s_list_pods tool
func listPodsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	core, err := handles.CoreV1()
	if err != nil {
		return "", err
	}

	namespace := paramutil.ExtractOptionalString(params, paramutil.ParamNamespace)
	if namespace == "" {
		namespace = metav1.NamespaceAll
	}
	listOptions := metav1.ListOptions{}
	if nodeName := paramutil.ExtractOptionalString(params, paramutil.ParamNodeName); nodeName != "" {
		listOptions.FieldSelector = "spec.nodeName=" + nodeName
	}

	result, err := kube.Invoke(func() (*corev1.PodList, error) {
		return core.Pods(namespace).List(ctx, listOptions)
	})
	if err != nil {
		return "", err
	}

	pods := make([]map[string]interface{}, 0, len(result.Items))
	for _, pod := range result.Items {
		ready := 0
		restarts := int32(0)
		for _, status := range pod.Status.ContainerStatuses {
			if status.Ready {
				ready++
			}
			restarts += status.RestartCount
		}
		pods = append(pods, map[string]interface{}{
			"name":      pod.Name,
			"namespace": pod.Namespace,
			"phase":     string(pod.Status.Phase),
			"node":      pod.Spec.NodeName,
			"ip":        pod.Status.PodIP,
			"ready":     fmt.Sprintf("%d/%d", ready, len(pod.Spec.Containers)),
			"restarts":  restarts,
			"age":       formatTime(pod.CreationTimestamp),
		})
	}
	return toolset.FormatData(pods, paramutil.ExtractFormat(params))
}

// listDeploymentsHandler handles the k8s_list_deployments tool
func listDeploymentsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	apps, err := handles.AppsV1()
	if err != nil {
		return "", err
	}

	namespace := paramutil.ExtractOptionalStringWithDefault(params, paramutil.ParamNamespace, "default")
	result, err := kube.Invoke(func() (*appsv1.DeploymentList, error) {
		return apps.Deployments(namespace).List(ctx, metav1.ListOptions{})
	})
	if err != nil {
		return "", err
	}

	deployments := make([]map[string]interface{}, 0, len(result.Items))
	for _, deployment := range result.Items {
		images := []string{}
		for _, container := range deployment.Spec.Template.Spec.Containers {
			images = append(images, container.Image)
		}
		desired := int32(0)
		if deployment.Spec.Replicas != nil {
			desired = *deployment.Spec.Replicas
		}
		deployments = append(deployments, map[string]interface{}{
			"name":      deployment.Name,
			"namespace": deployment.Namespace,
			"replicas": map[string]interface{}{
				"desired":   desired,
				"ready":     deployment.Status.ReadyReplicas,
				"available": deployment.Status.AvailableReplicas,
				"updated":   deployment.Status.UpdatedReplicas,
			},
			"images": images,
			"age":    formatTime(deployment.CreationTimestamp),
		})
	}
	return toolset.FormatData(deployments, paramutil.ExtractFormat(params))
}

// restartDeploymentHandler handles the k8s_restart_deployment tool
func restartDeploymentHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	name, err := paramutil.ExtractRequiredString(params, paramutil.ParamName)
	if err != nil {
		return "", err
	}
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	apps, err := handles.AppsV1()
	if err != nil {
		return "", err
	}

	namespace := paramutil.ExtractOptionalStringWithDefault(params, paramutil.ParamNamespace, "default")
	patch := fmt.Sprintf(
		`{"spec":{"template":{"metadata":{"annotations":{"kubectl.kubernetes.io/restartedAt":%q}}}}}`,
		time.Now().UTC().Format(time.RFC3339))

	if err := kube.Run(func() error {
		_, patchErr := apps.Deployments(namespace).Patch(ctx, name,
			types.StrategicMergePatchType, []byte(patch), metav1.PatchOptions{})
		return patchErr
	}); err != nil {
		return "", err
	}
	return fmt.Sprintf("Rolling restart triggered for deployment '%s' in namespace '%s'.", name, namespace), nil
}

// scaleDeploymentHandler handles the k8s_scale_deployment tool
func scaleDeploymentHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	name, err := paramutil.ExtractRequiredString(params, paramutil.ParamName)
	if err != nil {
		return "", err
	}
	replicas, err := paramutil.ExtractRequiredInt64(params, "replicas")
	if err != nil {
		return "", err
	}
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	apps, err := handles.AppsV1()
	if err != nil {
		return "", err
	}

	namespace := paramutil.ExtractOptionalStringWithDefault(params, paramutil.ParamNamespace, "default")
	patch := fmt.Sprintf(`{"spec":{"replicas":%d}}`, replicas)

	if err := kube.Run(func() error {
		_, patchErr := apps.Deployments(namespace).Patch(ctx, name,
			types.StrategicMergePatchType, []byte(patch), metav1.PatchOptions{})
		return patchErr
	}); err != nil {
		return "", err
	}
	return fmt.Sprintf("Deployment '%s' scaled to %d replica(s).", name, replicas), nil
}

// listServicesHandler handles the k8s_list_services tool
func listServicesHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	core, err := handles.CoreV1()
	if err != nil {
		return "", err
	}

	namespace := paramutil.ExtractOptionalStringWithDefault(params, paramutil.ParamNamespace, "default")
	result, err := kube.Invoke(func() (*corev1.ServiceList, error) {
		return core.Services(namespace).List(ctx, metav1.ListOptions{})
	})
	if err != nil {
		return "", err
	}

	services := make([]map[string]interface{}, 0, len(result.Items))
	for _, service := range result.Items {
		externalIPs := []string{}
		for _, ingress := range service.Status.LoadBalancer.Ingress {
			if ingress.IP != "" {
				externalIPs = append(externalIPs, ingress.IP)
			} else {
				externalIPs = append(externalIPs, ingress.Hostname)
			}
		}
		ports := []string{}
		for _, port := range service.Spec.Ports {
			nodePort := "-"
			if port.NodePort != 0 {
				nodePort = fmt.Sprintf("%d", port.NodePort)
			}
			ports = append(ports, fmt.Sprintf("%d:%s/%s", port.Port, nodePort, port.Protocol))
		}
		selector := service.Spec.Selector
		if selector == nil {
			selector = map[string]string{}
		}
		services = append(services, map[string]interface{}{
			"name":         service.Name,
			"namespace":    service.Namespace,
			"type":         string(service.Spec.Type),
			"cluster_ip":   service.Spec.ClusterIP,
			"external_ips": externalIPs,
			"ports":        ports,
			"selector":     selector,
		})
	}
	return toolset.FormatData(services, paramutil.ExtractFormat(params))
}

// getPodLogsHandler handles the k8s_get_pod_logs tool
func getPodLogsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
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

	namespace := paramutil.ExtractOptionalStringWithDefault(params, paramutil.ParamNamespace, "default")
	tailLines := paramutil.ExtractInt64(params, "tail_lines", 100)
	logOptions := &corev1.PodLogOptions{TailLines: &tailLines}
	if container := paramutil.ExtractOptionalString(params, "container"); container != "" {
		logOptions.Container = container
	}

	raw, err := kube.Invoke(func() ([]byte, error) {
		return core.Pods(namespace).GetLogs(name, logOptions).Do(ctx).Raw()
	})
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "(no logs)", nil
	}
	return string(raw), nil
}

// podMetricsHandler handles the k8s_pod_metrics tool
func podMetricsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	dynamicClient, err := handles.Dynamic()
	if err != nil {
		return "", err
	}

	namespace := paramutil.ExtractOptionalString(params, paramutil.ParamNamespace)
	result, err := kube.Invoke(func() (*unstructured.UnstructuredList, error) {
		if namespace != "" {
			return dynamicClient.Resource(podMetricsGVR).Namespace(namespace).List(ctx, metav1.ListOptions{})
		}
		return dynamicClient.Resource(podMetricsGVR).List(ctx, metav1.ListOptions{})
	})
	if err != nil {
		return "", fmt.Errorf("%s (is metrics-server installed?)", err)
	}

	pods := make([]map[string]interface{}, 0, len(result.Items))
	for _, item := range result.Items {
		containers := []map[string]interface{}{}
		rawContainers, _, _ := unstructured.NestedSlice(item.Object, "containers")
		for _, rawContainer := range rawContainers {
			container, ok := rawContainer.(map[string]interface{})
			if !ok {
				continue
			}
			name, _, _ := unstructured.NestedString(container, "name")
			usage, _, _ := unstructured.NestedStringMap(container, "usage")
			containers = append(containers, map[string]interface{}{
				"name":   name,
				"cpu":    usage["cpu"],
				"memory": usage["memory"],
			})
		}
		timestamp, _, _ := unstructured.NestedString(item.Object, "timestamp")
		pods = append(pods, map[string]interface{}{
			"name":       item.GetName(),
			"namespace":  item.GetNamespace(),
			"containers": containers,
			"timestamp":  timestamp,
		})
	}
	return toolset.FormatData(pods, paramutil.ExtractFormat(params))
}

// listStatefulSetsHandler handles the k8s_list_statefulsets tool
func listStatefulSetsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	apps, err := handles.AppsV1()
	if err != nil {
		return "", err
	}

	namespace := paramutil.ExtractOptionalStringWithDefault(params, paramutil.ParamNamespace, "default")
	result, err := kube.Invoke(func() (*appsv1.StatefulSetList, error) {
		return apps.StatefulSets(namespace).List(ctx, metav1.ListOptions{})
	})
	if err != nil {
		return "", err
	}

	sets := make([]map[string]interface{}, 0, len(result.Items))
	for _, set := range result.Items {
		images := []string{}
		for _, container := range set.Spec.Template.Spec.Containers {
			images = append(images, container.Image)
		}
		desired := int32(0)
		if set.Spec.Replicas != nil {
			desired = *set.Spec.Replicas
		}
		sets = append(sets, map[string]interface{}{
			"name":      set.Name,
			"namespace": set.Namespace,
			"replicas": map[string]interface{}{
				"desired": desired,
				"ready":   set.Status.ReadyReplicas,
				"current": set.Status.CurrentReplicas,
			},
			"images": images,
			"age":    formatTime(set.CreationTimestamp),
		})
	}
	return toolset.FormatData(sets, paramutil.ExtractFormat(params))
}

// listJobsHandler handles the k8s_list_jobs tool
func listJobsHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	batch, err := handles.BatchV1()
	if err != nil {
		return "", err
	}

	namespace := paramutil.ExtractOptionalStringWithDefault(params, paramutil.ParamNamespace, "default")
	result, err := kube.Invoke(func() (*batchv1.JobList, error) {
		return batch.Jobs(namespace).List(ctx, metav1.ListOptions{})
	})
	if err != nil {
		return "", err
	}

	jobs := make([]map[string]interface{}, 0, len(result.Items))
	for _, job := range result.Items {
		completions := int32(1)
		if job.Spec.Completions != nil {
			completions = *job.Spec.Completions
		}
		startTime := ""
		if job.Status.StartTime != nil {
			startTime = formatTime(*job.Status.StartTime)
		}
		completionTime := ""
		if job.Status.CompletionTime != nil {
			completionTime = formatTime(*job.Status.CompletionTime)
		}
		jobs = append(jobs, map[string]interface{}{
			"name":            job.Name,
			"namespace":       job.Namespace,
			"completions":     fmt.Sprintf("%d/%d", job.Status.Succeeded, completions),
			"active":          job.Status.Active,
			"failed":          job.Status.Failed,
			"start_time":      startTime,
			"completion_time": completionTime,
		})
	}
	return toolset.FormatData(jobs, paramutil.ExtractFormat(params))
}

// listIngressesHandler handles the k8s_list_ingresses tool
func listIngressesHandler(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
	handles, err := resolveHandles(client, params)
	if err != nil {
		return "", err
	}
	networking, err := handles.NetworkingV1()
	if err != nil {
		return "", err
	}

	namespace := paramutil.ExtractOptionalStringWithDefault(params, paramutil.ParamNamespace, "default")
	result, err := kube.Invoke(func() (*networkingv1.IngressList, error) {
		return networking.Ingresses(namespace).List(ctx, metav1.ListOptions{})
	})
	if err != nil {
		return "", err
	}

	ingresses := make([]map[string]interface{}, 0, len(result.Items))
	for _, ingress := range result.Items {
		rules := []map[string]interface{}{}
		for _, rule := range ingress.Spec.Rules {
			paths := []map[string]interface{}{}
			if rule.HTTP != nil {
				for _, path := range rule.HTTP.Paths {
					backend := "?"
					if service := path.Backend.Service; service != nil {
						backend = fmt.Sprintf("%s:%d", service.Name, service.Port.Number)
					}
					paths = append(paths, map[string]interface{}{
						"path":    path.Path,
						"service": backend,
					})
				}
			}
			rules = append(rules, map[string]interface{}{
				"host":  rule.Host,
				"paths": paths,
			})
		}
		class := ""
		if ingress.Spec.IngressClassName != nil {
			class = *ingress.Spec.IngressClassName
		}
		ingresses = append(ingresses, map[string]interface{}{
			"name":      ingress.Name,
			"namespace": ingress.Namespace,
			"class":     class,
			"rules":     rules,
		})
	}
	return toolset.FormatData(ingresses, paramutil.ExtractFormat(params))
}
