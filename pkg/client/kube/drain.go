package kube

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"
)

var (
	cordonPatch   = []byte(`{"spec":{"unschedulable":true}}`)
	uncordonPatch = []byte(`{"spec":{"unschedulable":false}}`)
)

// PodOutcome ties a pod (namespace/name) to the reason it was skipped or
// failed eviction.
type PodOutcome struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// DrainReport is the caller-facing result of a node drain. Every pod found on
// the node lands in exactly one of Evicted, Skipped, or Errors. The slices
// are always non-nil so the report serializes with empty arrays rather than
// nulls.
type DrainReport struct {
	Node     string       `json:"node"`
	Cordoned bool         `json:"cordoned"`
	Evicted  []string     `json:"evicted"`
	Skipped  []PodOutcome `json:"skipped"`
	Errors   []PodOutcome `json:"errors"`
}

// Cordon marks a node unschedulable. Existing pods keep running.
func Cordon(ctx context.Context, client kubernetes.Interface, nodeName string) error {
	return Run(func() error {
		_, err := client.CoreV1().Nodes().Patch(ctx, nodeName, types.StrategicMergePatchType, cordonPatch, metav1.PatchOptions{})
		return err
	})
}

// Uncordon re-enables scheduling on a node.
func Uncordon(ctx context.Context, client kubernetes.Interface, nodeName string) error {
	return Run(func() error {
		_, err := client.CoreV1().Nodes().Patch(ctx, nodeName, types.StrategicMergePatchType, uncordonPatch, metav1.PatchOptions{})
		return err
	})
}

type podClass int

const (
	podEvictable podClass = iota
	podSkippedDaemonSet
	podSkippedStatic
)

// classify assigns a pod exactly one drain outcome class and, for skipped
// pods, the reason string reported to the caller.
func classify(pod *corev1.Pod, ignoreDaemonSets bool) (podClass, string) {
	owners := pod.OwnerReferences

	if ignoreDaemonSets {
		for _, owner := range owners {
			if owner.Kind == "DaemonSet" {
				return podSkippedDaemonSet, "DaemonSet"
			}
		}
	}

	if len(owners) == 0 {
		return podSkippedStatic, "static pod"
	}
	nodeOwnedOnly := true
	for _, owner := range owners {
		if owner.Kind != "Node" {
			nodeOwnedOnly = false
			break
		}
	}
	if nodeOwnedOnly {
		return podSkippedStatic, "static pod"
	}

	return podEvictable, ""
}

// Drain cordons a node and then deletes every evictable pod assigned to it.
//
// The workflow is strictly sequential. A cordon failure aborts immediately:
// no pods are enumerated and the report carries cordoned=false. An
// enumeration failure also aborts, with the node deliberately left cordoned.
// Eviction failures do not: each evictable pod is attempted independently and
// per-pod failures accumulate in the report's Errors list, so a completed
// drain may still contain errors.
func Drain(ctx context.Context, client kubernetes.Interface, nodeName string, ignoreDaemonSets bool) (*DrainReport, error) {
	report := &DrainReport{
		Node:    nodeName,
		Evicted: []string{},
		Skipped: []PodOutcome{},
		Errors:  []PodOutcome{},
	}

	if err := Cordon(ctx, client, nodeName); err != nil {
		return report, fmt.Errorf("cordoning node: %s", err)
	}
	report.Cordoned = true

	pods, err := Invoke(func() (*corev1.PodList, error) {
		return client.CoreV1().Pods(metav1.NamespaceAll).List(ctx, metav1.ListOptions{
			FieldSelector: "spec.nodeName=" + nodeName,
		})
	})
	if err != nil {
		return report, fmt.Errorf("listing pods on node: %s", err)
	}

	for i := range pods.Items {
		pod := &pods.Items[i]
		id := pod.Namespace + "/" + pod.Name

		class, reason := classify(pod, ignoreDaemonSets)
		if class != podEvictable {
			report.Skipped = append(report.Skipped, PodOutcome{ID: id, Reason: reason})
			continue
		}

		err := Run(func() error {
			return client.CoreV1().Pods(pod.Namespace).Delete(ctx, pod.Name, metav1.DeleteOptions{})
		})
		if err != nil {
			report.Errors = append(report.Errors, PodOutcome{ID: id, Reason: err.Error()})
		} else {
			report.Evicted = append(report.Evicted, id)
		}
	}

	return report, nil
}
