package kube

import (
	"context"
	"errors"
	"strings"
	"testing"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

func testPod(namespace, name, nodeName string, owners ...metav1.OwnerReference) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Namespace:       namespace,
			Name:            name,
			OwnerReferences: owners,
		},
		Spec: corev1.PodSpec{NodeName: nodeName},
	}
}

func ownerRef(kind string) metav1.OwnerReference {
	return metav1.OwnerReference{APIVersion: "apps/v1", Kind: kind, Name: "owner"}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name             string
		pod              *corev1.Pod
		ignoreDaemonSets bool
		wantClass        podClass
		wantReason       string
	}{
		{
			name:             "daemonset pod skipped when ignored",
			pod:              testPod("ns", "a", "n1", ownerRef("DaemonSet")),
			ignoreDaemonSets: true,
			wantClass:        podSkippedDaemonSet,
			wantReason:       "DaemonSet",
		},
		{
			name:             "daemonset pod evictable when not ignored",
			pod:              testPod("ns", "a", "n1", ownerRef("DaemonSet")),
			ignoreDaemonSets: false,
			wantClass:        podEvictable,
		},
		{
			name:             "no owners is static",
			pod:              testPod("ns", "b", "n1"),
			ignoreDaemonSets: true,
			wantClass:        podSkippedStatic,
			wantReason:       "static pod",
		},
		{
			name:             "node-owned only is static",
			pod:              testPod("ns", "c", "n1", ownerRef("Node")),
			ignoreDaemonSets: true,
			wantClass:        podSkippedStatic,
			wantReason:       "static pod",
		},
		{
			name:             "deployment-owned is evictable",
			pod:              testPod("ns", "d", "n1", ownerRef("ReplicaSet")),
			ignoreDaemonSets: true,
			wantClass:        podEvictable,
		},
		{
			name:             "mixed node and controller owners is evictable",
			pod:              testPod("ns", "e", "n1", ownerRef("Node"), ownerRef("ReplicaSet")),
			ignoreDaemonSets: true,
			wantClass:        podEvictable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, reason := classify(tt.pod, tt.ignoreDaemonSets)
			if class != tt.wantClass {
				t.Errorf("classify() class = %v, want %v", class, tt.wantClass)
			}
			if reason != tt.wantReason {
				t.Errorf("classify() reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestDrainPartialFailure(t *testing.T) {
	// Node n1 hosts: two DaemonSet pods, one static pod, and two
	// Deployment pods of which one fails to delete.
	client := fake.NewSimpleClientset(
		testPod("ns", "a", "n1", ownerRef("DaemonSet")),
		testPod("ns", "b", "n1", ownerRef("DaemonSet")),
		testPod("ns", "c", "n1"),
		testPod("ns", "d", "n1", ownerRef("ReplicaSet")),
		testPod("ns", "e", "n1", ownerRef("ReplicaSet")),
		&corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "n1"}},
	)
	client.PrependReactor("delete", "pods", func(action k8stesting.Action) (bool, runtime.Object, error) {
		if action.(k8stesting.DeleteAction).GetName() == "e" {
			return true, nil, &apierrors.StatusError{ErrStatus: metav1.Status{
				Reason:  metav1.StatusReasonTooManyRequests,
				Message: "pod disruption budget exceeded",
			}}
		}
		return false, nil, nil
	})

	report, err := Drain(context.Background(), client, "n1", true)
	if err != nil {
		t.Fatalf("Drain() error = %v", err)
	}

	if !report.Cordoned {
		t.Error("Expected cordoned=true")
	}
	if report.Node != "n1" {
		t.Errorf("Expected node 'n1', got '%s'", report.Node)
	}

	if len(report.Evicted) != 1 || report.Evicted[0] != "ns/d" {
		t.Errorf("Expected evicted=[ns/d], got %v", report.Evicted)
	}

	wantSkipped := map[string]string{
		"ns/a": "DaemonSet",
		"ns/b": "DaemonSet",
		"ns/c": "static pod",
	}
	if len(report.Skipped) != len(wantSkipped) {
		t.Fatalf("Expected %d skipped pods, got %v", len(wantSkipped), report.Skipped)
	}
	for _, outcome := range report.Skipped {
		if reason, ok := wantSkipped[outcome.ID]; !ok || reason != outcome.Reason {
			t.Errorf("Unexpected skipped entry %+v", outcome)
		}
	}

	if len(report.Errors) != 1 {
		t.Fatalf("Expected 1 eviction error, got %v", report.Errors)
	}
	if report.Errors[0].ID != "ns/e" || report.Errors[0].Reason != "pod disruption budget exceeded" {
		t.Errorf("Unexpected error entry %+v", report.Errors[0])
	}

	// The cordon patch must have landed on the node.
	node, getErr := client.CoreV1().Nodes().Get(context.Background(), "n1", metav1.GetOptions{})
	if getErr != nil {
		t.Fatal(getErr)
	}
	if !node.Spec.Unschedulable {
		t.Error("Expected node to be unschedulable after drain")
	}
}

func TestDrainCordonFailureAborts(t *testing.T) {
	client := fake.NewSimpleClientset(
		testPod("ns", "d", "n1", ownerRef("ReplicaSet")),
	)
	client.PrependReactor("patch", "nodes", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("connection refused")
	})

	listed := false
	client.PrependReactor("list", "pods", func(action k8stesting.Action) (bool, runtime.Object, error) {
		listed = true
		return false, nil, nil
	})

	report, err := Drain(context.Background(), client, "n1", true)
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "cordoning node") || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Unexpected cordon failure reason: %v", err)
	}

	if listed {
		t.Error("Pods must not be enumerated when cordon fails")
	}
	if report.Cordoned {
		t.Error("Expected cordoned=false")
	}
	if len(report.Evicted) != 0 || len(report.Skipped) != 0 || len(report.Errors) != 0 {
		t.Errorf("Expected empty report after cordon failure, got %+v", report)
	}
}

func TestDrainEnumerateFailureLeavesNodeCordoned(t *testing.T) {
	client := fake.NewSimpleClientset(
		&corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "n1"}},
	)
	client.PrependReactor("list", "pods", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("etcdserver: request timed out")
	})

	report, err := Drain(context.Background(), client, "n1", true)
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "listing pods on node") {
		t.Errorf("Unexpected enumerate failure reason: %v", err)
	}

	if !report.Cordoned {
		t.Error("Expected cordoned=true: the node stays cordoned on enumeration failure")
	}

	node, getErr := client.CoreV1().Nodes().Get(context.Background(), "n1", metav1.GetOptions{})
	if getErr != nil {
		t.Fatal(getErr)
	}
	if !node.Spec.Unschedulable {
		t.Error("Node must remain cordoned: no rollback on enumeration failure")
	}
}

func TestDrainKeepsDaemonSetPodsWhenNotIgnored(t *testing.T) {
	client := fake.NewSimpleClientset(
		testPod("ns", "a", "n1", ownerRef("DaemonSet")),
		&corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "n1"}},
	)

	report, err := Drain(context.Background(), client, "n1", false)
	if err != nil {
		t.Fatalf("Drain() error = %v", err)
	}

	if len(report.Evicted) != 1 || report.Evicted[0] != "ns/a" {
		t.Errorf("Expected DaemonSet pod evicted when ignoreDaemonSets=false, got %v", report.Evicted)
	}
}

func TestCordonUncordon(t *testing.T) {
	client := fake.NewSimpleClientset(
		&corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "n1"}},
	)
	ctx := context.Background()

	if err := Cordon(ctx, client, "n1"); err != nil {
		t.Fatalf("Cordon() error = %v", err)
	}
	node, _ := client.CoreV1().Nodes().Get(ctx, "n1", metav1.GetOptions{})
	if !node.Spec.Unschedulable {
		t.Error("Expected node unschedulable after Cordon")
	}

	if err := Uncordon(ctx, client, "n1"); err != nil {
		t.Fatalf("Uncordon() error = %v", err)
	}
	node, _ = client.CoreV1().Nodes().Get(ctx, "n1", metav1.GetOptions{})
	if node.Spec.Unschedulable {
		t.Error("Expected node schedulable after Uncordon")
	}
}
