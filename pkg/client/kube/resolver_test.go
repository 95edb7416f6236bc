package kube

import (
	"os"
	"path/filepath"
	"testing"

	"k8s.io/client-go/dynamic"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
)

const testKubeconfig = `apiVersion: v1
kind: Config
current-context: prod
clusters:
- cluster:
    server: https://prod.example.com:6443
  name: prod-cluster
- cluster:
    server: https://staging.example.com:6443
  name: staging-cluster
contexts:
- context:
    cluster: prod-cluster
    user: prod-admin
  name: prod
- context:
    cluster: staging-cluster
    user: staging-admin
    namespace: qa
  name: staging
users:
- name: prod-admin
  user:
    token: prod-token
- name: staging-admin
  user:
    token: staging-token
`

func writeKubeconfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte(testKubeconfig), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestListContexts(t *testing.T) {
	resolver := NewResolver(writeKubeconfig(t))

	contexts, err := resolver.ListContexts()
	if err != nil {
		t.Fatalf("ListContexts() error = %v", err)
	}

	if len(contexts) != 2 {
		t.Fatalf("Expected 2 contexts, got %d", len(contexts))
	}

	prod := contexts[0]
	if prod.Name != "prod" || prod.Cluster != "prod-cluster" || prod.User != "prod-admin" {
		t.Errorf("Unexpected prod context: %+v", prod)
	}
	if prod.Namespace != "default" {
		t.Errorf("Expected default namespace fallback, got '%s'", prod.Namespace)
	}
	if !prod.Active {
		t.Error("Expected prod to be the active context")
	}

	staging := contexts[1]
	if staging.Namespace != "qa" {
		t.Errorf("Expected namespace 'qa', got '%s'", staging.Namespace)
	}
	if staging.Active {
		t.Error("Expected staging to be inactive")
	}
}

func TestListContextsMissingConfig(t *testing.T) {
	resolver := NewResolver(filepath.Join(t.TempDir(), "does-not-exist"))

	if _, err := resolver.ListContexts(); err == nil {
		t.Error("Expected error for missing kubeconfig")
	}
}

func TestHandlesFor(t *testing.T) {
	tests := []struct {
		name        string
		contextName string
		wantHost    string
	}{
		{name: "active context", contextName: "", wantHost: "https://prod.example.com:6443"},
		{name: "named context", contextName: "staging", wantHost: "https://staging.example.com:6443"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotHost string
			resolver := NewResolver(writeKubeconfig(t),
				WithClientsetFactory(func(config *rest.Config) (kubernetes.Interface, error) {
					gotHost = config.Host
					return fake.NewSimpleClientset(), nil
				}),
			)

			handles, err := resolver.HandlesFor(tt.contextName)
			if err != nil {
				t.Fatalf("HandlesFor() error = %v", err)
			}
			if gotHost != "" {
				t.Error("Clientset must not be constructed before first use")
			}

			if _, err := handles.CoreV1(); err != nil {
				t.Fatalf("CoreV1() error = %v", err)
			}
			if gotHost != tt.wantHost {
				t.Errorf("Expected host '%s', got '%s'", tt.wantHost, gotHost)
			}
		})
	}
}

func TestHandlesForUnknownContext(t *testing.T) {
	resolver := NewResolver(writeKubeconfig(t))

	if _, err := resolver.HandlesFor("missing"); err == nil {
		t.Error("Expected error for unknown context")
	}
}

func TestHandleSetMemoizesClients(t *testing.T) {
	clientsetCalls := 0
	dynamicCalls := 0
	resolver := NewResolver(writeKubeconfig(t),
		WithClientsetFactory(func(config *rest.Config) (kubernetes.Interface, error) {
			clientsetCalls++
			return fake.NewSimpleClientset(), nil
		}),
		WithDynamicFactory(func(config *rest.Config) (dynamic.Interface, error) {
			dynamicCalls++
			return dynamicfake.NewSimpleDynamicClient(scheme.Scheme), nil
		}),
	)

	handles, err := resolver.HandlesFor("")
	if err != nil {
		t.Fatalf("HandlesFor() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := handles.CoreV1(); err != nil {
			t.Fatal(err)
		}
		if _, err := handles.AppsV1(); err != nil {
			t.Fatal(err)
		}
	}
	if clientsetCalls != 1 {
		t.Errorf("Expected clientset built once, got %d", clientsetCalls)
	}

	if dynamicCalls != 0 {
		t.Error("Dynamic client must not be built until requested")
	}
	for i := 0; i < 2; i++ {
		if _, err := handles.Dynamic(); err != nil {
			t.Fatal(err)
		}
	}
	if dynamicCalls != 1 {
		t.Errorf("Expected dynamic client built once, got %d", dynamicCalls)
	}
}
