// Package kube provides multi-cluster Kubernetes access for the tool
// handlers: kubeconfig context resolution, safe invocation of API calls,
// and the node drain workflow.
package kube

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	appsv1client "k8s.io/client-go/kubernetes/typed/apps/v1"
	batchv1client "k8s.io/client-go/kubernetes/typed/batch/v1"
	corev1client "k8s.io/client-go/kubernetes/typed/core/v1"
	networkingv1client "k8s.io/client-go/kubernetes/typed/networking/v1"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// ClientsetFactory builds a typed clientset from a resolved REST config.
type ClientsetFactory func(*rest.Config) (kubernetes.Interface, error)

// DynamicFactory builds a dynamic client from a resolved REST config.
type DynamicFactory func(*rest.Config) (dynamic.Interface, error)

// Resolver maps kubeconfig context names to backend client handles. The
// client factories are injected at construction time so tests can substitute
// fakes without touching a real cluster.
type Resolver struct {
	kubeconfigPath string
	newClientset   ClientsetFactory
	newDynamic     DynamicFactory
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithClientsetFactory overrides how typed clientsets are constructed.
func WithClientsetFactory(f ClientsetFactory) Option {
	return func(r *Resolver) {
		r.newClientset = f
	}
}

// WithDynamicFactory overrides how dynamic clients are constructed.
func WithDynamicFactory(f DynamicFactory) Option {
	return func(r *Resolver) {
		r.newDynamic = f
	}
}

// NewResolver creates a resolver for the given kubeconfig path. An empty path
// falls back to ~/.kube/config.
func NewResolver(kubeconfigPath string, opts ...Option) *Resolver {
	if kubeconfigPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			kubeconfigPath = filepath.Join(home, ".kube", "config")
		}
	}

	r := &Resolver{
		kubeconfigPath: kubeconfigPath,
		newClientset: func(config *rest.Config) (kubernetes.Interface, error) {
			return kubernetes.NewForConfig(config)
		},
		newDynamic: func(config *rest.Config) (dynamic.Interface, error) {
			return dynamic.NewForConfig(config)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// KubeconfigPath returns the kubeconfig file the resolver reads from.
func (r *Resolver) KubeconfigPath() string {
	return r.kubeconfigPath
}

// HandlesFor resolves a context name to a set of backend client handles.
// An empty context name selects the kubeconfig's current context; a named
// context is used as an override without mutating the active default.
func (r *Resolver) HandlesFor(contextName string) (*HandleSet, error) {
	overrides := &clientcmd.ConfigOverrides{}
	if contextName != "" {
		overrides.CurrentContext = contextName
	}

	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		&clientcmd.ClientConfigLoadingRules{ExplicitPath: r.kubeconfigPath},
		overrides,
	).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig context %q: %v", contextName, err)
	}

	return &HandleSet{
		config:       config,
		newClientset: r.newClientset,
		newDynamic:   r.newDynamic,
	}, nil
}

// ContextInfo describes one kubeconfig context.
type ContextInfo struct {
	Name      string `json:"name"`
	Cluster   string `json:"cluster"`
	User      string `json:"user"`
	Namespace string `json:"namespace"`
	Active    bool   `json:"active"`
}

// ListContexts enumerates the contexts configured in the kubeconfig file,
// sorted by name. A missing or malformed kubeconfig is reported as an error,
// never a panic.
func (r *Resolver) ListContexts() ([]ContextInfo, error) {
	raw, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		&clientcmd.ClientConfigLoadingRules{ExplicitPath: r.kubeconfigPath},
		&clientcmd.ConfigOverrides{},
	).RawConfig()
	if err != nil {
		return nil, err
	}

	contexts := make([]ContextInfo, 0, len(raw.Contexts))
	for name, ctx := range raw.Contexts {
		namespace := ctx.Namespace
		if namespace == "" {
			namespace = "default"
		}
		contexts = append(contexts, ContextInfo{
			Name:      name,
			Cluster:   ctx.Cluster,
			User:      ctx.AuthInfo,
			Namespace: namespace,
			Active:    name == raw.CurrentContext,
		})
	}
	sort.Slice(contexts, func(i, j int) bool { return contexts[i].Name < contexts[j].Name })

	return contexts, nil
}

// HandleSet bundles the backend clients for one resolved context. Clients are
// constructed on first use, so a call that only touches, say, core resources
// never pays for the dynamic client. A HandleSet is created fresh per tool
// invocation and is not safe for concurrent use.
type HandleSet struct {
	config       *rest.Config
	newClientset ClientsetFactory
	newDynamic   DynamicFactory

	clientset     kubernetes.Interface
	dynamicClient dynamic.Interface
}

// Clientset returns the typed clientset, constructing it on first use.
func (h *HandleSet) Clientset() (kubernetes.Interface, error) {
	if h.clientset == nil {
		clientset, err := h.newClientset(h.config)
		if err != nil {
			return nil, fmt.Errorf("failed to create clientset: %v", err)
		}
		h.clientset = clientset
	}
	return h.clientset, nil
}

// CoreV1 returns the core/v1 sub-handle.
func (h *HandleSet) CoreV1() (corev1client.CoreV1Interface, error) {
	clientset, err := h.Clientset()
	if err != nil {
		return nil, err
	}
	return clientset.CoreV1(), nil
}

// AppsV1 returns the apps/v1 sub-handle.
func (h *HandleSet) AppsV1() (appsv1client.AppsV1Interface, error) {
	clientset, err := h.Clientset()
	if err != nil {
		return nil, err
	}
	return clientset.AppsV1(), nil
}

// BatchV1 returns the batch/v1 sub-handle.
func (h *HandleSet) BatchV1() (batchv1client.BatchV1Interface, error) {
	clientset, err := h.Clientset()
	if err != nil {
		return nil, err
	}
	return clientset.BatchV1(), nil
}

// NetworkingV1 returns the networking.k8s.io/v1 sub-handle.
func (h *HandleSet) NetworkingV1() (networkingv1client.NetworkingV1Interface, error) {
	clientset, err := h.Clientset()
	if err != nil {
		return nil, err
	}
	return clientset.NetworkingV1(), nil
}

// Dynamic returns the dynamic client, used for custom resources such as the
// metrics.k8s.io API.
func (h *HandleSet) Dynamic() (dynamic.Interface, error) {
	if h.dynamicClient == nil {
		dynamicClient, err := h.newDynamic(h.config)
		if err != nil {
			return nil, fmt.Errorf("failed to create dynamic client: %v", err)
		}
		h.dynamicClient = dynamicClient
	}
	return h.dynamicClient, nil
}
