package toolset

import (
	"errors"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/kube"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/pegaprox"
)

// Error definitions
var (
	ErrPegaProxNotConfigured   = errors.New("PegaProx client not configured, set the PegaProx base URL and API token to use this tool")
	ErrKubernetesNotConfigured = errors.New("Kubernetes client not configured, set a kubeconfig path to use this tool")
)

// CombinedClient holds the PegaProx client and the Kubernetes resolver.
type CombinedClient struct {
	PegaProx *pegaprox.Client
	Kube     *kube.Resolver
}

// ValidatePegaProxClient validates and returns a configured PegaProx client.
// Returns ErrPegaProxNotConfigured if the client is nil.
func ValidatePegaProxClient(client interface{}) (*pegaprox.Client, error) {
	if combined, ok := client.(*CombinedClient); ok {
		if combined.PegaProx == nil {
			return nil, ErrPegaProxNotConfigured
		}
		return combined.PegaProx, nil
	}

	pegaproxClient, ok := client.(*pegaprox.Client)
	if !ok || pegaproxClient == nil {
		return nil, ErrPegaProxNotConfigured
	}
	return pegaproxClient, nil
}

// ValidateKubeResolver validates and returns a configured Kubernetes resolver.
// Returns ErrKubernetesNotConfigured if the resolver is nil.
func ValidateKubeResolver(client interface{}) (*kube.Resolver, error) {
	if combined, ok := client.(*CombinedClient); ok {
		if combined.Kube == nil {
			return nil, ErrKubernetesNotConfigured
		}
		return combined.Kube, nil
	}

	resolver, ok := client.(*kube.Resolver)
	if !ok || resolver == nil {
		return nil, ErrKubernetesNotConfigured
	}
	return resolver, nil
}
