package kubernetes

import (
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/kube"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// resolveHandles validates the resolver and resolves the optional context
// parameter into a set of backend client handles.
func resolveHandles(client interface{}, params map[string]interface{}) (*kube.HandleSet, error) {
	resolver, err := toolset.ValidateKubeResolver(client)
	if err != nil {
		return nil, err
	}
	return resolver.HandlesFor(paramutil.ExtractOptionalString(params, paramutil.ParamContext))
}

// parseLabels turns a 'k=v,k2=v2' string into a label map. Malformed pairs
// are skipped.
func parseLabels(raw string) map[string]string {
	labels := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if found && key != "" {
			labels[key] = value
		}
	}
	return labels
}

// formatTime renders a resource timestamp, empty for unset times.
func formatTime(t metav1.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
