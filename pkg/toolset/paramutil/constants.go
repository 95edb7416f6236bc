package paramutil

import "errors"

// Format constants
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Parameter name constants
const (
	ParamClusterName = "cluster_name"
	ParamNodeName    = "node_name"
	ParamVMID        = "vmid"
	ParamAction      = "action"
	ParamContext     = "context"
	ParamNamespace   = "namespace"
	ParamName        = "name"
	ParamFormat      = "format"
)

// Error definitions
var (
	ErrMissingParameter = errors.New("missing required parameter")
	ErrInvalidParameter = errors.New("invalid parameter value")
	ErrInvalidFormat    = errors.New("invalid output format")
)
