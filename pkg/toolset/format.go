package toolset

import (
	"fmt"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/output"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

// FormatData renders an API reply in the requested output format.
func FormatData(data interface{}, format string) (string, error) {
	formatter := output.NewFormatter()
	switch format {
	case paramutil.FormatYAML:
		return formatter.FormatYAML(data)
	case paramutil.FormatJSON:
		return formatter.FormatJSON(data)
	default:
		return "", fmt.Errorf("%w: %s (supported: json, yaml)", paramutil.ErrInvalidFormat, format)
	}
}
