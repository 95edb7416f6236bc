package version

import (
	"strings"
	"testing"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()

	expectedComponents := []string{
		BinaryName,
		"Version:",
		"Git commit:",
		"Built:",
		"Go version:",
		"Platform:",
	}

	for _, component := range expectedComponents {
		if !strings.Contains(info, component) {
			t.Errorf("Version info should contain '%s', but got:\n%s", component, info)
		}
	}

	if Version == "" {
		t.Error("Version should not be empty")
	}

	if !strings.Contains(Platform, "/") {
		t.Errorf("Platform should contain '/', but got: %s", Platform)
	}
}

func TestConstants(t *testing.T) {
	if BinaryName != "proxasaurus-mcp-server" {
		t.Errorf("Expected BinaryName to be 'proxasaurus-mcp-server', got: %s", BinaryName)
	}

	if GoVersion == "" {
		t.Error("GoVersion should not be empty")
	}
}
