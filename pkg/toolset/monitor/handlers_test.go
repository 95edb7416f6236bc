package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/client/pegaprox"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset"
	"github.com/proxasaurus/proxasaurus-mcp-server/pkg/toolset/paramutil"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]interface{}
}

func newTestClient(t *testing.T, reply interface{}) (*toolset.CombinedClient, *recordedRequest) {
	t.Helper()
	recorded := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.Method = r.Method
		recorded.Path = r.URL.Path
		recorded.Query = r.URL.Query()
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&recorded.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(server.Close)
	return &toolset.CombinedClient{PegaProx: pegaprox.NewClient(server.URL, "test-token")}, recorded
}

func TestListAlertsHandlerFilters(t *testing.T) {
	client, recorded := newTestClient(t, []map[string]interface{}{})

	_, err := listAlertsHandler(context.Background(), client, map[string]interface{}{
		"cluster_name": "prod",
		"active_only":  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded.Path != "/api/alerts" {
		t.Errorf("path = %s", recorded.Path)
	}
	if recorded.Query.Get("cluster") != "prod" || recorded.Query.Get("active") != "true" {
		t.Errorf("query = %v", recorded.Query)
	}
}

func TestCreateAlertHandler(t *testing.T) {
	client, recorded := newTestClient(t, map[string]interface{}{"id": "a1"})

	_, err := createAlertHandler(context.Background(), client, map[string]interface{}{
		"name":         "high-cpu",
		"cluster_name": "prod",
		"metric":       "cpu_usage",
		"threshold":    float64(90),
		"condition":    "gte",
		"severity":     "critical",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded.Method != http.MethodPost {
		t.Errorf("method = %s", recorded.Method)
	}
	if recorded.Body["cluster"] != "prod" {
		t.Errorf("cluster = %v", recorded.Body["cluster"])
	}
	if recorded.Body["threshold"] != float64(90) {
		t.Errorf("threshold = %v", recorded.Body["threshold"])
	}
	if recorded.Body["severity"] != "critical" {
		t.Errorf("severity = %v", recorded.Body["severity"])
	}
}

func TestCreateAlertHandlerValidation(t *testing.T) {
	client, _ := newTestClient(t, map[string]interface{}{})

	base := map[string]interface{}{
		"name":         "high-cpu",
		"cluster_name": "prod",
		"metric":       "cpu_usage",
		"threshold":    float64(90),
	}

	tests := []struct {
		name      string
		condition string
		severity  string
	}{
		{"bad condition", "between", "warning"},
		{"bad severity", "gt", "apocalyptic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := map[string]interface{}{}
			for k, v := range base {
				params[k] = v
			}
			params["condition"] = tt.condition
			params["severity"] = tt.severity
			_, err := createAlertHandler(context.Background(), client, params)
			if !errors.Is(err, paramutil.ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestCreateScheduledTaskHandler(t *testing.T) {
	client, recorded := newTestClient(t, map[string]interface{}{"id": "t1"})

	_, err := createScheduledTaskHandler(context.Background(), client, map[string]interface{}{
		"name":         "nightly-snap",
		"cluster_name": "prod",
		"action":       "snapshot",
		"schedule":     "0 2 * * *",
		"target_type":  "vm",
		"target_id":    "100",
		"enabled":      false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded.Path != "/api/schedules" {
		t.Errorf("path = %s", recorded.Path)
	}
	if recorded.Body["schedule"] != "0 2 * * *" {
		t.Errorf("schedule = %v", recorded.Body["schedule"])
	}
	if recorded.Body["target_id"] != "100" {
		t.Errorf("target_id = %v", recorded.Body["target_id"])
	}
	if recorded.Body["enabled"] != false {
		t.Errorf("enabled = %v, want false", recorded.Body["enabled"])
	}
}

func TestCreateScheduledTaskHandlerInvalidTargetType(t *testing.T) {
	client, _ := newTestClient(t, map[string]interface{}{})

	_, err := createScheduledTaskHandler(context.Background(), client, map[string]interface{}{
		"name":         "nightly-snap",
		"cluster_name": "prod",
		"action":       "snapshot",
		"schedule":     "0 2 * * *",
		"target_type":  "datacenter",
	})
	if !errors.Is(err, paramutil.ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
}

func TestRunScheduledTaskHandler(t *testing.T) {
	client, recorded := newTestClient(t, map[string]interface{}{"status": "started"})

	_, err := runScheduledTaskHandler(context.Background(), client, map[string]interface{}{
		"task_id": "t1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded.Method != http.MethodPost || recorded.Path != "/api/schedules/t1/run" {
		t.Errorf("request = %s %s", recorded.Method, recorded.Path)
	}
}

func TestGetAuditLogHandlerPagination(t *testing.T) {
	client, recorded := newTestClient(t, []map[string]interface{}{})

	_, err := getAuditLogHandler(context.Background(), client, map[string]interface{}{
		"limit":  float64(10),
		"offset": float64(20),
		"user":   "admin",
		"action": "vm.start",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded.Query.Get("limit") != "10" || recorded.Query.Get("offset") != "20" {
		t.Errorf("pagination query = %v", recorded.Query)
	}
	if recorded.Query.Get("user") != "admin" || recorded.Query.Get("action") != "vm.start" {
		t.Errorf("filter query = %v", recorded.Query)
	}
}

func TestGetMigrationHistoryHandler(t *testing.T) {
	client, recorded := newTestClient(t, []map[string]interface{}{})

	_, err := getMigrationHistoryHandler(context.Background(), client, map[string]interface{}{
		"cluster_name": "prod",
		"vmid":         float64(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded.Path != "/api/migrations" {
		t.Errorf("path = %s", recorded.Path)
	}
	if recorded.Query.Get("limit") != "50" {
		t.Errorf("limit = %s, want default 50", recorded.Query.Get("limit"))
	}
	if recorded.Query.Get("cluster") != "prod" || recorded.Query.Get("vmid") != "100" {
		t.Errorf("query = %v", recorded.Query)
	}
}
