package pegaprox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, "test-token"), server
}

func TestDoSuccess(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Expected bearer token header, got '%s'", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"clusters": [{"name": "pve-main"}]}`))
	}))
	defer server.Close()

	data, err := client.Get(context.Background(), "/api/clusters")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	body, ok := data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", data)
	}
	if _, ok := body["clusters"]; !ok {
		t.Errorf("Expected 'clusters' key in result: %v", body)
	}
}

func TestDoEmptyBody(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "204 no content", status: http.StatusNoContent, body: ""},
		{name: "200 empty body", status: http.StatusOK, body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			data, err := client.Delete(context.Background(), "/api/alerts/a1")
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			body, ok := data.(map[string]interface{})
			if !ok {
				t.Fatalf("Expected empty map result, got %T (%v)", data, data)
			}
			if len(body) != 0 {
				t.Errorf("Expected empty map, got %v", body)
			}
		})
	}
}

func TestDoNonJSONBody(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain text response"))
	}))
	defer server.Close()

	data, err := client.Get(context.Background(), "/api/raw")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if data != "plain text response" {
		t.Errorf("Expected raw text fallback, got %v", data)
	}
}

func TestDoAPIErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantReason string
	}{
		{
			name:       "message field preferred",
			status:     http.StatusBadRequest,
			body:       `{"message": "invalid vmid", "error": "bad request"}`,
			wantReason: "PegaProx API error 400: invalid vmid",
		},
		{
			name:       "error field fallback",
			status:     http.StatusNotFound,
			body:       `{"error": "cluster not found"}`,
			wantReason: "PegaProx API error 404: cluster not found",
		},
		{
			name:       "raw body fallback",
			status:     http.StatusInternalServerError,
			body:       "something broke",
			wantReason: "PegaProx API error 500: something broke",
		},
		{
			name:       "status text fallback",
			status:     http.StatusForbidden,
			body:       "",
			wantReason: "PegaProx API error 403: Forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := client.Get(context.Background(), "/api/test")
			if err == nil {
				t.Fatal("Expected error")
			}
			if err.Error() != tt.wantReason {
				t.Errorf("Expected reason '%s', got '%s'", tt.wantReason, err.Error())
			}
		})
	}
}

func TestDo503Offline(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantReason string
	}{
		{
			name:       "offline with cluster name",
			body:       `{"offline": true, "cluster": "pve-lab"}`,
			wantReason: "cluster 'pve-lab' is offline or unreachable",
		},
		{
			name:       "offline without cluster name",
			body:       `{"offline": true}`,
			wantReason: "cluster 'unknown' is offline or unreachable",
		},
		{
			name:       "plain 503",
			body:       "gateway unavailable",
			wantReason: "PegaProx API returned 503: Service Unavailable",
		},
		{
			name:       "503 with offline false",
			body:       `{"offline": false, "cluster": "pve-lab"}`,
			wantReason: "PegaProx API returned 503: Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := client.Get(context.Background(), "/api/clusters/pve-lab/nodes")
			if err == nil {
				t.Fatal("Expected error")
			}
			if err.Error() != tt.wantReason {
				t.Errorf("Expected reason '%s', got '%s'", tt.wantReason, err.Error())
			}
		})
	}
}

func TestDoConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(server.URL, "test-token")
	server.Close()

	_, err := client.Get(context.Background(), "/api/clusters")
	if err == nil {
		t.Fatal("Expected error")
	}
	want := "cannot connect to PegaProx at " + client.BaseURL()
	if err.Error() != want {
		t.Errorf("Expected reason '%s', got '%s'", want, err.Error())
	}
}

func TestDoTimeout(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()
	client.httpClient.Timeout = 20 * time.Millisecond

	_, err := client.Get(context.Background(), "/api/summary")
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "request to PegaProx timed out") {
		t.Errorf("Expected timeout reason, got '%s'", err.Error())
	}
	if !strings.Contains(err.Error(), "/api/summary") {
		t.Errorf("Expected URL in timeout reason, got '%s'", err.Error())
	}
}

func TestDoQueryAndBody(t *testing.T) {
	var gotQuery url.Values
	var gotBody map[string]interface{}

	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	query := url.Values{}
	query.Set("cluster", "pve-main")
	_, err := client.Post(context.Background(), "/api/alerts",
		WithQuery(query),
		WithJSONBody(map[string]interface{}{"name": "cpu-high"}),
	)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	if gotQuery.Get("cluster") != "pve-main" {
		t.Errorf("Expected query parameter, got %v", gotQuery)
	}
	if gotBody["name"] != "cpu-high" {
		t.Errorf("Expected JSON body, got %v", gotBody)
	}
}
