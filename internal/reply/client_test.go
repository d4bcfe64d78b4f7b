// internal/reply/client_test.go
package reply

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(baseURL string) *Client {
	cfg := DefaultClientConfig()
	cfg.BaseURL = baseURL
	cfg.APIKey = "test-key"
	cfg.RetryMax = 0
	cfg.Timeout = 5 * time.Second
	return NewClient(cfg, nil)
}

func TestClientGenerate(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": `"Great point, totally agree!"`}},
			},
		})
	}))
	defer server.Close()

	draft, err := testClient(server.URL).Generate(context.Background(), Prompt{
		System:    "You write short replies.",
		User:      "Post: hello",
		CharLimit: 280,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if draft != "Great point, totally agree!" {
		t.Errorf("draft = %q, expected sanitized content", draft)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Errorf("unexpected request messages: %+v", captured.Messages)
	}
}

func TestClientGenerateClampsToLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "0123456789 overflow"}},
			},
		})
	}))
	defer server.Close()

	draft, err := testClient(server.URL).Generate(context.Background(), Prompt{CharLimit: 10})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len([]rune(draft)) > 10 {
		t.Errorf("draft exceeds limit: %q", draft)
	}
}

func TestClientGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"http error status",
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			},
		},
		{
			"api error payload",
			func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error": map[string]string{"message": "invalid model"},
				})
			},
		},
		{
			"empty choices",
			func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			if _, err := testClient(server.URL).Generate(context.Background(), Prompt{}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
