package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/creastat/stream-gateway/pkg/logger"
	"github.com/creastat/stream-gateway/pkg/types"
)

func TestResolve_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		sources []types.VendorSource
		want    string
		wantErr bool
	}{
		{
			name: "primary wins when complete",
			sources: []types.VendorSource{
				{Name: "primary", BaseURL: "https://a", Token: "t1"},
				{Name: "alias", BaseURL: "https://b", Token: "t2"},
			},
			want: "primary",
		},
		{
			name: "partial primary is skipped",
			sources: []types.VendorSource{
				{Name: "primary", BaseURL: "https://a"},
				{Name: "alias", BaseURL: "https://b", Token: "t2"},
			},
			want: "alias",
		},
		{
			name: "token without URL is skipped",
			sources: []types.VendorSource{
				{Name: "primary", Token: "t1"},
				{Name: "alias"},
				{Name: "tertiary", BaseURL: "https://c", Token: "t3"},
			},
			want: "tertiary",
		},
		{
			name: "nothing resolves",
			sources: []types.VendorSource{
				{Name: "primary"},
				{Name: "alias", BaseURL: "https://b"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.sources, logger.Nop())
			vendor, err := c.Resolve()
			if tt.wantErr {
				if !errors.Is(err, ErrNoVendor) {
					t.Errorf("expected ErrNoVendor, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if vendor.Name != tt.want {
				t.Errorf("resolved %q, want %q", vendor.Name, tt.want)
			}
		})
	}
}

func TestOpenStream_RequestShape(t *testing.T) {
	var got openai.ChatCompletionRequest
	var gotAuth, gotAccept string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode upstream body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := New(nil, logger.Nop())
	vendor := types.VendorSource{Name: "primary", BaseURL: ts.URL, Token: "secret"}

	req := openai.ChatCompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []openai.ChatCompletionMessage{{Role: "user", Content: "hi"}},
		Stream:   false,
	}

	resp, err := c.OpenStream(context.Background(), vendor, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if !got.Stream {
		t.Error("stream must be forced true on the wire")
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("authorization header = %q", gotAuth)
	}
	if gotAccept != "text/event-stream" {
		t.Errorf("accept header = %q", gotAccept)
	}
}
