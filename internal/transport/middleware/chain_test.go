package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func tag(name string, trace *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*trace = append(*trace, name+">")
			next.ServeHTTP(w, r)
			*trace = append(*trace, "<"+name)
		})
	}
}

func TestChain(t *testing.T) {
	tests := []struct {
		name  string
		build func(trace *[]string) Middleware
		want  string
	}{
		{
			name:  "outermost first",
			build: func(tr *[]string) Middleware { return Chain(tag("a", tr), tag("b", tr)) },
			want:  "a> b> handler <b <a",
		},
		{
			name:  "empty",
			build: func(*[]string) Middleware { return Chain() },
			want:  "handler",
		},
		{
			name:  "nil skipped",
			build: func(tr *[]string) Middleware { return Chain(nil, tag("a", tr), nil) },
			want:  "a> handler <a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trace []string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trace = append(trace, "handler")
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			tt.build(&trace)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if got := strings.Join(trace, " "); got != tt.want {
				t.Errorf("trace = %q, want %q", got, tt.want)
			}
			if rec.Code != http.StatusOK {
				t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusTooManyRequests, "rate limit exceeded")

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status %d, got %d", http.StatusTooManyRequests, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"rate limit exceeded"}` {
		t.Errorf("unexpected body %q", body)
	}
}
