package httpclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pawpal-client/internal/platform/httpclient"
)

func TestDo_ReturnsResponseForAnyStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"duplicate"}`))
	}))
	defer ts.Close()

	c, err := httpclient.New(ts.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	resp, err := c.Do(context.Background(), http.MethodPost, "/auth/register", nil, map[string]string{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("expected response, got error: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	if resp.OK() {
		t.Fatal("409 must not be OK")
	}
}

func TestDo_TransportErrorWhenNoResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // server caído: el request no recibe respuesta

	c, err := httpclient.New(ts.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = c.Do(context.Background(), http.MethodGet, "/pets/all", nil, nil)
	if err == nil {
		t.Fatal("expected error against closed server")
	}

	var te *httpclient.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
}

func TestResponse_IsArray(t *testing.T) {
	cases := []struct {
		body string
		want bool
	}{
		{`[]`, true},
		{`  [{"id":1}]`, true},
		{`{}`, false},
		{`"text"`, false},
		{``, false},
	}

	for _, tc := range cases {
		r := &httpclient.Response{StatusCode: 200, Body: []byte(tc.body)}
		if got := r.IsArray(); got != tc.want {
			t.Errorf("IsArray(%q) = %v, want %v", tc.body, got, tc.want)
		}
	}
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	if _, err := httpclient.New("", time.Second); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if _, err := httpclient.New("not a url", time.Second); err == nil {
		t.Fatal("expected error for invalid base url")
	}
}
