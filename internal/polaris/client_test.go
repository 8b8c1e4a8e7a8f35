package polaris

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/dataloomhq/polaris-bootstrap/internal/model"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestAuthenticate(t *testing.T) {
	creds := model.Credentials{ClientID: "abc", ClientSecret: "xyz"}

	t.Run("success", func(t *testing.T) {
		var gotPath, gotAuth, gotContentType string
		var gotForm map[string]string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			if err := r.ParseForm(); err != nil {
				t.Errorf("ParseForm() error = %v", err)
			}
			gotForm = map[string]string{
				"grant_type":    r.PostFormValue("grant_type"),
				"client_id":     r.PostFormValue("client_id"),
				"client_secret": r.PostFormValue("client_secret"),
				"scope":         r.PostFormValue("scope"),
			}
			fmt.Fprint(w, `{"access_token":"tok-123"}`)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, testLogger())
		if err := c.Authenticate(context.Background(), creds); err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}

		if c.token != "tok-123" {
			t.Errorf("token = %q, want %q", c.token, "tok-123")
		}
		if gotPath != "/api/catalog/v1/oauth/tokens" {
			t.Errorf("path = %q, want %q", gotPath, "/api/catalog/v1/oauth/tokens")
		}
		// The raw pair joined by a colon, not basic auth
		if gotAuth != "Bearer abc:xyz" {
			t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer abc:xyz")
		}
		if gotContentType != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", gotContentType)
		}

		wantForm := map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     "abc",
			"client_secret": "xyz",
			"scope":         "PRINCIPAL_ROLE:ALL",
		}
		for k, want := range wantForm {
			if gotForm[k] != want {
				t.Errorf("form[%s] = %q, want %q", k, gotForm[k], want)
			}
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"invalid_client"}`)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, testLogger())
		err := c.Authenticate(context.Background(), creds)
		if err == nil {
			t.Fatal("Authenticate() error = nil, want error")
		}
		if !strings.Contains(err.Error(), "401") {
			t.Errorf("error %q does not mention status", err)
		}
		if c.token != "" {
			t.Errorf("token = %q, want empty after failure", c.token)
		}
	})

	t.Run("missing access_token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{}`)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, testLogger())
		if err := c.Authenticate(context.Background(), creds); err == nil {
			t.Fatal("Authenticate() error = nil, want error")
		}
	})
}

func TestTruncateBody(t *testing.T) {
	long := strings.Repeat("x", 600)
	got := truncateBody([]byte(long))
	if len(got) != 512+3 {
		t.Errorf("len = %d, want %d", len(got), 512+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated body should end with ellipsis: %q", got[len(got)-8:])
	}

	if got := truncateBody([]byte("  short  ")); got != "short" {
		t.Errorf("truncateBody() = %q, want %q", got, "short")
	}
}
