package polaris

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestManagementSteps(t *testing.T) {
	tests := []struct {
		name       string
		invoke     func(ctx context.Context, c *Client) (int, error)
		wantMethod string
		wantPath   string
		wantBody   string
	}{
		{
			name: "create catalog",
			invoke: func(ctx context.Context, c *Client) (int, error) {
				return c.CreateCatalog(ctx, "my_catalog", "file:///data/polaris")
			},
			wantMethod: http.MethodPost,
			wantPath:   "/catalogs",
			wantBody: `{"catalog":{"name":"my_catalog","type":"INTERNAL","readOnly":false,
				"properties":{"default-base-location":"file:///data/polaris"},
				"storageConfigInfo":{"storageType":"FILE","allowedLocations":["file:///data/polaris"]}}}`,
		},
		{
			name: "create principal",
			invoke: func(ctx context.Context, c *Client) (int, error) {
				_, status, err := c.CreatePrincipal(ctx, "polarisuser")
				return status, err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/principals",
			wantBody:   `{"name":"polarisuser","type":"user"}`,
		},
		{
			name: "create principal role",
			invoke: func(ctx context.Context, c *Client) (int, error) {
				return c.CreatePrincipalRole(ctx, "polarisuser_role")
			},
			wantMethod: http.MethodPost,
			wantPath:   "/principal-roles",
			wantBody:   `{"name":"polarisuser_role"}`,
		},
		{
			name: "assign role to principal",
			invoke: func(ctx context.Context, c *Client) (int, error) {
				return c.AssignRoleToPrincipal(ctx, "polarisuser", "polarisuser_role")
			},
			wantMethod: http.MethodPut,
			wantPath:   "/principals/polarisuser/principal-roles",
			wantBody:   `{"principalRole":{"name":"polarisuser_role"}}`,
		},
		{
			name: "create catalog role",
			invoke: func(ctx context.Context, c *Client) (int, error) {
				return c.CreateCatalogRole(ctx, "my_catalog", "my_catalog_role")
			},
			wantMethod: http.MethodPost,
			wantPath:   "/catalogs/my_catalog/catalog-roles",
			wantBody:   `{"catalogRole":{"name":"my_catalog_role"}}`,
		},
		{
			name: "assign catalog role to principal role",
			invoke: func(ctx context.Context, c *Client) (int, error) {
				return c.AssignCatalogRoleToPrincipalRole(ctx, "polarisuser_role", "my_catalog", "my_catalog_role")
			},
			wantMethod: http.MethodPut,
			wantPath:   "/principal-roles/polarisuser_role/catalog-roles/my_catalog",
			wantBody:   `{"catalogRole":{"name":"my_catalog_role"}}`,
		},
		{
			name: "grant privilege",
			invoke: func(ctx context.Context, c *Client) (int, error) {
				return c.GrantPrivilege(ctx, "my_catalog", "my_catalog_role", PrivilegeCatalogManageContent)
			},
			wantMethod: http.MethodPut,
			wantPath:   "/catalogs/my_catalog/catalog-roles/my_catalog_role/grants",
			wantBody:   `{"grant":{"type":"catalog","privilege":"CATALOG_MANAGE_CONTENT"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				requests  int
				gotMethod string
				gotPath   string
				gotAuth   string
				gotType   string
				gotBody   []byte
			)

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests++
				gotMethod = r.Method
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				gotType = r.Header.Get("Content-Type")
				gotBody, _ = io.ReadAll(r.Body)
				w.WriteHeader(http.StatusCreated)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, testLogger())
			c.token = "test-token"

			status, err := tt.invoke(context.Background(), c)
			if err != nil {
				t.Fatalf("step error = %v", err)
			}
			if status != http.StatusCreated {
				t.Errorf("status = %d, want %d", status, http.StatusCreated)
			}
			if requests != 1 {
				t.Fatalf("issued %d requests, want exactly 1", requests)
			}
			if gotMethod != tt.wantMethod {
				t.Errorf("method = %s, want %s", gotMethod, tt.wantMethod)
			}
			if want := "/api/management/v1" + tt.wantPath; gotPath != want {
				t.Errorf("path = %s, want %s", gotPath, want)
			}
			if gotAuth != "Bearer test-token" {
				t.Errorf("Authorization = %q", gotAuth)
			}
			if gotType != "application/json" {
				t.Errorf("Content-Type = %q", gotType)
			}

			var got, want any
			if err := json.Unmarshal(gotBody, &got); err != nil {
				t.Fatalf("request body is not JSON: %v", err)
			}
			if err := json.Unmarshal([]byte(tt.wantBody), &want); err != nil {
				t.Fatalf("bad wantBody in test: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("body = %s, want %s", gotBody, tt.wantBody)
			}
		})
	}
}

func TestCreatePrincipalCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"principal":{"name":"polarisuser"},"credentials":{"clientId":"pid","clientSecret":"psecret"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	c.token = "test-token"

	creds, status, err := c.CreatePrincipal(context.Background(), "polarisuser")
	if err != nil {
		t.Fatalf("CreatePrincipal() error = %v", err)
	}
	if status != http.StatusCreated {
		t.Errorf("status = %d, want 201", status)
	}
	if creds.ClientID != "pid" || creds.ClientSecret != "psecret" {
		t.Errorf("credentials = %+v, want pid/psecret", creds)
	}
}

func TestStepFailureReturnsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"error":{"message":"already exists"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	c.token = "test-token"

	status, err := c.CreateCatalog(context.Background(), "my_catalog", "file:///data/polaris")
	if status != http.StatusConflict {
		t.Errorf("status = %d, want %d", status, http.StatusConflict)
	}
	if err == nil {
		t.Fatal("error = nil, want apiError")
	}
	if !strings.Contains(err.Error(), "409") || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error %q should carry status and body", err)
	}
}
