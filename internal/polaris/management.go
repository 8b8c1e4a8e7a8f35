// internal/polaris/management.go
package polaris

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dataloomhq/polaris-bootstrap/internal/model"
)

// PrivilegeCatalogManageContent is the privilege granted to the
// catalog role when no other is requested.
const PrivilegeCatalogManageContent = "CATALOG_MANAGE_CONTENT"

// grantTypeCatalog is the grant resource type for catalog-level grants
const grantTypeCatalog = "catalog"

// CreateCatalog creates an internal catalog rooted at baseLocation.
func (c *Client) CreateCatalog(ctx context.Context, name, baseLocation string) (int, error) {
	payload := createCatalogRequest{
		Catalog: catalogSpec{
			Name:     name,
			Type:     "INTERNAL",
			ReadOnly: false,
			Properties: map[string]string{
				"default-base-location": baseLocation,
			},
			StorageConfigInfo: storageConfigInfo{
				StorageType:      "FILE",
				AllowedLocations: []string{baseLocation},
			},
		},
	}
	return c.do(ctx, http.MethodPost, "/catalogs", payload, nil)
}

// CreatePrincipal creates a service-account principal and returns the
// credentials the server generated for it.
func (c *Client) CreatePrincipal(ctx context.Context, name string) (model.Credentials, int, error) {
	payload := createPrincipalRequest{Name: name, Type: "user"}

	var out createPrincipalResponse
	status, err := c.do(ctx, http.MethodPost, "/principals", payload, &out)
	if err != nil {
		return model.Credentials{}, status, err
	}

	return model.Credentials{
		ClientID:     out.Credentials.ClientID,
		ClientSecret: out.Credentials.ClientSecret,
	}, status, nil
}

// CreatePrincipalRole creates a principal role.
func (c *Client) CreatePrincipalRole(ctx context.Context, name string) (int, error) {
	payload := createPrincipalRoleRequest{Name: name}
	return c.do(ctx, http.MethodPost, "/principal-roles", payload, nil)
}

// AssignRoleToPrincipal attaches a principal role to a principal.
func (c *Client) AssignRoleToPrincipal(ctx context.Context, principal, role string) (int, error) {
	payload := principalRoleRef{PrincipalRole: namedRef{Name: role}}
	path := fmt.Sprintf("/principals/%s/principal-roles", principal)
	return c.do(ctx, http.MethodPut, path, payload, nil)
}

// CreateCatalogRole creates a role scoped to one catalog.
func (c *Client) CreateCatalogRole(ctx context.Context, catalog, role string) (int, error) {
	payload := catalogRoleRef{CatalogRole: namedRef{Name: role}}
	path := fmt.Sprintf("/catalogs/%s/catalog-roles", catalog)
	return c.do(ctx, http.MethodPost, path, payload, nil)
}

// AssignCatalogRoleToPrincipalRole attaches a catalog role to a
// principal role for the given catalog.
func (c *Client) AssignCatalogRoleToPrincipalRole(ctx context.Context, principalRole, catalog, catalogRole string) (int, error) {
	payload := catalogRoleRef{CatalogRole: namedRef{Name: catalogRole}}
	path := fmt.Sprintf("/principal-roles/%s/catalog-roles/%s", principalRole, catalog)
	return c.do(ctx, http.MethodPut, path, payload, nil)
}

// GrantPrivilege grants a catalog-level privilege to a catalog role.
func (c *Client) GrantPrivilege(ctx context.Context, catalog, catalogRole, privilege string) (int, error) {
	payload := grantRequest{
		Grant: grantSpec{
			Type:      grantTypeCatalog,
			Privilege: privilege,
		},
	}
	path := fmt.Sprintf("/catalogs/%s/catalog-roles/%s/grants", catalog, catalogRole)
	return c.do(ctx, http.MethodPut, path, payload, nil)
}
