// internal/polaris/types.go
package polaris

// Wire shapes for the management API. Only the fields this tool sends
// or reads are modeled.

type createCatalogRequest struct {
	Catalog catalogSpec `json:"catalog"`
}

type catalogSpec struct {
	Name              string            `json:"name"`
	Type              string            `json:"type"`
	ReadOnly          bool              `json:"readOnly"`
	Properties        map[string]string `json:"properties"`
	StorageConfigInfo storageConfigInfo `json:"storageConfigInfo"`
}

type storageConfigInfo struct {
	StorageType      string   `json:"storageType"`
	AllowedLocations []string `json:"allowedLocations"`
}

type createPrincipalRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type createPrincipalResponse struct {
	Credentials principalCredentials `json:"credentials"`
}

type principalCredentials struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

type createPrincipalRoleRequest struct {
	Name string `json:"name"`
}

type namedRef struct {
	Name string `json:"name"`
}

type principalRoleRef struct {
	PrincipalRole namedRef `json:"principalRole"`
}

type catalogRoleRef struct {
	CatalogRole namedRef `json:"catalogRole"`
}

type grantRequest struct {
	Grant grantSpec `json:"grant"`
}

type grantSpec struct {
	Type      string `json:"type"`
	Privilege string `json:"privilege"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}
