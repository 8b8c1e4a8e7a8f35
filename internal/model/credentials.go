// internal/model/credentials.go
package model

// Credentials is a client id / client secret pair, either the root
// pair recovered from container logs or the pair returned for a
// newly created principal.
type Credentials struct {
	ClientID     string
	ClientSecret string
}
