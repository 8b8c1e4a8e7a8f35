// internal/docker/interface.go
package docker

import (
	"context"

	"github.com/dataloomhq/polaris-bootstrap/internal/model"
)

// DockerClient interface enables mocking in tests
type DockerClient interface {
	FindCatalogContainer(ctx context.Context, project string) (model.Container, error)
	CollectLogs(ctx context.Context, id string) ([]model.LogLine, error)
	HostPort(ctx context.Context, id string, containerPort int) (string, error)
	Close() error
}

// Ensure Client implements the interface
var _ DockerClient = (*Client)(nil)
