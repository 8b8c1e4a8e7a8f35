// internal/docker/locator.go
package docker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/dataloomhq/polaris-bootstrap/internal/errdefs"
	"github.com/dataloomhq/polaris-bootstrap/internal/model"
)

const (
	// Label set by docker compose on every container it manages
	composeProjectLabel = "com.docker.compose.project"

	// Substring the catalog-server container name must contain
	containerNameFilter = "polaris"
)

// FindCatalogContainer returns the first running catalog-server
// container. Candidates must carry the compose project label, contain
// "polaris" in their name and be running; a non-empty project narrows
// the label filter to that compose project.
func (c *Client) FindCatalogContainer(ctx context.Context, project string) (model.Container, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	f := filters.NewArgs()
	f.Add("label", composeProjectLabel)
	f.Add("name", containerNameFilter)
	f.Add("status", "running")
	if project != "" {
		f.Add("label", composeProjectLabel+"="+project)
	}

	containers, err := c.cli.ContainerList(ctx, container.ListOptions{
		Filters: f,
	})
	if err != nil {
		return model.Container{}, fmt.Errorf("failed to list containers: %w", err)
	}
	if len(containers) == 0 {
		return model.Container{}, errdefs.NewNotFound("container", containerNameFilter)
	}

	cont := containers[0]

	// Strip the "/" prefix from the container name if present
	name := cont.Names[0]
	if strings.HasPrefix(name, "/") {
		name = name[1:]
	}

	ports := make([]model.Port, 0, len(cont.Ports))
	for _, p := range cont.Ports {
		ports = append(ports, model.Port{
			Private: int(p.PrivatePort),
			Public:  int(p.PublicPort),
			Type:    p.Type,
		})
	}

	return model.Container{
		ID:      cont.ID[:12], // Short ID
		Name:    name,
		Image:   cont.Image,
		Status:  cont.Status,
		State:   cont.State,
		Created: time.Unix(cont.Created, 0),
		Ports:   ports,
	}, nil
}
