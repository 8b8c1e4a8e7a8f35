// internal/docker/ports.go
package docker

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"

	"github.com/dataloomhq/polaris-bootstrap/internal/errdefs"
)

// HostPort resolves the host port a container-internal TCP port is
// published on, using the first binding when a port is published on
// several. A port with no published binding is a not-found error.
func (c *Client) HostPort(ctx context.Context, id string, containerPort int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	inspect, err := c.cli.ContainerInspect(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to inspect container %s: %w", id, err)
	}

	port := nat.Port(fmt.Sprintf("%d/tcp", containerPort))
	if inspect.NetworkSettings == nil {
		return "", errdefs.NewNotFound("port mapping", string(port))
	}

	return lookupHostPort(inspect.NetworkSettings.Ports, port)
}

// lookupHostPort picks the first binding published for port
func lookupHostPort(ports nat.PortMap, port nat.Port) (string, error) {
	bindings := ports[port]
	if len(bindings) == 0 {
		return "", errdefs.NewNotFound("port mapping", string(port))
	}
	return bindings[0].HostPort, nil
}
