// internal/docker/logs.go
package docker

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/dataloomhq/polaris-bootstrap/internal/model"
)

// Layout for the timestamp prefix docker puts on every log line.
// Docker emits nanosecond precision; the prefix is truncated to
// microseconds before parsing.
const logTimestampLayout = "2006-01-02T15:04:05.000000Z"

// CollectLogs fetches the full combined stdout/stderr output of a
// container, one LogLine per line, in the order docker returns them.
func (c *Client) CollectLogs(ctx context.Context, id string) ([]model.LogLine, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	options := container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Timestamps: true,
	}

	reader, err := c.cli.ContainerLogs(ctx, id, options)
	if err != nil {
		return nil, fmt.Errorf("failed to read container logs: %w", err)
	}
	defer reader.Close()

	// Demultiplex both streams into the same buffer so lines keep
	// the order they arrived in
	var buf bytes.Buffer
	if _, err := stdcopy.StdCopy(&buf, &buf, reader); err != nil {
		return nil, fmt.Errorf("failed to demux log stream: %w", err)
	}

	return parseLogLines(&buf)
}

// parseLogLines splits a demuxed log stream into LogLines
func parseLogLines(r io.Reader) ([]model.LogLine, error) {
	var lines []model.LogLine
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long log lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines = append(lines, model.LogLine{
			Timestamp: extractTimestamp(raw),
			Raw:       raw,
		})
	}

	if err := scanner.Err(); err != nil {
		return lines, err
	}
	return lines, nil
}

// extractTimestamp parses the timestamp prefix of a log line. Lines
// with a malformed prefix get the zero time so they sort as oldest;
// this never fails.
func extractTimestamp(line string) time.Time {
	if len(line) < 26 {
		return time.Time{}
	}
	ts, err := time.Parse(logTimestampLayout, line[:26]+"Z")
	if err != nil {
		return time.Time{}
	}
	return ts
}
