// Package provision drives the end-to-end bootstrap sequence against
// one catalog-server container: locate, extract credentials, resolve
// the port, authenticate, run the management steps, emit the
// verification notebook.
package provision

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dataloomhq/polaris-bootstrap/internal/config"
	"github.com/dataloomhq/polaris-bootstrap/internal/credentials"
	"github.com/dataloomhq/polaris-bootstrap/internal/docker"
	"github.com/dataloomhq/polaris-bootstrap/internal/model"
	"github.com/dataloomhq/polaris-bootstrap/internal/notebook"
	"github.com/dataloomhq/polaris-bootstrap/internal/polaris"
	"github.com/dataloomhq/polaris-bootstrap/internal/storage"
)

// Port the catalog server listens on inside the container
const catalogAPIPort = 8181

// Pipeline wires the docker lookups, the management API client and
// the notebook emitter together.
type Pipeline struct {
	cfg     *config.Config
	docker  docker.DockerClient
	log     *logrus.Logger
	history *storage.History
	outDir  string
}

// NewPipeline creates a pipeline. history may be nil when run
// recording is disabled.
func NewPipeline(cfg *config.Config, dc docker.DockerClient, log *logrus.Logger, history *storage.History) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		docker:  dc,
		log:     log,
		history: history,
		outDir:  notebook.DefaultDir,
	}
}

// Run executes the full sequence. The returned error covers
// prerequisite failures only; individual step failures land in the
// report and do not stop the sequence.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:   uuid.NewString(),
		Catalog: p.cfg.CatalogName,
		Started: time.Now(),
	}

	cont, err := p.docker.FindCatalogContainer(ctx, p.cfg.ComposeProject)
	if err != nil {
		return nil, fmt.Errorf("failed to locate catalog container: %w", err)
	}
	report.ContainerID = cont.ID
	p.log.WithFields(logrus.Fields{
		"id":   cont.ID,
		"name": cont.Name,
	}).Info("catalog container located")

	rootCreds, err := p.rootCredentials(ctx, cont.ID)
	if err != nil {
		return nil, err
	}

	port := p.cfg.APIPort
	if port == "" {
		port, err = p.docker.HostPort(ctx, cont.ID, catalogAPIPort)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve api port: %w", err)
		}
	}
	p.log.WithField("port", port).Info("management api port resolved")

	client := polaris.NewClient(fmt.Sprintf("http://%s:%s", p.cfg.APIHost, port), p.log)

	if err := client.Authenticate(ctx, rootCreds); err != nil {
		return nil, fmt.Errorf("failed to obtain auth token: %w", err)
	}
	p.log.Info("root token obtained")

	principalCreds := p.runSteps(ctx, client, report)

	path, err := notebook.Write(p.outDir, notebook.Data{
		CatalogName:  p.cfg.CatalogName,
		ClientID:     principalCreds.ClientID,
		ClientSecret: principalCreds.ClientSecret,
	})
	if err != nil {
		p.log.WithError(err).Warn("failed to write verification notebook")
	} else {
		report.NotebookPath = path
		p.log.WithField("path", path).Info("verification notebook written")
	}

	report.Finished = time.Now()
	p.record(report)

	return report, nil
}

// rootCredentials returns the configured pair when one was supplied,
// otherwise recovers the pair from the container log.
func (p *Pipeline) rootCredentials(ctx context.Context, containerID string) (model.Credentials, error) {
	if p.cfg.HasCredentials() {
		p.log.Info("using configured credentials, skipping log extraction")
		return model.Credentials{
			ClientID:     p.cfg.ClientID,
			ClientSecret: p.cfg.ClientSecret,
		}, nil
	}

	lines, err := p.docker.CollectLogs(ctx, containerID)
	if err != nil {
		return model.Credentials{}, fmt.Errorf("failed to collect container logs: %w", err)
	}

	creds, err := credentials.FromLogs(lines)
	if err != nil {
		return model.Credentials{}, fmt.Errorf("failed to extract root credentials: %w", err)
	}

	p.log.WithField("client_id", creds.ClientID).Info("root credentials extracted")
	return creds, nil
}

// runSteps issues the seven management calls in order. A failing step
// is recorded and the sequence continues with the next one.
func (p *Pipeline) runSteps(ctx context.Context, client *polaris.Client, report *Report) model.Credentials {
	var principalCreds model.Credentials
	cfg := p.cfg

	steps := []struct {
		name   string
		method string
		path   string
		call   func(ctx context.Context) (int, error)
	}{
		{
			name:   "create catalog",
			method: http.MethodPost,
			path:   "/catalogs",
			call: func(ctx context.Context) (int, error) {
				return client.CreateCatalog(ctx, cfg.CatalogName, cfg.DefaultBaseLocation)
			},
		},
		{
			name:   "create principal",
			method: http.MethodPost,
			path:   "/principals",
			call: func(ctx context.Context) (int, error) {
				creds, status, err := client.CreatePrincipal(ctx, cfg.PrincipalName)
				if err == nil {
					principalCreds = creds
				}
				return status, err
			},
		},
		{
			name:   "create principal role",
			method: http.MethodPost,
			path:   "/principal-roles",
			call: func(ctx context.Context) (int, error) {
				return client.CreatePrincipalRole(ctx, cfg.PrincipalRoleName)
			},
		},
		{
			name:   "assign role to principal",
			method: http.MethodPut,
			path:   fmt.Sprintf("/principals/%s/principal-roles", cfg.PrincipalName),
			call: func(ctx context.Context) (int, error) {
				return client.AssignRoleToPrincipal(ctx, cfg.PrincipalName, cfg.PrincipalRoleName)
			},
		},
		{
			name:   "create catalog role",
			method: http.MethodPost,
			path:   fmt.Sprintf("/catalogs/%s/catalog-roles", cfg.CatalogName),
			call: func(ctx context.Context) (int, error) {
				return client.CreateCatalogRole(ctx, cfg.CatalogName, cfg.CatalogRoleName)
			},
		},
		{
			name:   "assign catalog role to principal role",
			method: http.MethodPut,
			path:   fmt.Sprintf("/principal-roles/%s/catalog-roles/%s", cfg.PrincipalRoleName, cfg.CatalogName),
			call: func(ctx context.Context) (int, error) {
				return client.AssignCatalogRoleToPrincipalRole(ctx, cfg.PrincipalRoleName, cfg.CatalogName, cfg.CatalogRoleName)
			},
		},
		{
			name:   "grant catalog privilege",
			method: http.MethodPut,
			path:   fmt.Sprintf("/catalogs/%s/catalog-roles/%s/grants", cfg.CatalogName, cfg.CatalogRoleName),
			call: func(ctx context.Context) (int, error) {
				return client.GrantPrivilege(ctx, cfg.CatalogName, cfg.CatalogRoleName, polaris.PrivilegeCatalogManageContent)
			},
		},
	}

	for i, step := range steps {
		status, err := step.call(ctx)

		result := StepResult{
			Seq:    i + 1,
			Name:   step.name,
			Method: step.method,
			Path:   step.path,
			Status: status,
			Err:    err,
		}
		report.Steps = append(report.Steps, result)

		entry := p.log.WithFields(logrus.Fields{
			"step":   result.Seq,
			"name":   step.name,
			"status": status,
		})
		switch {
		case result.OK():
			entry.Info("step completed")
		case err != nil:
			entry.WithError(err).Error("step failed")
		default:
			entry.Warn("step returned unexpected status")
		}
	}

	return principalCreds
}

// record persists the run outcome. History failures only warn so a
// broken local database never fails a provisioning run.
func (p *Pipeline) record(report *Report) {
	if p.history == nil {
		return
	}

	steps := make([]storage.StepRecord, 0, len(report.Steps))
	for _, s := range report.Steps {
		rec := storage.StepRecord{
			Seq:    s.Seq,
			Name:   s.Name,
			Method: s.Method,
			Path:   s.Path,
			Status: s.Status,
		}
		if s.Err != nil {
			rec.Error = s.Err.Error()
		}
		steps = append(steps, rec)
	}

	err := p.history.RecordRun(storage.RunRecord{
		ID:          report.RunID,
		StartedAt:   report.Started,
		FinishedAt:  report.Finished,
		Catalog:     report.Catalog,
		ContainerID: report.ContainerID,
		StepsOK:     report.OKCount(),
		StepsFailed: report.FailedCount(),
	}, steps)
	if err != nil {
		p.log.WithError(err).Warn("failed to record run history")
	}
}
