package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dataloomhq/polaris-bootstrap/internal/config"
	"github.com/dataloomhq/polaris-bootstrap/internal/docker"
	"github.com/dataloomhq/polaris-bootstrap/internal/provision"
	"github.com/dataloomhq/polaris-bootstrap/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Provision the catalog container",
	Long: `Run the full provisioning sequence against the catalog container:
extract the root credentials, obtain a management token, create the
catalog, principal and roles, grant the catalog privilege and write
the verification notebook.

Individual provisioning steps continue on failure; the final report
shows the outcome of every step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration (Viper resolves behind the scenes)
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := newLogger(cfg.LogLevel)

		client, err := newDockerClient(cfg)
		if err != nil {
			color.Red("✗ Failed to connect to Docker: %v", err)
			return err
		}
		defer client.Close()

		// Run history is best effort only
		history, err := storage.NewHistory()
		if err != nil {
			log.WithError(err).Warn("run history unavailable")
			history = nil
		} else {
			defer history.Close()
		}

		color.Cyan("Provisioning catalog %q...", cfg.CatalogName)

		pipeline := provision.NewPipeline(cfg, client, log, history)
		report, err := pipeline.Run(cmd.Context())
		if err != nil {
			color.Red("✗ %v", err)
			return err
		}

		fmt.Print(report.Summary())

		if report.FailedCount() > 0 {
			return fmt.Errorf("%d of %d steps failed", report.FailedCount(), len(report.Steps))
		}

		color.Green("✓ Catalog %q ready", cfg.CatalogName)
		return nil
	},
}

// newDockerClient connects to the docker daemon using the configured
// host and TLS settings
func newDockerClient(cfg *config.Config) (*docker.Client, error) {
	dockerCfg := docker.DefaultConfig()
	dockerCfg.Host = cfg.Docker.Host
	dockerCfg.TLSVerify = cfg.Docker.TLSVerify
	dockerCfg.CertPath = cfg.Docker.CertPath

	return docker.NewClient(dockerCfg)
}

func init() {
	// Define flags
	runCmd.Flags().String("catalog", "", "Catalog name to create")
	runCmd.Flags().String("base-location", "", "Default base location for the catalog")
	runCmd.Flags().String("principal", "", "Principal name to create")
	runCmd.Flags().String("principal-role", "", "Principal role name")
	runCmd.Flags().String("catalog-role", "", "Catalog role name")
	runCmd.Flags().String("project", "", "Compose project whose container to provision")
	runCmd.Flags().String("api-host", "", "Catalog API host")
	runCmd.Flags().String("api-port", "", "Catalog API port (resolved from the container when empty)")

	// Bind flags to viper
	viper.BindPFlag("catalog_name", runCmd.Flags().Lookup("catalog"))
	viper.BindPFlag("default_base_location", runCmd.Flags().Lookup("base-location"))
	viper.BindPFlag("principal_name", runCmd.Flags().Lookup("principal"))
	viper.BindPFlag("principal_role_name", runCmd.Flags().Lookup("principal-role"))
	viper.BindPFlag("catalog_role_name", runCmd.Flags().Lookup("catalog-role"))
	viper.BindPFlag("compose_project", runCmd.Flags().Lookup("project"))
	viper.BindPFlag("api_host", runCmd.Flags().Lookup("api-host"))
	viper.BindPFlag("api_port", runCmd.Flags().Lookup("api-port"))
}
