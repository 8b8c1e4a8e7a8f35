package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dataloomhq/polaris-bootstrap/internal/config"
	"github.com/dataloomhq/polaris-bootstrap/internal/credentials"
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Print the root credentials from the container log",
	Long: `Locate the catalog container and print the bootstrap root
credential pair extracted from its log, without provisioning
anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client, err := newDockerClient(cfg)
		if err != nil {
			color.Red("✗ Failed to connect to Docker: %v", err)
			return err
		}
		defer client.Close()

		ctx := cmd.Context()

		cont, err := client.FindCatalogContainer(ctx, cfg.ComposeProject)
		if err != nil {
			return err
		}

		lines, err := client.CollectLogs(ctx, cont.ID)
		if err != nil {
			return err
		}

		creds, err := credentials.FromLogs(lines)
		if err != nil {
			return err
		}

		color.Cyan("Container: %s (%s)", cont.Name, cont.ID)
		fmt.Printf("client id:     %s\n", creds.ClientID)
		fmt.Printf("client secret: %s\n", creds.ClientSecret)

		return nil
	},
}
