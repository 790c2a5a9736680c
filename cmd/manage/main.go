package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"travel_planner/internal/app"
	"travel_planner/internal/config"
	"travel_planner/internal/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "manage",
		Short:        "Maintenance tasks for the travel planner",
		SilenceUsage: true,
	}
	root.AddCommand(
		migrateCmd(),
		resizeImagesCmd(),
		pruneImagesCmd(),
		populateDestinationsCmd(),
	)
	return root
}

// setup loads settings, logging and the database.
func setup() (*config.Settings, *app.Services, error) {
	settings := config.Load()
	logger.Setup(settings)
	if err := config.InitDB(settings); err != nil {
		return nil, nil, err
	}
	return settings, app.NewServices(app.GormRepositories(config.DB), app.ImagesFor(settings)), nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := setup(); err != nil {
				return err
			}
			if err := config.Migrate(config.DB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func resizeImagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resize-images",
		Short: "Shrink every destination image to the configured bounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svcs, err := setup()
			if err != nil {
				return err
			}
			n, err := svcs.Destinations.ResizeAll(cmd.Context())
			if err != nil {
				return err
			}
			logrus.WithField("resized", n).Info("resize-images done")
			fmt.Fprintf(cmd.OutOrStdout(), "resized %d image(s)\n", n)
			return nil
		},
	}
}

func pruneImagesCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "prune-images",
		Short: "Delete image files no destination refers to",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svcs, err := setup()
			if err != nil {
				return err
			}
			orphans, err := svcs.Destinations.PruneImages(cmd.Context(), dryRun)
			for _, p := range orphans {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if err != nil {
				return err
			}
			verb := "removed"
			if dryRun {
				verb = "would remove"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d file(s)\n", verb, len(orphans))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list orphaned files without deleting them")
	return cmd
}

func populateDestinationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "populate-destinations",
		Short: "Create a destination for every trip that has none",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svcs, err := setup()
			if err != nil {
				return err
			}
			created, err := svcs.Destinations.PopulateFromTrips(cmd.Context())
			for _, d := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "created %s (trip %d)\n", d.Slug, *d.TripID)
			}
			return err
		},
	}
}
