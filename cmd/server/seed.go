package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	hospitalStore "beautrip/internal/adapters/storage/hospital"
	treatmentStore "beautrip/internal/adapters/storage/treatment"
	"beautrip/internal/application/orchestrators"
	"beautrip/internal/config"
)

func newSeedCmd(load func() (config.Config, error)) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML catalog of hospitals and treatments into the local database",
		Long: "seed upserts hospitals and treatments by id. Without --file the bundled demo " +
			"catalog is used. The hosted Postgres catalog is never written.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			data := orchestrators.DefaultCatalogSeed()
			if file != "" {
				if data, err = os.ReadFile(file); err != nil {
					return fmt.Errorf("read seed file: %w", err)
				}
			}

			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := orchestrators.ExecuteSeedCatalog(cmd.Context(), data, orchestrators.SeedCatalogDeps{
				Hospitals:  hospitalStore.NewSQLiteStore(db),
				Treatments: treatmentStore.NewSQLiteStore(db),
			})
			if err != nil {
				return err
			}
			slog.Info("catalog_seeded", "hospitals", res.Hospitals, "treatments", res.Treatments, "file", file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog file (default: bundled demo catalog)")
	return cmd
}
