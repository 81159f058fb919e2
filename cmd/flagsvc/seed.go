package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/akademate/pkg/feature"
	"github.com/dmitrymomot/akademate/pkg/flagfile"
)

func seedCommand() *cobra.Command {
	var (
		file     string
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert tenants and flags from a YAML seed file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if validate {
				if file == "" {
					return errNoSeedFile
				}
				f, err := flagfile.Load(file)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tenants, %d flags\n", file, len(f.Tenants), len(f.Flags))
				return nil
			}

			log, err := newLogger()
			if err != nil {
				return err
			}
			a, err := newApp(ctx, log)
			if err != nil {
				return err
			}
			defer a.close()

			if file == "" {
				file = a.flagsCfg.SeedFile
			}
			if file == "" {
				return errNoSeedFile
			}
			if a.flagsCfg.Storage == feature.StorageMemory {
				log.WarnContext(ctx, "seeding in-memory storage, nothing is persisted")
			}

			sum, err := flagfile.LoadAndApply(ctx, file, a.registry, a.tenants, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tenants: %d, created: %d, updated: %d, overrides: %d\n",
				sum.Tenants, sum.Created, sum.Updated, sum.Overrides)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed file path (defaults to FLAG_SEED_FILE)")
	cmd.Flags().BoolVar(&validate, "validate", false, "only parse and validate the file")
	return cmd
}
