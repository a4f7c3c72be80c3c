package main

import (
	"calltracker/internal/di"
	"calltracker/internal/providers"
	"calltracker/internal/store/postgres"
	"calltracker/internal/structures"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &structures.CliFlags{}

	root := &cobra.Command{
		Use:           "calltracker",
		Short:         "Voter roster search and call tracking service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config/config.yml", "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "log to the console at debug level")

	root.AddCommand(newServeCmd(flags), newImportCmd(flags), newMigrateCmd(flags))
	return root
}

func newServeCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := di.InitApp(flags)
			return err
		},
	}
}

func newImportCmd(flags *structures.CliFlags) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Normalise a roster file and upsert it into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := di.InitRosterJob(flags)
			if err != nil {
				return err
			}
			res, err := job.Run(cmd.Context(), file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "read %d, unique %d, upserted %d\n", res.Read, res.Unique, res.Upserted)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "roster JSON file, optionally zstd-compressed")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newMigrateCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := providers.NewConfigProvider(flags)
			if err != nil {
				return err
			}
			if conf.Store.Driver != "postgres" {
				return errors.New("migrate needs store.driver: postgres")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			pool, err := postgres.NewPool(ctx, conf.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			versions, err := postgres.Migrate(ctx, pool)
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied migrations %v\n", versions)
			return nil
		},
	}
}
