package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"people-directory/application/serviceimpl"
	"people-directory/domain/repositories"
	"people-directory/infrastructure/dataset"
	"people-directory/infrastructure/kvstore"
	"people-directory/pkg/config"
	"people-directory/pkg/logger"
)

type storeOpener func(ctx context.Context, cfg *config.Config) (repositories.KeyValueStore, error)

type rootOptions struct {
	driver  string
	key     string
	dataset string
	timeout time.Duration
}

func newRootCmd(open storeOpener) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "directoryctl",
		Short:         "Inspect and maintain the stored people collection",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.driver, "driver", "", "store driver (overrides STORE_DRIVER)")
	root.PersistentFlags().StringVar(&opts.key, "key", "", "store key (overrides STORE_KEY)")
	root.PersistentFlags().StringVar(&opts.dataset, "dataset", "", "dataset location (overrides DATASET_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall timeout")

	root.AddCommand(newSeedCmd(open, opts), newDumpCmd(open, opts), newResetCmd(open, opts))
	return root
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if o.driver != "" {
		cfg.Store.Driver = o.driver
	}
	if o.key != "" {
		cfg.Store.Key = o.key
	}
	if o.dataset != "" {
		cfg.Dataset.URL = o.dataset
	}
	if err := logger.Init(cfg.Log.Dir, cfg.Log.Console); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// withRepository opens the configured store for the duration of fn.
func withRepository(cmd *cobra.Command, open storeOpener, opts *rootOptions, fn func(ctx context.Context, cfg *config.Config, repo repositories.PersonRepository) error) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	store, err := open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	defer store.Close()

	return fn(ctx, cfg, kvstore.NewPersonRepository(store, cfg.Store.Key))
}

func newSeedCmd(open storeOpener, opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store the dataset when nothing is stored yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, open, opts, func(ctx context.Context, cfg *config.Config, repo repositories.PersonRepository) error {
				if force {
					if err := repo.Clear(ctx); err != nil {
						return fmt.Errorf("clear %q: %w", cfg.Store.Key, err)
					}
				}

				source, err := dataset.NewSource(cfg.Dataset.URL, cfg.Minio)
				if err != nil {
					return err
				}

				svc := serviceimpl.NewDirectoryService(repo, source, time.Now)
				if err := svc.Bootstrap(ctx); err != nil {
					return err
				}
				select {
				case <-svc.Seeded():
				case <-ctx.Done():
					return ctx.Err()
				}

				_, found, err := repo.Load(ctx)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("seeding from %s failed, see the seed log", source.Location())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d records stored under %q\n", len(svc.ListRecords("")), cfg.Store.Key)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "delete the stored collection first")
	return cmd
}

func newDumpCmd(open storeOpener, opts *rootOptions) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the stored collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, open, opts, func(ctx context.Context, cfg *config.Config, repo repositories.PersonRepository) error {
				raw, found, err := repo.Raw(ctx)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("nothing stored under %q", cfg.Store.Key)
				}
				if pretty {
					var buf bytes.Buffer
					if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
						return fmt.Errorf("stored value is not valid JSON: %w", err)
					}
					raw = buf.String()
				}
				fmt.Fprintln(cmd.OutOrStdout(), raw)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON")
	return cmd
}

func newResetCmd(open storeOpener, opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored collection so the next start seeds again",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete without --yes")
			}
			return withRepository(cmd, open, opts, func(ctx context.Context, cfg *config.Config, repo repositories.PersonRepository) error {
				if err := repo.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", cfg.Store.Key)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
