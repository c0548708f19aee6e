package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lootdex/lootdex/pkg/dataset"
)

// publishOpts holds the command-line flags for the publish command.
type publishOpts struct {
	items      string // path to a generated items.json
	uri        string // MongoDB connection URI
	database   string // target database
	collection string // target collection
	configFile string // explicit config file path
}

// publishCommand creates the publish command.
func (c *CLI) publishCommand() *cobra.Command {
	var opts publishOpts

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a generated dataset to MongoDB",
		Long: `Publish replaces the contents of a MongoDB collection with the records
from a previously generated items.json.

Examples:
  lootdex publish --items ./dist/items.json --uri mongodb://localhost:27017
  lootdex publish --items ./dist/items.json --database loot --collection items`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPublish(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.items, "items", "i", filepath.Join("out", dataset.ItemsFile), "path to items.json")
	cmd.Flags().StringVar(&opts.uri, "uri", "", "MongoDB connection URI")
	cmd.Flags().StringVar(&opts.database, "database", "", "target database (default \"lootdex\")")
	cmd.Flags().StringVar(&opts.collection, "collection", "", "target collection (default \"items\")")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default ~/.config/lootdex/config.toml)")

	return cmd
}

func (c *CLI) runPublish(ctx context.Context, opts publishOpts) error {
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}
	if opts.uri == "" {
		opts.uri = cfg.Mongo.URI
	}
	if opts.database == "" {
		opts.database = cfg.Mongo.Database
	}
	if opts.collection == "" {
		opts.collection = cfg.Mongo.Collection
	}
	if opts.uri == "" {
		return fmt.Errorf("no MongoDB URI given (use --uri or set it in the config file)")
	}
	if opts.database == "" {
		opts.database = "lootdex"
	}
	if opts.collection == "" {
		opts.collection = "items"
	}

	items, err := dataset.ReadItems(opts.items)
	if err != nil {
		return err
	}

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Publishing %d items to %s.%s", len(items), opts.database, opts.collection))
	spin.Start()

	store, err := dataset.NewMongoStore(ctx, dataset.MongoConfig{
		URI:        opts.uri,
		Database:   opts.database,
		Collection: opts.collection,
	})
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Connection failed: %v", err))
		return err
	}
	defer store.Close(context.Background())

	if err := store.Replace(ctx, items); err != nil {
		spin.StopWithError(fmt.Sprintf("Publish failed: %v", err))
		return err
	}

	spin.StopWithSuccess(fmt.Sprintf("Published %d items", len(items)))
	printDetail("Target: %s.%s", opts.database, opts.collection)
	return nil
}
