package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lootdex/lootdex/pkg/dataset"
	"github.com/lootdex/lootdex/pkg/pipeline"
)

// extractOpts holds the command-line flags for the extract command.
type extractOpts struct {
	prefabs    string // prefab export root
	gamedata   string // auxiliary JSON item directory
	out        string // output directory
	workers    int    // extraction pool size
	refresh    bool   // bypass cached parse results
	noCache    bool   // disable the parse cache entirely
	noProgress bool   // disable the progress bar
	configFile string // explicit config file path
}

// extractCommand creates the extract command.
func (c *CLI) extractCommand() *cobra.Command {
	var opts extractOpts

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract item and recipe data into a unified dataset",
		Long: `Extract walks a prefab export tree for item description files, parses item
and recipe records from them, loads the auxiliary JSON item source, merges
both sets by item id, resolves recipe ingredient references, and writes
items.json and summary.json to the output directory.

Examples:
  lootdex extract --prefabs ./export/prefabs --out ./dist
  lootdex extract --prefabs ./export/prefabs --gamedata ./export/gamedata
  lootdex extract --prefabs ./export/prefabs --refresh --workers 16`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExtract(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.prefabs, "prefabs", "p", "", "prefab export root directory")
	cmd.Flags().StringVarP(&opts.gamedata, "gamedata", "g", "", "auxiliary JSON item directory")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory (default \"out\")")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, fmt.Sprintf("extraction workers (default %d)", pipeline.DefaultWorkers))
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached parse results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the parse cache")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "disable the progress bar")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default ~/.config/lootdex/config.toml)")

	return cmd
}

// mergeConfig fills blank flags from the config file. Flags always win.
func (o *extractOpts) mergeConfig(cfg *Config) {
	if o.prefabs == "" {
		o.prefabs = cfg.Prefabs
	}
	if o.gamedata == "" {
		o.gamedata = cfg.Gamedata
	}
	if o.out == "" {
		o.out = cfg.Out
	}
	if o.workers == 0 {
		o.workers = cfg.Workers
	}
}

func (c *CLI) runExtract(ctx context.Context, opts extractOpts) error {
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}
	opts.mergeConfig(cfg)

	if opts.prefabs == "" {
		return fmt.Errorf("no prefab directory given (use --prefabs or set it in the config file)")
	}
	if opts.out == "" {
		opts.out = "out"
	}

	runner, err := c.newRunner(cfg, opts.noCache)
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		PrefabDir:   opts.prefabs,
		GamedataDir: opts.gamedata,
		OutDir:      opts.out,
		Workers:     opts.workers,
		Refresh:     opts.refresh,
		Logger:      c.Logger,
	}

	track := newProgress(c.Logger)

	var result *pipeline.Result
	if !opts.noProgress && isatty.IsTerminal(os.Stderr.Fd()) {
		result, err = c.runWithProgress(ctx, runner, pipeOpts)
	} else {
		result, err = runner.Execute(ctx, pipeOpts)
	}
	if err != nil {
		return err
	}
	track.done(fmt.Sprintf("Run %s complete", result.RunID))

	printSuccess("Extracted %d items", result.Summary.TotalItems)
	printStats(result.Summary.TotalItems, result.Stats.Recipes,
		result.Stats.CacheHits, result.Stats.PrefabFiles)
	if result.Stats.FailedFiles > 0 {
		printWarning("%d files could not be read", result.Stats.FailedFiles)
	}
	printFile(filepath.Join(opts.out, dataset.ItemsFile))
	printFile(filepath.Join(opts.out, dataset.SummaryFile))
	return nil
}

// runWithProgress executes the pipeline behind a bubbletea progress bar.
// The pipeline runs in a goroutine and reports per-file progress through
// the extractor's OnFile hook.
func (c *CLI) runWithProgress(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(newExtractModel(), tea.WithOutput(os.Stderr), tea.WithContext(ctx))

	opts.OnFile = func(done, total int) {
		prog.Send(fileMsg{done: done, total: total})
	}

	var (
		result *pipeline.Result
		runErr error
	)
	go func() {
		result, runErr = runner.Execute(ctx, opts)
		prog.Send(finishedMsg{})
	}()

	model, err := prog.Run()
	if err != nil {
		return nil, err
	}
	if m, ok := model.(extractModel); ok && m.aborted {
		return nil, context.Canceled
	}
	return result, runErr
}
