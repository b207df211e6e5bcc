package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/ecotrace/campaignscan/internal/cache"
	"github.com/ecotrace/campaignscan/internal/discover"
	"github.com/ecotrace/campaignscan/internal/extract"
	"github.com/ecotrace/campaignscan/internal/model"
	"github.com/ecotrace/campaignscan/internal/pipeline"
	"github.com/ecotrace/campaignscan/internal/report"
)

var (
	fullRun      bool
	quiet        bool
	outPath      string
	providerName string
	modelName    string
	pageDelay    time.Duration
	runTimeout   time.Duration
	seedsFile    string
	maxPages     int
	sampleSize   int
	noCache      bool
	noMapper     bool
	httpProxy    string
	httpsProxy   string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full collection pipeline and write the JSON artifact",
	Long: `Run executes the complete pipeline:
- Discover campaign pages (seed list plus best-effort site mapping)
- Extract target companies from each page via the extraction service
- Normalize entities into canonical records with deterministic IDs
- Aggregate statistics and persist a single JSON artifact

By default only the first 5 discovered pages are processed (sample mode).
Pass --full to process the whole list.

Example:
  campaignscan run
  campaignscan run --full --out greenpeace_targets.json
  campaignscan run --provider openai --model gpt-4o-mini`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&fullRun, "full", false, "process every discovered page instead of the first 5")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "hide per-page detail, show a spinner instead")
	runCmd.Flags().StringVar(&outPath, "out", "greenpeace_targets.json", "output artifact path")
	runCmd.Flags().StringVar(&providerName, "provider", "firecrawl", "extraction provider (firecrawl, openai)")
	runCmd.Flags().StringVar(&modelName, "model", "", "model name for the openai provider")
	runCmd.Flags().DurationVar(&pageDelay, "delay", 2*time.Second, "fixed delay between pages")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Minute, "overall run timeout")
	runCmd.Flags().StringVar(&seedsFile, "seeds", "", "file with seed URLs, one per line (replaces the built-in list)")
	runCmd.Flags().IntVar(&maxPages, "max-pages", 50, "cap on the discovered page list")
	runCmd.Flags().IntVar(&sampleSize, "sample-size", 5, "pages processed in sample mode")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction response cache")
	runCmd.Flags().BoolVar(&noMapper, "no-mapper", false, "skip site mapping, use seed URLs only")
	runCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	runCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// buildConfig assembles the run configuration from defaults and flags
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Extractor.Provider = providerName
	cfg.Extractor.Model = modelName
	cfg.Discovery.FullRun = fullRun
	cfg.Discovery.SeedsFile = seedsFile
	cfg.Discovery.MaxURLs = maxPages
	cfg.Discovery.SampleSize = sampleSize
	cfg.Discovery.UseMapper = !noMapper
	cfg.Cache.Enabled = !noCache
	cfg.Pacing.PageDelay = pageDelay
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Output.Path = outPath
	cfg.Output.Verbose = verbose
	return cfg
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := buildConfig()

	// Missing credentials are fatal before any stage runs
	provider, err := extract.NewProvider(cfg)
	if err != nil {
		return err
	}

	store, err := cache.FromConfig(cfg.Cache)
	if err != nil {
		return err
	}

	adapter := extract.NewAdapter(provider, store, cfg.Cache.TTL)

	// Only the managed service can map the site; with another provider
	// discovery degrades to the seed list.
	var mapper discover.Mapper
	if fc, ok := provider.(*extract.FirecrawlProvider); ok {
		mapper = fc.Client()
	}
	discoverer := discover.New(mapper, cfg.Discovery)

	var pageOut io.Writer = os.Stdout
	var spin *spinner.Spinner
	if quiet {
		pageOut = nil
		spin = spinner.New(spinner.CharSets[9], 100*time.Millisecond)
		spin.Start()
		defer spin.Stop()
	}

	p := pipeline.New(cfg, discoverer, adapter, pageOut)
	if spin != nil {
		p.OnPage = func(i, total int, url string) {
			spin.Suffix = fmt.Sprintf(" [%d/%d] %s", i, total, url)
		}
	}

	fmt.Println("🚀 Starting campaign target collection")

	result, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	if spin != nil {
		spin.Stop()
	}

	fmt.Printf("\n✅ Complete: %d company records from %d pages (%d pages failed, %d entities skipped)\n",
		len(result.Records), result.PagesProcessed, result.PagesFailed, result.EntitiesSkipped)

	if len(result.Records) == 0 {
		fmt.Println("\n⚠️  No companies found. The pages scraped may not contain campaign")
		fmt.Println("information, or the content structure differs from what the schema expects.")
		return nil
	}

	report.RenderSummary(os.Stdout, result.Summary)

	artifact := report.Build(result.Records, time.Now())
	if err := report.Write(artifact, cfg.Output.Path); err != nil {
		return err
	}
	fmt.Printf("\n💾 Saved %d records to: %s\n", len(result.Records), cfg.Output.Path)

	return nil
}
