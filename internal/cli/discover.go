package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ecotrace/campaignscan/internal/discover"
	"github.com/ecotrace/campaignscan/internal/extract"
	"github.com/ecotrace/campaignscan/internal/model"
)

var (
	discoverSeedsFile string
	discoverMaxPages  int
	discoverNoMapper  bool
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Print the page list a run would process",
	Long: `Discover builds and prints the ordered page list without extracting
anything: the seed URLs plus, when a Firecrawl key is available, the
keyword-filtered results of a site-mapping call.

Example:
  campaignscan discover
  campaignscan discover --no-mapper
  campaignscan discover --seeds urls.txt`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().StringVar(&discoverSeedsFile, "seeds", "", "file with seed URLs, one per line")
	discoverCmd.Flags().IntVar(&discoverMaxPages, "max-pages", 50, "cap on the discovered page list")
	discoverCmd.Flags().BoolVar(&discoverNoMapper, "no-mapper", false, "skip site mapping, use seed URLs only")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Discovery.SeedsFile = discoverSeedsFile
	cfg.Discovery.MaxURLs = discoverMaxPages
	cfg.Discovery.UseMapper = !discoverNoMapper

	// Mapping needs the managed service; without a key, fall back to
	// seeds only rather than failing.
	var mapper discover.Mapper
	if !discoverNoMapper {
		if provider, err := extract.NewProvider(cfg); err == nil {
			if fc, ok := provider.(*extract.FirecrawlProvider); ok {
				mapper = fc.Client()
			}
		} else {
			log.Warn("mapper unavailable, using seed URLs only", "err", err)
		}
	}

	urls, err := discover.New(mapper, cfg.Discovery).Discover(ctx)
	if err != nil {
		return err
	}

	for _, u := range urls {
		fmt.Println(u)
	}
	fmt.Printf("\n%d pages\n", len(urls))
	return nil
}
