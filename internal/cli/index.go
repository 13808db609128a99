package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/rodrigotabsan/RAGIoT/config"
	"github.com/rodrigotabsan/RAGIoT/internal/adapter/dataset"
	"github.com/rodrigotabsan/RAGIoT/internal/usecase"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the vector index from the sensor dataset",
	Long: `Load the configured sensor dataset, embed every text unit and persist
the vectors. With the default backend the index is stored in .ragiot/index.db
within the root directory.

Examples:
  ragiot index                       # Index the configured dataset
  ragiot index --config ragiot.yaml  # Index with an explicit config`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	dir := GetRootDir()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	vectorStore, err := newVectorStore(cfg, dir, embedder.Dimension())
	if err != nil {
		return fmt.Errorf("failed to open vector store: %w", err)
	}
	defer vectorStore.Close()

	paths, err := datasetPaths(cfg, dir)
	if err != nil {
		return err
	}

	units, err := dataset.NewLoader().LoadAll(paths)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		fmt.Println("Dataset contains no sensor data; nothing to index.")
		return nil
	}

	fmt.Printf("Embedding %d units with %s...\n", len(units), embedder.ModelName())

	bar := progressbar.NewOptions(len(units),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	builder := usecase.NewBuildUseCase(embedder, vectorStore, cfg.Embedding.BatchSize)
	result, err := builder.Build(cmd.Context(), units, func(done, total int) {
		bar.Set(done)
	})
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Printf("\nIndexing complete:\n")
	fmt.Printf("  Units indexed: %d\n", result.UnitsIndexed)
	fmt.Printf("  Dimension:     %d\n", result.Dimension)
	fmt.Printf("  Elapsed:       %s\n", result.Elapsed.Round(time.Millisecond))
	if cfg.Store.Backend == "bolt" {
		fmt.Printf("\nIndex stored at: %s\n", config.IndexDBPath(dir))
	}
	return nil
}
