package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rodrigotabsan/RAGIoT/internal/adapter/dataset"
)

var unitsJSON bool

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Show the text units extracted from the dataset",
	Long: `Load the configured dataset and print the text units that would be
embedded, without calling any provider. Useful to inspect what the index will
contain.

Examples:
  ragiot units
  ragiot units --json`,
	Args: cobra.NoArgs,
	RunE: runUnits,
}

func init() {
	rootCmd.AddCommand(unitsCmd)
	unitsCmd.Flags().BoolVar(&unitsJSON, "json", false, "output as JSON")
}

func runUnits(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	paths, err := datasetPaths(cfg, GetRootDir())
	if err != nil {
		return err
	}

	units, err := dataset.NewLoader().LoadAll(paths)
	if err != nil {
		return err
	}

	if unitsJSON {
		output, _ := json.MarshalIndent(units, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(units) == 0 {
		fmt.Println("Dataset contains no sensor data.")
		return nil
	}

	fmt.Printf("%d units from %d dataset files:\n\n", len(units), len(paths))
	for i, u := range units {
		fmt.Printf("--- [%d] %s ---\n%s\n\n", i+1, u.ID, u.Content)
	}
	return nil
}
