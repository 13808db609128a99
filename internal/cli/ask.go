package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	askQuestion string
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a question about the sensor data",
	Long: `Load the dataset, build the index and answer a single question.

Examples:
  ragiot ask -q "¿Qué sensores tienen alertas activas?"
  ragiot ask -q "¿Hay algún sensor con valores fuera del rango normal?" --json`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "question to answer (required)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	askCmd.MarkFlagRequired("question")
}

func runAsk(cmd *cobra.Command, args []string) error {
	session, vectorStore, err := newSession(GetConfig(), GetRootDir())
	if err != nil {
		return err
	}
	defer vectorStore.Close()

	if err := session.Init(cmd.Context()); err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}

	result, err := session.Ask(cmd.Context(), askQuestion)
	if err != nil {
		return err
	}

	if askJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("\n%s\n", result.Answer)
	if len(result.Sources) > 0 {
		fmt.Printf("\nFuentes:\n")
		for i, s := range result.Sources {
			fmt.Printf("  [%d] (%.2f) %s\n", i+1, s.Score, firstLine(s.Unit.Content))
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.Index(s, "\n"); i >= 0 {
		return s[:i]
	}
	return s
}
