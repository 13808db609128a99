package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var exampleQuestions = []string{
	"¿Qué sensores tienen alertas activas?",
	"¿Cuál es el estado de los sensores de humedad?",
	"¿Qué sensores están en el Sector A?",
	"¿Hay algún sensor con valores fuera del rango normal?",
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively",
	Long: `Start an interactive session over the sensor dataset. The index is
built once; every line you type is answered with its sources. Type "salir" or
"exit" to quit.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	session, vectorStore, err := newSession(GetConfig(), GetRootDir())
	if err != nil {
		return err
	}
	defer vectorStore.Close()

	fmt.Println("Preparando el índice...")
	if err := session.Init(cmd.Context()); err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}
	fmt.Printf("Listo: %d unidades indexadas.\n\n", session.UnitCount())

	fmt.Println("Ejemplos de preguntas:")
	for _, q := range exampleQuestions {
		fmt.Printf("  - %s\n", q)
	}
	fmt.Println("\nEscribe una pregunta (o \"salir\" para terminar):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "salir" || question == "exit" {
			break
		}

		result, err := session.Ask(cmd.Context(), question)
		if err != nil {
			// One failed question should not end the conversation.
			fmt.Printf("Error: %v\n\n", err)
			continue
		}

		fmt.Printf("\n%s\n\nFuentes:\n", result.Answer)
		for i, s := range result.Sources {
			fmt.Printf("  [%d] (%.2f) %s\n", i+1, s.Score, firstLine(s.Unit.Content))
		}
		fmt.Println()
	}
	return scanner.Err()
}
