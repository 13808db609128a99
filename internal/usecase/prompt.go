package usecase

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
)

//go:embed templates/answer_prompt.txt
var answerPromptText string

var answerPrompt = template.Must(template.New("answer").Parse(answerPromptText))

type promptData struct {
	Context  string
	Question string
}

// BuildPrompt renders the answer prompt with the retrieved unit contents in
// rank order. Contents are included verbatim.
func BuildPrompt(sources []domain.ScoredUnit, question string) (string, error) {
	contents := make([]string, len(sources))
	for i, s := range sources {
		contents[i] = s.Unit.Content
	}

	var sb strings.Builder
	err := answerPrompt.Execute(&sb, promptData{
		Context:  strings.Join(contents, "\n\n"),
		Question: question,
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
