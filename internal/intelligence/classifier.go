package intelligence

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/llm"
	"github.com/alexanderramin/cotador/internal/ptbr"
)

// Classification is the classifier output.
type Classification struct {
	Category     domain.Category `json:"category"`
	OriginalTask string          `json:"original_task"`
}

// Classifier maps raw task text to a category.
type Classifier interface {
	Classify(ctx context.Context, text string) Classification
}

var (
	manualHints = []string{
		"torneira", "encanador", "hidraul", "vazando",
		"vazamento", "chuveiro", "registro", "conserto",
	}
	clothingHints = []string{
		"camisa", "camiseta", "t-shirt", "tshirt", "blusa",
		"calca", "pants", "roupa", "tamanho",
	}
	// Short hints only count as whole words.
	manualWords   = []string{"pia", "cano"}
	clothingWords = []string{"cor"}
)

// HeuristicCategory picks a category from keyword hints. Manual hints are
// checked first; text with no hint defaults to manual_process.
func HeuristicCategory(text string) domain.Category {
	t := ptbr.Fold(text)
	if hasHint(t, manualHints, manualWords) {
		return domain.CategoryManual
	}
	if hasHint(t, clothingHints, clothingWords) {
		return domain.CategoryClothing
	}
	return domain.CategoryManual
}

func hasHint(folded string, subs, words []string) bool {
	for _, h := range subs {
		if strings.Contains(folded, h) {
			return true
		}
	}
	for _, w := range words {
		if ptbr.ContainsWord(folded, w) {
			return true
		}
	}
	return false
}

type classifier struct {
	client llm.LLMClient
	log    *zap.Logger
}

// NewClassifier creates a Classifier that lets the LLM override the
// keyword heuristic with a valid label.
func NewClassifier(client llm.LLMClient, log *zap.Logger) Classifier {
	return &classifier{client: client, log: orNop(log)}
}

func (c *classifier) Classify(ctx context.Context, text string) Classification {
	label := HeuristicCategory(text)

	out, err := llm.Ask(ctx, c.client, llm.TaskClassify, classifySystemPrompt, "Task: "+text)
	if err != nil {
		c.log.Warn("classifier fallback", zap.Error(err), zap.String("label", string(label)))
		return Classification{Category: label, OriginalTask: text}
	}
	candidate := domain.Category(strings.Trim(strings.ToLower(out), `"'. `))
	if domain.ValidCategories[candidate] {
		label = candidate
	}
	return Classification{Category: label, OriginalTask: text}
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
