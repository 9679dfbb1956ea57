package intelligence

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/llm"
	"github.com/alexanderramin/cotador/internal/ptbr"
)

// QuestionGenerator writes the question sent to one supplier.
type QuestionGenerator interface {
	Question(ctx context.Context, task domain.Task, supplier domain.Supplier) string
}

type questionGenerator struct {
	client llm.LLMClient
	log    *zap.Logger
}

// NewQuestionGenerator creates a QuestionGenerator. Manual services always
// use the template; clothing asks the LLM and falls back to the template
// when the reply breaks the style rules.
func NewQuestionGenerator(client llm.LLMClient, log *zap.Logger) QuestionGenerator {
	return &questionGenerator{client: client, log: orNop(log)}
}

func (g *questionGenerator) Question(ctx context.Context, task domain.Task, supplier domain.Supplier) string {
	if task.ServiceType.Category() == domain.CategoryManual {
		return TemplateQuestion(task, supplier)
	}

	payload, err := json.Marshal(map[string]any{"task": questionTaskView(task), "supplier": supplier})
	if err != nil {
		return TemplateQuestion(task, supplier)
	}
	out, err := llm.Ask(ctx, g.client, llm.TaskQuestion, questionSystemPrompt, string(payload))
	if err != nil {
		g.log.Warn("question fallback", zap.Error(err), zap.String("supplier", supplier.ID))
		return TemplateQuestion(task, supplier)
	}

	q := CleanLine(out)
	if reason := rejectQuestion(q, task, supplier); reason != "" {
		g.log.Info("question rejected", zap.String("reason", reason), zap.String("supplier", supplier.ID))
		return TemplateQuestion(task, supplier)
	}
	return q
}

func questionTaskView(t domain.Task) map[string]string {
	return map[string]string{
		"service_type": string(t.ServiceType),
		"description":  t.Description,
		"color":        t.Color,
		"size":         t.Size,
		"desired_date": t.DesiredDateISO(),
		"time_window":  string(t.TimeWindow),
	}
}

var questionKeywords = []string{"camisa", "camiseta", "calca", "tamanho", "preco"}

func rejectQuestion(q string, task domain.Task, supplier domain.Supplier) string {
	if q == "" {
		return "empty"
	}
	if strings.Count(q, "?") > 1 {
		return "more than one question"
	}
	folded := ptbr.Fold(q)
	if !hasHint(folded, questionKeywords, nil) {
		return "missing item keywords"
	}
	// Names like "Dona Rosa" are not colors.
	scan := folded
	if name := ptbr.Fold(supplier.Name); name != "" {
		scan = strings.ReplaceAll(scan, name, " ")
	}
	for _, m := range colorRe.FindAllString(scan, -1) {
		if task.Color == "" || colorStem(m) != colorStem(ptbr.Fold(task.Color)) {
			return "invented color " + m
		}
	}
	return ""
}

// colorStem drops the gender ending so preto and preta compare equal.
func colorStem(c string) string {
	if n := len(c); n > 3 && (c[n-1] == 'o' || c[n-1] == 'a') {
		return c[:n-1]
	}
	return c
}

var (
	markdownRe   = regexp.MustCompile("[*_`#>]+")
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanLine flattens model output to one line without markdown marks.
func CleanLine(s string) string {
	s = markdownRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
}

// TemplateQuestion is the deterministic question for a supplier.
func TemplateQuestion(task domain.Task, supplier domain.Supplier) string {
	name := domain.CoalesceStr(supplier.Name, "fornecedor")
	when := formatWhen(task)

	switch task.ServiceType {
	case domain.ServiceFaucetRepair:
		if when == "" {
			return "Olá " + name + ", você consegue consertar uma torneira pingando? Se sim, quando e qual seria o preço?"
		}
		return "Olá " + name + ", você consegue consertar uma torneira pingando" + when + "? Qual seria o preço?"
	default:
		item := "camiseta"
		if task.ServiceType == domain.ServicePantsSale {
			item = "calça"
		}
		var b strings.Builder
		b.WriteString("Olá " + name + ", você tem " + item)
		if task.Color != "" {
			b.WriteString(" " + task.Color)
		}
		if task.Size != "" {
			b.WriteString(" tamanho " + task.Size)
		}
		b.WriteString(when)
		b.WriteString("? Qual seria o preço?")
		return b.String()
	}
}

// formatWhen renders " na terça-feira (12/08/2025) de manhã", either half
// alone, or "" when the task has neither.
func formatWhen(task domain.Task) string {
	var parts []string
	if task.DesiredDate != nil {
		d := *task.DesiredDate
		prep := "na "
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			prep = "no "
		}
		parts = append(parts, prep+ptbr.WeekdayName(d)+" ("+ptbr.FormatDDMMYYYY(d)+")")
	}
	if label := ptbr.QuestionWindowLabel(task.TimeWindow); label != "" {
		parts = append(parts, label)
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}
