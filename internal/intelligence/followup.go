package intelligence

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/llm"
	"github.com/alexanderramin/cotador/internal/ptbr"
)

// FollowUpGenerator proposes one more question for the current supplier,
// or reports that the conversation already has what is needed.
type FollowUpGenerator interface {
	// FollowUp returns the question and true, or "" and false for STOP.
	FollowUp(ctx context.Context, task domain.Task, supplier domain.Supplier, transcript []domain.Exchange) (string, bool)
}

type followUpGenerator struct {
	client llm.LLMClient
	log    *zap.Logger
}

func NewFollowUpGenerator(client llm.LLMClient, log *zap.Logger) FollowUpGenerator {
	return &followUpGenerator{client: client, log: orNop(log)}
}

func (g *followUpGenerator) FollowUp(ctx context.Context, task domain.Task, supplier domain.Supplier, transcript []domain.Exchange) (string, bool) {
	payload, err := json.Marshal(map[string]any{
		"task":     questionTaskView(task),
		"supplier": map[string]string{"name": supplier.Name, "id": supplier.ID},
		"history":  transcript,
	})
	if err != nil {
		return DeterministicFollowUp(task, transcript)
	}
	out, err := llm.Ask(ctx, g.client, llm.TaskFollowUp, followUpSystemPrompt, string(payload))
	if err != nil {
		g.log.Warn("follow-up fallback", zap.Error(err))
		return DeterministicFollowUp(task, transcript)
	}

	q := CleanLine(out)
	if isStop(q) {
		return "", false
	}
	if q == "" {
		return DeterministicFollowUp(task, transcript)
	}
	return q, true
}

func isStop(s string) bool {
	return strings.EqualFold(strings.Trim(s, ".! '"), "stop")
}

// DeterministicFollowUp asks for the price when the supplier never gave
// one, then for the requested date or period when the supplier has not
// mentioned it, and otherwise stops.
func DeterministicFollowUp(task domain.Task, transcript []domain.Exchange) (string, bool) {
	var replies []string
	for _, e := range transcript {
		if e.Speaker == domain.SpeakerSupplier {
			replies = append(replies, e.Text)
		}
	}
	said := strings.Join(replies, "\n")

	if !ptbr.MentionsPrice(said) {
		return "Qual seria o preço?", true
	}

	when := formatWhen(task)
	if when == "" {
		return "", false
	}
	_, mentionsDate := ptbr.ParseDate(said, task.CurrentDate)
	dateMissing := task.DesiredDate != nil && !mentionsDate
	windowMissing := task.TimeWindow != domain.WindowNone && ptbr.InferTimeWindow(said) == domain.WindowNone
	if dateMissing || windowMissing {
		return "Você confirma o atendimento" + when + "?", true
	}
	return "", false
}
