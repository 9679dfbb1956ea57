package intelligence

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/llm"
	"github.com/alexanderramin/cotador/internal/ptbr"
)

type manualExtraction struct {
	ServiceType *string `json:"service_type"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	DesiredDate *string `json:"desired_date"`
}

type manualNormalizer struct {
	client llm.LLMClient
	log    *zap.Logger
}

// NewManualNormalizer creates the Normalizer for manual services.
func NewManualNormalizer(client llm.LLMClient, log *zap.Logger) Normalizer {
	return &manualNormalizer{client: client, log: orNop(log)}
}

func (n *manualNormalizer) Normalize(ctx context.Context, text string, ref *time.Time) domain.Task {
	ext, err := n.extract(ctx, text, ref)
	if err != nil {
		n.log.Warn("manual normalizer fallback", zap.Error(err))
		ext = manualExtraction{}
	}

	serviceType := domain.ServiceType(strOr(ext.ServiceType, ""))
	if !serviceType.Valid() || serviceType.Category() != domain.CategoryManual {
		serviceType = domain.ServiceFaucetRepair
	}

	return domain.Task{
		Text:        text,
		Description: strOr(ext.Description, text),
		Category:    domain.CategoryManual,
		ServiceType: serviceType,
		DesiredDate: resolveDesiredDate(ext.DesiredDate, text, ref),
		TimeWindow:  ptbr.InferTimeWindow(text),
		Location:    strOr(ext.Location, ""),
		CurrentDate: ref,
	}
}

func (n *manualNormalizer) extract(ctx context.Context, text string, ref *time.Time) (manualExtraction, error) {
	user := fmt.Sprintf("current_date=%s\nTask: %s", domain.FormatISODate(ref), text)
	out, err := llm.Ask(ctx, n.client, llm.TaskNormalize, manualNormalizeSystemPrompt, user)
	if err != nil {
		return manualExtraction{}, err
	}
	return llm.ExtractJSON[manualExtraction](out, manualSchema, nil)
}
