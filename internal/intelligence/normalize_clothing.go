package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/llm"
	"github.com/alexanderramin/cotador/internal/ptbr"
)

const letterSizes = `xl|xxl|xxxl|xggg|xgg|xxg|xg|gg|pp|g|m|p`

// Size patterns run in order against folded text with date tokens removed.
var sizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\btam(?:anho)?\s*[:\-]?\s*(` + letterSizes + `)\b`),
	regexp.MustCompile(`\b(` + letterSizes + `)\b`),
	regexp.MustCompile(`\btam(?:anho)?\s*[:\-]?\s*(\d{2})\b`),
	regexp.MustCompile(`\b(\d{2})\b`),
}

var (
	pantsRe = regexp.MustCompile(`\b(calcas?|pants)\b`)
	colorRe = regexp.MustCompile(`\b(preto|preta|branco|branca|azul|vermelh[oa]|verde|amarel[oa]|cinza|rosa|roxo|marrom|bege|lilas|vinho|bordo)\b`)
)

var sizeAliases = map[string]string{
	"xl":   "GG",
	"xxl":  "XG",
	"xxxl": "XXG",
}

var colorAccents = map[string]string{
	"lilas": "lilás",
	"bordo": "bordô",
}

// NormalizeSize maps a size token to its canonical Brazilian label.
func NormalizeSize(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return ""
	}
	if _, err := strconv.Atoi(t); err == nil {
		return t
	}
	if alias, ok := sizeAliases[t]; ok {
		return alias
	}
	return strings.ToUpper(t)
}

// NormalizeColor lowercases a color and uses the feminine form for
// preto and branco.
func NormalizeColor(c string) string {
	t := strings.ToLower(strings.TrimSpace(c))
	switch t {
	case "preto":
		return "preta"
	case "branco":
		return "branca"
	}
	return t
}

// clothingAttributes is what the regex extractors find in the text.
type clothingAttributes struct {
	ServiceType domain.ServiceType
	Color       string
	Size        string
}

func extractClothingAttributes(text string) clothingAttributes {
	t := ptbr.Fold(text)
	attrs := clothingAttributes{ServiceType: domain.ServiceTshirtSale}
	if pantsRe.MatchString(t) {
		attrs.ServiceType = domain.ServicePantsSale
	}

	sizeText := ptbr.StripDateTokens(t)
	for _, re := range sizePatterns {
		if m := re.FindStringSubmatch(sizeText); m != nil {
			attrs.Size = NormalizeSize(m[1])
			break
		}
	}

	if m := colorRe.FindStringSubmatch(t); m != nil {
		c := NormalizeColor(m[1])
		if accented, ok := colorAccents[c]; ok {
			c = accented
		}
		attrs.Color = c
	}
	return attrs
}

type clothingExtraction struct {
	ServiceType *string         `json:"service_type"`
	Description *string         `json:"description"`
	Color       *string         `json:"color"`
	Size        json.RawMessage `json:"size"`
	DesiredDate *string         `json:"desired_date"`
}

// size accepts "GG", 42 or null.
func (e clothingExtraction) size() string {
	if len(e.Size) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Size, &s); err == nil {
		return NormalizeSize(s)
	}
	var n json.Number
	if err := json.Unmarshal(e.Size, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
	}
	return ""
}

type clothingNormalizer struct {
	client llm.LLMClient
	log    *zap.Logger
}

// NewClothingNormalizer creates the Normalizer for clothing purchases.
func NewClothingNormalizer(client llm.LLMClient, log *zap.Logger) Normalizer {
	return &clothingNormalizer{client: client, log: orNop(log)}
}

func (n *clothingNormalizer) Normalize(ctx context.Context, text string, ref *time.Time) domain.Task {
	rx := extractClothingAttributes(text)

	ext, err := n.extract(ctx, text, ref)
	if err != nil {
		n.log.Warn("clothing normalizer fallback", zap.Error(err))
		ext = clothingExtraction{}
	}

	serviceType := rx.ServiceType
	if st := domain.ServiceType(strOr(ext.ServiceType, "")); st.Valid() && st.Category() == domain.CategoryClothing {
		serviceType = st
	}
	color := rx.Color
	if ext.Color != nil && NormalizeColor(*ext.Color) != "" {
		color = NormalizeColor(*ext.Color)
	}
	size := rx.Size
	if s := ext.size(); s != "" {
		size = s
	}

	return domain.Task{
		Text:        text,
		Description: strOr(ext.Description, text),
		Category:    domain.CategoryClothing,
		ServiceType: serviceType,
		DesiredDate: resolveDesiredDate(ext.DesiredDate, text, ref),
		TimeWindow:  ptbr.InferTimeWindow(text),
		Color:       color,
		Size:        size,
		CurrentDate: ref,
	}
}

func (n *clothingNormalizer) extract(ctx context.Context, text string, ref *time.Time) (clothingExtraction, error) {
	today := domain.FormatISODate(ref)
	if today == "" {
		today = "unknown"
	}
	user, err := json.Marshal(map[string]any{"task_text": text, "current_date": domain.FormatISODate(ref)})
	if err != nil {
		return clothingExtraction{}, err
	}
	out, err := llm.Ask(ctx, n.client, llm.TaskNormalize, fmt.Sprintf(clothingNormalizeSystemPrompt, today), string(user))
	if err != nil {
		return clothingExtraction{}, err
	}
	return llm.ExtractJSON[clothingExtraction](out, clothingSchema, nil)
}
