package intelligence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/testutil"
)

func TestTemplateQuestion_FaucetWithDateAndWindow(t *testing.T) {
	task := testutil.NewTestTask("torneira pingando", domain.ServiceFaucetRepair,
		testutil.WithDesiredDate(testutil.Date(2025, time.August, 12)),
		testutil.WithTimeWindow(domain.WindowMorning),
	)
	supplier := testutil.NewTestSupplier("Hidráulica Silva", domain.ServiceFaucetRepair)

	q := TemplateQuestion(task, supplier)

	assert.Equal(t, "Olá Hidráulica Silva, você consegue consertar uma torneira pingando na terça-feira (12/08/2025) de manhã? Qual seria o preço?", q)
}

func TestTemplateQuestion_FaucetWithoutWhen(t *testing.T) {
	task := testutil.NewTestTask("torneira pingando", domain.ServiceFaucetRepair)
	supplier := testutil.NewTestSupplier("Hidráulica Silva", domain.ServiceFaucetRepair)

	q := TemplateQuestion(task, supplier)

	assert.Equal(t, "Olá Hidráulica Silva, você consegue consertar uma torneira pingando? Se sim, quando e qual seria o preço?", q)
}

func TestTemplateQuestion_SaturdayUsesNo(t *testing.T) {
	task := testutil.NewTestTask("torneira", domain.ServiceFaucetRepair, testutil.WithDesiredDate(testutil.Date(2025, time.August, 9)))
	supplier := testutil.NewTestSupplier("Hidráulica Silva", domain.ServiceFaucetRepair)

	q := TemplateQuestion(task, supplier)

	assert.Contains(t, q, "no sábado (09/08/2025)?")
}

func TestTemplateQuestion_Clothing(t *testing.T) {
	tests := []struct {
		name string
		task domain.Task
		want string
	}{
		{
			name: "tshirt with color and size",
			task: testutil.NewTestTask("camiseta preta GG", domain.ServiceTshirtSale,
				testutil.WithColor("preta"), testutil.WithSize("GG")),
			want: "Olá Ana Malhas, você tem camiseta preta tamanho GG? Qual seria o preço?",
		},
		{
			name: "pants without color",
			task: testutil.NewTestTask("calça 42", domain.ServicePantsSale, testutil.WithSize("42")),
			want: "Olá Ana Malhas, você tem calça tamanho 42? Qual seria o preço?",
		},
		{
			name: "tshirt with date",
			task: testutil.NewTestTask("camiseta", domain.ServiceTshirtSale,
				testutil.WithDesiredDate(testutil.Date(2025, time.August, 15)), testutil.WithTimeWindow(domain.WindowAfternoon)),
			want: "Olá Ana Malhas, você tem camiseta na sexta-feira (15/08/2025) à tarde? Qual seria o preço?",
		},
	}
	supplier := testutil.NewTestSupplier("Ana Malhas", domain.ServiceTshirtSale)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TemplateQuestion(tt.task, supplier))
		})
	}
}

func TestTemplateQuestion_UnnamedSupplier(t *testing.T) {
	task := testutil.NewTestTask("torneira", domain.ServiceFaucetRepair)
	q := TemplateQuestion(task, domain.Supplier{ID: "x"})
	assert.Contains(t, q, "Olá fornecedor,")
}

func TestQuestionGenerator_ManualNeverCallsLLM(t *testing.T) {
	client := &mockLLMClient{response: "Olá, qual o preço da torneira?"}
	g := NewQuestionGenerator(client, nil)
	task := testutil.NewTestTask("torneira pingando", domain.ServiceFaucetRepair)
	supplier := testutil.NewTestSupplier("Hidráulica Silva", domain.ServiceFaucetRepair)

	q := g.Question(context.Background(), task, supplier)

	assert.Equal(t, TemplateQuestion(task, supplier), q)
	assert.Zero(t, client.calls)
}

func TestQuestionGenerator_ClothingFallbackWhenLLMDown(t *testing.T) {
	g := NewQuestionGenerator(down(), nil)
	task := testutil.NewTestTask("camiseta preta GG", domain.ServiceTshirtSale,
		testutil.WithColor("preta"), testutil.WithSize("GG"))
	supplier := testutil.NewTestSupplier("Ana Malhas", domain.ServiceTshirtSale)

	q := g.Question(context.Background(), task, supplier)

	assert.Equal(t, "Olá Ana Malhas, você tem camiseta preta tamanho GG? Qual seria o preço?", q)
}

func TestQuestionGenerator_AcceptsCleanLLMQuestion(t *testing.T) {
	client := &mockLLMClient{response: "**Olá Ana Malhas**, você teria camiseta preta\ntamanho GG para pronta entrega e qual o preço?"}
	g := NewQuestionGenerator(client, nil)
	task := testutil.NewTestTask("camiseta preta GG", domain.ServiceTshirtSale,
		testutil.WithColor("preta"), testutil.WithSize("GG"))
	supplier := testutil.NewTestSupplier("Ana Malhas", domain.ServiceTshirtSale)

	q := g.Question(context.Background(), task, supplier)

	assert.Equal(t, "Olá Ana Malhas, você teria camiseta preta tamanho GG para pronta entrega e qual o preço?", q)
	assert.Equal(t, 1, client.calls)
}

func TestQuestionGenerator_SupplierNameIsNotAColor(t *testing.T) {
	task := testutil.NewTestTask("camiseta preta GG", domain.ServiceTshirtSale,
		testutil.WithColor("preta"), testutil.WithSize("GG"))
	supplier := testutil.NewTestSupplier("Alfaiataria Dona Rosa", domain.ServiceTshirtSale)

	reply := "Olá Alfaiataria Dona Rosa, você tem camiseta preta tamanho GG e qual o preço?"
	g := NewQuestionGenerator(&mockLLMClient{response: reply}, nil)
	assert.Equal(t, reply, g.Question(context.Background(), task, supplier))

	invented := "Olá Alfaiataria Dona Rosa, você tem camiseta azul tamanho GG e qual o preço?"
	g = NewQuestionGenerator(&mockLLMClient{response: invented}, nil)
	assert.Equal(t, TemplateQuestion(task, supplier), g.Question(context.Background(), task, supplier))
}

func TestQuestionGenerator_RejectsBadLLMQuestions(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"invented color", "Olá, você tem camiseta azul tamanho GG e qual o preço?"},
		{"missing keywords", "Olá, vocês têm disponibilidade?"},
		{"two questions", "Tem camiseta tamanho GG? Qual o preço?"},
		{"empty", "  "},
	}
	task := testutil.NewTestTask("camiseta preta GG", domain.ServiceTshirtSale,
		testutil.WithColor("preta"), testutil.WithSize("GG"))
	supplier := testutil.NewTestSupplier("Ana Malhas", domain.ServiceTshirtSale)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewQuestionGenerator(&mockLLMClient{response: tt.reply}, nil)
			assert.Equal(t, TemplateQuestion(task, supplier), g.Question(context.Background(), task, supplier))
		})
	}
}

func TestCleanLine(t *testing.T) {
	assert.Equal(t, "uma linha só", CleanLine("  \"# uma\n\nlinha *só*\"  "))
}
