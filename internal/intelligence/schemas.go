package intelligence

import (
	"embed"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/alexanderramin/cotador/internal/llm"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	manualSchema    = mustSchema("normalize_manual.json")
	clothingSchema  = mustSchema("normalize_clothing.json")
	interpretSchema = mustSchema("interpret.json")
)

func mustSchema(name string) *jsonschema.Schema {
	src, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		panic(err)
	}
	return llm.MustCompileSchema(name, src)
}
