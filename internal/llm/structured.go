package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// CompileSchema compiles a JSON Schema document registered under name.
func CompileSchema(name string, src []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(src)); err != nil {
		return nil, fmt.Errorf("adding schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", name, err)
	}
	return schema, nil
}

// MustCompileSchema is CompileSchema for package-level embedded schemas.
func MustCompileSchema(name string, src []byte) *jsonschema.Schema {
	s, err := CompileSchema(name, src)
	if err != nil {
		panic(err)
	}
	return s
}

// ExtractJSON pulls the first JSON object out of raw model output, checks it
// against schema when given, decodes it into T and runs validator.
// Markdown fences, surrounding prose, // and /* */ comments and numbers
// written as ".5" are tolerated.
func ExtractJSON[T any](raw string, schema *jsonschema.Schema, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := firstObject(stripCodeFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	block = sanitize(block)

	if schema != nil {
		var doc any
		if err := json.Unmarshal([]byte(block), &doc); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
		if err := schema.Validate(doc); err != nil {
			return zero, fmt.Errorf("%w: schema: %v", ErrInvalidOutput, err)
		}
	}

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// stripCodeFences drops markdown fence lines, keeping their content.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// jsonScanner tracks whether a byte position sits inside a string literal.
type jsonScanner struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it is outside any string literal.
func (sc *jsonScanner) step(c byte) bool {
	switch {
	case sc.escaped:
		sc.escaped = false
		return false
	case sc.inString && c == '\\':
		sc.escaped = true
		return false
	case c == '"':
		sc.inString = !sc.inString
		return false
	}
	return !sc.inString
}

// firstObject returns the first balanced { ... } block in s.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}
	var sc jsonScanner
	depth := 0
	for i := start; i < len(s); i++ {
		if !sc.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// sanitize removes comments and rewrites ".8" / "-.3" as "0.8" / "-0.3"
// outside string literals.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var sc jsonScanner
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !sc.step(c) {
			b.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				break
			}
			i += end + 3
			continue
		}

		if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && numberStart(prevNonSpace(s, i-1)) {
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func prevNonSpace(s string, i int) byte {
	for ; i >= 0; i-- {
		switch s[i] {
		case ' ', '\n', '\r', '\t':
			continue
		}
		return s[i]
	}
	return 0
}

func numberStart(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
