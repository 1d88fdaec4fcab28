package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/aromabench/internal/workbench"
)

// ErrCorrupt is wrapped by every decode failure: invalid JSON, schema
// violations and structural inconsistencies. Corrupt data is never
// partially repaired.
var ErrCorrupt = errors.New("corrupt document")

const documentSchemaURL = "schema://aromabench/document.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// getCompiledSchema compiles the document schema once.
func getCompiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(documentSchema)))
		if err != nil {
			schemaErr = fmt.Errorf("parse document schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(documentSchemaURL)
	})
	return compiledSchema, schemaErr
}

// Encode serializes doc as JSON. Nil slices are written as empty arrays so
// the output always satisfies the document schema.
func Encode(doc workbench.Document) ([]byte, error) {
	b, err := json.Marshal(normalize(doc))
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

// Decode parses and validates data. Every failure wraps ErrCorrupt.
func Decode(data []byte) (workbench.Document, error) {
	schema, err := getCompiledSchema()
	if err != nil {
		return workbench.Document{}, err
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return workbench.Document{}, fmt.Errorf("%w: invalid JSON: %v", ErrCorrupt, err)
	}
	if err := schema.Validate(parsed); err != nil {
		return workbench.Document{}, fmt.Errorf("%w: schema validation failed: %v", ErrCorrupt, err)
	}

	var doc workbench.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return workbench.Document{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := checkStructure(doc); err != nil {
		return workbench.Document{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return doc, nil
}

// Export writes doc to w as indented JSON.
func Export(w io.Writer, doc workbench.Document) error {
	b, err := Encode(doc)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", "  "); err != nil {
		return fmt.Errorf("indent document: %w", err)
	}
	out.WriteByte('\n')
	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Import reads and validates a document from r.
func Import(r io.Reader) (workbench.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return workbench.Document{}, fmt.Errorf("read document: %w", err)
	}
	return Decode(data)
}

// checkStructure enforces the invariants JSON Schema cannot express.
func checkStructure(doc workbench.Document) error {
	fragrances := make(map[string]bool, len(doc.Fragrances))
	for _, f := range doc.Fragrances {
		if fragrances[f.ID] {
			return fmt.Errorf("duplicate fragrance id %q", f.ID)
		}
		fragrances[f.ID] = true
	}

	patterns := make(map[string]bool, len(doc.Patterns))
	for _, p := range doc.Patterns {
		if patterns[p.ID] {
			return fmt.Errorf("duplicate pattern id %q", p.ID)
		}
		patterns[p.ID] = true

		numbers := make(map[int]bool, len(p.Questions))
		for _, q := range p.Questions {
			if numbers[q.Number] {
				return fmt.Errorf("pattern %q: duplicate question number %d", p.ID, q.Number)
			}
			numbers[q.Number] = true
		}
	}
	return nil
}

// normalize replaces nil slices with empty ones.
func normalize(doc workbench.Document) workbench.Document {
	doc = doc.Clone()
	if doc.Fragrances == nil {
		doc.Fragrances = []workbench.Fragrance{}
	}
	if doc.Patterns == nil {
		doc.Patterns = []workbench.Pattern{}
	}
	for i := range doc.Patterns {
		p := &doc.Patterns[i]
		if p.Questions == nil {
			p.Questions = []workbench.Question{}
		}
		if p.Notes == nil {
			p.Notes = []workbench.Note{}
		}
		for j := range p.Questions {
			q := &p.Questions[j]
			if q.Choices == nil {
				q.Choices = []workbench.Choice{}
			}
			for k := range q.Choices {
				if q.Choices[k].FragranceIDs == nil {
					q.Choices[k].FragranceIDs = []string{}
				}
			}
		}
	}
	return doc
}
