// Package validation checks JSON documents against the schemas under
// configs/schemas before the catalog and challenge loaders parse them.
package validation

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaValidator validates JSON documents against JSON schema files
type SchemaValidator interface {
	ValidateFile(dataPath, schemaPath string) error
	ValidateBytes(data []byte, schemaPath string) error
}

type schemaValidator struct {
	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a validator with an empty schema cache
func NewSchemaValidator() SchemaValidator {
	return &schemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// ValidateFile reads a JSON document and validates it against the schema
func (v *schemaValidator) ValidateFile(dataPath, schemaPath string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}
	return v.ValidateBytes(data, schemaPath)
}

// ValidateBytes validates a JSON document against the schema at schemaPath
func (v *schemaValidator) ValidateBytes(data []byte, schemaPath string) error {
	schema, err := v.schema(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaPath, err)
	}

	// The library's own decoder keeps numbers exact, which matters for
	// integer bounds like points and level thresholds
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return renderValidationError(err)
	}
	return nil
}

// schema returns the compiled schema for schemaPath, compiling and caching
// it on first use. The catalog and challenge loaders share one validator,
// so the cache is locked.
func (v *schemaValidator) schema(schemaPath string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.compiled[schemaPath]; ok {
		return schema, nil
	}

	resolved, err := resolveSchemaPath(schemaPath)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	// Each schema gets its own compiler so a bad resource cannot poison
	// later compilations
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaPath, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	v.compiled[schemaPath] = schema
	return schema, nil
}

// renderValidationError flattens a nested validation error into one line
// per failing leaf, located by instance path
func renderValidationError(err error) error {
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validation error: %w", err)
	}

	// Inner nodes only restate their children, so report leaves
	var lines []string
	queue := []*jsonschema.ValidationError{validationErr}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		if len(cur.Causes) > 0 {
			queue = append(queue, cur.Causes...)
			continue
		}
		lines = append(lines, fmt.Sprintf("  - %s: fails %q", instancePath(cur), failedKeyword(cur)))
	}

	return fmt.Errorf("document does not match schema:\n%s", strings.Join(lines, "\n"))
}

func instancePath(err *jsonschema.ValidationError) string {
	if len(err.InstanceLocation) == 0 {
		return "(root)"
	}
	return "/" + strings.Join(err.InstanceLocation, "/")
}

func failedKeyword(err *jsonschema.ValidationError) string {
	if err.ErrorKind == nil {
		return "schema"
	}
	if path := err.ErrorKind.KeywordPath(); len(path) > 0 {
		return strings.Join(path, ".")
	}
	return "schema"
}

// resolveSchemaPath locates a schema given relative to the repository
// root. Tests and tools run from package directories, so relative paths
// are retried against each parent up to the directory holding go.mod.
func resolveSchemaPath(schemaPath string) (string, error) {
	if filepath.IsAbs(schemaPath) {
		return schemaPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for dir := cwd; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, schemaPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		// go.mod marks the repository root; nothing above it is ours
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}

	return "", fmt.Errorf("schema file not found: %s (searched from %s)", schemaPath, cwd)
}
