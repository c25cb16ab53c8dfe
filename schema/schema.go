// Package schema describes result payloads as JSON Schema and validates raw
// payloads before they are decoded into a SuiteResult.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jesspatton/lazysuite/errors"
	"github.com/jesspatton/lazysuite/frameworks"
	"github.com/jesspatton/lazysuite/logging"
	"github.com/jesspatton/lazysuite/status"
)

const resourceName = "suite-result.json"

var log = logging.NewLogger("schema")

var (
	metaType    = reflect.TypeOf(frameworks.Meta{})
	consoleType = reflect.TypeOf([]interface{}{})
	statusType  = reflect.TypeOf(status.Status(""))
)

// GenerateResultSchema generates the JSON Schema of a suite result payload.
func GenerateResultSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		Anonymous:                  true,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
		Mapper:                     mapType,
	}

	schema := r.Reflect(&frameworks.SuiteResult{})
	schema.Title = "Suite result"
	schema.Description = "Result reported for one suite file and its tests."

	return json.MarshalIndent(schema, "", "  ")
}

// mapType overrides the reflected schema of loosely typed payload fields.
// Reporters send null for absent metadata and console output.
func mapType(t reflect.Type) *jsonschema.Schema {
	switch t {
	case metaType:
		return nullable("object")
	case consoleType:
		return nullable("array")
	case statusType:
		enum := []interface{}{""}
		for _, s := range status.All() {
			enum = append(enum, string(s))
		}
		return &jsonschema.Schema{Type: "string", Enum: enum}
	}
	return nil
}

func nullable(kind string) *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{{Type: kind}, {Type: "null"}},
	}
}

// Validator validates raw suite result payloads.
type Validator struct {
	schema *validator.Schema
}

// NewValidator compiles the suite result schema.
func NewValidator() (*Validator, error) {
	data, err := GenerateResultSchema()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to generate result schema")
	}

	compiler := validator.NewCompiler()
	if err := compiler.AddResource(resourceName, bytes.NewReader(data)); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to add result schema resource")
	}

	schema, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to compile result schema")
	}

	return &Validator{schema: schema}, nil
}

// Validate checks a raw payload against the schema. Violations are reported
// as a malformed result with one "violations" entry per failing location.
func (v *Validator) Validate(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.MalformedResult(fmt.Sprintf("invalid JSON: %v", err))
	}

	if err := v.schema.Validate(doc); err != nil {
		var violations []string
		if validationErr, ok := err.(*validator.ValidationError); ok {
			collectErrors(validationErr, &violations)
		}
		if len(violations) == 0 {
			violations = append(violations, err.Error())
		}
		return errors.MalformedResult("schema validation failed").
			WithDetail("violations", violations)
	}
	return nil
}

// Decode validates a raw payload and decodes it.
func (v *Validator) Decode(data []byte) (frameworks.SuiteResult, error) {
	var result frameworks.SuiteResult
	if err := v.Validate(data); err != nil {
		return result, err
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return frameworks.SuiteResult{}, errors.MalformedResult(err.Error())
	}
	return result, nil
}

// collectErrors recursively collects all validation errors into a slice
func collectErrors(err *validator.ValidationError, messages *[]string) {
	if err.InstanceLocation != "" {
		*messages = append(*messages, fmt.Sprintf("%s: %s", err.InstanceLocation, err.Message))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Decode validates and decodes a raw payload with the shared validator.
func Decode(data []byte) (frameworks.SuiteResult, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = NewValidator()
		if defaultErr != nil {
			log.WithError(defaultErr).Error("Failed to build result validator")
		}
	})
	if defaultErr != nil {
		return frameworks.SuiteResult{}, defaultErr
	}
	return defaultValidator.Decode(data)
}
