package conformance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/solidstat/solidstat/schemas"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// defaultPrinter formats schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// fixtureSchema is the compiled schema for estimator fixture files.
var fixtureSchema *jsonschema.Schema

// suiteSchema is the compiled schema for assumption suite files.
var suiteSchema *jsonschema.Schema

func init() {
	fixtureSchema = mustCompileSchema(schemas.FixtureSchemaJSON, "fixture.schema.json")
	suiteSchema = mustCompileSchema(schemas.AssumptionSuiteSchemaJSON, "assumption-suite.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateFixtureBytes validates raw JSON against the fixture schema and
// returns one message per violation.
func ValidateFixtureBytes(data []byte) []string {
	return validateJSONBytes(fixtureSchema, data)
}

// ValidateSuiteBytes validates raw JSON against the assumption suite schema.
func ValidateSuiteBytes(data []byte) []string {
	return validateJSONBytes(suiteSchema, data)
}

func validateJSONBytes(schema *jsonschema.Schema, data []byte) []string {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("JSON parse error: %v", err)}
	}

	err := schema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
