// Package schemas holds the embedded JSON Schemas for the shared
// conformance corpus.
package schemas

import _ "embed"

// FixtureSchemaJSON is the schema for estimator fixture files
// (tests/<estimator>/*.json).
//
//go:embed fixture.schema.json
var FixtureSchemaJSON string

// AssumptionSuiteSchemaJSON is the schema for assumption-violation suite
// files (tests/assumptions/*.json).
//
//go:embed assumption-suite.schema.json
var AssumptionSuiteSchemaJSON string
