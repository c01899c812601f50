// Package parse validates values against the built-in sentinel rules.
//
// Validate covers the closed set of Go types named by Validatable. Parser
// functions (Number, String, ObjectOf, Auto) apply the same rules to
// dynamically typed types.Value trees, such as decoded JSON documents
// checked against a YAML schema.
package parse
