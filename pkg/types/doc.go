// Package types defines the validation outcome, the recursive typed value
// model, and the standard errors shared by the typeparse packages.
//
// An Outcome is the accept/reject result of one validation call. Rejection is
// data, never an error: a rejected Outcome carries a static reason and no value.
package types
