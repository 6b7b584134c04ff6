// Package validation checks a resolution result against its spec.
//
// Every key is checked before anything is reported. Failures are split in
// two lists: keys that are required but no layer supplied, and keys whose
// value the rule rejected (plus undeclared keys when extras are not
// allowed). A key never appears in both.
//
//	outcome := validation.Validate(spec, result, false)
//	if err := outcome.Err(); err != nil {
//	    // err is an *errors.ConfigError with MissingKeys and ValidationErrors
//	}
package validation
