// Package validation holds the pure input checks every untrusted string goes
// through before it reaches business logic: shape checks for credentials,
// product field rules, XSS / SQL-injection signature detection and
// sanitization.
//
// All functions are stateless and safe for concurrent use. The compiled
// pattern tables are package-level values that are never mutated.
package validation
