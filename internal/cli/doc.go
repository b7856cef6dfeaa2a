// Package cli turns the mergepdf command line into a merge request and runs
// it. It owns the usage text and the early exits (help, too few arguments,
// missing output value); everything else is reported as a classified error
// for the caller to turn into an exit code.
package cli
