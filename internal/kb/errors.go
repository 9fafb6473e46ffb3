package kb

import "fmt"

// The pipeline fails with exactly one of the error types below. All four are
// fatal; verification problems are carried on the Report instead and never
// abort a run.

// ConnectionError means the document store is unreachable.
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string { return fmt.Sprintf("store unreachable: %v", e.Cause) }
func (e *ConnectionError) Unwrap() error { return e.Cause }

// ConfigError means the pipeline was misconfigured: a missing credential,
// an embedder that could not be built, or an invalid dataset.
type ConfigError struct {
	Cause error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("configuration: %v", e.Cause) }
func (e *ConfigError) Unwrap() error { return e.Cause }

// ProvisionError means deleting or creating the collection failed.
type ProvisionError struct {
	Collection string
	Cause      error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provision collection %s: %v", e.Collection, e.Cause)
}
func (e *ProvisionError) Unwrap() error { return e.Cause }

// LoadError means the batched document insert (or the embedding call that
// feeds it) failed. Partially inserted batches are not rolled back.
type LoadError struct {
	Collection string
	Cause      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load collection %s: %v", e.Collection, e.Cause)
}
func (e *LoadError) Unwrap() error { return e.Cause }
