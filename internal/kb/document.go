package kb

import "fmt"

// Document is one knowledge-base record. The full set for a dataset is fixed
// at compile time and never mutated.
type Document struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// Dataset bundles everything that varies between seeding runs: the
// collection to (re)build, the records to load, and the probe used to
// smoke-test retrieval afterwards.
type Dataset struct {
	Name       string
	Collection string
	ProbeText  string
	Documents  []Document
}

// Validate checks the static preconditions the loader relies on: non-empty
// unique ids and non-empty texts. Datasets ship with the binary, so a
// violation here is a programming error, not a runtime condition.
func (d Dataset) Validate() error {
	if d.Collection == "" {
		return fmt.Errorf("dataset %q: collection name is empty", d.Name)
	}
	if len(d.Documents) == 0 {
		return fmt.Errorf("dataset %q: no documents", d.Name)
	}
	seen := make(map[string]struct{}, len(d.Documents))
	for i, doc := range d.Documents {
		if doc.ID == "" {
			return fmt.Errorf("dataset %q: document %d has empty id", d.Name, i)
		}
		if doc.Text == "" {
			return fmt.Errorf("dataset %q: document %s has empty text", d.Name, doc.ID)
		}
		if _, dup := seen[doc.ID]; dup {
			return fmt.Errorf("dataset %q: duplicate document id %s", d.Name, doc.ID)
		}
		seen[doc.ID] = struct{}{}
	}
	return nil
}
