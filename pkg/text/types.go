package text

// Rule computes the new value for a record
type Rule func(index int, value string) string

// Change describes a single rewritten record
type Change struct {
	// Index is the record index
	Index int

	// Old is the value before the rewrite
	Old string

	// New is the value after the rewrite
	New string
}

// RewriteResult contains the results of a rewrite
type RewriteResult struct {
	// Found is the number of records the extractor matched
	Found int

	// Modified is the number of records whose value was replaced
	Modified int

	// Changes lists every modified record in source order
	Changes []Change

	// OriginalContent is the content before the rewrite
	OriginalContent string

	// ModifiedContent is the content after the rewrite
	ModifiedContent string
}

// Skipped returns how many records were left alone because they already
// carried an id
func (r *RewriteResult) Skipped() int {
	return r.Found - r.Modified
}

// WasModified indicates if any record was rewritten
func (r *RewriteResult) WasModified() bool {
	return r.Modified > 0
}
