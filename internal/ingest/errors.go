// ABOUTME: IngestionError marks an unreadable or empty document
// ABOUTME: Skipped with a warning by the batch pipeline, never fatal
package ingest

import "fmt"

// IngestionError reports a document that could not be ingested. The pipeline
// logs these and continues with the rest of the batch.
type IngestionError struct {
	Filename string
	Err      error
}

func (e *IngestionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ingestion failed for %s: %v", e.Filename, e.Err)
	}
	return fmt.Sprintf("ingestion failed for %s: no extractable text", e.Filename)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}
