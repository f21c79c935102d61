package constants

// DocumentStatus is the outcome of processing one invoice file in a batch.
type DocumentStatus string

const (
	DocumentStatusProcessed DocumentStatus = "PROCESSED" // metadata + table scan completed
	DocumentStatusEmpty     DocumentStatus = "EMPTY"     // processed, no qualifying rows
	DocumentStatusFailed    DocumentStatus = "FAILED"    // skipped, no partial output
)
