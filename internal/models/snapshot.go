package models

import "time"

// ParseResult holds all records extracted from one source document,
// in the order their lines appear in the document.
type ParseResult struct {
	File    string   `json:"file"`
	Records []Record `json:"records"`
}

// IngestionSnapshot is the output of one batch ingestion run. Each run
// replaces the previous snapshot wholesale; there is no incremental merge.
type IngestionSnapshot struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Documents   []ParseResult `json:"documents"`
}

// RecordCount returns the total number of records across all documents.
func (s *IngestionSnapshot) RecordCount() int {
	total := 0
	for _, doc := range s.Documents {
		total += len(doc.Records)
	}
	return total
}

// FlattenRecords returns up to limit records in document order, flattened
// across documents. A limit <= 0 returns all records.
func (s *IngestionSnapshot) FlattenRecords(limit int) []Record {
	var flat []Record
	for _, doc := range s.Documents {
		for _, rec := range doc.Records {
			flat = append(flat, rec)
			if limit > 0 && len(flat) == limit {
				return flat
			}
		}
	}
	return flat
}
