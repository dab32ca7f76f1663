package models

// RecordType discriminates the two classified line shapes.
type RecordType string

const (
	RecordTypeSerialEntry RecordType = "serial_entry"
	RecordTypeCourtHeader RecordType = "court_header"
)

// Record is a single classified line from a cause-list document.
// Exactly one variant is populated, selected by Type:
//   - serial_entry: Serial + Details
//   - court_header: Court
type Record struct {
	Type    RecordType `json:"type"`
	Serial  string     `json:"serial,omitempty"`
	Details string     `json:"details,omitempty"`
	Court   string     `json:"court,omitempty"`
}

// NewSerialEntry builds a serial-numbered case row record.
func NewSerialEntry(serial, details string) Record {
	return Record{
		Type:    RecordTypeSerialEntry,
		Serial:  serial,
		Details: details,
	}
}

// NewCourtHeader builds a court/room designation record.
func NewCourtHeader(label string) Record {
	return Record{
		Type:  RecordTypeCourtHeader,
		Court: label,
	}
}
