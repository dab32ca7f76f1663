// -----------------------------------------------------------------------
// Line Classifier - turn one line of cause-list text into a typed record
// -----------------------------------------------------------------------

package classifier

import (
	"strings"

	"github.com/ternarybob/causelist/internal/models"
)

// maxSerial is the highest serial number the heuristic recognizes. Cause
// lists rarely exceed 100 entries per court; lines numbered beyond that
// are not classified. This is a fixed limit, not a configuration knob.
const maxSerial = 100

// Classify applies the ordered rule list to one trimmed line of text and
// returns at most one record. Rules are applied first-match-wins:
//
//  1. blank line: no record
//  2. leading integer 1..100 followed by "." : serial entry
//  3. contains "Court" and ("No" or "Room"): court header
//  4. otherwise: no record
//
// Classification is deterministic and never fails; unmatched lines simply
// yield no record.
func Classify(line string) (models.Record, bool) {
	if line == "" {
		return models.Record{}, false
	}

	if serial, ok := leadingSerial(line); ok {
		return models.NewSerialEntry(serial, line), true
	}

	if strings.Contains(line, "Court") &&
		(strings.Contains(line, "No") || strings.Contains(line, "Room")) {
		return models.NewCourtHeader(line), true
	}

	return models.Record{}, false
}

// leadingSerial reports whether the line begins with an integer in
// [1, maxSerial] immediately followed by a literal dot, and returns the
// integer's text. Leading zeros ("07.") do not match.
func leadingSerial(line string) (string, bool) {
	end := 0
	for end < len(line) && line[end] >= '0' && line[end] <= '9' {
		end++
	}
	if end == 0 || end >= len(line) || line[end] != '.' {
		return "", false
	}
	if line[0] == '0' {
		return "", false
	}

	digits := line[:end]
	if len(digits) > 3 {
		return "", false
	}
	value := 0
	for i := 0; i < len(digits); i++ {
		value = value*10 + int(digits[i]-'0')
	}
	if value < 1 || value > maxSerial {
		return "", false
	}

	return digits, true
}
