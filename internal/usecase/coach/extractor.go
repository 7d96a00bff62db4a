package coach

import (
	"encoding/json"
	"regexp"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

// jsonBlockPattern matches a fenced ```json block anywhere in the reply.
var jsonBlockPattern = regexp.MustCompile("(?s)```json\\s*\n(.*?)\n\\s*```")

// ExtractAnalysis scans an assistant reply for the fenced JSON analysis
// block the interviewer emits at session close. Most turns carry no block;
// that is the normal case and returns nil. A syntactically broken block is
// treated the same as an absent one — the caller never sees a parse error,
// the analysis is simply not available yet.
//
// A successfully parsed block is normalized field by field: a missing
// customer name becomes 不明, missing lists become empty lists and missing
// scores stay zero, so a partially populated payload still yields a usable
// record.
func ExtractAnalysis(content string) *entities.MeetingRecord {
	match := jsonBlockPattern.FindStringSubmatch(content)
	if match == nil {
		return nil
	}

	var record entities.MeetingRecord
	if err := json.Unmarshal([]byte(match[1]), &record); err != nil {
		return nil
	}

	record.Normalize()
	return &record
}
