package render

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/samber/lo"
)

const shortID = 10

// RecordRow is one decoded storage entry. Err is set when the value could
// not be decoded, Kind and the rest are then ignored.
type RecordRow struct {
	Key    string
	Kind   string
	ID     string
	At     time.Time
	Detail string
	Err    error
}

// Records prints storage entries followed by a count per kind.
func Records(w io.Writer, rows []RecordRow) {
	table := plainTable(w, "Key", "Type", "Timestamp", "Entity ID", "Detail")
	for _, row := range rows {
		if row.Err != nil {
			table.Append([]string{row.Key, "MALFORMED", "-", "-", row.Err.Error()})
			continue
		}
		at := "-"
		if !row.At.IsZero() {
			at = row.At.Format(time.DateTime)
		}
		id := row.ID
		if len(id) > shortID {
			id = id[:shortID]
		}
		table.Append([]string{row.Key, row.Kind, at, id, row.Detail})
	}
	table.Render()

	counts := lo.CountValuesBy(rows, func(row RecordRow) string {
		if row.Err != nil {
			return "MALFORMED"
		}
		return row.Kind
	})
	kinds := lo.Keys(counts)
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(w, "%s: %d\n", kind, counts[kind])
	}
}
