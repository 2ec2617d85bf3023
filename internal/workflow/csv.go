package workflow

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/planforge/planforge/internal/vectorize"
)

// buildMetricsCSV renders the export artifact. The byte layout is part
// of the external contract: a metric,value header then one row per
// metric, newline-terminated with no trailing blank line.
func buildMetricsCSV(m vectorize.Metrics) []byte {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	w.Write([]string{"metric", "value"})
	w.Write([]string{"walls_len_ft", strconv.FormatFloat(m.WallsLenFt, 'f', -1, 64)})
	w.Write([]string{"line_count", strconv.Itoa(m.LineCount)})
	w.Flush()

	return buf.Bytes()
}
