package bench

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteReport renders results as a console table.
func WriteReport(w io.Writer, results []Result) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"primitive", "workers", "items", "elapsed", "seconds"})
	for _, r := range results {
		t.Append([]string{
			r.Primitive,
			strconv.Itoa(r.Workers),
			strconv.Itoa(r.Items),
			r.Elapsed.String(),
			fmt.Sprintf("%.5f", r.Elapsed.Seconds()),
		})
	}
	t.SetAutoFormatHeaders(false)
	t.Render()
}
