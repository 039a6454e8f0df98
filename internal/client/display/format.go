// FILE: internal/client/display/format.go
package display

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
)

// PrettyPrintJSON prints formatted JSON
func PrettyPrintJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%sError formatting JSON: %s%s\n", Red, err.Error(), Reset)
		return
	}
	fmt.Println(string(data))
}

// LeaderboardRow is one printable row of a ranked view
type LeaderboardRow struct {
	Rank        int64
	DisplayName string
	Competitor  string
	Score       int64
}

// PrintLeaderboard renders a ranked view as an aligned table, tagging the
// serving origin (cache or store)
func PrintLeaderboard(rows []LeaderboardRow, source string) {
	if len(rows) == 0 {
		fmt.Printf("%sLeaderboard is empty%s\n", Yellow, Reset)
		return
	}

	fmt.Printf("%sSource: %s%s\n", Cyan, source, Reset)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tSCORE\tID")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", row.Rank, row.DisplayName, row.Score, row.Competitor)
	}
	w.Flush()
}
