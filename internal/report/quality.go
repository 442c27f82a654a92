package report

import (
	"fmt"
	"strings"
	"time"
)

// Ranked is one line of a top-N list.
type Ranked struct {
	Title string
	Value string
	URL   string
}

// QualityReport carries the aggregated closed-issue metrics.
type QualityReport struct {
	Org    string
	Repo   string
	Labels []string

	AvgResolution   time.Duration
	AvgFirstComment time.Duration
	AvgComments     float64
	AvgReactions    float64

	LongestResolution   []Ranked
	LongestFirstComment []Ranked
	MostCommented       []Ranked
	MostEngaging        []Ranked
}

// Render produces the markdown body of the quality report.
func (r *QualityReport) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Issues Quality Analysis Report for %s/%s\n\n", r.Org, r.Repo)
	if len(r.Labels) > 0 {
		b.WriteString("**Filtered by label(s):**\n")
		for _, label := range r.Labels {
			fmt.Fprintf(&b, "* %s\n", label)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Issues resolution time\n\nAverage time of issue resolution: %s\n\n", FormatDuration(r.AvgResolution))
	writeRanked(&b, "Issues with the longest resolution time", r.LongestResolution)

	fmt.Fprintf(&b, "## Time to first comment\n\nAverage time to first comment: %s\n\n", FormatDuration(r.AvgFirstComment))
	writeRanked(&b, "Issues with the longest time to first comment", r.LongestFirstComment)

	fmt.Fprintf(&b, "## The most commented issues\n\nAverage number of comments: %.2f\n\n", r.AvgComments)
	writeRanked(&b, "List of the most commented issues", r.MostCommented)

	fmt.Fprintf(&b, "## The most engaging issues\n\nAverage number of reactions for issue: %.2f\n\n", r.AvgReactions)
	writeRanked(&b, "List of the most engaging issues", r.MostEngaging)

	return b.String()
}

func writeRanked(b *strings.Builder, heading string, items []Ranked) {
	fmt.Fprintf(b, "### %s\n\n", heading)
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s - %s: %s\n", i+1, item.Title, item.Value, item.URL)
	}
	b.WriteString(separator)
}
