package report

import (
	"fmt"
	"strings"

	"github.com/repolens/repolens/pkg/models"
)

// IssuesReport renders clustered issue groups. Numbered groups keep
// their given order; the noise group renders as "Other".
func IssuesReport(org, repo string, groups []models.Group) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Issues Analysis Report for %s/%s\n\n", org, repo)

	number := 0
	for _, group := range groups {
		switch {
		case group.IsNoise():
			b.WriteString("### Group Other:\n\n")
		case group.Name != "":
			number++
			fmt.Fprintf(&b, "### Group %d: %s\n\n", number, group.Name)
		default:
			number++
			fmt.Fprintf(&b, "### Group %d:\n\n", number)
		}

		for _, entry := range group.Entries {
			fmt.Fprintf(&b, "* %s: %s\n", entry.Title, entry.URL)
		}
		b.WriteString(separator)
	}
	return b.String()
}
