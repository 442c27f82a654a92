package cluster

import (
	"fmt"
	"sort"

	"github.com/repolens/repolens/pkg/models"
)

// Assemble turns parallel (label, title, url) triples into presentation
// groups: entries are grouped by label in first-seen order, real groups
// are sorted by descending size with a stable sort so equal sizes keep
// their discovery order, and the noise group is then moved to the end
// as an explicit final step regardless of where its size placed it.
func Assemble(labels []int, titles, urls []string) ([]models.Group, error) {
	if len(labels) != len(titles) || len(titles) != len(urls) {
		return nil, fmt.Errorf("mismatched inputs: %d labels, %d titles, %d urls",
			len(labels), len(titles), len(urls))
	}

	index := make(map[int]int)
	var groups []models.Group
	for i, label := range labels {
		pos, ok := index[label]
		if !ok {
			pos = len(groups)
			index[label] = pos
			groups = append(groups, models.Group{Label: label})
		}
		groups[pos].Entries = append(groups[pos].Entries, models.Entry{
			Title: titles[i],
			URL:   urls[i],
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Size() > groups[j].Size()
	})

	// The noise group always renders last, whatever its size.
	for i := range groups {
		if groups[i].IsNoise() {
			noise := groups[i]
			groups = append(groups[:i], groups[i+1:]...)
			groups = append(groups, noise)
			break
		}
	}
	return groups, nil
}
