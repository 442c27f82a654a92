package models

// NoiseLabel is the cluster label for items that belong to no detected
// cluster.
const NoiseLabel = -1

// Entry is a single issue reference inside a cluster group.
type Entry struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Group is an ordered list of issues sharing a cluster label.
type Group struct {
	Label   int     `json:"label"`
	Name    string  `json:"name,omitempty"` // optional generated theme title
	Entries []Entry `json:"entries"`
}

// Size returns the number of entries in the group.
func (g *Group) Size() int {
	return len(g.Entries)
}

// IsNoise reports whether the group holds unclustered items.
func (g *Group) IsNoise() bool {
	return g.Label == NoiseLabel
}
