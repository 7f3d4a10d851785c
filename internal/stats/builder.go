package stats

// GroupCount is one row of a grouped-count read (count per distinct value).
type GroupCount struct {
	Label string
	Count int
}

// BuildGrouped folds grouped-count rows into a distribution.
//
// When normalize is non-nil every key passes through it, including empty
// keys (the zone normalizer maps those to its unknown label). Without a
// normalizer, empty keys are dropped so a missing value never becomes a
// bucket of its own.
func BuildGrouped(groups []GroupCount, normalize func(string) string) *Distribution {
	d := NewDistribution()
	for _, g := range groups {
		label := g.Label
		if normalize != nil {
			label = normalize(label)
		} else if label == "" {
			continue
		}
		d.AddN(label, g.Count)
	}
	return d
}

// BuildListCounts folds raw encoded-list column values, one per row, into
// per-element counts. An element appearing in three rows counts three.
func BuildListCounts(values []string) *Distribution {
	d := NewDistribution()
	for _, raw := range values {
		for _, el := range DecodeList(raw) {
			d.Add(el)
		}
	}
	return d
}

// CountPresence returns how many values decode to a non-empty list.
// Used for per-row 0/1 indicators such as the disability categories.
func CountPresence(values []string) int {
	n := 0
	for _, raw := range values {
		if len(DecodeList(raw)) > 0 {
			n++
		}
	}
	return n
}

// CountElements returns the total number of decoded elements across values.
func CountElements(values []string) int {
	n := 0
	for _, raw := range values {
		n += len(DecodeList(raw))
	}
	return n
}
