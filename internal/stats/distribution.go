package stats

import (
	"encoding/json"
	"sort"
)

// Distribution is a label -> count mapping. It remembers first-seen label
// order so that TopN tie-breaking is stable across runs.
type Distribution struct {
	counts map[string]int
	order  []string
}

func NewDistribution() *Distribution {
	return &Distribution{counts: make(map[string]int)}
}

// Add increments the bucket for label by one. Empty labels are dropped
// (a missing group key never becomes a bucket).
func (d *Distribution) Add(label string) {
	d.AddN(label, 1)
}

// AddN increments the bucket for label by n.
func (d *Distribution) AddN(label string, n int) {
	if label == "" || n <= 0 {
		return
	}
	if _, seen := d.counts[label]; !seen {
		d.order = append(d.order, label)
	}
	d.counts[label] += n
}

// Count returns the bucket value for label, zero if absent.
func (d *Distribution) Count(label string) int {
	return d.counts[label]
}

// Len returns the number of distinct labels.
func (d *Distribution) Len() int {
	return len(d.counts)
}

// Labels returns the labels in first-seen order.
func (d *Distribution) Labels() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Total returns the sum over all buckets.
func (d *Distribution) Total() int {
	total := 0
	for _, c := range d.counts {
		total += c
	}
	return total
}

// TopN returns a new Distribution holding the n highest-count labels.
// Ties at the cutoff keep first-seen order; no label is renamed or merged.
func (d *Distribution) TopN(n int) *Distribution {
	labels := make([]string, len(d.order))
	copy(labels, d.order)
	sort.SliceStable(labels, func(i, j int) bool {
		return d.counts[labels[i]] > d.counts[labels[j]]
	})
	if len(labels) > n {
		labels = labels[:n]
	}
	top := NewDistribution()
	for _, label := range labels {
		top.AddN(label, d.counts[label])
	}
	return top
}

// MarshalJSON renders the distribution as a plain {label: count} object.
func (d *Distribution) MarshalJSON() ([]byte, error) {
	if d == nil || d.counts == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d.counts)
}
