package stats

// Some metrics have two legitimate sources of truth: the per-household
// aggregate counters (preferred, they cover every individual) and a
// head-of-household derivation kept for rows collected before the counters
// existed. Resolution is all or nothing: a non-zero primary is used as-is,
// never blended with the secondary.

// FallbackCounts picks between two distributions for the same metric.
type FallbackCounts struct {
	Name      string
	Primary   *Distribution
	Secondary *Distribution
}

// Resolve returns Primary unless every primary bucket is zero.
func (f FallbackCounts) Resolve() *Distribution {
	if f.Primary != nil && f.Primary.Total() > 0 {
		return f.Primary
	}
	if f.Secondary != nil {
		return f.Secondary
	}
	return NewDistribution()
}

// FallbackTotal picks between two scalar sources for the same KPI.
type FallbackTotal struct {
	Name      string
	Primary   int
	Secondary int
}

// Resolve returns Primary unless it is zero.
func (f FallbackTotal) Resolve() int {
	if f.Primary > 0 {
		return f.Primary
	}
	return f.Secondary
}
