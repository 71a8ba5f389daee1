package aggregate

import (
	"sort"

	"github.com/monitor1379/yagods/sets/hashset"
)

// NthLargestDistinct returns the n-th largest distinct value. ok is false
// when there are fewer than n distinct values.
func NthLargestDistinct(values []float64, n int) (threshold float64, ok bool) {
	if n <= 0 {
		return 0, false
	}
	distinct := hashset.New[float64]()
	for _, v := range values {
		distinct.Add(v)
	}
	if distinct.Size() < n {
		return 0, false
	}
	sorted := distinct.Values()
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	return sorted[n-1], true
}
