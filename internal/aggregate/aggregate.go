// Package aggregate holds the table primitives shared by the figure
// transforms: filters, explode, ordered counts, outer join keys,
// distributions and other-bucketing. Every threshold is an explicit
// argument.
package aggregate

import (
	"sort"

	"scireview/internal/mode"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	log "github.com/sirupsen/logrus"
)

// Count is a number of occurrences. A key that was never counted has
// Count 0, never a missing value.
type Count int

type Number interface {
	~int | ~float64
}

var sourceSentinels = mapset.NewSet[string](mode.SourceMultiple, mode.SourceNotSpecified)

// SingleOrigin reports whether the article names exactly one data origin
// country that is not the "various" sentinel.
func SingleOrigin(a mode.Article) bool {
	return len(a.DataOriginList) == 1 && a.DataOriginList[0] != mode.OriginVarious
}

// Domestic reports whether a single-origin article uses data from the first
// author's own country.
func Domestic(a mode.Article) bool {
	return SingleOrigin(a) && a.DataOriginList[0] == a.FirstAuthor
}

// SpecificSource is false for the "Multiple" and "Not precisely specified"
// data source sentinels.
func SpecificSource(source string) bool {
	return !sourceSentinels.Contains(source)
}

// AssignedChapter is false for articles without an ICD-10 chapter.
func AssignedChapter(a mode.Article) bool {
	return a.ICDChapter != ""
}

func Filter[T any](rows []T, keep func(T) bool) []T {
	var ret []T
	for _, row := range rows {
		if keep(row) {
			ret = append(ret, row)
		}
	}
	return ret
}

// Exploded is one element of a list field together with its article.
type Exploded struct {
	Article mode.Article
	Value   string
}

// Explode turns every article into one row per element of its list field.
func Explode(articles []mode.Article, list func(mode.Article) []string) []Exploded {
	var ret []Exploded
	for _, a := range articles {
		for _, v := range list(a) {
			ret = append(ret, Exploded{Article: a, Value: v})
		}
	}
	return ret
}

func Origins(a mode.Article) []string { return a.DataOriginList }

func Sources(a mode.Article) []string { return a.DataSourceList }

type KeyCount struct {
	Key   string
	Count Count
}

// Counts is a tally that remembers the order keys were first seen in.
type Counts struct {
	m *linkedhashmap.Map
}

func NewCounts() *Counts {
	return &Counts{m: linkedhashmap.New()}
}

func CountBy[T any](rows []T, key func(T) string) *Counts {
	c := NewCounts()
	for _, row := range rows {
		c.Add(key(row))
	}
	return c
}

func (c *Counts) Add(key string) {
	c.m.Put(key, c.Of(key)+1)
}

func (c *Counts) Of(key string) Count {
	if v, ok := c.m.Get(key); ok {
		return v.(Count)
	}
	return 0
}

func (c *Counts) Has(key string) bool {
	_, ok := c.m.Get(key)
	return ok
}

func (c *Counts) Len() int { return c.m.Size() }

// Keys in first-seen order.
func (c *Counts) Keys() []string {
	ret := make([]string, 0, c.m.Size())
	for _, k := range c.m.Keys() {
		ret = append(ret, k.(string))
	}
	return ret
}

// Sorted returns the tally by descending count; ties keep first-seen order.
func (c *Counts) Sorted() []KeyCount {
	ret := make([]KeyCount, 0, c.m.Size())
	for _, k := range c.Keys() {
		ret = append(ret, KeyCount{Key: k, Count: c.Of(k)})
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Count > ret[j].Count })
	return ret
}

func (c *Counts) Total() Count {
	var total Count
	for _, v := range c.m.Values() {
		total += v.(Count)
	}
	return total
}

// OuterKeys is the union of all key lists in ascending order.
func OuterKeys(lists ...[]string) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, list := range lists {
		for _, k := range list {
			seen.Add(k)
		}
	}
	ret := seen.ToSlice()
	sort.Strings(ret)
	return ret
}

// Distribution expresses every value as a percentage of the column sum.
// A column summing to zero yields all zeros.
func Distribution[N Number](values []N) []float64 {
	var total float64
	for _, v := range values {
		total += float64(v)
	}
	ret := make([]float64, len(values))
	if total == 0 {
		if len(values) > 0 {
			log.Warn("distribution over a zero-sum column, using 0")
		}
		return ret
	}
	for i, v := range values {
		ret[i] = float64(v) * 100 / total
	}
	return ret
}

// Ratio is part*scale/total, or 0 when total is 0.
func Ratio[N, M Number](part N, total M, scale float64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * scale / float64(total)
}

// Partition splits rows into the ones kept and the ones for the "other"
// bucket, preserving order in both.
func Partition[T any](rows []T, toOther func(T) bool) (kept, other []T) {
	for _, row := range rows {
		if toOther(row) {
			other = append(other, row)
		} else {
			kept = append(kept, row)
		}
	}
	return
}

// Below is the strict comparator v < threshold.
func Below[N Number](threshold N) func(N) bool {
	return func(v N) bool { return v < threshold }
}

// AtMost is the comparator v <= threshold.
func AtMost[N Number](threshold N) func(N) bool {
	return func(v N) bool { return v <= threshold }
}

func Sum[T any, N Number](rows []T, value func(T) N) N {
	var total N
	for _, row := range rows {
		total += value(row)
	}
	return total
}
