package core

import "fmt"

// IntervalMinutes is the width of one historical observation bucket.
const IntervalMinutes = 15

// openingHour is the venue opening time; interval 0 starts at 11:00.
const openingHour = 11

// fallbackCount is substituted when a lookup lands beyond the defined
// pattern instead of failing.
const fallbackCount = 20

// probabilityIndexCap caps the interval index used by the arrival and
// departure probability lookups. The calibration and reporting consumers use
// the full-length pattern; the probability lookups deliberately do not.
const probabilityIndexCap = 7

// HistoricalPattern is an ordered sequence of observed occupancy counts, one
// per 15-minute interval. It is immutable after calibration completes; all
// accessors are read-only.
type HistoricalPattern struct {
	counts []int
}

// DefaultPattern returns the built-in venue curve: 17 intervals spanning
// 11:00–15:00.
func DefaultPattern() *HistoricalPattern {
	return &HistoricalPattern{counts: []int{
		22, 28, 29, 24, 40, 31, 39, 32, 39, 43, 49, 55, 52, 65, 70, 65, 58,
	}}
}

// NewHistoricalPattern builds a pattern from an observed sequence. The slice
// is copied; the caller keeps ownership of its argument.
func NewHistoricalPattern(counts []int) *HistoricalPattern {
	return &HistoricalPattern{counts: append([]int(nil), counts...)}
}

// Len returns the number of defined intervals.
func (p *HistoricalPattern) Len() int { return len(p.counts) }

// Counts returns a snapshot copy of the full sequence.
func (p *HistoricalPattern) Counts() []int {
	return append([]int(nil), p.counts...)
}

// At returns the count at interval idx, clamping idx to the last defined
// interval. An empty pattern reports the fallback constant.
func (p *HistoricalPattern) At(idx int) int {
	if len(p.counts) == 0 {
		return fallbackCount
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.counts) {
		idx = len(p.counts) - 1
	}
	return p.counts[idx]
}

// LookupCapped returns the target count for the given simulated minute as
// seen by the probability model: the interval index is capped at 7, and an
// index beyond the defined pattern reports the fallback constant.
func (p *HistoricalPattern) LookupCapped(minute int) int {
	idx := minute / IntervalMinutes
	if idx > probabilityIndexCap {
		idx = probabilityIndexCap
	}
	if idx < 0 || idx >= len(p.counts) {
		return fallbackCount
	}
	return p.counts[idx]
}

// Mean returns the mean occupancy over the defined intervals, or 0 for an
// empty pattern.
func (p *HistoricalPattern) Mean() float64 {
	if len(p.counts) == 0 {
		return 0
	}
	sum := 0
	for _, c := range p.counts {
		sum += c
	}
	return float64(sum) / float64(len(p.counts))
}

// Peak returns the maximum count and the index of the first interval where
// it occurs. An empty pattern reports (0, 0).
func (p *HistoricalPattern) Peak() (count, idx int) {
	for i, c := range p.counts {
		if c > count {
			count, idx = c, i
		}
	}
	return count, idx
}

// Min returns the minimum count, or 0 for an empty pattern.
func (p *HistoricalPattern) Min() int {
	if len(p.counts) == 0 {
		return 0
	}
	min := p.counts[0]
	for _, c := range p.counts[1:] {
		if c < min {
			min = c
		}
	}
	return min
}

// IntervalLabel formats the wall-clock start of interval idx, e.g. "11:15".
func IntervalLabel(idx int) string {
	minute := idx * IntervalMinutes
	return MinuteLabel(minute)
}

// MinuteLabel formats a simulated minute as wall-clock time from opening.
func MinuteLabel(minute int) string {
	return fmt.Sprintf("%02d:%02d", openingHour+minute/60, minute%60)
}
