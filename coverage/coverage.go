// Package coverage tracks which spans of a window have been consumed.
//
// Each transfer appends a Record; Summarize then sorts the log and merges
// overlapping same-tag spans, leaving a compact map of what was read. The
// gap between consecutive summarized records is data nothing ever looked
// at, which is the interesting part when reverse-engineering a format.
package coverage

import (
	"reflect"
	"sort"
)

// Record is one logged span, in window-relative bytes. Tag and Aux carry
// caller-defined meaning; the default merge only coalesces records whose
// tags are equal.
type Record struct {
	Offset int
	Size   int
	Tag    uint64
	Aux    any
}

// End returns the first offset past the span.
func (r Record) End() int {
	return r.Offset + r.Size
}

// CompareFunc orders two records for Summarize. Negative means a sorts
// before b.
type CompareFunc func(a, b Record) int

// MergeFunc tries to merge src into dst, returning true when dst absorbed
// src. Summarize calls it on consecutive records after sorting.
type MergeFunc func(dst *Record, src Record) bool

// Log accumulates coverage records. The zero value is a disabled log.
type Log struct {
	records []Record
	enabled bool
	suspend int
	tag     uint64
	aux     any
}

// SetEnabled turns recording on or off. The existing records are kept.
func (l *Log) SetEnabled(on bool) {
	l.enabled = on
}

// Enabled reports whether recording is turned on, ignoring suspension.
func (l *Log) Enabled() bool {
	return l.enabled
}

// Suspend pauses recording until a matching Resume. Calls nest.
func (l *Log) Suspend() {
	l.suspend++
}

// Resume undoes one Suspend. Extra calls are ignored.
func (l *Log) Resume() {
	if l.suspend > 0 {
		l.suspend--
	}
}

func (l *Log) active() bool {
	return l.enabled && l.suspend == 0
}

// SetTags sets the tag pair stamped on subsequently recorded spans.
func (l *Log) SetTags(tag uint64, aux any) {
	l.tag = tag
	l.aux = aux
}

// Record appends a span with the current tags, if recording is active.
func (l *Log) Record(offset, size int) {
	if !l.active() {
		return
	}
	l.records = append(l.records, Record{Offset: offset, Size: size, Tag: l.tag, Aux: l.aux})
}

// Add appends an explicit record. force overrides a disabled log but not
// suspension, so a suspended stretch stays invisible even to forced adds.
func (l *Log) Add(r Record, force bool) {
	if (!l.enabled && !force) || l.suspend != 0 {
		return
	}
	l.records = append(l.records, r)
}

// Records returns the log contents. The slice aliases the log; Summarize
// invalidates it.
func (l *Log) Records() []Record {
	return l.records
}

// Compare is the default Summarize ordering: offset ascending, size
// descending, tag ascending. Records equal under this ordering keep their
// insertion order, which leaves Aux ties stable.
func Compare(a, b Record) int {
	switch {
	case a.Offset != b.Offset:
		if a.Offset < b.Offset {
			return -1
		}
		return 1
	case a.Size != b.Size:
		if a.Size > b.Size {
			return -1
		}
		return 1
	case a.Tag != b.Tag:
		if a.Tag < b.Tag {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// auxEqual compares two Aux tags. Values of an uncomparable type (slice,
// map, func) never equal anything, including themselves.
func auxEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Merge is the default merge predicate: equal tags and overlapping or
// adjacent spans, with dst starting first. dst grows to the union.
func Merge(dst *Record, src Record) bool {
	if dst.Tag != src.Tag || !auxEqual(dst.Aux, src.Aux) {
		return false
	}
	if dst.Offset > src.Offset || dst.End() < src.Offset {
		return false
	}
	if src.End() > dst.End() {
		dst.Size = src.End() - dst.Offset
	}
	return true
}

// Summarize sorts the log with cmp and coalesces consecutive records with
// merge. Nil selects the defaults. The scan runs from the end of the
// sorted log toward the start so each removal only shifts the short tail.
func (l *Log) Summarize(cmp CompareFunc, merge MergeFunc) {
	if len(l.records) == 0 {
		return
	}
	if cmp == nil {
		cmp = Compare
	}
	if merge == nil {
		merge = Merge
	}

	sort.SliceStable(l.records, func(i, j int) bool {
		return cmp(l.records[i], l.records[j]) < 0
	})

	recs := l.records
	for c1 := len(recs) - 2; c1 >= 0; c1-- {
		c2 := c1 + 1
		if merge(&recs[c1], recs[c2]) {
			recs = append(recs[:c2], recs[c2+1:]...)
		}
	}
	l.records = recs
}
