// Package profile summarizes materialized table columns: an inferred type
// per column plus the statistics a spreadsheet user would reach for first.
package profile

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/1911342723/jsonflat/internal/table"
)

// SampleLimit caps the example values reported for string columns.
const SampleLimit = 5

// Datetime literal patterns, most common forms first.
var (
	dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)                                                    // 2006-01-02
	dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`)                          // 2006-01-02 15:04:05
	iso8601Pattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?([+-]\d{2}:\d{2}|Z|[+-]\d{4})?$`) // ISO8601 variants
)

// ColumnProfile summarizes one output column.
type ColumnProfile struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // int, float, bool, datetime or string
	Nullable bool   `json:"nullable"`
	Stats    Stats  `json:"stats"`
}

// Stats carries per-type statistics: the numeric fields apply to int and
// float columns, Unique and Sample to string columns. Fields that do not
// apply stay unset.
type Stats struct {
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`
	Std    *float64 `json:"std,omitempty"`
	Unique *int     `json:"unique,omitempty"`
	Sample []string `json:"sample,omitempty"`
}

// Profile summarizes every data column of a table. The row-number column is
// skipped; empty cells count as null and are excluded from statistics.
func Profile(tbl *table.Table) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, len(tbl.Columns))
	for ci, col := range tbl.Columns {
		if col.Path == "_index" {
			continue
		}
		cells := make([]string, 0, len(tbl.Rows))
		for _, row := range tbl.Rows {
			cells = append(cells, row[ci])
		}
		profiles = append(profiles, profileColumn(col.Title, cells))
	}
	return profiles
}

func profileColumn(name string, cells []string) ColumnProfile {
	var present []string
	nullable := false
	for _, c := range cells {
		if c == table.EmptyCell {
			nullable = true
			continue
		}
		present = append(present, c)
	}

	p := ColumnProfile{Name: name, Type: inferType(present), Nullable: nullable}
	switch p.Type {
	case "int", "float":
		p.Stats = numericStats(present)
	case "string":
		p.Stats = stringStats(present)
	}
	return p
}

// inferType picks the narrowest type every non-null cell fits. A column
// with no non-null cells profiles as string.
func inferType(values []string) string {
	if len(values) == 0 {
		return "string"
	}
	isInt, isFloat, isBool, isTime := true, true, true, true
	for _, v := range values {
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			isFloat = false
		}
		if v != "true" && v != "false" {
			isBool = false
		}
		if isTime && !isDatetime(v) {
			isTime = false
		}
	}
	switch {
	case isBool:
		return "bool"
	case isInt:
		return "int"
	case isFloat:
		return "float"
	case isTime:
		return "datetime"
	}
	return "string"
}

func isDatetime(v string) bool {
	return dateOnlyPattern.MatchString(v) ||
		dateTimePattern.MatchString(v) ||
		iso8601Pattern.MatchString(v)
}

func numericStats(values []string) Stats {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		nums = append(nums, f)
	}
	if len(nums) == 0 {
		return Stats{}
	}
	sort.Float64s(nums)

	var sum float64
	for _, f := range nums {
		sum += f
	}
	mean := sum / float64(len(nums))

	st := Stats{
		Min:    ptr(nums[0]),
		Max:    ptr(nums[len(nums)-1]),
		Mean:   ptr(mean),
		Median: ptr(median(nums)),
	}
	// Sample standard deviation; undefined for a single value.
	if len(nums) > 1 {
		var ss float64
		for _, f := range nums {
			d := f - mean
			ss += d * d
		}
		st.Std = ptr(math.Sqrt(ss / float64(len(nums)-1)))
	}
	return st
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func stringStats(values []string) Stats {
	seen := make(map[string]bool)
	var sample []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		if len(sample) < SampleLimit {
			sample = append(sample, v)
		}
	}
	n := len(seen)
	return Stats{Unique: &n, Sample: sample}
}

func ptr(f float64) *float64 { return &f }
