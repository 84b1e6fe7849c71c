// Package stats holds the numeric kernels shared by the aggregation engine:
// population mean and standard deviation, trailing windows, return
// classification and minute-threshold counts.
package stats

import (
	"math"
	"strconv"

	"github.com/rickgao/fpl-data/internal/model"
)

// Return classification buckets.
const (
	ReturnNone  = 0
	ReturnMinor = 1
	ReturnMajor = 2
)

// Window and minute thresholds.
const (
	FullWindow  = 0 // window label for the whole history
	MinutesSpan = 6
	FullMatch   = 90.0
	MostOfMatch = 60.0
)

const (
	majorOver = 9.0
	minorOver = 3.0
)

// Classify buckets one period's points: 2 if points>9, 1 if 3<points<=9, else 0.
func Classify(points float64) int {
	switch {
	case points > majorOver:
		return ReturnMajor
	case points > minorOver:
		return ReturnMinor
	default:
		return ReturnNone
	}
}

// ClassifyValue classifies a raw field value; non-numeric values fall to 0.
func ClassifyValue(v model.Value) int {
	f, ok := v.Float()
	if !ok {
		return ReturnNone
	}
	return Classify(f)
}

// Mean returns Σx/n, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Stdev returns the population standard deviation √(Σ(x−mean)²/n).
func Stdev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := Mean(xs)
	allEqual := true
	var sq float64
	for _, x := range xs {
		if x != xs[0] {
			allEqual = false
		}
		d := x - m
		sq += d * d
	}
	if allEqual {
		return 0
	}
	return math.Sqrt(sq / float64(len(xs)))
}

// Tail returns the trailing n elements of xs; n<=0 or n>len(xs) returns all of xs.
func Tail[T any](xs []T, n int) []T {
	if n <= 0 || n >= len(xs) {
		return xs
	}
	return xs[len(xs)-n:]
}

// Summarize computes one WindowStat per window. The full history (window 0)
// always comes first, followed by the requested windows in order.
func Summarize(xs []float64, windows []int) []model.WindowStat {
	out := make([]model.WindowStat, 0, len(windows)+1)
	out = append(out, window(xs, FullWindow))
	for _, w := range windows {
		if w <= 0 {
			continue
		}
		out = append(out, window(xs, w))
	}
	return out
}

func window(xs []float64, n int) model.WindowStat {
	tail := Tail(xs, n)
	return model.WindowStat{
		Window: n,
		Count:  len(tail),
		Mean:   Mean(tail),
		Stdev:  Stdev(tail),
	}
}

// SummarizeValues is Summarize over a period-aligned series. Each window
// covers the trailing n periods; non-numeric periods occupy their slot but
// are left out of Count, Mean and Stdev.
func SummarizeValues(vs []model.Value, windows []int) []model.WindowStat {
	out := make([]model.WindowStat, 0, len(windows)+1)
	out = append(out, valueWindow(vs, FullWindow))
	for _, w := range windows {
		if w <= 0 {
			continue
		}
		out = append(out, valueWindow(vs, w))
	}
	return out
}

func valueWindow(vs []model.Value, n int) model.WindowStat {
	ws := window(model.Numbers(Tail(vs, n)), FullWindow)
	ws.Window = n
	return ws
}

// CountValuesAtLeast counts periods in the trailing span whose value reaches
// threshold and renders "count/denominator". The denominator counts periods,
// so a non-numeric period never reaches threshold.
func CountValuesAtLeast(vs []model.Value, span int, threshold float64) string {
	tail := Tail(vs, span)
	n := 0
	for _, v := range tail {
		if f, ok := v.Float(); ok && f >= threshold {
			n++
		}
	}
	return strconv.Itoa(n) + "/" + strconv.Itoa(len(tail))
}

// Ints converts an int series to float64 for summarising.
func Ints(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
