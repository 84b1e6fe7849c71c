package stats

import (
	"math"
	"testing"

	"github.com/rickgao/fpl-data/internal/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	convey.Convey("Given per-period points", t, func() {
		convey.Convey("Then the buckets follow the >9 and >3 boundaries", func() {
			convey.So(Classify(10), convey.ShouldEqual, ReturnMajor)
			convey.So(Classify(9.5), convey.ShouldEqual, ReturnMajor)
			convey.So(Classify(9), convey.ShouldEqual, ReturnMinor)
			convey.So(Classify(4), convey.ShouldEqual, ReturnMinor)
			convey.So(Classify(3), convey.ShouldEqual, ReturnNone)
			convey.So(Classify(0), convey.ShouldEqual, ReturnNone)
			convey.So(Classify(-2), convey.ShouldEqual, ReturnNone)
		})

		convey.Convey("Then non-numeric values classify as 0", func() {
			convey.So(ClassifyValue(model.Text("dnp")), convey.ShouldEqual, ReturnNone)
			convey.So(ClassifyValue(model.Value{}), convey.ShouldEqual, ReturnNone)
			convey.So(ClassifyValue(model.Number(12)), convey.ShouldEqual, ReturnMajor)
		})
	})
}

func TestMeanStdev(t *testing.T) {
	convey.Convey("Given numeric sequences", t, func() {
		convey.Convey("When every element is equal", func() {
			xs := []float64{2.2, 2.2, 2.2, 2.2}
			convey.Convey("Then stdev is exactly zero", func() {
				convey.So(Stdev(xs), convey.ShouldEqual, 0)
				convey.So(Mean(xs), convey.ShouldAlmostEqual, 2.2, 1e-12)
			})
		})

		convey.Convey("When elements differ", func() {
			xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
			convey.Convey("Then stdev is the population value", func() {
				convey.So(Mean(xs), convey.ShouldEqual, 5)
				convey.So(Stdev(xs), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When sequences vary in shape", func() {
			seqs := [][]float64{{1}, {0, 0}, {1, 2}, {-3, 3, 9}, {0.1, 0.2, 0.3}, {1e9, 1e9 + 1}}
			convey.Convey("Then stdev is non-negative and zero only for constant input", func() {
				for _, xs := range seqs {
					sd := Stdev(xs)
					convey.So(sd, convey.ShouldBeGreaterThanOrEqualTo, 0)
					constant := true
					for _, x := range xs {
						if x != xs[0] {
							constant = false
						}
					}
					convey.So(sd == 0, convey.ShouldEqual, constant)
				}
			})
		})

		convey.Convey("When the sequence is empty", func() {
			convey.So(Mean(nil), convey.ShouldEqual, 0)
			convey.So(Stdev(nil), convey.ShouldEqual, 0)
		})
	})
}

func TestSummarize(t *testing.T) {
	convey.Convey("Given entity 42's points history", t, func() {
		points := []float64{2, 1, 12, 0, 4, 9}
		returns := make([]int, len(points))
		for i, p := range points {
			returns[i] = Classify(p)
		}

		convey.Convey("Then the classification history matches", func() {
			convey.So(returns, convey.ShouldResemble, []int{0, 0, 2, 0, 1, 1})
		})

		convey.Convey("Then the 6-period means match", func() {
			ps := Summarize(points, []int{2, 3, 6})
			rs := Summarize(Ints(returns), []int{2, 3, 6})

			convey.So(len(ps), convey.ShouldEqual, 4)
			convey.So(ps[0].Window, convey.ShouldEqual, FullWindow)
			convey.So(ps[3].Window, convey.ShouldEqual, 6)
			convey.So(ps[3].Mean, convey.ShouldAlmostEqual, 28.0/6, 1e-9)
			convey.So(rs[3].Mean, convey.ShouldAlmostEqual, 4.0/6, 1e-9)

			convey.So(ps[1].Window, convey.ShouldEqual, 2)
			convey.So(ps[1].Count, convey.ShouldEqual, 2)
			convey.So(ps[1].Mean, convey.ShouldEqual, 6.5)
			convey.So(ps[1].Stdev, convey.ShouldEqual, 2.5)
		})

		convey.Convey("Then windows wider than the history use all of it", func() {
			ws := Summarize(points[:2], []int{6})
			convey.So(ws[1].Count, convey.ShouldEqual, 2)
			convey.So(ws[1].Mean, convey.ShouldEqual, 1.5)
			convey.So(math.IsNaN(ws[1].Stdev), convey.ShouldBeFalse)
		})
	})
}

func numbers(xs ...float64) []model.Value {
	out := make([]model.Value, len(xs))
	for i, x := range xs {
		out[i] = model.Number(x)
	}
	return out
}

func TestCountValuesAtLeast(t *testing.T) {
	convey.Convey("Given minutes played", t, func() {
		minutes := numbers(90, 90, 12, 0, 90, 61, 90, 75)

		convey.Convey("Then full-90 and full-60 count the trailing six", func() {
			convey.So(CountValuesAtLeast(minutes, MinutesSpan, FullMatch), convey.ShouldEqual, "2/6")
			convey.So(CountValuesAtLeast(minutes, MinutesSpan, MostOfMatch), convey.ShouldEqual, "4/6")
		})

		convey.Convey("Then short histories use their own length as denominator", func() {
			convey.So(CountValuesAtLeast(numbers(90, 30), MinutesSpan, FullMatch), convey.ShouldEqual, "1/2")
		})
	})
}

func TestValueWindows(t *testing.T) {
	convey.Convey("Given a period series with a non-numeric period", t, func() {
		minutes := []model.Value{model.Number(90), model.Text("n/a"), model.Number(0), model.Number(0), model.Number(0), model.Number(0), model.Number(0)}

		convey.Convey("Then the trailing span is measured in periods", func() {
			convey.So(CountValuesAtLeast(minutes, MinutesSpan, FullMatch), convey.ShouldEqual, "0/6")
			convey.So(CountValuesAtLeast(minutes[:2], MinutesSpan, FullMatch), convey.ShouldEqual, "1/2")
		})

		convey.Convey("Then window stats skip the non-numeric slot without widening", func() {
			ws := SummarizeValues(minutes, []int{2, 6})
			convey.So(ws[0].Count, convey.ShouldEqual, 6)
			convey.So(ws[1].Window, convey.ShouldEqual, 2)
			convey.So(ws[1].Count, convey.ShouldEqual, 2)
			convey.So(ws[2].Count, convey.ShouldEqual, 5)
			convey.So(ws[2].Mean, convey.ShouldEqual, 0)
		})
	})
}

func TestTail(t *testing.T) {
	xs := []int{1, 2, 3, 4}
	if got := Tail(xs, 2); len(got) != 2 || got[0] != 3 {
		t.Errorf("Tail(xs, 2) = %v, want [3 4]", got)
	}
	if got := Tail(xs, 0); len(got) != 4 {
		t.Errorf("Tail(xs, 0) = %v, want all", got)
	}
	if got := Tail(xs, 10); len(got) != 4 {
		t.Errorf("Tail(xs, 10) = %v, want all", got)
	}
}
