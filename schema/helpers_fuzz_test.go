package schema

import (
	"math"
	"testing"
)

// FuzzEvaluate fuzzes formula evaluation with arbitrary field values and
// weights. The result must always land in [0, 100] and never be NaN.
func FuzzEvaluate(f *testing.F) {
	seeds := []struct {
		v1, v2, w1, w2 float64
		precision      int
	}{
		{50, 75, 0.6, 0.4, 2},
		{0, 0, 0.5, 0.5, 0},
		{100, 100, 1.0, 0.0, 4},
		{-500, 1e9, 0.3, 0.7, 2},
	}
	for _, seed := range seeds {
		f.Add(seed.v1, seed.v2, seed.w1, seed.w2, seed.precision)
	}

	f.Fuzz(func(t *testing.T, v1, v2, w1, w2 float64, precision int) {
		if math.IsNaN(w1) || math.IsNaN(w2) || math.IsInf(w1, 0) || math.IsInf(w2, 0) {
			t.Skip()
		}
		if precision < 0 || precision > 8 {
			t.Skip()
		}

		formula := CompositeScoreFormula{
			AnalysisType: CompetitiveAnalysis,
			Components: []FormulaComponent{
				{FieldName: "a", Weight: Clamp(w1, 0, 1)},
				{FieldName: "b", Weight: Clamp(w2, 0, 1)},
			},
		}
		rec := Record{"a": v1, "b": v2}

		score := formula.Evaluate(rec, precision)
		if math.IsNaN(score) {
			t.Fatalf("Evaluate returned NaN for v1=%v v2=%v", v1, v2)
		}
		if score < 0 || score > 100 {
			t.Fatalf("Evaluate returned %v, outside [0, 100]", score)
		}
	})
}

// FuzzToNumber fuzzes the string conversion path; it must never panic and
// must round-trip plain numeric strings.
func FuzzToNumber(f *testing.F) {
	seeds := []string{"42", "3.14", "-1e3", "", "  7 ", "abc", "NaN", "1,000"}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, s string) {
		_, _ = ToNumber(s)
	})
}
