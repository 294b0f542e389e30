package robust

import (
	"errors"
	"math"
	"testing"

	"github.com/solidstat/solidstat/rng"
)

func requireViolation(t *testing.T, err error, id AssumptionID, subject Subject) {
	t.Helper()
	var ae *AssumptionError
	if !errors.As(err, &ae) {
		t.Fatalf("expected assumption error, got %v", err)
	}
	if ae.Violation.ID != id || ae.Violation.Subject != subject {
		t.Fatalf("got violation %s/%s, want %s/%s",
			ae.Violation.ID, ae.Violation.Subject, id, subject)
	}
}

func TestSignedRankMargin_ExactValues(t *testing.T) {
	cases := []struct {
		n       int
		misrate float64
		want    int
	}{
		// n=5: CDF over subset sums of 1..5 walks 1/32, 2/32, 3/32, 5/32;
		// the first statistic with CDF >= 0.125 is 3.
		{5, 0.25, 6},
		{2, 1.0, 2},
		{1, 1.0, 0},
	}
	for _, c := range cases {
		got, err := SignedRankMargin(c.n, c.misrate)
		if err != nil {
			t.Fatalf("SignedRankMargin(%d, %v): %v", c.n, c.misrate, err)
		}
		if got != c.want {
			t.Errorf("SignedRankMargin(%d, %v) = %d, want %d", c.n, c.misrate, got, c.want)
		}
	}
}

func TestSignedRankMargin_MinMisrateGivesZero(t *testing.T) {
	for _, n := range []int{2, 5, 10, 30} {
		min, err := MinAchievableMisrateOneSample(n, SubjectX)
		if err != nil {
			t.Fatal(err)
		}
		got, err := SignedRankMargin(n, min)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if got != 0 {
			t.Errorf("SignedRankMargin(%d, minMisrate) = %d, want 0", n, got)
		}
	}
}

func TestSignedRankMargin_MonotoneInMisrate(t *testing.T) {
	for _, n := range []int{20, 63, 64, 200} {
		prev := -1
		for _, misrate := range []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0} {
			got, err := SignedRankMargin(n, misrate)
			if err != nil {
				t.Fatalf("n=%d misrate=%v: %v", n, misrate, err)
			}
			if got%2 != 0 || got < 0 {
				t.Errorf("n=%d misrate=%v: margin %d must be even and non-negative", n, misrate, got)
			}
			if got < prev {
				t.Errorf("n=%d: margin decreased from %d to %d as misrate grew to %v", n, prev, got, misrate)
			}
			prev = got
		}
	}
}

func TestSignedRankMargin_Violations(t *testing.T) {
	_, err := SignedRankMargin(0, 0.5)
	requireViolation(t, err, AssumptionDomain, SubjectX)

	_, err = SignedRankMargin(5, math.NaN())
	requireViolation(t, err, AssumptionDomain, SubjectMisrate)

	_, err = SignedRankMargin(5, 1.5)
	requireViolation(t, err, AssumptionDomain, SubjectMisrate)

	// 2^(1-5) = 0.0625 is the floor for n=5
	_, err = SignedRankMargin(5, 0.01)
	requireViolation(t, err, AssumptionDomain, SubjectMisrate)
}

func TestPairwiseMargin_ExactValues(t *testing.T) {
	// n=m=2: Mann-Whitney counts {1,1,2,1,1}/6, first u with CDF >= 0.25 is 1.
	got, err := PairwiseMargin(2, 2, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("PairwiseMargin(2, 2, 0.5) = %d, want 2", got)
	}

	got, err = PairwiseMargin(2, 2, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if got != 4 {
		t.Errorf("PairwiseMargin(2, 2, 1.0) = %d, want 4", got)
	}
}

func TestPairwiseMargin_MinMisrateGivesZero(t *testing.T) {
	pairs := [][2]int{{2, 2}, {4, 5}, {10, 10}}
	for _, pair := range pairs {
		n, m := pair[0], pair[1]
		min, err := MinAchievableMisrateTwoSample(n, m)
		if err != nil {
			t.Fatal(err)
		}
		got, err := PairwiseMargin(n, m, min)
		if err != nil {
			t.Fatalf("(%d, %d): %v", n, m, err)
		}
		if got != 0 {
			t.Errorf("PairwiseMargin(%d, %d, minMisrate) = %d, want 0", n, m, got)
		}
	}
}

func TestPairwiseMargin_MonotoneInMisrate(t *testing.T) {
	// Spans both the exact recurrence (n+m <= 400) and the Edgeworth regime.
	pairs := [][2]int{{30, 40}, {200, 200}, {250, 250}}
	for _, pair := range pairs {
		n, m := pair[0], pair[1]
		prev := -1
		for _, misrate := range []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0} {
			got, err := PairwiseMargin(n, m, misrate)
			if err != nil {
				t.Fatalf("(%d, %d, %v): %v", n, m, misrate, err)
			}
			if got%2 != 0 || got < 0 {
				t.Errorf("(%d, %d, %v): margin %d must be even and non-negative", n, m, misrate, got)
			}
			if got < prev {
				t.Errorf("(%d, %d): margin decreased from %d to %d at misrate %v", n, m, prev, got, misrate)
			}
			prev = got
		}
	}
}

func TestPairwiseMargin_Violations(t *testing.T) {
	_, err := PairwiseMargin(0, 3, 0.5)
	requireViolation(t, err, AssumptionDomain, SubjectX)

	_, err = PairwiseMargin(3, 0, 0.5)
	requireViolation(t, err, AssumptionDomain, SubjectY)

	_, err = PairwiseMargin(3, 3, math.NaN())
	requireViolation(t, err, AssumptionDomain, SubjectMisrate)

	// 2/C(6,3) = 0.1 is the floor for n=m=3
	_, err = PairwiseMargin(3, 3, 0.05)
	requireViolation(t, err, AssumptionDomain, SubjectMisrate)
}

func TestSignMarginRandomized(t *testing.T) {
	t.Run("degenerate target is deterministic", func(t *testing.T) {
		// n=1, misrate=1: CDF(0) = 0.5 equals the target exactly, no tie-break.
		for i := 0; i < 20; i++ {
			got, err := SignMarginRandomized(1, 1.0, rng.FromSeed(int64(i)))
			if err != nil {
				t.Fatal(err)
			}
			if got != 0 {
				t.Errorf("seed %d: got %d, want 0", i, got)
			}
		}
	})

	t.Run("randomizes between straddling margins", func(t *testing.T) {
		// n=3, misrate=0.5: target 0.25 falls between CDF(0)=1/8 and
		// CDF(1)=1/2, so the margin is 0 with probability 2/3 and 2 otherwise.
		seen := make(map[int]int)
		for i := 0; i < 200; i++ {
			got, err := SignMarginRandomized(3, 0.5, rng.FromSeed(int64(i)))
			if err != nil {
				t.Fatal(err)
			}
			if got != 0 && got != 2 {
				t.Fatalf("seed %d: got %d, want 0 or 2", i, got)
			}
			seen[got]++
		}
		if seen[0] == 0 || seen[2] == 0 {
			t.Errorf("tie-break never produced both margins: %v", seen)
		}
	})

	t.Run("reproducible for a fixed seed", func(t *testing.T) {
		a, err := SignMarginRandomized(9, 0.2, rng.FromString("margin"))
		if err != nil {
			t.Fatal(err)
		}
		b, err := SignMarginRandomized(9, 0.2, rng.FromString("margin"))
		if err != nil {
			t.Fatal(err)
		}
		if a != b {
			t.Errorf("same seed gave %d then %d", a, b)
		}
	})

	t.Run("violations", func(t *testing.T) {
		_, err := SignMarginRandomized(0, 0.5, rng.FromSeed(1))
		requireViolation(t, err, AssumptionDomain, SubjectX)

		_, err = SignMarginRandomized(5, -0.1, rng.FromSeed(1))
		requireViolation(t, err, AssumptionDomain, SubjectMisrate)

		_, err = SignMarginRandomized(5, 0.01, rng.FromSeed(1))
		requireViolation(t, err, AssumptionDomain, SubjectMisrate)
	})
}

func TestMinAchievableMisrates(t *testing.T) {
	got, err := MinAchievableMisrateOneSample(5, SubjectX)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.0625 {
		t.Errorf("one-sample n=5: got %v, want 0.0625", got)
	}

	got, err = MinAchievableMisrateOneSample(1, SubjectX)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1.0 {
		t.Errorf("one-sample n=1: got %v, want 1", got)
	}

	_, err = MinAchievableMisrateOneSample(0, SubjectY)
	requireViolation(t, err, AssumptionDomain, SubjectY)

	got, err = MinAchievableMisrateTwoSample(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-0.1) > 1e-15 {
		t.Errorf("two-sample 3x3: got %v, want 0.1", got)
	}

	_, err = MinAchievableMisrateTwoSample(0, 3)
	requireViolation(t, err, AssumptionDomain, SubjectX)
	_, err = MinAchievableMisrateTwoSample(3, 0)
	requireViolation(t, err, AssumptionDomain, SubjectY)
}

func TestBinomialCoefficient(t *testing.T) {
	exact := []struct {
		n, k int
		want float64
	}{
		{0, 0, 1},
		{5, 2, 10},
		{10, 5, 252},
		{52, 5, 2598960},
	}
	for _, c := range exact {
		if got := binomialCoefficient(c.n, c.k); got != c.want {
			t.Errorf("C(%d, %d) = %v, want %v", c.n, c.k, got, c.want)
		}
	}

	// Above the exact threshold the Stirling expansion takes over.
	got := binomialCoefficient(70, 35)
	want := 1.12186277816662845432e20
	if math.Abs(got-want)/want > 1e-9 {
		t.Errorf("C(70, 35) = %v, want %v within 1e-9 relative", got, want)
	}
}

func TestGaussCdf(t *testing.T) {
	if got := gaussCdf(0); got != 0.5 {
		t.Errorf("gaussCdf(0) = %v, want 0.5", got)
	}

	cases := []struct {
		x, want float64
	}{
		{1.0, 0.8413447461},
		{1.96, 0.9750021049},
		{-1.96, 0.0249978951},
		{2.5758293035, 0.995},
	}
	for _, c := range cases {
		if got := gaussCdf(c.x); math.Abs(got-c.want) > 1e-6 {
			t.Errorf("gaussCdf(%v) = %v, want %v", c.x, got, c.want)
		}
	}

	for _, x := range []float64{0.3, 1.1, 2.7, 4.0} {
		if got := gaussCdf(x) + gaussCdf(-x); math.Abs(got-1) > 1e-9 {
			t.Errorf("gaussCdf(%v) + gaussCdf(-%v) = %v, want 1", x, x, got)
		}
	}

	if got := gaussCdf(8); got != 1 {
		t.Errorf("gaussCdf(8) = %v, want 1", got)
	}
}
