/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package drift

import (
	"math"
	"sort"
)

// per-feature drift flags use the test's own significance level, not the
// caller-supplied dataset threshold
const defaultSignificanceLevel = 0.05

// FeatureTest compares the reference distribution of one feature against its
// current-window distribution. Score is in [0,1], higher meaning more
// different. Implementations must be deterministic and stateless so concurrent
// analyses can share them.
type FeatureTest interface {
	Name() string
	Compare(reference, current []float64) (score float64, drifted bool)
}

// KolmogorovSmirnovTest is the two-sample distribution-equality test applied
// to continuous numeric features
type KolmogorovSmirnovTest struct{}

func (t KolmogorovSmirnovTest) Name() string {
	return "ks"
}

func (t KolmogorovSmirnovTest) Compare(reference, current []float64) (float64, bool) {
	ref := append([]float64(nil), reference...)
	cur := append([]float64(nil), current...)
	sort.Float64s(ref)
	sort.Float64s(cur)

	// maximum distance between the two empirical CDFs. Tie groups are consumed
	// whole on both sides before the distance check, so the CDFs are only ever
	// compared at real jump points.
	var d float64
	i, j := 0, 0
	n1, n2 := float64(len(ref)), float64(len(cur))
	for i < len(ref) && j < len(cur) {
		v1, v2 := ref[i], cur[j]
		if v1 <= v2 {
			for i < len(ref) && ref[i] == v1 {
				i++
			}
		}
		if v2 <= v1 {
			for j < len(cur) && cur[j] == v2 {
				j++
			}
		}
		dist := math.Abs(float64(i)/n1 - float64(j)/n2)
		if dist > d {
			d = dist
		}
	}

	ne := n1 * n2 / (n1 + n2)
	lambda := (math.Sqrt(ne) + 0.12 + 0.11/math.Sqrt(ne)) * d
	p := ksProbability(lambda)
	return 1 - p, p < defaultSignificanceLevel
}

// ksProbability is the Kolmogorov distribution tail Q_KS(lambda),
// the asymptotic two-sample p-value
func ksProbability(lambda float64) float64 {
	if lambda <= 0 {
		return 1
	}
	var sum float64
	sign := 1.0
	for j := 1; j <= 100; j++ {
		term := sign * math.Exp(-2*float64(j)*float64(j)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}
	p := 2 * sum
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ChiSquareTest is the frequency-comparison test applied to low-cardinality
// (categorical) features. It builds a 2xK contingency table over the union of
// observed categories with expected counts from the pooled distribution.
type ChiSquareTest struct{}

func (t ChiSquareTest) Name() string {
	return "chi-square"
}

func (t ChiSquareTest) Compare(reference, current []float64) (float64, bool) {
	refCounts := countCategories(reference)
	curCounts := countCategories(current)

	categorySet := make(map[float64]struct{}, len(refCounts)+len(curCounts))
	for c := range refCounts {
		categorySet[c] = struct{}{}
	}
	for c := range curCounts {
		categorySet[c] = struct{}{}
	}
	if len(categorySet) < 2 {
		// a single shared category across both samples carries no signal
		return 0, false
	}
	// fixed summation order keeps repeated runs bit-identical
	categories := make([]float64, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Float64s(categories)

	nRef := float64(len(reference))
	nCur := float64(len(current))
	total := nRef + nCur

	var chi2 float64
	for _, category := range categories {
		pooled := (refCounts[category] + curCounts[category]) / total
		expectedRef := pooled * nRef
		expectedCur := pooled * nCur
		chi2 += square(refCounts[category]-expectedRef) / expectedRef
		chi2 += square(curCounts[category]-expectedCur) / expectedCur
	}

	dof := float64(len(categories) - 1)
	p := chiSquareSurvival(chi2, dof)
	return 1 - p, p < defaultSignificanceLevel
}

func countCategories(values []float64) map[float64]float64 {
	counts := make(map[float64]float64)
	for _, v := range values {
		counts[v]++
	}
	return counts
}

func square(x float64) float64 {
	return x * x
}

// chiSquareSurvival is P(X > chi2) for a chi-square distribution with dof
// degrees of freedom, the regularized upper incomplete gamma Q(dof/2, chi2/2)
func chiSquareSurvival(chi2, dof float64) float64 {
	if chi2 <= 0 || dof <= 0 {
		return 1
	}
	return gammaQ(dof/2, chi2/2)
}

// gammaQ computes the regularized upper incomplete gamma function Q(a, x)
// by series expansion for x < a+1 and continued fraction otherwise
func gammaQ(a, x float64) float64 {
	if x < 0 || a <= 0 {
		return 1
	}
	if x == 0 {
		return 1
	}
	if x < a+1 {
		return 1 - gammaSeriesP(a, x)
	}
	return gammaContinuedFractionQ(a, x)
}

func gammaSeriesP(a, x float64) float64 {
	lnGammaA, _ := math.Lgamma(a)
	ap := a
	sum := 1 / a
	del := sum
	for i := 0; i < 500; i++ {
		ap++
		del *= x / ap
		sum += del
		if math.Abs(del) < math.Abs(sum)*1e-14 {
			break
		}
	}
	return sum * math.Exp(-x+a*math.Log(x)-lnGammaA)
}

func gammaContinuedFractionQ(a, x float64) float64 {
	const tiny = 1e-300
	lnGammaA, _ := math.Lgamma(a)
	b := x + 1 - a
	c := 1 / tiny
	d := 1 / b
	h := d
	for i := 1; i <= 500; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = b + an/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < 1e-14 {
			break
		}
	}
	return math.Exp(-x+a*math.Log(x)-lnGammaA) * h
}
