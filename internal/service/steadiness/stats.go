package steadiness

import "math"

// The numeric transforms live here as standalone pure functions so they can
// be unit-tested without a Service instance.

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev is the n-1 standard deviation.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

// CV returns the coefficient of variation as a percentage:
// sample standard deviation over mean, times 100.
// Fewer than 2 values or a zero mean yields 0, never a fault.
func CV(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	if m == 0 {
		return 0
	}
	return sampleStdDev(values) / m * 100
}

// ScoreFromCV maps a CV percentage onto a 0-100 steadiness score:
// cv 0 scores 100, cv at or above maxCV scores 0, linear in between.
func ScoreFromCV(cv, maxCV, scale float64) int {
	capped := math.Min(cv, maxCV)
	score := 100 - capped*scale
	return int(math.Round(math.Max(0, math.Min(100, score))))
}

// ZoneEntropy computes the Shannon entropy of the zone multiset and its
// normalized form H / log2(uniqueZones). One or zero distinct zones carry no
// information, so the normalized entropy is defined as 0 there.
func ZoneEntropy(zones []string) (entropy, normalized float64, unique int) {
	if len(zones) == 0 {
		return 0, 0, 0
	}

	counts := make(map[string]int)
	for _, z := range zones {
		counts[z]++
	}
	unique = len(counts)

	total := float64(len(zones))
	for _, c := range counts {
		p := float64(c) / total
		entropy -= p * math.Log2(p)
	}

	if unique <= 1 {
		return entropy, 0, unique
	}
	normalized = entropy / math.Log2(float64(unique))
	return entropy, normalized, unique
}

// ZoneScore converts zone diversity into a 0-100 consistency score: a single
// zone worked exclusively scores 100, a uniform spread over many distinct
// zones approaches 0.
func ZoneScore(zones []string) int {
	_, normalized, _ := ZoneEntropy(zones)
	return int(math.Round(100 * (1 - normalized)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
