package component

// Folding helpers for Aggregate results. They mirror how callers combine
// several answers to the same question.

// SumInt adds every int answer.
func SumInt(r Result) int {
	total := 0
	for _, v := range r.Values {
		if n, ok := AsInt(v); ok {
			total += n
		}
	}
	return total
}

// SumFloat adds every numeric answer.
func SumFloat(r Result) float64 {
	total := 0.0
	for _, v := range r.Values {
		if f, ok := AsFloat(v); ok {
			total += f
		}
	}
	return total
}

// Product multiplies every numeric answer; no answers yield 1.
func Product(r Result) float64 {
	total := 1.0
	for _, v := range r.Values {
		if f, ok := AsFloat(v); ok {
			total *= f
		}
	}
	return total
}

// All reports whether every answer is truthy; no answers yield true.
func All(r Result) bool {
	for _, v := range r.Values {
		if !Truthy(v) {
			return false
		}
	}
	return true
}

// Any reports whether some answer is truthy.
func Any(r Result) bool {
	for _, v := range r.Values {
		if Truthy(v) {
			return true
		}
	}
	return false
}

// Union concatenates []string answers, dropping repeats and keeping first
// occurrence order.
func Union(r Result) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, v := range r.Values {
		for _, s := range AsStrings(v) {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// SumStats adds []Pair stat answers per key, keeping first-seen key order.
func SumStats(r Result) []Pair {
	var out []Pair
	index := make(map[string]int)
	for _, v := range r.Values {
		for _, p := range AsPairs(v) {
			n, _ := AsInt(p.Value)
			if i, ok := index[p.Key]; ok {
				cur, _ := AsInt(out[i].Value)
				out[i].Value = cur + n
				continue
			}
			index[p.Key] = len(out)
			out = append(out, Pair{Key: p.Key, Value: n})
		}
	}
	return out
}

// Last returns the final answer, or nil.
func Last(r Result) any {
	if len(r.Values) == 0 {
		return nil
	}
	return r.Values[len(r.Values)-1]
}

// UnionUnits concatenates []Unit answers, dropping repeated unit nids.
func UnionUnits(r Result) []Unit {
	var out []Unit
	seen := make(map[string]struct{})
	for _, v := range r.Values {
		units, _ := v.([]Unit)
		for _, u := range units {
			if u == nil {
				continue
			}
			if _, dup := seen[u.NID()]; dup {
				continue
			}
			seen[u.NID()] = struct{}{}
			out = append(out, u)
		}
	}
	return out
}
