package train

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// ErrInsufficientData means a split would leave one side empty.
var ErrInsufficientData = errors.New("not enough rows to split dataset")

const testFraction = 0.2

// Split divides the cleaned table 80/20. The first applicable
// strategy wins: grouped by user so no user straddles the boundary,
// then chronological holdout of the last 20%, then seeded random,
// then a plain positional slice.
func Split(t Table, seed int64) (train, test []Sample, strategy string, err error) {
	n := len(t.Samples)
	if n < 2 {
		return nil, nil, "", fmt.Errorf("%w: have %d rows", ErrInsufficientData, n)
	}

	if t.HasUser {
		if train, test, ok := splitGrouped(t.Samples, seed); ok {
			return train, test, "grouped(user_id)", nil
		}
	}
	if t.HasTime {
		train, test := splitTemporal(t.Samples)
		if len(train) > 0 && len(test) > 0 {
			return train, test, "temporal(last 20%)", nil
		}
	}
	if train, test, ok := splitRandom(t.Samples, seed); ok {
		return train, test, "random", nil
	}
	train, test = splitSlice(t.Samples)
	if len(train) == 0 || len(test) == 0 {
		return nil, nil, "", fmt.Errorf("%w: have %d rows", ErrInsufficientData, n)
	}
	return train, test, "slice", nil
}

// splitGrouped shuffles the distinct users and sends whole users to
// the test side until it holds roughly 20% of the rows. Needs at
// least two groups so both sides end up non-empty.
func splitGrouped(samples []Sample, seed int64) (train, test []Sample, ok bool) {
	counts := make(map[string]int)
	for _, s := range samples {
		counts[s.User]++
	}
	if len(counts) < 2 {
		return nil, nil, false
	}
	groups := make([]string, 0, len(counts))
	for g := range counts {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(groups), func(i, j int) { groups[i], groups[j] = groups[j], groups[i] })

	want := int(float64(len(samples)) * testFraction)
	if want < 1 {
		want = 1
	}
	testGroups := make(map[string]bool)
	held := 0
	for _, g := range groups {
		if held >= want || len(testGroups) == len(groups)-1 {
			break
		}
		testGroups[g] = true
		held += counts[g]
	}
	for _, s := range samples {
		if testGroups[s.User] {
			test = append(test, s)
		} else {
			train = append(train, s)
		}
	}
	return train, test, len(train) > 0 && len(test) > 0
}

func splitTemporal(samples []Sample) (train, test []Sample) {
	ordered := append([]Sample(nil), samples...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].At.Before(ordered[j].At) })
	return cutTail(ordered)
}

func splitRandom(samples []Sample, seed int64) (train, test []Sample, ok bool) {
	shuffled := append([]Sample(nil), samples...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	train, test = cutTail(shuffled)
	return train, test, len(train) > 0 && len(test) > 0
}

func splitSlice(samples []Sample) (train, test []Sample) {
	return cutTail(append([]Sample(nil), samples...))
}

// cutTail holds out the last max(1, 20%) rows.
func cutTail(samples []Sample) (train, test []Sample) {
	n := len(samples)
	hold := int(float64(n) * testFraction)
	if hold < 1 {
		hold = 1
	}
	if hold >= n {
		return nil, samples
	}
	return samples[:n-hold], samples[n-hold:]
}
