package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	t.Parallel()

	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}

	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{name: "p50 of 1..10", values: values, p: 50, want: 5},
		{name: "p95 of 1..10", values: values, p: 95, want: 10},
		{name: "p99 of 1..10", values: values, p: 99, want: 10},
		{name: "p0 clamps to smallest", values: values, p: 0, want: 1},
		{name: "p100 is largest", values: values, p: 100, want: 10},
		{name: "single element", values: []float64{42}, p: 95, want: 42},
		{name: "empty input", values: nil, p: 50, want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Percentile(tc.values, tc.p))
		})
	}
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	values := []float64{3, 1, 2}
	Percentile(values, 50)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestMedian(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "odd count", values: []float64{5, 1, 3}, want: 3},
		{name: "even count averages middle pair", values: []float64{4, 1, 3, 2}, want: 2.5},
		{name: "single element", values: []float64{7}, want: 7},
		{name: "empty input", values: nil, want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Median(tc.values))
		})
	}
}

func TestAverage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2.5, Average([]float64{1, 2, 3, 4}))
	assert.Equal(t, 0.0, Average(nil))
}

func TestMax(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 9.0, Max([]float64{3, 9, 4}))
	assert.Equal(t, -1.0, Max([]float64{-5, -1, -3}))
	assert.Equal(t, 0.0, Max(nil))
}

func TestSum(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 6.0, Sum([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, Sum(nil))
}

func TestSafeDivide(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2.0, SafeDivide(10, 5))
	assert.Equal(t, 0.0, SafeDivide(10, 0))
}
