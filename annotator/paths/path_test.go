package paths

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestSampleLinearTwoPoints(t *testing.T) {
	p := &Path{ID: 1, Points: [][]float64{{0, 0, 0}, {10, 0, 0}}}

	got, err := p.Sample(5)
	require.NoError(t, err)
	require.Len(t, got, 5)

	require.Equal(t, []float64{0, 0, 0}, got[0])
	require.Equal(t, []float64{10, 0, 0}, got[4])
	require.InDelta(t, 5.0, got[2][0], 1e-9, "midpoint of a straight segment")
}

func TestSamplePassesThroughEndpoints(t *testing.T) {
	p := &Path{ID: 1, Points: [][]float64{
		{0, 0, 0},
		{1, 2, 0},
		{3, 3, 1},
		{6, 2, 2},
		{8, 0, 3},
	}}

	got, err := p.Sample(50)
	require.NoError(t, err)
	require.Len(t, got, 50)

	require.InDeltaSlice(t, p.Points[0], got[0], 1e-9)
	require.InDeltaSlice(t, p.Points[len(p.Points)-1], got[49], 1e-9)
}

func TestSampleEvenSpacingOnStraightLine(t *testing.T) {
	p := &Path{ID: 1, Points: [][]float64{{0, 0}, {4, 0}, {8, 0}, {12, 0}, {16, 0}}}

	got, err := p.Sample(9)
	require.NoError(t, err)

	for i := 1; i < len(got); i++ {
		step := floats.Distance(got[i-1], got[i], 2)
		require.InDelta(t, 2.0, step, 1e-9)
	}
}

func TestSampleDropsRepeatedPoints(t *testing.T) {
	p := &Path{ID: 1, Points: [][]float64{{0, 0, 0}, {0, 0, 0}, {10, 0, 0}}}

	got, err := p.Sample(3)
	require.NoError(t, err)
	require.Equal(t, []float64{10, 0, 0}, got[2])
}

func TestSampleDegeneratePath(t *testing.T) {
	p := &Path{ID: 1, Points: [][]float64{{1, 1, 1}}}
	_, err := p.Sample(10)
	require.Error(t, err)

	p = &Path{ID: 2, Points: [][]float64{{1, 1, 1}, {1, 1, 1}}}
	_, err = p.Sample(10)
	require.Error(t, err)
}

func TestSampleTooFewSamples(t *testing.T) {
	p := &Path{ID: 1, Points: [][]float64{{0, 0, 0}, {1, 1, 1}}}
	_, err := p.Sample(1)
	require.Error(t, err)
}
