package engine

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gdpboard/internal/models"
)

func valuesToRecords(values ...float64) []models.Record {
	recs := make([]models.Record, len(values))
	for i, v := range values {
		recs[i] = models.Record{Name: "r", Year: 2020, Value: v}
	}
	return recs
}

func TestAggregate_EmptyIsAbsent(t *testing.T) {
	for _, op := range []Operation{OpSum, OpAverage} {
		res, err := Aggregate(nil, op)
		require.NoError(t, err)
		assert.False(t, res.Valid, "op %s", op)

		res, err = Aggregate([]models.Record{}, op)
		require.NoError(t, err)
		assert.False(t, res.Valid, "op %s", op)
	}
}

func TestAggregate_Average(t *testing.T) {
	res, err := Aggregate(valuesToRecords(1.0, 2.0, 3.0), OpAverage)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, 2.0, res.Value)
}

func TestAggregate_MatchesPlainSum(t *testing.T) {
	sets := [][]float64{
		{5},
		{0},
		{1.5, 2.25, -0.75},
		{2.6e12, 3.9e12, 1.8e13},
		{0.1, 0.2, 0.3, 0.4},
	}
	for _, values := range sets {
		var want float64
		for _, v := range values {
			want += v
		}

		sum, err := Aggregate(valuesToRecords(values...), OpSum)
		require.NoError(t, err)
		assert.True(t, sum.Valid)
		assert.Equal(t, want, sum.Value)

		avg, err := Aggregate(valuesToRecords(values...), OpAverage)
		require.NoError(t, err)
		assert.Equal(t, want/float64(len(values)), avg.Value)
	}
}

func TestAggregate_ZeroIsNotAbsent(t *testing.T) {
	res, err := Aggregate(valuesToRecords(0), OpSum)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, 0.0, res.Value)
}

func TestAggregate_SumOrderWithinTolerance(t *testing.T) {
	fwd, err := Aggregate(valuesToRecords(1e12, 0.1, 3.3e11, 7), OpSum)
	require.NoError(t, err)
	rev, err := Aggregate(valuesToRecords(7, 3.3e11, 0.1, 1e12), OpSum)
	require.NoError(t, err)
	assert.InEpsilon(t, fwd.Value, rev.Value, 1e-12)
}

func TestParseOperation(t *testing.T) {
	for _, name := range []string{"sum", "average"} {
		op, err := ParseOperation(name)
		require.NoError(t, err)
		assert.Equal(t, Operation(name), op)
	}

	for _, name := range []string{"bogus", "", "Sum", "avg", "mean", "count", " sum"} {
		_, err := ParseOperation(name)
		require.Error(t, err, "ParseOperation(%q)", name)
		assert.True(t, errors.Is(err, ErrUnsupportedOperation))
	}
}

func TestAggregate_UnsupportedOperation(t *testing.T) {
	// Fails even for empty input: an unknown operation never defaults
	for _, recs := range [][]models.Record{nil, valuesToRecords(1, 2)} {
		_, err := Aggregate(recs, Operation("bogus"))
		assert.True(t, errors.Is(err, ErrUnsupportedOperation))

		_, err = AggregateNamed(recs, "bogus")
		assert.True(t, errors.Is(err, ErrUnsupportedOperation))
	}
}

func TestAggregateNamed(t *testing.T) {
	res, err := AggregateNamed(valuesToRecords(2, 4), "average")
	require.NoError(t, err)
	assert.Equal(t, models.AggregateResult{Value: 3, Valid: true}, res)
}
