package engine

import (
	"github.com/cockroachdb/errors"

	"gdpboard/internal/models"
)

type Operation string

const (
	OpSum     Operation = "sum"
	OpAverage Operation = "average"
)

// ParseOperation accepts exactly "sum" and "average".
func ParseOperation(name string) (Operation, error) {
	switch op := Operation(name); op {
	case OpSum, OpAverage:
		return op, nil
	default:
		return "", errors.WithHint(
			errors.Wrapf(ErrUnsupportedOperation, "%q", name),
			`operation must be "sum" or "average"`)
	}
}

// Aggregate reduces the values of records with op. An empty input yields an
// absent result for every supported operation, never zero.
func Aggregate(records []models.Record, op Operation) (models.AggregateResult, error) {
	if op != OpSum && op != OpAverage {
		return models.AggregateResult{}, errors.Wrapf(ErrUnsupportedOperation, "%q", string(op))
	}
	if len(records) == 0 {
		return models.AggregateResult{}, nil
	}

	var total float64
	for _, r := range records {
		total += r.Value
	}

	if op == OpAverage {
		return models.AggregateResult{Value: total / float64(len(records)), Valid: true}, nil
	}
	return models.AggregateResult{Value: total, Valid: true}, nil
}

// AggregateNamed parses name and aggregates in one step.
func AggregateNamed(records []models.Record, name string) (models.AggregateResult, error) {
	op, err := ParseOperation(name)
	if err != nil {
		return models.AggregateResult{}, err
	}
	return Aggregate(records, op)
}
