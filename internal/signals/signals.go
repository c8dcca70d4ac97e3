// Package signals derives which governance signals can currently be computed
// given the fields that matched a physical schema.
package signals

import (
	"sort"

	"github.com/fieldline/fieldline/internal/catalog"
	"github.com/fieldline/fieldline/internal/matching"
)

// Contributor is one matched field feeding a signal.
type Contributor struct {
	FieldID  string  `json:"fieldId"`
	Column   string  `json:"column"`
	Weight   float64 `json:"weight"`
	Required bool    `json:"required,omitempty"`
}

// Availability states whether one signal can be evaluated against the current
// schema and with which matched contributors.
type Availability struct {
	Signal Signal `json:"signal"`

	// Fields lists the matched contributors in catalog order.
	Fields []Contributor `json:"fields"`

	// TotalWeight is the summed weight of every contributor the catalog
	// declares for this signal, matched or not. MatchedWeight over
	// TotalWeight gives a completeness ratio for presentation.
	TotalWeight   float64 `json:"totalWeight"`
	MatchedWeight float64 `json:"matchedWeight"`

	// CanEvaluate is true the moment at least one contributor matched.
	// Partial evaluation is preferred over withholding the signal.
	CanEvaluate bool `json:"canEvaluate"`
}

// Signal aliases the catalog's signal type for callers that only import this
// package.
type Signal = catalog.Signal

// ComputeAvailability folds a batch match run over the catalog's signal
// contributions. Every signal the catalog mentions gets an entry, including
// signals with zero matched contributors.
func ComputeAvailability(c *catalog.Catalog, batch matching.BatchResult) map[Signal]Availability {
	matchedColumn := make(map[string]string, batch.Stats.Matched)
	for _, r := range batch.Results {
		if r.Matched {
			matchedColumn[r.FieldID] = r.MatchedColumn
		}
	}

	out := make(map[Signal]Availability)
	for _, f := range c.Fields() {
		for _, contrib := range f.SignalContributions {
			a := out[contrib.Signal]
			a.Signal = contrib.Signal
			a.TotalWeight += contrib.Weight

			if column, ok := matchedColumn[f.ID]; ok {
				a.MatchedWeight += contrib.Weight
				a.CanEvaluate = true
				a.Fields = append(a.Fields, Contributor{
					FieldID:  f.ID,
					Column:   column,
					Weight:   contrib.Weight,
					Required: contrib.Required,
				})
			}

			out[contrib.Signal] = a
		}
	}

	return out
}

// EvaluableSignals returns the signals that can be evaluated, sorted by name
// for stable output.
func EvaluableSignals(availability map[Signal]Availability) []Signal {
	var evaluable []Signal
	for signal, a := range availability {
		if a.CanEvaluate {
			evaluable = append(evaluable, signal)
		}
	}
	sort.Slice(evaluable, func(i, j int) bool { return evaluable[i] < evaluable[j] })
	return evaluable
}
