package query

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/thdiaman/OntologyAPI/metric"
	"github.com/thdiaman/OntologyAPI/ontology"
)

// Row is one result row: the projected values in projection-list order
// plus the full variable bindings that produced them.
type Row struct {
	Values   []ontology.Value
	Bindings map[string]ontology.Value
}

// Result holds the outcome of one query execution.
type Result struct {
	// ID correlates this execution across logs.
	ID       string
	Vars     []string
	Rows     []Row
	Duration time.Duration
}

// Engine evaluates parsed queries against a store. metrics and logger may
// be nil.
type Engine struct {
	store   *ontology.Store
	metrics *metric.Metrics
	logger  *slog.Logger
}

// NewEngine creates a query engine bound to a store.
func NewEngine(store *ontology.Store, metrics *metric.Metrics, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, metrics: metrics, logger: logger}
}

// ExecuteString parses and executes a query in one step.
func (e *Engine) ExecuteString(text string) (*Result, error) {
	q, err := Parse(text, e.store.Namespace())
	if err != nil {
		e.metrics.RecordQuery(0, 0, err)
		return nil, err
	}
	return e.Execute(q)
}

// Execute evaluates a parsed query with a nested-loop join over the
// store's facts. Row order follows insertion order of the first pattern's
// matching facts, refined in the same order by each subsequent join.
func (e *Engine) Execute(q *Query) (*Result, error) {
	start := time.Now()
	result := &Result{
		ID:   uuid.NewString(),
		Vars: append([]string(nil), q.Select...),
		Rows: []Row{},
	}

	facts := e.store.Facts()
	e.join(q, facts, 0, make(map[string]ontology.Value), result)

	result.Duration = time.Since(start)
	e.metrics.RecordQuery(result.Duration, len(result.Rows), nil)
	e.logger.Debug("query executed",
		"query_id", result.ID,
		"patterns", len(q.Where),
		"rows", len(result.Rows),
		"duration", result.Duration)
	return result, nil
}

// join extends bindings with every fact matching pattern idx, recursing
// until all patterns are consumed, then emits one row per joint binding.
func (e *Engine) join(
	q *Query, facts []ontology.Fact, idx int, bindings map[string]ontology.Value, result *Result,
) {
	if idx == len(q.Where) {
		result.Rows = append(result.Rows, e.makeRow(q, bindings))
		return
	}

	p := q.Where[idx]
	for _, f := range e.candidates(p, facts, bindings) {
		extended, ok := matchPattern(p, f, bindings)
		if !ok {
			continue
		}
		e.join(q, facts, idx+1, extended, result)
	}
}

// candidates narrows the scan with the predicate index when the pattern's
// predicate is fixed or already bound; otherwise the full fact list is
// scanned in insertion order.
func (e *Engine) candidates(
	p Pattern, facts []ontology.Fact, bindings map[string]ontology.Value,
) []ontology.Fact {
	pred, fixed := resolveTerm(p.Predicate, bindings)
	if fixed && pred.Kind == ontology.KindIRI {
		return e.store.FactsByPredicate(pred.IRI)
	}
	return facts
}

// makeRow projects the bindings into a result row.
func (e *Engine) makeRow(q *Query, bindings map[string]ontology.Value) Row {
	row := Row{
		Values:   make([]ontology.Value, len(q.Select)),
		Bindings: make(map[string]ontology.Value, len(bindings)),
	}
	for name, v := range bindings {
		row.Bindings[name] = v
	}
	for i, name := range q.Select {
		row.Values[i] = bindings[name]
	}
	return row
}

// resolveTerm returns the concrete value of a term under the current
// bindings, and whether it is concrete at all.
func resolveTerm(t Term, bindings map[string]ontology.Value) (ontology.Value, bool) {
	if !t.IsVar {
		return t.Value, true
	}
	v, ok := bindings[t.Var]
	return v, ok
}

// matchPattern checks one fact against one pattern under the current
// bindings. On a match it returns a new bindings map extended with any
// newly bound variables; the original map is never mutated, since sibling
// branches of the join share it.
func matchPattern(
	p Pattern, f ontology.Fact, bindings map[string]ontology.Value,
) (map[string]ontology.Value, bool) {
	type bindingPair struct {
		name  string
		value ontology.Value
	}
	var added []bindingPair

	check := func(t Term, actual ontology.Value) bool {
		if !t.IsVar {
			return t.Value.Equal(actual)
		}
		if v, ok := bindings[t.Var]; ok {
			return v.Equal(actual)
		}
		for _, a := range added {
			if a.name == t.Var {
				return a.value.Equal(actual)
			}
		}
		added = append(added, bindingPair{name: t.Var, value: actual})
		return true
	}

	if !check(p.Subject, ontology.IRIValue(f.Subject)) {
		return nil, false
	}
	if !check(p.Predicate, ontology.IRIValue(f.Predicate)) {
		return nil, false
	}
	if !check(p.Object, f.Object) {
		return nil, false
	}

	extended := make(map[string]ontology.Value, len(bindings)+len(added))
	for name, v := range bindings {
		extended[name] = v
	}
	for _, a := range added {
		extended[a.name] = a.value
	}
	return extended, true
}
