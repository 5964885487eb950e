// internal/rules/engine.go
package rules

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

var (
	compiledRules = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novaorizon_rules_compiled_total",
		Help: "Rules compiled into predicate clauses",
	}, []string{"operator"})

	skippedRules = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novaorizon_rules_skipped_total",
		Help: "Rules left out of compiled predicates",
	}, []string{"reason"})
)

// Engine compiles collection rules for the collection service and records
// what was skipped.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a new rules engine instance.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Compile compiles the rules of a collection. Skipped rules are logged at
// debug level; half-finished rules are normal during authoring.
func (e *Engine) Compile(collection types.CollectionID, rules []types.Rule) *Predicate {
	pred := Compile(rules)
	for _, c := range pred.Clauses {
		compiledRules.WithLabelValues(c.Operator.Token()).Inc()
	}
	for _, s := range pred.Skipped {
		skippedRules.WithLabelValues(string(s.Reason)).Inc()
		e.logger.Debug("rule skipped",
			zap.String("collection_id", string(collection)),
			zap.Int("position", s.Position),
			zap.String("attribute", s.Attribute),
			zap.String("operator", s.Operator),
			zap.String("reason", string(s.Reason)),
		)
	}
	return pred
}
