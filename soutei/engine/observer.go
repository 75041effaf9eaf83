package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/wbrown/janus-soutei/soutei"
	"github.com/wbrown/janus-soutei/soutei/annotations"
)

// Observer is the run-wide sink for annotation events and debug logs.
// It is shared by every branch of a run; emission is never rolled back
// on backtracking, matching the side-effect ordering contract of the
// scheduler. A nil *Observer is valid and silent.
type Observer struct {
	collector *annotations.Collector
	logger    *zap.Logger
	runID     string
}

func newObserver(opts Options, runID string) *Observer {
	if opts.Handler == nil && opts.Logger == nil {
		return nil
	}
	return &Observer{
		collector: annotations.NewCollector(opts.Handler),
		logger:    opts.Logger,
		runID:     runID,
	}
}

// Collector returns the underlying collector, or nil.
func (o *Observer) Collector() *annotations.Collector {
	if o == nil {
		return nil
	}
	return o.collector
}

func (o *Observer) runInvoked(query soutei.Goal, stepLimit, answerLimit int) {
	if o == nil {
		return
	}
	o.collector.Add(annotations.Event{
		Name:  annotations.RunInvoked,
		Start: time.Now(),
		Data: map[string]interface{}{
			"query":        query.String(),
			"run.id":       o.runID,
			"step.limit":   stepLimit,
			"answer.limit": answerLimit,
		},
	})
	if o.logger != nil {
		o.logger.Debug("run invoked",
			zap.String("run_id", o.runID),
			zap.String("query", query.String()),
			zap.Int("step_limit", stepLimit),
			zap.Int("answer_limit", answerLimit))
	}
}

func (o *Observer) runCompleted(start time.Time, stats RunStats) {
	if o == nil {
		return
	}
	o.collector.AddTiming(annotations.RunCompleted, start, map[string]interface{}{
		"run.id":       o.runID,
		"step.count":   stats.Steps,
		"answer.count": stats.Answers,
		"termination":  stats.Termination.String(),
	})
	if o.logger != nil {
		o.logger.Debug("run completed",
			zap.String("run_id", o.runID),
			zap.Int("steps", stats.Steps),
			zap.Int("answers", stats.Answers),
			zap.String("termination", stats.Termination.String()))
	}
}

func (o *Observer) dispatch(goal soutei.Goal) {
	if o == nil {
		return
	}
	o.collector.Add(annotations.Event{
		Name:  annotations.ResolveDispatch,
		Start: time.Now(),
		Data:  map[string]interface{}{"goal": goal.String()},
	})
}

func (o *Observer) missingAssertion(ref soutei.AssertionRef) {
	if o == nil {
		return
	}
	o.collector.Add(annotations.Event{
		Name:  annotations.ResolveMissingAssertion,
		Start: time.Now(),
		Data:  map[string]interface{}{"assertion": ref.String()},
	})
}

func (o *Observer) missingPredicate(ref soutei.AssertionRef, key soutei.PredKey) {
	if o == nil {
		return
	}
	o.collector.Add(annotations.Event{
		Name:  annotations.ResolveMissingPredicate,
		Start: time.Now(),
		Data: map[string]interface{}{
			"assertion": ref.String(),
			"predicate": key.String(),
		},
	})
}

func (o *Observer) ungroundAssertion(goal soutei.Goal) {
	if o == nil {
		return
	}
	o.collector.Add(annotations.Event{
		Name:  annotations.ResolveUngroundAssertion,
		Start: time.Now(),
		Data:  map[string]interface{}{"goal": goal.String()},
	})
}

func (o *Observer) answer(lit soutei.Literal) {
	if o == nil {
		return
	}
	o.collector.Add(annotations.Event{
		Name:  annotations.AnswerEmitted,
		Start: time.Now(),
		Data:  map[string]interface{}{"answer": lit.String()},
	})
}

// NativeInvoked records a native predicate call. Exposed for the native
// bridge.
func (o *Observer) NativeInvoked(key soutei.PredKey, call soutei.Literal) {
	if o == nil {
		return
	}
	o.collector.Add(annotations.Event{
		Name:  annotations.NativeInvoked,
		Start: time.Now(),
		Data: map[string]interface{}{
			"predicate": key.String(),
			"call":      call.String(),
		},
	})
}

// NativeDecodeFailed records an input argument that did not decode to
// the host type the predicate expects.
func (o *Observer) NativeDecodeFailed(key soutei.PredKey, arg string) {
	if o == nil {
		return
	}
	o.collector.Add(annotations.Event{
		Name:  annotations.NativeDecodeFailed,
		Start: time.Now(),
		Data: map[string]interface{}{
			"predicate": key.String(),
			"arg":       arg,
		},
	})
}

// NativeCallFailed records a host call that returned an error. The error
// becomes a branch failure; it never propagates out of the scheduler.
func (o *Observer) NativeCallFailed(key soutei.PredKey, err error) {
	if o == nil {
		return
	}
	o.collector.Add(annotations.Event{
		Name:  annotations.NativeCallFailed,
		Start: time.Now(),
		Data: map[string]interface{}{
			"predicate": key.String(),
			"error":     err.Error(),
		},
	})
	if o.logger != nil {
		o.logger.Debug("native call failed",
			zap.String("run_id", o.runID),
			zap.String("predicate", key.String()),
			zap.Error(err))
	}
}
