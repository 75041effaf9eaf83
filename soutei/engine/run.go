package engine

import (
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/wbrown/janus-soutei/soutei"
	"github.com/wbrown/janus-soutei/soutei/annotations"
)

// Termination records which condition ended a run's answer stream.
type Termination int

const (
	// TermExhausted means the stream ran out of branches to explore.
	TermExhausted Termination = iota
	// TermStepLimit means the step budget was spent first.
	TermStepLimit
	// TermAnswerLimit means the answer budget was filled first.
	TermAnswerLimit
)

func (t Termination) String() string {
	switch t {
	case TermStepLimit:
		return "step-limit"
	case TermAnswerLimit:
		return "answer-limit"
	default:
		return "exhausted"
	}
}

// RunStats is the diagnostic summary of one run.
type RunStats struct {
	RunID       string
	Steps       int
	Answers     int
	Termination Termination
}

// Options carries the optional observability hooks for a run. The zero
// value disables both.
type Options struct {
	Handler annotations.Handler
	Logger  *zap.Logger
}

// Run evaluates a query against the database and returns up to
// answerLimit grounded call-site literals, spending at most stepLimit
// scheduler steps. Both bounds are mandatory; with finite bounds the
// call never blocks indefinitely, left-recursive rules included.
func Run(stepLimit, answerLimit int, db Database, query soutei.Goal) []soutei.Literal {
	answers, _ := RunWithOptions(Options{}, stepLimit, answerLimit, db, query)
	return answers
}

// RunWithOptions is Run with observability attached, returning the
// diagnostic stats alongside the answers.
func RunWithOptions(opts Options, stepLimit, answerLimit int, db Database, query soutei.Goal) ([]soutei.Literal, RunStats) {
	stats := RunStats{RunID: ulid.Make().String()}
	obs := newObserver(opts, stats.RunID)

	start := time.Now()
	obs.runInvoked(query, stepLimit, answerLimit)

	var answers []soutei.Literal
	if answerLimit > 0 && stepLimit > 0 {
		st := newState(db, obs)
		stream := Resolve(query, st)

		for stream != nil {
			if stream.answer != nil {
				lit := stream.answer.WalkLiteral(query.Lit)
				answers = append(answers, lit)
				obs.answer(lit)
				if len(answers) >= answerLimit {
					stats.Termination = TermAnswerLimit
					break
				}
				stream = stream.force()
				continue
			}
			if stats.Steps >= stepLimit {
				stats.Termination = TermStepLimit
				break
			}
			stats.Steps++
			stream = stream.force()
		}
	} else {
		// A zero bound yields the empty list for any query.
		if stepLimit <= 0 {
			stats.Termination = TermStepLimit
		} else {
			stats.Termination = TermAnswerLimit
		}
	}

	stats.Answers = len(answers)
	obs.runCompleted(start, stats)
	return answers, stats
}

// CompileQuery constructs a query goal. An assertion name beginning with
// ':' refers to a native assertion; the colon is stripped, matching the
// rule-file syntax where ':' is the lexical marker rather than part of
// the name.
func CompileQuery(assn string, pred string, args []soutei.Term) soutei.Goal {
	var ref soutei.AssertionRef
	if len(assn) > 0 && assn[0] == ':' {
		ref = soutei.NativeRef{Name: assn[1:]}
	} else {
		ref = soutei.PrincipalRef{Term: soutei.Const{Value: assn}}
	}
	return soutei.Goal{Assn: ref, Lit: soutei.NewLiteral(pred, args...)}
}
