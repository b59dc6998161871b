// Package cascade deletes a root entity together with everything that
// depends on it, as one all-or-nothing transaction.
package cascade

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/sakif/qa-backend/internal/apperror"
	"github.com/sakif/qa-backend/internal/repository"
)

// StepResult is how many rows one step removed.
type StepResult struct {
	Step string `json:"step"`
	Rows int64  `json:"rows"`
}

// Result describes a committed run.
type Result struct {
	RunID  string       `json:"run_id"`
	Plan   string       `json:"plan"`
	RootID int64        `json:"root_id"`
	Steps  []StepResult `json:"steps"`
}

// Removed is the total number of rows deleted across all steps.
func (r Result) Removed() int64 {
	var n int64
	for _, s := range r.Steps {
		n += s.Rows
	}
	return n
}

type Engine struct {
	tx  repository.TxBeginner
	log *zap.Logger
}

func New(tx repository.TxBeginner, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{tx: tx, log: log}
}

// Run executes plan for the root id on one dedicated connection.
//
// Steps run strictly in order. The first failing step rolls back everything
// before it and the error is an apperror.TransactionFailed wrapping the cause.
// If the root step removes no row (someone else deleted it first) the run is
// rolled back and reported as NotFound. The connection is released on every
// path.
func (e *Engine) Run(ctx context.Context, plan Plan, id int64) (Result, error) {
	if len(plan.Steps) == 0 {
		return Result{}, fmt.Errorf("cascade: plan %q has no steps", plan.Name)
	}

	res := Result{RunID: xid.New().String(), Plan: plan.Name, RootID: id}
	log := e.log.With(
		zap.String("run_id", res.RunID),
		zap.String("plan", plan.Name),
		zap.Int64("root_id", id),
	)
	start := time.Now()

	conn, err := e.tx.BeginTx(ctx)
	if err != nil {
		log.Error("cascade could not start", zap.Error(err))
		return Result{}, apperror.TransactionFailed(plan.Name, err)
	}
	defer func() {
		if err := conn.Release(); err != nil {
			log.Warn("releasing cascade connection", zap.Error(err))
		}
	}()

	for i, step := range plan.Steps {
		n, err := conn.Exec(ctx, step.SQL, id)
		if err != nil {
			return Result{}, e.abort(conn, log, plan, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err))
		}
		log.Debug("cascade step",
			zap.Int("step", i+1),
			zap.String("name", step.Name),
			zap.Int64("rows", n),
		)
		res.Steps = append(res.Steps, StepResult{Step: step.Name, Rows: n})
	}

	if root := res.Steps[len(res.Steps)-1]; root.Rows != 1 {
		if err := conn.Rollback(); err != nil {
			log.Error("cascade rollback failed", zap.Error(err))
			return Result{}, apperror.TransactionFailed(plan.Name, err)
		}
		log.Info("cascade found no root row", zap.Int64("rows", root.Rows))
		return Result{}, apperror.NotFound(string(plan.Root), strconv.FormatInt(id, 10))
	}

	if err := conn.Commit(); err != nil {
		log.Error("cascade commit failed", zap.Error(err))
		return Result{}, apperror.TransactionFailed(plan.Name, err)
	}

	log.Info("cascade committed",
		zap.Int64("removed", res.Removed()),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

func (e *Engine) abort(conn repository.TxConn, log *zap.Logger, plan Plan, cause error) error {
	if rbErr := conn.Rollback(); rbErr != nil {
		cause = errors.Join(cause, rbErr)
	}
	log.Error("cascade rolled back", zap.Error(cause))
	return apperror.TransactionFailed(plan.Name, cause)
}
