// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package runnertest provides a scripted runner.Executor for tests.
package runnertest

import (
	"context"
	"sync"

	"ai-search-launcher/internal/runner"
)

// Call is one step seen by a Recorder.
type Call struct {
	Step       runner.CommandStep
	Foreground bool
}

// Recorder records every step it is asked to run and answers from Responses,
// keyed by CommandStep.Line(). Unlisted steps succeed with empty output.
// A step started after its context ended is recorded and reported as
// interrupted, as the local executor does.
type Recorder struct {
	mu        sync.Mutex
	calls     []Call
	Responses map[string]runner.Result

	// Hook, when set, is called after a step's response is chosen and
	// before it is returned.
	Hook func(step runner.CommandStep)
}

// New returns a Recorder with no scripted responses.
func New() *Recorder {
	return &Recorder{Responses: map[string]runner.Result{}}
}

// Fail scripts line to exit with code 1 and the given stderr.
func (r *Recorder) Fail(line, stderr string) *Recorder {
	r.Responses[line] = runner.Result{Code: 1, Stderr: stderr}
	return r
}

// Respond scripts an explicit result for line.
func (r *Recorder) Respond(line string, res runner.Result) *Recorder {
	r.Responses[line] = res
	return r
}

func (r *Recorder) record(ctx context.Context, step runner.CommandStep, foreground bool) runner.Result {
	if ctx.Err() != nil {
		r.mu.Lock()
		r.calls = append(r.calls, Call{Step: step, Foreground: foreground})
		r.mu.Unlock()
		return runner.Result{Code: -1, Interrupted: true}
	}

	r.mu.Lock()
	r.calls = append(r.calls, Call{Step: step, Foreground: foreground})
	res, ok := r.Responses[step.Line()]
	hook := r.Hook
	r.mu.Unlock()

	if hook != nil {
		hook(step)
	}
	if !ok {
		return runner.Result{}
	}
	return res
}

// Capture implements runner.Executor.
func (r *Recorder) Capture(ctx context.Context, step runner.CommandStep) runner.Result {
	return r.record(ctx, step, false)
}

// Foreground implements runner.Executor.
func (r *Recorder) Foreground(ctx context.Context, step runner.CommandStep) runner.Result {
	return r.record(ctx, step, true)
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Lines returns the command lines run so far, in order.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		lines = append(lines, c.Step.Line())
	}
	return lines
}
