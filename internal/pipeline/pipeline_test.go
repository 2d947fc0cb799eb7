package pipeline

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestRun(t *testing.T) {
	jobs := JobsFromPaths([]string{"a.txt", "b.txt", "c.txt"})

	var called int32
	errs := Run(jobs, 2, func(job Job) error {
		atomic.AddInt32(&called, 1)
		if job.Index == 1 {
			return errors.New("test error")
		}
		return nil
	})

	if called != int32(len(jobs)) {
		t.Fatalf("expected %d calls, got %d", len(jobs), called)
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
}

func TestRunDefaultsWorkers(t *testing.T) {
	var called int32
	errs := Run(JobsFromPaths([]string{"only.txt"}), 0, func(Job) error {
		atomic.AddInt32(&called, 1)
		return nil
	})
	if called != 1 || len(errs) != 0 {
		t.Fatalf("expected one clean call, got calls=%d errs=%v", called, errs)
	}
}

func TestRunNothing(t *testing.T) {
	if errs := Run(nil, 4, func(Job) error { return errors.New("never") }); errs != nil {
		t.Fatalf("expected nil, got %v", errs)
	}
}
