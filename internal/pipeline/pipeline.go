package pipeline

import (
	"runtime"
	"sync"
)

// Job is one document in a batch.
type Job struct {
	Index int
	Path  string
}

type Analyzer func(job Job) error

// Run hands jobs to a fixed pool of workers and collects every error.
// Each job is handled by exactly one worker.
func Run(jobs []Job, workers int, fn Analyzer) []error {
	if len(jobs) == 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}
	workers = min(workers, len(jobs))

	queue := make(chan Job)
	errs := make(chan error, len(jobs))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				if err := fn(job); err != nil {
					errs <- err
				}
			}
		}()
	}

	for _, job := range jobs {
		queue <- job
	}
	close(queue)
	wg.Wait()
	close(errs)

	out := make([]error, 0, len(errs))
	for err := range errs {
		out = append(out, err)
	}
	return out
}

func JobsFromPaths(paths []string) []Job {
	jobs := make([]Job, len(paths))
	for i, p := range paths {
		jobs[i] = Job{Index: i, Path: p}
	}
	return jobs
}
