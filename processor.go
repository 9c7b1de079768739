package qris

import (
	"context"
	"log/slog"
	"sync"
)

// Processor validates many payloads concurrently using a bounded number of
// goroutines. Each payload is handled independently.
type Processor struct {
	validator    *Validator
	concurrency  int          // Max number of goroutines for processing
	convert      bool         // Also produce the static form of valid payloads
	errorHandler func(Result) // Callback for failed payloads
}

// NewProcessor creates a new Processor with the given validator and options.
// A nil validator uses the default one.
func NewProcessor(v *Validator, opts ...ProcessorOption) *Processor {
	if v == nil {
		v = defaultValidator
	}
	p := &Processor{
		validator:   v,
		concurrency: 4, // Default concurrency
	}
	p.errorHandler = func(r Result) { // Default error handler
		p.validator.logger().Warn("payload rejected",
			slog.Int("index", r.Index),
			slog.Any("error", r.Err))
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process validates a single payload, converting it when configured to.
func (p *Processor) Process(input string) Result {
	r := Result{Input: input}

	r.Payload, r.Err = p.validator.Validate(input)
	if r.Err != nil || !p.convert {
		return r
	}

	// A reconversion failure still yields the produced string.
	r.Static, r.Err = p.validator.ToStatic(input)
	return r
}

// ProcessBatch validates inputs concurrently. Results are in input order.
// Failed payloads are reported through the error handler and carried in their
// Result; the returned error is only set when ctx is cancelled.
func (p *Processor) ProcessBatch(ctx context.Context, inputs []string) ([]Result, error) {
	results := make([]Result, len(inputs))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.concurrency) // Limit concurrent goroutines

	for i, input := range inputs {
		// Check for context cancellation before starting a new job
		if err := ctx.Err(); err != nil {
			wg.Wait() // Wait for already-running jobs
			return nil, err
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case semaphore <- struct{}{}: // Acquire semaphore slot
		}

		wg.Add(1)
		go func(idx int, data string) {
			defer wg.Done()
			defer func() { <-semaphore }() // Release semaphore slot

			r := p.Process(data)
			r.Index = idx
			if r.Err != nil && p.errorHandler != nil {
				p.errorHandler(r)
			}
			results[idx] = r
		}(i, input)
	}

	wg.Wait()
	return results, nil
}

// ProcessStream validates payloads from input and sends every Result to
// output, in completion order. It returns when input is closed or ctx is
// cancelled. Result.Index counts inputs in arrival order.
func (p *Processor) ProcessStream(ctx context.Context, input <-chan string, output chan<- Result) error {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.concurrency) // Limit concurrency

	for idx := 0; ; idx++ {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return err
		}

		select {
		case <-ctx.Done():
			// Context cancelled, wait for running jobs and exit
			wg.Wait()
			return ctx.Err()

		case data, ok := <-input:
			if !ok {
				// Input channel closed, wait for running jobs and exit
				wg.Wait()
				return nil
			}

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				wg.Wait()
				return ctx.Err()
			}

			wg.Add(1)
			go func(i int, s string) {
				defer wg.Done()
				defer func() { <-semaphore }() // Release semaphore

				r := p.Process(s)
				r.Index = i
				if r.Err != nil && p.errorHandler != nil {
					p.errorHandler(r)
				}

				select {
				case output <- r:
				case <-ctx.Done():
				}
			}(idx, data)
		}
	}
}
