// Package source produces the deltas a session consumes: fixed-size
// chunks of a complete document (simulating a token stream) or an
// explicit script of deltas authored as JSONC.
package source

import (
	"context"
	"io"
	"time"
	"unicode/utf8"

	"github.com/rileyhilliard/genui/internal/errors"
)

// DefaultChunkSize is the chunk size used when none is configured.
const DefaultChunkSize = 16

// Chunk splits text into deltas of at most size bytes. Chunks never split
// a UTF-8 sequence, so a chunk may run a few bytes over size to finish a
// rune.
func Chunk(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	var out []string
	for len(text) > 0 {
		end := min(size, len(text))
		for end < len(text) && !utf8.RuneStart(text[end]) {
			end++
		}
		out = append(out, text[:end])
		text = text[end:]
	}
	return out
}

// ReadChunks reads all of r and chunks it.
func ReadChunks(r io.Reader, size int) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStream,
			"Failed to read document",
			"Check that the input file exists and is readable.")
	}
	return Chunk(string(data), size), nil
}

// Play calls fn for every step, waiting delay between steps. It stops at
// the first error or when ctx is done.
func Play(ctx context.Context, steps []Step, delay time.Duration, fn func(Step) error) error {
	for i, step := range steps {
		if i > 0 && delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(step); err != nil {
			return err
		}
	}
	return nil
}

// Deltas wraps plain deltas as steps.
func Deltas(deltas []string) []Step {
	steps := make([]Step, len(deltas))
	for i, d := range deltas {
		steps[i] = Step{Delta: d}
	}
	return steps
}
