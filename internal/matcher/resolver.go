package matcher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rickgao/fpl-data/internal/model"
)

// Option is one scored candidate offered to a Resolver.
type Option struct {
	Candidate
	Score float64
}

// Resolver settles a source entity the matcher could not accept on its own.
// It returns the chosen target id and true, or false to leave it unmatched.
type Resolver interface {
	Resolve(ctx context.Context, source Candidate, outcome model.Outcome, options []Option) (int, bool, error)
}

// RejectResolver leaves every unsettled entity unmatched.
type RejectResolver struct{}

// Resolve implements Resolver.
func (RejectResolver) Resolve(context.Context, Candidate, model.Outcome, []Option) (int, bool, error) {
	return 0, false, nil
}

// PromptResolver asks an operator to pick from a numbered list.
// An empty line, 0 or end of input rejects.
type PromptResolver struct {
	In  io.Reader
	Out io.Writer

	once    sync.Once
	scanner *bufio.Scanner
}

// Resolve implements Resolver.
func (p *PromptResolver) Resolve(ctx context.Context, source Candidate, outcome model.Outcome, options []Option) (int, bool, error) {
	if len(options) == 0 {
		return 0, false, nil
	}
	p.once.Do(func() { p.scanner = bufio.NewScanner(p.In) })

	fmt.Fprintf(p.Out, "\n%s (%s): %s\n", source.Name, strings.Join(source.Teams, ", "), outcome)
	for i, o := range options {
		fmt.Fprintf(p.Out, "  %d) %s [%s] %.2f\n", i+1, o.Name, strings.Join(o.Teams, ", "), o.Score)
	}

	for {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		fmt.Fprint(p.Out, "choice (0 to reject): ")
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return 0, false, fmt.Errorf("read choice: %w", err)
			}
			return 0, false, nil
		}
		line := strings.TrimSpace(p.scanner.Text())
		if line == "" || line == "0" {
			return 0, false, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintf(p.Out, "enter a number between 0 and %d\n", len(options))
			continue
		}
		return options[n-1].ID, true, nil
	}
}
