package permission

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// DefaultQuestion is printed by StdinPrompter
const DefaultQuestion = "Allow Repo Downloader to show a notification when the download completes? [y/N] "

// StdinPrompter asks for consent on a line-oriented reader
type StdinPrompter struct {
	In       io.Reader
	Out      io.Writer
	Question string

	// Done, when closed, abandons an unanswered prompt as a refusal. If In
	// is an io.Closer it is closed so the pending read returns.
	Done <-chan struct{}
}

// Prompt prints the question and decides from the first answered line.
// End of input counts as a refusal.
func (p *StdinPrompter) Prompt(_ string, onDecision func(bool)) {
	question := p.Question
	if question == "" {
		question = DefaultQuestion
	}
	fmt.Fprint(p.Out, question)

	var once sync.Once
	decide := func(granted bool) {
		once.Do(func() { onDecision(granted) })
	}

	answered := make(chan struct{})
	go func() {
		defer close(answered)
		scanner := bufio.NewScanner(p.In)
		if !scanner.Scan() {
			decide(false)
			return
		}
		decide(parseAnswer(scanner.Text()))
	}()

	if p.Done == nil {
		return
	}
	go func() {
		select {
		case <-answered:
		case <-p.Done:
			decide(false)
			if c, ok := p.In.(io.Closer); ok {
				c.Close()
			}
		}
	}()
}

// parseAnswer accepts y and yes in any case
func parseAnswer(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
