// Package form collects a task's title and deadline from the user.
package form

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"todolist/internal/deadline"
)

// Values are the two fields of the task form.
type Values struct {
	Title    string
	Deadline string
}

// Request describes one form: its heading and the values to pre-populate.
type Request struct {
	Heading string
	Initial Values
}

// Prompter presents the form. ok is false when the user cancelled.
// A returned deadline is either empty or in deadline.Layout.
type Prompter interface {
	Ask(ctx context.Context, req Request) (v Values, ok bool, err error)
}

// Line asks for each field on its own line. An empty answer keeps the
// initial value; end of input before the first answer cancels.
type Line struct {
	in  *bufio.Reader
	out io.Writer
	loc *time.Location
}

// NewLine creates a Line prompter reading in and prompting on out.
func NewLine(in io.Reader, out io.Writer, loc *time.Location) *Line {
	return &Line{in: bufio.NewReader(in), out: out, loc: loc}
}

// Ask implements Prompter.
func (l *Line) Ask(ctx context.Context, req Request) (Values, bool, error) {
	if err := ctx.Err(); err != nil {
		return Values{}, false, err
	}
	if req.Heading != "" {
		fmt.Fprintln(l.out, req.Heading)
	}

	title, ok, err := l.field("Title", req.Initial.Title)
	if err != nil || !ok {
		return Values{}, false, err
	}

	when, ok, err := l.field("Deadline (YYYY-MM-DDTHH:MM)", req.Initial.Deadline)
	if err != nil || !ok {
		return Values{}, false, err
	}
	if strings.TrimSpace(when) != "" {
		when, err = deadline.Normalize(when, l.loc)
		if err != nil {
			return Values{}, false, err
		}
	}

	return Values{Title: title, Deadline: when}, true, nil
}

func (l *Line) field(label, initial string) (string, bool, error) {
	if initial != "" {
		fmt.Fprintf(l.out, "%s [%s]: ", label, initial)
	} else {
		fmt.Fprintf(l.out, "%s: ", label)
	}

	line, err := l.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(l.out)
		return "", false, nil
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return initial, true, nil
	}
	return line, true, nil
}
