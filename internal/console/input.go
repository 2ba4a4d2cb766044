package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// maxLineBytes bounds a single input line. Longer lines are discarded whole.
const maxLineBytes = 64 * 1024

// errLineTooLong is returned for a line longer than maxLineBytes. The rest of
// that line has already been consumed, so the next read starts fresh.
var errLineTooLong = errors.New("input line too long")

type inputLine struct {
	text    string
	tooLong bool
}

// lineReader reads whole lines on a background goroutine so that a session
// blocked on input still honours context cancellation. Every read consumes
// the line ending, which keeps a numeric answer from leaking into the next
// text prompt.
type lineReader struct {
	lines chan inputLine
	done  chan struct{}
	err   error // set before lines is closed
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines: make(chan inputLine),
		done:  make(chan struct{}),
	}
	go lr.run(r)
	return lr
}

func (lr *lineReader) run(r io.Reader) {
	defer close(lr.lines)
	br := bufio.NewReader(r)
	for {
		line, err := readLine(br)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				lr.err = err
			}
			return
		}
		select {
		case lr.lines <- line:
		case <-lr.done:
			return
		}
	}
}

// readLine returns one line without its ending. A line over maxLineBytes is
// drained to its end and reported as tooLong with no text.
func readLine(br *bufio.Reader) (inputLine, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return inputLine{}, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return inputLine{text: string(buf), tooLong: tooLong}, nil
		}
	}
}

// next returns the next line without its line ending, io.EOF at end of input
// and errLineTooLong for a discarded line.
func (lr *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if !ok {
			if lr.err != nil {
				return "", lr.err
			}
			return "", io.EOF
		}
		if line.tooLong {
			return "", errLineTooLong
		}
		return strings.TrimRight(line.text, "\r"), nil
	}
}

// nextText skips blank lines and trims surrounding whitespace, keeping
// whitespace inside the text.
func (lr *lineReader) nextText(ctx context.Context) (string, error) {
	for {
		line, err := lr.next(ctx)
		if err != nil {
			return "", err
		}
		if text := strings.TrimSpace(line); text != "" {
			return text, nil
		}
	}
}

func (lr *lineReader) stop() {
	close(lr.done)
}
