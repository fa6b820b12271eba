package dump

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Boundary markers of a pages-articles dump.
const (
	pageOpen  = "<page>"
	pageClose = "</page>"
	textOpen  = "<text"
	textClose = "</text>"
)

// maxScanLine bounds a single physical line of the dump stream.
const maxScanLine = 16 << 20

type state int

const (
	stateIdle state = iota
	stateInRecord
	stateInTextField
)

// Record is the accumulated raw text of one page unit.
type Record struct {
	Text  string
	Lines int
}

// ParserOptions configures a Parser.
type ParserOptions struct {
	// MaxTextLines bounds the accumulated text of a single record. A record
	// exceeding it is dropped whole and parsing resumes at the next page.
	MaxTextLines int
	// Emit is called once per completed record that accumulated any text.
	// A non-nil return aborts the run.
	Emit func(Record) error
	// OnDrop, if set, is called when an oversized record is abandoned.
	OnDrop func(lines int)
}

// Parser is a line-fed state machine that recovers page text fields from a
// dump stream while holding at most one bounded record in memory.
type Parser struct {
	maxTextLines int
	emit         func(Record) error
	onDrop       func(int)

	st    state
	buf   strings.Builder
	lines int
}

// NewParser returns a ready Parser.
func NewParser(opts ParserOptions) *Parser {
	max := opts.MaxTextLines
	if max <= 0 {
		max = 10000
	}
	emit := opts.Emit
	if emit == nil {
		emit = func(Record) error { return nil }
	}
	return &Parser{
		maxTextLines: max,
		emit:         emit,
		onDrop:       opts.OnDrop,
	}
}

// Feed advances the machine over one decoded line. Several markers may sit
// on the same line, so the line is consumed with a cursor rather than a
// single classification.
func (p *Parser) Feed(line string) error {
	rest := line
	for {
		switch p.st {
		case stateIdle:
			i := strings.Index(rest, pageOpen)
			if i < 0 {
				return nil
			}
			rest = rest[i+len(pageOpen):]
			p.st = stateInRecord
			p.buf.Reset()
			p.lines = 0

		case stateInRecord:
			ti := strings.Index(rest, textOpen)
			pi := strings.Index(rest, pageClose)
			switch {
			case ti >= 0 && (pi < 0 || ti < pi):
				// The open tag may carry attributes; text starts after '>'.
				after := rest[ti:]
				gt := strings.Index(after, ">")
				if gt < 0 {
					return nil
				}
				rest = after[gt+1:]
				p.st = stateInTextField
			case pi >= 0:
				rest = rest[pi+len(pageClose):]
				p.st = stateIdle
				if p.buf.Len() > 0 {
					rec := Record{Text: p.buf.String(), Lines: p.lines}
					p.buf.Reset()
					p.lines = 0
					if err := p.emit(rec); err != nil {
						return err
					}
				}
			default:
				return nil
			}

		case stateInTextField:
			if ci := strings.Index(rest, textClose); ci >= 0 {
				// Trailing text on the closing line belongs to the record.
				p.buf.WriteString(rest[:ci])
				rest = rest[ci+len(textClose):]
				p.st = stateInRecord
				continue
			}
			p.buf.WriteString(rest)
			p.buf.WriteByte('\n')
			p.lines++
			if p.lines > p.maxTextLines {
				p.abandon()
			}
			return nil
		}
	}
}

// abandon drops the current record wholesale. Bounds per-record memory
// against malformed or gigantic entries.
func (p *Parser) abandon() {
	lines := p.lines
	p.buf.Reset()
	p.lines = 0
	p.st = stateIdle
	if p.onDrop != nil {
		p.onDrop(lines)
	}
}

// Run feeds every line of r through the machine. A read error aborts the
// run; no partial result is reported as success.
func (p *Parser) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxScanLine)
	for sc.Scan() {
		if err := p.Feed(sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read dump stream: %w", err)
	}
	return nil
}
