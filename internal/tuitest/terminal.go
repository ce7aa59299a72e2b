package tuitest

import (
	"bytes"
	"io"
)

// terminalQuery is a capability probe some TUI libraries emit at startup,
// paired with the reply a plain dark xterm would send.
type terminalQuery struct {
	ask   []byte
	reply []byte
}

var terminalQueries = []terminalQuery{
	{ask: []byte("\x1b[6n"), reply: []byte("\x1b[1;1R")},
	{ask: []byte("\x1b]10;?\x07"), reply: []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{ask: []byte("\x1b]10;?\x1b\\"), reply: []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{ask: []byte("\x1b]11;?\x07"), reply: []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{ask: []byte("\x1b]11;?\x1b\\"), reply: []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

// terminalResponder answers probes so the program under test does not stall
// waiting on a real terminal.
type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128)}
}

func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerNext() {
	}
	// keep a tail so probes split across reads still match
	if len(tr.buf) > 256 {
		tr.buf = tr.buf[len(tr.buf)-64:]
	}
}

// answerNext replies to the earliest pending probe in the buffer.
func (tr *terminalResponder) answerNext() bool {
	first, firstIdx := -1, -1
	for i, q := range terminalQueries {
		idx := bytes.Index(tr.buf, q.ask)
		if idx >= 0 && (firstIdx < 0 || idx < firstIdx) {
			first, firstIdx = i, idx
		}
	}
	if first < 0 {
		return false
	}
	q := terminalQueries[first]
	tr.buf = tr.buf[firstIdx+len(q.ask):]
	_, _ = tr.w.Write(q.reply)
	return true
}
