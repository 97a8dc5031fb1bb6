package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPasswordReader reads passwords from the controlling terminal
// without echo. When stdin is not a terminal it falls back to reading a
// plain line, which keeps piped input usable.
type TerminalPasswordReader struct {
	In     *os.File
	Out    io.Writer
	reader *bufio.Reader
}

func NewTerminalPasswordReader() *TerminalPasswordReader {
	return &TerminalPasswordReader{In: os.Stdin, Out: os.Stderr}
}

func (r *TerminalPasswordReader) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(r.Out, prompt)
	fd := int(r.In.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(r.Out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	if r.reader == nil {
		r.reader = bufio.NewReader(r.In)
	}
	line, err := r.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
