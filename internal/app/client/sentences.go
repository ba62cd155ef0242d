package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseSentence reads "value:text" or plain "text". The prefix counts as a
// value only when it is an optionally negative integer, so "note: hi" keeps
// its colon.
func ParseSentence(line string) SentenceInput {
	prefix, rest, ok := strings.Cut(line, ":")
	if ok && isInteger(prefix) {
		return SentenceInput{Text: rest, Value: prefix}
	}
	return SentenceInput{Text: line}
}

// ReadSentences parses one sentence per non-blank line.
func ReadSentences(r io.Reader) ([]SentenceInput, error) {
	var out []SentenceInput
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, ParseSentence(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read sentences: %w", err)
	}
	return out, nil
}

func isInteger(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
