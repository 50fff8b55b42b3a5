package optimizer

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"
	maxLineBytes = 1024 * 1024
)

// Decoder reads text fragments from a chat-completions event stream
type Decoder struct {
	scanner *bufio.Scanner
	done    bool
}

// NewDecoder creates a decoder over r
func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Decoder{scanner: scanner}
}

// Next returns the next non-empty fragment. It returns io.EOF after the [DONE]
// sentinel or when the stream ends cleanly, and the read error otherwise.
func (d *Decoder) Next() (string, error) {
	if d.done {
		return "", io.EOF
	}
	for d.scanner.Scan() {
		text, done := ParseLine(d.scanner.Text())
		if done {
			d.done = true
			return "", io.EOF
		}
		if text != "" {
			return text, nil
		}
	}
	if err := d.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// SawDone reports whether the [DONE] sentinel was read
func (d *Decoder) SawDone() bool {
	return d.done
}

// ParseLine extracts the fragment carried by one stream line. Lines other than
// "data:" lines, unparsable payloads and empty deltas yield "".
func ParseLine(line string) (text string, done bool) {
	line = strings.TrimRight(line, "\r")
	if !strings.HasPrefix(line, dataPrefix) {
		return "", false
	}
	payload := strings.TrimSpace(strings.TrimPrefix(line, dataPrefix))
	if payload == doneSentinel {
		return "", true
	}

	var chunk struct {
		Choices []struct {
			Delta struct {
				Content string `json:"content"`
			} `json:"delta"`
		} `json:"choices"`
		Content string `json:"content"` // relayed fragment
	}
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return "", false
	}
	if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
		return chunk.Choices[0].Delta.Content, false
	}
	return chunk.Content, false
}
