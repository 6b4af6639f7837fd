package batch

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// maxLineSize bounds a single script line.
const maxLineSize = 1 << 20

// Read decodes every operation in a script. Any malformed line fails the
// whole read with an error naming the line, so nothing is applied from a
// script that does not parse.
func Read(r io.Reader) ([]Op, error) {
	var ops []Op
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		var op Op
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&op); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if dec.More() {
			return nil, fmt.Errorf("line %d: %w: trailing data after object", line, ErrInvalidOp)
		}
		if err := op.check(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning script: %w", err)
	}
	return ops, nil
}
