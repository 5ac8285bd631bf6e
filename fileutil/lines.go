package fileutil

import (
	"bufio"
	"bytes"
	"io"
)

// maxLineSize bounds a single line read from a stream.
const maxLineSize = 64 << 20

func splitLines(data []byte) ([]string, error) {
	return readLines(bytes.NewReader(data), len(data)+1)
}

// readLines reads r to the end and returns its lines without terminators.
func readLines(r io.Reader, maxLine int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(maxLine, bufio.MaxScanTokenSize)), maxLine)
	scanner.Split(scanLines)

	lines := []string{}
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// scanLines is bufio.ScanLines that also accepts a lone '\r' as a terminator.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		switch {
		case i+1 < len(data) && data[i+1] == '\n':
			return i + 2, data[:i], nil
		case i+1 < len(data) || atEOF:
			return i + 1, data[:i], nil
		default:
			// need one more byte to tell "\r" from "\r\n"
			return 0, nil, nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
