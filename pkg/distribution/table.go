/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: table.go
Description: Flat textual table format for distributions. One record per line,
"<bitstring>,<probability>", bitstring most significant variable first. The variable
count is inferred from the first record. Compressed files are handled by extension.
*/

package distribution

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kleascm/condprob/pkg/core"
	"github.com/kleascm/condprob/pkg/utils"
)

// ExportPrecision is the number of decimals written per probability
const ExportPrecision = 10

// IndexToBitstring renders index as N characters, most significant variable first
func (d *Binary) IndexToBitstring(index uint64) string {
	return core.FormatBits(index, d.variables)
}

// BitstringToIndex parses an N-character bitstring into a state index
func (d *Binary) BitstringToIndex(s string) (uint64, error) {
	if len(s) != d.variables {
		return 0, fmt.Errorf("%w: expected %d characters, got %d", core.ErrInconsistentLength, d.variables, len(s))
	}
	return parseBitstring(s)
}

func parseBitstring(s string) (uint64, error) {
	var index uint64
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			index <<= 1
		case '1':
			index = index<<1 | 1
		default:
			return 0, fmt.Errorf("%w: invalid character %q in bitstring", core.ErrFormat, s[i])
		}
	}
	return index, nil
}

type record struct {
	line  int
	text  string
	bits  string
	value float64
}

// Read parses a distribution from the table format
func Read(r io.Reader) (*Binary, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		comma := strings.IndexByte(text, ',')
		if comma < 0 {
			return nil, &core.LineError{Line: lineNo, Text: text, Err: fmt.Errorf("%w: missing separator", core.ErrFormat)}
		}

		bitsField := strings.TrimSpace(text[:comma])
		if bitsField == "" {
			return nil, &core.LineError{Line: lineNo, Text: text, Err: fmt.Errorf("%w: missing bitstring", core.ErrFormat)}
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(text[comma+1:]), 64)
		if err != nil {
			return nil, &core.LineError{Line: lineNo, Text: text, Err: fmt.Errorf("%w: %v", core.ErrFormat, err)}
		}
		records = append(records, record{line: lineNo, text: text, bits: bitsField, value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrIO, err)
	}

	if len(records) == 0 {
		return nil, core.ErrEmptyFile
	}

	first := records[0]
	d, err := New(len(first.bits))
	if err != nil {
		return nil, &core.LineError{Line: first.line, Text: first.text, Err: err}
	}

	for _, rec := range records {
		if len(rec.bits) != d.variables {
			return nil, &core.LineError{Line: rec.line, Text: rec.text,
				Err: fmt.Errorf("%w: expected %d characters, got %d", core.ErrInconsistentLength, d.variables, len(rec.bits))}
		}
		index, err := parseBitstring(rec.bits)
		if err != nil {
			return nil, &core.LineError{Line: rec.line, Text: rec.text, Err: err}
		}
		if err := d.SetProbability(index, rec.value); err != nil {
			return nil, &core.LineError{Line: rec.line, Text: rec.text, Err: err}
		}
	}

	return d, nil
}

// Load reads a distribution from a table file
func Load(path string) (*Binary, error) {
	rc, err := utils.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %v", core.ErrIO, path, err)
	}
	defer rc.Close()

	d, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return d, nil
}

// Write emits the table format. Dense tables write every state and sparse
// tables write only states with nonzero mass.
func (d *Binary) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var werr error
	d.cells.scan(func(state uint64, p float64) bool {
		_, werr = fmt.Fprintf(bw, "%s,%.*f\n", d.IndexToBitstring(state), ExportPrecision, p)
		return werr == nil
	})
	if werr != nil {
		return fmt.Errorf("%w: %v", core.ErrIO, werr)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrIO, err)
	}
	return nil
}

// Export writes the table format to path
func (d *Binary) Export(path string) (err error) {
	wc, err := utils.CreateWriter(path)
	if err != nil {
		return fmt.Errorf("%w: cannot create %s: %v", core.ErrIO, path, err)
	}
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", core.ErrIO, cerr)
		}
	}()
	return d.Write(wc)
}
