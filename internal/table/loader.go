package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Trip CSVs come from data loggers that write semicolon-separated rows with
// one header line and, depending on the logger's locale, either a comma or a
// dot as the decimal separator. Only the first four columns (time, x, y, z)
// are used; anything after them is ignored.

// Load reads a trip CSV from disk.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trip csv: %w", err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses a trip CSV from r. The first line is treated as a header and
// skipped.
func Read(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	t := &Table{}
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if lineNum == 1 || line == "" {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) < 4 {
			return nil, fmt.Errorf("line %d: expected 4 columns, got %d", lineNum, len(fields))
		}

		var vals [4]float64
		for i := 0; i < 4; i++ {
			v, err := parseField(fields[i])
			if err != nil {
				return nil, fmt.Errorf("line %d, column %d: %w", lineNum, i+1, err)
			}
			vals[i] = v
		}

		t.Time = append(t.Time, vals[0])
		t.Rows = append(t.Rows, [3]float64{vals[1], vals[2], vals[3]})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read trip csv: %w", err)
	}
	return t, nil
}

// parseField converts one raw CSV field to a float. Loggers in comma-decimal
// locales write "1,25" where others write "1.25"; both are accepted, as is a
// leading minus sign.
func parseField(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad numeric field %q", raw)
	}
	return v, nil
}
