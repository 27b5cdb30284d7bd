package table

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Writer appends samples to a trip CSV in the format Load understands:
// semicolon-separated, one header line, dot decimal separator.
//
// The recorder feeds it from an MQTT callback goroutine, so appends are
// mutex-protected, and the underlying bufio.Writer absorbs syscall overhead;
// data reaches the OS on Flush or Close.
type Writer struct {
	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
	rows uint64
}

// NewWriter creates (or truncates) a trip CSV and writes the header row.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}

	bw := bufio.NewWriterSize(f, 256*1024)
	if _, err := bw.WriteString("t;x;y;z\n"); err != nil {
		f.Close()
		return nil, fmt.Errorf("csv write header: %w", err)
	}

	return &Writer{file: f, buf: bw}, nil
}

// Append writes one sample row. Thread-safe.
func (w *Writer) Append(t, x, y, z float64) {
	w.mu.Lock()
	w.buf.WriteString(formatField(t))
	w.buf.WriteByte(';')
	w.buf.WriteString(formatField(x))
	w.buf.WriteByte(';')
	w.buf.WriteString(formatField(y))
	w.buf.WriteByte(';')
	w.buf.WriteString(formatField(z))
	w.buf.WriteByte('\n')
	w.rows++
	w.mu.Unlock()
}

// Flush pushes buffered rows to the OS.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Flush()
}

// Close flushes remaining rows and closes the file.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// Rows returns the number of data rows written (excludes header).
func (w *Writer) Rows() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}

func formatField(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
