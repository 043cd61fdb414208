package fixture

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mmrzaf/jsonfixture/internal/generators"
	"github.com/mmrzaf/jsonfixture/internal/jsontext"
)

const documentSeparator = ",\n"

// Progress receives a callback after every document.
type Progress interface {
	Step(done, total int)
}

type Writer struct {
	gen      *generators.Generator
	wrapper  Wrapper
	style    jsontext.Style
	progress Progress
	stats    *generators.Stats
}

type Option func(*Writer)

func WithWrapper(w Wrapper) Option {
	return func(fw *Writer) { fw.wrapper = w }
}

func WithStyle(s jsontext.Style) Option {
	return func(fw *Writer) { fw.style = s }
}

func WithProgress(p Progress) Option {
	return func(fw *Writer) { fw.progress = p }
}

// WithStats makes the writer observe every generated document.
func WithStats(s *generators.Stats) Option {
	return func(fw *Writer) { fw.stats = s }
}

func NewWriter(gen *generators.Generator, opts ...Option) *Writer {
	fw := &Writer{
		gen:     gen,
		wrapper: DefaultWrapper(),
		style:   jsontext.StylePython,
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw
}

// Write streams count documents to w and returns the number of bytes written.
// Every document, the last one included, is followed by ",\n".
func (fw *Writer) Write(w io.Writer, count int) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	enc := jsontext.NewEncoder(bw, fw.style)

	if _, err := bw.WriteString(fw.wrapper.Prefix + "["); err != nil {
		return cw.n, err
	}
	for i := 0; i < count; i++ {
		doc := fw.gen.GenerateDocument()
		if fw.stats != nil {
			fw.stats.Observe(doc)
		}
		if err := enc.Encode(doc); err != nil {
			return cw.n, fmt.Errorf("document %d: %w", i, err)
		}
		if _, err := bw.WriteString(documentSeparator); err != nil {
			return cw.n, fmt.Errorf("document %d: %w", i, err)
		}
		if fw.progress != nil {
			fw.progress.Step(i+1, count)
		}
	}
	if _, err := bw.WriteString("]" + fw.wrapper.Suffix); err != nil {
		return cw.n, err
	}
	if err := bw.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// WriteFile truncates or creates path and writes count documents to it. A
// failed write leaves the partial file in place.
func (fw *Writer) WriteFile(path string, count int) (n int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fw.Write(f, count)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
