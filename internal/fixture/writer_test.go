package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmrzaf/jsonfixture/internal/generators"
	"github.com/mmrzaf/jsonfixture/internal/jsontext"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_TwoDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	n, err := NewWriter(generators.New(12345)).WriteFile(path, 2)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), n)

	text := string(data)
	require.True(t, strings.HasPrefix(text, `R"__JSON__([{`), "prefix: %q", text[:20])
	require.True(t, strings.HasSuffix(text, "},\n])__JSON__\""))
	require.Equal(t, 2, strings.Count(text, "},\n"))

	body := strings.TrimSuffix(strings.TrimPrefix(text, `R"__JSON__([`), `])__JSON__"`)
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		require.True(t, strings.HasSuffix(line, ","))
		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSuffix(line, ",")), &doc))
		require.GreaterOrEqual(t, len(doc), 3)
		require.LessOrEqual(t, len(doc), 7)
	}
}

func TestWrite_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	_, err := NewWriter(generators.New(12345)).Write(&a, 50)
	require.NoError(t, err)
	_, err = NewWriter(generators.New(12345)).Write(&b, 50)
	require.NoError(t, err)
	require.Equal(t, a.Bytes(), b.Bytes())

	var c bytes.Buffer
	_, err = NewWriter(generators.New(54321)).Write(&c, 50)
	require.NoError(t, err)
	require.NotEqual(t, a.Bytes(), c.Bytes())
}

func TestWriteFile_DeterministicAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.json")
	p2 := filepath.Join(dir, "b.json")
	_, err := NewWriter(generators.New(12345)).WriteFile(p1, 20)
	require.NoError(t, err)
	_, err = NewWriter(generators.New(12345)).WriteFile(p2, 20)
	require.NoError(t, err)

	d1, err := os.ReadFile(p1)
	require.NoError(t, err)
	d2, err := os.ReadFile(p2)
	require.NoError(t, err)
	require.Equal(t, d1, d2)
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 1<<16), 0o644))
	_, err := NewWriter(generators.New(1)).WriteFile(path, 1)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "xxxx")
}

func TestWrite_ZeroDocuments(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewWriter(generators.New(1)).Write(&buf, 0)
	require.NoError(t, err)
	require.Equal(t, `R"__JSON__([])__JSON__"`, buf.String())
}

func TestWrite_CustomWrapperAndStyle(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(generators.New(1),
		WithWrapper(RawStringWrapper("X")),
		WithStyle(jsontext.StyleCompact),
	)
	_, err := w.Write(&buf, 3)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(buf.String(), `R"X([`))
	require.True(t, strings.HasSuffix(buf.String(), `])X"`))
	require.NotContains(t, buf.String(), `": `)
}

func TestWriteFile_UnopenablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")
	_, err := NewWriter(generators.New(1)).WriteFile(path, 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

type failAfter struct {
	limit   int
	written int
}

var errBoom = errors.New("boom")

func (f *failAfter) Write(p []byte) (int, error) {
	if f.written+len(p) > f.limit {
		return 0, errBoom
	}
	f.written += len(p)
	return len(p), nil
}

func TestWrite_PropagatesWriteError(t *testing.T) {
	_, err := NewWriter(generators.New(1)).Write(&failAfter{limit: 10}, 500)
	require.Error(t, err)
	require.True(t, errors.Is(err, errBoom))
}

type recordingProgress struct{ steps []int }

func (r *recordingProgress) Step(done, total int) { r.steps = append(r.steps, done) }

func TestWrite_ReportsProgressAndStats(t *testing.T) {
	p := &recordingProgress{}
	stats := generators.NewStats()
	var buf bytes.Buffer
	_, err := NewWriter(generators.New(1), WithProgress(p), WithStats(stats)).Write(&buf, 4)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4}, p.steps)
	require.Equal(t, 4, stats.Documents)
	require.NotEmpty(t, stats.KindCounts)
}
