package fixture

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmrzaf/jsonfixture/internal/generators"
	"github.com/stretchr/testify/require"
)

func TestUnwrap_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewWriter(generators.New(12345)).Write(&buf, 10)
	require.NoError(t, err)

	arr, trailing, err := Unwrap(buf.Bytes(), DefaultWrapper())
	require.NoError(t, err)
	require.True(t, trailing)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal(arr, &docs))
	require.Len(t, docs, 10)
}

func TestVerifyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	_, err := NewWriter(generators.New(12345)).WriteFile(path, 25)
	require.NoError(t, err)

	report, err := VerifyFile(path, DefaultWrapper())
	require.NoError(t, err)
	require.Equal(t, 25, report.Documents)
	require.True(t, report.TrailingComma)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, info.Size(), report.Bytes)
}

func TestVerify_Rejects(t *testing.T) {
	w := DefaultWrapper()
	cases := map[string]string{
		"missing prefix": `[{"a": 1},\n])__JSON__"`,
		"missing suffix": `R"__JSON__([{"a": 1},`,
		"not an array":   `R"__JSON__({"a": 1})__JSON__"`,
		"bad json":       `R"__JSON__([{"a": },\n])__JSON__"`,
		"non-object":     `R"__JSON__([{"a": 1}, 2,\n])__JSON__"`,
	}
	for name, in := range cases {
		_, err := Verify([]byte(in), w)
		require.Error(t, err, name)
	}
}

func TestVerify_WithoutTrailingComma(t *testing.T) {
	report, err := Verify([]byte(`R"__JSON__([{"a": 1}])__JSON__"`), DefaultWrapper())
	require.NoError(t, err)
	require.Equal(t, 1, report.Documents)
	require.False(t, report.TrailingComma)
}
