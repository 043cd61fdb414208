package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

type Report struct {
	Documents     int   `json:"documents"`
	TrailingComma bool  `json:"trailing_comma"`
	Bytes         int64 `json:"bytes"`
}

// Unwrap strips the wrapper tokens and the trailing comma before the closing
// bracket, returning a strict JSON array.
func Unwrap(data []byte, w Wrapper) ([]byte, bool, error) {
	body := bytes.TrimSpace(data)
	if !bytes.HasPrefix(body, []byte(w.Prefix)) {
		return nil, false, fmt.Errorf("missing prefix %q", w.Prefix)
	}
	if !bytes.HasSuffix(body, []byte(w.Suffix)) {
		return nil, false, fmt.Errorf("missing suffix %q", w.Suffix)
	}
	body = body[len(w.Prefix) : len(body)-len(w.Suffix)]
	body = bytes.TrimSpace(body)

	if len(body) < 2 || body[0] != '[' || body[len(body)-1] != ']' {
		return nil, false, errors.New("wrapped content is not an array")
	}
	inner := bytes.TrimRight(body[1:len(body)-1], " \t\r\n")
	trailing := false
	if bytes.HasSuffix(inner, []byte(",")) {
		inner = inner[:len(inner)-1]
		trailing = true
	}

	out := make([]byte, 0, len(inner)+2)
	out = append(out, '[')
	out = append(out, inner...)
	out = append(out, ']')
	return out, trailing, nil
}

// Verify checks that data is a wrapped array of JSON objects.
func Verify(data []byte, w Wrapper) (*Report, error) {
	arr, trailing, err := Unwrap(data, w)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(arr) {
		return nil, errors.New("content is not valid JSON")
	}

	report := &Report{TrailingComma: trailing, Bytes: int64(len(data))}
	var elemErr error
	gjson.ParseBytes(arr).ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			elemErr = fmt.Errorf("element %d is %s, not an object", report.Documents, value.Type)
			return false
		}
		report.Documents++
		return true
	})
	if elemErr != nil {
		return nil, elemErr
	}
	return report, nil
}

func VerifyFile(path string, w Wrapper) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Verify(data, w)
}
