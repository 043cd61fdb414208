package domain

import (
	"encoding/json"
	"time"
)

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindNull
	KindObject
	KindArray
)

// LeafKinds and AllKinds are in selection order; generators index into them.
var (
	LeafKinds = []Kind{KindString, KindNumber, KindBoolean, KindNull}
	AllKinds  = []Kind{KindString, KindNumber, KindBoolean, KindNull, KindObject, KindArray}
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

func (k Kind) IsContainer() bool {
	return k == KindObject || k == KindArray
}

// Value is one generated JSON-like value. Only the payload matching Kind is set.
type Value struct {
	Kind   Kind
	Str    string
	Num    float64
	Bool   bool
	Fields []Field
	Items  []Value
}

// Field is an object entry. Keys may repeat within one object.
type Field struct {
	Key   string
	Value Value
}

func StringValue(s string) Value     { return Value{Kind: KindString, Str: s} }
func NumberValue(f float64) Value    { return Value{Kind: KindNumber, Num: f} }
func BoolValue(b bool) Value         { return Value{Kind: KindBoolean, Bool: b} }
func NullValue() Value               { return Value{Kind: KindNull} }
func ObjectValue(f []Field) Value    { return Value{Kind: KindObject, Fields: f} }
func ArrayValue(items []Value) Value { return Value{Kind: KindArray, Items: items} }

// Limits bounds every random choice the generator makes.
type Limits struct {
	MaxDepth          int     `json:"max_depth" yaml:"max_depth"`
	StringMinLen      int     `json:"string_min_len" yaml:"string_min_len"`
	StringMaxLen      int     `json:"string_max_len" yaml:"string_max_len"`
	KeyLen            int     `json:"key_len" yaml:"key_len"`
	NumberMin         float64 `json:"number_min" yaml:"number_min"`
	NumberMax         float64 `json:"number_max" yaml:"number_max"`
	ContainerMin      int     `json:"container_min" yaml:"container_min"`
	ContainerMax      int     `json:"container_max" yaml:"container_max"`
	DocumentFieldsMin int     `json:"document_fields_min" yaml:"document_fields_min"`
	DocumentFieldsMax int     `json:"document_fields_max" yaml:"document_fields_max"`
}

func DefaultLimits() Limits {
	return Limits{
		MaxDepth:          10,
		StringMinLen:      5,
		StringMaxLen:      15,
		KeyLen:            8,
		NumberMin:         -1000,
		NumberMax:         1000,
		ContainerMin:      1,
		ContainerMax:      5,
		DocumentFieldsMin: 3,
		DocumentFieldsMax: 7,
	}
}

const (
	DefaultCount     = 1000
	DefaultOutput    = "random_data.json"
	DefaultSeed      = int64(12345)
	DefaultDelimiter = "__JSON__"
	DefaultStyle     = "python"
	DefaultKeys      = "alnum"
)

// Profile is a named generation configuration.
type Profile struct {
	Name      string `json:"name" yaml:"name"`
	Count     int    `json:"count" yaml:"count"`
	Output    string `json:"output" yaml:"output"`
	Seed      int64  `json:"seed" yaml:"seed"`
	Delimiter string `json:"delimiter" yaml:"delimiter"`
	Style     string `json:"style" yaml:"style"`
	Keys      string `json:"keys" yaml:"keys"`
	Limits    Limits `json:"limits" yaml:"limits"`
}

func DefaultProfile() *Profile {
	return &Profile{
		Name:      "default",
		Count:     DefaultCount,
		Output:    DefaultOutput,
		Seed:      DefaultSeed,
		Delimiter: DefaultDelimiter,
		Style:     DefaultStyle,
		Keys:      DefaultKeys,
		Limits:    DefaultLimits(),
	}
}

type GenerateRequest struct {
	ProfileName string   `json:"profile_name,omitempty"`
	ProfilePath string   `json:"profile_path,omitempty"`
	Profile     *Profile `json:"profile,omitempty"`
	Count       *int     `json:"count,omitempty"`
	Output      string   `json:"output,omitempty"`
	Seed        *int64   `json:"seed,omitempty"`
	Style       string   `json:"style,omitempty"`
	Keys        string   `json:"keys,omitempty"`
	Delimiter   string   `json:"delimiter,omitempty"`
}

type Run struct {
	ID          string          `json:"id"`
	ProfileName string          `json:"profile_name"`
	Output      string          `json:"output"`
	Count       int             `json:"count"`
	Seed        int64           `json:"seed"`
	ConfigHash  string          `json:"config_hash"`
	Status      RunStatus       `json:"status"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Stats       json.RawMessage `json:"stats,omitempty"`
	Error       string          `json:"error,omitempty"`
}

type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

type RunStats struct {
	Documents       int            `json:"documents"`
	BytesWritten    int64          `json:"bytes_written"`
	DurationSeconds float64        `json:"duration_seconds"`
	KindCounts      map[string]int `json:"kind_counts"`
	MaxDepth        int            `json:"max_depth"`
}
