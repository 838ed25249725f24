package sql

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Type is the storage class of a SQLite value
// https://www.sqlite.org/datatype3.html
type Type int

const (
	Null Type = iota
	Integer
	Real
	Text
	Blob
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case Text:
		return "TEXT"
	case Blob:
		return "BLOB"
	}
	return "NULL"
}

// TimeFormat is the layout SQLite itself uses for date and time text. Table
// exports select DATE/DATETIME/TIMESTAMP columns raw, a time.Time only shows
// up in ad-hoc queries and is turned into text with this layout.
const TimeFormat = "2006-01-02 15:04:05.999999999-07:00"

// Value is a single cell returned by the database
type Value struct {
	typ Type
	i   int64
	f   float64
	s   string
	b   []byte
}

func NullValue() Value { return Value{} }
func IntegerValue(i int64) Value { return Value{typ: Integer, i: i} }
func RealValue(f float64) Value { return Value{typ: Real, f: f} }
func TextValue(s string) Value { return Value{typ: Text, s: s} }
func BlobValue(b []byte) Value { return Value{typ: Blob, b: b} }
func (v Value) Type() Type { return v.typ }
func (v Value) IsNull() bool { return v.typ == Null }
func (v Value) Int() int64 { return v.i }
func (v Value) Float() float64 { return v.f }
func (v Value) Text() string { return v.s }
func (v Value) Bytes() []byte { return v.b }

// ValueOf converts a value produced by the driver
func ValueOf(cell any) (Value, error) {
	switch c := cell.(type) {
	case nil:
		return NullValue(), nil
	case int64:
		return IntegerValue(c), nil
	case float64:
		return RealValue(c), nil
	case bool:
		if c {
			return IntegerValue(1), nil
		}
		return IntegerValue(0), nil
	case string:
		return TextValue(c), nil
	case []byte:
		return BlobValue(c), nil
	case time.Time:
		return TextValue(c.Format(TimeFormat)), nil
	}
	return Value{}, fmt.Errorf("unsupported value type %T", cell)
}

func (v Value) String() string {
	switch v.typ {
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Real:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Text:
		return v.s
	case Blob:
		return base64.StdEncoding.EncodeToString(v.b)
	}
	return "NULL"
}

// BlobEncoding decides how BLOB values are written to JSON
type BlobEncoding string

const (
	// BlobBase64 writes blobs as standard base64 with padding
	BlobBase64 BlobEncoding = "base64"
	// BlobText writes the raw bytes as a string, invalid UTF-8 is replaced
	// by the JSON encoder
	BlobText BlobEncoding = "text"
)

// ParseBlobEncoding accepts "base64", "text" or "" (base64)
func ParseBlobEncoding(s string) (BlobEncoding, error) {
	switch BlobEncoding(s) {
	case "", BlobBase64:
		return BlobBase64, nil
	case BlobText:
		return BlobText, nil
	}
	return "", fmt.Errorf("invalid blob encoding: %s", s)
}

// Native converts v to the dynamic type encoding/json understands
func (v Value) Native(enc BlobEncoding) any {
	switch v.typ {
	case Integer:
		return v.i
	case Real:
		// JSON has no representation for infinities
		if math.IsInf(v.f, 1) {
			return "Infinity"
		}
		if math.IsInf(v.f, -1) {
			return "-Infinity"
		}
		return v.f
	case Text:
		return v.s
	case Blob:
		if enc == BlobText {
			return string(v.b)
		}
		return base64.StdEncoding.EncodeToString(v.b)
	}
	return nil
}
