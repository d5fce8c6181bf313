package json

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/nereid-labs/serde"
)

// Writer is a JSON writer implementing serde.Serializer, in compact mode by
// default or indented when constructed WithIndent.
type Writer struct {
	out    *bufio.Writer
	indent string
	level  int
	err    error
}

// WriterOption configures a Writer constructed by NewWriter.
type WriterOption func(*Writer)

// WithIndent switches the Writer to pretty-printed output using n spaces
// per nesting level.
func WithIndent(n int) WriterOption {
	return func(w *Writer) { w.indent = strings.Repeat(" ", n) }
}

// NewWriter constructs a Writer over out.
func NewWriter(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{out: bufio.NewWriter(out)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Flush flushes any buffered output.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.out.Flush()
}

func (w *Writer) writeByte(b byte) error {
	if w.err != nil {
		return w.err
	}
	w.err = w.out.WriteByte(b)
	return w.err
}

func (w *Writer) writeString(s string) error {
	if w.err != nil {
		return w.err
	}
	_, w.err = w.out.WriteString(s)
	return w.err
}

func (w *Writer) writeNewlineIndent(level int) error {
	if w.indent == "" {
		return nil
	}
	if err := w.writeByte('\n'); err != nil {
		return err
	}
	for i := 0; i < level; i++ {
		if err := w.writeString(w.indent); err != nil {
			return err
		}
	}
	return nil
}

// beginElement writes the comma separating this element from the previous
// one (if any) plus the indentation for this element, then clears *first.
func (w *Writer) beginElement(first *bool, level int) error {
	if !*first {
		if err := w.writeByte(','); err != nil {
			return err
		}
	}
	if err := w.writeNewlineIndent(level); err != nil {
		return err
	}
	*first = false
	return nil
}

const hexDigits = "0123456789abcdef"

func writeEscapedString(w *Writer, s string) error {
	if err := w.writeByte('"'); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			if err := w.writeString(`\"`); err != nil {
				return err
			}
		case c == '\\':
			if err := w.writeString(`\\`); err != nil {
				return err
			}
		case c == '\b':
			if err := w.writeString(`\b`); err != nil {
				return err
			}
		case c == '\f':
			if err := w.writeString(`\f`); err != nil {
				return err
			}
		case c == '\n':
			if err := w.writeString(`\n`); err != nil {
				return err
			}
		case c == '\r':
			if err := w.writeString(`\r`); err != nil {
				return err
			}
		case c == '\t':
			if err := w.writeString(`\t`); err != nil {
				return err
			}
		case c < 0x20:
			if err := w.writeString(`\u00`); err != nil {
				return err
			}
			if err := w.writeByte(hexDigits[c>>4]); err != nil {
				return err
			}
			if err := w.writeByte(hexDigits[c&0xF]); err != nil {
				return err
			}
		default:
			if err := w.writeByte(c); err != nil {
				return err
			}
		}
	}
	return w.writeByte('"')
}

// formatFloat renders f so that an integer-valued float drops its
// fractional part (3.0 -> "3"). strconv's shortest ('g', -1) form already
// does this for float64.
func formatFloat(f float64, bitSize int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", &serde.Error{Kind: serde.ErrUnsupportedFormat}
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize), nil
}

// ---- serde.Serializer ----

func (w *Writer) SerializeBool(v bool) error {
	if v {
		return w.writeString("true")
	}
	return w.writeString("false")
}

func (w *Writer) SerializeI8(v int8) error   { return w.writeString(strconv.FormatInt(int64(v), 10)) }
func (w *Writer) SerializeI16(v int16) error { return w.writeString(strconv.FormatInt(int64(v), 10)) }
func (w *Writer) SerializeI32(v int32) error { return w.writeString(strconv.FormatInt(int64(v), 10)) }
func (w *Writer) SerializeI64(v int64) error { return w.writeString(strconv.FormatInt(v, 10)) }
func (w *Writer) SerializeU8(v uint8) error  { return w.writeString(strconv.FormatUint(uint64(v), 10)) }
func (w *Writer) SerializeU16(v uint16) error {
	return w.writeString(strconv.FormatUint(uint64(v), 10))
}
func (w *Writer) SerializeU32(v uint32) error {
	return w.writeString(strconv.FormatUint(uint64(v), 10))
}
func (w *Writer) SerializeU64(v uint64) error { return w.writeString(strconv.FormatUint(v, 10)) }

func (w *Writer) SerializeF32(v float32) error {
	s, err := formatFloat(float64(v), 32)
	if err != nil {
		return err
	}
	return w.writeString(s)
}

func (w *Writer) SerializeF64(v float64) error {
	s, err := formatFloat(v, 64)
	if err != nil {
		return err
	}
	return w.writeString(s)
}

func (w *Writer) SerializeChar(v rune) error { return writeEscapedString(w, string(v)) }
func (w *Writer) SerializeStr(v string) error { return writeEscapedString(w, v) }

func (w *Writer) SerializeBytes(v []byte) error {
	return writeEscapedString(w, base64.StdEncoding.EncodeToString(v))
}

func (w *Writer) SerializeUnit() error { return w.writeString("null") }
func (w *Writer) SerializeNone() error { return w.writeString("null") }

func (w *Writer) SerializeSome(v serde.Serializable) error { return v.SerializeWith(w) }

func (w *Writer) SerializeUnitStruct(name string) error { return w.writeString("null") }

func (w *Writer) SerializeNewtypeStruct(name string, v serde.Serializable) error {
	return v.SerializeWith(w)
}

func (w *Writer) SerializeUnitVariant(enumName string, variantIndex uint32, variantName string) error {
	if err := w.writeByte('{'); err != nil {
		return err
	}
	if err := writeEscapedString(w, variantName); err != nil {
		return err
	}
	if err := w.writeColon(); err != nil {
		return err
	}
	if err := w.writeString("[]"); err != nil {
		return err
	}
	return w.writeByte('}')
}

func (w *Writer) SerializeNewtypeVariant(enumName string, variantIndex uint32, variantName string, v serde.Serializable) error {
	if err := w.writeByte('{'); err != nil {
		return err
	}
	if err := writeEscapedString(w, variantName); err != nil {
		return err
	}
	if err := w.writeColon(); err != nil {
		return err
	}
	if err := v.SerializeWith(w); err != nil {
		return err
	}
	return w.writeByte('}')
}

func (w *Writer) writeColon() error {
	if err := w.writeByte(':'); err != nil {
		return err
	}
	if w.indent != "" {
		return w.writeByte(' ')
	}
	return nil
}

// ---- seq / tuple ----

type seqWriter struct {
	w           *Writer
	level       int
	parentLevel int
	first       bool
}

func (w *Writer) SerializeSeq(length serde.Option[int]) (serde.SerializeSeq, error) {
	if err := w.writeByte('['); err != nil {
		return nil, err
	}
	level := w.level
	w.level++
	return &seqWriter{w: w, level: w.level, parentLevel: level, first: true}, nil
}

func (s *seqWriter) SerializeElement(v serde.Serializable) error {
	if err := s.w.beginElement(&s.first, s.level); err != nil {
		return err
	}
	return v.SerializeWith(s.w)
}

func (s *seqWriter) End() error {
	s.w.level = s.parentLevel
	if !s.first {
		if err := s.w.writeNewlineIndent(s.parentLevel); err != nil {
			return err
		}
	}
	return s.w.writeByte(']')
}

type tupleWriter struct {
	seqWriter
}

func (w *Writer) SerializeTuple(length int) (serde.SerializeTuple, error) {
	seq, err := w.SerializeSeq(serde.Some(length))
	if err != nil {
		return nil, err
	}
	return &tupleWriter{*seq.(*seqWriter)}, nil
}

func (w *Writer) SerializeTupleStruct(name string, length int) (serde.SerializeTuple, error) {
	return w.SerializeTuple(length)
}

func (w *Writer) SerializeTupleVariant(enumName string, variantIndex uint32, variantName string, length int) (serde.SerializeTuple, error) {
	if err := w.writeByte('{'); err != nil {
		return nil, err
	}
	if err := writeEscapedString(w, variantName); err != nil {
		return nil, err
	}
	if err := w.writeColon(); err != nil {
		return nil, err
	}
	inner, err := w.SerializeTuple(length)
	if err != nil {
		return nil, err
	}
	return &variantTupleWriter{inner.(*tupleWriter)}, nil
}

type variantTupleWriter struct {
	*tupleWriter
}

func (v *variantTupleWriter) End() error {
	if err := v.tupleWriter.End(); err != nil {
		return err
	}
	return v.w.writeByte('}')
}

// ---- map / struct ----

type mapWriter struct {
	w           *Writer
	level       int
	parentLevel int
	first       bool
}

func (w *Writer) SerializeMap(length serde.Option[int]) (serde.SerializeMap, error) {
	if err := w.writeByte('{'); err != nil {
		return nil, err
	}
	level := w.level
	w.level++
	return &mapWriter{w: w, level: w.level, parentLevel: level, first: true}, nil
}

func (m *mapWriter) SerializeKey(k serde.Serializable) error {
	if err := m.w.beginElement(&m.first, m.level); err != nil {
		return err
	}
	return k.SerializeWith(mapKeyWriter{m.w})
}

func (m *mapWriter) SerializeValue(v serde.Serializable) error {
	if err := m.w.writeColon(); err != nil {
		return err
	}
	return v.SerializeWith(m.w)
}

func (m *mapWriter) End() error {
	m.w.level = m.parentLevel
	if !m.first {
		if err := m.w.writeNewlineIndent(m.parentLevel); err != nil {
			return err
		}
	}
	return m.w.writeByte('}')
}

// mapKeyWriter wraps Writer so SerializeStr and SerializeChar (the only
// map-key shapes JSON supports) write exactly like any other string, while
// every other method used as a key is rejected — JSON object keys are always
// strings.
type mapKeyWriter struct{ w *Writer }

func (k mapKeyWriter) SerializeBool(bool) error   { return k.unsupported() }
func (k mapKeyWriter) SerializeI8(int8) error     { return k.unsupported() }
func (k mapKeyWriter) SerializeI16(int16) error   { return k.unsupported() }
func (k mapKeyWriter) SerializeI32(int32) error   { return k.unsupported() }
func (k mapKeyWriter) SerializeI64(int64) error   { return k.unsupported() }
func (k mapKeyWriter) SerializeU8(uint8) error    { return k.unsupported() }
func (k mapKeyWriter) SerializeU16(uint16) error  { return k.unsupported() }
func (k mapKeyWriter) SerializeU32(uint32) error  { return k.unsupported() }
func (k mapKeyWriter) SerializeU64(uint64) error  { return k.unsupported() }
func (k mapKeyWriter) SerializeF32(float32) error { return k.unsupported() }
func (k mapKeyWriter) SerializeF64(float64) error { return k.unsupported() }
func (k mapKeyWriter) SerializeChar(v rune) error { return writeEscapedString(k.w, string(v)) }
func (k mapKeyWriter) SerializeStr(v string) error { return writeEscapedString(k.w, v) }
func (k mapKeyWriter) SerializeBytes([]byte) error { return k.unsupported() }
func (k mapKeyWriter) SerializeUnit() error         { return k.unsupported() }
func (k mapKeyWriter) SerializeNone() error         { return k.unsupported() }
func (k mapKeyWriter) SerializeSome(serde.Serializable) error { return k.unsupported() }
func (k mapKeyWriter) SerializeUnitStruct(string) error       { return k.unsupported() }
func (k mapKeyWriter) SerializeNewtypeStruct(string, serde.Serializable) error {
	return k.unsupported()
}
func (k mapKeyWriter) SerializeUnitVariant(string, uint32, string) error { return k.unsupported() }
func (k mapKeyWriter) SerializeNewtypeVariant(string, uint32, string, serde.Serializable) error {
	return k.unsupported()
}
func (k mapKeyWriter) SerializeSeq(serde.Option[int]) (serde.SerializeSeq, error) {
	return nil, k.unsupported()
}
func (k mapKeyWriter) SerializeTuple(int) (serde.SerializeTuple, error) { return nil, k.unsupported() }
func (k mapKeyWriter) SerializeTupleStruct(string, int) (serde.SerializeTuple, error) {
	return nil, k.unsupported()
}
func (k mapKeyWriter) SerializeTupleVariant(string, uint32, string, int) (serde.SerializeTuple, error) {
	return nil, k.unsupported()
}
func (k mapKeyWriter) SerializeMap(serde.Option[int]) (serde.SerializeMap, error) {
	return nil, k.unsupported()
}
func (k mapKeyWriter) SerializeStruct(string, int) (serde.SerializeStruct, error) {
	return nil, k.unsupported()
}
func (k mapKeyWriter) SerializeStructVariant(string, uint32, string, int) (serde.SerializeStruct, error) {
	return nil, k.unsupported()
}

func (k mapKeyWriter) unsupported() error {
	return fmt.Errorf("json: map keys must serialize as a string: %w", &serde.Error{Kind: serde.ErrUnsupportedFormat})
}

type structWriter struct {
	w           *Writer
	level       int
	parentLevel int
	first       bool
}

func (w *Writer) SerializeStruct(name string, length int) (serde.SerializeStruct, error) {
	if err := w.writeByte('{'); err != nil {
		return nil, err
	}
	level := w.level
	w.level++
	return &structWriter{w: w, level: w.level, parentLevel: level, first: true}, nil
}

func (s *structWriter) SerializeField(name string, v serde.Serializable) error {
	if err := s.w.beginElement(&s.first, s.level); err != nil {
		return err
	}
	if err := writeEscapedString(s.w, name); err != nil {
		return err
	}
	if err := s.w.writeColon(); err != nil {
		return err
	}
	return v.SerializeWith(s.w)
}

func (s *structWriter) SkipField(name string) error { return nil }

func (s *structWriter) End() error {
	s.w.level = s.parentLevel
	if !s.first {
		if err := s.w.writeNewlineIndent(s.parentLevel); err != nil {
			return err
		}
	}
	return s.w.writeByte('}')
}

func (w *Writer) SerializeStructVariant(enumName string, variantIndex uint32, variantName string, length int) (serde.SerializeStruct, error) {
	if err := w.writeByte('{'); err != nil {
		return nil, err
	}
	if err := writeEscapedString(w, variantName); err != nil {
		return nil, err
	}
	if err := w.writeColon(); err != nil {
		return nil, err
	}
	inner, err := w.SerializeStruct(enumName, length)
	if err != nil {
		return nil, err
	}
	return &variantStructWriter{inner.(*structWriter)}, nil
}

type variantStructWriter struct {
	*structWriter
}

func (v *variantStructWriter) End() error {
	if err := v.structWriter.End(); err != nil {
		return err
	}
	return v.w.writeByte('}')
}
