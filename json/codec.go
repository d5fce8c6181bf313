package json

import (
	"bytes"
	"io"

	"github.com/nereid-labs/serde"
)

// SerializeToWriter writes v to w as JSON.
func SerializeToWriter(out io.Writer, v serde.Serializable, opts ...WriterOption) error {
	w := NewWriter(out, opts...)
	if err := v.SerializeWith(w); err != nil {
		return err
	}
	return w.Flush()
}

// SerializeToBytes serializes v to a JSON byte slice.
func SerializeToBytes(v serde.Serializable, opts ...WriterOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeToWriter(&buf, v, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeToString serializes v to a JSON string.
func SerializeToString(v serde.Serializable, opts ...WriterOption) (string, error) {
	b, err := SerializeToBytes(v, opts...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Codec bundles a matched Writer/Parser option set behind a single
// Serializer()/Deserializer(...) entry point.
type Codec struct {
	writerOpts []WriterOption
	parserOpts []ParserOption
}

// NewCodec constructs a Codec. WriterOption and ParserOption values may both
// be passed; each is routed to the side it applies to.
func NewCodec(writerOpts []WriterOption, parserOpts []ParserOption) *Codec {
	return &Codec{writerOpts: writerOpts, parserOpts: parserOpts}
}

// Serializer returns a Writer configured per the codec.
func (c *Codec) Serializer(out io.Writer) *Writer {
	return NewWriter(out, c.writerOpts...)
}

// Deserializer returns a Parser over b configured per the codec.
func (c *Codec) Deserializer(b []byte) *Parser {
	return NewParser(bytes.NewReader(b), c.parserOpts...)
}
