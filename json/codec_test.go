package json

import (
	"bytes"
	"testing"

	"github.com/nereid-labs/serde/value"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec([]WriterOption{WithIndent(2)}, []ParserOption{WithMaxDepth(4)})

	var buf bytes.Buffer
	original := value.Int64(42)
	if err := original.SerializeWith(codec.Serializer(&buf)); err != nil {
		t.Fatalf("unexpected serialize error: %v", err)
	}
	if got, want := buf.String(), "42"; got != want {
		t.Errorf("expected %q got %q", want, got)
	}

	result, err := (value.Value{}).DeserializeWith(codec.Deserializer(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected deserialize error: %v", err)
	}
	if got := result.(value.Value); !got.Equal(original) {
		t.Errorf("expected round trip through the codec to preserve the value")
	}
}

func TestSerializeToBytesAndWriter(t *testing.T) {
	v := value.Array([]value.Value{value.Bool(true), value.Null()})

	b, err := SerializeToBytes(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := string(b), "[true,null]"; got != want {
		t.Errorf("expected %q got %q", want, got)
	}

	var buf bytes.Buffer
	if err := SerializeToWriter(&buf, v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != string(b) {
		t.Errorf("expected SerializeToWriter and SerializeToBytes to agree, got %q vs %q", got, string(b))
	}
}

func TestCodecDeserializerAgreesWithDeserializeFromBytes(t *testing.T) {
	input := []byte(`{"a":1,"b":[2,3]}`)

	want, err := DeserializeFromBytes(input, value.Value{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	codec := NewCodec(nil, nil)
	got, err := (value.Value{}).DeserializeWith(codec.Deserializer(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.(value.Value).Equal(want.(value.Value)) {
		t.Errorf("expected codec-produced parser to parse the same as DeserializeFromBytes")
	}
}
