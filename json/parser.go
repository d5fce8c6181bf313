// Package json implements the JSON format driver: a streaming recursive-
// descent parser and a compact/indented writer, both built directly on the
// serde package's Serializer/Deserializer protocol.
package json

import (
	"bytes"
	"encoding/base64"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/nereid-labs/serde"
	"github.com/nereid-labs/serde/logging"
)

// DefaultRecursionLimit bounds array/object nesting depth, a conservative
// default chosen over unbounded recursion.
const DefaultRecursionLimit = 128

// Parser is a byte-level recursive-descent JSON reader implementing
// serde.Deserializer. It tracks 1-based line/column position so errors can
// report exactly where parsing failed.
type Parser struct {
	r        io.ByteReader
	cur      byte
	eof      bool
	line     int
	col      int
	depth    int
	maxDepth int
	scratch  []byte
	logger   logging.Logger
}

// ParserOption configures a Parser constructed by NewParser.
type ParserOption func(*Parser)

// WithMaxDepth overrides DefaultRecursionLimit.
func WithMaxDepth(n int) ParserOption {
	return func(p *Parser) { p.maxDepth = n }
}

// WithLogger attaches a logging.Logger that receives logging.Trace entries
// for container entry/exit, useful when diagnosing a misbehaving input
// without adding print statements to the parser itself.
func WithLogger(l logging.Logger) ParserOption {
	return func(p *Parser) { p.logger = l }
}

// NewParser constructs a Parser reading from r.
func NewParser(r io.Reader, opts ...ParserOption) *Parser {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufReader{r}
	}
	p := &Parser{r: br, line: 1, col: 0, maxDepth: DefaultRecursionLimit, logger: logging.Noop{}}
	for _, opt := range opts {
		opt(p)
	}
	p.advance()
	return p
}

// bufReader adapts an io.Reader without ReadByte to io.ByteReader one byte
// at a time. Callers needing throughput should pass a *bufio.Reader instead.
type bufReader struct{ r io.Reader }

func (b bufReader) ReadByte() (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(b.r, buf[:])
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// advance loads the next lookahead byte and updates line/col from it: a
// newline bumps the line and resets the column to 1, anything else
// (including discovering EOF) just bumps the column. The position an error
// reports is always that of the current lookahead byte.
func (p *Parser) advance() {
	b, err := p.r.ReadByte()
	if err != nil {
		p.eof = true
		p.cur = 0
		p.col++
		return
	}
	p.cur = b
	if b == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *Parser) pos() serde.Position { return serde.Position{Line: p.line, Column: p.col} }

func (p *Parser) err(kind serde.ErrorKind) error {
	return &serde.Error{Kind: kind, Pos: p.pos()}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func (p *Parser) skipWhitespace() {
	for !p.eof && isWhitespace(p.cur) {
		p.advance()
	}
}

// parseLiteral consumes lit byte-by-byte against the lookahead cursor.
func (p *Parser) parseLiteral(lit string) error {
	for i := 0; i < len(lit); i++ {
		if p.eof || p.cur != lit[i] {
			return p.err(serde.ErrExpectedSomeIdent)
		}
		p.advance()
	}
	return nil
}

// scanNumber consumes one JSON number per RFC 8259's grammar and returns
// its raw text plus whether a fraction/exponent was present.
func (p *Parser) scanNumber() (text string, isFloat bool, err error) {
	buf := p.scratch[:0]
	if p.cur == '-' {
		buf = append(buf, p.cur)
		p.advance()
		if p.eof || !isDigit(p.cur) {
			return "", false, p.err(serde.ErrInvalidNumber)
		}
	}
	if p.cur == '0' {
		buf = append(buf, p.cur)
		p.advance()
		if !p.eof && isDigit(p.cur) {
			return "", false, p.err(serde.ErrInvalidNumber)
		}
	} else {
		for !p.eof && isDigit(p.cur) {
			buf = append(buf, p.cur)
			p.advance()
		}
	}
	if !p.eof && p.cur == '.' {
		isFloat = true
		buf = append(buf, p.cur)
		p.advance()
		if p.eof || !isDigit(p.cur) {
			return "", false, p.err(serde.ErrInvalidNumber)
		}
		for !p.eof && isDigit(p.cur) {
			buf = append(buf, p.cur)
			p.advance()
		}
	}
	if !p.eof && (p.cur == 'e' || p.cur == 'E') {
		isFloat = true
		buf = append(buf, p.cur)
		p.advance()
		if !p.eof && (p.cur == '+' || p.cur == '-') {
			buf = append(buf, p.cur)
			p.advance()
		}
		if p.eof || !isDigit(p.cur) {
			return "", false, p.err(serde.ErrInvalidNumber)
		}
		for !p.eof && isDigit(p.cur) {
			buf = append(buf, p.cur)
			p.advance()
		}
	}
	p.scratch = buf
	return string(buf), isFloat, nil
}

func (p *Parser) parseNumber(v serde.Visitor) (any, error) {
	text, isFloat, err := p.scanNumber()
	if err != nil {
		return nil, err
	}
	if isFloat {
		f, perr := strconv.ParseFloat(text, 64)
		if perr != nil {
			return nil, p.err(serde.ErrInvalidNumber)
		}
		return v.VisitF64(f)
	}
	n, perr := strconv.ParseInt(text, 10, 64)
	if perr != nil {
		return nil, p.err(serde.ErrInvalidNumber)
	}
	return v.VisitI64(n)
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

func (p *Parser) parseHex4(onInvalid serde.ErrorKind) (uint32, error) {
	var v uint32
	for i := 0; i < 4; i++ {
		if p.eof {
			return 0, p.err(onInvalid)
		}
		d, ok := hexVal(p.cur)
		if !ok {
			return 0, p.err(onInvalid)
		}
		v = v<<4 | uint32(d)
		p.advance()
	}
	return v, nil
}

func isHighSurrogate(r uint32) bool { return r >= 0xD800 && r <= 0xDBFF }
func isLowSurrogate(r uint32) bool  { return r >= 0xDC00 && r <= 0xDFFF }

// parseStringContents consumes a JSON string, including its surrounding
// quotes, and returns the decoded (owned) text.
func (p *Parser) parseStringContents() (string, error) {
	if p.eof || p.cur != '"' {
		return "", p.err(serde.ErrExpectedSomeValue)
	}
	p.advance()
	buf := p.scratch[:0]
	for {
		if p.eof {
			return "", p.err(serde.ErrEOFWhileParsingString)
		}
		switch p.cur {
		case '"':
			p.advance()
			p.scratch = buf
			return string(buf), nil
		case '\\':
			p.advance()
			if p.eof {
				return "", p.err(serde.ErrEOFWhileParsingString)
			}
			switch p.cur {
			case '"':
				buf = append(buf, '"')
				p.advance()
			case '\\':
				buf = append(buf, '\\')
				p.advance()
			case '/':
				buf = append(buf, '/')
				p.advance()
			case 'b':
				buf = append(buf, 0x08)
				p.advance()
			case 'f':
				buf = append(buf, 0x0C)
				p.advance()
			case 'n':
				buf = append(buf, 0x0A)
				p.advance()
			case 'r':
				buf = append(buf, 0x0D)
				p.advance()
			case 't':
				buf = append(buf, 0x09)
				p.advance()
			case 'u':
				p.advance()
				r, err := p.parseHex4(serde.ErrInvalidEscape)
				if err != nil {
					return "", err
				}
				switch {
				case isLowSurrogate(r):
					return "", p.err(serde.ErrLoneLeadingSurrogateInHexEscape)
				case isHighSurrogate(r):
					if p.eof || p.cur != '\\' {
						return "", p.err(serde.ErrLoneLeadingSurrogateInHexEscape)
					}
					p.advance()
					if p.eof || p.cur != 'u' {
						return "", p.err(serde.ErrLoneLeadingSurrogateInHexEscape)
					}
					p.advance()
					r2, err := p.parseHex4(serde.ErrUnexpectedEndOfHexEscape)
					if err != nil {
						return "", err
					}
					if !isLowSurrogate(r2) {
						return "", p.err(serde.ErrLoneLeadingSurrogateInHexEscape)
					}
					combined := 0x10000 + (r-0xD800)*0x400 + (r2 - 0xDC00)
					buf = utf8.AppendRune(buf, rune(combined))
				default:
					if !utf8.ValidRune(rune(r)) {
						return "", p.err(serde.ErrInvalidUnicodeCodePoint)
					}
					buf = utf8.AppendRune(buf, rune(r))
				}
			default:
				return "", p.err(serde.ErrInvalidEscape)
			}
		default:
			buf = append(buf, p.cur)
			p.advance()
		}
	}
}

func (p *Parser) parseStringValue(v serde.Visitor) (any, error) {
	s, err := p.parseStringContents()
	if err != nil {
		return nil, err
	}
	return v.VisitString(s)
}

func (p *Parser) enterContainer() error {
	p.depth++
	p.logger.Logf(logging.Trace, "entering container at depth %d (%s)", p.depth, p.pos())
	if p.depth > p.maxDepth {
		return p.err(serde.ErrRecursionLimit)
	}
	return nil
}

func (p *Parser) leaveContainer() {
	p.logger.Logf(logging.Trace, "leaving container at depth %d (%s)", p.depth, p.pos())
	p.depth--
}

// listAccess implements serde.SeqAccess over a `[...]` container.
type listAccess struct {
	p       *Parser
	started bool
}

func (l *listAccess) NextElement(seed serde.Seed) (any, bool, error) {
	p := l.p
	p.skipWhitespace()
	if p.eof {
		return nil, false, p.err(serde.ErrEOFWhileParsingList)
	}
	if p.cur == ']' {
		p.advance()
		return nil, false, nil
	}
	if l.started {
		if p.cur != ',' {
			return nil, false, p.err(serde.ErrExpectedListCommaOrEnd)
		}
		p.advance()
		p.skipWhitespace()
		if p.eof {
			return nil, false, p.err(serde.ErrEOFWhileParsingList)
		}
	}
	l.started = true
	v, err := seed(p)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (l *listAccess) SizeHint() (int, int, bool) { return 0, 0, false }

// objectAccess implements serde.MapAccess over a `{...}` container.
type objectAccess struct {
	p       *Parser
	started bool
}

func (o *objectAccess) NextKey(seed serde.Seed) (any, bool, error) {
	p := o.p
	p.skipWhitespace()
	if p.eof {
		return nil, false, p.err(serde.ErrEOFWhileParsingObject)
	}
	if p.cur == '}' {
		p.advance()
		return nil, false, nil
	}
	if o.started {
		if p.cur != ',' {
			return nil, false, p.err(serde.ErrExpectedObjectCommaOrEnd)
		}
		p.advance()
		p.skipWhitespace()
		if p.eof {
			return nil, false, p.err(serde.ErrEOFWhileParsingObject)
		}
	}
	if p.cur != '"' {
		return nil, false, p.err(serde.ErrKeyMustBeAString)
	}
	key, err := p.parseStringContents()
	if err != nil {
		return nil, false, err
	}
	o.started = true
	v, err := seed(literalStringDeserializer{key})
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (o *objectAccess) NextValue(seed serde.Seed) (any, error) {
	p := o.p
	p.skipWhitespace()
	if p.eof {
		return nil, p.err(serde.ErrEOFWhileParsingObject)
	}
	if p.cur != ':' {
		return nil, p.err(serde.ErrExpectedColon)
	}
	p.advance()
	p.skipWhitespace()
	if p.eof {
		return nil, p.err(serde.ErrEOFWhileParsingObject)
	}
	return seed(p)
}

func (o *objectAccess) SizeHint() (int, int, bool) { return 0, 0, false }

// literalStringDeserializer hands back an already-decoded string (a JSON
// object key) through the Deserializer protocol, so NextKey can use the
// ordinary Seed machinery instead of a special case.
type literalStringDeserializer struct{ s string }

func (d literalStringDeserializer) invalid(v serde.Visitor) (any, error) {
	return nil, &serde.Error{Kind: serde.ErrInvalidType, Expected: v.ExpectedType()}
}

func (d literalStringDeserializer) DeserializeAny(v serde.Visitor) (any, error) {
	return v.VisitString(d.s)
}
func (d literalStringDeserializer) DeserializeBool(v serde.Visitor) (any, error) { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeI64(v serde.Visitor) (any, error)  { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeU64(v serde.Visitor) (any, error)  { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeF64(v serde.Visitor) (any, error)  { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeStr(v serde.Visitor) (any, error) {
	return v.VisitString(d.s)
}
func (d literalStringDeserializer) DeserializeBytes(v serde.Visitor) (any, error) {
	return d.invalid(v)
}
func (d literalStringDeserializer) DeserializeUnit(v serde.Visitor) (any, error) { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeOption(v serde.Visitor) (any, error) {
	return v.VisitSome(d)
}
func (d literalStringDeserializer) DeserializeSeq(v serde.Visitor) (any, error) { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeTuple(n int, v serde.Visitor) (any, error) {
	return d.invalid(v)
}
func (d literalStringDeserializer) DeserializeMap(v serde.Visitor) (any, error) { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeStruct(name string, fields []string, v serde.Visitor) (any, error) {
	return d.invalid(v)
}
func (d literalStringDeserializer) DeserializeEnum(name string, variants []string, v serde.Visitor) (any, error) {
	return d.invalid(v)
}
func (d literalStringDeserializer) DeserializeIgnoredAny(v serde.Visitor) (any, error) {
	return nil, nil
}
func (d literalStringDeserializer) Factory() serde.ErrorFactory { return simpleFactory{} }

func (p *Parser) parseValue(v serde.Visitor) (any, error) {
	p.skipWhitespace()
	if p.eof {
		return nil, p.err(serde.ErrEOFWhileParsingValue)
	}
	switch {
	case p.cur == 'n':
		if err := p.parseLiteral("null"); err != nil {
			return nil, err
		}
		return v.VisitUnit()
	case p.cur == 't':
		if err := p.parseLiteral("true"); err != nil {
			return nil, err
		}
		return v.VisitBool(true)
	case p.cur == 'f':
		if err := p.parseLiteral("false"); err != nil {
			return nil, err
		}
		return v.VisitBool(false)
	case p.cur == '-' || isDigit(p.cur):
		return p.parseNumber(v)
	case p.cur == '"':
		return p.parseStringValue(v)
	case p.cur == '[':
		p.advance()
		if err := p.enterContainer(); err != nil {
			return nil, err
		}
		defer p.leaveContainer()
		return v.VisitSeq(&listAccess{p: p})
	case p.cur == '{':
		p.advance()
		if err := p.enterContainer(); err != nil {
			return nil, err
		}
		defer p.leaveContainer()
		return v.VisitMap(&objectAccess{p: p})
	default:
		return nil, p.err(serde.ErrExpectedSomeValue)
	}
}

// skipValue consumes and discards one value of whatever shape is next,
// used by DeserializeIgnoredAny to skip unknown struct fields.
func (p *Parser) skipValue() error {
	p.skipWhitespace()
	if p.eof {
		return p.err(serde.ErrEOFWhileParsingValue)
	}
	switch {
	case p.cur == 'n':
		return p.parseLiteral("null")
	case p.cur == 't':
		return p.parseLiteral("true")
	case p.cur == 'f':
		return p.parseLiteral("false")
	case p.cur == '-' || isDigit(p.cur):
		_, _, err := p.scanNumber()
		return err
	case p.cur == '"':
		_, err := p.parseStringContents()
		return err
	case p.cur == '[':
		p.advance()
		if err := p.enterContainer(); err != nil {
			return err
		}
		defer p.leaveContainer()
		la := &listAccess{p: p}
		skip := func(d serde.Deserializer) (any, error) { return nil, p.skipValue() }
		for {
			_, ok, err := la.NextElement(skip)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
	case p.cur == '{':
		p.advance()
		if err := p.enterContainer(); err != nil {
			return err
		}
		defer p.leaveContainer()
		oa := &objectAccess{p: p}
		ignoreKey := func(d serde.Deserializer) (any, error) { return nil, nil }
		skipVal := func(d serde.Deserializer) (any, error) { return nil, p.skipValue() }
		for {
			_, ok, err := oa.NextKey(ignoreKey)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if _, err := oa.NextValue(skipVal); err != nil {
				return err
			}
		}
	default:
		return p.err(serde.ErrExpectedSomeValue)
	}
}

// ---- serde.Deserializer ----

func (p *Parser) DeserializeAny(v serde.Visitor) (any, error)  { return p.parseValue(v) }
func (p *Parser) DeserializeBool(v serde.Visitor) (any, error) { return p.parseValue(v) }
func (p *Parser) DeserializeI64(v serde.Visitor) (any, error)  { return p.parseValue(v) }
func (p *Parser) DeserializeU64(v serde.Visitor) (any, error)  { return p.parseValue(v) }
func (p *Parser) DeserializeF64(v serde.Visitor) (any, error)  { return p.parseValue(v) }
func (p *Parser) DeserializeStr(v serde.Visitor) (any, error)  { return p.parseValue(v) }

// DeserializeBytes expects a JSON string and base64-decodes it, the same
// convention the writer uses for SerializeBytes (JSON has no native bytes
// type).
func (p *Parser) DeserializeBytes(v serde.Visitor) (any, error) {
	p.skipWhitespace()
	if p.eof {
		return nil, p.err(serde.ErrEOFWhileParsingValue)
	}
	if p.cur != '"' {
		return nil, p.err(serde.ErrExpectedSomeValue)
	}
	s, err := p.parseStringContents()
	if err != nil {
		return nil, err
	}
	b, decErr := base64.StdEncoding.DecodeString(s)
	if decErr != nil {
		return nil, &serde.Error{Kind: serde.ErrInvalidType, Expected: v.ExpectedType()}
	}
	return v.VisitBytes(b)
}

func (p *Parser) DeserializeUnit(v serde.Visitor) (any, error) { return p.parseValue(v) }

func (p *Parser) DeserializeOption(v serde.Visitor) (any, error) {
	p.skipWhitespace()
	if !p.eof && p.cur == 'n' {
		if err := p.parseLiteral("null"); err != nil {
			return nil, err
		}
		return v.VisitNone()
	}
	return v.VisitSome(p)
}

func (p *Parser) DeserializeSeq(v serde.Visitor) (any, error) { return p.parseValue(v) }
func (p *Parser) DeserializeTuple(length int, v serde.Visitor) (any, error) {
	return p.parseValue(v)
}
func (p *Parser) DeserializeMap(v serde.Visitor) (any, error) { return p.parseValue(v) }
func (p *Parser) DeserializeStruct(name string, fields []string, v serde.Visitor) (any, error) {
	return p.parseValue(v)
}

func (p *Parser) DeserializeEnum(name string, variants []string, v serde.Visitor) (any, error) {
	p.skipWhitespace()
	if p.eof {
		return nil, p.err(serde.ErrEOFWhileParsingValue)
	}
	if p.cur != '{' {
		return nil, p.err(serde.ErrExpectedSomeValue)
	}
	p.advance()
	if err := p.enterContainer(); err != nil {
		return nil, err
	}
	defer p.leaveContainer()
	p.skipWhitespace()
	if p.eof {
		return nil, p.err(serde.ErrEOFWhileParsingObject)
	}
	if p.cur != '"' {
		return nil, p.err(serde.ErrKeyMustBeAString)
	}
	name, err := p.parseStringContents()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.eof {
		return nil, p.err(serde.ErrEOFWhileParsingObject)
	}
	if p.cur != ':' {
		return nil, p.err(serde.ErrExpectedColon)
	}
	p.advance()
	p.skipWhitespace()
	result, err := v.VisitEnum(&enumAccess{p: p, name: name})
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.eof {
		return nil, p.err(serde.ErrEOFWhileParsingObject)
	}
	if p.cur != '}' {
		return nil, p.err(serde.ErrExpectedObjectCommaOrEnd)
	}
	p.advance()
	return result, nil
}

func (p *Parser) DeserializeIgnoredAny(v serde.Visitor) (any, error) {
	return nil, p.skipValue()
}

func (p *Parser) Factory() serde.ErrorFactory { return parserFactory{p} }

// parserFactory synthesizes errors carrying the parser's current position.
type parserFactory struct{ p *Parser }

func (f parserFactory) Syntax(kind serde.ErrorKind) error { return f.p.err(kind) }
func (f parserFactory) EndOfStream() error                { return f.p.err(serde.ErrEOFWhileParsingValue) }
func (f parserFactory) MissingField(name string) error {
	return &serde.Error{Kind: serde.ErrMissingField, Field: name, Pos: f.p.pos()}
}
func (f parserFactory) UnknownField(name string) error {
	return &serde.Error{Kind: serde.ErrUnknownField, Field: name, Pos: f.p.pos()}
}
func (f parserFactory) InvalidType(expected string) error {
	return &serde.Error{Kind: serde.ErrInvalidType, Expected: expected, Pos: f.p.pos()}
}
func (f parserFactory) InvalidLength(n int) error {
	return &serde.Error{Kind: serde.ErrInvalidLength, Length: n, Pos: f.p.pos()}
}

type simpleFactory = serde.SimpleErrorFactory

// enumAccess implements serde.EnumAccess for the externally-tagged
// `{"Variant": payload}` representation.
type enumAccess struct {
	p    *Parser
	name string
}

func (e *enumAccess) Variant(v serde.Visitor) (any, serde.VariantAccess, error) {
	r, err := v.VisitString(e.name)
	if err != nil {
		return nil, nil, err
	}
	return r, &variantAccess{p: e.p}, nil
}

// variantAccess decodes the payload following the variant-name key. Unit
// variants are canonicalized to a `[]` payload, matching what the writer
// emits for them.
type variantAccess struct{ p *Parser }

func (va *variantAccess) UnitVariant() error {
	p := va.p
	p.skipWhitespace()
	if p.eof || p.cur != '[' {
		return p.err(serde.ErrExpectedSomeValue)
	}
	p.advance()
	p.skipWhitespace()
	if p.eof || p.cur != ']' {
		return p.err(serde.ErrExpectedListCommaOrEnd)
	}
	p.advance()
	return nil
}

func (va *variantAccess) NewtypeVariant(v serde.Visitor) (any, error) {
	return va.p.parseValue(v)
}

func (va *variantAccess) TupleVariant(length int, v serde.Visitor) (any, error) {
	return va.p.parseValue(v)
}

func (va *variantAccess) StructVariant(fields []string, v serde.Visitor) (any, error) {
	return va.p.parseValue(v)
}

// ---- top-level entry points ----

func finish(p *Parser) error {
	p.skipWhitespace()
	if !p.eof {
		return p.err(serde.ErrTrailingCharacters)
	}
	return nil
}

// DeserializeFromReader drives d against the JSON value read from r,
// failing on any trailing non-whitespace content.
func DeserializeFromReader(r io.Reader, d serde.Deserializable, opts ...ParserOption) (any, error) {
	p := NewParser(r, opts...)
	result, err := d.DeserializeWith(p)
	if err != nil {
		return nil, err
	}
	if err := finish(p); err != nil {
		return nil, err
	}
	return result, nil
}

// DeserializeFromBytes is DeserializeFromReader over an in-memory buffer.
func DeserializeFromBytes(b []byte, d serde.Deserializable, opts ...ParserOption) (any, error) {
	return DeserializeFromReader(bytes.NewReader(b), d, opts...)
}

// DeserializeFromStr is DeserializeFromBytes over a string.
func DeserializeFromStr(s string, d serde.Deserializable, opts ...ParserOption) (any, error) {
	return DeserializeFromBytes([]byte(s), d, opts...)
}

// Unmarshal deserializes into T, where T's zero value implements
// serde.Deserializable. It is the generic convenience entry point: T itself
// dispatches the decode, there is no pointer to mutate.
func Unmarshal[T serde.Deserializable](b []byte, opts ...ParserOption) (T, error) {
	var zero T
	result, err := DeserializeFromBytes(b, zero, opts...)
	if err != nil {
		var z T
		return z, err
	}
	typed, ok := result.(T)
	if !ok {
		var z T
		return z, &serde.Error{Kind: serde.ErrInvalidType, Expected: "matching decoded type"}
	}
	return typed, nil
}
