package pdf

import (
	"math"
	"strconv"

	"github.com/wyawin/docaudit/internal/textrun"
)

// contentInterpreter walks a page content stream and records one TextRun per
// text-showing operator. Only the text-positioning subset of the operator
// set is interpreted; graphics operators are skipped as operands are
// discarded whenever an unknown operator appears.
type contentInterpreter struct {
	fonts map[string]string // font resource name -> family (BaseFont)

	fontName string
	fontSize float64
	scaleY   float64 // vertical scale from the current text matrix

	lineX, lineY float64 // current line origin
	x, y         float64 // current show position
	leading      float64

	runs []textrun.TextRun
}

// extractRunsFromContent interprets a single page's content stream and
// returns its text runs in content order, positions in text space.
func extractRunsFromContent(data []byte, fonts map[string]string) []textrun.TextRun {
	in := &contentInterpreter{fonts: fonts, scaleY: 1}

	var operands []any
	tok := newTokenizer(data)
	for {
		t, ok := tok.next()
		if !ok {
			break
		}
		if op, isOp := t.(operator); isOp {
			in.apply(string(op), operands)
			operands = operands[:0]
			continue
		}
		operands = append(operands, t)
	}
	return in.runs
}

func (in *contentInterpreter) apply(op string, operands []any) {
	switch op {
	case "BT":
		in.lineX, in.lineY, in.x, in.y = 0, 0, 0, 0
		in.scaleY = 1
	case "Tf":
		if len(operands) >= 2 {
			if name, ok := operands[len(operands)-2].(resourceName); ok {
				in.fontName = string(name)
			}
			in.fontSize = num(operands[len(operands)-1])
		}
	case "Tm":
		if len(operands) >= 6 {
			c := num(operands[len(operands)-4])
			d := num(operands[len(operands)-3])
			e := num(operands[len(operands)-2])
			f := num(operands[len(operands)-1])
			in.scaleY = math.Hypot(c, d)
			if in.scaleY == 0 {
				in.scaleY = 1
			}
			in.lineX, in.lineY = e, f
			in.x, in.y = e, f
		}
	case "Td":
		if len(operands) >= 2 {
			in.translate(num(operands[len(operands)-2]), num(operands[len(operands)-1]))
		}
	case "TD":
		if len(operands) >= 2 {
			ty := num(operands[len(operands)-1])
			in.leading = -ty
			in.translate(num(operands[len(operands)-2]), ty)
		}
	case "TL":
		if len(operands) >= 1 {
			in.leading = num(operands[len(operands)-1])
		}
	case "T*":
		in.nextLine()
	case "Tj":
		if len(operands) >= 1 {
			if s, ok := operands[len(operands)-1].(string); ok {
				in.show(s)
			}
		}
	case "'":
		in.nextLine()
		if len(operands) >= 1 {
			if s, ok := operands[len(operands)-1].(string); ok {
				in.show(s)
			}
		}
	case "\"":
		// aw ac string: word/char spacing are not tracked, the show
		// position is what the detectors consume.
		in.nextLine()
		if len(operands) >= 1 {
			if s, ok := operands[len(operands)-1].(string); ok {
				in.show(s)
			}
		}
	case "TJ":
		if len(operands) >= 1 {
			if arr, ok := operands[len(operands)-1].([]any); ok {
				in.showArray(arr)
			}
		}
	}
}

func (in *contentInterpreter) translate(tx, ty float64) {
	in.lineX += tx
	in.lineY += ty
	in.x, in.y = in.lineX, in.lineY
}

func (in *contentInterpreter) nextLine() {
	in.lineY -= in.leading
	in.x, in.y = in.lineX, in.lineY
}

// effectiveSize is the font size scaled by the text matrix, the scalar the
// rest of the pipeline sees as fontSize.
func (in *contentInterpreter) effectiveSize() float64 {
	return in.fontSize * in.scaleY
}

// glyphWidthFactor approximates advance width per glyph as a fraction of the
// font size. Widths are advisory for overlay sizing, not a metric claim.
const glyphWidthFactor = 0.5

func (in *contentInterpreter) show(text string) {
	size := in.effectiveSize()
	width := float64(len([]rune(text))) * size * glyphWidthFactor
	if text != "" {
		in.runs = append(in.runs, textrun.TextRun{
			Text:       text,
			FontFamily: in.familyName(),
			FontSize:   size,
			Position:   textrun.Position{X: in.x, Y: in.y},
			Width:      width,
			Height:     size,
		})
	}
	in.x += width
}

// showArray handles TJ: string elements show text, numeric elements adjust
// the position by thousandths of the font size. The array collapses into a
// single run starting at the pre-show position.
func (in *contentInterpreter) showArray(arr []any) {
	startX, startY := in.x, in.y
	size := in.effectiveSize()

	var text string
	for _, el := range arr {
		switch v := el.(type) {
		case string:
			text += v
			in.x += float64(len([]rune(v))) * size * glyphWidthFactor
		case float64:
			in.x -= v / 1000 * size
		}
	}
	if text == "" {
		return
	}
	in.runs = append(in.runs, textrun.TextRun{
		Text:       text,
		FontFamily: in.familyName(),
		FontSize:   size,
		Position:   textrun.Position{X: startX, Y: startY},
		Width:      in.x - startX,
		Height:     size,
	})
}

func (in *contentInterpreter) familyName() string {
	if family, ok := in.fonts[in.fontName]; ok && family != "" {
		return family
	}
	return in.fontName
}

func num(v any) float64 {
	f, _ := v.(float64)
	return f
}

// operator is a content stream operator token.
type operator string

// resourceName is a PDF name token, e.g. /F1, without the slash.
type resourceName string

// tokenizer splits a content stream into operands and operators. String
// operands come out as string, numbers as float64, names as resourceName,
// arrays as []any.
type tokenizer struct {
	data []byte
	pos  int
}

func newTokenizer(data []byte) *tokenizer {
	return &tokenizer{data: data}
}

func (t *tokenizer) next() (any, bool) {
	t.skipWhitespace()
	if t.pos >= len(t.data) {
		return nil, false
	}

	switch c := t.data[t.pos]; {
	case c == '%':
		t.skipComment()
		return t.next()
	case c == '(':
		return t.readString(), true
	case c == '<':
		if t.pos+1 < len(t.data) && t.data[t.pos+1] == '<' {
			t.skipDict()
			return t.next()
		}
		return t.readHexString(), true
	case c == '/':
		return t.readName(), true
	case c == '[':
		t.pos++
		return t.readArray(), true
	case c == ']', c == '>', c == '}':
		t.pos++
		return t.next()
	case c == '{':
		t.pos++
		return t.next()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return t.readNumber(), true
	default:
		return t.readOperator(), true
	}
}

func (t *tokenizer) skipWhitespace() {
	for t.pos < len(t.data) {
		switch t.data[t.pos] {
		case ' ', '\t', '\r', '\n', '\f', 0:
			t.pos++
		default:
			return
		}
	}
}

func (t *tokenizer) skipComment() {
	for t.pos < len(t.data) && t.data[t.pos] != '\n' {
		t.pos++
	}
}

// skipDict discards an inline dictionary (<< ... >>), which only occurs for
// inline images and marked content properties, neither of which carries text.
func (t *tokenizer) skipDict() {
	depth := 0
	for t.pos+1 < len(t.data) {
		if t.data[t.pos] == '<' && t.data[t.pos+1] == '<' {
			depth++
			t.pos += 2
			continue
		}
		if t.data[t.pos] == '>' && t.data[t.pos+1] == '>' {
			depth--
			t.pos += 2
			if depth == 0 {
				return
			}
			continue
		}
		t.pos++
	}
	t.pos = len(t.data)
}

func (t *tokenizer) readString() string {
	t.pos++ // consume '('
	var out []byte
	depth := 1
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		switch c {
		case '\\':
			t.pos++
			if t.pos < len(t.data) {
				out = append(out, unescape(t.data[t.pos]))
				t.pos++
			}
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				t.pos++
				return string(out)
			}
		}
		out = append(out, c)
		t.pos++
	}
	return string(out)
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	default:
		return c
	}
}

func (t *tokenizer) readHexString() string {
	t.pos++ // consume '<'
	var hexDigits []byte
	for t.pos < len(t.data) && t.data[t.pos] != '>' {
		c := t.data[t.pos]
		if isHexDigit(c) {
			hexDigits = append(hexDigits, c)
		}
		t.pos++
	}
	if t.pos < len(t.data) {
		t.pos++ // consume '>'
	}
	if len(hexDigits)%2 == 1 {
		hexDigits = append(hexDigits, '0')
	}
	out := make([]byte, 0, len(hexDigits)/2)
	for i := 0; i+1 < len(hexDigits); i += 2 {
		out = append(out, hexVal(hexDigits[i])<<4|hexVal(hexDigits[i+1]))
	}
	return string(out)
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func (t *tokenizer) readName() resourceName {
	t.pos++ // consume '/'
	start := t.pos
	for t.pos < len(t.data) && !isDelimiter(t.data[t.pos]) {
		t.pos++
	}
	return resourceName(t.data[start:t.pos])
}

func (t *tokenizer) readNumber() float64 {
	start := t.pos
	for t.pos < len(t.data) && !isDelimiter(t.data[t.pos]) {
		t.pos++
	}
	f, err := strconv.ParseFloat(string(t.data[start:t.pos]), 64)
	if err != nil {
		return 0
	}
	return f
}

func (t *tokenizer) readArray() []any {
	var arr []any
	for t.pos < len(t.data) {
		t.skipWhitespace()
		if t.pos >= len(t.data) || t.data[t.pos] == ']' {
			t.pos++
			return arr
		}
		el, ok := t.next()
		if !ok {
			return arr
		}
		arr = append(arr, el)
	}
	return arr
}

func (t *tokenizer) readOperator() operator {
	start := t.pos
	for t.pos < len(t.data) && !isDelimiter(t.data[t.pos]) {
		t.pos++
	}
	return operator(t.data[start:t.pos])
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0, '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
