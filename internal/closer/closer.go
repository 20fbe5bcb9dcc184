// Package closer is the default closability oracle: an incremental JSON
// scanner that, after every delta, reports the shortest suffix that turns
// everything seen so far into valid JSON.
//
// The closer only ever appends. A prefix is closable when it ends inside
// a string value, a valid number, a partial true/false/null literal, right
// after an opening bracket or brace, or right after a complete value. It
// is not closable inside an object key, after a colon or comma, in the
// middle of an escape sequence or a multi-byte character, or before the
// first value starts. Input that can never become valid JSON leaves the
// closer in a failed state until Reset.
package closer

import (
	"strings"

	"github.com/rileyhilliard/genui/internal/stream"
)

type mode int

const (
	modeNone mode = iota
	modeString
	modeNumber
	modeLiteral
	modeFailed
)

// slot tracks what an open container expects next.
type slot int

const (
	slotEmpty     slot = iota // just opened
	slotNeedItem              // after a comma
	slotNeedColon             // object key read
	slotNeedValue             // object colon read
	slotHaveItem              // after a value
)

type container struct {
	open byte
	slot slot
}

type number int

const (
	numMinus number = iota
	numZero
	numInt
	numDot
	numFrac
	numE
	numExpSign
	numExp
)

// Closer implements stream.Oracle. It is not safe for concurrent use.
type Closer struct {
	stack    []container
	mode     mode
	topDone  bool
	isKey    bool
	escape   int // -1 after a backslash, n>0 hex digits still owed
	owed     int // UTF-8 continuation bytes still owed inside a string
	num      number
	literal  string
	consumed int
}

var _ stream.Oracle = (*Closer)(nil)

// New returns a closer ready for a fresh stream.
func New() *Closer {
	return &Closer{}
}

// ProcessDelta feeds delta and reports whether the buffer is closable.
func (c *Closer) ProcessDelta(delta string) stream.Result {
	for i := 0; i < len(delta) && c.mode != modeFailed; i++ {
		c.feed(delta[i])
	}
	c.consumed += len(delta)

	completion, ok := c.completion()
	if !ok {
		return stream.NotClosable
	}
	return stream.Closed(completion)
}

// Reset forgets everything fed so far.
func (c *Closer) Reset() {
	*c = Closer{stack: c.stack[:0]}
}

// Failed reports whether the input can no longer become valid JSON.
func (c *Closer) Failed() bool {
	return c.mode == modeFailed
}

// Consumed returns how many bytes have been fed since the last reset.
func (c *Closer) Consumed() int {
	return c.consumed
}

func (c *Closer) fail() {
	c.mode = modeFailed
}

func (c *Closer) feed(b byte) {
	switch c.mode {
	case modeString:
		c.feedString(b)
	case modeNumber:
		if !c.feedNumber(b) {
			if !numberComplete(c.num) {
				c.fail()
				return
			}
			c.mode = modeNone
			c.valueDone()
			c.feedStructural(b)
		}
	case modeLiteral:
		if b != c.literal[0] {
			c.fail()
			return
		}
		c.literal = c.literal[1:]
		if c.literal == "" {
			c.mode = modeNone
			c.valueDone()
		}
	case modeNone:
		c.feedStructural(b)
	}
}

func (c *Closer) feedString(b byte) {
	if c.owed > 0 {
		if b&0xC0 == 0x80 {
			c.owed--
			return
		}
		// Malformed rune; stop waiting for it.
		c.owed = 0
	}
	switch {
	case c.escape == -1:
		switch b {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			c.escape = 0
		case 'u':
			c.escape = 4
		default:
			c.fail()
		}
	case c.escape > 0:
		if !isHex(b) {
			c.fail()
			return
		}
		c.escape--
	case b == '\\':
		c.escape = -1
	case b == '"':
		c.mode = modeNone
		if c.isKey {
			c.top().slot = slotNeedColon
			return
		}
		c.valueDone()
	case b < 0x20:
		c.fail()
	case b >= 0xC2 && b <= 0xDF:
		c.owed = 1
	case b >= 0xE0 && b <= 0xEF:
		c.owed = 2
	case b >= 0xF0 && b <= 0xF4:
		c.owed = 3
	}
}

// feedNumber advances the number state; false means b ends the number.
func (c *Closer) feedNumber(b byte) bool {
	digit := b >= '0' && b <= '9'
	switch c.num {
	case numMinus:
		switch {
		case b == '0':
			c.num = numZero
		case digit:
			c.num = numInt
		default:
			return false
		}
	case numZero:
		switch b {
		case '.':
			c.num = numDot
		case 'e', 'E':
			c.num = numE
		default:
			return false
		}
	case numInt:
		switch {
		case digit:
		case b == '.':
			c.num = numDot
		case b == 'e' || b == 'E':
			c.num = numE
		default:
			return false
		}
	case numDot:
		if !digit {
			return false
		}
		c.num = numFrac
	case numFrac:
		switch {
		case digit:
		case b == 'e' || b == 'E':
			c.num = numE
		default:
			return false
		}
	case numE:
		switch {
		case b == '+' || b == '-':
			c.num = numExpSign
		case digit:
			c.num = numExp
		default:
			return false
		}
	case numExpSign:
		if !digit {
			return false
		}
		c.num = numExp
	case numExp:
		if !digit {
			return false
		}
	}
	return true
}

func numberComplete(n number) bool {
	return n == numZero || n == numInt || n == numFrac || n == numExp
}

func (c *Closer) feedStructural(b byte) {
	if isSpace(b) {
		return
	}

	if len(c.stack) == 0 {
		if c.topDone {
			c.fail()
			return
		}
		c.startValue(b)
		return
	}

	top := c.top()
	if top.open == '{' {
		switch top.slot {
		case slotEmpty:
			switch b {
			case '}':
				c.pop()
			case '"':
				c.startString(true)
			default:
				c.fail()
			}
		case slotNeedItem:
			if b != '"' {
				c.fail()
				return
			}
			c.startString(true)
		case slotNeedColon:
			if b != ':' {
				c.fail()
				return
			}
			top.slot = slotNeedValue
		case slotNeedValue:
			c.startValue(b)
		case slotHaveItem:
			switch b {
			case ',':
				top.slot = slotNeedItem
			case '}':
				c.pop()
			default:
				c.fail()
			}
		}
		return
	}

	switch top.slot {
	case slotEmpty:
		if b == ']' {
			c.pop()
			return
		}
		c.startValue(b)
	case slotNeedItem:
		c.startValue(b)
	case slotHaveItem:
		switch b {
		case ',':
			top.slot = slotNeedItem
		case ']':
			c.pop()
		default:
			c.fail()
		}
	default:
		c.fail()
	}
}

func (c *Closer) startValue(b byte) {
	switch {
	case b == '{' || b == '[':
		c.stack = append(c.stack, container{open: b, slot: slotEmpty})
	case b == '"':
		c.startString(false)
	case b == '-':
		c.mode = modeNumber
		c.num = numMinus
	case b == '0':
		c.mode = modeNumber
		c.num = numZero
	case b >= '1' && b <= '9':
		c.mode = modeNumber
		c.num = numInt
	case b == 't':
		c.mode, c.literal = modeLiteral, "rue"
	case b == 'f':
		c.mode, c.literal = modeLiteral, "alse"
	case b == 'n':
		c.mode, c.literal = modeLiteral, "ull"
	default:
		c.fail()
	}
}

func (c *Closer) startString(key bool) {
	c.mode = modeString
	c.isKey = key
	c.escape = 0
	c.owed = 0
}

func (c *Closer) top() *container {
	return &c.stack[len(c.stack)-1]
}

func (c *Closer) pop() {
	c.stack = c.stack[:len(c.stack)-1]
	c.valueDone()
}

// valueDone records that a complete value was just read.
func (c *Closer) valueDone() {
	if len(c.stack) == 0 {
		c.topDone = true
		return
	}
	c.top().slot = slotHaveItem
}

func (c *Closer) completion() (string, bool) {
	var suffix string
	switch c.mode {
	case modeFailed:
		return "", false
	case modeString:
		if c.isKey || c.escape != 0 || c.owed != 0 {
			return "", false
		}
		suffix = `"`
	case modeNumber:
		if !numberComplete(c.num) {
			return "", false
		}
	case modeLiteral:
		suffix = c.literal
	case modeNone:
		if len(c.stack) == 0 {
			return "", c.topDone
		}
		if s := c.top().slot; s != slotEmpty && s != slotHaveItem {
			return "", false
		}
	}
	return suffix + c.closers(), true
}

func (c *Closer) closers() string {
	var b strings.Builder
	for i := len(c.stack) - 1; i >= 0; i-- {
		if c.stack[i].open == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String()
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
