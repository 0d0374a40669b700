package frame

import (
	"bytes"

	"github.com/impldream/smart-socket/internal/buffer"
)

// Delimiter accumulates bytes until a terminator is met. Progress of a partially matched
// terminator is preserved among calls, so a terminator split over several deliveries is
// still detected. The limit covers the whole frame, terminator included.
type Delimiter struct {
	terminator []byte
	// fallback is the KMP failure table of the terminator
	fallback []int
	matched  int
	done     bool
	buff     *buffer.Buffer
}

func NewDelimiter(terminator []byte, initialSize, maxSize int) *Delimiter {
	if len(terminator) == 0 {
		panic("frame: empty terminator")
	}

	return &Delimiter{
		terminator: bytes.Clone(terminator),
		fallback:   failureTable(terminator),
		buff:       buffer.New(initialSize, maxSize),
	}
}

func (d *Delimiter) Decode(data []byte) (done bool, rest []byte, err error) {
	if d.done {
		return true, data, nil
	}

	term := d.terminator

	for i, c := range data {
		for d.matched > 0 && c != term[d.matched] {
			d.matched = d.fallback[d.matched-1]
		}

		if c == term[d.matched] {
			d.matched++
		}

		if d.matched == len(term) {
			if !d.buff.Append(data[:i+1]) {
				return false, nil, ErrTooLarge
			}

			d.buff.Trunc(len(term))
			d.done = true

			return true, data[i+1:], nil
		}
	}

	if !d.buff.Append(data) {
		return false, nil, ErrTooLarge
	}

	return false, nil, nil
}

// Bytes returns the frame with the terminator stripped. The slice is borrowed: it's valid
// only until Reset is called.
func (d *Delimiter) Bytes() []byte {
	return d.buff.Preview()
}

// Len returns the number of bytes accumulated so far.
func (d *Delimiter) Len() int {
	return d.buff.Len()
}

// Reset prepares the decoder for the next frame, keeping the allocated memory.
func (d *Delimiter) Reset() {
	d.buff.Clear()
	d.matched = 0
	d.done = false
}

func failureTable(pattern []byte) []int {
	table := make([]int, len(pattern))

	for i, k := 1, 0; i < len(pattern); i++ {
		for k > 0 && pattern[i] != pattern[k] {
			k = table[k-1]
		}

		if pattern[i] == pattern[k] {
			k++
		}

		table[i] = k
	}

	return table
}
