package frame

// Fixed accumulates exactly the declared number of bytes. Surplus bytes are never consumed.
type Fixed struct {
	length int
	buff   []byte
}

func NewFixed(length int) *Fixed {
	f := new(Fixed)
	f.Reset(length)

	return f
}

func (f *Fixed) Decode(data []byte) (done bool, rest []byte, err error) {
	need := f.length - len(f.buff)
	if need > len(data) {
		f.buff = append(f.buff, data...)
		return false, nil, nil
	}

	f.buff = append(f.buff, data[:need]...)

	return true, data[need:], nil
}

// Bytes returns the accumulated bytes. The slice is borrowed until the next Reset.
func (f *Fixed) Bytes() []byte {
	return f.buff
}

// Remaining returns how many bytes the frame still misses.
func (f *Fixed) Remaining() int {
	return f.length - len(f.buff)
}

// Reset discards accumulated bytes and sets the length of the next frame. The memory
// is reused whenever it's enough to hold the new frame.
func (f *Fixed) Reset(length int) {
	if length < 0 {
		length = 0
	}

	if cap(f.buff) < length {
		f.buff = make([]byte, 0, length)
	}

	f.buff = f.buff[:0]
	f.length = length
}
