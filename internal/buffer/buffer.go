package buffer

// Buffer accumulates a single frame. Its capacity may grow from the initial size up to the
// limit, but never beyond it: the underlying slice is re-allocated with a clamped capacity
// instead of relying on append's growth policy.
type Buffer struct {
	memory  []byte
	maxSize int
}

func New(initialSize, maxSize int) *Buffer {
	if initialSize > maxSize {
		initialSize = maxSize
	}

	return &Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of bytes doesn't exceed the limit.
// Otherwise, nothing is written and false is returned.
func (b *Buffer) Append(elements []byte) (ok bool) {
	newLen := len(b.memory) + len(elements)
	if newLen > b.maxSize {
		return false
	}

	if newLen > cap(b.memory) {
		b.grow(newLen)
	}

	b.memory = append(b.memory, elements...)
	return true
}

func (b *Buffer) grow(atLeast int) {
	newCap := cap(b.memory) * 2
	if newCap < atLeast {
		newCap = atLeast
	}

	if newCap > b.maxSize {
		newCap = b.maxSize
	}

	memory := make([]byte, len(b.memory), newCap)
	copy(memory, b.memory)
	b.memory = memory
}

// Len returns the number of accumulated bytes.
func (b *Buffer) Len() int {
	return len(b.memory)
}

// Cap returns the capacity of the underlying memory.
func (b *Buffer) Cap() int {
	return cap(b.memory)
}

// Trunc truncates the last n bytes.
func (b *Buffer) Trunc(n int) {
	if n > len(b.memory) {
		n = len(b.memory)
	}

	b.memory = b.memory[:len(b.memory)-n]
}

// Preview returns accumulated bytes. The returned slice is valid until the next Append
// or Clear.
func (b *Buffer) Preview() []byte {
	return b.memory
}

// Clear just resets the pointers, so old values may be overridden by new ones. Grown
// memory is kept.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
