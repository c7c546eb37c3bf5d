package layout

// Buffer is a typed view over a densely packed array of key records.
// All records in one Buffer share the same Layout.
type Buffer struct {
	layout Layout
	data   []byte
}

// NewBuffer allocates a zero-initialized buffer holding n records.
func NewBuffer(l Layout, n int) *Buffer {
	if n < 0 {
		n = 0
	}
	return &Buffer{
		layout: l,
		data:   make([]byte, n*l.Size()),
	}
}

// Wrap views existing record bytes. Trailing bytes that do not form a
// whole record are ignored.
func Wrap(l Layout, data []byte) *Buffer {
	n := len(data) / l.Size()
	return &Buffer{
		layout: l,
		data:   data[:n*l.Size()],
	}
}

// FromKeys encodes keys into a new buffer.
func FromKeys(l Layout, keys []Key) *Buffer {
	b := NewBuffer(l, len(keys))
	for i := range keys {
		b.SetKey(i, &keys[i])
	}
	return b
}

// Layout returns the record layout.
func (b *Buffer) Layout() Layout {
	return b.layout
}

// Len returns the number of records.
func (b *Buffer) Len() int {
	if b == nil || b.layout == nil {
		return 0
	}
	return len(b.data) / b.layout.Size()
}

// Key decodes record i.
func (b *Buffer) Key(i int) Key {
	var k Key
	size := b.layout.Size()
	b.layout.Decode(b.data[i*size:(i+1)*size], &k)
	return k
}

// SetKey encodes k into record i.
func (b *Buffer) SetKey(i int, k *Key) {
	size := b.layout.Size()
	b.layout.Encode(b.data[i*size:(i+1)*size], k)
}

// Keys decodes every record.
func (b *Buffer) Keys() []Key {
	n := b.Len()
	keys := make([]Key, n)
	size := b.layout.Size()
	for i := range n {
		b.layout.Decode(b.data[i*size:(i+1)*size], &keys[i])
	}
	return keys
}

// Bytes returns the raw record bytes. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// CopyTo copies the raw record bytes into dst and returns the number of
// bytes copied.
func (b *Buffer) CopyTo(dst []byte) int {
	return copy(dst, b.Bytes())
}
