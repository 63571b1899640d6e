package wbxml

// writer accumulates encoder output. Writes never fail; the buffer is handed
// to the caller only once the whole tree has been encoded.
type writer struct {
	buf []byte
}

func newWriter(sizeHint int) *writer {
	return &writer{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the bytes written so far.
func (w *writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *writer) Len() int { return len(w.buf) }

func (w *writer) writeByte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *writer) writeVarUint(v uint32) {
	w.buf = AppendVarUint(w.buf, v)
}

// writeTermString writes s followed by a NUL terminator. The caller has
// already checked that s holds no NUL.
func (w *writer) writeTermString(s string) {
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0x00)
}

func (w *writer) write(p []byte) {
	w.buf = append(w.buf, p...)
}

// writeHeader writes the fixed 1.3 / unknown public id / UTF-8 / empty
// string table header.
func (w *writer) writeHeader() {
	w.writeByte(Version13)
	w.writeVarUint(PublicIDUnknown)
	w.writeVarUint(CharsetUTF8)
	w.writeVarUint(0)
}
