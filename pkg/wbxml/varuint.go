package wbxml

// AppendVarUint appends the minimal multi-byte encoding of v to dst. Zero
// encodes as a single 0x00 byte.
func AppendVarUint(dst []byte, v uint32) []byte {
	var tmp [maxVarUintBytes]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7F)
	for v >>= 7; v != 0; v >>= 7 {
		i--
		tmp[i] = byte(v&0x7F) | 0x80
	}
	return append(dst, tmp[i:]...)
}

// VarUintLen returns the number of bytes AppendVarUint writes for v.
func VarUintLen(v uint32) int {
	n := 1
	for v >>= 7; v != 0; v >>= 7 {
		n++
	}
	return n
}
