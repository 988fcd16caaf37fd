package language

// binarySniffLen is how many leading bytes get inspected for null bytes.
const binarySniffLen = 512

// IsBinaryContent reports whether data looks like binary rather than text.
// A null byte in the leading bytes is the signal, the same heuristic git uses.
func IsBinaryContent(data []byte) bool {
	n := len(data)
	if n > binarySniffLen {
		n = binarySniffLen
	}
	for _, b := range data[:n] {
		if b == 0 {
			return true
		}
	}
	return false
}
