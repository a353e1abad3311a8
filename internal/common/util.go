// Package common holds small helpers shared across kpark client layers.
package common

// WipeByteArray overwrites the buffer with zeros. Password buffers go
// through here before they are released.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
