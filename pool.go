// pool.go - encoder scratch buffers
package qris

import "sync"

// Payloads are a few hundred characters at most.
var bufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 512)
		return &buf
	},
}

func getBuffer() []byte {
	buf := bufferPool.Get().(*[]byte)
	return (*buf)[:0]
}

func putBuffer(buf []byte) {
	if cap(buf) <= 4096 { // Don't pool huge buffers
		b := buf[:0]
		bufferPool.Put(&b)
	}
}
