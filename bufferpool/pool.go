package bufferpool

import "sync"

// BufferPool recycles fixed-size byte slices for protocol reads.
type BufferPool struct {
	pool sync.Pool
}

func NewBufferPool(size int) *BufferPool {
	bp := new(BufferPool)
	bp.pool.New = func() any {
		buf := make([]byte, size)
		return &buf
	}
	return bp
}

func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

func (bp *BufferPool) Put(buf *[]byte) {
	bp.pool.Put(buf)
}
