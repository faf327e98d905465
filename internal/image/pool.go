package image

import "sync"

// Pool is a thread-safe pool for reusing ImageBuf instances.
//
// Pool groups buffers by their dimensions, allowing efficient reuse of
// identically-sized buffers. This reduces GC pressure for pipelines that
// repeatedly allocate and release surfaces of the same size.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*ImageBuf
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of identically-sized buffers.
type poolKey struct {
	width  int
	height int
}

// NewPool creates a new image buffer pool with the given maximum buffers per bucket.
// maxPerBucket limits how many buffers of each size are retained.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*ImageBuf),
		maxSize: maxPerBucket,
	}
}

// Get retrieves an image buffer from the pool or creates a new one.
// The returned buffer is guaranteed to have the specified dimensions.
// If a buffer is reused from the pool, it will be cleared (all pixels zeroed).
func (p *Pool) Get(width, height int) *ImageBuf {
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	var buf *ImageBuf

	if len(bucket) > 0 {
		// Pop from pool
		buf = bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		buf.Clear()
		return buf
	}
	p.mu.Unlock()

	buf, err := NewImageBuf(width, height)
	if err != nil {
		return nil
	}
	return buf
}

// Put returns an image buffer to the pool for reuse.
// If buf is nil or the pool bucket is at max capacity, the buffer is discarded.
func (p *Pool) Put(buf *ImageBuf) {
	if buf == nil {
		return
	}

	key := poolKey{
		width:  buf.width,
		height: buf.height,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]

	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		// Bucket full, discard buffer (GC will clean up)
		return
	}

	p.buckets[key] = append(bucket, buf)
}
