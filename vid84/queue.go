package vid84

// QueueCap is the number of rectangles the idle-time prefetcher may decode
// ahead of the frame that needs them.
const QueueCap = 32

// prefetchQueue is a fixed-capacity, ordered buffer of decoded-but-undrawn
// rectangles. Slots fill strictly left to right; n is the fill count.
type prefetchQueue struct {
	slots [QueueCap]Rect
	n     int
}

// push appends a rectangle, reporting false when the queue is full. Hitting
// capacity is a throughput limit, not an error; later rectangles simply get
// decoded live.
func (q *prefetchQueue) push(r Rect) bool {
	if q.n >= QueueCap {
		return false
	}
	q.slots[q.n] = r
	q.n++
	return true
}

func (q *prefetchQueue) full() bool { return q.n >= QueueCap }

// drain calls fn on every filled slot in fill order, then resets the queue.
func (q *prefetchQueue) drain(fn func(Rect)) {
	for i := 0; i < q.n; i++ {
		fn(q.slots[i])
	}
	q.n = 0
}
