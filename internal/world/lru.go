package world

import "container/heap"

// evictQueue - min-heap выгруженных чанков по LastAccess.
// Наверху самый давно использованный кандидат на вытеснение.
type evictQueue []*Chunk

func (q evictQueue) Len() int { return len(q) }

func (q evictQueue) Less(i, j int) bool {
	return q[i].LastAccess < q[j].LastAccess
}

func (q evictQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].heapIndex = i
	q[j].heapIndex = j
}

func (q *evictQueue) Push(x interface{}) {
	c := x.(*Chunk)
	c.heapIndex = len(*q)
	*q = append(*q, c)
}

func (q *evictQueue) Pop() interface{} {
	old := *q
	n := len(old)
	c := old[n-1]
	old[n-1] = nil // избегаем утечки памяти
	c.heapIndex = -1
	*q = old[:n-1]
	return c
}

// touch обновляет время доступа и позицию в куче.
func (q *evictQueue) touch(c *Chunk, now float64) {
	c.LastAccess = now
	if c.heapIndex >= 0 {
		heap.Fix(q, c.heapIndex)
	}
}

func (q *evictQueue) remove(c *Chunk) {
	if c.heapIndex >= 0 {
		heap.Remove(q, c.heapIndex)
	}
}
