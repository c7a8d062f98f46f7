package cache

// node is an entry of the recency list. It carries its key so that an
// evicted node can be removed from the shard map in O(1).
type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]
}

// recency is an intrusive doubly-linked list ordered from most recently
// used (front) to least recently used (back). Not safe for concurrent use.
type recency[K comparable, V any] struct {
	front *node[K, V]
	back  *node[K, V]
	n     int
}

func (l *recency[K, V]) len() int { return l.n }

func (l *recency[K, V]) pushFront(nd *node[K, V]) {
	nd.prev = nil
	nd.next = l.front
	if l.front != nil {
		l.front.prev = nd
	}
	l.front = nd
	if l.back == nil {
		l.back = nd
	}
	l.n++
}

func (l *recency[K, V]) touch(nd *node[K, V]) {
	if nd == l.front {
		return
	}
	l.unlink(nd)
	l.pushFront(nd)
}

// popBack removes the least recently used node. It returns nil when the
// list is empty.
func (l *recency[K, V]) popBack() *node[K, V] {
	nd := l.back
	if nd != nil {
		l.unlink(nd)
	}
	return nd
}

func (l *recency[K, V]) unlink(nd *node[K, V]) {
	if nd.prev != nil {
		nd.prev.next = nd.next
	} else {
		l.front = nd.next
	}
	if nd.next != nil {
		nd.next.prev = nd.prev
	} else {
		l.back = nd.prev
	}
	nd.prev, nd.next = nil, nil
	l.n--
}

func (l *recency[K, V]) clear() {
	l.front, l.back, l.n = nil, nil, 0
}
