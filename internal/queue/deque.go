package queue

// Deque is a double-ended queue of episode guids. Front insertion is a
// first-class operation because a busy-rejected episode re-enters at the
// front, ahead of everything queued behind it.
type Deque struct {
	items []string
}

func (d *Deque) PushBack(v string) {
	d.items = append(d.items, v)
}

func (d *Deque) PushFront(v string) {
	d.items = append([]string{v}, d.items...)
}

func (d *Deque) PopFront() (string, bool) {
	if len(d.items) == 0 {
		return "", false
	}
	v := d.items[0]
	d.items = d.items[1:]
	return v, true
}

func (d *Deque) Len() int {
	return len(d.items)
}

// Index returns the 0-based position of v, or -1 when absent.
func (d *Deque) Index(v string) int {
	for i, item := range d.items {
		if item == v {
			return i
		}
	}
	return -1
}
