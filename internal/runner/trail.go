package runner

// trail is a fixed-capacity ring of recent ball positions.
type trail struct {
	buf   []Vec2
	start int
	size  int
}

func newTrail(capacity int) trail {
	if capacity < 1 {
		capacity = 1
	}
	return trail{buf: make([]Vec2, capacity)}
}

// push appends p, discarding the oldest point when full.
func (t *trail) push(p Vec2) {
	if t.size < len(t.buf) {
		t.buf[(t.start+t.size)%len(t.buf)] = p
		t.size++
		return
	}
	t.buf[t.start] = p
	t.start = (t.start + 1) % len(t.buf)
}

func (t *trail) clear() {
	t.start = 0
	t.size = 0
}

func (t *trail) len() int {
	return t.size
}

// points returns a copy ordered oldest first.
func (t *trail) points() []Vec2 {
	out := make([]Vec2, t.size)
	for i := 0; i < t.size; i++ {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}
