package audit

// Ring es una cola acotada: al llenarse, Push descarta la entrada más vieja en O(1).
// No es segura para uso concurrente; quien la contiene serializa por instalación.
type Ring struct {
	buf  []Entry
	head int // índice de la entrada más vieja
	size int
}

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = Capacity
	}
	return &Ring{buf: make([]Entry, capacity)}
}

// Push agrega e y devuelve la entrada desalojada, si hubo.
func (r *Ring) Push(e Entry) (Entry, bool) {
	if r.size < len(r.buf) {
		r.buf[(r.head+r.size)%len(r.buf)] = e
		r.size++
		return Entry{}, false
	}

	evicted := r.buf[r.head]
	r.buf[r.head] = e
	r.head = (r.head + 1) % len(r.buf)
	return evicted, true
}

func (r *Ring) Len() int { return r.size }

// Items devuelve una copia en orden de inserción (más vieja primero).
func (r *Ring) Items() []Entry {
	out := make([]Entry, 0, r.size)
	for i := 0; i < r.size; i++ {
		out = append(out, r.buf[(r.head+i)%len(r.buf)])
	}
	return out
}

func (r *Ring) Clone() *Ring {
	buf := make([]Entry, len(r.buf))
	copy(buf, r.buf)
	return &Ring{buf: buf, head: r.head, size: r.size}
}
