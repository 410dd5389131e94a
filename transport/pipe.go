package transport

import proto "github.com/ystepanoff/chromalink/protocol"

// Pipe is a fixed-capacity ring buffer of SignalChange values connecting an
// Encoder's output to a Decoder's input without a physical channel. It
// mirrors the bounded, pre-allocated buffering the rest of the codec uses:
// Push never grows the backing array, and a full Pipe drops the oldest
// unread change to make room for the newest.
type Pipe struct {
	buf   []proto.SignalChange
	head  int
	count int
}

// NewPipe returns a Pipe backed by a ring of capacity slots.
func NewPipe(capacity int) *Pipe {
	if capacity <= 0 {
		capacity = 1
	}
	return &Pipe{buf: make([]proto.SignalChange, capacity)}
}

// Push appends change to the ring, evicting the oldest entry if the Pipe is
// already full.
func (p *Pipe) Push(change proto.SignalChange) {
	tail := (p.head + p.count) % len(p.buf)
	p.buf[tail] = change
	if p.count < len(p.buf) {
		p.count++
	} else {
		p.head = (p.head + 1) % len(p.buf)
	}
}

// PushAll pushes every change in changes, in order.
func (p *Pipe) PushAll(changes []proto.SignalChange) {
	for _, c := range changes {
		p.Push(c)
	}
}

// Pop removes and returns the oldest unread change. ok is false if the
// Pipe is empty.
func (p *Pipe) Pop() (change proto.SignalChange, ok bool) {
	if p.count == 0 {
		return proto.SignalChange{}, false
	}
	change = p.buf[p.head]
	p.head = (p.head + 1) % len(p.buf)
	p.count--
	return change, true
}

// Len reports the number of unread changes currently buffered.
func (p *Pipe) Len() int { return p.count }

// Drain feeds every buffered change into decoder, oldest first, until the
// Pipe is empty.
func (p *Pipe) Drain(decoder *Decoder) {
	for {
		change, ok := p.Pop()
		if !ok {
			return
		}
		decoder.Feed(change)
	}
}
