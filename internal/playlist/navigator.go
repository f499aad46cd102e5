package playlist

import (
	"errors"
	"math/rand"
	"time"
)

var (
	// ErrEmpty is returned by cursor operations on an empty playlist.
	ErrEmpty = errors.New("playlist is empty")

	// ErrNotFound is returned when a song ID is not in the playlist.
	ErrNotFound = errors.New("song not in playlist")
)

// Navigator maintains the ordered playback sequence and the cursor
// over it. Linear mode wraps at both ends. Shuffle mode draws from a
// bag (a shuffled permutation consumed without repeats until
// exhausted) and keeps its own visit stack so Previous retraces the
// actual shuffle path.
type Navigator struct {
	order   []string
	pos     int // index into order, -1 when empty
	shuffle bool
	bag     []string // IDs not yet visited in the current shuffle cycle
	visits  []string // shuffle visit trail, most recent last
	rng     *rand.Rand
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithRand sets the random source used for shuffling. Tests use this
// for deterministic bags.
func WithRand(rng *rand.Rand) Option {
	return func(n *Navigator) {
		n.rng = rng
	}
}

// WithShuffle sets the initial shuffle mode.
func WithShuffle(on bool) Option {
	return func(n *Navigator) {
		n.shuffle = on
	}
}

// NewNavigator creates an empty navigator.
func NewNavigator(opts ...Option) *Navigator {
	n := &Navigator{
		pos: -1,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Load replaces the playlist contents. The cursor moves to the first
// song, or to none when ids is empty. Any shuffle state is reset.
func (n *Navigator) Load(ids []string) {
	n.order = make([]string, len(ids))
	copy(n.order, ids)
	n.visits = n.visits[:0]
	n.bag = nil
	if len(n.order) == 0 {
		n.pos = -1
		return
	}
	n.pos = 0
	if n.shuffle {
		n.reseedBag()
	}
}

// Restore replaces the playlist and places the cursor on current
// without recording a shuffle visit; the trail starts empty and the
// bag is reseeded around the restored cursor. An unknown current
// leaves the cursor on the first song and reports ErrNotFound.
func (n *Navigator) Restore(ids []string, current string) error {
	n.Load(ids)
	if current == "" || len(n.order) == 0 {
		return nil
	}
	idx := n.indexOf(current)
	if idx < 0 {
		return ErrNotFound
	}
	n.pos = idx
	if n.shuffle {
		n.reseedBag()
	}
	return nil
}

// Len returns the number of songs in the playlist.
func (n *Navigator) Len() int {
	return len(n.order)
}

// Order returns a copy of the playlist sequence.
func (n *Navigator) Order() []string {
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// Shuffle reports whether shuffle mode is on.
func (n *Navigator) Shuffle() bool {
	return n.shuffle
}

// Current returns the song ID at the cursor.
func (n *Navigator) Current() (string, error) {
	if n.pos < 0 {
		return "", ErrEmpty
	}
	return n.order[n.pos], nil
}

// Next advances the cursor and returns the new current song. In
// linear mode the cursor wraps to the start after the last song. In
// shuffle mode the next song is drawn from the bag; once the bag is
// empty a new cycle is seeded excluding the song just played.
func (n *Navigator) Next() (string, error) {
	if n.pos < 0 {
		return "", ErrEmpty
	}
	if !n.shuffle {
		n.pos = (n.pos + 1) % len(n.order)
		return n.order[n.pos], nil
	}
	if len(n.order) == 1 {
		return n.order[n.pos], nil
	}

	next, ok := n.drawFromBag()
	if !ok {
		n.reseedBag()
		next, ok = n.drawFromBag()
		if !ok {
			return n.order[n.pos], nil
		}
	}
	n.visits = append(n.visits, n.order[n.pos])
	n.pos = n.indexOf(next)
	return next, nil
}

// Previous moves the cursor backward and returns the new current
// song. In linear mode it wraps from the first song to the last. In
// shuffle mode it pops the visit trail, so the order is exactly the
// reverse of the preceding Next calls; ErrEmpty is returned once the
// trail is exhausted.
func (n *Navigator) Previous() (string, error) {
	if n.pos < 0 {
		return "", ErrEmpty
	}
	if !n.shuffle {
		n.pos = (n.pos - 1 + len(n.order)) % len(n.order)
		return n.order[n.pos], nil
	}

	for len(n.visits) > 0 {
		id := n.visits[len(n.visits)-1]
		n.visits = n.visits[:len(n.visits)-1]
		if idx := n.indexOf(id); idx >= 0 {
			n.pos = idx
			return id, nil
		}
	}
	return "", ErrEmpty
}

// PeekNext returns the song Next would move to, without moving. In
// shuffle mode this is the top of the bag; once the bag is exhausted
// the upcoming reseed is random, so ErrEmpty is returned.
func (n *Navigator) PeekNext() (string, error) {
	if n.pos < 0 {
		return "", ErrEmpty
	}
	if !n.shuffle {
		return n.order[(n.pos+1)%len(n.order)], nil
	}
	for i := len(n.bag) - 1; i >= 0; i-- {
		if n.indexOf(n.bag[i]) >= 0 {
			return n.bag[i], nil
		}
	}
	return "", ErrEmpty
}

// PeekPrevious returns the song Previous would move to, without
// moving.
func (n *Navigator) PeekPrevious() (string, error) {
	if n.pos < 0 {
		return "", ErrEmpty
	}
	if !n.shuffle {
		return n.order[(n.pos-1+len(n.order))%len(n.order)], nil
	}
	for i := len(n.visits) - 1; i >= 0; i-- {
		if n.indexOf(n.visits[i]) >= 0 {
			return n.visits[i], nil
		}
	}
	return "", ErrEmpty
}

// ToggleShuffle flips shuffle mode and returns the new state.
// Entering shuffle seeds a fresh bag excluding the current song and
// starts an empty visit trail; leaving shuffle keeps the cursor where
// it is.
func (n *Navigator) ToggleShuffle() bool {
	n.shuffle = !n.shuffle
	if n.shuffle {
		n.visits = n.visits[:0]
		n.reseedBag()
	} else {
		n.bag = nil
	}
	return n.shuffle
}

// JumpTo moves the cursor directly to the given song, recording the
// jump on the shuffle visit trail so Previous still works across
// search-triggered plays.
func (n *Navigator) JumpTo(id string) error {
	idx := n.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	if n.shuffle && n.pos >= 0 && idx != n.pos {
		n.visits = append(n.visits, n.order[n.pos])
		n.removeFromBag(id)
	}
	n.pos = idx
	return nil
}

// Insert adds a song at the given position (clamped to the valid
// range). The cursor stays on the same song.
func (n *Navigator) Insert(id string, position int) {
	if position < 0 {
		position = 0
	}
	if position > len(n.order) {
		position = len(n.order)
	}
	n.order = append(n.order, "")
	copy(n.order[position+1:], n.order[position:])
	n.order[position] = id

	if n.pos < 0 {
		n.pos = 0
	} else if position <= n.pos {
		n.pos++
	}
	if n.shuffle {
		n.bag = append(n.bag, id)
	}
}

// Remove deletes a song from the playlist and purges it from the
// shuffle bag and visit trail. Removing the current song advances the
// cursor to the next entry (wrapping), or to none when the playlist
// is now empty.
func (n *Navigator) Remove(id string) error {
	idx := n.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	n.order = append(n.order[:idx], n.order[idx+1:]...)
	n.removeFromBag(id)
	n.purgeVisits(id)

	switch {
	case len(n.order) == 0:
		n.pos = -1
	case idx < n.pos:
		n.pos--
	case idx == n.pos && n.pos >= len(n.order):
		n.pos = 0
	}
	return nil
}

func (n *Navigator) indexOf(id string) int {
	for i, v := range n.order {
		if v == id {
			return i
		}
	}
	return -1
}

// reseedBag fills the bag with every song except the current one, in
// random order.
func (n *Navigator) reseedBag() {
	n.bag = n.bag[:0]
	for i, id := range n.order {
		if i == n.pos {
			continue
		}
		n.bag = append(n.bag, id)
	}
	n.rng.Shuffle(len(n.bag), func(i, j int) {
		n.bag[i], n.bag[j] = n.bag[j], n.bag[i]
	})
}

// drawFromBag pops bag entries until one still in the playlist is
// found. Returns false when the bag is exhausted.
func (n *Navigator) drawFromBag() (string, bool) {
	for len(n.bag) > 0 {
		id := n.bag[len(n.bag)-1]
		n.bag = n.bag[:len(n.bag)-1]
		if n.indexOf(id) >= 0 {
			return id, true
		}
	}
	return "", false
}

func (n *Navigator) removeFromBag(id string) {
	for i, v := range n.bag {
		if v == id {
			n.bag = append(n.bag[:i], n.bag[i+1:]...)
			return
		}
	}
}

func (n *Navigator) purgeVisits(id string) {
	kept := n.visits[:0]
	for _, v := range n.visits {
		if v != id {
			kept = append(kept, v)
		}
	}
	n.visits = kept
}
