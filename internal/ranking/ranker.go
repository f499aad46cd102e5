package ranking

import (
	"container/heap"
	"errors"
	"sort"
)

// ErrInvalidArgument is returned by TopK for a negative k.
var ErrInvalidArgument = errors.New("k must be non-negative")

// Entry is one (song, play count) pair in ranked output.
type Entry struct {
	SongID string
	Count  int
}

// entry is a live heap element. seq records when the count last
// changed; among equal counts the most recent change ranks first,
// which keeps displayed rankings stable between plays.
type entry struct {
	id    string
	count int
	seq   uint64
	index int // position in the heap slice, maintained by maxHeap
}

// maxHeap orders entries by count, then recency. It implements
// container/heap so a single increment is a logarithmic sift instead
// of a rescan.
type maxHeap []*entry

func (h maxHeap) Len() int { return len(h) }

func (h maxHeap) Less(i, j int) bool {
	if h[i].count != h[j].count {
		return h[i].count > h[j].count
	}
	return h[i].seq > h[j].seq
}

func (h maxHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *maxHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Ranker maintains play counts and answers top-K queries. A map from
// song ID to heap entry makes increments O(log n) and count lookups
// O(1).
type Ranker struct {
	heap    maxHeap
	entries map[string]*entry
	seq     uint64
}

// NewRanker creates an empty ranker.
func NewRanker() *Ranker {
	return &Ranker{entries: make(map[string]*entry)}
}

// RecordPlay increments a song's play count, creating it at count 1
// when new, and restores the heap invariant by sifting the entry
// toward the root.
func (r *Ranker) RecordPlay(id string) {
	r.seq++
	if e, ok := r.entries[id]; ok {
		e.count++
		e.seq = r.seq
		heap.Fix(&r.heap, e.index)
		return
	}
	e := &entry{id: id, count: 1, seq: r.seq}
	r.entries[id] = e
	heap.Push(&r.heap, e)
}

// CountOf returns a song's play count, 0 when the song has never been
// played.
func (r *Ranker) CountOf(id string) int {
	if e, ok := r.entries[id]; ok {
		return e.count
	}
	return 0
}

// Len returns the number of tracked songs.
func (r *Ranker) Len() int {
	return len(r.entries)
}

// TopK returns the k most played songs, highest count first, ties
// broken by whichever song reached its count most recently. The live
// heap is never mutated; the ranking is a sort over a snapshot.
func (r *Ranker) TopK(k int) ([]Entry, error) {
	if k < 0 {
		return nil, ErrInvalidArgument
	}
	if k > len(r.heap) {
		k = len(r.heap)
	}
	if k == 0 {
		return nil, nil
	}

	snapshot := make([]*entry, len(r.heap))
	copy(snapshot, r.heap)
	sort.Slice(snapshot, func(i, j int) bool {
		if snapshot[i].count != snapshot[j].count {
			return snapshot[i].count > snapshot[j].count
		}
		return snapshot[i].seq > snapshot[j].seq
	})

	top := make([]Entry, k)
	for i := 0; i < k; i++ {
		top[i] = Entry{SongID: snapshot[i].id, Count: snapshot[i].count}
	}
	return top, nil
}

// Counts returns a snapshot of every song's play count.
func (r *Ranker) Counts() map[string]int {
	counts := make(map[string]int, len(r.entries))
	for id, e := range r.entries {
		counts[id] = e.count
	}
	return counts
}

// Remove drops a song from the ranking. Unknown IDs are a no-op.
func (r *Ranker) Remove(id string) {
	e, ok := r.entries[id]
	if !ok {
		return
	}
	heap.Remove(&r.heap, e.index)
	delete(r.entries, id)
}

// Restore replaces all counts from a snapshot. The recency sequence
// is not part of a snapshot, so restored ties rank in ascending ID
// order until new plays are recorded.
func (r *Ranker) Restore(counts map[string]int) {
	r.heap = r.heap[:0]
	r.entries = make(map[string]*entry, len(counts))
	r.seq = 0

	ids := make([]string, 0, len(counts))
	for id, count := range counts {
		if count <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	// Ascending count, descending ID: later seq assignments win ties,
	// so equal counts come back in ascending ID order.
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] < counts[ids[j]]
		}
		return ids[i] > ids[j]
	})

	for _, id := range ids {
		r.seq++
		e := &entry{id: id, count: counts[id], seq: r.seq, index: len(r.heap)}
		r.entries[id] = e
		r.heap = append(r.heap, e)
	}
	heap.Init(&r.heap)
}
