package search

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrEmptyTitle is returned when a title normalizes to nothing.
	ErrEmptyTitle = errors.New("title is empty after normalization")

	// ErrEmptyPrefix is returned by Query for an empty prefix when the
	// index is configured to reject them.
	ErrEmptyPrefix = errors.New("empty prefix not allowed")

	// ErrNotFound is returned by Remove when the title/ID pair is not
	// indexed.
	ErrNotFound = errors.New("title not indexed")
)

// EmptyPrefixPolicy controls what Query does with an empty prefix.
type EmptyPrefixPolicy string

const (
	// EmptyPrefixAll returns every indexed song for an empty prefix.
	EmptyPrefixAll EmptyPrefixPolicy = "all"

	// EmptyPrefixReject returns ErrEmptyPrefix for an empty prefix.
	EmptyPrefixReject EmptyPrefixPolicy = "reject"
)

// Match is one prefix-query result.
type Match struct {
	SongID string
	Title  string // normalized title as indexed
}

// node is one character position shared by every indexed title with
// the same prefix. ids holds the songs whose title ends exactly here,
// so titles that are prefixes of longer titles coexist.
type node struct {
	children map[rune]*node
	ids      map[string]struct{}
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

func (n *node) inUse() bool {
	return len(n.ids) > 0 || len(n.children) > 0
}

// Index maps normalized song titles to song IDs for prefix lookup.
// Titles are lower-cased and trimmed on insert and query; characters
// are indexed as-is beyond that, with no tokenization.
type Index struct {
	root        *node
	limit       int // 0 means unbounded
	emptyPrefix EmptyPrefixPolicy
	size        int // indexed (title, ID) pairs
}

// Option configures an Index.
type Option func(*Index)

// WithLimit caps the number of matches a single Query returns.
// n <= 0 means unbounded.
func WithLimit(n int) Option {
	return func(idx *Index) {
		if n > 0 {
			idx.limit = n
		}
	}
}

// WithEmptyPrefixPolicy sets the empty-prefix behavior. The default
// is EmptyPrefixAll.
func WithEmptyPrefixPolicy(p EmptyPrefixPolicy) Option {
	return func(idx *Index) {
		if p == EmptyPrefixReject {
			idx.emptyPrefix = p
		}
	}
}

// NewIndex creates an empty index.
func NewIndex(opts ...Option) *Index {
	idx := &Index{
		root:        newNode(),
		emptyPrefix: EmptyPrefixAll,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Len returns the number of indexed (title, ID) pairs.
func (idx *Index) Len() int {
	return idx.size
}

// Limit returns the configured result cap, 0 when unbounded.
func (idx *Index) Limit() int {
	return idx.limit
}

// EmptyPrefixPolicy returns the configured empty-prefix behavior.
func (idx *Index) EmptyPrefixPolicy() EmptyPrefixPolicy {
	return idx.emptyPrefix
}

// Normalize returns the form a title or prefix is indexed under.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Insert indexes a song under its title. Inserting the same pair
// twice is a no-op.
func (idx *Index) Insert(title, songID string) error {
	norm := Normalize(title)
	if norm == "" {
		return ErrEmptyTitle
	}

	cur := idx.root
	for _, ch := range norm {
		child, ok := cur.children[ch]
		if !ok {
			child = newNode()
			cur.children[ch] = child
		}
		cur = child
	}
	if cur.ids == nil {
		cur.ids = make(map[string]struct{})
	}
	if _, ok := cur.ids[songID]; !ok {
		cur.ids[songID] = struct{}{}
		idx.size++
	}
	return nil
}

// Remove unindexes a song. After detaching the ID it prunes the walk
// path bottom-up, deleting every node left with no IDs and no
// children, and stops at the first node still in use. Nodes shared
// with other titles therefore survive.
func (idx *Index) Remove(title, songID string) error {
	norm := Normalize(title)
	if norm == "" {
		return ErrEmptyTitle
	}

	type step struct {
		parent *node
		ch     rune
	}
	path := make([]step, 0, len(norm))

	cur := idx.root
	for _, ch := range norm {
		child, ok := cur.children[ch]
		if !ok {
			return ErrNotFound
		}
		path = append(path, step{parent: cur, ch: ch})
		cur = child
	}

	if _, ok := cur.ids[songID]; !ok {
		return ErrNotFound
	}
	delete(cur.ids, songID)
	idx.size--

	// Bottom-up prune. Stops as soon as a node still carries IDs or
	// children.
	for i := len(path) - 1; i >= 0; i-- {
		child := path[i].parent.children[path[i].ch]
		if child.inUse() {
			break
		}
		delete(path[i].parent.children, path[i].ch)
	}
	return nil
}

// Query returns all songs whose normalized title starts with the
// given prefix, ordered by relevance: songs whose title equals the
// prefix first, then shorter titles, then lexicographic title, then
// lexicographic ID. The configured limit, if any, truncates the
// result. A prefix with no matching path yields an empty result, not
// an error.
func (idx *Index) Query(prefix string) ([]Match, error) {
	norm := Normalize(prefix)
	if norm == "" && idx.emptyPrefix == EmptyPrefixReject {
		return nil, ErrEmptyPrefix
	}

	cur := idx.root
	for _, ch := range norm {
		child, ok := cur.children[ch]
		if !ok {
			return nil, nil
		}
		cur = child
	}

	type hit struct {
		title string
		ids   []string
	}
	var hits []hit
	var walk func(n *node, title string)
	walk = func(n *node, title string) {
		if len(n.ids) > 0 {
			ids := make([]string, 0, len(n.ids))
			for id := range n.ids {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			hits = append(hits, hit{title: title, ids: ids})
		}
		for ch, child := range n.children {
			walk(child, title+string(ch))
		}
	}
	walk(cur, norm)

	sort.Slice(hits, func(i, j int) bool {
		ei, ej := hits[i].title == norm, hits[j].title == norm
		if ei != ej {
			return ei
		}
		if len(hits[i].title) != len(hits[j].title) {
			return len(hits[i].title) < len(hits[j].title)
		}
		return hits[i].title < hits[j].title
	})

	var matches []Match
	for _, h := range hits {
		for _, id := range h.ids {
			matches = append(matches, Match{SongID: id, Title: h.title})
			if idx.limit > 0 && len(matches) == idx.limit {
				return matches, nil
			}
		}
	}
	return matches, nil
}
