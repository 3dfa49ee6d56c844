package model

import "time"

// MemoryKind labels a free-text extract.
type MemoryKind string

const (
	KindMemory MemoryKind = "memory"
	KindWorry  MemoryKind = "worry"
	KindNote   MemoryKind = "note"
)

// MemoryEntry is one non-empty free-text answer lifted out of a response.
type MemoryEntry struct {
	Kind        MemoryKind `json:"type"`
	Text        string     `json:"text"`
	Respondent  string     `json:"user"`
	Date        string     `json:"date"`
	Timestamp   string     `json:"timestamp"`
	SubmittedAt time.Time  `json:"-"`
}

// Bundle is the request-scoped view derived from every response.
// All slices are sorted most recent first.
type Bundle struct {
	All          []Response            `json:"-"`
	ByRespondent map[string][]Response `json:"-"`
	Hangouts     []Response            `json:"-"`
	Minecraft    []Response            `json:"-"`
	Kisses       []Response            `json:"-"`
	Memories     []MemoryEntry         `json:"-"`
}

// Latest returns the most recent response of a respondent, if any.
func (b *Bundle) Latest(respondent string) (Response, bool) {
	if b == nil {
		return Response{}, false
	}
	rs := b.ByRespondent[respondent]
	if len(rs) == 0 {
		return Response{}, false
	}
	return rs[0], true
}
