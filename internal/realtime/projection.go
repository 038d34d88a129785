package realtime

// EventType mirrors the three document change kinds a live query reports.
type EventType string

const (
	Added    EventType = "added"
	Modified EventType = "modified"
	Removed  EventType = "removed"
)

// Event is one document change on a stream. Document carries the hydrated
// message so subscribers never have to re-fetch relations.
type Event struct {
	Type     EventType   `json:"type"`
	ID       string      `json:"id"`
	Document interface{} `json:"document,omitempty"`
}

// LiveWindow caps how many messages a live feed keeps.
const LiveWindow = 50

type entry struct {
	id  string
	doc interface{}
}

// Projection is the subscriber-held cache of a live feed: a newest-first
// window patched incrementally as events arrive. Apply is idempotent, so
// re-adding an id already present changes nothing.
type Projection struct {
	window  int
	entries []entry
}

func NewProjection(window int) *Projection {
	if window <= 0 {
		window = LiveWindow
	}
	return &Projection{window: window}
}

// Apply patches the cache and reports whether anything changed.
func (p *Projection) Apply(e Event) bool {
	switch e.Type {
	case Added:
		for _, it := range p.entries {
			if it.id == e.ID {
				return false
			}
		}
		p.entries = append([]entry{{id: e.ID, doc: e.Document}}, p.entries...)
		if len(p.entries) > p.window {
			p.entries = p.entries[:p.window]
		}
		return true

	case Modified:
		for i := range p.entries {
			if p.entries[i].id == e.ID {
				p.entries[i].doc = e.Document
				return true
			}
		}
		return false

	case Removed:
		kept := p.entries[:0]
		removed := false
		for _, it := range p.entries {
			if it.id == e.ID {
				removed = true
				continue
			}
			kept = append(kept, it)
		}
		p.entries = kept
		return removed
	}

	return false
}

func (p *Projection) Len() int {
	return len(p.entries)
}

// Items returns the cached documents, newest first.
func (p *Projection) Items() []interface{} {
	out := make([]interface{}, len(p.entries))
	for i, it := range p.entries {
		out[i] = it.doc
	}
	return out
}

// IDs returns the cached document ids, newest first.
func (p *Projection) IDs() []string {
	out := make([]string, len(p.entries))
	for i, it := range p.entries {
		out[i] = it.id
	}
	return out
}
