// Package outline builds the document bookmark tree and resolves each
// entry's link target.
package outline

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/swerling/pdftoedn/edn"
	"github.com/swerling/pdftoedn/engine"
	"github.com/swerling/pdftoedn/errtrack"
	"github.com/swerling/pdftoedn/observability"
)

const module = "outline"

// Entry is one bookmark. Entries own their children; the tree is
// immutable once built.
type Entry struct {
	Title    string
	Target   *Target
	Children []*Entry
}

// EDN renders the entry with its subtree.
func (e *Entry) EDN() *edn.Hash {
	h := edn.NewHash(4)
	h.Push("title", e.Title)
	e.Target.EDN(h)
	if len(e.Children) > 0 {
		kids := edn.NewVector(len(e.Children))
		for _, c := range e.Children {
			kids.Push(c.EDN())
		}
		h.Push("entries", kids)
	}
	return h
}

// EntriesEDN renders a level of entries as a vector. An empty or nil
// slice renders as the empty vector, never as nil.
func EntriesEDN(entries []*Entry) *edn.Vector {
	v := edn.NewVector(len(entries))
	for _, e := range entries {
		v.Push(e.EDN())
	}
	return v
}

// Builder walks the engine's outline nodes and produces the owned
// entry tree.
type Builder struct {
	res      *Resolver
	tracker  *errtrack.Tracker
	log      observability.Logger
	maxDepth int
}

func NewBuilder(res *Resolver, tracker *errtrack.Tracker, log observability.Logger, limits engine.Limits) *Builder {
	if log == nil {
		log = observability.NopLogger{}
	}
	depth := limits.MaxOutlineDepth
	if depth <= 0 {
		depth = engine.DefaultLimits().MaxOutlineDepth
	}
	return &Builder{res: res, tracker: tracker, log: log, maxDepth: depth}
}

// Build walks the tree under root. A nil root yields no entries.
func (b *Builder) Build(root engine.OutlineNode) []*Entry {
	if root == nil {
		return nil
	}
	nodes := root.Open()
	defer root.Close()
	return b.level(nodes, 0)
}

func (b *Builder) level(nodes []engine.OutlineNode, depth int) []*Entry {
	entries := make([]*Entry, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		e := &Entry{Title: normalizeTitle(node.Title())}
		entries = append(entries, e)

		if action := node.Action(); action != nil {
			if unknown, ok := action.(engine.UnknownAction); ok {
				msg := fmt.Sprintf("link action kind: %s", unknown.Kind)
				b.tracker.Warn(errtrack.CodeUnhandledLinkAction, module, msg)
				b.log.Warn("unhandled link action kind",
					observability.String("kind", unknown.Kind),
					observability.String("title", e.Title))
			} else {
				e.Target = b.res.Resolve(action)
			}
		}

		b.descend(node, e, depth)
	}
	return entries
}

// descend expands a node's children inside the open/close scope the
// engine requires around child access.
func (b *Builder) descend(node engine.OutlineNode, e *Entry, depth int) {
	kids := node.Open()
	defer node.Close()
	if len(kids) == 0 {
		return
	}
	if depth+1 >= b.maxDepth {
		b.tracker.Warn(errtrack.CodeOutlineDepth, module,
			fmt.Sprintf("outline nesting exceeds %d levels, subtree skipped", b.maxDepth))
		b.log.Warn("outline depth cap hit", observability.Int("depth", depth+1))
		return
	}
	e.Children = b.level(kids, depth+1)
}

// normalizeTitle trims surrounding whitespace and NFC-normalizes the
// title. Interior whitespace is preserved.
func normalizeTitle(title string) string {
	return norm.NFC.String(strings.TrimSpace(title))
}
