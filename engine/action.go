package engine

// Action is a link action attached to an outline node or link
// annotation. It is a closed tagged variant: GoToAction,
// GoToFileAction, URIAction, or UnknownAction. Consumers dispatch with
// a type switch; UnknownAction is the total-match fallback for kinds
// the pipeline does not handle.
type Action interface {
	isAction()
}

// GoToAction jumps to a destination in the same document. Dest holds an
// explicit destination when the action embeds one; DestName names a
// destination requiring a catalog lookup. Dest wins when both are set.
type GoToAction struct {
	Dest     *Dest
	DestName string
}

// GoToFileAction jumps to a destination in another file.
type GoToFileAction struct {
	Filename string
	Dest     *Dest
	DestName string
}

// URIAction opens a URI resource.
type URIAction struct {
	URI string
}

// UnknownAction is any other action kind, identified by its name
// (e.g. "Launch", "JavaScript", "Named").
type UnknownAction struct {
	Kind string
}

func (GoToAction) isAction()     {}
func (GoToFileAction) isAction() {}
func (URIAction) isAction()      {}
func (UnknownAction) isAction()  {}
