package history

// GroupScope collects every edit pushed while it is open into one undo entry
// named after the scope. End closes it; later calls do nothing, so a scope can
// be closed early and still deferred.
//
//	scope := h.GroupScope("fixture keys")
//	defer scope.End()
type GroupScope struct {
	h    *History
	open bool
}

// GroupScope opens a group. A scope opened while another is open joins it,
// and its End leaves the outer group running.
func (h *History) GroupScope(name string) *GroupScope {
	return &GroupScope{h: h, open: h.beginGroup(name)}
}

// End closes the group and pushes its entry, if it recorded any edit.
func (g *GroupScope) End() {
	if !g.open {
		return
	}
	g.open = false
	g.h.endGroup()
}
