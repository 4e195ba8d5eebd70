package engine

// Ref names a GameObject by UID. Holding a Ref instead of a pointer lets the
// scene drop the object; Get then returns nil.
type Ref struct {
	UID uint64 // 0 = none
}

// RefTo returns a Ref to g, or the empty Ref for nil.
func RefTo(g *GameObject) Ref {
	if g == nil {
		return Ref{}
	}
	return Ref{UID: g.UID}
}

// Get resolves the Ref in scene. Returns nil if the Ref is empty or the object left the scene.
func (r Ref) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}
