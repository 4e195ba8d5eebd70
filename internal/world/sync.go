package world

import "propfield/internal/engine"

// PropPair links a visible prop to the invisible box the dynamics moves.
type PropPair struct {
	Visual *engine.GameObject
	Proxy  *engine.GameObject
}

// Sync copies the proxy's pose onto the visual.
func (p PropPair) Sync() {
	p.Visual.Transform.Position = p.Proxy.Transform.Position
	p.Visual.Transform.Rotation = p.Proxy.Transform.Rotation
	p.Visual.Active = p.Proxy.Active
}

// SyncProps runs once per frame after the dynamics step.
func (w *World) SyncProps() {
	for _, pair := range w.Props {
		pair.Sync()
	}
}
