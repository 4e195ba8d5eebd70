package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type markerComponent struct {
	BaseComponent
	started int
	updated int
}

func (m *markerComponent) Start()                   { m.started++ }
func (m *markerComponent) Update(deltaTime float32) { m.updated++ }

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject("Prop_0")

	if obj.Name != "Prop_0" {
		t.Errorf("Expected name 'Prop_0', got '%s'", obj.Name)
	}
	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}
	if !obj.Active || !obj.Visible {
		t.Error("New GameObjects should be active and visible")
	}
	if obj.Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected unit scale, got %v", obj.Transform.Scale)
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	seen := map[uint64]bool{}
	for i := 0; i < 10; i++ {
		obj := NewGameObject("Obj")
		if seen[obj.UID] {
			t.Fatalf("Duplicate UID %d", obj.UID)
		}
		seen[obj.UID] = true
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Proxy")
	obj.Tags = []string{"proxy", "prop"}

	if !obj.HasTag("proxy") {
		t.Error("HasTag should return true for existing tag")
	}
	if obj.HasTag("projectile") {
		t.Error("HasTag should return false for non-existent tag")
	}
	if NewGameObject("Bare").HasTag("anything") {
		t.Error("HasTag should return false when Tags is empty")
	}
}

func TestGameObjectParentChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child1 := NewGameObject("Child1")
	child2 := NewGameObject("Child2")

	parent.AddChild(child1)
	parent.AddChild(child2)

	if child1.Parent != parent || child2.Parent != parent {
		t.Error("Child.Parent should be set")
	}
	if len(parent.Children) != 2 || parent.Children[0] != child1 {
		t.Errorf("Expected children in insertion order, got %d children", len(parent.Children))
	}
}

func TestGameObjectWalkVisitsDescendants(t *testing.T) {
	root := NewGameObject("Root")
	mid := NewGameObject("Mid")
	leaf := NewGameObject("Leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	var names []string
	root.Walk(func(g *GameObject) { names = append(names, g.Name) })

	want := []string{"Root", "Mid", "Leaf"}
	if len(names) != len(want) {
		t.Fatalf("Expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, names[i])
		}
	}
}

func TestGameObjectComponents(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &markerComponent{}
	obj.AddComponent(comp)

	if comp.GetGameObject() != obj {
		t.Error("Component game object should be set")
	}
	if GetComponent[*markerComponent](obj) != comp {
		t.Error("GetComponent failed to find component")
	}
	if !HasComponent[*markerComponent](obj) {
		t.Error("HasComponent should report the marker component")
	}
	if HasComponent[*BaseComponent](obj) {
		t.Error("HasComponent should not match an unrelated type")
	}
}

func TestGameObjectStartCalledOnce(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &markerComponent{}
	obj.AddComponent(comp)

	obj.Start()
	obj.Start()

	if comp.started != 1 {
		t.Errorf("Expected Start once, got %d", comp.started)
	}
}

func TestGameObjectInactiveSkipsUpdate(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &markerComponent{}
	obj.AddComponent(comp)

	obj.Update(0.016)
	obj.Active = false
	obj.Update(0.016)

	if comp.updated != 1 {
		t.Errorf("Expected 1 update, got %d", comp.updated)
	}
}

func TestWorldPositionFollowsParentRotation(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Position = rl.Vector3{X: 1, Y: 0, Z: 0}
	parent.Transform.Rotation = rl.Vector3{Y: 90}

	child := NewGameObject("Child")
	child.Transform.Position = rl.Vector3{X: 1}
	parent.AddChild(child)

	got := child.WorldPosition()
	// +X rotated 90 degrees about Y ends up on the Z axis.
	if math.Abs(float64(got.X-1)) > 1e-4 || math.Abs(math.Abs(float64(got.Z))-1) > 1e-4 {
		t.Errorf("Expected child at (1, 0, ±1), got %v", got)
	}
}
