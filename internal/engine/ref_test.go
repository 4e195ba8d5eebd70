package engine

import "testing"

func TestRefResolves(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Sphere_1")
	scene.AddGameObject(obj)

	ref := RefTo(obj)
	if got := ref.Get(scene); got != obj {
		t.Errorf("Expected %s, got %v", obj.Name, got)
	}
}

func TestRefAfterRemoval(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Sphere_1")
	scene.AddGameObject(obj)
	ref := RefTo(obj)

	scene.RemoveGameObject(obj)

	if ref.Get(scene) != nil {
		t.Error("Expected nil after the object left the scene")
	}
}

func TestRefEmpty(t *testing.T) {
	scene := NewScene("Test")

	if RefTo(nil) != (Ref{}) {
		t.Error("RefTo(nil) should be empty")
	}
	if (Ref{}).Get(scene) != nil {
		t.Error("Empty ref should resolve to nil")
	}
	if (Ref{UID: 123}).Get(nil) != nil {
		t.Error("Nil scene should resolve to nil")
	}
}
