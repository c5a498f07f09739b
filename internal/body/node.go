package body

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// NodeKind tags a scene node so disposal is a switch on the tag instead of
// runtime type inspection.
type NodeKind int

const (
	// NodeMesh owns a GPU mesh, a material, and optionally a texture.
	NodeMesh NodeKind = iota
	// NodeLines owns only CPU-side line/point buffers (raylib draws these in
	// immediate mode, so there is nothing to release on the GPU).
	NodeLines
	// NodeGroup owns child nodes and nothing else.
	NodeGroup
)

// Node is one renderable piece of a body's (or the shared scenery's) subtree.
// Shaders referenced by Material are shared and owned by the shading library;
// Dispose never touches them.
type Node struct {
	Kind     NodeKind
	Mesh     rl.Mesh
	Material rl.Material
	Texture  rl.Texture2D // zero ID = no owned texture
	Points   [][3]float32 // NodeLines only
	Kids     []*Node      // NodeGroup only
	disposed bool
}

// Dispose releases everything the node owns, exactly once, children first.
func (n *Node) Dispose() {
	if n == nil || n.disposed {
		return
	}
	n.disposed = true
	switch n.Kind {
	case NodeGroup:
		for _, k := range n.Kids {
			k.Dispose()
		}
		n.Kids = nil
	case NodeLines:
		n.Points = nil
	case NodeMesh:
		if n.Texture.ID != 0 {
			rl.UnloadTexture(n.Texture)
			n.Texture.ID = 0
		}
		rl.UnloadMesh(&n.Mesh)
	}
}
