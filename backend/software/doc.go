// Package software provides the CPU renderer backend.
//
// The software renderer keeps the image in a premultiplied RGBA8 pixel
// buffer and executes operations through an immediate-mode drawing context
// (the surface execution path). It has no system dependencies and is always
// available, registered at low priority so GPU backends win auto-selection
// when present.
//
// A blank import makes the backend selectable through the registry:
//
//	import _ "github.com/gogpu/fx/backend/software"
//
//	r, err := fx.NewRendererByName(software.Name)
package software
