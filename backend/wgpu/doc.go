// Package wgpu provides the GPU renderer backend.
//
// The renderer executes operations as full-surface render passes over the
// gogpu WebGPU HAL: the current image lives in a tracked texture, each pass
// samples it into a second tracked texture, and the pass output is promoted
// to become the next pass's input. Texture reallocation is driven by the
// operations themselves, which is what lets a dimension-swapping rotation
// keep its source texture alive until the shader has sampled it.
//
// Importing the package registers the backend under the name "wgpu":
//
//	import _ "github.com/gogpu/fx/backend/wgpu"
//
// By default the renderer bootstraps its own Vulkan device, preferring a
// discrete adapter. Applications that already own a gogpu device can share
// it instead:
//
//	r, err := wgpu.NewWithDevice(app.GPUContextProvider())
//
// The provider must expose the HAL pair through HalDevice()/HalQueue().
// Renderers created this way never destroy the shared device.
package wgpu
