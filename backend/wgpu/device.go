package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan HAL backend

	"github.com/gogpu/fx"
)

// gpuDevice bundles the HAL objects a renderer operates on. For a shared
// device the instance is nil and close leaves the device untouched.
type gpuDevice struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	adapterName string
	external    bool
}

// openDevice creates an owned HAL device: Vulkan instance, discrete adapter
// preferred over integrated, first adapter otherwise.
func openDevice() (*gpuDevice, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, errors.New("wgpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, errors.New("wgpu: no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}
	return &gpuDevice{
		instance:    instance,
		device:      openDev.Device,
		queue:       openDev.Queue,
		adapterName: selected.Info.Name,
	}, nil
}

// adoptDevice wraps an externally owned device. The provider must expose
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func adoptDevice(provider fx.DeviceHandle) (*gpuDevice, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, errors.New("wgpu: device provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, errors.New("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, errors.New("wgpu: provider HalQueue is not hal.Queue")
	}
	return &gpuDevice{device: device, queue: queue, external: true}, nil
}

// close releases owned HAL resources. Shared devices are only detached.
func (d *gpuDevice) close() {
	if d.external {
		d.device = nil
		d.queue = nil
		return
	}
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.queue = nil
}

// deviceHandle exposes a renderer's HAL pair as an fx.DeviceHandle so other
// gogpu libraries can share the device. The gpucontext accessors return nil;
// consumers that understand the HAL layer reach it through HalDevice and
// HalQueue, mirroring how the renderer itself adopts foreign devices.
type deviceHandle struct {
	dev *gpuDevice
}

func (h deviceHandle) Device() gpucontext.Device   { return nil }
func (h deviceHandle) Queue() gpucontext.Queue     { return nil }
func (h deviceHandle) Adapter() gpucontext.Adapter { return nil }

func (h deviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// HalDevice returns the underlying hal.Device.
func (h deviceHandle) HalDevice() any { return h.dev.device }

// HalQueue returns the underlying hal.Queue.
func (h deviceHandle) HalQueue() any { return h.dev.queue }

var _ fx.DeviceHandle = deviceHandle{}
