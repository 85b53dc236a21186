//go:build unix

package wire

import "fmt"

// wl_shm opcodes (requests)
const (
	shmCreatePool Opcode = 0 // create_pool(id: new_id<wl_shm_pool>, fd: fd, size: int)
)

// wl_shm event opcodes
const (
	shmEventFormat Opcode = 0 // format(format: uint)
)

// wl_shm_pool opcodes (requests)
const (
	shmPoolCreateBuffer Opcode = 0 // create_buffer(id: new_id, offset: int, width: int, height: int, stride: int, format: uint)
	shmPoolDestroy      Opcode = 1 // destroy()
	shmPoolResize       Opcode = 2 // resize(size: int)
)

// wl_buffer opcodes (requests)
const (
	bufferDestroy Opcode = 0 // destroy()
)

// wl_buffer event opcodes
const (
	bufferEventRelease Opcode = 0 // release()
)

// ShmFormat represents a pixel format supported by wl_shm.
// These match the wl_shm_format enum from wayland.xml.
type ShmFormat uint32

// Common wl_shm_format values (subset).
const (
	// ShmFormatARGB8888 is 32-bit ARGB (8-8-8-8), little-endian.
	ShmFormatARGB8888 ShmFormat = 0

	// ShmFormatXRGB8888 is 32-bit RGB (8-8-8-8), little-endian, no alpha.
	ShmFormatXRGB8888 ShmFormat = 1

	// ShmFormatC8 is 8-bit color index.
	ShmFormatC8 ShmFormat = 0x20203843

	// ShmFormatRGB332 is 8-bit RGB (3-3-2).
	ShmFormatRGB332 ShmFormat = 0x38424752

	// ShmFormatBGR233 is 8-bit BGR (2-3-3).
	ShmFormatBGR233 ShmFormat = 0x38524742

	// ShmFormatXRGB4444 is 16-bit xRGB (4-4-4-4).
	ShmFormatXRGB4444 ShmFormat = 0x32315258

	// ShmFormatXBGR4444 is 16-bit xBGR (4-4-4-4).
	ShmFormatXBGR4444 ShmFormat = 0x32314258

	// ShmFormatRGBX4444 is 16-bit RGBx (4-4-4-4).
	ShmFormatRGBX4444 ShmFormat = 0x32315852

	// ShmFormatBGRX4444 is 16-bit BGRx (4-4-4-4).
	ShmFormatBGRX4444 ShmFormat = 0x32315842

	// ShmFormatARGB4444 is 16-bit ARGB (4-4-4-4).
	ShmFormatARGB4444 ShmFormat = 0x32315241

	// ShmFormatABGR4444 is 16-bit ABGR (4-4-4-4).
	ShmFormatABGR4444 ShmFormat = 0x32314241

	// ShmFormatRGBA4444 is 16-bit RGBA (4-4-4-4).
	ShmFormatRGBA4444 ShmFormat = 0x32314152

	// ShmFormatBGRA4444 is 16-bit BGRA (4-4-4-4).
	ShmFormatBGRA4444 ShmFormat = 0x32314142

	// ShmFormatXRGB1555 is 16-bit xRGB (1-5-5-5).
	ShmFormatXRGB1555 ShmFormat = 0x35315258

	// ShmFormatXBGR1555 is 16-bit xBGR (1-5-5-5).
	ShmFormatXBGR1555 ShmFormat = 0x35314258

	// ShmFormatRGBX5551 is 16-bit RGBx (5-5-5-1).
	ShmFormatRGBX5551 ShmFormat = 0x35315852

	// ShmFormatBGRX5551 is 16-bit BGRx (5-5-5-1).
	ShmFormatBGRX5551 ShmFormat = 0x35315842

	// ShmFormatARGB1555 is 16-bit ARGB (1-5-5-5).
	ShmFormatARGB1555 ShmFormat = 0x35315241

	// ShmFormatABGR1555 is 16-bit ABGR (1-5-5-5).
	ShmFormatABGR1555 ShmFormat = 0x35314241

	// ShmFormatRGBA5551 is 16-bit RGBA (5-5-5-1).
	ShmFormatRGBA5551 ShmFormat = 0x35314152

	// ShmFormatBGRA5551 is 16-bit BGRA (5-5-5-1).
	ShmFormatBGRA5551 ShmFormat = 0x35314142

	// ShmFormatRGB565 is 16-bit RGB (5-6-5).
	ShmFormatRGB565 ShmFormat = 0x36314752

	// ShmFormatBGR565 is 16-bit BGR (5-6-5).
	ShmFormatBGR565 ShmFormat = 0x36314742

	// ShmFormatRGB888 is 24-bit RGB (8-8-8).
	ShmFormatRGB888 ShmFormat = 0x34324752

	// ShmFormatBGR888 is 24-bit BGR (8-8-8).
	ShmFormatBGR888 ShmFormat = 0x34324742

	// ShmFormatXBGR8888 is 32-bit xBGR (8-8-8-8).
	ShmFormatXBGR8888 ShmFormat = 0x34324258

	// ShmFormatRGBX8888 is 32-bit RGBx (8-8-8-8).
	ShmFormatRGBX8888 ShmFormat = 0x34325852

	// ShmFormatBGRX8888 is 32-bit BGRx (8-8-8-8).
	ShmFormatBGRX8888 ShmFormat = 0x34325842

	// ShmFormatABGR8888 is 32-bit ABGR (8-8-8-8).
	ShmFormatABGR8888 ShmFormat = 0x34324241

	// ShmFormatRGBA8888 is 32-bit RGBA (8-8-8-8).
	ShmFormatRGBA8888 ShmFormat = 0x34324152

	// ShmFormatBGRA8888 is 32-bit BGRA (8-8-8-8).
	ShmFormatBGRA8888 ShmFormat = 0x34324142
)

// String returns a human-readable name for common formats.
func (f ShmFormat) String() string {
	switch f {
	case ShmFormatARGB8888:
		return "ARGB8888"
	case ShmFormatXRGB8888:
		return "XRGB8888"
	case ShmFormatXBGR8888:
		return "XBGR8888"
	case ShmFormatRGBX8888:
		return "RGBX8888"
	case ShmFormatBGRX8888:
		return "BGRX8888"
	case ShmFormatABGR8888:
		return "ABGR8888"
	case ShmFormatRGBA8888:
		return "RGBA8888"
	case ShmFormatBGRA8888:
		return "BGRA8888"
	case ShmFormatRGB888:
		return "RGB888"
	case ShmFormatBGR888:
		return "BGR888"
	case ShmFormatRGB565:
		return "RGB565"
	case ShmFormatBGR565:
		return "BGR565"
	default:
		return fmt.Sprintf("0x%08X", uint32(f))
	}
}
