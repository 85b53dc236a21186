//go:build unix

package wire

// Interface name strings, as advertised by wl_registry.global and used in
// wl_registry.bind and xdg_wm_base-style "new_id with interface" arguments.
const (
	IfaceWlDisplay    = "wl_display"
	IfaceWlRegistry   = "wl_registry"
	IfaceWlCallback   = "wl_callback"
	IfaceWlCompositor = "wl_compositor"
	IfaceWlSurface    = "wl_surface"
	IfaceWlRegion     = "wl_region"
	IfaceWlShm        = "wl_shm"
	IfaceWlShmPool    = "wl_shm_pool"
	IfaceWlBuffer     = "wl_buffer"
	IfaceWlOutput     = "wl_output"

	IfaceWlSubcompositor = "wl_subcompositor"
	IfaceWlSubsurface    = "wl_subsurface"

	IfaceWlSeat     = "wl_seat"
	IfaceWlPointer  = "wl_pointer"
	IfaceWlKeyboard = "wl_keyboard"
	IfaceWlTouch    = "wl_touch"

	IfaceWlDataDeviceManager = "wl_data_device_manager"
	IfaceWlDataDevice        = "wl_data_device"
	IfaceWlDataSource        = "wl_data_source"
	IfaceWlDataOffer         = "wl_data_offer"

	IfaceXdgWmBase      = "xdg_wm_base"
	IfaceXdgPositioner  = "xdg_positioner"
	IfaceXdgSurface     = "xdg_surface"
	IfaceXdgToplevel    = "xdg_toplevel"
	IfaceXdgPopup       = "xdg_popup"

	IfaceZwlrLayerShellV1   = "zwlr_layer_shell_v1"
	IfaceZwlrLayerSurfaceV1 = "zwlr_layer_surface_v1"

	IfaceZwpPrimarySelectionDeviceManagerV1 = "zwp_primary_selection_device_manager_v1"
	IfaceZwpPrimarySelectionDeviceV1        = "zwp_primary_selection_device_v1"
	IfaceZwpPrimarySelectionSourceV1        = "zwp_primary_selection_source_v1"
	IfaceZwpPrimarySelectionOfferV1         = "zwp_primary_selection_offer_v1"

	IfaceZwpRelativePointerManagerV1 = "zwp_relative_pointer_manager_v1"
	IfaceZwpRelativePointerV1        = "zwp_relative_pointer_v1"

	IfaceWpPresentation         = "wp_presentation"
	IfaceWpPresentationFeedback = "wp_presentation_feedback"

	IfaceWpCommitTimingManagerV1 = "wp_commit_timing_manager_v1"
	IfaceWpCommitTimingV1        = "wp_commit_timing_v1"

	IfaceXdgToplevelIconManagerV1 = "xdg_toplevel_icon_manager_v1"
	IfaceXdgToplevelIconV1        = "xdg_toplevel_icon_v1"

	IfaceXwaylandShellV1   = "xwayland_shell_v1"
	IfaceXwaylandSurfaceV1 = "xwayland_surface_v1"
)

// wl_display opcodes.
const (
	DisplaySync        Opcode = 0 // request: sync(callback: new_id<wl_callback>)
	DisplayGetRegistry Opcode = 1 // request: get_registry(registry: new_id<wl_registry>)
)
const (
	DisplayEventError        Opcode = 0 // event: error(object_id, code, message)
	DisplayEventDeleteID     Opcode = 1 // event: delete_id(id)
)

// wl_registry opcodes.
const (
	RegistryBind Opcode = 0 // request: bind(name, id: new_id)
)
const (
	RegistryEventGlobal       Opcode = 0 // event: global(name, interface, version)
	RegistryEventGlobalRemove Opcode = 1 // event: global_remove(name)
)

// wl_callback opcodes.
const (
	CallbackEventDone Opcode = 0 // event: done(callback_data)
)

// wl_compositor opcodes.
const (
	CompositorCreateSurface Opcode = 0 // request: create_surface(id: new_id<wl_surface>)
	CompositorCreateRegion  Opcode = 1 // request: create_region(id: new_id<wl_region>)
)

// wl_surface opcodes (requests).
const (
	SurfaceDestroy            Opcode = 0
	SurfaceAttach             Opcode = 1
	SurfaceDamage             Opcode = 2
	SurfaceFrame              Opcode = 3
	SurfaceSetOpaqueRegion    Opcode = 4
	SurfaceSetInputRegion     Opcode = 5
	SurfaceCommit             Opcode = 6
	SurfaceSetBufferTransform Opcode = 7
	SurfaceSetBufferScale     Opcode = 8
	SurfaceDamageBuffer       Opcode = 9
	SurfaceOffset             Opcode = 10
)

// wl_surface opcodes (events).
const (
	SurfaceEventEnter                  Opcode = 0
	SurfaceEventLeave                  Opcode = 1
	SurfaceEventPreferredBufferScale   Opcode = 2
	SurfaceEventPreferredBufferTransform Opcode = 3
)

// wl_region opcodes.
const (
	RegionDestroy   Opcode = 0
	RegionAdd       Opcode = 1
	RegionSubtract  Opcode = 2
)

// wl_subcompositor opcodes.
const (
	SubcompositorDestroy        Opcode = 0
	SubcompositorGetSubsurface  Opcode = 1 // get_subsurface(id: new_id, surface, parent)
)

// wl_subsurface opcodes.
const (
	SubsurfaceDestroy      Opcode = 0
	SubsurfaceSetPosition  Opcode = 1
	SubsurfacePlaceAbove   Opcode = 2
	SubsurfacePlaceBelow   Opcode = 3
	SubsurfaceSetSync      Opcode = 4
	SubsurfaceSetDesync    Opcode = 5
)

// wl_output opcodes (events only; outputs are server-driven globals).
const (
	OutputEventGeometry Opcode = 0
	OutputEventMode     Opcode = 1
	OutputEventDone     Opcode = 2
	OutputEventScale    Opcode = 3
	OutputEventName     Opcode = 4
	OutputEventDescription Opcode = 5
)

// wl_seat opcodes.
const (
	SeatGetPointer  Opcode = 0
	SeatGetKeyboard Opcode = 1
	SeatGetTouch    Opcode = 2
	SeatRelease     Opcode = 3
)
const (
	SeatEventCapabilities Opcode = 0
	SeatEventName         Opcode = 1
)

// SeatCapability bitmask for wl_seat.capabilities.
type SeatCapability uint32

const (
	SeatCapabilityPointer  SeatCapability = 1 << 0
	SeatCapabilityKeyboard SeatCapability = 1 << 1
	SeatCapabilityTouch    SeatCapability = 1 << 2
)

// wl_pointer opcodes.
const (
	PointerSetCursor Opcode = 0
	PointerRelease   Opcode = 1
)
const (
	PointerEventEnter                  Opcode = 0
	PointerEventLeave                  Opcode = 1
	PointerEventMotion                 Opcode = 2
	PointerEventButton                 Opcode = 3
	PointerEventAxis                   Opcode = 4
	PointerEventFrame                  Opcode = 5
	PointerEventAxisSource             Opcode = 6
	PointerEventAxisStop               Opcode = 7
	PointerEventAxisDiscrete           Opcode = 8
	PointerEventAxisValue120           Opcode = 9
	PointerEventAxisRelativeDirection  Opcode = 10
)

// wl_keyboard opcodes.
const (
	KeyboardRelease Opcode = 0
)
const (
	KeyboardEventKeymap     Opcode = 0
	KeyboardEventEnter      Opcode = 1
	KeyboardEventLeave      Opcode = 2
	KeyboardEventKey        Opcode = 3
	KeyboardEventModifiers  Opcode = 4
	KeyboardEventRepeatInfo Opcode = 5
)

// wl_touch opcodes.
const (
	TouchRelease Opcode = 0
)
const (
	TouchEventDown        Opcode = 0
	TouchEventUp          Opcode = 1
	TouchEventMotion      Opcode = 2
	TouchEventFrame       Opcode = 3
	TouchEventCancel      Opcode = 4
	TouchEventShape       Opcode = 5
	TouchEventOrientation Opcode = 6
)

// wl_data_device_manager opcodes.
const (
	DataDeviceManagerCreateDataSource Opcode = 0
	DataDeviceManagerGetDataDevice    Opcode = 1
)

// wl_data_source opcodes.
const (
	DataSourceOffer      Opcode = 0
	DataSourceDestroy    Opcode = 1
	DataSourceSetActions Opcode = 2
)
const (
	DataSourceEventTarget             Opcode = 0
	DataSourceEventSend               Opcode = 1
	DataSourceEventCancelled          Opcode = 2
	DataSourceEventDnDDropPerformed   Opcode = 3
	DataSourceEventDnDFinished        Opcode = 4
	DataSourceEventAction             Opcode = 5
)

// wl_data_offer opcodes.
const (
	DataOfferAccept       Opcode = 0
	DataOfferReceive      Opcode = 1
	DataOfferDestroy      Opcode = 2
	DataOfferFinish       Opcode = 3
	DataOfferSetActions   Opcode = 4
)
const (
	DataOfferEventOffer       Opcode = 0
	DataOfferEventSourceActions Opcode = 1
	DataOfferEventAction      Opcode = 2
)

// wl_data_device opcodes.
const (
	DataDeviceStartDrag Opcode = 0
	DataDeviceSetSelection Opcode = 1
	DataDeviceRelease   Opcode = 2
)
const (
	DataDeviceEventDataOffer Opcode = 0
	DataDeviceEventEnter     Opcode = 1
	DataDeviceEventLeave     Opcode = 2
	DataDeviceEventMotion    Opcode = 3
	DataDeviceEventDrop      Opcode = 4
	DataDeviceEventSelection Opcode = 5
)

// DataDeviceManager.dnd_action bitmask, shared with zwp_primary_selection.
type DndAction uint32

const (
	DndActionNone DndAction = 0
	DndActionCopy DndAction = 1 << 0
	DndActionMove DndAction = 1 << 1
	DndActionAsk  DndAction = 1 << 2
)

// xdg_wm_base opcodes.
const (
	XdgWmBaseDestroy          Opcode = 0
	XdgWmBaseCreatePositioner Opcode = 1
	XdgWmBaseGetXdgSurface    Opcode = 2
	XdgWmBasePong             Opcode = 3
)
const (
	XdgWmBaseEventPing Opcode = 0
)

// xdg_positioner opcodes.
const (
	PositionerDestroy               Opcode = 0
	PositionerSetSize               Opcode = 1
	PositionerSetAnchorRect         Opcode = 2
	PositionerSetAnchor             Opcode = 3
	PositionerSetGravity            Opcode = 4
	PositionerSetConstraintAdjustment Opcode = 5
	PositionerSetOffset             Opcode = 6
	PositionerSetReactive           Opcode = 7
	PositionerSetParentSize         Opcode = 8
	PositionerSetParentConfigure    Opcode = 9
)

// xdg_surface opcodes.
const (
	XdgSurfaceDestroy       Opcode = 0
	XdgSurfaceGetToplevel   Opcode = 1
	XdgSurfaceGetPopup      Opcode = 2
	XdgSurfaceSetWindowGeometry Opcode = 3
	XdgSurfaceAckConfigure  Opcode = 4
)
const (
	XdgSurfaceEventConfigure Opcode = 0
)

// xdg_toplevel opcodes.
const (
	ToplevelDestroy         Opcode = 0
	ToplevelSetParent       Opcode = 1
	ToplevelSetTitle        Opcode = 2
	ToplevelSetAppID        Opcode = 3
	ToplevelShowWindowMenu  Opcode = 4
	ToplevelMove            Opcode = 5
	ToplevelResize          Opcode = 6
	ToplevelSetMaxSize      Opcode = 7
	ToplevelSetMinSize      Opcode = 8
	ToplevelSetMaximized    Opcode = 9
	ToplevelUnsetMaximized  Opcode = 10
	ToplevelSetFullscreen   Opcode = 11
	ToplevelUnsetFullscreen Opcode = 12
	ToplevelSetMinimized    Opcode = 13
)
const (
	ToplevelEventConfigure      Opcode = 0
	ToplevelEventClose          Opcode = 1
	ToplevelEventConfigureBounds Opcode = 2
	ToplevelEventWMCapabilities Opcode = 3
)

// xdg_popup opcodes.
const (
	PopupDestroy Opcode = 0
	PopupGrab    Opcode = 1
	PopupReposition Opcode = 2
)
const (
	PopupEventConfigure    Opcode = 0
	PopupEventPopupDone    Opcode = 1
	PopupEventRepositioned Opcode = 2
)

// zwlr_layer_shell_v1 opcodes.
const (
	LayerShellGetLayerSurface Opcode = 0
	LayerShellDestroy         Opcode = 1
)

// LayerShellLayer mirrors zwlr_layer_shell_v1.layer.
type LayerShellLayer uint32

const (
	LayerShellLayerBackground LayerShellLayer = 0
	LayerShellLayerBottom     LayerShellLayer = 1
	LayerShellLayerTop        LayerShellLayer = 2
	LayerShellLayerOverlay    LayerShellLayer = 3
)

// zwlr_layer_surface_v1 opcodes.
const (
	LayerSurfaceSetSize              Opcode = 0
	LayerSurfaceSetAnchor            Opcode = 1
	LayerSurfaceSetExclusiveZone     Opcode = 2
	LayerSurfaceSetMargin            Opcode = 3
	LayerSurfaceSetKeyboardInteractivity Opcode = 4
	LayerSurfaceGetPopup             Opcode = 5
	LayerSurfaceAckConfigure         Opcode = 6
	LayerSurfaceDestroy              Opcode = 7
	LayerSurfaceSetLayer             Opcode = 8
	LayerSurfaceSetExclusiveEdge     Opcode = 9
)
const (
	LayerSurfaceEventConfigure Opcode = 0
	LayerSurfaceEventClosed    Opcode = 1
)

// LayerSurfaceAnchor bitmask.
type LayerSurfaceAnchor uint32

const (
	LayerSurfaceAnchorTop    LayerSurfaceAnchor = 1 << 0
	LayerSurfaceAnchorBottom LayerSurfaceAnchor = 1 << 1
	LayerSurfaceAnchorLeft   LayerSurfaceAnchor = 1 << 2
	LayerSurfaceAnchorRight  LayerSurfaceAnchor = 1 << 3
)

// zwp_primary_selection_device_manager_v1 opcodes.
const (
	PrimarySelectionDeviceManagerCreateSource Opcode = 0
	PrimarySelectionDeviceManagerGetDevice    Opcode = 1
	PrimarySelectionDeviceManagerDestroy      Opcode = 2
)

// zwp_primary_selection_device_v1 opcodes.
const (
	PrimarySelectionDeviceSetSelection Opcode = 0
	PrimarySelectionDeviceDestroy      Opcode = 1
)
const (
	PrimarySelectionDeviceEventDataOffer Opcode = 0
	PrimarySelectionDeviceEventSelection Opcode = 1
)

// zwp_primary_selection_source_v1 opcodes.
const (
	PrimarySelectionSourceOffer   Opcode = 0
	PrimarySelectionSourceDestroy Opcode = 1
)
const (
	PrimarySelectionSourceEventSend      Opcode = 0
	PrimarySelectionSourceEventCancelled Opcode = 1
)

// zwp_primary_selection_offer_v1 opcodes.
const (
	PrimarySelectionOfferReceive Opcode = 0
	PrimarySelectionOfferDestroy Opcode = 1
)
const (
	PrimarySelectionOfferEventOffer Opcode = 0
)

// zwp_relative_pointer_manager_v1 opcodes.
const (
	RelativePointerManagerDestroy            Opcode = 0
	RelativePointerManagerGetRelativePointer Opcode = 1
)

// zwp_relative_pointer_v1 opcodes.
const (
	RelativePointerDestroy Opcode = 0
)
const (
	RelativePointerEventRelativeMotion Opcode = 0
)

// wp_presentation opcodes.
const (
	PresentationDestroy Opcode = 0
	PresentationFeedback Opcode = 1 // feedback(surface, callback: new_id<wp_presentation_feedback>)
)
const (
	PresentationEventClockID Opcode = 0
)

// wp_presentation_feedback opcodes (events only).
const (
	PresentationFeedbackEventSyncOutput Opcode = 0
	PresentationFeedbackEventPresented  Opcode = 1
	PresentationFeedbackEventDiscarded  Opcode = 2
)

// PresentationFeedbackKind bitmask for the presented event's flags argument.
type PresentationFeedbackKind uint32

const (
	PresentationFeedbackKindVSync        PresentationFeedbackKind = 1 << 0
	PresentationFeedbackKindHWClock      PresentationFeedbackKind = 1 << 1
	PresentationFeedbackKindHWCompletion PresentationFeedbackKind = 1 << 2
	PresentationFeedbackKindZeroCopy     PresentationFeedbackKind = 1 << 3
)

// wp_commit_timing_manager_v1 opcodes.
const (
	CommitTimingManagerGetTimer Opcode = 0
	CommitTimingManagerDestroy  Opcode = 1
)

// wp_commit_timing_v1 opcodes.
const (
	CommitTimingSetTimestamp Opcode = 0
	CommitTimingDestroy      Opcode = 1
)

// xdg_toplevel_icon_manager_v1 opcodes.
const (
	ToplevelIconManagerCreateIcon  Opcode = 0
	ToplevelIconManagerSetIcon     Opcode = 1
	ToplevelIconManagerDestroy     Opcode = 2
)
const (
	ToplevelIconManagerEventIconSize  Opcode = 0
	ToplevelIconManagerEventDone      Opcode = 1
)

// xdg_toplevel_icon_v1 opcodes.
const (
	ToplevelIconSetName   Opcode = 0
	ToplevelIconAddBuffer Opcode = 1
	ToplevelIconDestroy   Opcode = 2
)

// xwayland_shell_v1 opcodes.
const (
	XwaylandShellDestroy         Opcode = 0
	XwaylandShellGetXwaylandSurface Opcode = 1
)

// xwayland_surface_v1 opcodes.
const (
	XwaylandSurfaceSetSerial Opcode = 0
	XwaylandSurfaceDestroy   Opcode = 1
)
