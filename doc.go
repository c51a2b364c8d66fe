// Package bongo is a reactive layered avatar for streaming overlays, drawn
// with [Ebitengine].
//
// An avatar is an asset pack on disk: a face directory of expression images,
// and one directory per mode holding a background, a cat body, key cap
// overlays and hand poses. Keyboard state is captured from the operating
// system independently of window focus, and every frame the held keys pick
// which cap and hand images are drawn over the body.
//
// # Quick start
//
// The simplest way to show an avatar is [Run], which opens a window and game
// loop for you:
//
//	src := bongo.NewSource(bongo.SourceSettings{AvatarPath: "~/cats/avatar.json"})
//	defer src.Close()
//	if err := bongo.Run(src, bongo.RunConfig{Title: "Bongo", Scale: 0.5}); err != nil {
//		log.Fatal(err)
//	}
//
// Hosts that own their own loop call [Source.Tick] once per video tick and
// [Source.Render] with a [Graphics] implementation. [EbitenGraphics] draws
// into an *ebiten.Image; [SoftwareGraphics] composites on the CPU.
//
// # Asset packs
//
// [LoadFromConfig] reads an avatar.json and loads the pack beside it;
// [LoadFromDirectory] loads a bare pack with no settings. Mode manifests come
// in two shapes, a per-key "KeyMapping" table and the older positional
// lists, and the loader keeps them apart (see [ModeSchema]). Images that fail
// to decode are skipped and their layer is simply not drawn. [ValidatePack]
// reports every problem in a pack without decoding anything.
//
// # Input
//
// [InputCapture] reads evdev keyboards under /dev/input on Linux, polls the
// server keymap when built with the x11 tag, and samples GetAsyncKeyState on
// Windows. Key codes use the Linux input-event numbering everywhere; see
// [KeyCode] for the names manifests may use. [InjectedInput] and
// [ScriptRunner] feed scripted key events for tests and recordings.
//
// # Frame selection
//
// [SelectFrame] turns a mode, a face and the pressed-key set into a
// [DrawList] in fixed Z order: background, cat body, face, held key caps,
// left hand, right hand. An optional [Deformer] adds breathing and
// mouse-following tilt; it is off by default.
//
// Events such as key presses, face and mode changes are delivered to an
// [EventSink]; the bongo/ecs module adapts them to [Donburi] events.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package bongo
