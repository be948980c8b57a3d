// Package reel records and replays player input and schedules property
// tweens for [Ebitengine] games.
//
// # Controllers
//
// A [Controller] groups named buttons and axes bound to keys, gamepad buttons
// and sticks. Call [Controller.Update] once per tick:
//
//	ctrl := reel.NewController()
//	ctrl.AddButton("jump").AddKeys(ebiten.KeySpace)
//	ctrl.AddAxis("move").AddKeys(ebiten.KeyW, ebiten.KeyS, ebiten.KeyA, ebiten.KeyD)
//
//	func (g *Game) Update() error {
//		g.ctrl.Update()
//		if g.ctrl.Button("jump").Pressed() { ... }
//		return nil
//	}
//
// Bindings can also be loaded from YAML with [LoadControllerConfig] and
// [NewControllerFromConfig].
//
// # Recording and playback
//
// [Controller.Record] starts logging every button edge and axis change by
// tick. [Controller.RecordedString] returns the log as a compact
// base64 string and [Controller.Playback] replays one: while playing, the
// recorded states override the devices tick for tick, and playback stops on
// its own after the last recorded tick. Recordings can also be saved to and
// played from files with [Controller.SaveRecording] and
// [Controller.PlaybackFile], and [RecordingWatcher] reports new recording
// files as they are written.
//
// Synthetic input ([Controller.InjectPress], [Controller.InjectAxis], ...)
// and JSON input scripts ([LoadInputScript]) drive a controller without a
// device, which is handy for producing reference recordings in tests.
//
// # Tweens
//
// A [Tweener] advances tweens by a delta time. Each tween drives one or more
// named properties of a target, given as pointers:
//
//	tw, err := tweener.CreateTween(player, reel.Props{
//		reel.Field("x", &player.X, 320.0),
//		reel.Field("angle", &player.Angle, 10.0),
//	}, 0.5, 0, true)
//	tw.Ease(ease.OutCubic).Rotation(reel.Degrees).OnComplete(land)
//
// Interpolation is chosen by property type from a registry; numeric types,
// [Vec2] and [Color] are built in and [RegisterLerper] adds more. Tweens may
// be paused, cancelled or completed one at a time, by target, or all at once.
// Tweens created or cancelled from callbacks take effect after the current
// [Tweener.Update] pass.
//
// # Events
//
// [EventQueue] and [EventStack] run [Event] values one at a time: waits,
// function calls, tweens and tengo scripts ([NewScriptEvent]). [Flash] is a
// full-screen color overlay that fades out through a tweener.
//
// # Debug mode
//
// [SetDebugMode] prints controller mode changes, tweener flushes and
// lerper lookup failures to stderr.
//
// [Ebitengine]: https://ebitengine.org
package reel
