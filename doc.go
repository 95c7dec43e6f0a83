// Package tilecore is the simulation core of a 2D tile platformer built on
// [Ebitengine].
//
// It provides a two-layer tile grid, a collision checker that combines tile
// solidity with dynamic blockers, a scene registry that dispatches updates
// and draws by capability, a player movement resolver with exact floor
// snapping, and a wall-clock game loop with cooperative stop and pause.
//
// # Quick start
//
// Load a map, register objects with a scene and hand both to a loop:
//
//	tiles := tilecore.NewTileSet()
//	tiles.Register(0, tilecore.Tile{Solid: true})
//	grid := tilecore.NewTileGrid(16, tiles)
//	if err := grid.LoadMap(assets, "background.txt", "platform.txt"); err != nil {
//		// the usable layer is kept; see LoadMap
//	}
//
//	scene := tilecore.NewScene()
//	player := tilecore.NewPlayer(tilecore.PlayerConfig{
//		Position:   tilecore.Vec(48, 400),
//		Controller: tilecore.NewKeyboardController(),
//		Collision:  tilecore.NewCollisionChecker(grid, scene),
//	})
//	scene.Add(grid)
//	scene.Add(player)
//
//	loop := tilecore.NewLoop(scene, settings.LoopConfig())
//	tilecore.Run(scene, loop, settings)
//
// [Run] opens a window through ebiten and steps the loop once per tick. For
// a headless or terminal front end call [Loop.Run] directly with a redraw
// hook; the term package does exactly that with tcell.
//
// # Collision
//
// [CollisionChecker.CanMove] samples the four corners of the mover's box,
// shrunk by [Insets], against the tile grid, then asks every [Collidable] in
// the scene, highest priority first. Any veto rejects the move. Each query
// carries a [CollisionContext] whose [Attribute] lets blockers such as a
// [Door] admit only movers carrying a matching element, key or team.
//
// Columns left and right of the map are walls. Rows above and below are
// open, so actors can jump over the top and fall out of the bottom.
//
// # Scene
//
// A [Scene] registers any object and files it under every capability it
// implements: [Updatable], [Drawable], [Collidable] and [Interactable].
// Objects are dispatched in insertion order. Removal is safe mid-pass;
// additions take effect on the next pass.
//
// # Loop
//
// [Loop] passes each frame's elapsed wall time, in nominal frames, to the
// scene. There is no fixed tick and no catch-up. Pause freezes updates but
// keeps redrawing, and the first frame after resuming sees a single frame's
// delta rather than the length of the pause.
//
// # Extras
//
// Sprite sheets, NPCs with dialogue, moving platforms (tweened via
// [gween]), a follow camera, particle effects, sound via beep, settings via
// viper, scripted input for automated play-throughs, and a [Donburi] event
// bridge in tilecore/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package tilecore
