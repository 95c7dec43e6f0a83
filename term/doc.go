// Package term runs tilecore scenes in a terminal using [tcell].
//
// [Renderer] draws a TileGrid and the actors on top of it, one terminal cell
// per tile. [KeyController] turns key events into player intents. Terminals
// report presses but not releases, so held keys are emulated by repeating a
// press for a few frames.
//
// [tcell]: https://github.com/gdamore/tcell
package term
