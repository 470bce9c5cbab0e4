// Package tetris implements the falling-block game state: the shape catalog,
// the bag sequence generator, the playfield grid with its collision and
// line-clear rules, and the Game controller that applies gravity ticks and
// player commands.
//
// Rendering and input capture live elsewhere. A renderer reads Grid, Active
// and Colors after each update; an input source calls MoveHorizontal, Rotate
// and SoftDrop between ticks. None of the types here are safe for concurrent
// use.
package tetris
