// Package widgets holds small widgets built on the renderer core: a
// scrollbar, a bordered block, a text label and an area eraser.
package widgets
