// Package textarea implements a multi-line text editor element: a
// grapheme-addressed document model, word wrap, selection, snapshot
// undo, incremental syntax highlighting, search, and a hybrid
// markdown render mode.
//
// All positions in the public API are grapheme cluster indices, never
// byte offsets. A grapheme is the user-perceived character unit; it
// may span several UTF-8 code points (combining marks, emoji
// sequences).
package textarea
