// Package encoder holds the state of one compilation: the data dictionary of
// raw input fields and the append-only registry of derived fields.
//
// One Encoder is created per compilation and passed explicitly to every
// transformer and model encoder of that compilation. It is not safe for
// concurrent use; a compilation runs on a single goroutine.
package encoder
