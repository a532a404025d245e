// Package migrate moves the contents of one directory into another with
// saga-style compensation.
//
// Every direct child of the source is relocated concurrently. The call waits
// for all relocations to settle before deciding the outcome: if any failed,
// each successful relocation is reversed from the undo journal and the first
// failure (in directory listing order) is returned, leaving the source
// directory in place. Only a fully successful run removes the source.
package migrate
