// Package circularity rewrites shared and cyclic structure into label
// definitions and references before printing, and back after reading.
//
// Encode scans the value graph by identity and numbers every compound node
// that is reached more than once, in order of first revisit. It then copies
// the graph, wrapping the first copy of a numbered node in a LabelDef and
// replacing later visits with a LabelRef.
//
// Decode copies a parsed value, recording the object built for each LabelDef,
// then replaces every remaining LabelRef in place.
//
// Labels are scoped to one Encode or Decode call.
package circularity
