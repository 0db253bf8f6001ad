// Package textanalysis turns a transcribed utterance into a normalized token
// sequence, a per-emotion intensity profile, a discrete sentiment label and a
// bar chart of the emotion profile.
//
// Every stage is a pure, total function: any string, including the empty
// string, produces a result. An Analyzer only holds compiled lexicon data and
// is safe for concurrent use.
package textanalysis
