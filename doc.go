package quakedoc

// Package quakedoc implements a catalog exchange library for seismological
// event parameters (picks, events) in a SeisComP/QuakeML-style schema:
//
// - A tolerant Decoder from a tree-structured document into a typed model
//   (per-entity structural errors; siblings keep decoding)
// - A pure Validator producing ordered Issues (error/warning/info)
// - A presence-respecting Encoder back into the tree form (absent optionals
//   are omitted, repeated elements keep document order)
// - Wire-format drivers for XML, JSON and YAML under source/, all
//   normalizing into the same Element tree
//
// Design policy:
// - The root package holds only the shared vocabulary: Issues, structural
//   errors, the Element tree and wire-format entry points.
// - The typed entity model with Decode/Validate/Encode lives under catalog/,
//   drivers under source/, and the CLI under cmd/quakedoc.
//
// Typical usage:
//
//	el, err := quakedoc.XMLBytes(data)
//	res := catalog.Decode(el)
//	iss := catalog.Validate(res.Doc)
//	out, err := catalog.Encode(res.Doc)
//	xml, err := quakedoc.EncodeXML(out)
