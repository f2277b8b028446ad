// Package archive stores the traces of a monitoring session in a compact binary
// snapshot and reads them back.
//
// The snapshot is an in-memory byte slice; where it goes (file, socket, test
// fixture) is up to the caller. Its layout is described in package section:
// a fixed header, one index entry per trace, then the names, timestamp and value
// payloads, each optionally compressed.
//
// Writing:
//
//	enc, err := archive.NewEncoder(
//		archive.WithTimestampEncoding(format.TypeDelta),
//		archive.WithValueCompression(format.CompressionZstd),
//		archive.WithUnitTime(10),
//	)
//	if err != nil {
//		return err
//	}
//	for _, tr := range traces {
//		if err := enc.Add(tr); err != nil {
//			return err
//		}
//	}
//	data, err := enc.Finish()
//
// Reading:
//
//	dec, err := archive.NewDecoder(data)
//	if err != nil {
//		return err
//	}
//	clk, err := dec.Trace("clk")
//
// Trace IDs in the index are xxHash64 digests of the names. When two names
// collide the header says so and lookups fall back to the names payload.
package archive
