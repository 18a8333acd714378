// Package blob implements the blobfig container format: a portable binary
// artifact bundling nested configuration, typed multi-dimensional arrays,
// and embedded file payloads.
//
// # Overview
//
// An artifact is a 24-byte prefix (magic, version, flags, root byte length)
// followed by one recursively length-prefixed root value. Eight value kinds
// exist: Bool, Int, Float, String, Array, File, Object, and List. All
// multi-byte integers are little-endian.
//
// The package splits the value model in two:
//
//   - Value: an owned tree built by the caller and consumed by the encoder.
//   - View: a borrowed tree produced by the decoder, whose string, array,
//     and file payload fields alias the input buffer with zero copies.
//
// # Decoding
//
//	root, err := blob.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rate, err := root.IntAt("audio/sample_rate")
//
// A View must not outlive the buffer it was decoded from, and the buffer
// must not be mutated while any derived View is alive. For callers who want
// that relationship held by one value, Open and FromBytes return a Blob
// that binds the buffer and its root View together.
//
// # Encoding
//
//	v := blob.Object(
//	    blob.Field("version", blob.Int(1)),
//	    blob.Field("model", blob.FileValue(blob.FileBytes("application/x-tflite", model))),
//	)
//	err := blob.Write(w, v)
//
// File payloads may come from in-memory bytes or from a single-pass
// io.Reader with an independently declared size; reader-backed payloads are
// streamed in fixed-size chunks, so encoding a file of any size needs only
// O(chunk) additional memory. The encoder is two-pass: a pure size pass
// computes the root byte length for the header, then the emit pass writes
// the bytes. On failure the sink may hold a partial artifact; WriteFile
// provides an atomic temp-file-and-rename commit for callers who need one.
//
// # Paths
//
// Object values are addressed by '/'-delimited paths ("config/threshold").
// The separator is part of the format contract: the encoder rejects keys
// containing '/'. Duplicate keys are representable; lookup returns the
// first match in encoded order.
//
// # Thread safety
//
// Decoding is a pure function of the input buffer; any number of decodes
// may run concurrently. Views are immutable and safe to share across
// goroutines as long as the buffer stays alive and read-only. Encoding
// owns its Value for the duration of the call; concurrent encodes to
// independent sinks need no coordination.
package blob
