// Package protocol implements the binary op-log format used to mirror a
// patch pass onto a remote host tree.
//
// A recording backend turns every mutating host call into an Op. A batch
// of ops is encoded with EncodeOps and sent in one or more frames, each
// with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameOps (0x01): op batch, server to client
//   - FrameEvent (0x02): host event, client to server
//   - FrameError (0x03): error message
//
// Batches larger than MaxPayloadSize are split; every frame but the last
// carries FlagMore and an Assembler joins them again.
//
// # Encoding
//
//   - Varint: integers and node ids, 7 bits per byte (protobuf style)
//   - Length-prefixed: strings prefixed with a varint length
//   - Big-endian: fixed-width integers
//
// Length prefixes and counts are validated before allocation. Malformed
// batches and events decode to a P001 error.
package protocol
