// Package protocol defines the binary wire format between a Loom
// session server and its thin browser client.
//
// The server streams document mutations (dom.Op values) to the client
// as op frames; the client forwards user interaction back as event
// frames. All traffic is framed:
//
//	┌────────────┬────────────────────────────┐
//	│ Frame Type │ Payload Length             │
//	│ (1 byte)   │ (2 bytes, big-endian)      │
//	└────────────┴────────────────────────────┘
//	│ Payload (variable length)               │
//	└─────────────────────────────────────────┘
//
// Integers inside payloads are unsigned varints (7 data bits per byte,
// MSB continuation); strings are varint-length-prefixed UTF-8.
package protocol
