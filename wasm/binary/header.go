package binary

// Magic is the 4 byte preamble (literally "\0asm") of the binary format.
var Magic = []byte{0x00, 0x61, 0x73, 0x6d}

// version is format version 1, stored in little-endian.
var version = []byte{0x01, 0x00, 0x00, 0x00}
