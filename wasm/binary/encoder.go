package binary

import "github.com/wabin/wabin/wasm"

// EncodeModule serializes a module back to the binary format: the 8 byte
// header followed by each held section in its stored order. All length
// prefixes are recomputed from the in-memory contents, so any module built
// or edited through the wasm package encodes with canonical minimal varints
// and accurate section sizes.
//
// An in-memory module the format cannot express, e.g. a function body
// without its terminal end instruction, fails with ErrEncodeInvariant.
// Modules produced by DecodeModule always encode, and to the exact input
// bytes.
func EncodeModule(m *wasm.Module) ([]byte, error) {
	ret := append(append([]byte{}, Magic...), version...)
	for _, s := range m.Sections {
		buf, err := encodeSection(s)
		if err != nil {
			return nil, err
		}
		ret = append(ret, buf...)
	}
	return ret, nil
}
