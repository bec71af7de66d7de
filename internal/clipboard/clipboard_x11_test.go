//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"bytes"
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

func TestSelectionReply(t *testing.T) {
	atoms := selectionAtoms{clipboard: 10, targets: 11, png: 12, property: 13}
	data := []byte{0x89, 'P', 'N', 'G'}

	if _, _, _, ok := selectionReply(atoms, atoms.png, nil); ok {
		t.Fatal("nothing published must refuse the request")
	}

	typ, format, payload, ok := selectionReply(atoms, atoms.png, data)
	if !ok || typ != atoms.png || format != 8 || !bytes.Equal(payload, data) {
		t.Fatalf("png reply = %v %d %v %v", typ, format, payload, ok)
	}

	typ, format, payload, ok = selectionReply(atoms, atoms.targets, data)
	if !ok || typ != xproto.AtomAtom || format != 32 || len(payload) != 8 {
		t.Fatalf("targets reply = %v %d %v %v", typ, format, payload, ok)
	}
	if got := xgb.Get32(payload[4:]); got != uint32(atoms.png) {
		t.Fatalf("second target = %d, want image/png", got)
	}

	if _, _, _, ok := selectionReply(atoms, xproto.AtomString, data); ok {
		t.Fatal("text targets are not served")
	}
}
