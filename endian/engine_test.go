package endian

import (
	"encoding/binary"
	"testing"
)

func TestEngineRoundTrip(t *testing.T) {
	engines := []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()}

	for _, engine := range engines {
		b := engine.AppendUint64(nil, 0x0102030405060708)
		if got := engine.Uint64(b); got != 0x0102030405060708 {
			t.Errorf("uint64 round-trip failed: %#x", got)
		}

		b = engine.AppendUint32(nil, 0xdeadbeef)
		if got := engine.Uint32(b); got != 0xdeadbeef {
			t.Errorf("uint32 round-trip failed: %#x", got)
		}
	}
}

func TestEngineByteOrder(t *testing.T) {
	le := GetLittleEndianEngine().AppendUint32(nil, 0x01020304)
	if le[0] != 0x04 || le[3] != 0x01 {
		t.Errorf("little-endian layout wrong: % x", le)
	}

	be := GetBigEndianEngine().AppendUint32(nil, 0x01020304)
	if be[0] != 0x01 || be[3] != 0x04 {
		t.Errorf("big-endian layout wrong: % x", be)
	}
}

func TestCheckEndianness(t *testing.T) {
	native := CheckEndianness()
	if native != binary.LittleEndian && native != binary.BigEndian {
		t.Fatalf("unexpected byte order: %v", native)
	}

	if IsNativeLittleEndian() == IsNativeBigEndian() {
		t.Error("exactly one of the native checks must hold")
	}

	if !CompareNativeEndian(native.(EndianEngine)) {
		t.Error("CompareNativeEndian disagrees with CheckEndianness")
	}
}
