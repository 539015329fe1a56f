package common

import (
	"bytes"
	"testing"
)

func TestB58RoundTrip(t *testing.T) {
	inputs := [][]byte{
		{0x01},
		{0x00, 0x01, 0x02},
		{0x00, 0x00, 0xff},
		[]byte("hello world"),
	}
	for _, in := range inputs {
		enc := B58Encode(in)
		dec := B58Decode(enc)
		if !bytes.Equal(dec, in) {
			t.Fatalf("round trip %x got: %x (enc %s)", in, dec, enc)
		}
	}
}

func TestB58Decode_BadSymbol(t *testing.T) {
	// 0, O, I and l are not in the alphabet
	if got := B58Decode([]byte("0OIl")); got != nil {
		t.Fatalf("got: %x want: nil", got)
	}
}

func TestStringEncodeMap(t *testing.T) {
	in := map[string]string{
		"symbol": "CAP",
		"name":   "Capped Token",
		"owner":  "abc",
	}
	enc := SortAndEncodeMap(in)
	out := StringDecodeMap(enc)
	if out == nil {
		t.Fatal("decode failed")
	}
	for k, v := range in {
		if out[k] != v {
			t.Fatalf("key %s got: %q want: %q", k, out[k], v)
		}
	}
}
