package qr

import (
	"bytes"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRedemptionURL(t *testing.T) {
	got := RedemptionURL("http://127.0.0.1:5000/", "SIG1")
	want := "http://127.0.0.1:5000/authenticate/SIG1"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestRedemptionPNG(t *testing.T) {
	png, err := RedemptionPNG("http://127.0.0.1:5000", "SIG1", 0)
	if err != nil {
		t.Fatalf("RedemptionPNG failed: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG image")
	}
}
