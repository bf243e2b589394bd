package users

import "testing"

func TestPINHashRoundTrip(t *testing.T) {
	h, err := HashPIN("1234")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPIN(h, "1234") {
		t.Error("correct PIN rejected")
	}
	if CheckPIN(h, "4321") {
		t.Error("wrong PIN accepted")
	}
	if CheckPIN("", "1234") {
		t.Error("empty hash accepted")
	}
}
