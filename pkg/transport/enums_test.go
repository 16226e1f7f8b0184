package transport

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindTCP, "TCP"},
		{KindWebSocket, "WebSocket"},
		{KindQUIC, "QUIC"},
		{KindPipe, "Pipe"},
		{KindUnknown, "Unknown"},
		{Kind(42), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindIsValid(t *testing.T) {
	for _, k := range []Kind{KindTCP, KindWebSocket, KindQUIC, KindPipe} {
		if !k.IsValid() {
			t.Errorf("Kind %v should be valid", k)
		}
	}
	if KindUnknown.IsValid() {
		t.Error("KindUnknown should be invalid")
	}
}

func TestRoleStringAndValidity(t *testing.T) {
	if got := RoleInitiator.String(); got != "Initiator" {
		t.Errorf("RoleInitiator.String() = %q", got)
	}
	if got := RoleAcceptor.String(); got != "Acceptor" {
		t.Errorf("RoleAcceptor.String() = %q", got)
	}
	if got := RoleUnknown.String(); got != "Unknown" {
		t.Errorf("RoleUnknown.String() = %q", got)
	}
	if !RoleInitiator.IsValid() || !RoleAcceptor.IsValid() {
		t.Error("defined roles should be valid")
	}
	if RoleUnknown.IsValid() {
		t.Error("RoleUnknown should be invalid")
	}
}
