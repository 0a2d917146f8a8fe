package misc

import "testing"

func TestIdentity(t *testing.T) {
	if GetAppName() != "repgen" {
		t.Errorf("GetAppName() = %q, want repgen", GetAppName())
	}
	if GetVersion() == "" {
		t.Error("GetVersion() returned empty string")
	}
	if h := GetGitHash(); h == "" || len(h) > 12 {
		t.Errorf("GetGitHash() = %q, unexpected", h)
	}
}
