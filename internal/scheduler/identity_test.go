package scheduler

import (
	"strings"
	"testing"
)

func TestResolveIdentity_Caller(t *testing.T) {
	t.Parallel()

	id := ResolveIdentity("123456789", "alice", "")
	if id.Key != "123456789" {
		t.Fatalf("expected caller id as key, got %q", id.Key)
	}
	if id.DisplayName != "alice" {
		t.Fatalf("expected caller name as display name, got %q", id.DisplayName)
	}
	if id.Custom {
		t.Fatal("caller identity must not be marked custom")
	}
}

func TestResolveIdentity_CustomNameSlug(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want string
	}{
		{"Foo Bar!", "name:foo_bar_"},
		{"raid-lead", "name:raid_lead"},
		{"ALLCAPS99", "name:allcaps99"},
		{"üñïçode", "name:____ode"},
	}

	for _, tc := range cases {
		id := ResolveIdentity("123", "alice", tc.name)
		if id.Key != tc.want {
			t.Errorf("ResolveIdentity(%q) key = %q, want %q", tc.name, id.Key, tc.want)
		}
		if id.DisplayName != tc.name {
			t.Errorf("ResolveIdentity(%q) display name = %q", tc.name, id.DisplayName)
		}
		if !id.Custom {
			t.Errorf("ResolveIdentity(%q) not marked custom", tc.name)
		}
	}
}

func TestResolveIdentity_CustomKeyIndependentOfCaller(t *testing.T) {
	t.Parallel()

	a := ResolveIdentity("111", "alice", "Foo Bar!")
	b := ResolveIdentity("222", "bob", "Foo Bar!")
	if a.Key != b.Key {
		t.Fatalf("same custom name produced different keys: %q vs %q", a.Key, b.Key)
	}
}

func TestResolveIdentity_CustomKeysNeverCollideWithCallers(t *testing.T) {
	t.Parallel()

	// Caller keys are platform user ids; every custom key carries the marker.
	id := ResolveIdentity("999", "carol", "999")
	if id.Key == "999" {
		t.Fatal("custom identity collided with a caller id")
	}
	if !strings.HasPrefix(id.Key, CustomKeyPrefix) {
		t.Fatalf("custom key %q lacks the marker prefix", id.Key)
	}
}
