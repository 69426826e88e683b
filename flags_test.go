package atlas

import "testing"

// --- Flags Tests ---

func TestFlags_Has(t *testing.T) {
	f := RotatePortrait | WidestFirst

	if !f.Has(RotatePortrait) {
		t.Error("expected RotatePortrait to be set")
	}
	if !f.Has(RotatePortrait | WidestFirst) {
		t.Error("expected combined query to match")
	}
	if f.Has(RotateLandscape) {
		t.Error("expected RotateLandscape not to be set")
	}
	if f.Has(WidestFirst | NarrowestFirst) {
		t.Error("expected partial match to report false")
	}
}

func TestFlags_String(t *testing.T) {
	tests := []struct {
		name string
		f    Flags
		want string
	}{
		{"empty", 0, "0"},
		{"single", RotateLandscape, "RotateLandscape"},
		{"default", DefaultFlags, "RotatePortrait|WidestFirst"},
		{"three", RotatePortrait | NarrowestFirst | ReverseDirectionAlways,
			"RotatePortrait|NarrowestFirst|ReverseDirectionAlways"},
		{"unknown bits", Flags(1 << 20), "Flags(unknown)"},
		{"known and unknown", WidestFirst | Flags(1<<20), "WidestFirst|Flags(unknown)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlags_ValidateExclusiveRotation(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for RotatePortrait|RotateLandscape")
		}
	}()

	(RotatePortrait | RotateLandscape).validate()
}

func TestFlags_ValidateExclusiveSort(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for WidestFirst|NarrowestFirst")
		}
	}()

	(WidestFirst | NarrowestFirst).validate()
}

func TestFlags_ValidateAcceptsEmpty(t *testing.T) {
	Flags(0).validate()
	DefaultFlags.validate()
}
