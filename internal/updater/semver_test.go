package updater

import "testing"

func TestParseSemver(t *testing.T) {
	tests := []struct {
		input   string
		want    Semver
		wantErr bool
	}{
		{input: "1.2.3", want: Semver{Major: 1, Minor: 2, Patch: 3}},
		{input: "v0.4.1", want: Semver{Major: 0, Minor: 4, Patch: 1}},
		{input: "1.2.3-rc1", want: Semver{Major: 1, Minor: 2, Patch: 3, PreRelease: "rc1"}},
		{input: "v2.0.0-beta.2", want: Semver{Major: 2, Minor: 0, Patch: 0, PreRelease: "beta.2"}},
		{input: "1.2", wantErr: true},
		{input: "1.2.3.4", wantErr: true},
		{input: "a.b.c", wantErr: true},
		{input: "dev", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSemver(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSemver(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSemver(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSemver(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSemverCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.1.0", "1.0.9", 1},
		{"2.0.0", "1.9.9", 1},
		{"1.0.0-rc1", "1.0.0", -1},
		{"1.0.0", "1.0.0-rc1", 1},
		{"1.0.0-rc1", "1.0.0-rc2", -1},
		{"1.0.0-rc1", "1.0.0-rc1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, err := ParseSemver(tt.a)
			if err != nil {
				t.Fatal(err)
			}
			b, err := ParseSemver(tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if want := tt.want < 0; a.LessThan(b) != want {
				t.Errorf("LessThan(%s, %s) = %v, want %v", tt.a, tt.b, a.LessThan(b), want)
			}
		})
	}
}

func TestSemverString(t *testing.T) {
	v := Semver{Major: 1, Minor: 2, Patch: 3}
	if got := v.String(); got != "1.2.3" {
		t.Errorf("String() = %q, want 1.2.3", got)
	}
	v.PreRelease = "rc1"
	if got := v.String(); got != "1.2.3-rc1" {
		t.Errorf("String() = %q, want 1.2.3-rc1", got)
	}
}
