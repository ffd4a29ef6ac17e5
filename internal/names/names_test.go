package names

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "LeBron James", want: "lebron james"},
		{name: "accented", in: "Nikola Jokić", want: "nikola jokic"},
		{name: "already ascii", in: "Nikola Jokic", want: "nikola jokic"},
		{name: "punctuation stripped", in: "D'Angelo Russell Jr.", want: "dangelo russell jr"},
		{name: "digits stripped", in: "Player 23", want: "player"},
		{name: "whitespace trimmed", in: "  Luka Dončić  ", want: "luka doncic"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Nikola Jokić", "LeBron James", "Kristaps Porziņģis", "", "  A.C. Green III "}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeSameIdentity(t *testing.T) {
	if Normalize("Nikola Jokić") != Normalize("Nikola Jokic") {
		t.Fatalf("accented and plain spellings should normalize identically")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "exact", a: "LeBron James", b: "LeBron James", want: true},
		{name: "partial forward", a: "LeBron", b: "LeBron James", want: true},
		{name: "partial reverse", a: "LeBron James", b: "LeBron", want: true},
		{name: "case insensitive", a: "lebron james", b: "LEBRON JAMES", want: true},
		{name: "unrelated", a: "LeBron James", b: "Kevin Durant", want: false},
		{name: "empty never matches", a: "", b: "LeBron James", want: false},
		{name: "both empty", a: "", b: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.a, tt.b); got != tt.want {
				t.Fatalf("Match(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
