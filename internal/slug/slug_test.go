package slug

import "testing"

// TestGenerate covers the titles editors type for exams, subjects and
// chapters, plus punctuation and whitespace edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Content titles ---
		{name: "exam acronym", input: "NEET", want: "neet"},
		{name: "exam with year", input: "JEE Main 2026", want: "jee-main-2026"},
		{name: "subject", input: "Physics", want: "physics"},
		{name: "chapter title", input: "Laws of Motion", want: "laws-of-motion"},
		{name: "unit with numbering", input: "Unit 3 Thermodynamics", want: "unit-3-thermodynamics"},

		// --- Special characters ---
		{name: "ampersand", input: "Work, Energy & Power", want: "work-energy-power"},
		{name: "apostrophe", input: "Newton's Laws", want: "newtons-laws"},
		{name: "parentheses", input: "Kinematics (1D)", want: "kinematics-1d"},
		{name: "colon", input: "Optics: Ray Optics", want: "optics-ray-optics"},
		{name: "slash", input: "Acids/Bases", want: "acidsbases"},
		{name: "decimal", input: "Section 2.1", want: "section-21"},

		// --- Whitespace and hyphens ---
		{name: "surrounding spaces", input: "  Organic Chemistry  ", want: "organic-chemistry"},
		{name: "repeated spaces", input: "Cell    Biology", want: "cell-biology"},
		{name: "tabs preserved as whitespace", input: "cell\tbiology", want: "cell\tbiology"},
		{name: "existing hyphen", input: "p-block Elements", want: "p-block-elements"},
		{name: "dangling hyphens", input: "--Genetics--", want: "genetics"},
		{name: "mixed hyphens and spaces", input: "  --Plant -- Kingdom--  ", want: "plant-kingdom"},

		// --- Edge cases ---
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "     ", want: ""},
		{name: "only special characters", input: "!@#$%^&*()", want: ""},
		{name: "single character", input: "A", want: "a"},
		{name: "numbers only", input: "2026", want: "2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that generating a slug from an already
// valid slug produces the same result.
func TestGenerate_Idempotent(t *testing.T) {
	for _, s := range []string{"neet", "laws-of-motion", "unit-3", "2026"} {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"physics", "physics"},
		{"  Physics ", "physics"},
		{"NEET", "neet"},
		{"laws-of-Motion", "laws-of-motion"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsObjectID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "lowercase hex", input: "65f1c0ffee65f1c0ffee0001", want: true},
		{name: "uppercase hex", input: "65F1C0FFEE65F1C0FFEE0001", want: true},
		{name: "too short", input: "65f1c0ffee65f1c0ffee000", want: false},
		{name: "too long", input: "65f1c0ffee65f1c0ffee00011", want: false},
		{name: "non hex", input: "65f1c0ffee65f1c0ffee000g", want: false},
		{name: "slug", input: "mechanics", want: false},
		{name: "24 letter slug", input: "thermodynamics-and-waves", want: false},
		{name: "empty", input: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsObjectID(tt.input); got != tt.want {
				t.Errorf("IsObjectID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
