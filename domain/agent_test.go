package domain

import "testing"

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"plain string", `"copywriting"`, []string{"copywriting"}},
		{"empty string", `""`, nil},
		{"string array", `["social","trafego"]`, []string{"social", "trafego"}},
		{"array with blanks", `["social","","design"]`, []string{"social", "design"}},
	}

	for _, tc := range cases {
		got := NormalizeTags([]byte(tc.raw))
		if len(got) != len(tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
			}
		}
	}
}

func TestNormalizeTags_ObjectArray(t *testing.T) {
	got := NormalizeTags([]byte(`[{"name":"social"},{"label":"design"},{}]`))
	want := []string{"social", "design"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestNormalizeTags_UnparseableFallsBackToRaw(t *testing.T) {
	got := NormalizeTags([]byte(`social, design`))
	if len(got) != 1 || got[0] != "social, design" {
		t.Fatalf("expected raw fallback, got %v", got)
	}
}
