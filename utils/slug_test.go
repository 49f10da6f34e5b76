package utils_test

import (
	"testing"

	"calorease/utils"
)

func TestSlugifyBasic(t *testing.T) {
	if got := utils.Slugify("Creamy Garlic Pasta"); got != "creamy-garlic-pasta" {
		t.Fatalf("unexpected slug: %q", got)
	}
}

func TestSlugifyCollapsesPunctuationAndAccents(t *testing.T) {
	cases := map[string]string{
		"Sop  Buntut (Oxtail Soup)": "sop-buntut-oxtail-soup",
		"Crème Brûlée":              "creme-brulee",
		"  -- weird -- title --  ":  "weird-title",
	}
	for in, want := range cases {
		if got := utils.Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
