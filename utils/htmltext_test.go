package utils_test

import (
	"testing"

	"calorease/utils"
)

func TestStripHTMLRemovesTags(t *testing.T) {
	in := `<b>Creamy</b> pasta with <a href="x">garlic</a> &amp; basil`
	want := "Creamy pasta with garlic & basil"
	if got := utils.StripHTML(in); got != want {
		t.Fatalf("StripHTML = %q, want %q", got, want)
	}
}

func TestStripHTMLPlainTextUntouched(t *testing.T) {
	in := "no markup here"
	if got := utils.StripHTML(in); got != in {
		t.Fatalf("StripHTML changed plain text: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	// The ellipsis is appended even when nothing was cut.
	if got := utils.Truncate("short", 100); got != "short..." {
		t.Fatalf("short string should still gain the ellipsis, got %q", got)
	}
	long := make([]byte, 0, 120)
	for i := 0; i < 120; i++ {
		long = append(long, 'a')
	}
	got := utils.Truncate(string(long), 100)
	if len([]rune(got)) != 103 {
		t.Fatalf("expected 100 chars + ellipsis, got %d", len([]rune(got)))
	}
}
