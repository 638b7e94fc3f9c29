package tui

import (
	"strings"
	"testing"
)

func TestBuildStyledDigitsCursor(t *testing.T) {
	target := []rune("14")
	input := []rune("1")
	cursorIndex := len(input)

	runes := buildStyledDigits(target, input, cursorIndex)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("1") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != cursorStyle.Render("4") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledDigitsNoCursorWhenComplete(t *testing.T) {
	target := []rune("1")
	input := []rune("1")

	runes := buildStyledDigits(target, input, -1)
	if runes[0].s != correctStyle.Render("1") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledDigitsKeepsTargetOnMistype(t *testing.T) {
	target := []rune("14")
	input := []rune("19")

	runes := buildStyledDigits(target, input, len(input))
	if runes[1].s != incorrectStyle.Render("4") {
		t.Fatalf("expected incorrect style showing the target digit")
	}
}

func TestBuildStyledDigitsPending(t *testing.T) {
	target := []rune("141")
	runes := buildStyledDigits(target, nil, -1)
	for i, r := range runes {
		if r.s != pendingStyle.Render(string(target[i])) {
			t.Fatalf("expected pending style at %d", i)
		}
		if r.width != 1 {
			t.Fatalf("expected width 1 at %d, got %d", i, r.width)
		}
	}
}

func TestLayoutRowsFixedWidth(t *testing.T) {
	runes := make([]styledRune, 0, 10)
	for _, r := range "1415926535" {
		runes = append(runes, styledRune{s: string(r), width: 1})
	}
	got := layoutRows(runes, 4)
	if got != "1415\n9265\n35" {
		t.Fatalf("unexpected layout %q", got)
	}
}

func TestLayoutRowsUnwrapped(t *testing.T) {
	runes := []styledRune{{s: "1", width: 1}, {s: "4", width: 1}}
	if got := layoutRows(runes, 0); got != "14" {
		t.Fatalf("unexpected layout %q", got)
	}
}

func TestLayoutRowsWideRunes(t *testing.T) {
	runes := []styledRune{{s: "界", width: 2}, {s: "界", width: 2}, {s: "1", width: 1}}
	got := layoutRows(runes, 3)
	if strings.Count(got, "\n") != 1 {
		t.Fatalf("expected wide runes to wrap by cell width, got %q", got)
	}
}
