package menu

import (
	"strings"
	"testing"
)

func header(text string) Entry {
	return Entry{IsStationHeader: true, Text: text}
}

func food(name string) Entry {
	return Entry{Food: &Food{Name: name}}
}

func TestFormat(t *testing.T) {
	t.Run("EmptySequence", func(t *testing.T) {
		if got := Format(nil, ModePlain); got != NoMenuMessage {
			t.Errorf("Expected '%s', got '%s'", NoMenuMessage, got)
		}
		if got := Format([]Entry{}, ModeMarkdown); got != NoMenuMessage {
			t.Errorf("Expected '%s', got '%s'", NoMenuMessage, got)
		}
	})

	t.Run("PlainSections", func(t *testing.T) {
		entries := []Entry{
			header("Option 1"),
			food("Pizza, WG"),
			header("Sides"),
			food("Apples (El)"),
		}
		want := "Option 1: Pizza\nSides: Apples"
		if got := Format(entries, ModePlain); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})

	t.Run("MarkdownSectionsKeepFixedOrder", func(t *testing.T) {
		// Sides appear before Option 1 in the feed; rendering order is fixed.
		entries := []Entry{
			header("Today's Sides"),
			food("Apples (El)"),
			header("Option 1"),
			food("Pizza, WG"),
		}
		got := Format(entries, ModeMarkdown)
		if !strings.Contains(got, "*Option 1:* Pizza") {
			t.Errorf("Missing Option 1 block in %q", got)
		}
		if !strings.Contains(got, "*Sides:* Apples") {
			t.Errorf("Missing Sides block in %q", got)
		}
		if strings.Index(got, "*Option 1:*") > strings.Index(got, "*Sides:*") {
			t.Errorf("Expected Option 1 before Sides in %q", got)
		}
	})

	t.Run("MultipleItemsJoined", func(t *testing.T) {
		entries := []Entry{
			header("Lunch Option 1"),
			food("Chicken Sandwich"),
			food("French Fries"),
			header("Option 2"),
			food("Yogurt Parfait, WG"),
			header("Sides"),
			food("Carrots"),
			food("Milk"),
		}
		want := "Option 1: Chicken Sandwich and French Fries\nOption 2: Yogurt Parfait\nSides: Carrots, Milk"
		if got := Format(entries, ModePlain); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})

	t.Run("MarkdownStripsCommasFromNames", func(t *testing.T) {
		entries := []Entry{
			header("Option 1"),
			food("Macaroni, Cheese Bake"),
		}
		got := Format(entries, ModeMarkdown)
		if got != "*Option 1:* Macaroni Cheese Bake" {
			t.Errorf("Expected commas stripped, got %q", got)
		}
	})

	t.Run("UnrecognizedHeaderKeepsCurrentSection", func(t *testing.T) {
		// Documented-but-odd upstream behavior: an unrecognized header does not
		// reset grouping, so "Milk" still lands under Option 1.
		entries := []Entry{
			header("Option 1"),
			food("Pizza"),
			header("Daily Specials"),
			food("Milk"),
		}
		want := "Option 1: Pizza and Milk"
		if got := Format(entries, ModePlain); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})

	t.Run("FallbackJoinsWithOr", func(t *testing.T) {
		entries := []Entry{
			food("Cereal, WG"),
			food("Toast"),
		}
		want := "Cereal or Toast"
		if got := Format(entries, ModePlain); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})

	t.Run("ItemsBeforeAnyHeaderUseFallback", func(t *testing.T) {
		// The item precedes the only classifying header, so the structured
		// grouping drops it and the flat fallback kicks in.
		entries := []Entry{
			food("Bagel"),
			header("Option 1"),
		}
		if got := Format(entries, ModePlain); got != "Bagel" {
			t.Errorf("Expected fallback 'Bagel', got %q", got)
		}
	})

	t.Run("OnlyHeadersYieldsNoItemsMessage", func(t *testing.T) {
		entries := []Entry{header("Option 1"), header("Sides")}
		if got := Format(entries, ModePlain); got != NoItemsMessage {
			t.Errorf("Expected '%s', got '%s'", NoItemsMessage, got)
		}
	})

	t.Run("EmptyNamesAreSkipped", func(t *testing.T) {
		entries := []Entry{
			header("Option 1"),
			food("   "),
			{Food: nil},
			food("Pizza"),
		}
		want := "Option 1: Pizza"
		if got := Format(entries, ModePlain); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})

	t.Run("WGMarkerIsCaseInsensitive", func(t *testing.T) {
		entries := []Entry{
			header("Option 2"),
			food("Breadstick, wg"),
		}
		want := "Option 2: Breadstick"
		if got := Format(entries, ModePlain); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})
}

func TestFindDay(t *testing.T) {
	week := &Week{Days: []Day{
		{Date: "2025-10-06", MenuItems: []Entry{food("Oatmeal")}},
		{Date: "2025-10-07", MenuItems: []Entry{food("Pancakes")}},
	}}

	t.Run("MatchingDate", func(t *testing.T) {
		entries := FindDay(week, "2025-10-07")
		if len(entries) != 1 || entries[0].Food.Name != "Pancakes" {
			t.Errorf("Expected Pancakes entry, got %+v", entries)
		}
	})

	t.Run("AbsentDateIsEmpty", func(t *testing.T) {
		if entries := FindDay(week, "2025-10-08"); len(entries) != 0 {
			t.Errorf("Expected no entries, got %+v", entries)
		}
	})

	t.Run("NilWeek", func(t *testing.T) {
		if entries := FindDay(nil, "2025-10-07"); entries != nil {
			t.Errorf("Expected nil entries, got %+v", entries)
		}
	})
}
