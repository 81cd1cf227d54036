package menu

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode selects the rendering surface for Format.
type Mode int

const (
	// ModePlain renders newline-separated section lines for plain-text surfaces.
	ModePlain Mode = iota
	// ModeMarkdown renders one bold-labeled block per section for Telegram Markdown.
	ModeMarkdown
)

const (
	// NoMenuMessage is returned for an empty entry sequence.
	NoMenuMessage = "No menu available for today"
	// NoItemsMessage is returned when no food item survives cleaning.
	NoItemsMessage = "No menu items available for today"
)

var (
	wgMarker = regexp.MustCompile(`(?i),\s*WG\b`)
	elMarker = regexp.MustCompile(`(?i)\s*\(El\)\s*`)
)

// cleanName normalizes a raw food name: trims whitespace, strips the trailing
// ", WG" allergen marker and any "(El)" marker. In Markdown mode commas are
// removed too, so names cannot break the comma-joined section lists.
func cleanName(name string, mode Mode) string {
	name = strings.TrimSpace(name)
	name = wgMarker.ReplaceAllString(name, "")
	name = elMarker.ReplaceAllString(name, " ")
	if mode == ModeMarkdown {
		name = strings.ReplaceAll(name, ",", "")
	}
	return strings.TrimSpace(name)
}

// Format turns a raw ordered entry sequence into human-readable menu text.
// It is total: any input, including malformed or empty sequences, yields text.
//
// Items are grouped under the most recent recognized header ("option 1",
// "option 2", "side" by case-insensitive substring). An unrecognized header
// leaves the current section unchanged rather than resetting it; the upstream
// feed interleaves decorative headers and this matches how it reads in
// practice, odd as it looks.
func Format(entries []Entry, mode Mode) string {
	if len(entries) == 0 {
		return NoMenuMessage
	}

	var option1, option2, sides []string
	var current *[]string

	for _, item := range entries {
		if item.IsStationHeader && item.Text != "" {
			switch text := strings.ToLower(item.Text); {
			case strings.Contains(text, "option 1"):
				current = &option1
			case strings.Contains(text, "option 2"):
				current = &option2
			case strings.Contains(text, "side"):
				current = &sides
			}
			continue
		}
		if !item.IsStationHeader && item.Food != nil && item.Food.Name != "" {
			name := cleanName(item.Food.Name, mode)
			if name != "" && current != nil {
				*current = append(*current, name)
			}
		}
	}

	var lines []string
	switch mode {
	case ModeMarkdown:
		if len(option1) > 0 {
			lines = append(lines, fmt.Sprintf("*Option 1:* %s", strings.Join(option1, ", ")))
		}
		if len(option2) > 0 {
			lines = append(lines, fmt.Sprintf("*Option 2:* %s", strings.Join(option2, ", ")))
		}
		if len(sides) > 0 {
			lines = append(lines, fmt.Sprintf("*Sides:* %s", strings.Join(sides, ", ")))
		}
	default:
		if len(option1) > 0 {
			lines = append(lines, fmt.Sprintf("Option 1: %s", strings.Join(option1, " and ")))
		}
		if len(option2) > 0 {
			lines = append(lines, fmt.Sprintf("Option 2: %s", strings.Join(option2, " and ")))
		}
		if len(sides) > 0 {
			lines = append(lines, fmt.Sprintf("Sides: %s", strings.Join(sides, ", ")))
		}
	}

	if len(lines) > 0 {
		return strings.Join(lines, "\n")
	}

	// No recognized section produced anything. Fall back to a flat list of
	// every food item, cleaning only the WG marker.
	var all []string
	for _, item := range entries {
		if item.IsStationHeader || item.Food == nil || item.Food.Name == "" {
			continue
		}
		name := strings.TrimSpace(wgMarker.ReplaceAllString(item.Food.Name, ""))
		if name != "" {
			all = append(all, name)
		}
	}
	if len(all) == 0 {
		return NoItemsMessage
	}
	return strings.Join(all, " or ")
}
