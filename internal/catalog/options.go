package catalog

var (
	// FontFamilies lists the selectable typefaces.
	FontFamilies = newCatalog("font-family", 0,
		Option{Label: "Open Sans", Value: "open-sans", StyleValue: "'Open Sans', sans-serif"},
		Option{Label: "Arial", Value: "arial", StyleValue: "Arial, sans-serif"},
		Option{Label: "Ubuntu", Value: "ubuntu", StyleValue: "'Ubuntu', sans-serif"},
		Option{Label: "Cormorant Garamond", Value: "cormorant-garamond", StyleValue: "'Cormorant Garamond', serif"},
		Option{Label: "Days One", Value: "days-one", StyleValue: "'Days One', sans-serif"},
		Option{Label: "Merriweather", Value: "merriweather", StyleValue: "'Merriweather', serif"},
	)

	// FontSizes lists the selectable body text sizes.
	FontSizes = newCatalog("font-size", 0,
		Option{Label: "18px", Value: "18px", StyleValue: "18px"},
		Option{Label: "25px", Value: "25px", StyleValue: "25px"},
		Option{Label: "38px", Value: "38px", StyleValue: "38px"},
	)

	// FontColors lists the selectable text colors.
	FontColors = newCatalog("font-color", 0, palette("#000000", "#FFFFFF")...)

	// BackgroundColors lists the selectable page backgrounds.
	BackgroundColors = newCatalog("bg-color", 0, palette("#FFFFFF", "#000000")...)

	// ContentWidths lists the selectable article column widths.
	ContentWidths = newCatalog("content-width", 0,
		Option{Label: "Wide", Value: "wide", StyleValue: "1394px"},
		Option{Label: "Narrow", Value: "narrow", StyleValue: "948px"},
	)
)

// All returns every catalog in the order the settings panel shows them.
func All() []*Catalog {
	return []*Catalog{FontFamilies, FontSizes, FontColors, BackgroundColors, ContentWidths}
}

// palette builds the shared color list. first and second pick which of
// black/white lead the list so each catalog's default sits at index 0.
func palette(first, second string) []Option {
	named := map[string]string{"#000000": "Black", "#FFFFFF": "White"}
	opts := []Option{
		colorOption(named[first], first),
		colorOption(named[second], second),
	}
	for _, c := range []struct{ label, hex string }{
		{"Gray", "#C4C4C4"},
		{"Pink", "#FEAFE8"},
		{"Fuchsia", "#FD24AF"},
		{"Yellow", "#FFC802"},
		{"Green", "#80D994"},
		{"Blue", "#6FC1FD"},
		{"Purple", "#5F2AFF"},
	} {
		opts = append(opts, colorOption(c.label, c.hex))
	}
	return opts
}

func colorOption(label, hex string) Option {
	return Option{Label: label, Value: hex, StyleValue: hex}
}
