package css

import (
	"strconv"
	"strings"

	"go-view/css/values"
)

// ======================================================================================
// PROPERTY APPLICATION
// Each declaration mutates the computed style in place. Bad values are
// skipped silently; the style keeps its previous (or initial) value.
// ======================================================================================

// ApplyDeclarations applies CSS declarations to a ComputedStyle
func ApplyDeclarations(style *values.ComputedStyle, declarations []Declaration) {
	for _, decl := range declarations {
		ApplyProperty(style, decl.Property, decl.Value)
	}
}

// keyword returns value if it is one of allowed, otherwise "".
func keyword(value string, allowed ...string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return ""
}

// setLength assigns a parsed length and records the property as set.
func setLength(style *values.ComputedStyle, property, value string, dst *values.Length) {
	if l, ok := values.ParseLength(value); ok {
		*dst = l
		style.MarkSet(property)
	}
}

// fontRelativeCtx resolves em/rem/% for font-size and line-height against
// the style's current font size.
func fontRelativeCtx(style *values.ComputedStyle) values.ResolveContext {
	return values.ResolveContext{
		ContainingSize: style.FontSize,
		FontSize:       style.FontSize,
		RootFontSize:   16,
	}
}

// ApplyProperty applies a single CSS property to a ComputedStyle
func ApplyProperty(style *values.ComputedStyle, property, value string) {
	value = strings.TrimSpace(value)

	switch property {
	// Display and positioning scheme
	case "display":
		if kw := keyword(value, "block", "inline", "inline-block", "flex", "table", "list-item", "none"); kw != "" {
			style.Display = kw
			style.MarkSet("display")
		}
	case "position":
		if kw := keyword(value, "static", "relative"); kw != "" {
			style.Position = kw
			style.MarkSet("position")
		}
	case "overflow", "overflow-y":
		if kw := keyword(value, "visible", "hidden", "scroll", "auto"); kw != "" {
			style.Overflow = kw
			style.MarkSet("overflow")
		}
	case "box-sizing":
		if kw := keyword(value, "content-box", "border-box"); kw != "" {
			style.BoxSizing = kw
			style.MarkSet("box-sizing")
		}

	// Colors
	case "color":
		if c, ok := values.ParseColor(value); ok {
			style.Color = c
			style.MarkSet("color")
		}
	case "background-color", "background":
		if c, ok := values.ParseColor(value); ok {
			style.BackgroundColor = c
			style.MarkSet("background-color")
		}
	case "opacity":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			style.Opacity = v
			style.MarkSet("opacity")
		}

	// Typography
	case "font-size":
		if l, ok := values.ParseLength(value); ok && l.IsSet() {
			if px := l.Resolve(fontRelativeCtx(style)); px > 0 {
				style.FontSize = px
				style.MarkSet("font-size")
			}
		}
	case "font-weight":
		switch strings.ToLower(value) {
		case "normal":
			style.FontWeight = 400
			style.MarkSet("font-weight")
		case "bold":
			style.FontWeight = 700
			style.MarkSet("font-weight")
		case "lighter":
			style.FontWeight = 300
			style.MarkSet("font-weight")
		case "bolder":
			style.FontWeight = 800
			style.MarkSet("font-weight")
		default:
			if w, err := strconv.Atoi(value); err == nil && w >= 100 && w <= 900 {
				style.FontWeight = w
				style.MarkSet("font-weight")
			}
		}
	case "font-style":
		if kw := keyword(value, "normal", "italic", "oblique"); kw != "" {
			if kw == "oblique" {
				kw = "italic"
			}
			style.FontStyle = kw
			style.MarkSet("font-style")
		}
	case "font-family":
		var families []string
		for _, f := range strings.Split(value, ",") {
			f = strings.Trim(strings.TrimSpace(f), `"'`)
			if f != "" {
				families = append(families, f)
			}
		}
		if len(families) > 0 {
			style.FontFamily = families
			style.MarkSet("font-family")
		}
	case "line-height":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			// Unitless number: multiplier.
			if v > 0 {
				style.LineHeight = v
				style.MarkSet("line-height")
			}
		} else if l, ok := values.ParseLength(value); ok && l.IsSet() {
			if px := l.Resolve(fontRelativeCtx(style)); px > 0 && style.FontSize > 0 {
				style.LineHeight = px / style.FontSize
				style.MarkSet("line-height")
			}
		}
	case "text-align":
		if kw := keyword(value, "left", "center", "right", "justify"); kw != "" {
			style.TextAlign = kw
			style.MarkSet("text-align")
		}
	case "text-decoration", "text-decoration-line":
		if kw := keyword(value, "none", "underline", "line-through"); kw != "" {
			style.TextDecoration = kw
			style.MarkSet("text-decoration")
		}
	case "vertical-align":
		if kw := keyword(value, "baseline", "top", "middle", "bottom", "text-top", "text-bottom", "sub", "super"); kw != "" {
			style.VerticalAlign = kw
			style.MarkSet("vertical-align")
		}

	// Box dimensions
	case "width":
		setLength(style, property, value, &style.Width)
	case "height":
		setLength(style, property, value, &style.Height)
	case "min-width":
		setLength(style, property, value, &style.MinWidth)
	case "max-width":
		setLength(style, property, value, &style.MaxWidth)
	case "min-height":
		setLength(style, property, value, &style.MinHeight)
	case "max-height":
		setLength(style, property, value, &style.MaxHeight)

	// Margins
	case "margin":
		applyEdgeShorthand(style, value, "margin",
			&style.MarginTop, &style.MarginRight, &style.MarginBottom, &style.MarginLeft)
	case "margin-top":
		setLength(style, property, value, &style.MarginTop)
	case "margin-right":
		setLength(style, property, value, &style.MarginRight)
	case "margin-bottom":
		setLength(style, property, value, &style.MarginBottom)
	case "margin-left":
		setLength(style, property, value, &style.MarginLeft)

	// Padding
	case "padding":
		applyEdgeShorthand(style, value, "padding",
			&style.PaddingTop, &style.PaddingRight, &style.PaddingBottom, &style.PaddingLeft)
	case "padding-top":
		setLength(style, property, value, &style.PaddingTop)
	case "padding-right":
		setLength(style, property, value, &style.PaddingRight)
	case "padding-bottom":
		setLength(style, property, value, &style.PaddingBottom)
	case "padding-left":
		setLength(style, property, value, &style.PaddingLeft)

	// Borders
	case "border-width":
		applyEdgeShorthand(style, value, "border-width",
			&style.BorderTopWidth, &style.BorderRightWidth, &style.BorderBottomWidth, &style.BorderLeftWidth)
	case "border-top-width":
		setLength(style, property, value, &style.BorderTopWidth)
	case "border-right-width":
		setLength(style, property, value, &style.BorderRightWidth)
	case "border-bottom-width":
		setLength(style, property, value, &style.BorderBottomWidth)
	case "border-left-width":
		setLength(style, property, value, &style.BorderLeftWidth)
	case "border-color":
		if c, ok := values.ParseColor(value); ok {
			style.BorderTopColor = c
			style.BorderRightColor = c
			style.BorderBottomColor = c
			style.BorderLeftColor = c
			style.MarkSet("border-color")
		}
	case "border":
		applyBorderShorthand(style, value,
			[]*values.Length{&style.BorderTopWidth, &style.BorderRightWidth, &style.BorderBottomWidth, &style.BorderLeftWidth},
			[]*values.Color{&style.BorderTopColor, &style.BorderRightColor, &style.BorderBottomColor, &style.BorderLeftColor})
	case "border-top":
		applyBorderShorthand(style, value,
			[]*values.Length{&style.BorderTopWidth}, []*values.Color{&style.BorderTopColor})
	case "border-right":
		applyBorderShorthand(style, value,
			[]*values.Length{&style.BorderRightWidth}, []*values.Color{&style.BorderRightColor})
	case "border-bottom":
		applyBorderShorthand(style, value,
			[]*values.Length{&style.BorderBottomWidth}, []*values.Color{&style.BorderBottomColor})
	case "border-left":
		applyBorderShorthand(style, value,
			[]*values.Length{&style.BorderLeftWidth}, []*values.Color{&style.BorderLeftColor})
	case "border-radius":
		if l, ok := values.ParseLength(value); ok {
			style.BorderTopLeftRadius = l
			style.BorderTopRightRadius = l
			style.BorderBottomRightRadius = l
			style.BorderBottomLeftRadius = l
			style.MarkSet("border-radius")
		}

	// Flex container
	case "flex-direction":
		if kw := keyword(value, "row", "row-reverse", "column", "column-reverse"); kw != "" {
			style.FlexDirection = kw
			style.MarkSet("flex-direction")
		}
	case "flex-wrap":
		if kw := keyword(value, "nowrap", "wrap"); kw != "" {
			style.FlexWrap = kw
			style.MarkSet("flex-wrap")
		}
	case "justify-content":
		if kw := keyword(value, "flex-start", "center", "flex-end", "space-between", "space-around"); kw != "" {
			style.JustifyContent = kw
			style.MarkSet("justify-content")
		}
	case "align-items":
		if kw := keyword(value, "stretch", "flex-start", "center", "flex-end"); kw != "" {
			style.AlignItems = kw
			style.MarkSet("align-items")
		}
	case "gap":
		setLength(style, property, value, &style.Gap)

	// Flex item
	case "flex-grow":
		if v, err := strconv.ParseFloat(value, 64); err == nil && v >= 0 {
			style.FlexGrow = v
			style.MarkSet("flex-grow")
		}
	case "flex-shrink":
		if v, err := strconv.ParseFloat(value, 64); err == nil && v >= 0 {
			style.FlexShrink = v
			style.MarkSet("flex-shrink")
		}
	case "flex-basis":
		setLength(style, property, value, &style.FlexBasis)
	case "flex":
		applyFlexShorthand(style, value)

	// Lists, interaction, replaced content
	case "list-style-type", "list-style":
		if kw := keyword(value, "disc", "decimal", "none"); kw != "" {
			style.ListStyleType = kw
			style.MarkSet("list-style-type")
		}
	case "user-select":
		if kw := keyword(value, "auto", "text", "none", "all"); kw != "" {
			style.UserSelect = kw
			style.MarkSet("user-select")
		}
	case "object-fit":
		if kw := keyword(value, "fill", "contain", "cover", "none"); kw != "" {
			style.ObjectFit = kw
			style.MarkSet("object-fit")
		}
	case "object-position":
		style.ObjectPosition = strings.ToLower(value)
		style.MarkSet("object-position")
	case "image-rendering":
		if kw := keyword(value, "auto", "pixelated"); kw != "" {
			style.ImageRendering = kw
			style.MarkSet("image-rendering")
		}
	}
}

// applyEdgeShorthand handles the 1/2/3/4-value edge shorthands:
// one value for all; two as TB/RL; three as T/RL/B; four as T/R/B/L.
func applyEdgeShorthand(style *values.ComputedStyle, value, property string, top, right, bottom, left *values.Length) {
	parts := strings.Fields(value)
	lengths := make([]values.Length, 0, 4)
	for _, p := range parts {
		l, ok := values.ParseLength(p)
		if !ok {
			return
		}
		lengths = append(lengths, l)
	}

	switch len(lengths) {
	case 1:
		*top, *right, *bottom, *left = lengths[0], lengths[0], lengths[0], lengths[0]
	case 2:
		*top, *bottom = lengths[0], lengths[0]
		*right, *left = lengths[1], lengths[1]
	case 3:
		*top = lengths[0]
		*right, *left = lengths[1], lengths[1]
		*bottom = lengths[2]
	case 4:
		*top, *right, *bottom, *left = lengths[0], lengths[1], lengths[2], lengths[3]
	default:
		return
	}
	style.MarkSet(property)
}

// applyBorderShorthand tokenises by whitespace: length tokens set widths,
// parseable colors set colors, style keywords are accepted and dropped.
func applyBorderShorthand(style *values.ComputedStyle, value string, widths []*values.Length, colors []*values.Color) {
	applied := false
	for _, token := range strings.Fields(value) {
		if keyword(token, "solid", "dashed", "dotted", "double", "none", "hidden") != "" {
			continue
		}
		if c, ok := values.ParseColor(token); ok {
			for _, dst := range colors {
				*dst = c
			}
			applied = true
			continue
		}
		if l, ok := values.ParseLength(token); ok && l.IsSet() {
			for _, dst := range widths {
				*dst = l
			}
			applied = true
		}
	}
	if applied {
		style.MarkSet("border")
	}
}

// applyFlexShorthand implements the flex shorthand:
// auto -> (1,1,auto); none -> (0,0,auto); one number -> grow with shrink=1
// and basis 0%; two or three values map positionally.
func applyFlexShorthand(style *values.ComputedStyle, value string) {
	switch strings.ToLower(value) {
	case "auto":
		style.FlexGrow, style.FlexShrink, style.FlexBasis = 1, 1, values.Auto()
		style.MarkSet("flex")
		return
	case "none":
		style.FlexGrow, style.FlexShrink, style.FlexBasis = 0, 0, values.Auto()
		style.MarkSet("flex")
		return
	}

	parts := strings.Fields(value)
	switch len(parts) {
	case 1:
		if v, err := strconv.ParseFloat(parts[0], 64); err == nil {
			style.FlexGrow = v
			style.FlexShrink = 1
			style.FlexBasis = values.Percent(0)
			style.MarkSet("flex")
		}
	case 2:
		grow, err1 := strconv.ParseFloat(parts[0], 64)
		if err1 != nil {
			return
		}
		style.FlexGrow = grow
		if shrink, err := strconv.ParseFloat(parts[1], 64); err == nil {
			style.FlexShrink = shrink
		} else if basis, ok := values.ParseLength(parts[1]); ok {
			style.FlexBasis = basis
		} else {
			return
		}
		style.MarkSet("flex")
	case 3:
		grow, err1 := strconv.ParseFloat(parts[0], 64)
		shrink, err2 := strconv.ParseFloat(parts[1], 64)
		basis, ok := values.ParseLength(parts[2])
		if err1 != nil || err2 != nil || !ok {
			return
		}
		style.FlexGrow, style.FlexShrink, style.FlexBasis = grow, shrink, basis
		style.MarkSet("flex")
	}
}
