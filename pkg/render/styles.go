package render

import (
	"strconv"
	"strings"
)

// Email clients ignore class names, so the utility classes a block carries
// are translated into MJML attributes. Unknown classes are kept only as
// css-class.

var fontSizes = map[string]string{
	"text-xs":   "12px",
	"text-sm":   "14px",
	"text-base": "16px",
	"text-lg":   "18px",
	"text-xl":   "20px",
	"text-2xl":  "24px",
	"text-3xl":  "30px",
	"text-4xl":  "36px",
}

var fontWeights = map[string]string{
	"font-normal":   "normal",
	"font-medium":   "500",
	"font-semibold": "600",
	"font-bold":     "bold",
}

var alignments = map[string]string{
	"text-left":   "left",
	"text-center": "center",
	"text-right":  "right",
}

var palette = map[string]string{
	"white":     "#ffffff",
	"black":     "#000000",
	"gray-200":  "#e5e7eb",
	"gray-500":  "#6b7280",
	"gray-700":  "#374151",
	"gray-900":  "#111827",
	"blue-600":  "#2563eb",
	"sky-500":   "#0ea5e9",
	"red-500":   "#ef4444",
	"green-600": "#16a34a",
}

// styleAttributes maps a class list onto MJML attributes
func styleAttributes(style string) map[string]string {
	attrs := map[string]string{}
	for _, class := range strings.Fields(style) {
		if v, ok := fontSizes[class]; ok {
			attrs["font-size"] = v
			continue
		}
		if v, ok := fontWeights[class]; ok {
			attrs["font-weight"] = v
			continue
		}
		if v, ok := alignments[class]; ok {
			attrs["align"] = v
			continue
		}
		if strings.HasPrefix(class, "text-") {
			if v, ok := palette[strings.TrimPrefix(class, "text-")]; ok {
				attrs["color"] = v
			}
			continue
		}
		if strings.HasPrefix(class, "bg-") {
			if v, ok := palette[strings.TrimPrefix(class, "bg-")]; ok {
				attrs["background-color"] = v
			}
			continue
		}
		if strings.HasPrefix(class, "border-") {
			if v, ok := palette[strings.TrimPrefix(class, "border-")]; ok {
				attrs["border-color"] = v
			}
			continue
		}
		if strings.HasPrefix(class, "rounded") {
			attrs["border-radius"] = roundedRadius(class)
		}
	}
	return attrs
}

func roundedRadius(class string) string {
	switch class {
	case "rounded-sm":
		return "2px"
	case "rounded":
		return "4px"
	case "rounded-md":
		return "6px"
	case "rounded-lg":
		return "8px"
	case "rounded-full":
		return "9999px"
	default:
		return "4px"
	}
}

// spacingToPixels converts a size token such as "h-8" into pixels using the
// 4px spacing scale. Unparseable tokens fall back to 32px.
func spacingToPixels(token string) string {
	token = strings.TrimSpace(token)
	if strings.HasSuffix(token, "px") {
		if _, err := strconv.Atoi(strings.TrimSuffix(token, "px")); err == nil {
			return token
		}
	}
	n, err := strconv.Atoi(strings.TrimPrefix(token, "h-"))
	if err != nil || n < 0 {
		return "32px"
	}
	return strconv.Itoa(n*4) + "px"
}
