package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget selects how a field is drawn.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetAngle
	WidgetBool
	WidgetColor
	WidgetSwatches
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label":    WidgetLabel,
	"bar":      WidgetBar,
	"angle":    WidgetAngle,
	"bool":     WidgetBool,
	"color":    WidgetColor,
	"swatches": WidgetSwatches,
	"skip":     WidgetSkip,
}

// Field is one component field with its drawing hints.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Options map[string]string
}

// ParseTag reads an `inspect:"widget[,key:value...]"` tag, for example
// `inspect:"bar,max:1.5"` or `inspect:"label,fmt:%.1f"`. Unknown widget
// names fall back to WidgetAuto.
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)
	if tag == "" {
		return WidgetAuto, options
	}

	name, rest, _ := strings.Cut(tag, ",")
	widget := widgetNames[strings.TrimSpace(name)]

	for rest != "" {
		var part string
		part, rest, _ = strings.Cut(rest, ",")
		if k, v, ok := strings.Cut(strings.TrimSpace(part), ":"); ok {
			options[k] = v
		}
	}
	return widget, options
}

// ExtractFields lists the exported fields of a struct or struct pointer.
// Anything else yields nil.
func ExtractFields(component any) []Field {
	v := reflect.Indirect(reflect.ValueOf(component))
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	fields := make([]Field, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		switch widget {
		case WidgetSkip:
			continue
		case WidgetAuto:
			widget = autoDetectWidget(sf.Type)
		}
		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   v.Field(i).Interface(),
			Widget:  widget,
			Options: options,
		})
	}
	return fields
}

// autoDetectWidget picks a widget for an untagged field.
func autoDetectWidget(t reflect.Type) Widget {
	switch {
	case t.Kind() == reflect.Bool:
		return WidgetBool
	case (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && t.Elem().Kind() == reflect.String:
		return WidgetSwatches
	default:
		return WidgetLabel
	}
}

// FormatValue formats a value with fmtStr, or with two decimals for floats
// when fmtStr is empty.
func FormatValue(value any, fmtStr string) string {
	if fmtStr != "" {
		return fmt.Sprintf(fmtStr, value)
	}
	switch value.(type) {
	case float32, float64:
		return fmt.Sprintf("%.2f", value)
	}
	return fmt.Sprint(value)
}

// GetMax returns the positive max option, or 1.
func GetMax(options map[string]string) float64 {
	v, err := strconv.ParseFloat(options["max"], 64)
	if err != nil || v <= 0 {
		return 1
	}
	return v
}

// GetFloatValue converts any numeric value to float64. Named numeric types
// such as enum states are accepted too.
func GetFloatValue(value any) (float64, bool) {
	v := reflect.ValueOf(value)
	switch {
	case !v.IsValid():
		return 0, false
	case v.CanFloat():
		return v.Float(), true
	case v.CanInt():
		return float64(v.Int()), true
	case v.CanUint():
		return float64(v.Uint()), true
	}
	return 0, false
}

// GetStringSlice copies a slice or array of strings.
func GetStringSlice(value any) ([]string, bool) {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Array && v.Kind() != reflect.Slice {
		return nil, false
	}
	if v.Type().Elem().Kind() != reflect.String {
		return nil, false
	}

	out := make([]string, v.Len())
	for i := range out {
		out[i] = v.Index(i).String()
	}
	return out, true
}

// Height returns the vertical space a field's widget takes.
func Height(f Field) int32 {
	switch f.Widget {
	case WidgetAngle:
		return angleSize + 4
	case WidgetBar, WidgetBool, WidgetColor, WidgetSwatches:
		return 18
	}
	return 20
}
