package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quickcard/internal/engine/element"
)

// toGoValue converts a Lua value to a Go value.
// Numbers become float64; tables become maps or slices.
func toGoValue(lv lua.LValue) any {
	return toGoValueVisited(lv, make(map[*lua.LTable]bool))
}

func toGoValueVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

// tableToGo converts a sequence to a slice and anything else to a map.
func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	if n := t.Len(); n > 0 {
		count := 0
		t.ForEach(func(_, _ lua.LValue) { count++ })
		if count == n {
			arr := make([]any, n)
			for i := 1; i <= n; i++ {
				arr[i-1] = toGoValueVisited(t.RawGetInt(i), visited)
			}
			return arr
		}
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = toGoValueVisited(v, visited)
	})
	return m
}

// patchFromTable builds an element patch from a Lua table of field values.
func patchFromTable(t *lua.LTable) (element.Patch, error) {
	fields := make(map[string]any)
	var bad error
	t.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			bad = fmt.Errorf("%w: non-string key %s", element.ErrUnknownField, k.String())
			return
		}
		fields[string(key)] = toGoValue(v)
	})
	if bad != nil {
		return element.Patch{}, bad
	}
	return element.PatchFromMap(fields)
}

// elementTable converts an element to a Lua table keyed by field name.
func elementTable(L *lua.LState, el element.Element) *lua.LTable {
	t := L.NewTable()
	b := el.Geometry()
	t.RawSetString("id", lua.LString(b.ID))
	t.RawSetString("type", lua.LString(el.Kind().String()))
	t.RawSetString(element.FieldX, lua.LNumber(b.X))
	t.RawSetString(element.FieldY, lua.LNumber(b.Y))
	t.RawSetString(element.FieldWidth, lua.LNumber(b.Width))
	t.RawSetString(element.FieldHeight, lua.LNumber(b.Height))
	t.RawSetString(element.FieldRotation, lua.LNumber(b.Rotation))
	t.RawSetString(element.FieldZIndex, lua.LNumber(b.ZIndex))

	switch v := el.(type) {
	case element.Text:
		t.RawSetString(element.FieldText, lua.LString(v.Text))
		t.RawSetString(element.FieldFontSize, lua.LNumber(v.FontSize))
		t.RawSetString(element.FieldFontFamily, lua.LString(v.FontFamily))
		t.RawSetString(element.FieldColor, lua.LString(v.Color))
		t.RawSetString(element.FieldFontWeight, lua.LString(v.FontWeight))
		t.RawSetString(element.FieldFontStyle, lua.LString(v.FontStyle))
	case element.Image:
		t.RawSetString(element.FieldSrc, lua.LString(v.Src))
	case element.Shape:
		t.RawSetString(element.FieldShapeType, lua.LString(v.ShapeType))
		t.RawSetString(element.FieldBackgroundColor, lua.LString(v.BackgroundColor))
	case element.QRCode:
		t.RawSetString(element.FieldValue, lua.LString(v.Value))
	}
	return t
}
