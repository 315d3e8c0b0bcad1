package element

import (
	"fmt"
	"math"
	"sort"
)

// Field names used in patches and scripting.
const (
	FieldX               = "x"
	FieldY               = "y"
	FieldWidth           = "width"
	FieldHeight          = "height"
	FieldRotation        = "rotation"
	FieldZIndex          = "zIndex"
	FieldText            = "text"
	FieldFontSize        = "fontSize"
	FieldFontFamily      = "fontFamily"
	FieldColor           = "color"
	FieldFontWeight      = "fontWeight"
	FieldFontStyle       = "fontStyle"
	FieldSrc             = "src"
	FieldShapeType       = "shapeType"
	FieldBackgroundColor = "backgroundColor"
	FieldValue           = "value"
)

// variantFields maps each kind to the fields its schema defines beyond Base.
var variantFields = map[Kind]map[string]bool{
	KindText: {
		FieldText: true, FieldFontSize: true, FieldFontFamily: true,
		FieldColor: true, FieldFontWeight: true, FieldFontStyle: true,
	},
	KindImage:  {FieldSrc: true},
	KindShape:  {FieldShapeType: true, FieldBackgroundColor: true},
	KindQRCode: {FieldValue: true},
}

// HasField reports whether elements of kind k define the named field.
func HasField(k Kind, name string) bool {
	switch name {
	case FieldX, FieldY, FieldWidth, FieldHeight, FieldRotation, FieldZIndex:
		return true
	}
	return variantFields[k][name]
}

// Patch is a partial update. Nil fields are left unchanged.
// The id and the kind tag can never be patched.
type Patch struct {
	X, Y          *float64
	Width, Height *float64
	Rotation      *float64
	ZIndex        *int

	Text       *string
	FontSize   *float64
	FontFamily *string
	Color      *string
	FontWeight *FontWeight
	FontStyle  *FontStyle

	Src *string

	ShapeType       *ShapeType
	BackgroundColor *string

	Value *string
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}

// Fields returns the names of the fields present in the patch, sorted.
func (p Patch) Fields() []string {
	var names []string
	add := func(present bool, name string) {
		if present {
			names = append(names, name)
		}
	}
	add(p.X != nil, FieldX)
	add(p.Y != nil, FieldY)
	add(p.Width != nil, FieldWidth)
	add(p.Height != nil, FieldHeight)
	add(p.Rotation != nil, FieldRotation)
	add(p.ZIndex != nil, FieldZIndex)
	add(p.Text != nil, FieldText)
	add(p.FontSize != nil, FieldFontSize)
	add(p.FontFamily != nil, FieldFontFamily)
	add(p.Color != nil, FieldColor)
	add(p.FontWeight != nil, FieldFontWeight)
	add(p.FontStyle != nil, FieldFontStyle)
	add(p.Src != nil, FieldSrc)
	add(p.ShapeType != nil, FieldShapeType)
	add(p.BackgroundColor != nil, FieldBackgroundColor)
	add(p.Value != nil, FieldValue)
	sort.Strings(names)
	return names
}

// IsEmpty reports whether the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Apply merges p into e and returns the updated element.
//
// Fields that the element's variant does not define are not applied; their
// names are returned in ignored. The kind tag and id are always preserved.
// Width and height are clamped to MinDimension.
func Apply(e Element, p Patch) (updated Element, applied, ignored []string) {
	for _, name := range p.Fields() {
		if HasField(e.Kind(), name) {
			applied = append(applied, name)
		} else {
			ignored = append(ignored, name)
		}
	}

	b := e.Geometry()
	if p.X != nil {
		b.X = *p.X
	}
	if p.Y != nil {
		b.Y = *p.Y
	}
	if p.Width != nil {
		b.Width = ClampDimension(*p.Width)
	}
	if p.Height != nil {
		b.Height = ClampDimension(*p.Height)
	}
	if p.Rotation != nil {
		b.Rotation = *p.Rotation
	}
	if p.ZIndex != nil {
		b.ZIndex = *p.ZIndex
	}

	switch v := e.withBase(b).(type) {
	case Text:
		setIf(&v.Text, p.Text)
		if p.FontSize != nil {
			v.FontSize = ClampDimension(*p.FontSize)
		}
		setIf(&v.FontFamily, p.FontFamily)
		setIf(&v.Color, p.Color)
		setIf(&v.FontWeight, p.FontWeight)
		setIf(&v.FontStyle, p.FontStyle)
		updated = v
	case Image:
		setIf(&v.Src, p.Src)
		updated = v
	case Shape:
		setIf(&v.ShapeType, p.ShapeType)
		setIf(&v.BackgroundColor, p.BackgroundColor)
		updated = v
	case QRCode:
		setIf(&v.Value, p.Value)
		updated = v
	default:
		panic(fmt.Sprintf("element: unhandled variant %T", v))
	}
	return updated, applied, ignored
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// PatchFromMap builds a patch from loosely typed values keyed by field name,
// as produced by scripting bindings and decoded config documents.
func PatchFromMap(m map[string]any) (Patch, error) {
	var p Patch
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := m[k]
		var err error
		switch k {
		case FieldX:
			p.X, err = floatField(k, v)
		case FieldY:
			p.Y, err = floatField(k, v)
		case FieldWidth:
			p.Width, err = floatField(k, v)
		case FieldHeight:
			p.Height, err = floatField(k, v)
		case FieldRotation:
			p.Rotation, err = floatField(k, v)
		case FieldZIndex:
			var f *float64
			if f, err = floatField(k, v); err == nil {
				p.ZIndex = Ptr(zIndexFromFloat(*f))
			}
		case FieldText:
			p.Text, err = stringField(k, v)
		case FieldFontSize:
			p.FontSize, err = floatField(k, v)
		case FieldFontFamily:
			p.FontFamily, err = stringField(k, v)
		case FieldColor:
			p.Color, err = stringField(k, v)
		case FieldFontWeight:
			var s *string
			if s, err = stringField(k, v); err == nil {
				switch w := FontWeight(*s); w {
				case FontWeightNormal, FontWeightBold:
					p.FontWeight = &w
				default:
					err = fmt.Errorf("%w: %s must be normal or bold, got %q", ErrFieldType, k, *s)
				}
			}
		case FieldFontStyle:
			var s *string
			if s, err = stringField(k, v); err == nil {
				switch st := FontStyle(*s); st {
				case FontStyleNormal, FontStyleItalic:
					p.FontStyle = &st
				default:
					err = fmt.Errorf("%w: %s must be normal or italic, got %q", ErrFieldType, k, *s)
				}
			}
		case FieldSrc:
			p.Src, err = stringField(k, v)
		case FieldShapeType:
			var s *string
			if s, err = stringField(k, v); err == nil {
				switch st := ShapeType(*s); st {
				case ShapeRectangle, ShapeEllipse:
					p.ShapeType = &st
				default:
					err = fmt.Errorf("%w: %s must be rectangle or ellipse, got %q", ErrFieldType, k, *s)
				}
			}
		case FieldBackgroundColor:
			p.BackgroundColor, err = stringField(k, v)
		case FieldValue:
			p.Value, err = stringField(k, v)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownField, k)
		}
		if err != nil {
			return Patch{}, err
		}
	}
	return p, nil
}

func floatField(name string, v any) (*float64, error) {
	switch n := v.(type) {
	case float64:
		return &n, nil
	case float32:
		return Ptr(float64(n)), nil
	case int:
		return Ptr(float64(n)), nil
	case int64:
		return Ptr(float64(n)), nil
	case int32:
		return Ptr(float64(n)), nil
	}
	return nil, fmt.Errorf("%w: %s must be a number, got %T", ErrFieldType, name, v)
}

func stringField(name string, v any) (*string, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a string, got %T", ErrFieldType, name, v)
	}
	return &s, nil
}

// zIndexFromFloat rounds f to an int, saturating at the int range.
func zIndexFromFloat(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(math.Round(f))
}
