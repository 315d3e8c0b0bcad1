package element

import (
	"fmt"
	"math"
)

// Kind discriminates the element variants.
type Kind string

// Element kinds.
const (
	KindText   Kind = "text"
	KindImage  Kind = "image"
	KindShape  Kind = "shape"
	KindQRCode Kind = "qrcode"
)

// Kinds lists every element kind in toolbar order.
var Kinds = []Kind{KindText, KindImage, KindShape, KindQRCode}

// String returns the kind tag.
func (k Kind) String() string {
	return string(k)
}

// ParseKind parses a kind tag.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindText, KindImage, KindShape, KindQRCode:
		return Kind(s), nil
	case "qr", "qr_code", "qr-code":
		return KindQRCode, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MinDimension is the smallest width or height an element may have.
// Zero-size elements cannot be selected or rendered.
const MinDimension = 1.0

// Base holds the geometry shared by every variant.
type Base struct {
	// ID is immutable for the lifetime of the element.
	ID string

	X, Y          float64
	Width, Height float64

	// Rotation is in degrees and is never normalized.
	Rotation float64

	// ZIndex orders painting; higher paints later.
	ZIndex int
}

// Element is one object placed on the canvas.
//
// The variant set is closed: Text, Image, Shape and QRCode are the only
// implementations. Use a Visitor for exhaustive handling.
type Element interface {
	// Kind returns the variant tag.
	Kind() Kind

	// Geometry returns the shared fields.
	Geometry() Base

	// Accept dispatches to the matching Visitor method.
	Accept(v Visitor)

	withBase(b Base) Element
}

// Visitor handles every element variant.
type Visitor interface {
	VisitText(Text)
	VisitImage(Image)
	VisitShape(Shape)
	VisitQRCode(QRCode)
}

// FontWeight is the weight of a text element.
type FontWeight string

// Font weights.
const (
	FontWeightNormal FontWeight = "normal"
	FontWeightBold   FontWeight = "bold"
)

// FontStyle is the style of a text element.
type FontStyle string

// Font styles.
const (
	FontStyleNormal FontStyle = "normal"
	FontStyleItalic FontStyle = "italic"
)

// ShapeType selects the outline of a shape element.
type ShapeType string

// Shape types.
const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeEllipse   ShapeType = "ellipse"
)

// FontFamilies are the families offered by the property panel.
var FontFamilies = []string{"Inter", "Arial", "Georgia", "Times New Roman"}

// Text is a block of styled text.
type Text struct {
	Base
	Text       string
	FontSize   float64
	FontFamily string
	Color      string
	FontWeight FontWeight
	FontStyle  FontStyle
}

// Image displays raster data referenced by Src.
type Image struct {
	Base
	// Src is an opaque reference such as a data URI.
	Src string
}

// Shape is a filled rectangle or ellipse.
type Shape struct {
	Base
	ShapeType       ShapeType
	BackgroundColor string
}

// QRCode encodes Value as a QR symbol. An empty value is legal.
type QRCode struct {
	Base
	Value string
}

func (Text) Kind() Kind   { return KindText }
func (Image) Kind() Kind  { return KindImage }
func (Shape) Kind() Kind  { return KindShape }
func (QRCode) Kind() Kind { return KindQRCode }

func (e Text) Geometry() Base   { return e.Base }
func (e Image) Geometry() Base  { return e.Base }
func (e Shape) Geometry() Base  { return e.Base }
func (e QRCode) Geometry() Base { return e.Base }

func (e Text) Accept(v Visitor)   { v.VisitText(e) }
func (e Image) Accept(v Visitor)  { v.VisitImage(e) }
func (e Shape) Accept(v Visitor)  { v.VisitShape(e) }
func (e QRCode) Accept(v Visitor) { v.VisitQRCode(e) }

func (e Text) withBase(b Base) Element   { e.Base = b; return e }
func (e Image) withBase(b Base) Element  { e.Base = b; return e }
func (e Shape) withBase(b Base) Element  { e.Base = b; return e }
func (e QRCode) withBase(b Base) Element { e.Base = b; return e }

// ID returns the element's identifier.
func ID(e Element) string {
	return e.Geometry().ID
}

// ZIndex returns the element's stacking order.
func ZIndex(e Element) int {
	return e.Geometry().ZIndex
}

// WithZIndex returns a copy of e with only the zIndex replaced.
func WithZIndex(e Element, z int) Element {
	b := e.Geometry()
	b.ZIndex = z
	return e.withBase(b)
}

// ClampDimension returns d, or MinDimension when d is too small or NaN.
func ClampDimension(d float64) float64 {
	if math.IsNaN(d) || d < MinDimension {
		return MinDimension
	}
	return d
}
