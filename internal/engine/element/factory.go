package element

import "github.com/google/uuid"

// Placement and size defaults applied by the factory.
const (
	DefaultX = 50.0
	DefaultY = 50.0

	DefaultTextWidth  = 150.0
	DefaultTextHeight = 50.0
	DefaultFontSize   = 16.0
	DefaultText       = "Your Text"

	DefaultShapeSize  = 100.0
	DefaultQRCodeSize = 100.0

	// MaxImageWidth caps the width of imported images. Larger images are
	// scaled down preserving aspect ratio; smaller ones are never scaled up.
	MaxImageWidth = 300.0
)

// Defaults holds the style values new elements start with.
type Defaults struct {
	FontFamily string
	FontSize   float64
	TextColor  string
	ShapeColor string
	QRValue    string
}

// DefaultDefaults returns the stock element style.
func DefaultDefaults() Defaults {
	return Defaults{
		FontFamily: "Inter",
		FontSize:   DefaultFontSize,
		TextColor:  "#000000",
		ShapeColor: "#3B82F6",
		QRValue:    "https://react.dev",
	}
}

// Factory creates new elements with fresh ids.
// The zero value is usable and generates UUIDs with the stock defaults.
type Factory struct {
	Defaults Defaults

	// NewID generates element ids. Defaults to uuid.NewString.
	NewID func() string
}

// NewFactory creates a factory with the given defaults.
func NewFactory(d Defaults) Factory {
	return Factory{Defaults: d, NewID: uuid.NewString}
}

func (f Factory) base(count int, w, h float64) Base {
	newID := f.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return Base{
		ID:     newID(),
		X:      DefaultX,
		Y:      DefaultY,
		Width:  w,
		Height: h,
		ZIndex: count + 1,
	}
}

func (f Factory) defaults() Defaults {
	d := f.Defaults
	stock := DefaultDefaults()
	if d.FontFamily == "" {
		d.FontFamily = stock.FontFamily
	}
	if !(d.FontSize > 0) {
		d.FontSize = stock.FontSize
	}
	if d.TextColor == "" {
		d.TextColor = stock.TextColor
	}
	if d.ShapeColor == "" {
		d.ShapeColor = stock.ShapeColor
	}
	if d.QRValue == "" {
		d.QRValue = stock.QRValue
	}
	return d
}

// Text creates a text element for a document holding count elements.
func (f Factory) Text(count int) Text {
	d := f.defaults()
	return Text{
		Base:       f.base(count, DefaultTextWidth, DefaultTextHeight),
		Text:       DefaultText,
		FontSize:   d.FontSize,
		FontFamily: d.FontFamily,
		Color:      d.TextColor,
		FontWeight: FontWeightNormal,
		FontStyle:  FontStyleNormal,
	}
}

// Shape creates a rectangle filled with the accent color.
func (f Factory) Shape(count int) Shape {
	return Shape{
		Base:            f.base(count, DefaultShapeSize, DefaultShapeSize),
		ShapeType:       ShapeRectangle,
		BackgroundColor: f.defaults().ShapeColor,
	}
}

// QRCode creates a QR code element encoding value.
func (f Factory) QRCode(count int, value string) QRCode {
	return QRCode{
		Base:  f.base(count, DefaultQRCodeSize, DefaultQRCodeSize),
		Value: value,
	}
}

// DefaultQRCode creates a QR code element encoding the default value.
func (f Factory) DefaultQRCode(count int) QRCode {
	return f.QRCode(count, f.defaults().QRValue)
}

// Image creates an image element from already-decoded natural dimensions.
func (f Factory) Image(count int, src string, naturalWidth, naturalHeight float64) Image {
	w, h := FitImage(naturalWidth, naturalHeight)
	return Image{
		Base: f.base(count, w, h),
		Src:  src,
	}
}

// FitImage caps the width at MaxImageWidth, scaling height to keep the aspect ratio.
func FitImage(naturalWidth, naturalHeight float64) (w, h float64) {
	if naturalWidth > MaxImageWidth {
		return MaxImageWidth, naturalHeight * MaxImageWidth / naturalWidth
	}
	return naturalWidth, naturalHeight
}
