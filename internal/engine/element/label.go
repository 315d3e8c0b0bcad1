package element

import "fmt"

// maxLabelRunes bounds the text shown for text elements in layer lists.
const maxLabelRunes = 20

// Label returns a short human-readable name for e, as shown in a layers list.
func Label(e Element) string {
	var l labeler
	e.Accept(&l)
	return l.label
}

type labeler struct {
	label string
}

func (l *labeler) VisitText(t Text) {
	r := []rune(t.Text)
	if len(r) > maxLabelRunes {
		r = r[:maxLabelRunes]
	}
	l.label = string(r)
	if l.label == "" {
		l.label = "Text"
	}
}

func (l *labeler) VisitImage(Image) {
	l.label = "Image"
}

func (l *labeler) VisitShape(s Shape) {
	l.label = fmt.Sprintf("Shape (%s)", s.ShapeType)
}

func (l *labeler) VisitQRCode(QRCode) {
	l.label = "QR Code"
}
