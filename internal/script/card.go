package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quickcard/internal/engine"
	"github.com/dshills/quickcard/internal/engine/element"
)

// Editor is the editing surface scripts drive. *app.App implements it.
type Editor interface {
	Add(kind element.Kind) (element.Element, error)
	AddQRCode(value string) (element.QRCode, error)
	AddImageFile(path string) (element.Image, error)
	UpdateElement(id string, p element.Patch) bool
	DeleteElement(id string) bool
	ReorderLayer(id string, d engine.Direction) bool
	Undo() bool
	Redo() bool
	CanUndo() bool
	CanRedo() bool
	Select(id string) error
	ClearSelection() uint64
	Selected() string
	Elements() []element.Element
	Find(id string) (element.Element, bool)
}

// installCard registers the global card table.
func (r *Runner) installCard() {
	mod := r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"add":       r.cardAdd,
		"add_image": r.cardAddImage,
		"update":    r.cardUpdate,
		"delete":    r.cardDelete,
		"reorder":   r.cardReorder,
		"undo":      func(L *lua.LState) int { L.Push(lua.LBool(r.editor.Undo())); return 1 },
		"redo":      func(L *lua.LState) int { L.Push(lua.LBool(r.editor.Redo())); return 1 },
		"can_undo":  func(L *lua.LState) int { L.Push(lua.LBool(r.editor.CanUndo())); return 1 },
		"can_redo":  func(L *lua.LState) int { L.Push(lua.LBool(r.editor.CanRedo())); return 1 },
		"select":    r.cardSelect,
		"deselect":  func(L *lua.LState) int { r.editor.ClearSelection(); return 0 },
		"selected":  r.cardSelected,
		"get":       r.cardGet,
		"elements":  r.cardElements,
	})

	kinds := r.L.NewTable()
	for _, k := range []element.Kind{element.KindText, element.KindImage, element.KindShape, element.KindQRCode} {
		kinds.Append(lua.LString(k))
	}
	r.L.SetField(mod, "kinds", kinds)

	families := r.L.NewTable()
	for _, f := range element.FontFamilies {
		families.Append(lua.LString(f))
	}
	r.L.SetField(mod, "font_families", families)

	r.L.SetGlobal("card", mod)
}

// card.add(kind [, value]) -> id
// For qrcode, value is the encoded text; for image, a file path.
func (r *Runner) cardAdd(L *lua.LState) int {
	kind, err := element.ParseKind(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}

	var el element.Element
	switch {
	case kind == element.KindQRCode && L.GetTop() >= 2:
		el, err = r.editor.AddQRCode(L.CheckString(2))
	case kind == element.KindImage && L.GetTop() >= 2:
		el, err = r.editor.AddImageFile(L.CheckString(2))
	default:
		el, err = r.editor.Add(kind)
	}
	if err != nil {
		L.RaiseError("card.add: %v", err)
		return 0
	}
	L.Push(lua.LString(element.ID(el)))
	return 1
}

// card.add_image(path) -> id
func (r *Runner) cardAddImage(L *lua.LState) int {
	img, err := r.editor.AddImageFile(L.CheckString(1))
	if err != nil {
		L.RaiseError("card.add_image: %v", err)
		return 0
	}
	L.Push(lua.LString(img.ID))
	return 1
}

// card.update(id, fields) -> committed
func (r *Runner) cardUpdate(L *lua.LState) int {
	id := L.CheckString(1)
	p, err := patchFromTable(L.CheckTable(2))
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	L.Push(lua.LBool(r.editor.UpdateElement(id, p)))
	return 1
}

// card.delete(id) -> committed
func (r *Runner) cardDelete(L *lua.LState) int {
	L.Push(lua.LBool(r.editor.DeleteElement(L.CheckString(1))))
	return 1
}

// card.reorder(id, "up"|"down"|"front"|"back") -> committed
func (r *Runner) cardReorder(L *lua.LState) int {
	id := L.CheckString(1)
	d, err := engine.ParseDirection(L.CheckString(2))
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	L.Push(lua.LBool(r.editor.ReorderLayer(id, d)))
	return 1
}

// card.select(id) -> ok
func (r *Runner) cardSelect(L *lua.LState) int {
	L.Push(lua.LBool(r.editor.Select(L.CheckString(1)) == nil))
	return 1
}

// card.selected() -> id or nil
func (r *Runner) cardSelected(L *lua.LState) int {
	if id := r.editor.Selected(); id != "" {
		L.Push(lua.LString(id))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}

// card.get(id) -> element table or nil
func (r *Runner) cardGet(L *lua.LState) int {
	el, ok := r.editor.Find(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(elementTable(L, el))
	return 1
}

// card.elements() -> array of element tables in paint order
func (r *Runner) cardElements(L *lua.LState) int {
	t := L.NewTable()
	for _, el := range r.editor.Elements() {
		t.Append(elementTable(L, el))
	}
	L.Push(t)
	return 1
}
