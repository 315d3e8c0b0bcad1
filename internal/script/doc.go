// Package script runs Lua card scripts against the editor.
//
// Scripts execute in a sandboxed gopher-lua state: only the base, table,
// string and math libraries are available, file loading functions are
// removed and each run is bounded by a timeout. The editor is exposed as
// the global "card" table:
//
//	local id = card.add("text")
//	card.update(id, { text = "Ada Lovelace", fontSize = 24, x = 40 })
//	card.add("qrcode", "https://example.com")
//	card.reorder(id, "front")
//	for _, el in ipairs(card.elements()) do print(el.id, el.type) end
//
// Every card function that edits the document maps to exactly one editor
// verb, so each successful call is one undo step.
package script
