package loader

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/iw2rmb/inkwell/engine"
)

// runExtension executes a Lua script in a restricted state. The script sees
// a global "inkwell" table:
//
//	inkwell.define_theme(name, {base = "vs-dark", style = "monokai", colors = {...}})
//	inkwell.register_snippets(language, {{label = "...", insert_text = "...", kind = "..."}})
func runExtension(ctx context.Context, path string) (assets, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	L.SetContext(ctx)
	openSafeLibraries(L)

	a := assets{Source: path, Themes: make(map[string]engine.ThemeData)}

	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"define_theme": func(L *lua.LState) int {
			name := L.CheckString(1)
			def := L.CheckTable(2)
			data := engine.ThemeData{
				Base:   lua.LVAsString(def.RawGetString("base")),
				Style:  lua.LVAsString(def.RawGetString("style")),
				Colors: make(map[string]string),
			}
			if colors, ok := def.RawGetString("colors").(*lua.LTable); ok {
				colors.ForEach(func(k, v lua.LValue) {
					data.Colors[lua.LVAsString(k)] = lua.LVAsString(v)
				})
			}
			a.Themes[name] = data
			return 0
		},
		"register_snippets": func(L *lua.LState) int {
			set := engine.SnippetSet{Language: L.CheckString(1)}
			L.CheckTable(2).ForEach(func(_, v lua.LValue) {
				t, ok := v.(*lua.LTable)
				if !ok {
					return
				}
				set.Suggestions = append(set.Suggestions, engine.Suggestion{
					Label:         lua.LVAsString(t.RawGetString("label")),
					Kind:          lua.LVAsString(t.RawGetString("kind")),
					InsertText:    lua.LVAsString(t.RawGetString("insert_text")),
					Detail:        lua.LVAsString(t.RawGetString("detail")),
					Documentation: lua.LVAsString(t.RawGetString("documentation")),
				})
			})
			a.Snippets = append(a.Snippets, set)
			return 0
		},
	})
	L.SetGlobal("inkwell", mod)

	if err := L.DoFile(path); err != nil {
		return assets{}, &FileError{Path: path, Err: err}
	}
	return a, nil
}

// openSafeLibraries opens the base, table, string, and math libraries only.
// io, os, debug, and package stay closed.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}
