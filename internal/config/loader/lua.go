package loader

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultLuaTimeout bounds how long a settings script may run.
const DefaultLuaTimeout = 2 * time.Second

// LuaLoader loads configuration from Lua settings scripts.
//
// The script either returns a table or assigns the global "settings":
//
//	settings = { tab_size = 8, vimdentation_indent_size = 4 }
//
// Scripts run in a sandbox with only the base, table, string and math
// libraries opened.
type LuaLoader struct {
	fs      FileSystem
	path    string
	timeout time.Duration
}

// NewLuaLoader creates a new Lua loader for the given path.
func NewLuaLoader(path string) *LuaLoader {
	return &LuaLoader{fs: DefaultFS(), path: path, timeout: DefaultLuaTimeout}
}

// Load reads configuration from the configured path.
func (l *LuaLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom runs the script at path.
func (l *LuaLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := readFile(l.fs, path)
	if err != nil || data == nil {
		return nil, err
	}
	return l.run(path, string(data))
}

// LoadFromReader runs a script read from r.
func (l *LuaLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return l.run("<reader>", string(data))
}

func (l *LuaLoader) run(source, script string) (map[string]any, error) {
	L := newSandbox()
	defer L.Close()

	timeout := l.timeout
	if timeout <= 0 {
		timeout = DefaultLuaTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	L.SetContext(ctx)

	fn, err := L.LoadString(script)
	if err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	ret := L.Get(-1)
	L.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		tbl, ok = L.GetGlobal("settings").(*lua.LTable)
	}
	if !ok {
		return nil, &ParseError{
			Path:    source,
			Message: "script must return a table or assign the global 'settings'",
		}
	}

	config, ok := fromLua(tbl).(map[string]any)
	if !ok {
		return nil, &ParseError{Path: source, Message: "settings table must have string keys"}
	}
	return config, nil
}

// newSandbox creates a state with only the safe standard libraries.
func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
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

	// The base library can still reach the file system.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// fromLua converts a Lua value to its Go equivalent.
// Integral numbers become int64; tables with keys 1..n become slices.
func fromLua(lv lua.LValue) any {
	switch v := lv.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		return tableFromLua(v)
	default:
		return fmt.Sprint(lv)
	}
}

func tableFromLua(tbl *lua.LTable) any {
	if n := tbl.MaxN(); n > 0 {
		arr := make([]any, 0, n)
		for i := 1; i <= n; i++ {
			arr = append(arr, fromLua(tbl.RawGetInt(i)))
		}
		return arr
	}

	m := make(map[string]any)
	stringKeys := true
	tbl.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			stringKeys = false
			return
		}
		m[string(key)] = fromLua(v)
	})
	if !stringKeys {
		return nil
	}
	return m
}
