// Package scripting lets a Lua file override event hazards.
package scripting

import (
	"fmt"
	"log/slog"

	lua "github.com/yuin/gopher-lua"

	"github.com/pthm-cable/horizon/systems"
)

// Engine wraps a single gopher-lua VM.
// Single-goroutine access only (game loop).
type Engine struct {
	vm *lua.LState
}

// NewEngine creates a VM and runs the script at path.
func NewEngine(path string) (*Engine, error) {
	e := newEngine()
	if err := e.vm.DoFile(path); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load hazard script %s: %w", path, err)
	}
	slog.Debug("loaded lua script", "file", path)
	return e, nil
}

// NewEngineFromString creates a VM and runs src.
func NewEngineFromString(src string) (*Engine, error) {
	e := newEngine()
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load hazard script: %w", err)
	}
	return e, nil
}

func newEngine() *Engine {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm}
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// FuncName returns the Lua global consulted for a kind.
func FuncName(kind systems.EventKind) string {
	return "hazard_" + kind.String()
}

// Has reports whether the script defines a hazard for kind.
func (e *Engine) Has(kind systems.EventKind) bool {
	_, ok := e.vm.GetGlobal(FuncName(kind)).(*lua.LFunction)
	return ok
}

// Hazard calls hazard_<kind>(m). The result is clamped to [0, 1].
func (e *Engine) Hazard(kind systems.EventKind, m systems.Metrics) (float64, error) {
	name := FuncName(kind)
	fn, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return 0, fmt.Errorf("lua function %s not found", name)
	}

	t := e.vm.NewTable()
	for k, v := range m.Fields() {
		t.RawSetString(k, lua.LNumber(v))
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return 0, fmt.Errorf("lua %s: %w", name, err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("lua %s returned %s, want number", name, result.Type())
	}
	p := float64(n)
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	return p, nil
}

// Install replaces the hazard of every kind the script defines. A failing
// call logs a warning and falls back to the built-in hazard for that
// evaluation. It returns the kinds overridden.
func (e *Engine) Install(ev *systems.EventSystem) []systems.EventKind {
	var installed []systems.EventKind
	for _, kind := range systems.EventKinds() {
		if !e.Has(kind) {
			continue
		}
		fallback := systems.BuiltinHazard(kind)
		ev.SetHazard(kind, func(m systems.Metrics) float64 {
			p, err := e.Hazard(kind, m)
			if err != nil {
				slog.Warn("hazard script failed, using built-in", "kind", kind.String(), "error", err)
				return fallback(m)
			}
			return p
		})
		installed = append(installed, kind)
	}
	return installed
}
