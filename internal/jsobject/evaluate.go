package jsobject

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dop251/goja"
)

const evalTimeout = 2 * time.Second

// Evaluate runs the player script against a stub window object and reads back the
// playlist globals. It tolerates any script shape the JavaScript grammar accepts, at
// the cost of executing the page's code.
func Evaluate(script string) (*Descriptor, error) {
	vm := goja.New()
	window := vm.NewObject()
	if err := vm.Set("window", window); err != nil {
		return nil, err
	}
	if err := vm.Set("self", window); err != nil {
		return nil, err
	}

	timer := time.AfterFunc(evalTimeout, func() {
		vm.Interrupt("player script timed out")
	})
	defer timer.Stop()

	if _, err := vm.RunString(script); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	globals := map[string]any{}
	for _, name := range []string{"masterPlaylist", "canPlayFHD"} {
		v := window.Get(name)
		if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
			continue
		}
		globals[name] = v.Export()
	}

	if _, ok := globals["masterPlaylist"]; !ok {
		return nil, ErrNoAssignments
	}

	data, err := json.Marshal(globals)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return unmarshal(data)
}
