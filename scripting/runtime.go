// Package scripting hosts the Lua side of the component bridge: the runtime
// owning the interpreter state, the entity binding script code dispatches
// through, and script execution helpers.
package scripting

import (
	"strings"

	lua "github.com/Shopify/go-lua"
	"github.com/rotisserie/eris"

	"github.com/Aswin-programmer/Flecs-TRY2/component"
	"github.com/Aswin-programmer/Flecs-TRY2/ecs"
	"github.com/Aswin-programmer/Flecs-TRY2/log"
	"github.com/Aswin-programmer/Flecs-TRY2/types"
)

// Runtime couples one Lua state with one entity store and one component
// registry. It is explicitly constructed and passed where needed; there is no
// process-global state. Script execution and adapter calls run on the caller's
// goroutine, synchronously.
type Runtime struct {
	state   *lua.State
	world   *ecs.World
	manager *component.Manager
	logger  log.Logger
}

type Option func(*Runtime)

// WithLogger sets the logger used for script lifecycle events.
func WithLogger(logger log.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// NewRuntime creates a Lua runtime bound to the given world and registry.
// Adapters already present in the registry are bound into the state.
func NewRuntime(world *ecs.World, manager *component.Manager, opts ...Option) (*Runtime, error) {
	r := &Runtime{
		state:   lua.NewState(),
		world:   world,
		manager: manager,
		logger:  log.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	lua.OpenLibraries(r.state)
	r.registerEntityType()
	for _, adapter := range manager.GetAdapters() {
		if err := adapter.Bind(r.state); err != nil {
			return nil, eris.Wrap(err, adapter.Name())
		}
	}
	return r, nil
}

// RegisterComponent registers the adapter with the registry and installs its
// Lua surface into this runtime's state.
func (r *Runtime) RegisterComponent(adapter component.Adapter) error {
	if err := r.manager.Register(adapter); err != nil {
		return err
	}
	if err := adapter.Bind(r.state); err != nil {
		return eris.Wrap(err, adapter.Name())
	}
	r.logger.Debug().
		Str("component_name", adapter.Name()).
		Int("component_id", int(adapter.ID())).
		Msg("component bound")
	return nil
}

// BindEntity exposes the entity to script code as a global with the given
// name.
func (r *Runtime) BindEntity(globalName string, id types.EntityID) error {
	if !r.world.Exists(id) {
		return ecs.ErrEntityDoesNotExist
	}
	r.pushEntity(id)
	r.state.SetGlobal(globalName)
	return nil
}

// RunScript executes Lua source. Script errors, including errors raised by
// adapter calls, come back as Go errors; the interpreter state survives them.
func (r *Runtime) RunScript(name, source string) error {
	scriptLogger := r.logger.CreateScriptLogger(name)
	top := r.state.Top()
	if err := r.state.Load(strings.NewReader(source), name, ""); err != nil {
		r.state.SetTop(top)
		return eris.Wrapf(err, "load script %s", name)
	}
	if err := r.state.ProtectedCall(0, 0, 0); err != nil {
		r.state.SetTop(top)
		return eris.Wrapf(err, "run script %s", name)
	}
	scriptLogger.Debug().Msg("script finished")
	return nil
}

// RunFile executes the Lua script at path.
func (r *Runtime) RunFile(path string) error {
	scriptLogger := r.logger.CreateScriptLogger(path)
	top := r.state.Top()
	if err := lua.LoadFile(r.state, path, ""); err != nil {
		r.state.SetTop(top)
		return eris.Wrapf(err, "load script %s", path)
	}
	if err := r.state.ProtectedCall(0, 0, 0); err != nil {
		r.state.SetTop(top)
		return eris.Wrapf(err, "run script %s", path)
	}
	scriptLogger.Debug().Msg("script finished")
	return nil
}

// World returns the entity store this runtime dispatches into.
func (r *Runtime) World() *ecs.World {
	return r.world
}

// Manager returns the component registry this runtime dispatches through.
func (r *Runtime) Manager() *component.Manager {
	return r.manager
}
