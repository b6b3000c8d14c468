package scripting_test

import (
	"testing"

	lua "github.com/Shopify/go-lua"

	"github.com/Aswin-programmer/Flecs-TRY2/assert"
	"github.com/Aswin-programmer/Flecs-TRY2/component"
	"github.com/Aswin-programmer/Flecs-TRY2/ecs"
	"github.com/Aswin-programmer/Flecs-TRY2/scripting"
	"github.com/Aswin-programmer/Flecs-TRY2/storage"
	"github.com/Aswin-programmer/Flecs-TRY2/types"
)

type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (Vec2) Name() string { return "Vec2" }

type Nameplate struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

func (Nameplate) Name() string { return "Nameplate" }

// guard owns a release-observable resource, standing in for any component that
// owns something with a destructor.
type guard struct {
	Strength int `json:"strength"`

	handle *types.Resource
}

func (guard) Name() string { return "Guard" }

func (g guard) Release() { g.handle.Release() }

func newTestRuntime(t *testing.T, adapters ...component.Adapter) (*scripting.Runtime, *ecs.World) {
	t.Helper()
	world := ecs.NewWorld()
	manager := component.NewManager(storage.NewMapSchemaStorage())
	runtime, err := scripting.NewRuntime(world, manager)
	assert.NilError(t, err)
	for _, adapter := range adapters {
		assert.NilError(t, runtime.RegisterComponent(adapter))
	}
	return runtime, world
}

func newVec2Adapter(t *testing.T) component.Adapter {
	t.Helper()
	adapter, err := component.NewAdapter[Vec2]()
	assert.NilError(t, err)
	return adapter
}

// newGuardAdapter returns an adapter whose constructed components all share
// the released counter: the counter increments when a stored guard's resource
// is freed.
func newGuardAdapter(t *testing.T, released *int) component.Adapter {
	t.Helper()
	adapter, err := component.NewAdapter[guard](
		component.WithConstructor(func(l *lua.State) (*guard, error) {
			strength := lua.CheckInteger(l, 1)
			return &guard{
				Strength: strength,
				handle:   types.NewResource(func() { *released++ }),
			}, nil
		}),
	)
	assert.NilError(t, err)
	return adapter
}

func TestEntityID(t *testing.T) {
	runtime, world := newTestRuntime(t)
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	assert.NilError(t, runtime.RunScript("id", `assert(player:id() == 1)`))
}

func TestBindEntityRequiresLiveEntity(t *testing.T) {
	runtime, _ := newTestRuntime(t)
	err := runtime.BindEntity("ghost", types.EntityID(99))
	assert.ErrorIs(t, err, ecs.ErrEntityDoesNotExist)
}

func TestAddGetMutateRemoveRoundTrip(t *testing.T) {
	runtime, world := newTestRuntime(t, newVec2Adapter(t))
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	assert.NilError(t, runtime.RunScript("add", `
		player:addComponent("Vec2", Vec2(5, 10))
		local v = player:getComponent("Vec2")
		assert(v.x == 5 and v.y == 10)
		v.x = 42
		v.y = 128
	`))

	// The script wrote through the aliased handle; storage must see it.
	stored, err := ecs.GetComponent[Vec2](world, player)
	assert.NilError(t, err)
	assert.Equal(t, *stored, Vec2{X: 42, Y: 128})

	assert.NilError(t, runtime.RunScript("remove", `
		player:removeComponent("Vec2")
		assert(player:getComponent("Vec2") == nil)
	`))
	assert.False(t, ecs.HasComponent[Vec2](world, player))
}

func TestHandlesAliasEachOther(t *testing.T) {
	runtime, world := newTestRuntime(t, newVec2Adapter(t))
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	assert.NilError(t, runtime.RunScript("alias", `
		player:addComponent("Vec2", Vec2(1, 2))
		local a = player:getComponent("Vec2")
		local b = player:getComponent("Vec2")
		a.x = 7
		assert(b.x == 7)
	`))
}

func TestNativeMutationVisibleToScript(t *testing.T) {
	runtime, world := newTestRuntime(t, newVec2Adapter(t))
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	assert.NilError(t, runtime.RunScript("add", `
		player:addComponent("Vec2", Vec2(1, 2))
		handle = player:getComponent("Vec2")
	`))

	stored, err := ecs.GetComponent[Vec2](world, player)
	assert.NilError(t, err)
	stored.Y = 64

	assert.NilError(t, runtime.RunScript("read", `assert(handle.y == 64)`))
}

func TestResourceReleasedOnceAtRemove(t *testing.T) {
	released := 0
	runtime, world := newTestRuntime(t, newGuardAdapter(t, &released))
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	assert.NilError(t, runtime.RunScript("add", `
		player:addComponent("Guard", Guard(9))
		local a = player:getComponent("Guard")
		local b = player:getComponent("Guard")
		local c = player:getComponent("Guard")
		assert(a.strength == 9 and b.strength == 9 and c.strength == 9)
	`))
	assert.Equal(t, released, 0)

	assert.NilError(t, runtime.RunScript("remove", `player:removeComponent("Guard")`))
	assert.Equal(t, released, 1)

	// Removing again is a no-op and must not release twice.
	assert.NilError(t, runtime.RunScript("again", `player:removeComponent("Guard")`))
	assert.Equal(t, released, 1)
}

func TestAddConsumesConstructedValue(t *testing.T) {
	released := 0
	runtime, world := newTestRuntime(t, newGuardAdapter(t, &released))
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	// Adding the same constructed value twice must fail: storage took sole
	// ownership at the first add, and a second stored copy would share the
	// first one's resource.
	err := runtime.RunScript("twice", `
		local g = Guard(9)
		player:addComponent("Guard", g)
		player:addComponent("Guard", g)
	`)
	assert.ErrorContains(t, err, "already consumed")
	assert.Equal(t, released, 0)

	// The first add survives, and removal still releases exactly once.
	assert.NilError(t, runtime.RunScript("check", `
		assert(player:getComponent("Guard").strength == 9)
		player:removeComponent("Guard")
	`))
	assert.Equal(t, released, 1)

	assert.NilError(t, runtime.RunScript("again", `player:removeComponent("Guard")`))
	assert.Equal(t, released, 1)
}

func TestAddCannotSpanEntities(t *testing.T) {
	released := 0
	runtime, world := newTestRuntime(t, newGuardAdapter(t, &released))
	first := world.CreateEntity()
	second := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("first", first))
	assert.NilError(t, runtime.BindEntity("second", second))

	err := runtime.RunScript("span", `
		local g = Guard(1)
		first:addComponent("Guard", g)
		second:addComponent("Guard", g)
	`)
	assert.ErrorContains(t, err, "already consumed")
	assert.True(t, ecs.HasComponent[guard](world, first))
	assert.False(t, ecs.HasComponent[guard](world, second))

	assert.NilError(t, runtime.RunScript("remove", `first:removeComponent("Guard")`))
	assert.Equal(t, released, 1)
}

func TestStorageHandleIsNotAddable(t *testing.T) {
	runtime, world := newTestRuntime(t, newVec2Adapter(t))
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	err := runtime.RunScript("readd", `
		player:addComponent("Vec2", Vec2(1, 2))
		player:addComponent("Vec2", player:getComponent("Vec2"))
	`)
	assert.ErrorContains(t, err, "already consumed")

	stored, err := ecs.GetComponent[Vec2](world, player)
	assert.NilError(t, err)
	assert.Equal(t, *stored, Vec2{X: 1, Y: 2})
}

func TestOverwriteReleasesPreviousComponent(t *testing.T) {
	released := 0
	runtime, world := newTestRuntime(t, newGuardAdapter(t, &released))
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	assert.NilError(t, runtime.RunScript("overwrite", `
		player:addComponent("Guard", Guard(1))
		player:addComponent("Guard", Guard(2))
		assert(player:getComponent("Guard").strength == 2)
	`))
	assert.Equal(t, released, 1)

	assert.NilError(t, runtime.RunScript("remove", `player:removeComponent("Guard")`))
	assert.Equal(t, released, 2)
}

func TestUnknownComponentName(t *testing.T) {
	runtime, world := newTestRuntime(t, newVec2Adapter(t))
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	// getComponent on an unknown name is the non-error empty result.
	assert.NilError(t, runtime.RunScript("get", `assert(player:getComponent("DoesNotExist") == nil)`))

	// addComponent and removeComponent surface unknown names as errors.
	err := runtime.RunScript("add", `player:addComponent("DoesNotExist", Vec2(1, 2))`)
	assert.ErrorContains(t, err, "unknown component")
	err = runtime.RunScript("remove", `player:removeComponent("DoesNotExist")`)
	assert.ErrorContains(t, err, "unknown component")

	// Neither failed call mutated entity state.
	assert.Len(t, world.ComponentNames(player), 0)
}

func TestTypeMismatchAbortsAdd(t *testing.T) {
	runtime, world := newTestRuntime(t, newVec2Adapter(t))
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	err := runtime.RunScript("scalar", `player:addComponent("Vec2", 42)`)
	assert.ErrorContains(t, err, "Vec2")
	assert.False(t, ecs.HasComponent[Vec2](world, player))

	err = runtime.RunScript("table", `player:addComponent("Vec2", { x = 1, y = 2 })`)
	assert.ErrorContains(t, err, "Vec2")
	assert.False(t, ecs.HasComponent[Vec2](world, player))
}

func TestConstructorFillsFieldsPositionally(t *testing.T) {
	runtime, world := newTestRuntime(t, newVec2Adapter(t))
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	assert.NilError(t, runtime.RunScript("defaults", `
		local zero = Vec2()
		assert(zero.x == 0 and zero.y == 0)
		local partial = Vec2(3)
		assert(partial.x == 3 and partial.y == 0)
	`))
}

func TestWritingUnknownFieldFails(t *testing.T) {
	runtime, world := newTestRuntime(t, newVec2Adapter(t))
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	err := runtime.RunScript("field", `
		player:addComponent("Vec2", Vec2(1, 2))
		local v = player:getComponent("Vec2")
		v.z = 3
	`)
	assert.ErrorContains(t, err, "no field")
}

func TestStringAndBoolFields(t *testing.T) {
	adapter, err := component.NewAdapter[Nameplate]()
	assert.NilError(t, err)
	runtime, world := newTestRuntime(t, adapter)
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	assert.NilError(t, runtime.RunScript("nameplate", `
		player:addComponent("Nameplate", Nameplate("Hero", true))
		local n = player:getComponent("Nameplate")
		assert(n.text == "Hero")
		assert(n.visible == true)
		n.visible = false
	`))

	stored, err := ecs.GetComponent[Nameplate](world, player)
	assert.NilError(t, err)
	assert.Equal(t, *stored, Nameplate{Text: "Hero", Visible: false})
}

func TestScriptErrorLeavesRuntimeUsable(t *testing.T) {
	runtime, world := newTestRuntime(t, newVec2Adapter(t))
	player := world.CreateEntity()
	assert.NilError(t, runtime.BindEntity("player", player))

	err := runtime.RunScript("bad", `error("boom")`)
	assert.ErrorContains(t, err, "boom")

	assert.NilError(t, runtime.RunScript("good", `
		player:addComponent("Vec2", Vec2(1, 1))
		assert(player:getComponent("Vec2").x == 1)
	`))
}

func TestDuplicateRegistrationThroughRuntime(t *testing.T) {
	runtime, _ := newTestRuntime(t, newVec2Adapter(t))

	err := runtime.RegisterComponent(newVec2Adapter(t))
	assert.ErrorIs(t, err, component.ErrDuplicateRegistration)
}
