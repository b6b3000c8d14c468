package main

import (
	_ "embed"
	"os"

	lua "github.com/Shopify/go-lua"
	"github.com/rs/zerolog"

	"github.com/Aswin-programmer/Flecs-TRY2/component"
	"github.com/Aswin-programmer/Flecs-TRY2/ecs"
	"github.com/Aswin-programmer/Flecs-TRY2/log"
	"github.com/Aswin-programmer/Flecs-TRY2/scripting"
	"github.com/Aswin-programmer/Flecs-TRY2/storage"
	storageredis "github.com/Aswin-programmer/Flecs-TRY2/storage/redis"
	"github.com/Aswin-programmer/Flecs-TRY2/types"
)

//go:embed demo.lua
var demoScript string

// Transform is the classic 2-float component from the demo script.
type Transform struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (Transform) Name() string { return "Transform" }

// Tracker owns a shared resource whose release is observable in the log. It
// exists to show that removing the component releases the resource
// synchronously, at the removeComponent call.
type Tracker struct {
	X int `json:"x"`
	Y int `json:"y"`

	handle *types.Resource
}

func (Tracker) Name() string { return "Tracker" }

func (t Tracker) Release() { t.handle.Release() }

func main() {
	cfg := LoadConfig()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := log.New(zerolog.ConsoleWriter{Out: os.Stderr}, level)

	var schemaStorage storage.SchemaStorage
	if cfg.RedisAddress != "" {
		redisStorage := storageredis.NewSchemaStorage(storageredis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
		})
		defer redisStorage.Close()
		schemaStorage = &redisStorage
	} else {
		schemaStorage = storage.NewMapSchemaStorage()
	}

	world := ecs.NewWorld(ecs.WithLogger(logger))
	manager := component.NewManager(schemaStorage)
	runtime, err := scripting.NewRuntime(world, manager, scripting.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create runtime")
	}

	transform, err := component.NewAdapter[Transform]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Transform adapter")
	}
	tracker, err := component.NewAdapter[Tracker](
		component.WithConstructor(func(l *lua.State) (*Tracker, error) {
			x := lua.CheckInteger(l, 1)
			y := lua.CheckInteger(l, 2)
			logger.Info().Msg("tracker resource acquired")
			return &Tracker{
				X: x,
				Y: y,
				handle: types.NewResource(func() {
					logger.Info().Msg("tracker resource released")
				}),
			}, nil
		}),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Tracker adapter")
	}
	dynamic, err := component.NewDynamicAdapter()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create dynamic adapter")
	}
	for _, adapter := range []component.Adapter{transform, tracker, dynamic} {
		if err := runtime.RegisterComponent(adapter); err != nil {
			logger.Fatal().Err(err).Str("component_name", adapter.Name()).Msg("failed to register component")
		}
	}

	player := world.CreateEntity()
	if err := runtime.BindEntity("player", player); err != nil {
		logger.Fatal().Err(err).Msg("failed to bind player entity")
	}

	if cfg.ScriptPath != "" {
		err = runtime.RunFile(cfg.ScriptPath)
	} else {
		err = runtime.RunScript("demo", demoScript)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("script failed")
	}

	logger.LogEntity(zerolog.InfoLevel, world, player)
}
