// Package main is a headless runner: it loads a scene file, inserts
// Mario, and ticks the simulation until interrupted. Edits to the scene
// file respawn Mario into the rewritten level.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/softquake/sm64bridge/internal/bridge"
	"github.com/softquake/sm64bridge/internal/camera"
	"github.com/softquake/sm64bridge/internal/config"
	"github.com/softquake/sm64bridge/internal/geometry"
	"github.com/softquake/sm64bridge/internal/logger"
	"github.com/softquake/sm64bridge/internal/scene"
	"github.com/softquake/sm64bridge/pkg/math"
)

var (
	flagScene  = flag.String("scene", "scene.yaml", "Path to the scene file")
	flagSpawnX = flag.Float64("x", 0, "Spawn X in host coordinates")
	flagSpawnY = flag.Float64("y", 0, "Spawn Y in host coordinates")
	flagSpawnZ = flag.Float64("z", 1, "Spawn Z in host coordinates")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	spawn := math.Vec3{
		X: float32(*flagSpawnX),
		Y: float32(*flagSpawnY),
		Z: float32(*flagSpawnZ),
	}

	if err := run(cfg, *flagScene, spawn); err != nil {
		logger.Error("runner failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("runner stopped")
}

func run(cfg *config.Config, scenePath string, spawn math.Vec3) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating scene watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(scenePath); err != nil {
		return fmt.Errorf("watching %s: %w", scenePath, err)
	}

	mesh := geometry.NewBufferMesh()

	for {
		scn, err := scene.LoadFile(scenePath)
		if err != nil {
			return fmt.Errorf("loading scene: %w", err)
		}

		cam := camera.NewFollow()
		cam.Center = spawn
		b, err := bridge.Insert(cfg, scn, spawn, mesh, bridge.Options{
			CamLook: cam.Look,
			Follower: bridge.FollowerFunc(func(pos math.Vec3) {
				cam.Follow(pos)
				logger.Debug("mario",
					zap.Float32("x", pos.X),
					zap.Float32("y", pos.Y),
					zap.Float32("z", pos.Z))
			}),
		})
		if err != nil {
			return err
		}

		reload := tickUntilChanged(ctx, b, watcher, scenePath)
		b.Remove()

		if !reload {
			return nil
		}
		logger.Info("scene file changed, respawning", zap.String("scene", scenePath))
	}
}

// tickUntilChanged drives the bridge until the context is canceled or
// the scene file is rewritten. It reports whether a reload is wanted.
func tickUntilChanged(ctx context.Context, b *bridge.Bridge, watcher *fsnotify.Watcher, scenePath string) bool {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	reload := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case <-runCtx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				// Editors often replace the file; re-add the watch so
				// the next save is seen too.
				if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
					_ = watcher.Add(scenePath)
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					select {
					case reload <- struct{}{}:
					default:
					}
					cancel()
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("scene watcher error", zap.Error(err))
			}
		}
	}()

	b.Run(runCtx)

	select {
	case <-reload:
		return ctx.Err() == nil
	default:
		return false
	}
}
