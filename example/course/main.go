package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/yamato/locomotion"
	"github.com/oomph-ac/yamato/settings"
	"github.com/oomph-ac/yamato/sim"
	"github.com/oomph-ac/yamato/worker"
	"github.com/sirupsen/logrus"
)

const (
	settingsPath = "settings.toml"
	character    = "yamato"
	ball         = "sphere"
)

// The following program runs a character over an obstacle course in real time, then replays the run
// and sweeps the number of air jumps.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:     false,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			logger.Errorf("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
		defer sentry.Recover()
	}

	if os.Getenv("STATSVIEW_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	s, err := settings.LoadOrCreate(settingsPath)
	if err != nil {
		logger.Fatalf("unable to load settings: %v", err)
	}
	applyLogging(logger, s.Logging)

	seconds := float32(12)
	if v, err := strconv.ParseFloat(os.Getenv("COURSE_SECONDS"), 32); err == nil && v > 0 {
		seconds = float32(v)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	reloads := make(chan settings.Settings, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := settings.Watch(ctx, settingsPath, func(s settings.Settings, err error) {
			if err != nil {
				logger.Warnf("unable to reload settings: %v", err)
				return
			}
			select {
			case reloads <- s:
			default:
			}
		})
		if err != nil {
			logger.Warnf("settings will not be reloaded: %v", err)
		}
	}()

	recording, err := live(ctx, logger, s, seconds, reloads)
	cancel()
	wg.Wait()
	if err != nil {
		logger.Errorf("live run stopped: %v", err)
		return
	}

	// A run that reloaded settings half way cannot be replayed with a single configuration.
	d, _ := newCourse(logger, s)
	if err := sim.Replay(recording, d); err != nil {
		logger.Warnf("replay diverged: %v", err)
	} else {
		logger.Infof("replay matched the live run (digest %016x)", d.Digest())
	}

	sweep(logger, s, seconds)
}

func applyLogging(logger *logrus.Logger, l settings.Logging) {
	lvl, err := l.LogLevel()
	if err != nil {
		logger.Warnf("%v, using %v", err, lvl)
	}
	logger.SetLevel(lvl)
}

// newCourse builds the course and a driver with the character and the moving sphere.
func newCourse(logger *logrus.Logger, s settings.Settings) (*sim.Driver, *sim.CharacterActor) {
	w := buildCourse(s.Simulation.Gravity)
	d := sim.NewDriver(w, s.Simulation.FixedStep, logger)

	c := sim.NewCharacter(w, mgl32.Vec3{0, characterRadius, 0}, characterRadius, s.Controller, locomotion.Options{
		Log:   logger,
		Debug: s.Logging.Debug,
	})
	if err := d.Add(character, c); err != nil {
		logger.Fatalf("unable to add %s: %v", character, err)
	}
	if err := d.Add(ball, sim.NewSphere(mgl32.Vec3{0, 0, -3}, s.Sphere)); err != nil {
		logger.Fatalf("unable to add %s: %v", ball, err)
	}
	return d, c
}

func frameInputs(t float32) map[string]locomotion.InputState {
	return map[string]locomotion.InputState{
		character: timeline(t),
		ball:      {Move: sphereInput(t)},
	}
}

// live runs the course in real time at the configured frame rate and returns the recording of the run.
func live(ctx context.Context, logger *logrus.Logger, s settings.Settings, seconds float32, reloads <-chan settings.Settings) ([]byte, error) {
	d, c := newCourse(logger, s)
	rec := sim.NewRecorder(d.FixedStep())
	d.Record(rec)

	frameTime := time.Second / time.Duration(s.Simulation.FrameRate)
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	var (
		elapsed     float32
		lastSummary float32
		last        = time.Now()
	)
	for elapsed < seconds {
		select {
		case <-ctx.Done():
			return nil, errors.New("interrupted")
		case ns := <-reloads:
			logger.Infof("settings reloaded")
			applyLogging(logger, ns.Logging)
			c.Controller().Configure(ns.Controller)
			if a, ok := d.Actor(ball); ok {
				a.(*sim.SphereActor).Configure(ns.Sphere)
			}
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			d.Frame(dt, frameInputs(elapsed))
			elapsed += dt

			if elapsed-lastSummary >= 1 {
				lastSummary = elapsed
				res, _ := c.LastStep()
				logger.Infof("t=%.1fs %s %s", elapsed, d.Summary(), locomotion.DiagnosticsString(res.Diagnostics()))
			}
		}
	}
	logger.Infof("live run finished after %d frames and %d steps (digest %016x)", d.Frames(), d.Steps(), d.Digest())
	return rec.Encode(), nil
}

// sweep runs the course once per number of air jumps on the worker queue, with a fixed frame time
// instead of real time, and logs how far each run got.
func sweep(logger *logrus.Logger, s settings.Settings, seconds float32) {
	const maxAirJumps = 3
	results := make([]string, maxAirJumps+1)
	jobs := make([]func(), 0, maxAirJumps+1)
	for n := 0; n <= maxAirJumps; n++ {
		jobs = append(jobs, func() {
			cfg := s
			cfg.Controller.MaxAirJumps = n
			cfg.Logging.Debug = false
			d, c := newCourse(logger, cfg)

			dt := 1 / float32(cfg.Simulation.FrameRate)
			launches := 0
			for t := float32(0); t < seconds; t += dt {
				in := frameInputs(t)
				// Jump on every other frame to use up the air jumps.
				in[character] = locomotion.InputState{Move: mgl32.Vec2{0, 1}, Jump: int(t/dt)%2 == 0}
				steps := d.Frame(dt, in)
				history := c.History()
				for _, res := range history[max(len(history)-steps, 0):] {
					if res.Jump.Launched() {
						launches++
					}
				}
			}
			results[n] = fmt.Sprintf("air_jumps=%d launches=%d z=%.2f digest=%016x", n, launches, c.Position().Z(), d.Digest())
		})
	}
	if err := worker.Batch(jobs...); err != nil {
		logger.Errorf("sweep failed: %v", err)
	}
	for _, r := range results {
		logger.Info(r)
	}
}
