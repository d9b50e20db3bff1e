package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/Garsondee/Dread-Maze/internal/scene"
	"github.com/Garsondee/Dread-Maze/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64

	frames      int
	caught      bool
	survivedSec float64
	replans     int
	minDistance float64
	endDistance float64
	minStamina  float64
	sessionID   string
}

func main() {
	var runs int
	var frames int
	var seedBase int64
	var seedStep int64
	var policyName string
	var configPath string
	var snapshot string
	var snapW, snapH int
	var logLevel string
	var dump bool

	flag.IntVar(&runs, "runs", 5, "number of headless chase runs")
	flag.IntVar(&frames, "frames", 60*60*2, "frame cap per run (60 per second)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&policyName, "policy", "flee", "scripted player: idle or flee")
	flag.StringVar(&configPath, "config", "", "optional tuning YAML file")
	flag.StringVar(&snapshot, "snapshot", "", "write the last run's final frame to this .png, .bmp or .tiff file")
	flag.IntVar(&snapW, "snapshot-width", 640, "snapshot width in pixels")
	flag.IntVar(&snapH, "snapshot-height", 400, "snapshot height in pixels")
	flag.StringVar(&logLevel, "log-level", "warn", "logrus level for session logs")
	flag.BoolVar(&dump, "dump", false, "print each run's event log")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if frames <= 0 {
		fmt.Println("error: -frames must be > 0")
		return
	}
	policy, ok := policies[policyName]
	if !ok {
		fmt.Printf("error: unsupported policy %q (supported: %s)\n", policyName, policyNames())
		return
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	tuning := sim.DefaultTuning()
	if configPath != "" {
		if tuning, err = sim.LoadTuning(configPath); err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(os.Stderr)

	fmt.Printf("=== Headless Chase Report ===\n")
	fmt.Printf("policy=%s runs=%d frames=%d seed_base=%d seed_step=%d\n\n", policyName, runs, frames, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	var last *sim.Headless
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		h := sim.NewHeadless(
			sim.WithTuning(tuning),
			sim.WithPolicy(policy),
			sim.WithSeed(seed),
			sim.WithVerbose(dump),
			sim.WithHeadlessLogger(logrus.NewEntry(logger).WithField("run", i+1)),
		)
		stats := runChase(i+1, seed, h, frames)
		all = append(all, stats)
		printRun(os.Stdout, stats)
		if dump {
			fmt.Print(h.Events.Dump())
		}
		last = h
	}

	printAggregate(os.Stdout, all)

	if snapshot != "" && last != nil {
		if err := writeSnapshot(snapshot, last, snapW, snapH); err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Printf("\nsnapshot written to %s\n", snapshot)
	}
}

var policies = map[string]sim.Policy{
	"idle": sim.Idle,
	"flee": sim.Flee,
}

func policyNames() string {
	names := make([]string, 0, len(policies))
	for k := range policies {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// runChase steps h until capture or the frame cap, sampling distance and
// stamina every frame.
func runChase(runIndex int, seed int64, h *sim.Headless, maxFrames int) runStats {
	rs := runStats{
		runIndex:    runIndex,
		seed:        seed,
		minDistance: h.State.Distance(),
		minStamina:  h.State.Player.Stamina,
		sessionID:   h.State.SessionID,
	}
	for rs.frames < maxFrames {
		ev := h.Step()
		rs.frames++
		if d := h.State.Distance(); d < rs.minDistance {
			rs.minDistance = d
		}
		if st := h.State.Player.Stamina; st < rs.minStamina {
			rs.minStamina = st
		}
		if ev.Captured {
			rs.caught = true
			break
		}
	}
	rs.survivedSec = h.State.Elapsed(h.Now()).Seconds()
	rs.replans = h.Events.Count(sim.EventEnemy, "replan")
	rs.endDistance = h.State.Distance()
	return rs
}

func printRun(w io.Writer, rs runStats) {
	outcome := "escaped"
	if rs.caught {
		outcome = "caught"
	}
	fmt.Fprintf(w, "--- Run %d (seed=%d session=%s) ---\n", rs.runIndex, rs.seed, rs.sessionID)
	fmt.Fprintf(w, "outcome=%s frames=%d survived=%.1fs replans=%d\n", outcome, rs.frames, rs.survivedSec, rs.replans)
	fmt.Fprintf(w, "distance: min=%.2f end=%.2f  stamina_min=%.1f\n\n", rs.minDistance, rs.endDistance, rs.minStamina)
}

func printAggregate(w io.Writer, all []runStats) {
	caught := 0
	var survived []float64
	replans := 0
	for _, rs := range all {
		if rs.caught {
			caught++
			survived = append(survived, rs.survivedSec)
		}
		replans += rs.replans
	}
	fmt.Fprintf(w, "=== Aggregate ===\n")
	fmt.Fprintf(w, "runs=%d caught=%d capture_rate=%.0f%%\n", len(all), caught, 100*ratio(caught, len(all)))
	fmt.Fprintf(w, "survival_when_caught: avg=%s median=%s\n", avgString(survived), medianString(survived))
	fmt.Fprintf(w, "avg_replans_per_run=%.1f\n", ratio(replans, len(all)))
}

func ratio(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func avgString(vals []float64) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1fs", sum/float64(len(vals)))
}

func medianString(vals []float64) string {
	if len(vals) == 0 {
		return "n/a"
	}
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return fmt.Sprintf("%.1fs", s[mid])
	}
	return fmt.Sprintf("%.1fs", (s[mid-1]+s[mid])/2)
}

// writeSnapshot renders the run's current frame and encodes it by file
// extension.
func writeSnapshot(path string, h *sim.Headless, w, ht int) error {
	ras := scene.NewRaster(w, ht)
	scene.NewRenderer().Render(ras, h.State, h.Now())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := encodeImage(f, filepath.Ext(path), ras.Image()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	return nil
}

func encodeImage(w io.Writer, ext string, img image.Image) error {
	var err error
	switch strings.ToLower(ext) {
	case ".png":
		err = png.Encode(w, img)
	case ".bmp":
		err = bmp.Encode(w, img)
	case ".tif", ".tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported snapshot format %q (use .png, .bmp or .tiff)", ext)
	}
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}
