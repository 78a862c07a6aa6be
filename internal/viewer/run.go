// Package viewer runs the capture viewer headless: it loads one capture from a
// source, replays configured commands and pointer moves, then exports the
// resulting view.
package viewer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lukaszgryglicki/cubeview/internal/cubeview"
	"github.com/lukaszgryglicki/cubeview/internal/metrics"
	"github.com/lukaszgryglicki/cubeview/internal/scene"
	"github.com/lukaszgryglicki/cubeview/internal/source"
)

// logUI turns viewer notifications into log records.
type logUI struct{ log *slog.Logger }

func (u logUI) FrameButtonsNeeded(n int) { u.log.Info("frame buttons", "count", n) }

func (u logUI) SliceButtonsNeeded(frame int, vis []bool) {
	u.log.Debug("slice buttons", "frame", frame+1, "visibility", vis)
}

func (u logUI) Toast(msg string) { u.log.Info("toast", "message", msg) }

func (u logUI) Tooltip(t cubeview.Tooltip) {
	if t.Visible {
		u.log.Debug("tooltip", "slice", t.Label, "x", t.Pos.X, "y", t.Pos.Y)
	}
}

// result is what one run produced.
type result struct {
	sess    *cubeview.Session
	scene   *scene.Scene
	rec     *metrics.Recorder
	hovered int
	hit     bool
	proxies int
	files   []string
}

func newLogger(w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if Debug {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// Run loads the config at cfgPath and renders the capture it names from the
// source selected by the CUBEVIEW_SOURCE_* environment.
func Run(ctx context.Context, cfgPath string) error {
	logger := newLogger(os.Stdout)
	slog.SetDefault(logger)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	src, err := source.Open(ctx)
	if err != nil {
		return err
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}
	logger.Info("source opened", "driver", src.Driver())

	_, err = run(ctx, cfg, src, logger, os.Stdout)
	return err
}

func run(ctx context.Context, cfg *Config, f cubeview.Fetcher, logger *slog.Logger, out io.Writer) (*result, error) {
	sc, err := cfg.Scene.Build()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	res := &result{scene: sc, rec: metrics.New(), hovered: cubeview.NoSlice}
	res.sess = cubeview.NewSession(sc, logUI{log: logger},
		cubeview.WithLayout(cfg.layout),
		cubeview.WithSpacing(cfg.Spacing),
		cubeview.WithLogger(logger),
		cubeview.WithRecorder(res.rec),
	)
	if err := res.sess.LoadFrom(ctx, f, cfg.Capture); err != nil {
		return nil, err
	}
	for i, cmd := range cfg.commands {
		if err := res.sess.Dispatch(cmd); err != nil {
			return nil, fmt.Errorf("command %q: %w", cfg.Commands[i], err)
		}
	}
	if ctrl := res.sess.Controller(); ctrl != nil {
		res.proxies = ctrl.ProxyCount()
		frame, _ := ctrl.Frame()
		logger.Info("view ready", "frame", frame+1, "proxies", res.proxies)
	}
	if p := cfg.Pointer; p != nil {
		res.hovered, res.hit = res.sess.PointerMoved(
			cubeview.PointerNDC{X: p.X, Y: p.Y},
			cubeview.ScreenPos{X: p.ScreenX, Y: p.ScreenY},
		)
		logger.Info("pointer", "x", p.X, "y", p.Y, "hit", res.hit, "slice", res.hovered+1)
	}

	if err := ensureDir(cfg.SnapshotOut); err != nil {
		return nil, err
	}
	if err := sc.SavePNG(cfg.SnapshotOut); err != nil {
		return nil, err
	}
	res.files = append(res.files, cfg.SnapshotOut)
	cubeview.DebugLog("Saved snapshot: %s", cfg.SnapshotOut)

	if err := export(cfg, res, out); err != nil {
		return nil, err
	}

	if cfg.MetricsOut != "" {
		if err := writeMetrics(cfg.MetricsOut, res.rec); err != nil {
			return nil, err
		}
		res.files = append(res.files, cfg.MetricsOut)
	}
	return res, nil
}

// export writes the slices of the selected frame, if any.
func export(cfg *Config, res *result, out io.Writer) error {
	ctrl := res.sess.Controller()
	frame, ok := ctrl.Frame()
	if !ok {
		cubeview.DebugLog("no frame selected, nothing to export")
		return nil
	}
	repo := ctrl.Repository()
	mats := make([]cubeview.OccupancyMatrix, 0, repo.SliceCount(frame))
	for s := 0; s < repo.SliceCount(frame); s++ {
		m, err := repo.Matrix(frame, s)
		if err != nil {
			return err
		}
		mats = append(mats, m)
	}
	if TEXT {
		fmt.Fprintf(out, "# frame %d\n%s", frame+1, cubeview.FormatSliceText(mats))
	}
	if !GIF {
		return nil
	}
	if PNG {
		prefix := strings.Replace(cfg.GIFOut, ".gif", "", 1)
		prefix = strings.Replace(prefix, "gifs/", "pngs/", 1)
		if err := ensureDir(prefix); err != nil {
			return err
		}
		paths, err := scene.SavePNGSequence(prefix, mats, cfg.CellPx, cfg.Scene.LitOnOne)
		if err != nil {
			return err
		}
		res.files = append(res.files, paths...)
		cubeview.DebugLog("Saved PNG sequence with prefix: %s", prefix)
		return nil
	}
	if err := ensureDir(cfg.GIFOut); err != nil {
		return err
	}
	if err := scene.SaveSliceGIF(cfg.GIFOut, mats, cfg.CellPx, cfg.GIFDelay, cfg.Scene.LitOnOne); err != nil {
		return err
	}
	res.files = append(res.files, cfg.GIFOut)
	cubeview.DebugLog("Saved animated GIF: %s", cfg.GIFOut)
	return nil
}

func writeMetrics(path string, rec *metrics.Recorder) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rec.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
