package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/ayusman/mudra/internal/annotate"
	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/display"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

// OpenCV windows and the system tray both need the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

// run wires the components together and returns the process exit code.
func run() int {
	var (
		envFile  = flag.String("env", ".env", "path to the .env file")
		cameraID = flag.Int("camera", 0, "camera device index")
		width    = flag.Int("width", 640, "capture frame width")
		height   = flag.Int("height", 480, "capture frame height")
		addr     = flag.String("addr", ":8080", "HTTP listen address, empty to disable")
		dbPath   = flag.String("db", "", "SQLite database path")
		headless = flag.Bool("headless", false, "run without a preview window")
		withTray = flag.Bool("tray", false, "run with a system tray icon instead of a window")
		record   = flag.Bool("record", true, "record detections to the database")
		static   = flag.String("static", "", "directory of static files for the viewer")
		script   = flag.String("script", "", "path to mediapipe_service.py")
		python   = flag.String("python", "", "python interpreter for the MediaPipe service")
		noDetect = flag.Bool("no-detect", false, "run without hand detection (capture and display only)")
	)
	flag.Parse()

	fmt.Println("Mudra - Hand Gesture Recognition")

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "camera":
			cfg.CameraID = *cameraID
		case "width":
			cfg.FrameWidth = *width
		case "height":
			cfg.FrameHeight = *height
		case "addr":
			cfg.HTTPAddr = *addr
		case "db":
			cfg.DBPath = *dbPath
		case "headless":
			cfg.Headless = *headless
		case "record":
			cfg.Record = *record
		case "static":
			cfg.StaticDir = *static
		case "script":
			cfg.MediaPipeScript = *script
		case "python":
			cfg.PythonPath = *python
		}
	})
	if cfg.StaticDir == "" {
		cfg.StaticDir = findWebDir(cfg.DataDir)
	}

	det, err := newDetector(cfg, *noDetect)
	if err != nil {
		log.Printf("Failed to start: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var disp display.Display
	if cfg.Headless || *withTray {
		disp = display.Headless()
	} else {
		disp = display.NewWindow(cfg.WindowTitle)
	}

	a := app.New(app.Config{
		Camera:   capture.NewCameraWithSize(cfg.CameraID, cfg.FrameWidth, cfg.FrameHeight),
		Detector: det,
		Renderer: annotate.NewRenderer(annotate.DefaultStyle()),
		Display:  disp,
	})

	var st *store.Store
	if cfg.Record {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			log.Printf("Failed to create data directory: %v", err)
			return 1
		}
		st, err = store.New(cfg.DBPath)
		if err != nil {
			log.Printf("Failed to initialize store: %v", err)
			return 1
		}
		defer st.Close()
	}

	if cfg.HTTPAddr != "" {
		hub := server.NewHub()
		a.AddListener(hub)

		srv := server.New(server.Config{
			StaticDir: cfg.StaticDir,
			Store:     st,
			Hub:       hub,
			Stats:     a.Stats(),
		}).HTTPServer(cfg.HTTPAddr)

		go func() {
			fmt.Printf("Starting server on %s\n", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Server failed: %v", err)
			}
		}()
		defer func() {
			hub.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server shutdown: %v", err)
			}
		}()
	}

	if st != nil {
		rec, err := store.NewRecorder(st, cfg.CameraID)
		if err != nil {
			log.Printf("Failed to start recording session: %v", err)
			return 1
		}
		a.AddListener(rec)
		defer func() {
			if err := rec.Close(); err != nil {
				log.Printf("Failed to end session: %v", err)
			}
		}()
		fmt.Printf("Recording session %s to %s\n", rec.SessionID(), cfg.DBPath)
	}

	if *withTray {
		err = runWithTray(ctx, a, cfg.HTTPAddr)
	} else {
		err = a.Run(ctx)
	}

	switch {
	case errors.Is(err, app.ErrStartup):
		log.Printf("Failed to start: %v", err)
		return 1
	case err != nil:
		log.Printf("Stopped: %v", err)
		return 1
	}
	return 0
}

// newDetector returns the MediaPipe detector. A missing service fails with an
// error wrapping app.ErrStartup and detector.ErrDetectorUnavailable unless
// detection was switched off.
func newDetector(cfg *config.Config, disabled bool) (detector.Detector, error) {
	if disabled {
		log.Println("Hand detection disabled")
		return detector.Disabled(), nil
	}

	d, err := detector.NewMediaPipeDetector(detector.Config{
		MaxHands:        cfg.MaxHands,
		MinConfidence:   cfg.MinDetectionConf,
		MinTrackingConf: cfg.MinTrackingConf,
		ScriptPath:      cfg.MediaPipeScript,
		PythonPath:      cfg.PythonPath,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", app.ErrStartup, err)
	}
	return d, nil
}

// runWithTray runs the loop in the background and the tray on the main goroutine.
func runWithTray(ctx context.Context, a *app.App, httpAddr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnQuit(cancel)
	if httpAddr != "" {
		t.OnOpenViewer(func() {
			openBrowser(viewerURL(httpAddr))
		})
	}
	a.AddListener(t)

	done := make(chan error, 1)
	go func() {
		done <- a.Run(ctx)
		t.Quit()
	}()

	t.Run()
	cancel()
	return <-done
}

func viewerURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/"
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open %s: %v", url, err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and <dataDir>/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
