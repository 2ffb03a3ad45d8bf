// Package viewer shows a rendered figure in a window until it is closed.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/bathy3d/internal/engine/input"
	"github.com/Faultbox/bathy3d/internal/engine/renderer"
	"github.com/Faultbox/bathy3d/internal/engine/window"
	"github.com/Faultbox/bathy3d/internal/logger"
	"github.com/Faultbox/bathy3d/pkg/scene"
)

// Config holds viewer configuration.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Viewer owns the window and GL state for one figure.
type Viewer struct {
	config   Config
	fig      *scene.Figure
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	log      *zap.Logger
}

// New opens a window and uploads the actors of fig.
func New(cfg Config, fig *scene.Figure) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		fig:    fig,
		log:    logger.Named("viewer"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		VSync:  cfg.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context of the window.
	w, h := v.window.GetDrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.Upload(fig)
	v.input = input.New()

	v.log.Info("viewer ready", zap.Int("actors", len(fig.Actors())))
	return v, nil
}

// Run draws the figure until the window is closed. The scene is static, so
// frames are only redrawn after the window is resized or uncovered.
func (v *Viewer) Run() error {
	dirty := true
	frames := 0
	for {
		if v.input.Update() {
			v.log.Info("window closed", zap.Int("frames", frames))
			return nil
		}
		redraw, err := v.handleEvents()
		if err != nil {
			return err
		}
		dirty = dirty || redraw

		if dirty {
			v.renderer.Draw(v.fig)
			v.window.SwapBuffers()
			frames++
			dirty = false
			continue
		}
		time.Sleep(16 * time.Millisecond)
	}
}

// handleEvents applies window events and reports whether the frame must be
// drawn again.
func (v *Viewer) handleEvents() (bool, error) {
	redraw := false
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := v.window.GetDrawableSize()
			v.renderer.Resize(w, h)
			if err := v.fig.Resize(event.Width, event.Height); err != nil {
				return false, fmt.Errorf("resizing figure: %w", err)
			}
			redraw = true
		case input.EventRedraw:
			redraw = true
		}
	}
	return redraw, nil
}

// Close releases the GL resources and the window. The figure stays open.
func (v *Viewer) Close() {
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
