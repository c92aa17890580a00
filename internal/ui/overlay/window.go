package overlay

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines overlay visuals.
type Config struct {
	Opacity uint8
	Message string
}

// Session describes one break shown in the overlay.
type Session struct {
	Title     string
	Remaining time.Duration
	// Skippable shows the skip button.
	Skippable bool
}

// Window is a small undecorated card that counts down a break.
type Window struct {
	window     fyne.Window
	titleLabel *canvas.Text
	timerLabel *canvas.Text
	skipButton *widget.Button
	onSkip     func()
	visible    bool
}

const (
	widthFraction       = float32(0.16)
	heightFraction      = float32(0.16)
	defaultScreenWidth  = float32(1920)
	defaultScreenHeight = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window. It stays hidden until Show.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("Break")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{A: config.Opacity})

	titleLabel := canvas.NewText("Break", color.White)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	subtitleLabel := canvas.NewText(config.Message, color.White)
	subtitleLabel.TextSize = 14

	timerLabel := canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 28

	overlay := &Window{
		window:     window,
		titleLabel: titleLabel,
		timerLabel: timerLabel,
	}
	overlay.skipButton = widget.NewButton("Skip", func() {
		if overlay.onSkip != nil {
			overlay.onSkip()
		}
	})

	content := container.NewPadded(container.NewVBox(titleLabel, subtitleLabel, timerLabel, overlay.skipButton))
	window.SetContent(container.NewStack(background, content))

	return overlay
}

// SetOnSkip sets the skip handler.
func (overlay *Window) SetOnSkip(handler func()) {
	overlay.onSkip = handler
}

// Show displays a break. Must be called on the fyne goroutine.
func (overlay *Window) Show(session Session) {
	overlay.titleLabel.Text = session.Title
	overlay.titleLabel.Refresh()
	overlay.setRemainingUnsafe(session.Remaining)
	if session.Skippable {
		overlay.skipButton.Show()
	} else {
		overlay.skipButton.Hide()
	}
	if !overlay.visible {
		overlay.resizeToScreenFraction()
	}
	overlay.visible = true
	overlay.window.Show()
	overlay.window.RequestFocus()
}

// Hide closes the overlay. Must be called on the fyne goroutine.
func (overlay *Window) Hide() {
	overlay.visible = false
	overlay.window.Hide()
}

// SetRemaining updates the timer label from any goroutine.
func (overlay *Window) SetRemaining(remaining time.Duration) {
	fyne.Do(func() {
		overlay.setRemainingUnsafe(remaining)
	})
}

func (overlay *Window) setRemainingUnsafe(remaining time.Duration) {
	overlay.timerLabel.Text = FormatDuration(remaining)
	overlay.timerLabel.Refresh()
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// A screen-sized canvas stands in for the monitor size.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * widthFraction
	height := screenSize.Height * heightFraction
	minSize := overlay.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

// FormatDuration renders a countdown as MM:SS, or H:MM:SS from an hour up.
func FormatDuration(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value / time.Second)
	hours := seconds / 3600
	minutes := seconds / 60 % 60
	seconds = seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
