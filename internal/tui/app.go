package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"github.com/kstrand/vinyl/internal/player"
)

const (
	maxRecentSongs = 5
	topListSize    = 10
)

// Config holds TUI configuration options
type Config struct {
	// AutoAdvance simulates track completion: after this interval the
	// playlist advances as if playback ended. 0 disables it.
	AutoAdvance time.Duration
}

// App is the terminal screen around a player engine. The engine is
// single-threaded, so every engine call happens on the tview event
// loop; the auto-advance ticker serializes onto it via
// QueueUpdateDraw.
type App struct {
	app        *tview.Application
	playlist   *tview.List
	searchIn   *tview.InputField
	suggest    *tview.List
	nowPlaying *tview.TextView
	topPlayed  *tview.TextView
	recent     *tview.TextView
	status     *tview.TextView

	config Config
	engine *player.Engine
	logger zerolog.Logger

	cancelFunc context.CancelFunc
}

// New creates the TUI around an engine.
func New(engine *player.Engine, cfg Config, logger zerolog.Logger) *App {
	a := &App{
		app:    tview.NewApplication(),
		config: cfg,
		engine: engine,
		logger: logger.With().Str("component", "tui").Logger(),
	}
	a.setupUI()
	return a
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	a.playlist = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	a.playlist.SetBorder(true).
		SetTitle(" Playlist ").
		SetTitleAlign(tview.AlignLeft)
	a.playlist.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		a.playSelected(secondaryText)
	})

	a.searchIn = tview.NewInputField().
		SetLabel(" Search: ").
		SetFieldWidth(0)
	a.searchIn.SetChangedFunc(func(text string) {
		a.refreshSuggestions(text)
	})
	a.searchIn.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			if a.suggest.GetItemCount() > 0 {
				_, id := a.suggest.GetItemText(0)
				a.playSelected(id)
			}
			a.app.SetFocus(a.playlist)
		case tcell.KeyEscape:
			a.app.SetFocus(a.playlist)
		}
	})

	a.suggest = tview.NewList().
		ShowSecondaryText(false)
	a.suggest.SetBorder(true).
		SetTitle(" Matches ").
		SetTitleAlign(tview.AlignLeft)
	a.suggest.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		a.playSelected(secondaryText)
	})

	a.nowPlaying = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.nowPlaying.SetBorder(true).
		SetTitle(" Now Playing ").
		SetTitleAlign(tview.AlignLeft)

	a.topPlayed = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.topPlayed.SetBorder(true).
		SetTitle(" Top Played ").
		SetTitleAlign(tview.AlignLeft)

	a.recent = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.recent.SetBorder(true).
		SetTitle(" Recent ").
		SetTitleAlign(tview.AlignLeft)

	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[gray]q:quit  enter:play  n:next  p:prev  b:back  s:shuffle  /:search[-]")

	right := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.nowPlaying, 5, 1, false).
		AddItem(a.topPlayed, 0, 2, false).
		AddItem(a.recent, 0, 1, false)

	middle := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.playlist, 0, 2, true).
		AddItem(right, 0, 1, false)

	searchRow := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.searchIn, 1, 1, false).
		AddItem(a.suggest, 6, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(searchRow, 8, 1, false).
		AddItem(middle, 0, 1, true).
		AddItem(a.status, 1, 1, false)

	a.app.SetInputCapture(a.handleKeyEvent)
	a.app.SetRoot(flex, true)
}

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	// Leave typing to the search field when it has focus.
	if a.app.GetFocus() == a.searchIn {
		return event
	}

	switch event.Rune() {
	case 'q', 'Q':
		a.app.Stop()
		return nil
	case 'n', 'N':
		if song, err := a.engine.Next(); err == nil {
			a.logger.Debug().Str("song_id", song.ID).Msg("Next")
		}
		a.refresh()
		return nil
	case 'p', 'P':
		if song, err := a.engine.Previous(); err == nil {
			a.logger.Debug().Str("song_id", song.ID).Msg("Previous")
		}
		a.refresh()
		return nil
	case 'b', 'B':
		if song, err := a.engine.Back(); err == nil {
			a.logger.Debug().Str("song_id", song.ID).Msg("Back")
		}
		a.refresh()
		return nil
	case 's', 'S':
		a.engine.ToggleShuffle()
		a.refresh()
		return nil
	case '/':
		a.app.SetFocus(a.searchIn)
		return nil
	}
	return event
}

// Run starts the TUI and blocks until quit.
func (a *App) Run(ctx context.Context) error {
	ctx, a.cancelFunc = context.WithCancel(ctx)
	defer a.cancelFunc()

	if a.config.AutoAdvance > 0 {
		go a.autoAdvance(ctx)
	}

	a.reloadPlaylist()
	a.refresh()

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// Stop terminates the TUI from outside the event loop.
func (a *App) Stop() {
	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	a.app.Stop()
}

// autoAdvance stands in for the audio layer's end-of-track callback.
// Engine calls are queued onto the event loop, never made from this
// goroutine directly.
func (a *App) autoAdvance(ctx context.Context) {
	ticker := time.NewTicker(a.config.AutoAdvance)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.app.QueueUpdateDraw(func() {
				if song, err := a.engine.PlaybackEnded(); err == nil {
					a.logger.Debug().Str("song_id", song.ID).Msg("Auto-advance")
				}
				a.refreshPanels()
			})
		}
	}
}

// playSelected starts the song carried in a list item's secondary
// text.
func (a *App) playSelected(id string) {
	if id == "" {
		return
	}
	if _, err := a.engine.PlaySong(id); err != nil {
		a.logger.Warn().Err(err).Str("song_id", id).Msg("Play failed")
	}
	a.refresh()
}

// refreshSuggestions re-queries the search index for the typed
// prefix.
func (a *App) refreshSuggestions(text string) {
	a.suggest.Clear()
	if strings.TrimSpace(text) == "" {
		return
	}
	songs, err := a.engine.SearchTitles(text)
	if err != nil {
		return
	}
	for _, song := range songs {
		a.suggest.AddItem(song.Title, song.ID, 0, nil)
	}
}

// reloadPlaylist rebuilds the playlist panel from the library.
func (a *App) reloadPlaylist() {
	a.playlist.Clear()
	for _, song := range a.engine.Songs() {
		label := song.Title
		if song.Artist != "" {
			label = fmt.Sprintf("%s - %s", song.Title, song.Artist)
		}
		a.playlist.AddItem(label, song.ID, 0, nil)
	}
}

// refresh redraws every panel. Safe only on the event loop.
func (a *App) refresh() {
	a.refreshPanels()
}

func (a *App) refreshPanels() {
	a.nowPlaying.SetText(a.nowPlayingText())
	a.topPlayed.SetText(a.topPlayedText())
	a.recent.SetText(a.recentText())
	a.highlightCurrent()
}

func (a *App) nowPlayingText() string {
	song, err := a.engine.CurrentSong()
	if err != nil {
		return "[gray]nothing playing[-]"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[white::b]%s[-:-:-]", song.Title)
	if song.Artist != "" {
		fmt.Fprintf(&b, "\n[gray]%s[-]", song.Artist)
	}
	if a.engine.ShuffleOn() {
		b.WriteString("\n[yellow]shuffle[-]")
	}
	return b.String()
}

func (a *App) topPlayedText() string {
	top, err := a.engine.TopPlayed(topListSize)
	if err != nil || len(top) == 0 {
		return "[gray]no plays yet[-]"
	}
	var b strings.Builder
	for i, entry := range top {
		fmt.Fprintf(&b, "%2d. %s [gray](%d)[-]\n", i+1, entry.Title, entry.Count)
	}
	return b.String()
}

func (a *App) recentText() string {
	recent := a.engine.RecentlyPlayed(maxRecentSongs)
	if len(recent) == 0 {
		return "[gray]nothing played yet[-]"
	}
	var b strings.Builder
	for _, song := range recent {
		fmt.Fprintf(&b, "%s\n", song.Title)
	}
	return b.String()
}

// highlightCurrent moves the playlist selection to the current song.
func (a *App) highlightCurrent() {
	song, err := a.engine.CurrentSong()
	if err != nil {
		return
	}
	for i := 0; i < a.playlist.GetItemCount(); i++ {
		if _, id := a.playlist.GetItemText(i); id == song.ID {
			a.playlist.SetCurrentItem(i)
			return
		}
	}
}
