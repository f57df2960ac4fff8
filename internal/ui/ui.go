// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"vfsh/internal/commands"
	"vfsh/internal/history"
	"vfsh/internal/shell"
	"vfsh/internal/theme"
)

// Options carries the optional hooks of the TUI.
type Options struct {
	Prompt  string
	Debug   *bool
	OnDebug func(enabled bool)
}

// UI owns the vfsh TUI components and lifecycle.
type UI struct {
	app      *tview.Application
	session  *shell.Session
	registry *commands.Registry
	theme    *theme.Theme
	logger   zerolog.Logger
	env      *commands.Env
	prompt   string

	header *tview.TextView
	output *tview.TextView
	status *tview.TextView
	input  *tview.InputField
	flex   *tview.Flex

	stopped bool
}

// New constructs a UI with all widgets and handlers wired.
func New(session *shell.Session, registry *commands.Registry, tuiTheme *theme.Theme, logger zerolog.Logger, opts Options) *UI {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = "> "
	}
	ui := &UI{
		app:      tview.NewApplication(),
		session:  session,
		registry: registry,
		theme:    tuiTheme,
		logger:   logger,
		prompt:   prompt,
		env: &commands.Env{
			Session: session,
			Debug:   opts.Debug,
			OnDebug: opts.OnDebug,
		},
	}

	ui.buildLayout()
	ui.setupInputHandlers()
	ui.setupGlobalInputCapture()
	ui.refreshPrompt()

	return ui
}

// Run starts the TUI and blocks until the application stops or ctx is cancelled.
func (ui *UI) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ui.app.SetRoot(ui.flex, true)
	ui.app.SetFocus(ui.input)

	go func() {
		<-runCtx.Done()
		ui.app.Stop()
	}()

	ui.logger.Debug().Msg("TUI started")
	err := ui.app.Run()
	ui.logger.Debug().Err(err).Msg("TUI stopped")
	return err
}

func (ui *UI) buildLayout() {
	ui.header = tview.NewTextView().
		SetText("vfsh - in-memory file system shell\nType /help for commands | Up/Down: history | Ctrl+Q: Quit").
		SetTextColor(tcell.GetColor(ui.theme.HeaderTextColor)).
		SetDynamicColors(true)

	ui.output = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	ui.output.SetBorder(true).
		SetBorderColor(tcell.GetColor(ui.theme.BorderColor))

	ui.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextColor(tcell.GetColor(ui.theme.BorderColor))

	ui.input = tview.NewInputField().
		SetLabelColor(tcell.GetColor(ui.theme.InputLabelColor)).
		SetFieldTextColor(tcell.GetColor(ui.theme.InputTextColor)).
		SetFieldBackgroundColor(tcell.GetColor(ui.theme.InputBackgroundColor)).
		SetPlaceholder("command (Enter to run)")
	ui.input.SetPlaceholderStyle(tcell.StyleDefault.
		Foreground(tcell.GetColor(ui.theme.BorderColor)).
		Background(tcell.GetColor(ui.theme.InputBackgroundColor)))

	ui.flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.header, 2, 1, false).
		AddItem(ui.output, 0, 1, false).
		AddItem(ui.status, 1, 1, false).
		AddItem(ui.input, 1, 1, true)
}

func (ui *UI) setupInputHandlers() {
	ui.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		line := ui.input.GetText()
		ui.input.SetText("")
		ui.submit(line)
	})

	ui.input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp:
			ui.recall(history.Older)
			return nil
		case tcell.KeyDown:
			ui.recall(history.Newer)
			return nil
		}
		return event
	})
}

func (ui *UI) setupGlobalInputCapture() {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlQ, tcell.KeyCtrlC:
			ui.stop()
			return nil
		case tcell.KeyPgUp, tcell.KeyPgDn:
			// Let the output view scroll while the input keeps focus.
			if handler := ui.output.InputHandler(); handler != nil {
				handler(event, func(tview.Primitive) {})
			}
			return nil
		}
		return event
	})
}

func (ui *UI) recall(dir history.Direction) {
	if line, ok := ui.session.History().Recall(dir); ok {
		ui.input.SetText(line)
	}
}

// submit runs one input line and renders the reply.
func (ui *UI) submit(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	echo := fmt.Sprintf("[%s]%s%s[-]%s",
		ui.theme.PromptColor, tview.Escape(ui.session.CurrentPath()), tview.Escape(ui.prompt), tview.Escape(line))

	reply := ui.registry.Handle(line, ui.env)
	switch {
	case reply.Quit:
		ui.stop()
		return
	case reply.Clear:
		ui.output.Clear()
	default:
		ui.appendOutput(echo)
		if text := ui.renderReply(reply); text != "" {
			ui.appendOutput(text)
		}
	}

	if reply.Err != nil {
		ui.status.SetText(fmt.Sprintf("[%s]rejected[-]", ui.theme.ErrorColor))
	} else {
		ui.status.SetText(fmt.Sprintf("[%s]ok[-]", ui.theme.SuccessColor))
	}
	ui.refreshPrompt()
}

func (ui *UI) renderReply(reply commands.Reply) string {
	if reply.Err != nil {
		return fmt.Sprintf("[%s]%s[-]", ui.theme.ErrorColor, tview.Escape(reply.Err.Error()))
	}
	if reply.Listing {
		return ui.renderListing(reply.Text)
	}
	// pterm output carries ANSI escapes.
	return tview.TranslateANSI(tview.Escape(reply.Text))
}

func (ui *UI) renderListing(line string) string {
	if line == "" {
		return ""
	}
	names := strings.Split(line, " ")
	for i, name := range names {
		color := ui.theme.FileColor
		if strings.HasSuffix(name, "/") {
			color = ui.theme.DirectoryColor
		}
		names[i] = fmt.Sprintf("[%s]%s[-]", color, tview.Escape(name))
	}
	return strings.Join(names, " ")
}

func (ui *UI) appendOutput(text string) {
	current := ui.output.GetText(false)
	if current != "" {
		current += "\n"
	}
	ui.output.SetText(current + text)
	ui.output.ScrollToEnd()
}

func (ui *UI) refreshPrompt() {
	ui.input.SetLabel(ui.session.CurrentPath() + ui.prompt)
}

func (ui *UI) stop() {
	ui.stopped = true
	ui.app.Stop()
}
