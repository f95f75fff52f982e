package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/quill-ui/quill-host/diag"
	"github.com/quill-ui/quill-host/engine"
	"github.com/quill-ui/quill-host/enginewasm"
	"github.com/quill-ui/quill-host/host"
	"github.com/quill-ui/quill-host/loader"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F87AF")).
			Padding(0, 1)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD787"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	locStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// interactiveModel is a compile loop: pick a .quill file, compile, review
// diagnostics, recompile after edits.
type interactiveModel struct {
	err        error
	eng        engine.Engine
	h          *host.Host
	log        *zap.Logger
	input      textinput.Model
	engineFile string
	sourceFile string
	compName   string
	diags      diag.List
	state      modelState
	compiles   int
}

type modelState int

const (
	stateInputSource modelState = iota
	stateCompiling
	stateShowResult
)

type engineReadyMsg struct {
	err error
	eng engine.Engine
	h   *host.Host
}

type compileDoneMsg struct {
	err   error
	name  string
	diags diag.List
}

func newInteractiveModel(engineFile, sourceFile string, log *zap.Logger) *interactiveModel {
	input := textinput.New()
	input.Placeholder = "path/to/app.quill"
	input.SetValue(sourceFile)
	input.Focus()

	return &interactiveModel{
		log:        log,
		input:      input,
		engineFile: engineFile,
		sourceFile: sourceFile,
		state:      stateInputSource,
	}
}

func loadEngine(engineFile string, log *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(engineFile)
		if err != nil {
			return engineReadyMsg{err: err}
		}
		eng, err := enginewasm.New(context.Background(), data, enginewasm.WithLogger(log))
		if err != nil {
			return engineReadyMsg{err: err}
		}
		return engineReadyMsg{eng: eng, h: host.New(eng, host.WithLogger(log))}
	}
}

func (m *interactiveModel) compile() tea.Cmd {
	h, sourceFile := m.h, m.sourceFile
	return func() tea.Msg {
		source, err := os.ReadFile(sourceFile)
		if err != nil {
			return compileDoneMsg{err: err}
		}

		baseDir := filepath.Dir(sourceFile)
		comp, err := h.CompileFromString(context.Background(), string(source), filepath.Base(sourceFile),
			host.WithLoader(loader.FS(os.DirFS(baseDir), ".")))
		if err != nil {
			var derr *diag.Error
			if errors.As(err, &derr) {
				return compileDoneMsg{diags: derr.Diagnostics}
			}
			return compileDoneMsg{err: err}
		}
		defer comp.Close()

		return compileDoneMsg{name: comp.Name()}
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case engineReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateShowResult
			return m, nil
		}
		m.eng, m.h = msg.eng, msg.h
		return m, m.compile()

	case compileDoneMsg:
		m.compiles++
		m.err = msg.err
		m.compName = msg.name
		m.diags = msg.diags
		m.state = stateShowResult
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputSource {
				return m, tea.Quit
			}
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "enter":
			switch m.state {
			case stateInputSource:
				m.sourceFile = strings.TrimSpace(m.input.Value())
				if m.sourceFile == "" {
					return m, nil
				}
				m.state = stateCompiling
				return m, m.startCompile()
			case stateShowResult:
				// recompile after the user edited the file
				m.state = stateCompiling
				return m, m.startCompile()
			}

		case "e":
			if m.state == stateShowResult {
				m.state = stateInputSource
				m.input.Focus()
				return m, textinput.Blink
			}
		}
	}

	if m.state == stateInputSource {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) startCompile() tea.Cmd {
	if m.h == nil {
		return loadEngine(m.engineFile, m.log)
	}
	return m.compile()
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("quill-run"))
	b.WriteString("\n\n")

	switch m.state {
	case stateInputSource:
		b.WriteString("Source file:\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: compile  ctrl+c: quit"))

	case stateCompiling:
		fmt.Fprintf(&b, "Compiling %s...\n", m.sourceFile)

	case stateShowResult:
		fmt.Fprintf(&b, "%s  (compile #%d)\n\n", m.sourceFile, m.compiles)
		switch {
		case m.err != nil:
			b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
			b.WriteByte('\n')
		case len(m.diags) > 0:
			for _, d := range m.diags {
				style := errorStyle
				if d.Severity == diag.SeverityWarning {
					style = warnStyle
				}
				loc := fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
				fmt.Fprintf(&b, "%s %s %s\n",
					style.Render(d.Severity.String()),
					locStyle.Render(loc),
					d.Message)
			}
		default:
			b.WriteString(okStyle.Render(fmt.Sprintf("Compiled %s, no diagnostics", m.compName)))
			b.WriteByte('\n')
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: recompile  e: change file  q: quit"))
	}

	b.WriteString("\n")
	return b.String()
}

func runInteractive(engineFile, sourceFile string, log *zap.Logger) error {
	m := newInteractiveModel(engineFile, sourceFile, log)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(*interactiveModel); ok && fm.eng != nil {
		return fm.eng.Close(context.Background())
	}
	return nil
}
