// This file implements the interactive explorer using bubbletea.
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ontoscout/cmd/ontoscout/ui"
	"ontoscout/internal/config"
	"ontoscout/internal/explorer"
	"ontoscout/internal/loader"
	"ontoscout/internal/ontology"
)

// exploreCmd starts the interactive explorer
var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactively explore the ontology",
	Long: `Starts an interactive session for browsing the ontology: list the
fields of a type, rank types against a pasted field list, or validate
single field names. With ontology.watch enabled the session picks up
corpus edits without restarting.`,
	Args: cobra.NoArgs,
	RunE: runExplore,
}

// exploreMode is the operation the session is currently prompting for.
type exploreMode int

const (
	modeMenu exploreMode = iota
	modeFields
	modeMatch
	modeValidate
)

var modePrompts = map[exploreMode]string{
	modeFields:   "Enter a type as NAMESPACE/TYPE: ",
	modeMatch:    "Paste a comma-separated field list: ",
	modeValidate: "Enter a field name: ",
}

// exploreModel is the bubbletea model for the interactive session.
type exploreModel struct {
	textinput textinput.Model
	viewport  viewport.Model
	styles    ui.Styles

	mode    exploreMode
	ready   bool
	width   int
	height  int
	listLen int

	// session backs queries either with a fixed snapshot or a watcher
	session *exploreSession
}

// exploreSession resolves the engine against the current snapshot, which
// the watcher may replace between queries.
type exploreSession struct {
	cfg      *config.Config
	watcher  *loader.Watcher
	universe *ontology.Universe
}

func (s *exploreSession) engine() *explorer.Explorer {
	u := s.universe
	if s.watcher != nil {
		u = s.watcher.Universe()
	}
	return explorer.New(u, explorer.WithMatchThreshold(s.cfg.Matching.ScoreThreshold))
}

func (s *exploreSession) close() {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	session := &exploreSession{cfg: cfg}
	if cfg.Ontology.Watch {
		w, err := loader.NewWatcher(cfg.Ontology.Dir, logger)
		if err != nil {
			return err
		}
		session.watcher = w
	} else {
		u, err := loader.Load(cfg.Ontology.Dir)
		if err != nil {
			return fmt.Errorf("loading ontology from %s: %w", cfg.Ontology.Dir, err)
		}
		session.universe = u
	}
	defer session.close()

	logger.Info("starting interactive explorer",
		zap.String("dir", cfg.Ontology.Dir), zap.Bool("watch", cfg.Ontology.Watch))

	model := newExploreModel(session)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func newExploreModel(session *exploreSession) exploreModel {
	styles := ui.DefaultStyles()

	ti := textinput.New()
	ti.Prompt = "│ "
	ti.PromptStyle = styles.Prompt
	ti.CharLimit = 4096
	ti.Width = 80

	return exploreModel{
		textinput: ti,
		styles:    styles,
		mode:      modeMenu,
		listLen:   session.cfg.Matching.ListSize,
		session:   session,
	}
}

func (m exploreModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 6
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.mode != modeMenu {
				m.mode = modeMenu
				m.textinput.Blur()
				m.textinput.SetValue("")
				return m, nil
			}
			return m, tea.Quit
		}

		if m.mode == modeMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.enterMode(modeFields)
			case "2":
				return m.enterMode(modeMatch)
			case "3":
				return m.enterMode(modeValidate)
			}
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if msg.Type == tea.KeyEnter {
			input := strings.TrimSpace(m.textinput.Value())
			m.textinput.SetValue("")
			if input != "" {
				m.viewport.SetContent(m.runQuery(input))
				m.viewport.GotoTop()
			}
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m exploreModel) enterMode(mode exploreMode) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.textinput.Placeholder = modePrompts[mode]
	m.textinput.Focus()
	return m, textinput.Blink
}

// runQuery executes the current mode's operation and renders the result.
func (m exploreModel) runQuery(input string) string {
	x := m.session.engine()
	switch m.mode {
	case modeFields:
		return m.renderFields(x, input)
	case modeMatch:
		return m.renderMatches(x, input)
	case modeValidate:
		return m.renderValidity(x, input)
	}
	return ""
}

func (m exploreModel) renderFields(x *explorer.Explorer, input string) string {
	namespace, typeName := parseTypeRef(input)
	fields, err := x.FieldsOf(namespace, typeName, false)
	if err != nil {
		return m.styles.Error.Render(err.Error())
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Fields for %s:", input)) + "\n")
	for _, f := range fields {
		if f.Optional {
			b.WriteString(m.styles.Optional.Render(f.Key()+" (optional)") + "\n")
		} else {
			b.WriteString(m.styles.Field.Render(f.Key()) + "\n")
		}
	}
	return b.String()
}

func (m exploreModel) renderMatches(x *explorer.Explorer, input string) string {
	matches, err := x.RankTypes(parseFieldList(input), "", false)
	if err != nil {
		return m.styles.Error.Render(err.Error())
	}

	limit := m.listLen
	if limit > len(matches) {
		limit = len(matches)
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Top %d of %d matches:", limit, len(matches))) + "\n")
	for _, match := range matches[:limit] {
		b.WriteString(renderMatch(m.styles, match, x.MatchThreshold()) + "\n")
	}
	return b.String()
}

func (m exploreModel) renderValidity(x *explorer.Explorer, input string) string {
	ns, name := parseTypeRef(input)
	ok, err := x.IsValid(ontology.FieldIdentity{Namespace: ns, Name: name})
	if err != nil {
		return m.styles.Error.Render(err.Error())
	}
	if ok {
		return m.styles.Valid.Render(fmt.Sprintf("✓ %s is defined in the ontology", input))
	}
	return m.styles.Invalid.Render(fmt.Sprintf("✗ %s is not defined in the ontology", input))
}

func (m exploreModel) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("ontoscout explorer") + "\n")
	switch m.mode {
	case modeMenu:
		b.WriteString(m.styles.Help.Render(
			"1: fields of a type   2: match a field list   3: validate a field   q: quit") + "\n\n")
	default:
		b.WriteString(m.styles.Help.Render(modePrompts[m.mode]+"(esc for menu)") + "\n")
		b.WriteString(m.textinput.View() + "\n\n")
	}
	b.WriteString(m.viewport.View())
	return b.String()
}
