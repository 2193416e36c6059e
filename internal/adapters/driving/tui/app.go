package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/groundchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/groundchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/groundchat/internal/core/domain"
)

// exchange is one question and its answer in the transcript.
// result stays nil while the answer is in flight.
type exchange struct {
	question string
	result   *domain.ChatResult
	err      error
}

// answerReceived carries a chat result back to the model.
type answerReceived struct {
	result *domain.ChatResult
	err    error
}

// titleResolved carries the collection title looked up at startup.
type titleResolved struct {
	title string
}

// App is the chat session model following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// collectionID is the collection every question is asked against.
	collectionID string

	// collectionTitle is shown in the header. Falls back to the ID
	// until the title lookup resolves.
	collectionTitle string

	// input is the question prompt.
	input textinput.Model

	// viewport scrolls the transcript.
	viewport viewport.Model

	// spinner animates while an answer is in flight.
	spinner spinner.Model

	// transcript holds the questions asked this session.
	transcript []exchange

	// busy is true while a chat request is in flight.
	busy bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat session over the given collection.
func NewApp(ports *Ports, collectionID string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if collectionID == "" {
		return nil, ErrMissingCollectionID
	}

	s := styles.DefaultStyles()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the document..."
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		collectionID:    collectionID,
		collectionTitle: collectionID,
		input:           ti,
		viewport:        viewport.New(0, 0),
		spinner:         sp,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		tea.SetWindowTitle("groundchat"),
	}
	if a.ports.Collections != nil {
		cmds = append(cmds, a.resolveTitle())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case answerReceived:
		a.handleAnswer(msg)
		return a, nil

	case titleResolved:
		if msg.title != "" {
			a.collectionTitle = msg.title
		}
		return a, nil
	}

	// Forward other messages to the input for cursor blink handling.
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKeyMsg processes keyboard input.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if keymap.Matches(msg.String(), a.keymap.Quit) {
		return a, tea.Quit
	}

	if keymap.Matches(msg.String(), a.keymap.Clear) {
		a.transcript = nil
		a.err = nil
		a.viewport.SetContent(a.renderTranscript())
		a.viewport.GotoTop()
		return a, nil
	}

	// Scroll keys go to the viewport; the input keeps focus throughout.
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		return a, a.submit()
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	// Typing while an answer is in flight would desync the transcript.
	if a.busy {
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit sends the typed question to the chat service.
func (a *App) submit() tea.Cmd {
	if a.busy {
		return nil
	}

	question := strings.TrimSpace(a.input.Value())
	if question == "" {
		return nil
	}

	a.transcript = append(a.transcript, exchange{question: question})
	a.busy = true
	a.err = nil
	a.input.Reset()
	a.viewport.SetContent(a.renderTranscript())
	a.viewport.GotoBottom()

	return tea.Batch(a.spinner.Tick, a.ask(question))
}

// ask returns a command that performs the chat request.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.ports.Chat.Chat(a.ctx, domain.ChatRequest{
			CollectionID: a.collectionID,
			Query:        question,
		})
		return answerReceived{result: result, err: err}
	}
}

// resolveTitle returns a command that looks up the collection title.
func (a *App) resolveTitle() tea.Cmd {
	return func() tea.Msg {
		collections, err := a.ports.Collections.List(a.ctx)
		if err != nil {
			// Header keeps showing the ID; not worth surfacing.
			return titleResolved{}
		}
		for i := range collections {
			if collections[i].ID == a.collectionID {
				return titleResolved{title: collections[i].Title}
			}
		}
		return titleResolved{}
	}
}

// handleAnswer records the outcome of a chat request.
func (a *App) handleAnswer(msg answerReceived) {
	a.busy = false
	if len(a.transcript) > 0 {
		last := &a.transcript[len(a.transcript)-1]
		last.result = msg.result
		last.err = msg.err
	}
	a.err = msg.err
	a.viewport.SetContent(a.renderTranscript())
	a.viewport.GotoBottom()
}

// View implements tea.Model.
// It renders the chat session as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	header := a.styles.Title.Render("groundchat") +
		"  " + a.styles.Muted.Render("chatting with "+a.collectionTitle)
	input := a.styles.InputField.Render(a.input.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		a.viewport.View(),
		input,
		a.statusLine(),
	)
}

// renderTranscript renders all exchanges for the viewport.
func (a *App) renderTranscript() string {
	if len(a.transcript) == 0 {
		return a.styles.Muted.Render("Ask a question about the document to get started.")
	}

	width := a.viewport.Width
	if width <= 0 {
		width = 80
	}

	sections := make([]string, 0, len(a.transcript)*4)
	for i := range a.transcript {
		e := &a.transcript[i]
		sections = append(sections, a.styles.Question.Render("You: ")+a.styles.Normal.Render(e.question))

		switch {
		case e.err != nil:
			sections = append(sections, a.styles.Error.Width(width).Render("Error: "+e.err.Error()))
		case e.result == nil:
			// Answer still in flight; the status line shows the spinner.
		default:
			sections = append(sections, a.styles.Answer.Width(width).Render(e.result.Response))
			if e.result.ChunksFound > 0 {
				sections = append(sections,
					a.styles.Source.Render(fmt.Sprintf("grounded in %d chunks", e.result.ChunksFound)))
			}
		}
		sections = append(sections, "")
	}

	return strings.Join(sections, "\n")
}

// statusLine renders the bottom status bar.
func (a *App) statusLine() string {
	if a.busy {
		return a.styles.StatusBar.Width(a.width).Render(a.spinner.View() + " Thinking...")
	}

	bindings := a.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return a.styles.StatusBar.Width(a.width).Render(strings.Join(hints, " | "))
}

// resize reallocates space to the components.
func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// Header, input box and status line take fixed rows; the transcript
	// viewport gets the rest.
	const reserved = 5
	vh := height - reserved
	if vh < 3 {
		vh = 3
	}
	a.viewport.Width = width
	a.viewport.Height = vh

	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	a.input.Width = inputWidth

	a.viewport.SetContent(a.renderTranscript())
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CollectionID returns the collection this session chats against.
func (a *App) CollectionID() string {
	return a.collectionID
}

// CollectionTitle returns the title shown in the header.
func (a *App) CollectionTitle() string {
	return a.collectionTitle
}

// Query returns the current input value.
func (a *App) Query() string {
	return a.input.Value()
}

// Busy returns whether an answer is in flight.
func (a *App) Busy() bool {
	return a.busy
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.resize(width, height)
}
