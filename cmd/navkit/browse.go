package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vango-dev/navkit/internal/config"
	"github.com/vango-dev/navkit/internal/errors"
	"github.com/vango-dev/navkit/pkg/location"
	"github.com/vango-dev/navkit/pkg/router"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	addressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236")).Padding(0, 1)
	outletStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func browseCmd(flags *globalFlags) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the route table in the terminal",
		Long: `Open a terminal browser over the route table. The address bar works
like a browser's: edit it and press enter, or go back and forward
through history. Numbered links navigate to named routes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject(flags)
			if err != nil {
				return err
			}
			m, err := newBrowser(cfg, start)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&start, "start", "/", "Initial address")

	return cmd
}

// browseHost is the router host of the terminal browser.
type browseHost struct {
	renders int
	lastErr error
}

func (h *browseHost) AddController(router.Lifecycle)    {}
func (h *browseHost) RemoveController(router.Lifecycle) {}
func (h *browseHost) RequestUpdate()                    { h.renders++ }
func (h *browseHost) ReportError(err error)             { h.lastErr = err }

type browser struct {
	title  string
	mem    *location.Memory
	router *router.Router
	host   *browseHost
	links  []string

	editing bool
	input   string
	status  string
	width   int
}

func newBrowser(cfg *config.Config, start string) (browser, error) {
	rc, err := cfg.RouterConfig()
	if err != nil {
		return browser{}, err
	}

	// Logs would draw over the screen.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mem := location.NewMemory(start)
	r, err := router.NewFromConfig(rc, mem, router.WithLogger(logger))
	if err != nil {
		return browser{}, errors.FromRouter(err)
	}

	m := browser{
		title:  fmt.Sprintf("%s (%s mode)", cfg.Name, r.Mode()),
		mem:    mem,
		router: r,
		host:   &browseHost{},
	}
	for _, rc := range cfg.Routes {
		if rc.Name != "" && rc.Redirect == nil {
			m.links = append(m.links, rc.Name)
		}
	}
	_ = r.Attach(m.host)
	return m, nil
}

func (m browser) Init() tea.Cmd {
	return nil
}

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m browser) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.host.lastErr = nil

	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter", "e":
		m.editing = true
		m.input = m.mem.Href()
	case "ctrl+b", "alt+left", "left":
		if !m.mem.Back() {
			m.status = "at the start of history"
		}
	case "ctrl+f", "alt+right", "right":
		if !m.mem.Forward() {
			m.status = "at the end of history"
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.follow(int(key[0] - '1'))
		}
	}
	return m, nil
}

func (m browser) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.editing = false
		m.host.lastErr = nil
		m.mem.Edit(m.input)
	case tea.KeyEsc:
		m.editing = false
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

// follow navigates to the i-th link.
func (m *browser) follow(i int) {
	if i >= len(m.links) {
		return
	}
	if err := m.router.Navigate(router.Named(m.links[i], nil)); err != nil && err != m.router.Err() {
		m.status = errors.FromRouter(err).FormatCompact()
	}
}

func (m browser) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("navkit · "+m.title) + "\n\n")

	address := m.mem.Href()
	if m.editing {
		address = m.input + "█"
	}
	b.WriteString(addressStyle.Render(address) + "\n\n")

	if route := m.router.Route(); route != nil {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Route: "), routeName(route)))
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Params:"), formatPairs(m.router.Params())))
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Query: "), formatPairs(m.router.Query())))
	}

	body := "(nothing rendered yet)"
	if v := m.router.Outlet(); v != nil {
		body = fmt.Sprint(v)
	}
	if m.router.NotFound() {
		body = warnStyle.Render("No route for " + m.router.MissedPath())
	}
	box := outletStyle
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}
	b.WriteString(box.Render(body) + "\n")

	if err := m.host.lastErr; err != nil {
		b.WriteString(errorStyle.Render(errors.FromRouter(err).FormatCompact()) + "\n")
	}
	if m.status != "" {
		b.WriteString(warnStyle.Render(m.status) + "\n")
	}

	if len(m.links) > 0 {
		links := make([]string, len(m.links))
		for i, name := range m.links {
			links[i] = fmt.Sprintf("%d %s", i+1, name)
		}
		b.WriteString("\n" + labelStyle.Render("Links: ") + strings.Join(links, "  ") + "\n")
	}

	help := "enter edit address · ←/ctrl+b back · →/ctrl+f forward · 1-9 follow link · q quit"
	if m.editing {
		help = "enter go · esc cancel"
	}
	b.WriteString("\n" + footerStyle.Render(help))
	return b.String()
}
