package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/tabula/table"
)

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

type model struct {
	table    table.Model[item]
	dataPath string
	logger   *slog.Logger
	status   string
}

func newModel(items []item, v *itemViewer, cfg demoConfig, logger *slog.Logger) model {
	tc := cfg.tableConfig()
	tc.Options.Logger = logger
	if clip := (table.SystemClipboard{}); clip.Supported() {
		tc.Clipboard = clip
	}
	tc.OnChange = func(ev table.ChangeEvent) {
		logger.Debug("grid changed",
			"grid", ev.GridID, "version", ev.Version, "rows", ev.Rows,
			"visible", ev.Visible, "cursor", ev.Cursor, "modified", ev.Modified)
	}
	return model{
		table:    table.New(items, table.Viewer[item](v), tc),
		dataPath: cfg.Data,
		logger:   logger,
	}
}

func (m model) Init() tea.Cmd { return m.table.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table = m.table.SetSize(msg.Width, max(msg.Height-1, 0))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return m, tea.Quit
		case "ctrl+s":
			m.status = m.save()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) save() string {
	if m.dataPath == "" {
		return "no data file configured"
	}
	g := m.table.Grid()
	items := make([]item, 0, g.Len())
	for _, it := range g.All() {
		items = append(items, *it)
	}
	if err := saveItems(m.dataPath, items); err != nil {
		m.logger.Error("save failed", "path", m.dataPath, "err", err)
		return err.Error()
	}
	g.ClearUserModification()
	return "saved " + m.dataPath
}

func (m model) View() string {
	g := m.table.Grid()
	status := fmt.Sprintf("%d/%d rows  undo %d", len(g.VisibleRows()), g.Len(), g.HistoryLen())
	if g.HasUserModification() {
		status += "  modified"
	}
	if m.status != "" {
		status += "  " + m.status
	}
	return m.table.View() + "\n" + statusStyle.Render(status+"  ctrl+s save  ctrl+q quit")
}

// openLog returns a debug logger writing to path, or a discarding one.
func openLog(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

func run(args []string) error {
	fs := flag.NewFlagSet("tabula-demo", flag.ContinueOnError)
	cfgPath := fs.String("config", "tabula.toml", "TOML config file")
	dataPath := fs.String("data", "", "YAML rows file (overrides the config)")
	logPath := fs.String("log", "", "write a debug log to this file")
	filter := fs.String("filter", "", "only show rows whose name contains this text")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if *dataPath != "" {
		cfg.Data = *dataPath
	}

	logger, closeLog, err := openLog(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	items, err := loadItems(cfg.Data)
	if err != nil {
		return err
	}
	v, err := newItemViewer(cfg.Locale, *filter)
	if err != nil {
		return err
	}
	logger.Info("starting", "rows", len(items), "data", cfg.Data, "locale", cfg.Locale)

	p := tea.NewProgram(newModel(items, v, cfg, logger), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
