package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/crest-tools/crest/pkg/digraph"
)

// Explore styles.
var (
	exploreTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	exploreSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	exploreNormalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	exploreDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [graph.json]",
		Short: "Browse a computed graph in the terminal",
		Long: `Browse a computed graph in the terminal.

Tab switches between the node and arc views; j/k or the arrow keys move the
cursor; q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := digraph.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}
			p := tea.NewProgram(newExploreModel(g))
			_, err = p.Run()
			return err
		},
	}
}

// exploreModel is the bubbletea model for graph browsing: two scrollable
// tabs, nodes and arcs.
type exploreModel struct {
	graph   *digraph.Graph
	arcsTab bool
	cursor  int
	offset  int
	height  int
}

func newExploreModel(g *digraph.Graph) exploreModel {
	return exploreModel{graph: g, height: 15}
}

func (m exploreModel) Init() tea.Cmd { return nil }

func (m exploreModel) rows() int {
	if m.arcsTab {
		return m.graph.ArcCount()
	}
	return m.graph.NodeCount()
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.arcsTab = !m.arcsTab
			m.cursor = 0
			m.offset = 0
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < m.rows()-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%d nodes, %d arcs", m.graph.NodeCount(), m.graph.ArcCount())
	b.WriteString(exploreTitleStyle.Render("crest explore") + "  " + exploreDimStyle.Render(title))
	b.WriteString("\n\n")

	if m.arcsTab {
		b.WriteString(m.viewArcs())
	} else {
		b.WriteString(m.viewNodes())
	}

	b.WriteString("\n" + exploreDimStyle.Render("tab: switch view · j/k: move · q: quit") + "\n")
	return b.String()
}

func (m exploreModel) viewNodes() string {
	var b strings.Builder
	nodes := m.graph.Nodes()
	for i := m.offset; i < len(nodes) && i < m.offset+m.height; i++ {
		n := nodes[i]
		line := fmt.Sprintf("node %-4d vertex %-6d value %-10.4g in %d out %d",
			n.ID, n.VertexID, n.Value, m.graph.InDegree(n.ID), m.graph.OutDegree(n.ID))
		b.WriteString(m.styleLine(i, line))
	}
	return b.String()
}

func (m exploreModel) viewArcs() string {
	var b strings.Builder
	arcs := m.graph.Arcs()
	for i := m.offset; i < len(arcs) && i < m.offset+m.height; i++ {
		a := arcs[i]
		line := fmt.Sprintf("arc %-4d %d -> %-4d region %d", a.ID, a.From, a.To, len(a.Region))
		b.WriteString(m.styleLine(i, line))
	}
	return b.String()
}

func (m exploreModel) styleLine(i int, line string) string {
	if i == m.cursor {
		return exploreSelectedStyle.Render("> "+line) + "\n"
	}
	return exploreNormalStyle.Render("  "+line) + "\n"
}
