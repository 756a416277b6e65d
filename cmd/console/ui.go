package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mit2nil/decorum/pkg/catalog"
	"github.com/mit2nil/decorum/pkg/session"
	"github.com/muesli/reflow/wordwrap"
)

const placeholderText = "Type a command (help for a list)..."

// ConsoleUI is the BubbleTea model for the hot-seat client. Both players
// share one terminal; the side panel follows whoever's turn it is.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	sess        *session.Session
	logViewport viewport.Model
	input       textinput.Model
	log         []string
	ready       bool
	width       int
	height      int

	showQuitModal bool
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")) // green

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	roomStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	selectedRoomStyle = roomStyle.
				BorderForeground(lipgloss.Color("205")).
				Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	wallStyles = map[catalog.Color]lipgloss.Style{
		catalog.Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		catalog.Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		catalog.Blue:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		catalog.Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
	}
)

func NewConsoleUI(sess *session.Session) ConsoleUI {
	ti := textinput.New()
	ti.Placeholder = placeholderText
	ti.Focus()
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 200

	vp := viewport.New(60, 8)

	return ConsoleUI{
		sess:        sess,
		logViewport: vp,
		input:       ti,
		log: []string{
			"Welcome to Decorum. Type " + okStyle.Render("help") + " for commands.",
		},
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textinput.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = m.boardWidth() - 2
		m.logViewport.Height = 8
		m.input.Width = m.boardWidth() - 6
		m.ready = true
		m.writeLogContent()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if input == "" {
				return m, nil
			}
			if strings.EqualFold(input, "quit") {
				m.showQuitModal = true
				return m, nil
			}
			m.runCommand(input)
			m.writeLogContent()
			return m, nil
		}
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.input.Focus()
				return m, textinput.Blink
			}
		}
	}
	return m, nil
}

// runCommand parses and applies one command, appending the outcome to the
// log. All game mutation flows through the session's action methods.
func (m *ConsoleUI) runCommand(input string) {
	fields := strings.Fields(strings.ToLower(input))
	verb := fields[0]
	args := fields[1:]

	switch verb {
	case "help":
		m.appendLog(helpText)

	case "select":
		if len(args) == 0 {
			m.appendError("usage: select <room> [lamp|wall hanging|curio]")
			return
		}
		idx, ok := catalog.RoomIndex(args[0])
		if !ok && len(args) > 1 {
			// Two-word room names arrive as two fields.
			idx, ok = catalog.RoomIndex(args[0] + " " + args[1])
			if ok {
				args = args[1:]
			}
		}
		if !ok {
			m.appendError("unknown room: " + args[0])
			return
		}
		if len(args) > 1 {
			slot := strings.Join(args[1:], " ")
			typ, ok := catalog.ParseObjectType(slot)
			if !ok {
				m.appendError("unknown slot: " + slot)
				return
			}
			m.report(m.sess.SelectSlot(idx, typ),
				fmt.Sprintf("Selected %s %s slot.", catalog.RoomName(idx), strings.ToLower(string(typ))))
			return
		}
		m.report(m.sess.SelectRoom(idx), "Selected "+catalog.RoomName(idx)+".")

	case "deselect":
		m.sess.Deselect()
		m.appendLog("Selection cleared.")

	case "add":
		style, ok := m.styleArg(args)
		if !ok {
			return
		}
		m.report(m.sess.AddObject(style), "Object placed.")

	case "remove":
		m.report(m.sess.RemoveObject(), "Object removed.")

	case "swap":
		style, ok := m.styleArg(args)
		if !ok {
			return
		}
		m.report(m.sess.SwapObject(style), "Object swapped.")

	case "paint":
		if len(args) == 0 {
			m.appendError("usage: paint <color>")
			return
		}
		color, ok := catalog.ParseColor(args[0])
		if !ok {
			m.appendError("unknown color: " + args[0])
			return
		}
		m.report(m.sess.PaintWalls(color), "Walls painted "+strings.ToLower(string(color))+".")

	case "undo":
		m.report(m.sess.Undo(), "Action undone.")

	case "end":
		m.sess.EndTurn()
		next := m.sess.Players[m.sess.CurrentPlayer].Name
		m.appendLog(fmt.Sprintf("Turn passed. %s, take the seat. (Round %d)", next, m.sess.Round()))

	case "check":
		results, err := m.sess.CheckConditions(m.sess.CurrentPlayer)
		if err != nil {
			m.appendError(err.Error())
			return
		}
		met := 0
		for _, r := range results {
			if r.Met {
				met++
			}
		}
		m.appendLog(fmt.Sprintf("%d of %d conditions met.", met, len(results)))
		if m.sess.AllConditionsMet() {
			m.appendLog(okStyle.Render("Every condition of both players holds. You win together!"))
		}

	case "hth":
		if err := m.sess.HeartToHeart(); err != nil {
			m.appendError(err.Error())
			return
		}
		m.appendLog(fmt.Sprintf("Heart-to-heart: talk freely about your conditions. %d left.", m.sess.HeartsLeft()))

	case "copy":
		p := m.sess.Players[m.sess.CurrentPlayer]
		lines := make([]string, len(p.Conditions))
		for i, c := range p.Conditions {
			lines[i] = c.Render()
		}
		if err := clipboard.WriteAll(strings.Join(lines, "\n")); err != nil {
			m.appendError("clipboard: " + err.Error())
			return
		}
		m.appendLog("Conditions copied to clipboard.")

	default:
		m.appendError("unknown command: " + verb)
	}
}

const helpText = `Commands:
  select <room> [lamp|wall hanging|curio]  target a room or slot
  deselect                            clear the selection
  add <style>     place an object in the selected empty slot
  remove          clear the selected occupied slot
  swap <style>    replace the object in the selected slot
  paint <color>   repaint the selected room's walls
  undo            take back this turn's action
  end             pass the turn to the other player
  check           evaluate your conditions
  hth             spend a heart-to-heart
  copy            copy your conditions to the clipboard
  quit            leave the game`

func (m *ConsoleUI) styleArg(args []string) (catalog.Style, bool) {
	if len(args) == 0 {
		m.appendError("usage: add|swap <modern|antique|retro|unusual>")
		return "", false
	}
	style, ok := catalog.ParseStyle(args[0])
	if !ok {
		m.appendError("unknown style: " + args[0])
		return "", false
	}
	return style, true
}

func (m *ConsoleUI) report(err error, okMsg string) {
	if err != nil {
		m.appendError(err.Error())
		return
	}
	m.appendLog(okMsg)
}

func (m *ConsoleUI) appendLog(line string) {
	m.log = append(m.log, line)
}

func (m *ConsoleUI) appendError(msg string) {
	m.log = append(m.log, errorStyle.Render(msg))
}

func (m *ConsoleUI) writeLogContent() {
	width := m.logViewport.Width
	if width <= 0 {
		width = 60
	}
	var b strings.Builder
	for _, line := range m.log {
		b.WriteString(wordwrap.String(line, width) + "\n")
	}
	m.logViewport.SetContent(b.String())
	m.logViewport.GotoBottom()
}

func (m ConsoleUI) boardWidth() int {
	w := int(float64(m.width) * 0.65)
	if w < 50 {
		w = 50
	}
	return w
}

func (m ConsoleUI) renderRoom(idx int) string {
	room := m.sess.House.Room(idx)
	wall := wallStyles[room.WallColor]

	var b strings.Builder
	b.WriteString(wall.Bold(true).Render(room.Name) + "\n")
	b.WriteString(wall.Render("walls: "+strings.ToLower(string(room.WallColor))) + "\n")
	for _, typ := range catalog.ObjectTypes() {
		label := strings.ToLower(string(typ))
		if obj := room.Slot(typ); obj != nil {
			objStyle := wallStyles[obj.Color]
			b.WriteString(fmt.Sprintf("%-13s %s\n", label+":",
				objStyle.Render(strings.ToLower(string(obj.Style)))))
		} else {
			b.WriteString(fmt.Sprintf("%-13s %s\n", label+":", promptStyle.Render("empty")))
		}
	}

	style := roomStyle
	if m.sess.SelectedRoom == idx {
		style = selectedRoomStyle
	}
	return style.Width(26).Render(strings.TrimRight(b.String(), "\n"))
}

func (m ConsoleUI) renderBoard() string {
	top := lipgloss.JoinHorizontal(lipgloss.Top, m.renderRoom(0), m.renderRoom(1))
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, m.renderRoom(2), m.renderRoom(3))
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (m ConsoleUI) renderSidePanel(width int) string {
	p := m.sess.Players[m.sess.CurrentPlayer]

	var b strings.Builder
	b.WriteString(titleStyle.Render("DECORUM") + "\n\n")
	b.WriteString(fmt.Sprintf("Round %d\n", m.sess.Round()))
	b.WriteString(p.Name + "'s turn\n")
	if m.sess.ActionTaken {
		b.WriteString("Action taken (undo or end)\n")
	} else {
		b.WriteString("Action available\n")
	}
	b.WriteString(fmt.Sprintf("Heart-to-hearts left: %d\n\n", m.sess.HeartsLeft()))

	b.WriteString(titleStyle.Render("Your conditions") + "\n")
	for _, c := range p.Conditions {
		mark := errorStyle.Render("✗")
		if c.Evaluate(m.sess.House) {
			mark = okStyle.Render("✓")
		}
		b.WriteString(mark + " " + wordwrap.String(c.Render(), width-4) + "\n")
	}

	if m.sess.SelectedRoom >= 0 {
		b.WriteString("\nSelected: " + catalog.RoomName(m.sess.SelectedRoom))
		if m.sess.SelectedSlot != "" {
			b.WriteString(" / " + strings.ToLower(string(m.sess.SelectedSlot)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	var content strings.Builder
	content.WriteString(titleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("The session lives only in this terminal.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep playing"))
	modal := modalStyle.Width(46).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	boardWidth := m.boardWidth()
	sideWidth := m.width - boardWidth - 4
	if sideWidth < 24 {
		sideWidth = 24
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderBoard(),
		separatorStyle.Render(strings.Repeat("─", boardWidth-2)),
		m.logViewport.View(),
		m.input.View(),
	)

	right := lipgloss.NewStyle().
		PaddingLeft(2).
		Width(sideWidth).
		Render(m.renderSidePanel(sideWidth))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
