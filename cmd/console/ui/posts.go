package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"postboard/backend/app/dto"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type postsLoadedMsg struct {
	Posts []dto.PostResponse
	Err   error
}

type likeDoneMsg struct {
	PostID uint
	Liked  bool
	Err    error
}

// PostsModel lists posts with their like counts and toggles likes for the
// logged-in user.
type PostsModel struct {
	Session   *Session
	Table     table.Model
	Search    textinput.Model
	Searching bool
	Posts     []dto.PostResponse
	Status    string
	Err       error
}

func NewPostsModel(s *Session, width, height int) PostsModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Title", Width: 40},
		{Title: "Owner", Width: 20},
		{Title: "Likes", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "title contains..."

	return PostsModel{Session: s, Table: t, Search: search}
}

func tableHeight(height int) int {
	if height <= 0 {
		return 15
	}
	if h := height - 10; h > 3 {
		return h
	}
	return 3
}

func (m PostsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PostsModel) Update(msg tea.Msg) (PostsModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case postsLoadedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Err = nil
		m.setPosts(msg.Posts)
		return m, nil

	case likeDoneMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		verb := "Liked"
		if !msg.Liked {
			verb = "Unliked"
		}
		m.Err = nil
		m.Status = fmt.Sprintf("%s post %d", verb, msg.PostID)
		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.Searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			m.Searching = true
			return m, m.Search.Focus()
		case "r":
			m.Status = ""
			return m, m.loadCmd()
		case "l", "u":
			id, ok := m.selectedID()
			if !ok {
				return m, nil
			}
			return m, m.likeCmd(id, msg.String() == "l")
		case "q":
			return m, tea.Quit
		}
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m PostsModel) updateSearch(msg tea.KeyMsg) (PostsModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.Searching = false
		m.Search.Blur()
		return m, m.loadCmd()
	case tea.KeyEsc:
		m.Searching = false
		m.Search.Blur()
		m.Search.SetValue("")
		return m, m.loadCmd()
	}
	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	return m, cmd
}

func (m *PostsModel) setPosts(posts []dto.PostResponse) {
	m.Posts = posts
	rows := make([]table.Row, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, table.Row{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Title,
			p.User.Username,
			strconv.Itoa(p.Likes),
		})
	}
	m.Table.SetRows(rows)
}

func (m PostsModel) selectedID() (uint, bool) {
	row := m.Table.SelectedRow()
	if len(row) == 0 {
		return 0, false
	}
	id, err := strconv.ParseUint(row[0], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (m PostsModel) loadCmd() tea.Cmd {
	s := m.Session
	search := m.Search.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		posts, err := s.ListPosts(ctx, search)
		return postsLoadedMsg{Posts: posts, Err: err}
	}
}

func (m PostsModel) likeCmd(id uint, liked bool) tea.Cmd {
	s := m.Session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return likeDoneMsg{PostID: id, Liked: liked, Err: s.ToggleLike(ctx, id, liked)}
	}
}

func (m PostsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Postboard - Posts") + "\n\n")
	if m.Searching || m.Search.Value() != "" {
		b.WriteString(m.Search.View() + "\n\n")
	}
	if len(m.Posts) == 0 {
		b.WriteString(blurredStyle.Render("No posts found") + "\n")
	} else {
		b.WriteString(m.Table.View())
	}
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("'/' search, 'l' like, 'u' unlike, 'r' refresh, 'q' quit"))
	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return docStyle.Render(b.String())
}
