package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateLogin state = iota
	statePosts
)

type RootModel struct {
	State    state
	Session  *Session
	Login    LoginModel
	Posts    PostsModel
	Quitting bool
	width    int
	height   int
}

func NewRootModel(baseURL string) RootModel {
	s := NewSession(baseURL)
	return RootModel{
		State:   stateLogin,
		Session: s,
		Login:   NewLoginModel(s),
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.State == statePosts {
			m.Posts.Table.SetHeight(tableHeight(msg.Height))
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}
	case loginDoneMsg:
		if msg.Err == nil {
			m.State = statePosts
			m.Posts = NewPostsModel(m.Session, m.width, m.height)
			return m, m.Posts.Init()
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case stateLogin:
		m.Login, cmd = m.Login.Update(msg)
	case statePosts:
		m.Posts, cmd = m.Posts.Update(msg)
	}
	return m, cmd
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	switch m.State {
	case stateLogin:
		return m.Login.View()
	case statePosts:
		return m.Posts.View()
	}
	return "Unknown state"
}
