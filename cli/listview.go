package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ka2n/postview/api/controller"
	"github.com/ka2n/postview/api/record"
	"github.com/samber/lo"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// uiQueue carries controller updates onto the bubbletea event loop.
// A controller publishes at most once, so one slot is enough.
type uiQueue chan func()

func newUIQueue() uiQueue {
	return make(uiQueue, 1)
}

// Dispatch is a controller.Dispatcher
func (q uiQueue) Dispatch(fn func()) {
	q <- fn
}

func (q uiQueue) next() tea.Cmd {
	return func() tea.Msg {
		return dispatchMsg(<-q)
	}
}

type dispatchMsg func()

// recordItem adapts a record to bubbles/list.Item
type recordItem struct {
	rec record.Record
}

func (i recordItem) Title() string       { return i.rec.Title }
func (i recordItem) Description() string { return "" }
func (i recordItem) FilterValue() string { return i.rec.Title }

// itemDelegate renders one title per line
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(recordItem)
	if !ok {
		return
	}
	if index == m.Index() {
		fmt.Fprintln(w, selectedStyle.Render("> "+it.rec.Title))
		return
	}
	fmt.Fprintln(w, "  "+it.rec.Title)
}

// listView projects a ListController's records as a scrollable list of titles.
// The controller must dispatch through queue so that updates reach the view on
// the event loop.
type listView struct {
	ctrl  *controller.ListController
	queue uiQueue
	list  list.Model
}

func newListView(ctrl *controller.ListController, queue uiQueue) *listView {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = "Posts"
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = mutedStyle
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("post", "posts")

	v := &listView{
		ctrl:  ctrl,
		queue: queue,
		list:  l,
	}
	ctrl.Subscribe(v.setRecords)
	return v
}

func (v *listView) setRecords(records []record.Record) {
	items := lo.Map(records, func(r record.Record, _ int) list.Item {
		return recordItem{rec: r}
	})
	v.list.SetItems(items)
}

// titles returns the titles currently shown, in order
func (v *listView) titles() []string {
	return lo.Map(v.list.Items(), func(it list.Item, _ int) string {
		return it.(recordItem).rec.Title
	})
}

func (v *listView) Init() tea.Cmd {
	return v.queue.next()
}

func (v *listView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg()
		return v, nil

	case tea.KeyMsg:
		if v.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			v.ctrl.Close()
			return v, tea.Quit
		}

	case tea.WindowSizeMsg:
		v.list.SetSize(msg.Width, msg.Height)
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *listView) View() string {
	return v.list.View()
}

// RunListView shows the controller's records until the user quits
func RunListView(ctrl *controller.ListController, queue uiQueue) error {
	p := tea.NewProgram(
		newListView(ctrl, queue),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
