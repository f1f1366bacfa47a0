package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/alexanderramin/worklens/internal/cli/formatter"
	"github.com/alexanderramin/worklens/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// uploadResultMsg signals that the selected file has been parsed and stored.
type uploadResultMsg struct {
	dataset *domain.Dataset
	err     error
}

// uploadView is the entry screen: a wizard asking for the timesheet CSV
// path. On success it hands off to the dashboard.
type uploadView struct {
	state   *SessionState
	wizard  *wizardView
	path    string
	loading bool
	err     error
}

func newUploadView(state *SessionState) *uploadView {
	v := &uploadView{state: state}
	v.wizard = v.newWizard()
	return v
}

// newWizard builds a fresh path wizard; submitting it kicks off the upload.
func (v *uploadView) newWizard() *wizardView {
	return newWizardView(v.state, "Upload", uploadForm(&v.path), func() tea.Cmd {
		v.loading = true
		v.err = nil
		return v.upload(v.path)
	})
}

func (v *uploadView) ID() ViewID    { return ViewUpload }
func (v *uploadView) Title() string { return "Upload" }

func (v *uploadView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "upload")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (v *uploadView) Init() tea.Cmd {
	return v.wizard.Init()
}

// upload reads and stores the selected file off the Update loop.
func (v *uploadView) upload(path string) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return uploadResultMsg{err: err}
		}
		ds, err := app.Datasets.Upload(context.Background(), filepath.Base(path), data)
		if err != nil {
			return uploadResultMsg{err: err}
		}
		return uploadResultMsg{dataset: ds}
	}
}

func (v *uploadView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadResultMsg:
		v.loading = false
		if msg.err != nil {
			// Keep the user on the form with a fresh input and the
			// parse diagnostic above it.
			v.err = msg.err
			v.wizard = v.newWizard()
			return v, v.wizard.Init()
		}
		v.state.SetDataset(msg.dataset)
		return v, replaceView(newDashboardView(v.state))

	case tea.KeyMsg:
		if v.loading {
			return v, nil
		}
	}

	model, cmd := v.wizard.Update(msg)
	if w, ok := model.(*wizardView); ok {
		v.wizard = w
	}
	return v, cmd
}

func (v *uploadView) View() string {
	var b []string

	if v.err != nil {
		b = append(b, "  "+formatter.StyleRed.Render("Upload failed: "+v.err.Error()))
	}
	if v.loading {
		b = append(b, "  "+formatter.Dim("Parsing "+v.path+"..."))
	} else {
		b = append(b, v.wizard.View())
	}

	out := "\n"
	for _, s := range b {
		out += s + "\n"
	}
	return out
}
