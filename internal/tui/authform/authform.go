// ABOUTME: Login and signup forms as bubbletea models built on huh
// ABOUTME: Emits submission messages with credentials; never performs network calls itself

package authform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jambosec/jambosec-cli/internal/i18n"
	"github.com/jambosec/jambosec-cli/internal/tui/icons"
	"github.com/jambosec/jambosec-cli/internal/tui/styles"
)

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// LoginSubmittedMsg carries the credentials entered in the login form.
type LoginSubmittedMsg struct {
	Email    string
	Password string
	Remember bool
}

// SignupSubmittedMsg carries the fields entered in the signup form.
type SignupSubmittedMsg struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Remember  bool
}

// SwitchModeMsg asks the parent to show the other form.
type SwitchModeMsg struct {
	Mode Mode
}

// CancelledMsg is sent when the user backs out of the form.
type CancelledMsg struct{}

// Form hosts the active huh form.
type Form struct {
	mode  Mode
	form  *huh.Form
	lang  i18n.Lang
	width int

	email     string
	username  string
	password  string
	firstName string
	lastName  string
	remember  bool
}

// createTheme returns a huh theme matching the application palette.
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	sky := lipgloss.Color("#0EA5E9")
	skyLight := lipgloss.Color("#38BDF8")
	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")
	slate := lipgloss.Color("#334155")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(sky).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(sky)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(skyLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(sky).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(grayLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(sky).
		Bold(true)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(sky)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(sky)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(sky).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(gray).
		SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// New creates a form in the given mode.
func New(mode Mode, lang i18n.Lang) *Form {
	f := &Form{mode: mode, lang: lang, remember: true}
	if mode == ModeSignup {
		f.form = f.createSignupForm()
	} else {
		f.form = f.createLoginForm()
	}
	return f
}

func (f *Form) createLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&f.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.password).
				Validate(validateRequired("password")),
			huh.NewConfirm().
				Title("Stay signed in?").
				Affirmative("Yes").
				Negative("No").
				Value(&f.remember),
		).Title(i18n.T("auth.login", f.lang)).
			Description("Sign in to keep your conversations and progress"),
	).WithTheme(createTheme())
}

func (f *Form) createSignupForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&f.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Username").
				Value(&f.username).
				Validate(validateRequired("username")),
			huh.NewInput().
				Title("First name").
				Value(&f.firstName),
			huh.NewInput().
				Title("Last name").
				Value(&f.lastName),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.password).
				Validate(validatePassword),
			huh.NewConfirm().
				Title("Stay signed in?").
				Affirmative("Yes").
				Negative("No").
				Value(&f.remember),
		).Title(i18n.T("auth.signup", f.lang)).
			Description("Create an account to save your progress"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return f, func() tea.Msg { return CancelledMsg{} }
		case "ctrl+s":
			// Toggle between login and signup
			next := ModeSignup
			if f.mode == ModeSignup {
				next = ModeLogin
			}
			return f, func() tea.Msg { return SwitchModeMsg{Mode: next} }
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		return f, f.submit()
	}

	return f, cmd
}

func (f *Form) submit() tea.Cmd {
	if f.mode == ModeSignup {
		msg := SignupSubmittedMsg{
			Email:     strings.TrimSpace(f.email),
			Username:  strings.TrimSpace(f.username),
			Password:  f.password,
			FirstName: strings.TrimSpace(f.firstName),
			LastName:  strings.TrimSpace(f.lastName),
			Remember:  f.remember,
		}
		return func() tea.Msg { return msg }
	}
	msg := LoginSubmittedMsg{
		Email:    strings.TrimSpace(f.email),
		Password: f.password,
		Remember: f.remember,
	}
	return func() tea.Msg { return msg }
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder

	title := icons.App.String() + " JamboSec"
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(f.form.View())
	sb.WriteString("\n")

	hint := "ctrl+s switch to signup"
	if f.mode == ModeSignup {
		hint = "ctrl+s switch to login"
	}
	sb.WriteString(styles.Help.Render(hint + "  esc back"))

	return sb.String()
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, "@") {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validatePassword(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
