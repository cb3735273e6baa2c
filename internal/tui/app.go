// Package tui provides the interactive Bubble Tea front end for billtracker.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/billtracker/internal/cli"
	"github.com/theirongolddev/billtracker/internal/config"
	"github.com/theirongolddev/billtracker/internal/ledger"
	"github.com/theirongolddev/billtracker/internal/rates"
	"github.com/theirongolddev/billtracker/internal/store"
	"github.com/theirongolddev/billtracker/internal/tracker"
	"github.com/theirongolddev/billtracker/internal/tui/components"
	"github.com/theirongolddev/billtracker/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// RatesFetchedMsg carries the result of a background rate fetch. Fetches may
// overlap; each one is applied as it arrives.
type RatesFetchedMsg struct {
	Snapshot rates.Snapshot
	Err      error
}

// refreshTickMsg fires every refresh interval.
type refreshTickMsg struct{}

// RateHistory supplies recorded rates for the currencies tab. *store.History
// implements it.
type RateHistory interface {
	RateHistory(code string, limit int) ([]store.Point, error)
}

// Options configures the TUI.
type Options struct {
	Tracker   *tracker.Tracker
	Config    config.Config
	History   RateHistory // optional
	Logger    zerolog.Logger
	NeedSetup bool
	// SaveConfig persists settings changes. Defaults to config.Save.
	SaveConfig func(config.Config) error
}

// App is the root Bubble Tea model.
type App struct {
	tr      *tracker.Tracker
	cfg     config.Config
	history RateHistory
	log     zerolog.Logger
	saveCfg func(config.Config) error

	// Rate refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	inflight        int
	spinner         spinner.Model

	// notice is the one-shot network banner; any key dismisses it.
	notice string

	flash    string
	flashErr bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	bills    billsState
	curState currenciesState

	// Modal huh form
	form     *huh.Form
	formKind formKind
	formVals *formValues
}

// Tab indexes, in components.Tabs order.
const (
	tabOverview = iota
	tabBills
	tabCurrencies
	tabSettings
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5

	fetchTimeout = 30 * time.Second
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	interval := time.Duration(opts.Config.Rates.RefreshIntervalSec) * time.Second
	if interval < time.Minute {
		interval = time.Hour
	}

	saveCfg := opts.SaveConfig
	if saveCfg == nil {
		saveCfg = config.Save
	}

	a := App{
		tr:              opts.Tracker,
		cfg:             opts.Config,
		history:         opts.History,
		log:             opts.Logger,
		saveCfg:         saveCfg,
		autoRefresh:     opts.Config.Rates.AutoRefresh,
		refreshInterval: interval,
		inflight:        1, // Init starts the first fetch
		spinner:         sp,
		curState:        currenciesState{search: newSearchInput()},
	}
	if opts.NeedSetup {
		a.openForm(formSetup, nil)
	}
	return a
}

// Init implements tea.Model. The first fetch starts immediately.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		fetchRatesCmd(a.tr),
		a.spinner.Tick,
		refreshTickCmd(a.refreshInterval),
	}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth()).WithHeight(msg.Height)
		}
		return a, nil

	case RatesFetchedMsg:
		a.inflight = max(a.inflight-1, 0)
		out := a.tr.ApplyFetch(msg.Snapshot, msg.Err)
		if out.Notice {
			a.notice = "Could not reach the exchange rate service. Using cached rates until the connection comes back."
		}
		if out.Updated {
			a.notice = ""
		}
		return a, nil

	case refreshTickMsg:
		cmds := []tea.Cmd{refreshTickCmd(a.refreshInterval)}
		if a.autoRefresh {
			cmds = append(cmds, a.startFetch())
		}
		return a, tea.Batch(cmds...)

	case spinner.TickMsg:
		if a.inflight == 0 {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form != nil {
			if msg.String() == "esc" {
				a.closeForm()
				return a, nil
			}
			return a.updateForm(msg)
		}
		return a.updateKey(msg)
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.curState.searching {
		var cmd tea.Cmd
		a.curState.search, cmd = a.curState.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// The network banner swallows the first key after it appears.
	if a.notice != "" {
		a.notice = ""
		return a, nil
	}

	if a.activeTab == tabCurrencies && a.curState.searching {
		return a.updateCurrencySearch(msg)
	}

	a.flash = ""

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case tabBills:
		if m, cmd, ok := a.updateBillsKey(key); ok {
			return m, cmd
		}
	case tabCurrencies:
		if m, cmd, ok := a.updateCurrenciesKey(key); ok {
			return m, cmd
		}
	case tabSettings:
		if m, cmd, ok := a.updateSettingsKey(key); ok {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		return a, a.startFetch()
	case "R":
		a.autoRefresh = !a.autoRefresh
		a.cfg.Rates.AutoRefresh = a.autoRefresh
		a.reportConfigSave()
		return a, nil
	case "B":
		return a, a.openForm(formBudget, nil)
	case "u":
		return a, a.openForm(formSummaryCurrency, nil)
	case "v":
		return a, a.openForm(formConvert, nil)
	case "C":
		return a, a.openForm(formClear, nil)
	case "/":
		a.activeTab = tabCurrencies
		return a, a.startCurrencySearch()
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabBills {
			a.bills.move(-1, a.rowCount())
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabBills {
			a.bills.move(1, a.rowCount())
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// startFetch launches a fetch in the background. Fetches already in flight
// are not cancelled.
func (a *App) startFetch() tea.Cmd {
	a.inflight++
	return tea.Batch(fetchRatesCmd(a.tr), a.spinner.Tick)
}

func (a *App) setFlash(msg string, isErr bool) {
	a.flash = msg
	a.flashErr = isErr
}

// report surfaces the result of a tracker mutation. NotFound is only logged:
// the bill vanished between render and key press and there is nothing to do.
func (a *App) report(err error, success string) {
	var nf *ledger.NotFoundError
	switch {
	case err == nil:
		a.setFlash(success, false)
	case errors.As(err, &nf):
		a.log.Debug().Err(err).Msg("ignoring stale bill")
	default:
		a.setFlash(err.Error(), true)
	}
}

func (a *App) reportConfigSave() {
	if err := a.saveCfg(a.cfg); err != nil {
		a.log.Error().Err(err).Msg("saving config")
		a.setFlash("Could not save config: "+err.Error(), true)
	}
}

// ─── Forms ──────────────────────────────────────────────────────

// openForm opens a modal form. bill is the selected bill for edit and delete.
func (a *App) openForm(kind formKind, bill *ledger.Bill) tea.Cmd {
	v := &formValues{}
	l := a.tr.Ledger

	var f *huh.Form
	switch kind {
	case formAddBill:
		v.currency = l.BillCurrency
		f = newBillForm("Add bill", v)
	case formEditBill:
		v.editing = *bill
		v.name = bill.Name
		v.amount = strconv.FormatFloat(bill.Amount, 'f', -1, 64)
		v.currency = bill.Currency
		v.due = bill.DueDate
		f = newBillForm("Edit bill", v)
	case formDeleteBill:
		v.editing = *bill
		f = newConfirmForm("Delete "+bill.Name+"?", "This cannot be undone.", v)
	case formBudget:
		v.currency = l.BudgetCurrency
		if amt, ok := a.tr.BudgetDisplay(); ok {
			v.amount = fmt.Sprintf("%.2f", amt)
		}
		f = newBudgetForm(v)
	case formSummaryCurrency:
		v.currency = l.SummaryCurrency
		f = newSummaryCurrencyForm(v)
	case formConvert:
		v.amount = "1"
		v.currency = l.BillCurrency
		if e, ok := a.selectedCurrency(); ok && a.activeTab == tabCurrencies {
			v.currency = e.Code
		}
		v.target = l.SummaryCurrency
		f = newConvertForm(v)
	case formClear:
		f = newConfirmForm("Clear all data?", "Every bill is removed and the budget is reset to zero.", v)
	case formSetup:
		f = newSetupForm(a.cfg, v)
	default:
		return nil
	}

	f = f.WithTheme(formTheme()).WithShowHelp(true)
	if a.width > 0 {
		f = f.WithWidth(a.formWidth()).WithHeight(a.height)
	}
	a.form = f
	a.formKind = kind
	a.formVals = v
	return f.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.formVals = nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.submitForm()
		a.closeForm()
		return a, nil
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

// submitForm applies a completed form to the tracker.
func (a *App) submitForm() {
	v := a.formVals
	switch a.formKind {
	case formAddBill:
		amt, _ := parseAmount(v.amount)
		b, err := a.tr.AddBill(v.name, amt, v.currency, v.due)
		a.report(err, "Added "+b.Name)
	case formEditBill:
		amt, _ := parseAmount(v.amount)
		b, err := a.tr.EditBill(v.editing, ledger.Bill{
			Name: v.name, Amount: amt, Currency: v.currency, DueDate: strings.TrimSpace(v.due),
		})
		a.report(err, "Updated "+b.Name)
	case formDeleteBill:
		if v.confirm {
			a.report(a.tr.DeleteBill(v.editing), "Deleted "+v.editing.Name)
			a.bills.clamp(a.rowCount())
		}
	case formBudget:
		amt, _ := parseAmount(v.amount)
		a.report(a.tr.SetBudget(amt, v.currency), "Budget set")
	case formSummaryCurrency:
		a.report(a.tr.SetSummaryCurrency(v.currency), "Totals shown in "+v.currency)
	case formConvert:
		amt, _ := parseAmount(v.amount)
		out, err := a.tr.Convert(amt, v.currency, v.target)
		if err != nil {
			a.setFlash(err.Error(), true)
			return
		}
		a.curState.conversion = fmt.Sprintf("%s = %s", cli.FormatAmount(amt, v.currency), cli.FormatAmount(out, v.target))
		a.setFlash(a.curState.conversion, false)
	case formClear:
		if v.confirm {
			a.report(a.tr.Clear(), "All data cleared")
			a.bills = billsState{}
		}
	case formSetup:
		prevData := config.DataFile(a.cfg)
		a.cfg = applySetup(a.cfg, v)
		theme.SetActive(a.cfg.Appearance.Theme)
		a.refreshInterval = time.Duration(a.cfg.Rates.RefreshIntervalSec) * time.Second
		a.reportConfigSave()
		if a.flash == "" {
			msg := "Settings saved"
			if config.DataFile(a.cfg) != prevData {
				msg += "; the new data file is used from the next start"
			}
			a.setFlash(msg, false)
		}
	}
}

func (a App) formWidth() int {
	return min(a.width, 72)
}

func formTheme() *huh.Theme {
	t := huh.ThemeBase()
	at := theme.Active
	t.Focused.Title = t.Focused.Title.Foreground(at.AccentBright).Bold(true)
	t.Focused.Base = t.Focused.Base.BorderForeground(at.BorderAccent)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(at.Accent)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(at.AccentBright)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(at.Red)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(at.Red)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(at.Accent).Foreground(at.Background)
	t.Focused.Description = t.Focused.Description.Foreground(at.TextMuted)
	return t
}

// ─── Views ──────────────────────────────────────────────────────

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  billtracker needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(a.form.View())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"o b c x", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Move selection"},
		}},
		{"Bills", [][2]string{
			{"a", "Add bill"},
			{"e", "Edit bill"},
			{"p Enter", "Mark paid"},
			{"d", "Delete bill"},
			{"1 2 3", "Sort by name / due date / amount"},
		}},
		{"Everywhere", [][2]string{
			{"B", "Set budget"},
			{"u", "Summary currency"},
			{"v", "Convert an amount"},
			{"/", "Search currencies"},
			{"r", "Refresh rates"},
			{"R", "Toggle auto-refresh"},
			{"C", "Clear all data"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, kb := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", kb[0])),
				descStyle.Render(kb[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	sb := components.StatusBar{
		RateStatus:  a.tr.Status(),
		AutoRefresh: a.autoRefresh,
		Flash:       a.flash,
		FlashErr:    a.flashErr,
	}
	if a.inflight > 0 {
		sb.Spinner = a.spinner.View()
	}
	statusBar := components.RenderStatusBar(w, sb)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	if a.notice != "" {
		content = components.AccentCard("Offline", a.notice+"\n\nPress any key to dismiss.", cw) + "\n"
	}
	switch a.activeTab {
	case tabOverview:
		content += a.renderOverviewTab(cw)
	case tabBills:
		content += a.renderBillsTab(cw, contentH)
	case tabCurrencies:
		content += a.renderCurrenciesTab(cw, contentH)
	case tabSettings:
		content += a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func fetchRatesCmd(tr *tracker.Tracker) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		snap, err := tr.Fetch(ctx)
		return RatesFetchedMsg{Snapshot: snap, Err: err}
	}
}

func refreshTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "code, symbol or name"
	ti.CharLimit = 40
	ti.Width = 30
	ti.Prompt = "/ "
	return ti
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the same width rules as RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
