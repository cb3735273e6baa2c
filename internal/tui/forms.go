package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/billtracker/internal/config"
	"github.com/theirongolddev/billtracker/internal/currency"
	"github.com/theirongolddev/billtracker/internal/ledger"
	"github.com/theirongolddev/billtracker/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

type formKind int

const (
	formNone formKind = iota
	formAddBill
	formEditBill
	formDeleteBill
	formBudget
	formSummaryCurrency
	formConvert
	formClear
	formSetup
)

// formValues receives the fields of whichever form is open. It lives behind
// a pointer so the huh bindings survive App being copied by Update.
type formValues struct {
	name     string
	amount   string
	currency string
	due      string
	target   string
	confirm  bool

	editing ledger.Bill // original bill for formEditBill and formDeleteBill

	apiKey   string
	dataFile string
	interval int
	theme    string
	history  bool
}

var refreshIntervals = []struct {
	label string
	sec   int
}{
	{"Every 15 minutes", 900},
	{"Every hour", 3600},
	{"Every 6 hours", 21600},
	{"Once a day", 86400},
}

func currencyOptions() []huh.Option[string] {
	list := currency.List()
	opts := make([]huh.Option[string], len(list))
	for i, e := range list {
		label := e.Label()
		if e.Name != "" {
			label += "  " + e.Name
		}
		opts[i] = huh.NewOption(label, e.Code)
	}
	return opts
}

func currencySelect(title string, value *string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title(title).
		Options(currencyOptions()...).
		Filtering(true).
		Height(8).
		Value(value)
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("enter a number")
	}
	return v, nil
}

func validatePositive(s string) error {
	v, err := parseAmount(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return errors.New("must be greater than zero")
	}
	return nil
}

func validateNumber(s string) error {
	_, err := parseAmount(s)
	return err
}

func validateDue(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(ledger.DateLayout, s); err != nil {
		return errors.New("use YYYY-MM-DD or leave empty")
	}
	return nil
}

func newBillForm(title string, v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.name).Validate(validateName),
			huh.NewInput().Title("Amount").Value(&v.amount).Validate(validatePositive),
			currencySelect("Currency", &v.currency),
			huh.NewInput().
				Title("Due date").
				Placeholder("YYYY-MM-DD").
				Value(&v.due).
				Validate(validateDue),
		).Title(title),
	)
}

func newBudgetForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Budget").Value(&v.amount).Validate(validateNumber),
			currencySelect("Currency", &v.currency),
		).Title("Set budget"),
	)
}

func newSummaryCurrencyForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			currencySelect("Show totals in", &v.currency),
		),
	)
}

func newConvertForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Amount").Value(&v.amount).Validate(validateNumber),
			currencySelect("From", &v.currency),
			currencySelect("To", &v.target),
		).Title("Convert"),
	)
}

func newConfirmForm(title, description string, v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&v.confirm),
		),
	)
}

// newSetupForm builds the first-run wizard, prefilled from cfg.
func newSetupForm(cfg config.Config, v *formValues) *huh.Form {
	v.apiKey = cfg.APIKey
	v.dataFile = cfg.DataFilePath
	v.interval = cfg.Rates.RefreshIntervalSec
	v.theme = cfg.Appearance.Theme
	v.history = cfg.Rates.History

	intervalOpts := make([]huh.Option[int], 0, len(refreshIntervals)+1)
	known := false
	for _, ri := range refreshIntervals {
		intervalOpts = append(intervalOpts, huh.NewOption(ri.label, ri.sec))
		known = known || ri.sec == v.interval
	}
	if !known && v.interval > 0 {
		intervalOpts = append(intervalOpts, huh.NewOption(fmt.Sprintf("Every %ds", v.interval), v.interval))
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to billtracker").
				Description("Track bills in any currency against one budget.\nExchange rates are fetched in the background."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("exchangerate-api.com key").
				Description("Optional. Without one the free providers are used.").
				EchoMode(huh.EchoModePassword).
				Value(&v.apiKey),
			huh.NewInput().
				Title("Data file").
				Description("Leave empty for the default location.").
				Placeholder(config.DataFile(config.DefaultConfig())).
				Value(&v.dataFile),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Refresh rates").
				Options(intervalOpts...).
				Value(&v.interval),
			huh.NewConfirm().
				Title("Keep a rate history?").
				Value(&v.history),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.theme),
		),
	)
}

// applySetup copies the wizard answers onto cfg.
func applySetup(cfg config.Config, v *formValues) config.Config {
	cfg.APIKey = strings.TrimSpace(v.apiKey)
	cfg.DataFilePath = strings.TrimSpace(v.dataFile)
	if v.interval > 0 {
		cfg.Rates.RefreshIntervalSec = v.interval
	}
	cfg.Rates.History = v.history
	cfg.Appearance.Theme = v.theme
	return cfg
}

// RunSetup runs the setup wizard on its own, outside the dashboard, and
// returns cfg with the answers applied. It returns huh.ErrUserAborted when the
// wizard is cancelled.
func RunSetup(cfg config.Config) (config.Config, error) {
	v := &formValues{}
	if err := newSetupForm(cfg, v).WithTheme(formTheme()).Run(); err != nil {
		return cfg, err
	}
	return applySetup(cfg, v), nil
}
