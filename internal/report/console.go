package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"tgju-tracker/internal/domain"
	"tgju-tracker/internal/service"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	separatorWidth  = 40
)

// ConsoleReporter prints tracker status and price changes in every supported locale.
type ConsoleReporter struct {
	out     io.Writer
	numbers *message.Printer

	banner  lipgloss.Style
	title   lipgloss.Style
	success lipgloss.Style
	info    lipgloss.Style
	notice  lipgloss.Style
	warn    lipgloss.Style
	failure lipgloss.Style
	bold    lipgloss.Style
	rule    lipgloss.Style
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	r := lipgloss.NewRenderer(out)
	return &ConsoleReporter{
		out:     out,
		numbers: message.NewPrinter(language.English),
		banner: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("13")).
			Foreground(lipgloss.Color("11")).
			Bold(true).
			Padding(1, 4),
		title:   r.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("10")),
		info:    r.NewStyle().Foreground(lipgloss.Color("14")),
		notice:  r.NewStyle().Foreground(lipgloss.Color("12")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("11")),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")),
		bold:    r.NewStyle().Bold(true),
		rule:    r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// Banner prints the startup panel.
func (c *ConsoleReporter) Banner(pageURL string, interval time.Duration) {
	body := strings.Join([]string{
		c.title.Render("TGJU Tracker"),
		"",
		"Source: " + pageURL,
		fmt.Sprintf("Interval: %s", interval),
	}, "\n")
	c.println(c.banner.Render(body))
}

func (c *ConsoleReporter) Started() {
	c.lines(c.success, localized(msgStarted))
	c.lines(c.info, localized(msgMonitoring))
	c.println("")
}

// InitialSnapshot lists every captured price once, per locale.
func (c *ConsoleReporter) InitialSnapshot(result *service.CycleResult) {
	c.println(c.bold.Render(strings.Join(localized(msgInitialHeader), " / ")))

	ids := result.Snapshot.InstrumentIDs()
	if len(ids) == 0 {
		c.lines(c.warn, localized(msgNoPrices))
	}
	for _, id := range ids {
		inst := domain.CatalogByID[id]
		price := result.Snapshot.Prices[id]
		for _, locale := range domain.Locales {
			c.println(fmt.Sprintf("   %s: %s %s", inst.Name(locale), c.formatPrice(price), currencyUnits[locale]))
		}
	}
	c.println("")

	if result.SaveErr != nil {
		c.SaveFailed(result.SaveErr)
		return
	}
	c.lines(c.success, localized(msgSaved))
	c.println("")
}

// Changes prints the change list of a regular cycle, or a no-change notice.
func (c *ConsoleReporter) Changes(result *service.CycleResult) {
	at := result.Snapshot.CapturedAt.Format(timestampLayout)

	if len(result.Changes) == 0 {
		c.lines(c.notice, localized(msgNoChanges, at))
	} else {
		c.println(c.rule.Render("── " + strings.Join(localized(msgChangesAt, at), " / ") + " ──"))
		for _, ch := range result.Changes {
			c.printChange(ch)
		}
		c.println("")
	}

	if result.SaveErr != nil {
		c.SaveFailed(result.SaveErr)
	}
}

func (c *ConsoleReporter) printChange(ch domain.PriceChange) {
	unit := currencyUnits[ch.Locale]
	c.println(fmt.Sprintf("%s %s", ch.Severity, c.bold.Render(ch.Name)))
	c.println("   " + changeLabels[ch.Kind][ch.Locale])
	if ch.HasPrevious() {
		c.println(fmt.Sprintf("   %s: %s%%", label(msgPercent), formatPercent(ch.Percent)))
		c.println(fmt.Sprintf("   %s: %s %s", label(msgPrevious), c.formatPrice(ch.Previous), unit))
		c.println(fmt.Sprintf("   %s: %s %s", label(msgCurrent), c.formatPrice(ch.Current), unit))
		c.println(fmt.Sprintf("   %s: %s %s", label(msgDifference), c.formatPrice(ch.Difference()), unit))
	} else {
		c.println(fmt.Sprintf("   %s: %s %s", label(msgCurrent), c.formatPrice(ch.Current), unit))
	}
	c.println(strings.Repeat("-", separatorWidth))
}

func (c *ConsoleReporter) CycleFailed(err error, retryIn time.Duration) {
	c.lines(c.failure, localized(msgFetchError, err))
	c.lines(c.failure, localized(msgRetrying, int(retryIn.Seconds())))
}

func (c *ConsoleReporter) SaveFailed(err error) {
	c.lines(c.warn, localized(msgSaveError, err))
}

func (c *ConsoleReporter) StateLoadFailed(err error) {
	c.lines(c.warn, localized(msgStateLoadError, err))
}

// Countdown rewrites the current line; remaining <= 0 ends the line.
func (c *ConsoleReporter) Countdown(remaining time.Duration) {
	if remaining <= 0 {
		fmt.Fprint(c.out, "\n\n")
		return
	}
	fmt.Fprint(c.out, "\r"+strings.Join(localized(msgCountdown, int(remaining.Seconds())), " / "))
}

func (c *ConsoleReporter) Stopped() {
	c.println("")
	c.lines(c.failure, localized(msgStopped))
}

// label joins a field name across locales, e.g. "قیمت فعلی / Current Price / ...".
func label(key messageKey) string {
	return strings.Join(localized(key), " / ")
}

func (c *ConsoleReporter) formatPrice(v float64) string {
	return c.numbers.Sprintf("%.0f", v)
}

func formatPercent(p float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", p), "0"), ".")
	if s == "" || s == "-" || s == "-0" {
		return "0"
	}
	return s
}

func (c *ConsoleReporter) lines(style lipgloss.Style, lines []string) {
	for _, l := range lines {
		c.println(style.Render(l))
	}
}

func (c *ConsoleReporter) println(s string) {
	fmt.Fprintln(c.out, s)
}
