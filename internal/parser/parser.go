// Package parser turns raw bank notification text into transactions.
// Messages arrive in a handful of known shapes; each shape is a fixed
// recipe over shared extraction primitives (amount, date, description,
// type). Extraction is regex-cascade based: patterns are tried in order
// and the first match wins.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jask/smsledger/internal/categorize"
	"github.com/jask/smsledger/internal/model"
)

// format tags the recognized message shapes. Detection is first-match
// over literal markers, so order in detectFormat matters.
type format int

const (
	// "Karta 4***9392 01-11-25 13:42:20. Oplata 67.95 BYN. BLR LAMODA.BY. ..."
	formatCardPayment format = iota
	// "<#> 02/11 17:34. Platezh s DK9392, schet platezha 33698513. Summa 17.00 BYN. ..."
	formatMobilePayment
	// "10/11 14:04. Na vashu kartu zachisleno 154.00 BYN. ..."
	formatIncome
	// "Priorbank. Summa platezha 67.95 BYN. Karta ***9392"
	formatPriorbank
	formatGeneric
)

// Placeholder descriptions for shapes that carry no merchant text.
const (
	descMobilePayment = "Mobile Payment"
	descMobileBank    = "Mobile Bank"
	descCardCredit    = "Card credit"
	descOnlinePayment = "Online payment"
	descUnknown       = "Unknown operation"
)

// Service messages that must never produce a transaction. Matching is
// case-sensitive and runs before format dispatch, so a Priorbank
// confirmation carrying a 3D-Secure code is skipped, not parsed.
var skipMarkers = []string{
	"3D-Secure kod=",
	"M-code:",
	"Spravka:",
	"VhGfTg0y6/D",
}

// Amount patterns, most specific first. The bare-BYN fallback requires a
// trailing non-digit so it cannot bite into a balance figure mid-number.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Oplata\s+([0-9]+[.,][0-9]+)\s+BYN`),
	regexp.MustCompile(`(?i)Perevod\s+([0-9]+[.,][0-9]+)\s+BYN`),
	regexp.MustCompile(`(?i)Nalichnye\s+[\w\s]+\s+([0-9]+[.,][0-9]+)\s+BYN`),
	regexp.MustCompile(`(?i)Summa\s+([0-9]+[.,][0-9]+)\s+BYN`),
	regexp.MustCompile(`(?i)Zachisleno\s+([0-9]+[.,][0-9]+)\s+BYN`),
	regexp.MustCompile(`(?i)Vybrano\s+[\w\s]+\s+([0-9]+[.,][0-9]+)\s+BYN`),
	regexp.MustCompile(`(?i)([0-9]+[.,][0-9]+)\s+BYN[^0-9]`),
	regexp.MustCompile(`(?i)Oplata\s+([0-9]+[.,][0-9]+)\s+USD`),
	regexp.MustCompile(`(?i)([0-9]+[.,][0-9]+)\s+USD`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}[-/]\d{1,2}[-/]?\d{0,4})\s+(\d{1,2}:\d{2}:?\d{0,2})\b`),
	regexp.MustCompile(`\b(\d{1,2}[-/]\d{1,2})\s+(\d{1,2}:\d{2})\b`),
}

// Layouts tried against the matched date text after "/" is normalized to
// "-". Every date pattern requires a time component, so all layouts carry
// one. The day-month layout has no year; extractDate fills in the current
// one.
var dateLayouts = []string{
	"2-1-06 15:04:05",
	"2-1-06 15:04",
	"2-1 15:04",
}

// Description patterns. Country-code patterns run first so a merchant
// like "BLR LAMODA.BY." yields "LAMODA.BY" with its domain suffix intact
// instead of being cut at the inner period.
var descriptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`BLR\s+([^.]+(?:\.[^\s.]+)*)\.`),
	regexp.MustCompile(`USA\s+([^.]+(?:\.[^\s.]+)*)\.`),
	regexp.MustCompile(`BYN\.\s*([^.]+)\.`),
	regexp.MustCompile(`BYN\.\s*([^.]*\.[^.]*\.)`),
}

var (
	incomeKeywords = []string{
		"zachisleno", "postuplenie", "popolnenie", "na vashu kartu",
		"зачислено", "поступление", "пополнение",
	}
	expenseKeywords = []string{
		"oplata", "spisanie", "platezh", "perevod", "nalichnye", "snyatie",
		"vybrano", "оплата", "списание", "платеж", "перевод", "наличные",
		"снятие",
	}
)

// Parser extracts transactions from notification text. The clock is
// injectable because two paths (Priorbank, missing date) stamp "now".
type Parser struct {
	categorizer *categorize.Categorizer
	now         func() time.Time
}

type Option func(*Parser)

// WithClock overrides the time source. Tests use it to pin the
// current-year and now-fallback behavior.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

func New(opts ...Option) *Parser {
	p := &Parser{
		categorizer: categorize.New(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the transaction encoded in message, or ok=false for
// service messages and text with no recognizable amount.
func (p *Parser) Parse(message string) (*model.Transaction, bool) {
	msg := preprocess(message)

	for _, marker := range skipMarkers {
		if strings.Contains(msg, marker) {
			return nil, false
		}
	}

	switch detectFormat(msg) {
	case formatCardPayment:
		return p.parseCardPayment(msg)
	case formatMobilePayment:
		return p.parseMobilePayment(msg)
	case formatIncome:
		return p.parseIncome(msg)
	case formatPriorbank:
		return p.parsePriorbank(msg)
	default:
		return p.parseGeneric(msg)
	}
}

func preprocess(message string) string {
	msg := strings.ReplaceAll(message, "\n", " ")
	msg = strings.ReplaceAll(msg, "§", " ")
	return strings.TrimSpace(msg)
}

func detectFormat(msg string) format {
	switch {
	case strings.Contains(msg, "Karta 4***"):
		return formatCardPayment
	case strings.Contains(msg, "<#>"):
		return formatMobilePayment
	case strings.Contains(msg, "Na vashu kartu zachisleno"):
		return formatIncome
	case strings.Contains(msg, "Priorbank"):
		return formatPriorbank
	default:
		return formatGeneric
	}
}

func (p *Parser) parseCardPayment(msg string) (*model.Transaction, bool) {
	amount, ok := extractAmount(msg)
	if !ok {
		return nil, false
	}
	return p.build(amount, p.categorizer.Categorize(msg), p.extractDate(msg), p.extractDescription(msg), inferType(msg))
}

func (p *Parser) parseMobilePayment(msg string) (*model.Transaction, bool) {
	amount, ok := extractAmount(msg)
	if !ok {
		return nil, false
	}
	return p.build(amount, p.categorizer.Categorize(msg), p.extractDate(msg), descMobilePayment, model.Expense)
}

func (p *Parser) parseIncome(msg string) (*model.Transaction, bool) {
	amount, ok := extractAmount(msg)
	if !ok {
		return nil, false
	}
	return p.build(amount, model.Salary, p.extractDate(msg), descCardCredit, model.Income)
}

// parsePriorbank has only an amount to go on: the shape carries no date
// or merchant, so everything else is fixed.
func (p *Parser) parsePriorbank(msg string) (*model.Transaction, bool) {
	amount, ok := extractAmount(msg)
	if !ok {
		return nil, false
	}
	return p.build(amount, model.Other, p.now(), descOnlinePayment, model.Expense)
}

func (p *Parser) parseGeneric(msg string) (*model.Transaction, bool) {
	amount, ok := extractAmount(msg)
	if !ok {
		return nil, false
	}
	return p.build(amount, p.categorizer.Categorize(msg), p.extractDate(msg), p.extractDescription(msg), inferType(msg))
}

func (p *Parser) build(amount float64, category model.Category, date time.Time, description string, typ model.TransactionType) (*model.Transaction, bool) {
	tx, err := model.NewTransaction(amount, category, date, description, typ)
	if err != nil {
		return nil, false
	}
	return &tx, true
}

func extractAmount(msg string) (float64, bool) {
	for _, re := range amountPatterns {
		m := re.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil {
			continue
		}
		return amount, true
	}
	return 0, false
}

// extractDate never fails: text without a recognizable timestamp gets the
// current instant. That keeps undated messages importable at the cost of
// an approximate date.
func (p *Parser) extractDate(msg string) time.Time {
	for _, re := range datePatterns {
		m := re.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[0], "/", "-")
		for _, layout := range dateLayouts {
			t, err := time.Parse(layout, raw)
			if err != nil {
				continue
			}
			if t.Year() == 0 {
				t = time.Date(p.now().UTC().Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
			}
			return t
		}
	}
	return p.now()
}

func (p *Parser) extractDescription(msg string) string {
	for _, re := range descriptionPatterns {
		m := re.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		desc := strings.TrimSpace(strings.ReplaceAll(m[1], `"`, ""))
		if desc != "" {
			return desc
		}
	}
	if strings.Contains(msg, "Platezh s DK") {
		return descMobileBank
	}
	if strings.Contains(msg, "Zachisleno") {
		return descCardCredit
	}
	return descUnknown
}

// inferType checks income keywords first: a top-up confirmation often
// also mentions a payment word, and income must win that collision.
func inferType(msg string) model.TransactionType {
	lower := strings.ToLower(msg)
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			return model.Income
		}
	}
	for _, kw := range expenseKeywords {
		if strings.Contains(lower, kw) {
			return model.Expense
		}
	}
	return model.Expense
}
