// Package categorize maps free-form bank message text to a spending
// category via ordered keyword rules. Matching is case-insensitive
// substring containment, not tokenized: multi-word keywords must appear
// as a contiguous run.
package categorize

import (
	"strings"

	"github.com/jask/smsledger/internal/model"
)

// keywordRule binds one category to its keyword set. Rules are scanned in
// slice order and the first containing match wins, so overlapping keyword
// sets resolve deterministically.
type keywordRule struct {
	category model.Category
	keywords []string
}

// Categorizer resolves text to exactly one of the nine categories.
// The zero value is not usable; call New.
type Categorizer struct {
	rules []keywordRule
}

func New() *Categorizer {
	return &Categorizer{rules: defaultRules()}
}

// Categorize is total: every input resolves to a category, defaulting to
// Other. Special-case rules run before the keyword table because their
// substrings ("perevod", "zachisleno") also appear inside table entries.
func (c *Categorizer) Categorize(text string) model.Category {
	msg := strings.ToLower(text)

	// ATM withdrawals keep the historical Transfer mapping even though a
	// Cash category exists. See DESIGN.md before changing this.
	if strings.Contains(msg, "nalichnye") || strings.Contains(msg, "bankomat") || strings.Contains(msg, "atm") {
		return model.Transfer
	}
	if strings.Contains(msg, "mobile bank") {
		return model.Bills
	}
	if strings.Contains(msg, "p2p") || strings.Contains(msg, "perevod") {
		return model.Transfer
	}
	if strings.Contains(msg, "zachisleno") {
		return model.Salary
	}

	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.category
			}
		}
	}
	return model.Other
}

// defaultRules lists the keyword table in canonical category order:
// Food, Transportation, Shopping, Bills, Transfer, Cash, Entertainment,
// Other. Salary has no table entry; it is only reachable through the
// "zachisleno" special case.
func defaultRules() []keywordRule {
	return []keywordRule{
		{model.Food, []string{
			"lamoda.by", "det.tsentr", "kofe", "pekarnya", "konditer", "mak.by",
			"terr", "feroniya", "pizzerya", "restoran", "kafe", "stolovaya",
			"mcdonalds", "kfc", "burger", "sushi", "pirozhki", "bistro",
			"food", "eat", "coffee", "coffeetime", "питание", "еда", "кафе",
			"ресторан", "столовая", "бистро", "кофе", "пекарня", "кондитерская",
		}},
		{model.Transportation, []string{
			"azs", "бензин", "заправка", "топливо", "парковка", "стоянка",
			"taxi", "yandex.taxi", "uber", "bolt", "avtobus", "metro",
			"tramvai", "zapravka", "benzokolonka", "parking", "stoanka",
			"такси", "автобус", "метро", "трамвай", "бензоколонка",
		}},
		{model.Shopping, []string{
			"shop", "magazin", "supermarket", "gipermarket", "universam",
			"odezhda", "obuv", "tekhnika", "electronics", "mebel", "apteka",
			"cosmetics", "parfymeriya", "21vek.by", "gippo", "oma", "fix price",
			"магазин", "супермаркет", "гипермаркет", "универсам", "одежда",
			"обувь", "техника", "электроника", "мебель", "аптека", "косметика",
		}},
		{model.Bills, []string{
			"mobile bank", "mobile", "bank", "uslugi", "услуги", "банк",
			"мобильный", "связь", "интернет", "телефон", "коммунальные",
		}},
		{model.Transfer, []string{
			"p2p", "perevod", "перевод", "p2p§sdbo", "p2p sdbo", "перечисление",
			"другому лицу", "межбанковский", "банковский перевод",
		}},
		{model.Cash, []string{
			"nalichnye", "bankomat", "atm", "снятие", "наличные", "банкомат",
			"выдача наличных",
		}},
		{model.Entertainment, []string{
			"music", "yandex music", "google", "подписка", "subscription",
			"развлечения", "кино", "театр", "концерт",
		}},
		{model.Other, []string{
			"mojka", "мойка", "car wash", "автомойка", "химчистка",
		}},
	}
}
