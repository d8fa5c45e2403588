package categorize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/smsledger/internal/model"
)

func TestCategorizeSpecialCases(t *testing.T) {
	t.Parallel()
	c := New()

	cases := map[string]model.Category{
		// ATM/cash keywords map to Transfer, not Cash. Historical.
		"Nalichnye v bankomate 100.00 BYN": model.Transfer,
		"Vydacha ATM 50.00 BYN":            model.Transfer,
		"Oplata Mobile Bank 5.00 BYN":      model.Bills,
		"P2P SDBO perevod 20.00 BYN":       model.Transfer,
		"Zachisleno 500.00 BYN":            model.Salary,
	}
	for msg, want := range cases {
		require.Equal(t, want, c.Categorize(msg), "message: %s", msg)
	}
}

func TestCategorizeKeywordTable(t *testing.T) {
	t.Parallel()
	c := New()

	cases := map[string]model.Category{
		"Oplata 67.95 BYN. BLR LAMODA.BY":    model.Food,
		"KAFE CENTRALNY MINSK":               model.Food,
		"Restoran U Franciska":               model.Food,
		"AZS Belorusneft 40.00 BYN":          model.Transportation,
		"Yandex.Taxi poezdka":                model.Transportation,
		"MAGAZIN SOSEDI 12.00 BYN":           model.Shopping,
		"GIPPO gipermarket":                  model.Shopping,
		"Oplata uslugi svyazi":               model.Bills,
		"Yandex Music subscription":          model.Entertainment,
		"Mojka samoobsluzhivaniya 8.00 BYN":  model.Other,
		"Совершенно незнакомое сообщение":    model.Other,
		"":                                   model.Other,
	}
	for msg, want := range cases {
		require.Equal(t, want, c.Categorize(msg), "message: %s", msg)
	}
}

func TestCategorizeCaseInsensitive(t *testing.T) {
	t.Parallel()
	c := New()

	require.Equal(t, c.Categorize("kafe minsk"), c.Categorize("KAFE MINSK"))
	require.Equal(t, model.Food, c.Categorize("KaFe MiNsK"))
}

// Total: any input resolves to one of the nine categories.
func TestCategorizeIsTotal(t *testing.T) {
	t.Parallel()
	c := New()

	valid := make(map[model.Category]bool)
	for _, cat := range model.Categories() {
		valid[cat] = true
	}

	inputs := []string{
		"", " ", "\n", "§", "1234567890",
		"случайный текст без ключевых слов",
		"BYN USD EUR", "<#>", "Karta 4***",
	}
	for _, in := range inputs {
		require.True(t, valid[c.Categorize(in)], "input: %q", in)
	}
}

// Food precedes Shopping in the scan, so a message carrying keywords from
// both resolves to Food.
func TestCategorizeFirstMatchOrder(t *testing.T) {
	t.Parallel()
	c := New()

	require.Equal(t, model.Food, c.Categorize("kafe v magazine"))
}
