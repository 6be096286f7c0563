// Package item converts loot value into discrete collectible items.
package item

// Item is one collectible produced by a valuer.
type Item struct {
	Name  string
	Value float64
}

// Valuer converts a money amount into an ordered list of items.
type Valuer interface {
	MoneyToItems(amount float64) []Item
}

// ValuerFunc adapts a function to Valuer.
type ValuerFunc func(amount float64) []Item

func (f ValuerFunc) MoneyToItems(amount float64) []Item {
	return f(amount)
}

const (
	MoneyAmount    = 10.0
	MediumAmount   = 3 * MoneyAmount
	BigAmount      = 10 * MoneyAmount
	moneyName      = "money"
	mediumName     = "medMoney"
	bigMoneyName   = "bigMoney"
	maxMoneyChunks = 1024
)

// Denominations greedily breaks an amount into big, medium and small coins.
// A coin is only taken while at least two of its size still fit, so large
// amounts still shed a few smaller coins.
type Denominations struct {
	Small  float64
	Medium float64
	Big    float64
}

func DefaultDenominations() Denominations {
	return Denominations{Small: MoneyAmount, Medium: MediumAmount, Big: BigAmount}
}

func (d Denominations) MoneyToItems(amount float64) []Item {
	if d.Small <= 0 {
		return nil
	}
	var out []Item
	for amount > d.Small && len(out) < maxMoneyChunks {
		switch {
		case d.Big > 0 && amount > d.Big*2:
			out = append(out, Item{Name: bigMoneyName, Value: d.Big})
			amount -= d.Big
		case d.Medium > 0 && amount > d.Medium*2:
			out = append(out, Item{Name: mediumName, Value: d.Medium})
			amount -= d.Medium
		default:
			out = append(out, Item{Name: moneyName, Value: d.Small})
			amount -= d.Small
		}
	}
	return out
}

// Total sums item values.
func Total(items []Item) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Value
	}
	return total
}
