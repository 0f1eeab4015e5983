package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money représente une valeur monétaire avec garanties d'invariants
// Le montant est stocké en décimal exact: les sommes de revenus ne dérivent pas
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney crée une nouvelle instance de Money avec validation
func NewMoney(amount float64, currency string) (Money, error) {
	return NewMoneyFromDecimal(decimal.NewFromFloat(amount), currency)
}

// NewMoneyFromDecimal crée une instance de Money à partir d'un décimal
func NewMoneyFromDecimal(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errors.New("amount cannot be negative")
	}
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{
		amount:   amount,
		currency: currency,
	}, nil
}

// ZeroMoney retourne un montant nul dans la devise donnée
func ZeroMoney(currency string) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount retourne le montant
func (m Money) Amount() float64 {
	return m.amount.InexactFloat64()
}

// Decimal retourne le montant exact
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Currency retourne la devise
func (m Money) Currency() string {
	return m.currency
}

// Add additionne deux Money (même devise requise)
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{
		amount:   m.amount.Add(other.amount),
		currency: m.currency,
	}, nil
}

// Multiply multiplie le montant par un facteur
func (m Money) Multiply(factor float64) (Money, error) {
	if factor < 0 {
		return Money{}, errors.New("multiplication factor cannot be negative")
	}
	return Money{
		amount:   m.amount.Mul(decimal.NewFromFloat(factor)),
		currency: m.currency,
	}, nil
}

// Times multiplie le montant par un entier, sans passer par un flottant
func (m Money) Times(n int) Money {
	return Money{
		amount:   m.amount.Mul(decimal.NewFromInt(int64(n))),
		currency: m.currency,
	}
}

// IsZero vérifie si le montant est zéro
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Format affiche le montant arrondi avec séparateur de milliers: "R$ 12,345"
func (m Money) Format(places int32) string {
	s := m.amount.StringFixed(places)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	b.Grow(len(m.currency) + len(s) + len(s)/3 + 1)
	b.WriteString(m.currency)
	b.WriteByte(' ')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// String implémente fmt.Stringer
func (m Money) String() string {
	return m.Format(0)
}
