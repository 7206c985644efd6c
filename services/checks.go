package services

import (
	"database/sql"
	"fmt"
	"strings"
)

// defaultStartingCheckNumber is used the first time an owner issues a check.
const defaultStartingCheckNumber = 1001

var onesWords = []string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen"}

var tensWords = []string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}

var thousandsWords = []string{"", "thousand", "million", "billion"}

// NumberToWords spells out a whole number for the written-amount line of a
// check.
func NumberToWords(num int) string {
	if num == 0 {
		return "zero"
	}
	if num < 0 {
		return "negative " + NumberToWords(-num)
	}

	var parts []string
	thousandIndex := 0
	for num > 0 {
		chunk := num % 1000
		if chunk != 0 {
			part := convertHundreds(chunk)
			if thousandsWords[thousandIndex] != "" {
				part += " " + thousandsWords[thousandIndex]
			}
			parts = append([]string{part}, parts...)
		}
		num /= 1000
		thousandIndex++
	}
	return strings.Join(parts, " ")
}

func convertHundreds(num int) string {
	var b strings.Builder

	if num >= 100 {
		b.WriteString(onesWords[num/100])
		b.WriteString(" hundred")
		num %= 100
		if num > 0 {
			b.WriteString(" ")
		}
	}

	switch {
	case num >= 20:
		b.WriteString(tensWords[num/10])
		if num%10 > 0 {
			b.WriteString("-")
			b.WriteString(onesWords[num%10])
		}
	case num > 0:
		b.WriteString(onesWords[num])
	}
	return b.String()
}

// FormatCheckAmount renders a check amount as its written words line, cents
// expressed as a fraction of 100.
func FormatCheckAmount(amount float64) string {
	dollars := int(amount)
	cents := int(amount*100+0.5) - dollars*100
	return fmt.Sprintf("%s and %02d/100 dollars", NumberToWords(dollars), cents)
}

// NextCheckNumber returns the next check number for an owner and advances
// the stored sequence. The first call seeds the sequence at the default
// starting number.
func NextCheckNumber(db *sql.DB, ownerID string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate check number: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRow("SELECT next_number FROM check_sequences WHERE owner_id = ?", ownerID).Scan(&current)
	if err == sql.ErrNoRows {
		current = defaultStartingCheckNumber
		if _, err := tx.Exec("INSERT INTO check_sequences (owner_id, next_number) VALUES (?, ?)", ownerID, current+1); err != nil {
			return 0, fmt.Errorf("failed to seed check sequence: %w", err)
		}
	} else if err != nil {
		return 0, fmt.Errorf("failed to read check sequence: %w", err)
	} else {
		if _, err := tx.Exec("UPDATE check_sequences SET next_number = ? WHERE owner_id = ?", current+1, ownerID); err != nil {
			return 0, fmt.Errorf("failed to advance check sequence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to allocate check number: %w", err)
	}
	return current, nil
}
