package services

import (
	"testing"

	"madebread/backend/database"
	"madebread/backend/migrations"
)

func TestNumberToWords(t *testing.T) {
	cases := []struct {
		num  int
		want string
	}{
		{0, "zero"},
		{7, "seven"},
		{13, "thirteen"},
		{20, "twenty"},
		{21, "twenty-one"},
		{99, "ninety-nine"},
		{100, "one hundred"},
		{115, "one hundred fifteen"},
		{342, "three hundred forty-two"},
		{1000, "one thousand"},
		{1234, "one thousand two hundred thirty-four"},
		{10500, "ten thousand five hundred"},
		{1000000, "one million"},
		{2500000, "two million five hundred thousand"},
		{-45, "negative forty-five"},
	}

	for _, tc := range cases {
		if got := NumberToWords(tc.num); got != tc.want {
			t.Errorf("NumberToWords(%d) = %q, want %q", tc.num, got, tc.want)
		}
	}
}

func TestFormatCheckAmount(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{125.50, "one hundred twenty-five and 50/100 dollars"},
		{1000.00, "one thousand and 00/100 dollars"},
		{42.07, "forty-two and 07/100 dollars"},
		{0.99, "zero and 99/100 dollars"},
	}

	for _, tc := range cases {
		if got := FormatCheckAmount(tc.amount); got != tc.want {
			t.Errorf("FormatCheckAmount(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestNextCheckNumber(t *testing.T) {
	t.Setenv("TEST_DB", "1")
	if err := database.InitDB(); err != nil {
		t.Fatalf("failed to init test database: %v", err)
	}
	defer database.DB.Close()
	if err := migrations.RunMigrations(database.DB); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	// The first check for an owner starts at the default number.
	first, err := NextCheckNumber(database.DB, "owner-1")
	if err != nil {
		t.Fatalf("NextCheckNumber failed: %v", err)
	}
	if first != 1001 {
		t.Errorf("expected first check number 1001, got %d", first)
	}

	second, err := NextCheckNumber(database.DB, "owner-1")
	if err != nil {
		t.Fatalf("NextCheckNumber failed: %v", err)
	}
	if second != 1002 {
		t.Errorf("expected second check number 1002, got %d", second)
	}

	// Sequences are per owner.
	other, err := NextCheckNumber(database.DB, "owner-2")
	if err != nil {
		t.Fatalf("NextCheckNumber failed: %v", err)
	}
	if other != 1001 {
		t.Errorf("expected owner-2 to start at 1001, got %d", other)
	}
}
