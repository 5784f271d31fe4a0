package views

import (
	"testing"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{500000, "INR", "₹5,00,000"},
		{1200000, "INR", "₹12,00,000"},
		{123456789, "INR", "₹12,34,56,789"},
		{999, "INR", "₹999"},
		{1000, "", "₹1,000"},
		{1500000, "USD", "$1,500,000"},
		{90000, "eur", "€90,000"},
		{42000, "JPY", "JPY 42,000"},
		{-5000, "INR", "-₹5,000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.amount, tt.currency))
		})
	}
}

func TestFormatSalary(t *testing.T) {
	got := FormatSalary(models.Salary{Min: 500000, Max: 1200000, Currency: "INR"})
	assert.Equal(t, "₹5,00,000 - ₹12,00,000", got)
}

func TestFormatEmploymentType(t *testing.T) {
	assert.Equal(t, "Full Time", FormatEmploymentType(models.FullTime))
	assert.Equal(t, "Part Time", FormatEmploymentType(models.PartTime))
	assert.Equal(t, "Internship", FormatEmploymentType(models.Internship))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 application", plural(1, "application", "applications"))
	assert.Equal(t, "0 applications", plural(0, "application", "applications"))
}
