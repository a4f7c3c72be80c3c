package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterCriteria_Normalize(t *testing.T) {
	c := FilterCriteria{Name: "  raj ", Pincode: "\t176001\n"}.Normalize()
	assert.Equal(t, "raj", c.Name)
	assert.Equal(t, "176001", c.Pincode)
}

func TestFilterCriteria_IsEmpty(t *testing.T) {
	assert.True(t, FilterCriteria{}.IsEmpty())
	assert.True(t, FilterCriteria{Name: "  ", Address: "\n"}.IsEmpty())
	assert.False(t, FilterCriteria{LastName: "x"}.IsEmpty())
}

func TestFilterCriteria_NamePart(t *testing.T) {
	assert.Equal(t, "raj", FilterCriteria{Name: "raj", FirstName: "ignored"}.NamePart())
	assert.Equal(t, "Raj_Kumar", FilterCriteria{FirstName: "Raj", LastName: "Kumar"}.NamePart())
	assert.Equal(t, "Kumar", FilterCriteria{LastName: " Kumar "}.NamePart())
	assert.Equal(t, "", FilterCriteria{Pincode: "176001"}.NamePart())
}

func TestFilterCriteria_Describe(t *testing.T) {
	assert.Equal(t, "Filters: None", FilterCriteria{}.Describe())
	assert.Equal(t, "Filters: Name: raj | Pincode: 176001", FilterCriteria{Name: "raj", Pincode: "176001"}.Describe())
}
