package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternshipDomainsCatalog(t *testing.T) {
	domains := InternshipDomains()
	require.Len(t, domains, 2)

	frontend, ok := FindDomain("frontend")
	require.True(t, ok)
	assert.Equal(t, "Frontend Development", frontend.Title)
	assert.Equal(t, 2500, frontend.Price)
	assert.True(t, frontend.Recommended)

	backend, ok := FindDomain("backend")
	require.True(t, ok)
	assert.Equal(t, "Backend & Database", backend.Title)
	assert.Equal(t, 3500, backend.Price)
	assert.False(t, backend.Recommended)

	_, ok = FindDomain("devops")
	assert.False(t, ok)
}

func TestTotalPrice(t *testing.T) {
	frontend, _ := FindDomain("frontend")
	backend, _ := FindDomain("backend")

	assert.Equal(t, 6000, TotalPrice([]InternshipDomain{frontend, backend}))
	assert.Equal(t, 2500, TotalPrice([]InternshipDomain{frontend}))
	assert.Zero(t, TotalPrice(nil))
}
