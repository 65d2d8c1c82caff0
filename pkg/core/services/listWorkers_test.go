package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crewdeckhq/crewdeck/pkg/db"
)

func TestListWorkers_ResolvesQualificationNames(t *testing.T) {
	mock := &mockStore{
		workers: []db.Worker{
			{ID: "w-1", Name: "Alice Moran", Email: "alice@example.com", Rating: 4.5, HourlyRate: 40, IsActive: true},
			{ID: "w-2", Name: "Bob Reyes", Email: "bob@example.com", Rating: 3.0, IsActive: false},
		},
		qualifications: []db.WorkerQualification{
			{WorkerID: "w-1", RoleID: "role-rigger", Level: 3},
			{WorkerID: "w-1", RoleID: "role-gone", Level: 2},
		},
		roles: []db.JobRole{{ID: "role-rigger", Name: "Rigger", BaseRate: 30}},
	}

	workers, err := ListWorkers(context.Background(), mock, mock, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, workers, 2)

	alice := workers[0]
	assert.Equal(t, "w-1", alice.ID)
	assert.Equal(t, "Alice Moran", alice.Name)
	assert.True(t, alice.IsActive)
	require.Len(t, alice.Qualifications, 2)
	assert.Equal(t, QualificationSummary{RoleName: "Rigger", Level: 3}, alice.Qualifications[0])
	// A qualification pointing at a deleted role keeps the raw ID visible
	assert.Equal(t, QualificationSummary{RoleName: "role-gone", Level: 2}, alice.Qualifications[1])

	bob := workers[1]
	assert.Equal(t, "w-2", bob.ID)
	assert.False(t, bob.IsActive)
	assert.Empty(t, bob.Qualifications)
}

func TestListWorkers_EmptyRoster(t *testing.T) {
	mock := &mockStore{}

	workers, err := ListWorkers(context.Background(), mock, mock, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, workers)
}
