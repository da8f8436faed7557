package db

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/formloom/formloom/internal/api"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	sqlDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, RunMigrations(sqlDB))
	store, err := NewSQLiteStore(sqlDB)
	require.NoError(t, err)
	return store
}

func TestSQLiteUserRoundTrip(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.AddUser(&api.User{ID: "U1", Name: "Ada", Email: "ada@example.com", PassHash: []byte("hash"), CreatedAt: now}))

	u, err := store.FindUserByEmail("ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "U1", u.ID)
	require.Equal(t, []byte("hash"), u.PassHash)
	require.True(t, u.CreatedAt.Equal(now))

	missing, err := store.FindUserByEmail("ghost@example.com")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestSQLiteFormRoundTrip(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	form := &api.Form{
		ID:          "F1",
		Title:       "Feedback",
		Description: "How did we do?",
		Questions: []api.Question{
			{ID: "q1", Text: "Email", Kind: "text", Required: true},
			{ID: "q2", Text: "Satisfaction", Kind: "single-choice", Options: []string{"Good", "Bad"}},
		},
		CreatedBy: "U1",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.AddForm(form))

	got, err := store.GetForm("F1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, form.Title, got.Title)
	require.Len(t, got.Questions, 2)
	require.Equal(t, []string{"Good", "Bad"}, got.Questions[1].Options)
	require.True(t, got.Questions[0].Required)

	forms, err := store.ListFormsByOwner("U1")
	require.NoError(t, err)
	require.Len(t, forms, 1)
	forms, err = store.ListFormsByOwner("other")
	require.NoError(t, err)
	require.Empty(t, forms)

	ok, err := store.DeleteForm("F1")
	require.NoError(t, err)
	require.True(t, ok)
	got, err = store.GetForm("F1")
	require.NoError(t, err)
	require.Nil(t, got)

	ok, err = store.DeleteForm("F1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteResponsesAndCounter(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.AddForm(&api.Form{ID: "F1", Title: "T", Questions: []api.Question{}, CreatedBy: "U1", CreatedAt: now, UpdatedAt: now}))

	for i, id := range []string{"R1", "R2"} {
		at := now.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.AddResponse(&api.Response{ID: id, FormID: "F1", Answers: map[string]string{"q1": id}, SubmittedAt: at}))
		ok, err := store.AppendResponseRef("F1", id, at)
		require.NoError(t, err)
		require.True(t, ok)
	}

	rs, err := store.ListResponsesByForm("F1")
	require.NoError(t, err)
	require.Len(t, rs, 2)
	require.Equal(t, "R1", rs[0].ID)
	require.Equal(t, map[string]string{"q1": "R2"}, rs[1].Answers)

	form, err := store.GetForm("F1")
	require.NoError(t, err)
	require.Equal(t, 2, form.ResponseCount)
	require.Equal(t, []string{"R1", "R2"}, form.ResponseIDs)
	require.True(t, form.UpdatedAt.After(now))

	ok, err := store.AppendResponseRef("missing", "R9", now)
	require.NoError(t, err)
	require.False(t, ok)

	removed, err := store.DeleteResponsesByForm("F1")
	require.NoError(t, err)
	require.Equal(t, 2, removed)
	rs, err = store.ListResponsesByForm("F1")
	require.NoError(t, err)
	require.Empty(t, rs)
}
