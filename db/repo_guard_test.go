package db_test

import (
	"context"
	"testing"

	"toolshare/db"

	"github.com/stretchr/testify/require"
)

// Ids arrive straight from the URL. A value that is not a uuid can
// never match a row, so it must read the same as a missing one rather
// than surface as a database cast error. The guards fire before any
// query runs, so no connection is needed here.
func TestMalformedIDsReadAsMissing(t *testing.T) {
	ctx := context.Background()
	r := db.NewRepo(nil)

	_, err := r.GetOwnedTool(ctx, "not-a-uuid", "owner")
	require.ErrorIs(t, err, db.ErrNotFound)

	_, err = r.SetToolImage(ctx, "not-a-uuid", "owner", "tools/x/y.png")
	require.ErrorIs(t, err, db.ErrNotFound)

	_, err = r.DeleteOwnedTool(ctx, "not-a-uuid", "owner")
	require.ErrorIs(t, err, db.ErrNotFound)

	_, err = r.ApproveRequest(ctx, "not-a-uuid", "owner")
	require.ErrorIs(t, err, db.ErrNotFound)

	_, err = r.RejectRequest(ctx, "not-a-uuid", "owner")
	require.ErrorIs(t, err, db.ErrNotFound)

	_, err = r.MarkReturned(ctx, "not-a-uuid", "owner")
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestCreateRequestMalformedToolID(t *testing.T) {
	r := db.NewRepo(nil)

	_, err := r.CreateRequest(context.Background(), "borrower", "not-a-uuid", "fence repair", 5)
	require.True(t, db.IsValidation(err))
	require.EqualError(t, err, "tool not found or not available")
}
