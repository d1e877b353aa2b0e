package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns scored results", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "user"})

		require.NoError(t, err)
		require.NotZero(t, output.Count)
		assert.Equal(t, "user.create.department", output.Results[0].Name)
		assert.Equal(t, "Create User (Department)", output.Results[0].DisplayName)
		assert.Greater(t, output.Results[0].Score, 0.0)
	})

	t.Run("expands synonyms", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "staff"})

		require.NoError(t, err)
		require.NotZero(t, output.Count)
		assert.Equal(t, "user.create.department", output.Results[0].Name)
	})

	t.Run("applies scope filter", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{
			Query:  "create",
			Scopes: []string{"property"},
		})

		require.NoError(t, err)
		for _, res := range output.Results {
			assert.Equal(t, "reservation.create.property", res.Name)
		}
	})

	t.Run("truncates to limit", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "create", Limit: 1})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Len(t, output.Results, 1)
	})

	t.Run("no matches yields empty output", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "zzzzqqqq"})

		require.NoError(t, err)
		assert.Zero(t, output.Count)
		assert.Empty(t, output.Results)
	})
}

func TestServer_handlePopular(t *testing.T) {
	ctx := context.Background()

	t.Run("returns popularity-ordered permissions", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handlePopular(ctx, nil, PopularInput{Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		require.Len(t, output.Permissions, 2)
		assert.GreaterOrEqual(t,
			output.Permissions[0].Popularity,
			output.Permissions[1].Popularity,
		)
	})

	t.Run("zero limit uses default", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handlePopular(ctx, nil, PopularInput{})

		require.NoError(t, err)
		assert.Equal(t, 3, output.Count)
	})
}

func TestServer_handleExport(t *testing.T) {
	ctx := context.Background()

	t.Run("returns export payload", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleExport(ctx, nil, ExportInput{Query: "user"})

		require.NoError(t, err)
		assert.NotZero(t, output.Count)
		assert.Contains(t, output.JSON, `"query": "user"`)
		assert.Contains(t, output.JSON, "user.create.department")
	})

	t.Run("no results yields empty array", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleExport(ctx, nil, ExportInput{Query: "zzzzqqqq"})

		require.NoError(t, err)
		assert.Zero(t, output.Count)
		assert.Equal(t, "[]", output.JSON)
	})
}
