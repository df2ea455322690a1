package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocMatchesRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Equal(t, "/api", doc.BasePath)

	want := map[string][]string{
		"/ping":          {"get"},
		"/auth/register": {"post"},
		"/auth/login":    {"post"},
		"/auth/user":     {"get"},
		"/auth/logout":   {"post"},
		"/{entity}":      {"get", "post"},
		"/{entity}/{id}": {"get", "patch", "delete"},
	}
	require.Len(t, doc.Paths, len(want))
	for path, methods := range want {
		require.Contains(t, doc.Paths, path)
		require.Len(t, doc.Paths[path], len(methods), path)
		for _, m := range methods {
			require.Contains(t, doc.Paths[path], m, path)
		}
	}
}
