package query

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var testSpec = Spec{
	MaxLimit:     100,
	SearchColumn: "name",
	SortColumns: map[string]string{
		"id":         "id",
		"name":       "name",
		"created_at": "created_at",
	},
}

func testContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParse_Defaults(t *testing.T) {
	params, err := Parse(testContext(""), testSpec)
	require.NoError(t, err)
	require.Equal(t, 0, params.Skip)
	require.Equal(t, DefaultLimit, params.Limit)
	require.Empty(t, params.Q)
}

func TestParse_Valid(t *testing.T) {
	params, err := Parse(testContext("skip=10&limit=25&q=api&sort_by=name&sort_dir=desc"), testSpec)
	require.NoError(t, err)
	require.Equal(t, 10, params.Skip)
	require.Equal(t, 25, params.Limit)
	require.Equal(t, "api", params.Q)
}

func TestParse_Rejections(t *testing.T) {
	cases := []string{
		"skip=-1",
		"skip=abc",
		"limit=0",
		"limit=-5",
		"limit=abc",
		"limit=101",
		"sort_by=owner_id",
		"sort_dir=upwards",
	}
	for _, rawQuery := range cases {
		_, err := Parse(testContext(rawQuery), testSpec)
		require.Error(t, err, rawQuery)
	}
}

func TestParse_MaxLimitIsInclusive(t *testing.T) {
	params, err := Parse(testContext("limit=100"), testSpec)
	require.NoError(t, err)
	require.Equal(t, 100, params.Limit)
}
