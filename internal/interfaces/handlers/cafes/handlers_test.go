package cafes

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	cafesvc "brewdate-backend/internal/application/cafes"
	"brewdate-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCafesTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Cafe{}))

	h := &Handlers{Service: &cafesvc.Service{DB: db}}
	app := fiber.New()
	g := app.Group("/api/v1/cafes")
	g.Get("/shuffle", h.Shuffle)
	g.Get("/:id", h.Get)
	g.Get("/", h.List)
	return app, db
}

func seed(t *testing.T, db *gorm.DB, name, city, tier string) domain.Cafe {
	cafe := domain.Cafe{Name: name, City: city, PriceTier: tier, Rating: 4.2}
	require.NoError(t, db.Create(&cafe).Error)
	return cafe
}

func get(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	_ = json.Unmarshal(raw, &parsed)
	return resp.StatusCode, parsed
}

func TestShuffle_ReturnsCandidate(t *testing.T) {
	app, db := setupCafesTest(t)
	seed(t, db, "Bocca", "Amsterdam", domain.TierModerate)

	code, body := get(t, app, "/api/v1/cafes/shuffle?city=Amsterdam")
	require.Equal(t, 200, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Bocca", data["name"])
}

func TestShuffle_ExcludingSkipsSeen(t *testing.T) {
	app, db := setupCafesTest(t)
	a := seed(t, db, "A", "Amsterdam", domain.TierBudget)
	b := seed(t, db, "B", "Amsterdam", domain.TierBudget)

	code, body := get(t, app, "/api/v1/cafes/shuffle?city=Amsterdam&excluding="+a.CafeID.String())
	require.Equal(t, 200, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, b.CafeID.String(), data["cafe_id"])
}

func TestShuffle_EmptyPoolNotFound(t *testing.T) {
	app, _ := setupCafesTest(t)
	code, body := get(t, app, "/api/v1/cafes/shuffle?city=Amsterdam&priceTier=budget")
	assert.Equal(t, 404, code)
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, "No cafes available for this search", errObj["message"])
}

func TestShuffle_MissingCity(t *testing.T) {
	app, _ := setupCafesTest(t)
	code, _ := get(t, app, "/api/v1/cafes/shuffle")
	assert.Equal(t, 400, code)
}

func TestList_FiltersTier(t *testing.T) {
	app, db := setupCafesTest(t)
	seed(t, db, "Cheap", "Amsterdam", domain.TierBudget)
	seed(t, db, "Fancy", "Amsterdam", domain.TierLuxury)

	code, body := get(t, app, "/api/v1/cafes/?city=Amsterdam&priceTier=luxury")
	require.Equal(t, 200, code)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Fancy", data[0].(map[string]interface{})["name"])
}

func TestGet_ByID(t *testing.T) {
	app, db := setupCafesTest(t)
	cafe := seed(t, db, "Bocca", "Amsterdam", domain.TierModerate)

	code, body := get(t, app, "/api/v1/cafes/"+cafe.CafeID.String())
	require.Equal(t, 200, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Bocca", data["name"])

	code, _ = get(t, app, "/api/v1/cafes/0e9f5a15-1a39-4f3e-9f19-0d9a1b6f7b30")
	assert.Equal(t, 404, code)
}
