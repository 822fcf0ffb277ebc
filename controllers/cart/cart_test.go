package cartControllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Jafar777/exte/models"
	"github.com/Jafar777/exte/testutil"
)

func createProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, IsActive: true}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func fetchCart(t *testing.T, db *gorm.DB, userID string) models.Cart {
	t.Helper()
	var cart models.Cart
	require.NoError(t, db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error)
	return cart
}

func TestGetCart_CreatesEmptyCartOnFirstRead(t *testing.T) {
	r, db := testutil.SetupServer(t)
	_, token := testutil.CreateUser(t, db, models.RoleUser)

	w := testutil.Do(t, r, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cart models.Cart
	testutil.Decode(t, w, &cart)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.ItemCount)
	assert.Zero(t, cart.Total)

	// second read returns the same cart, not a new one
	w = testutil.Do(t, r, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var again models.Cart
	testutil.Decode(t, w, &again)
	assert.Equal(t, cart.ID, again.ID)
}

func TestGetCart_RequiresAuth(t *testing.T) {
	r, _ := testutil.SetupServer(t)
	w := testutil.Do(t, r, http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddCartItem_MergesMatchingLine(t *testing.T) {
	r, db := testutil.SetupServer(t)
	user, token := testutil.CreateUser(t, db, models.RoleUser)
	product := createProduct(t, db, "Linen Shirt", 20)

	add := map[string]interface{}{"productId": product.ID, "size": "M", "quantity": 2}
	w := testutil.Do(t, r, http.MethodPost, "/cart", token, add)
	require.Equal(t, http.StatusOK, w.Code)

	add["quantity"] = 1
	w = testutil.Do(t, r, http.MethodPost, "/cart", token, add)
	require.Equal(t, http.StatusOK, w.Code)

	cart := fetchCart(t, db, user.ID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.ItemCount)
	assert.InDelta(t, 60.0, cart.Total, 0.001)
}

func TestAddCartItem_DifferentSizeIsNewLine(t *testing.T) {
	r, db := testutil.SetupServer(t)
	user, token := testutil.CreateUser(t, db, models.RoleUser)
	product := createProduct(t, db, "Linen Shirt", 20)

	w := testutil.Do(t, r, http.MethodPost, "/cart", token,
		map[string]interface{}{"productId": product.ID, "size": "M"})
	require.Equal(t, http.StatusOK, w.Code)
	w = testutil.Do(t, r, http.MethodPost, "/cart", token,
		map[string]interface{}{"productId": product.ID, "size": "L"})
	require.Equal(t, http.StatusOK, w.Code)

	cart := fetchCart(t, db, user.ID)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.ItemCount)
}

func TestAddCartItem_ColorHexDistinguishesLines(t *testing.T) {
	r, db := testutil.SetupServer(t)
	user, token := testutil.CreateUser(t, db, models.RoleUser)
	product := createProduct(t, db, "Linen Shirt", 20)

	w := testutil.Do(t, r, http.MethodPost, "/cart", token, map[string]interface{}{
		"productId": product.ID, "size": "M",
		"color": map[string]string{"name": "Black", "hex": "#000000"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = testutil.Do(t, r, http.MethodPost, "/cart", token, map[string]interface{}{
		"productId": product.ID, "size": "M",
		"color": map[string]string{"name": "Black", "hex": "#111111"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	cart := fetchCart(t, db, user.ID)
	assert.Len(t, cart.Items, 2, "same color name with different hex must not merge")
}

func TestAddCartItem_CapturesPriceAtAddTime(t *testing.T) {
	r, db := testutil.SetupServer(t)
	user, token := testutil.CreateUser(t, db, models.RoleUser)
	product := createProduct(t, db, "Linen Shirt", 20)

	w := testutil.Do(t, r, http.MethodPost, "/cart", token,
		map[string]interface{}{"productId": product.ID, "size": "M"})
	require.Equal(t, http.StatusOK, w.Code)

	// catalog price change must not reach the existing line
	require.NoError(t, db.Model(&product).Update("price", 35).Error)

	cart := fetchCart(t, db, user.ID)
	require.Len(t, cart.Items, 1)
	assert.InDelta(t, 20.0, cart.Items[0].Price, 0.001)
	assert.InDelta(t, 20.0, cart.Total, 0.001)
}

func TestAddCartItem_Validation(t *testing.T) {
	r, db := testutil.SetupServer(t)
	_, token := testutil.CreateUser(t, db, models.RoleUser)
	product := createProduct(t, db, "Linen Shirt", 20)

	w := testutil.Do(t, r, http.MethodPost, "/cart", token,
		map[string]interface{}{"productId": product.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code, "size is required")

	w = testutil.Do(t, r, http.MethodPost, "/cart", token,
		map[string]interface{}{"productId": product.ID + 999, "size": "M"})
	assert.Equal(t, http.StatusNotFound, w.Code, "unknown product")
}

func TestUpdateCartItem_ReplacesQuantityVerbatim(t *testing.T) {
	r, db := testutil.SetupServer(t)
	user, token := testutil.CreateUser(t, db, models.RoleUser)
	product := createProduct(t, db, "Linen Shirt", 20)

	w := testutil.Do(t, r, http.MethodPost, "/cart", token,
		map[string]interface{}{"productId": product.ID, "size": "M", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	itemID := fetchCart(t, db, user.ID).Items[0].ID

	w = testutil.Do(t, r, http.MethodPut, "/cart", token,
		map[string]interface{}{"itemId": itemID, "quantity": 5})
	require.Equal(t, http.StatusOK, w.Code)

	cart := fetchCart(t, db, user.ID)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.ItemCount)
	assert.InDelta(t, 100.0, cart.Total, 0.001)
}

func TestUpdateCartItem_ZeroQuantityRemovesLine(t *testing.T) {
	r, db := testutil.SetupServer(t)
	user, token := testutil.CreateUser(t, db, models.RoleUser)
	product := createProduct(t, db, "Linen Shirt", 20)

	w := testutil.Do(t, r, http.MethodPost, "/cart", token,
		map[string]interface{}{"productId": product.ID, "size": "M", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	itemID := fetchCart(t, db, user.ID).Items[0].ID

	w = testutil.Do(t, r, http.MethodPut, "/cart", token,
		map[string]interface{}{"itemId": itemID, "quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)

	cart := fetchCart(t, db, user.ID)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.ItemCount)
	assert.Zero(t, cart.Total)
}

func TestUpdateCartItem_NotFound(t *testing.T) {
	r, db := testutil.SetupServer(t)
	_, token := testutil.CreateUser(t, db, models.RoleUser)

	w := testutil.Do(t, r, http.MethodPut, "/cart", token,
		map[string]interface{}{"itemId": 1, "quantity": 2})
	assert.Equal(t, http.StatusNotFound, w.Code, "no cart yet")

	w = testutil.Do(t, r, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = testutil.Do(t, r, http.MethodPut, "/cart", token,
		map[string]interface{}{"itemId": 99, "quantity": 2})
	assert.Equal(t, http.StatusNotFound, w.Code, "no such item")
}

func TestRemoveCartItems_SingleAndClear(t *testing.T) {
	r, db := testutil.SetupServer(t)
	user, token := testutil.CreateUser(t, db, models.RoleUser)
	shirt := createProduct(t, db, "Linen Shirt", 20)
	dress := createProduct(t, db, "Silk Dress", 50)

	for _, p := range []models.Product{shirt, dress} {
		w := testutil.Do(t, r, http.MethodPost, "/cart", token,
			map[string]interface{}{"productId": p.ID, "size": "M"})
		require.Equal(t, http.StatusOK, w.Code)
	}

	cart := fetchCart(t, db, user.ID)
	require.Len(t, cart.Items, 2)

	w := testutil.Do(t, r, http.MethodDelete,
		fmt.Sprintf("/cart?itemId=%d", cart.Items[0].ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cart = fetchCart(t, db, user.ID)
	assert.Len(t, cart.Items, 1)
	assert.InDelta(t, 50.0, cart.Total, 0.001)

	// clearing empties the item list but keeps the cart row
	cartID := cart.ID
	w = testutil.Do(t, r, http.MethodDelete, "/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cart = fetchCart(t, db, user.ID)
	assert.Equal(t, cartID, cart.ID)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.ItemCount)
	assert.Zero(t, cart.Total)
}

func TestCartDerivedFieldsStayConsistent(t *testing.T) {
	r, db := testutil.SetupServer(t)
	user, token := testutil.CreateUser(t, db, models.RoleUser)
	shirt := createProduct(t, db, "Linen Shirt", 19.99)
	dress := createProduct(t, db, "Silk Dress", 49.5)

	steps := []struct {
		method string
		path   string
		body   map[string]interface{}
	}{
		{http.MethodPost, "/cart", map[string]interface{}{"productId": shirt.ID, "size": "S", "quantity": 2}},
		{http.MethodPost, "/cart", map[string]interface{}{"productId": dress.ID, "size": "M"}},
		{http.MethodPost, "/cart", map[string]interface{}{"productId": shirt.ID, "size": "S", "quantity": 3}},
	}
	for _, step := range steps {
		w := testutil.Do(t, r, step.method, step.path, token, step.body)
		require.Equal(t, http.StatusOK, w.Code)

		cart := fetchCart(t, db, user.ID)
		wantCount, wantTotal := models.RecomputeTotals(cart.Items)
		assert.Equal(t, wantCount, cart.ItemCount)
		assert.InDelta(t, wantTotal, cart.Total, 0.001)
	}
}
