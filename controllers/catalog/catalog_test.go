package catalogControllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jafar777/exte/models"
	"github.com/Jafar777/exte/testutil"
)

func TestCreateSubCategory_ValidatesParentAndDuplicates(t *testing.T) {
	r, db := testutil.SetupServer(t)
	_, adminToken := testutil.CreateUser(t, db, models.RoleAdmin)

	w := testutil.Do(t, r, http.MethodPost, "/categories", adminToken,
		map[string]interface{}{"name": "Women"})
	require.Equal(t, http.StatusCreated, w.Code)
	var category models.Category
	testutil.Decode(t, w, &category)

	w = testutil.Do(t, r, http.MethodPost, "/subcategories", adminToken,
		map[string]interface{}{"name": "Dresses", "categoryId": category.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	// duplicate name within the category, case-insensitive
	w = testutil.Do(t, r, http.MethodPost, "/subcategories", adminToken,
		map[string]interface{}{"name": "dresses", "categoryId": category.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown parent
	w = testutil.Do(t, r, http.MethodPost, "/subcategories", adminToken,
		map[string]interface{}{"name": "Skirts", "categoryId": 999})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// same name under a different category is fine
	w = testutil.Do(t, r, http.MethodPost, "/categories", adminToken,
		map[string]interface{}{"name": "Men"})
	require.Equal(t, http.StatusCreated, w.Code)
	var men models.Category
	testutil.Decode(t, w, &men)
	w = testutil.Do(t, r, http.MethodPost, "/subcategories", adminToken,
		map[string]interface{}{"name": "Dresses", "categoryId": men.ID})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSubCategories_FilterByCategory(t *testing.T) {
	r, db := testutil.SetupServer(t)
	_, adminToken := testutil.CreateUser(t, db, models.RoleAdmin)

	women := models.Category{Name: "Women", IsActive: true}
	men := models.Category{Name: "Men", IsActive: true}
	require.NoError(t, db.Create(&women).Error)
	require.NoError(t, db.Create(&men).Error)

	for name, cat := range map[string]uint{"Dresses": women.ID, "Shirts": men.ID} {
		w := testutil.Do(t, r, http.MethodPost, "/subcategories", adminToken,
			map[string]interface{}{"name": name, "categoryId": cat})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := testutil.Do(t, r, http.MethodGet, fmt.Sprintf("/subcategories?category=%d", women.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var subs []models.SubCategory
	testutil.Decode(t, w, &subs)
	require.Len(t, subs, 1)
	assert.Equal(t, "Dresses", subs[0].Name)
}

func TestCategoryCRUD_AdminGate(t *testing.T) {
	r, db := testutil.SetupServer(t)
	_, userToken := testutil.CreateUser(t, db, models.RoleUser)
	_, adminToken := testutil.CreateUser(t, db, models.RoleAdmin)

	w := testutil.Do(t, r, http.MethodPost, "/categories", userToken,
		map[string]interface{}{"name": "Women"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.Do(t, r, http.MethodPost, "/categories", adminToken,
		map[string]interface{}{"name": "Women"})
	require.Equal(t, http.StatusCreated, w.Code)
	var category models.Category
	testutil.Decode(t, w, &category)

	w = testutil.Do(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", category.ID), adminToken,
		map[string]interface{}{"name": "Womenswear"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", category.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = testutil.Do(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", category.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
