package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lunchly/internal/domain/model"
)

func dish(id string) model.Dish {
	return model.Dish{ID: id, Name: "Dish " + id, VendorID: "vendor-1", MenuID: "menu-1"}
}

func TestRemoveOneDishTakesSingleOccurrence(t *testing.T) {
	dishes := []model.Dish{dish("dish-1"), dish("dish-1"), dish("dish-2")}

	got := removeOneDish(dishes, "dish-1")

	assert.Equal(t, []model.Dish{dish("dish-1"), dish("dish-2")}, got,
		"one duplicate survives the removal")
}

func TestRemoveOneDishUnknownID(t *testing.T) {
	dishes := []model.Dish{dish("dish-1"), dish("dish-2")}

	got := removeOneDish(dishes, "dish-9")

	assert.Equal(t, dishes, got)
}

func TestRemoveOneDishDoesNotMutateInput(t *testing.T) {
	dishes := []model.Dish{dish("dish-1"), dish("dish-2"), dish("dish-3")}

	removeOneDish(dishes, "dish-1")

	assert.Equal(t, []model.Dish{dish("dish-1"), dish("dish-2"), dish("dish-3")}, dishes)
}
