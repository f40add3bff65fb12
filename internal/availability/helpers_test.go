package availability

import "barkeep/internal/model"

const testWorkspace int64 = 7

func ptr(v int64) *int64 {
	return &v
}

func category(id int64, parent *int64) model.Category {
	return model.Category{ID: id, WorkspaceID: testWorkspace, Name: "cat", ParentID: parent}
}

func product(id, categoryID int64, stock int) model.Product {
	return model.Product{ID: id, WorkspaceID: testWorkspace, CategoryID: categoryID, Name: "product", InStockQuantity: stock}
}

func step(productID int64, mode model.MatchMode) model.RecipeStep {
	return model.RecipeStep{RecipeID: 1, ProductID: ptr(productID), MatchMode: mode}
}

// rumTree is Rum(1) with children WhiteRum(2) and DarkRum(3), plus a
// parentless Juice(10).
func rumTree() []model.Category {
	return []model.Category{
		category(1, nil),
		category(2, ptr(1)),
		category(3, ptr(1)),
		category(10, nil),
	}
}
